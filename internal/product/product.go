package product

import (
	"context"
	"fmt"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/diag"
)

// Product is one catalog entry bound to its resolver.
type Product struct {
	Key      string
	Name     string
	Location string
	Resolver Resolver

	diag diag.Channel
}

// DisplayName returns the name, or the key when the name is empty.
func (p *Product) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Key
}

// Version resolves the product's version. A panicking resolver is reported
// as a warning and reads as "not found".
func (p *Product) Version(ctx context.Context) (version string) {
	defer func() {
		if r := recover(); r != nil {
			if p.diag != nil {
				p.diag.Warn(fmt.Sprintf("other problem: %s: %v", p.Location, r))
			}
			version = NotFound
		}
	}()

	if p.Resolver == nil {
		return NotFound
	}
	return p.Resolver.Resolve(ctx)
}
