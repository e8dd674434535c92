package product

import (
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/config"
)

// Catalog is the ordered set of products to report on.
type Catalog struct {
	products []*Product
	byKey    map[string]*Product
}

// NewCatalog builds products from their specs in order. specs are expected
// to have passed config validation.
func NewCatalog(specs []config.ProductSpec, env *Env) (*Catalog, error) {
	env = env.withDefaults()

	c := &Catalog{byKey: make(map[string]*Product, len(specs))}
	for _, spec := range specs {
		if _, dup := c.byKey[spec.Key]; dup {
			return nil, fmt.Errorf("duplicate product key %q", spec.Key)
		}

		r, err := newResolver(spec, env)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", spec.Key, err)
		}

		p := &Product{
			Key:      spec.Key,
			Name:     spec.Name,
			Location: spec.Location,
			Resolver: r,
			diag:     env.Diag,
		}
		c.products = append(c.products, p)
		c.byKey[p.Key] = p
	}
	return c, nil
}

func newResolver(spec config.ProductSpec, env *Env) (Resolver, error) {
	switch spec.Kind {
	case config.KindBinary:
		return NewBinaryResolver(env, spec.Location, spec.Binary, spec.Args...), nil
	case config.KindBinaryDated:
		return NewDatedBinaryResolver(env, spec.Location, spec.Binary, spec.Args...), nil
	case config.KindGit:
		return NewBranchResolver(env, spec.Location), nil
	case config.KindGitFile:
		filename := spec.VersionFile
		if filename == "" {
			filename = config.DefaultVersionFile
		}
		return NewBranchFileResolver(env, spec.Location, filename), nil
	case config.KindGitParsed:
		return NewBranchCommandResolver(env, spec.Location, spec.Command), nil
	default:
		return nil, fmt.Errorf("unknown kind %q", spec.Kind)
	}
}

// Products returns the products in catalog order.
func (c *Catalog) Products() []*Product {
	out := make([]*Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Get looks a product up by key.
func (c *Catalog) Get(key string) (*Product, bool) {
	p, ok := c.byKey[key]
	return p, ok
}

// Keys returns the product keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.products))
	for i, p := range c.products {
		keys[i] = p.Key
	}
	return keys
}

// Filter returns a catalog restricted to keys, keeping catalog order. No keys
// means the whole catalog. Unknown keys are an error.
func (c *Catalog) Filter(keys ...string) (*Catalog, error) {
	if len(keys) == 0 {
		return c, nil
	}

	want := make(map[string]bool, len(keys))
	var unknown []string
	for _, k := range keys {
		if _, ok := c.byKey[k]; !ok {
			unknown = append(unknown, k)
			continue
		}
		want[k] = true
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown product(s): %s (known: %s)",
			strings.Join(unknown, ", "), strings.Join(c.Keys(), ", "))
	}

	out := &Catalog{byKey: make(map[string]*Product, len(want))}
	for _, p := range c.products {
		if want[p.Key] {
			out.products = append(out.products, p)
			out.byKey[p.Key] = p
		}
	}
	return out, nil
}
