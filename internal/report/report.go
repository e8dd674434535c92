// Package report runs a product catalog and renders the results, either as
// the aligned text table operators read or as a JSON/YAML document.
package report

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/diag"
	"github.com/ZebulonRouseFrantzich/siteinfo/internal/product"
)

// Row is one product's line in the report.
type Row struct {
	Key       string `json:"key" yaml:"key"`
	Name      string `json:"name" yaml:"name"`
	Version   string `json:"version" yaml:"version"`
	Main      string `json:"main" yaml:"main"`
	Qualifier string `json:"qualifier,omitempty" yaml:"qualifier,omitempty"`
}

// Collect resolves every product in catalog order, one at a time.
func Collect(ctx context.Context, catalog *product.Catalog, logger diag.Logger) []Row {
	if logger == nil {
		logger = diag.NopLogger()
	}

	products := catalog.Products()
	rows := make([]Row, 0, len(products))
	for _, p := range products {
		start := time.Now()
		version := p.Version(ctx)
		logger.Debug("resolved product", "key", p.Key, "version", version, "elapsed", time.Since(start))

		main, qualifier := SplitQualifier(version)
		rows = append(rows, Row{
			Key:       p.Key,
			Name:      p.DisplayName(),
			Version:   version,
			Main:      main,
			Qualifier: qualifier,
		})
	}
	return rows
}

var qualifierPattern = regexp.MustCompile(`^([^(]+) (\([^)]+\))`)

// SplitQualifier splits "1.2.3 (2024-01-05)" into "1.2.3" and "(2024-01-05)".
// Text after the first parenthesised group stays with the qualifier. A
// version without a qualifier is returned whole.
func SplitQualifier(version string) (main, qualifier string) {
	m := qualifierPattern.FindStringSubmatchIndex(version)
	if m == nil {
		return version, ""
	}
	return version[m[2]:m[3]], version[m[4]:]
}

// RenderText renders rows as aligned "name : version (qualifier)" lines.
// Names are padded to a common width, and qualifiers are aligned one column
// past the widest main value. Rows without a qualifier get no padding after
// the version, which is written unchanged.
func RenderText(rows []Row) string {
	nameWidth, mainWidth := 0, 0
	for _, r := range rows {
		nameWidth = max(nameWidth, ansi.StringWidth(r.Name))
		mainWidth = max(mainWidth, ansi.StringWidth(r.Main))
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(r.Name)
		sb.WriteString(strings.Repeat(" ", nameWidth-ansi.StringWidth(r.Name)))
		sb.WriteString(" : ")
		sb.WriteString(r.Main)
		if r.Qualifier != "" {
			sb.WriteString(strings.Repeat(" ", 1+mainWidth-ansi.StringWidth(r.Main)))
			sb.WriteString(r.Qualifier)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
