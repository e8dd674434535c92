package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/site"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json, or yaml)", s)
	}
}

// Document is the structured form of a version report.
type Document struct {
	RunID       uuid.UUID        `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time        `json:"generated_at" yaml:"generated_at"`
	SiteRoot    string           `json:"site_root" yaml:"site_root"`
	Site        *site.Descriptor `json:"site,omitempty" yaml:"site,omitempty"`
	Products    []Row            `json:"products" yaml:"products"`
}

// NewDocument wraps rows with a fresh run ID.
func NewDocument(runID uuid.UUID, siteRoot string, desc *site.Descriptor, rows []Row, now time.Time) *Document {
	if rows == nil {
		rows = []Row{}
	}
	return &Document{
		RunID:       runID,
		GeneratedAt: now.UTC(),
		SiteRoot:    siteRoot,
		Site:        desc,
		Products:    rows,
	}
}

// Encode writes v to w as JSON or YAML.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("format %q has no structured encoding", format)
	}
}
