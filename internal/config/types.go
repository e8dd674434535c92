package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind selects how a product's version is resolved.
type Kind string

const (
	// KindBinary runs a product binary and reports its output.
	KindBinary Kind = "binary"
	// KindBinaryDated is KindBinary with build-stamp normalization.
	KindBinaryDated Kind = "binary_dated"
	// KindGit reports the checked-out branch.
	KindGit Kind = "git"
	// KindGitFile reports a version file paired with the branch.
	KindGitFile Kind = "git_file"
	// KindGitParsed reports extracted command output paired with the branch.
	KindGitParsed Kind = "git_parsed"
)

// IsValid returns true if the kind is one siteinfo knows how to resolve.
func (k Kind) IsValid() bool {
	switch k {
	case KindBinary, KindBinaryDated, KindGit, KindGitFile, KindGitParsed:
		return true
	default:
		return false
	}
}

// Config is the complete siteinfo configuration.
type Config struct {
	// Interpreter is the shell used for every command. Empty means /bin/bash.
	Interpreter string `json:"interpreter,omitempty"`

	// BranchCommand, when set, reads branches by running this command
	// instead of opening the repository with go-git.
	BranchCommand string `json:"branch_command,omitempty"`

	// BuildDomain is the domain build hosts live under (build#.<domain>).
	BuildDomain string `json:"build_domain,omitempty"`

	// Products in report order.
	Products []ProductSpec `json:"products,omitempty"`
}

// ProductSpec describes one product in the catalog.
type ProductSpec struct {
	Key      string `json:"key"`
	Name     string `json:"name,omitempty"`
	Kind     Kind   `json:"kind"`
	Location string `json:"location"`

	// binary kinds
	Binary string   `json:"binary,omitempty"`
	Args   []string `json:"args,omitempty"`

	// git_file
	VersionFile string `json:"version_file,omitempty"`

	// git_parsed
	Command string `json:"command,omitempty"`
}

// DisplayName returns the name, falling back to the key.
func (p ProductSpec) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Key
}

// Validate performs structural validation on a Config.
func (c *Config) Validate() error {
	if len(c.Products) == 0 {
		return &ValidationError{Field: "products", Message: "at least one product is required"}
	}
	if len(c.Products) > MaxProductCount {
		return &ValidationError{
			Field:   "products",
			Message: fmt.Sprintf("too many products (%d), maximum is %d", len(c.Products), MaxProductCount),
		}
	}

	seen := make(map[string]int, len(c.Products))
	for i, p := range c.Products {
		field := fmt.Sprintf("products[%d]", i)
		if p.Key == "" {
			return &ValidationError{Field: field, Message: "key cannot be empty"}
		}
		if prev, dup := seen[p.Key]; dup {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate key %q (first defined at products[%d])", p.Key, prev),
			}
		}
		seen[p.Key] = i

		if err := p.validate(); err != nil {
			return &ValidationError{Field: field + " (" + p.Key + ")", Message: err.Error()}
		}
	}

	return nil
}

func (p ProductSpec) validate() error {
	if !p.Kind.IsValid() {
		return fmt.Errorf("unknown kind %q", p.Kind)
	}
	if err := validateLocation(p.Location); err != nil {
		return err
	}

	switch p.Kind {
	case KindBinary, KindBinaryDated:
		if p.Binary == "" {
			return fmt.Errorf("binary is required for kind %s", p.Kind)
		}
		if strings.ContainsRune(p.Binary, '/') {
			return fmt.Errorf("binary must be a file name, got %q", p.Binary)
		}
	case KindGitFile:
		if strings.ContainsRune(p.VersionFile, '/') {
			return fmt.Errorf("version_file must be a file name, got %q", p.VersionFile)
		}
	case KindGitParsed:
		if strings.TrimSpace(p.Command) == "" {
			return fmt.Errorf("command is required for kind %s", p.Kind)
		}
	}
	return nil
}

// validateLocation requires a relative path that stays inside the site root.
func validateLocation(location string) error {
	if location == "" {
		return fmt.Errorf("location cannot be empty")
	}
	if filepath.IsAbs(location) {
		return fmt.Errorf("location must be relative to the site root, got %q", location)
	}
	clean := filepath.Clean(location)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("location escapes the site root: %q", location)
	}
	return nil
}

// ValidationError reports an invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}
