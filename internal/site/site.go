// Package site classifies a filesystem path into the deployment environment it
// belongs to.
//
// Rules are tried in a fixed order (dev, test, prod) and the first match wins.
// A path that matches no rule is of type unknown and carries no other fields.
// Classification is a pure function of the path string.
package site

import (
	"regexp"
	"strings"
)

// Type is the kind of deployment environment.
type Type string

const (
	TypeDev     Type = "dev"
	TypeTest    Type = "test"
	TypeProd    Type = "prod"
	TypeUnknown Type = "unknown"
)

// String returns the string representation of the environment type
func (t Type) String() string {
	return string(t)
}

// Production slots.
const (
	SlotNext  = "next"
	SlotCurr  = "curr"
	SlotPrior = "prior"
)

// Descriptor identifies the environment a path belongs to.
type Descriptor struct {
	Type     Type   `json:"type" yaml:"type"`
	SiteRoot string `json:"site_root,omitempty" yaml:"site_root,omitempty"`
	SiteName string `json:"site_name,omitempty" yaml:"site_name,omitempty"`
	Server   string `json:"server,omitempty" yaml:"server,omitempty"`
	Client   string `json:"client,omitempty" yaml:"client,omitempty"`
	DevSite  string `json:"dev_site,omitempty" yaml:"dev_site,omitempty"`
	Slot     string `json:"slot,omitempty" yaml:"slot,omitempty"`
	// Path is the remainder after SiteRoot, not interpreted further.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Known returns true if the path matched one of the environment rules.
func (d Descriptor) Known() bool {
	return d.Type != TypeUnknown && d.Type != ""
}

// Rule is one environment pattern. The pattern must define the named groups
// site_root and path; siteName derives the site name from the other groups.
type Rule struct {
	Type     Type
	Pattern  *regexp.Regexp
	siteName func(d Descriptor) string
}

// match applies the rule to path.
func (r Rule) match(path string) (Descriptor, bool) {
	m := r.Pattern.FindStringSubmatch(path)
	if m == nil {
		return Descriptor{}, false
	}

	d := Descriptor{Type: r.Type}
	for i, name := range r.Pattern.SubexpNames() {
		switch name {
		case "site_root":
			d.SiteRoot = m[i]
		case "path":
			d.Path = m[i]
		case "server":
			d.Server = m[i]
		case "client":
			d.Client = m[i]
		case "devsite":
			d.DevSite = m[i]
		case "slot":
			d.Slot = m[i]
		}
	}
	d.SiteName = r.siteName(d)
	return d, true
}

// Rules is the ordered rule set: dev, then test, then prod. The residual path
// may span newlines; \w in server and client names matches ASCII only.
var Rules = []Rule{
	{
		Type:     TypeDev,
		Pattern:  regexp.MustCompile(`(?s)^(?P<site_root>/mnt/(?P<server>dev\d+)/web/(?P<devsite>[^/]+)/)(?P<path>.*)$`),
		siteName: func(d Descriptor) string { return d.DevSite + "." + d.Server },
	},
	{
		Type:     TypeTest,
		Pattern:  regexp.MustCompile(`(?s)^(?P<site_root>/mnt/(?P<server>[\w-]+)/(?P<client>[\w-]+)-test/test/)(?P<path>.*)$`),
		siteName: func(d Descriptor) string { return d.Client + "-test" },
	},
	{
		Type:     TypeProd,
		Pattern:  regexp.MustCompile(`(?s)^(?P<site_root>/mnt/(?P<server>[\w-]+)/(?P<client>[\w-]+)/(?P<slot>next|curr|prior)(?:/|$))(?P<path>.*)$`),
		siteName: func(d Descriptor) string { return d.Client + "-" + d.Slot },
	},
}

// Classify returns the descriptor of the first rule matching path.
func Classify(path string) Descriptor {
	return ClassifyWith(Rules, path)
}

// ClassifyWith classifies path against an explicit ordered rule set.
func ClassifyWith(rules []Rule, path string) Descriptor {
	for _, rule := range rules {
		if d, ok := rule.match(path); ok {
			return d
		}
	}
	return Descriptor{Type: TypeUnknown}
}

// ClassifyDir classifies a directory path, which may lack its trailing
// slash, so that a site root itself is recognised.
func ClassifyDir(dir string) Descriptor {
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	return Classify(dir)
}
