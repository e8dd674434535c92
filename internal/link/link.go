// Package link builds URLs for the companion copy service that clones a
// production site onto a dev server.
//
// The service runs on the dev counterpart of the build host the operator is
// logged into: build3.<domain> maps to cpclsite.dev3.<domain>. Nothing here
// touches the network.
package link

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/site"
)

// ErrMalformedHostname means the current host is not a build host.
var ErrMalformedHostname = errors.New("malformed build hostname")

// DefaultDomain is the domain build hosts live under.
const DefaultDomain = "leepfrog.com"

// DefaultProdEnv is the production slot copied when none is given.
const DefaultProdEnv = site.SlotCurr

// DevHostname maps build<N>.<domain> to dev<N>.<domain>.
func DevHostname(hostname, domain string) (string, error) {
	if domain == "" {
		domain = DefaultDomain
	}
	pattern := regexp.MustCompile(`^build\d+\.` + regexp.QuoteMeta(domain) + `$`)
	if !pattern.MatchString(hostname) {
		return "", fmt.Errorf("%w: expected a hostname in the format build#.%s, where # is 1 or more digits; got %q instead",
			ErrMalformedHostname, domain, hostname)
	}
	return "dev" + strings.TrimPrefix(hostname, "build"), nil
}

// ServiceHost returns the copy service host for a build hostname.
func ServiceHost(hostname, domain string) (string, error) {
	dev, err := DevHostname(hostname, domain)
	if err != nil {
		return "", err
	}
	return "cpclsite." + dev, nil
}

// DateStamp formats t as YYYYMMDD.
func DateStamp(t time.Time) string {
	return t.Format("20060102")
}

// PrependUsername prefixes text with "<username>-" unless text already
// starts with the username as a whole word.
func PrependUsername(username, text string) string {
	if username == "" {
		return text
	}
	owned := regexp.MustCompile(`^\b` + regexp.QuoteMeta(username) + `\b`)
	if owned.MatchString(text) {
		return text
	}
	return username + "-" + strings.TrimLeft(text, "-")
}

// Options describes one copy request.
type Options struct {
	// Source is the client id, or the source site for a local copy.
	Source string
	// Destination, when set, requests a local copy from Source to it.
	Destination string
	// ProdEnv is the production slot to copy. Empty means DefaultProdEnv.
	ProdEnv string
	// Suffix names the new dev site. Empty means today's date stamp.
	Suffix string
	// Anonymous leaves the username out of the suffix.
	Anonymous bool
}

// Builder renders copy service URLs for one operator on one host.
type Builder struct {
	Host     string
	Username string
	Now      func() time.Time
}

// NewBuilder resolves the service host from the build hostname. A hostname
// that is not a build host is an error.
func NewBuilder(hostname, domain, username string) (*Builder, error) {
	host, err := ServiceHost(hostname, domain)
	if err != nil {
		return nil, err
	}
	return &Builder{Host: host, Username: username, Now: time.Now}, nil
}

// CopyURL returns the URL that starts the copy described by opts.
func (b *Builder) CopyURL(opts Options) (string, error) {
	if opts.Source == "" {
		return "", errors.New("source is required")
	}

	var sb strings.Builder
	sb.WriteString("https://")
	sb.WriteString(b.Host)
	sb.WriteString("/")

	if opts.Destination != "" {
		sb.WriteString("localcopy.cgi")
		sb.WriteString("?src=" + quote(opts.Source))
		sb.WriteString("&dst=" + quote(opts.Destination))
		return sb.String(), nil
	}

	prodEnv := opts.ProdEnv
	if prodEnv == "" {
		prodEnv = DefaultProdEnv
	}

	suffix := strings.TrimLeft(opts.Suffix, "-")
	if opts.Suffix == "" {
		now := time.Now
		if b.Now != nil {
			now = b.Now
		}
		suffix = DateStamp(now())
	}
	if !opts.Anonymous {
		suffix = PrependUsername(b.Username, suffix)
	}

	sb.WriteString("cpclsite-wrapper.cgi")
	sb.WriteString("?clientid=" + quote(opts.Source))
	sb.WriteString("&src=" + quote(prodEnv))
	sb.WriteString("&extension=" + quote(suffix))
	return sb.String(), nil
}
