// Package hostinfo supplies facts about the machine and the invoking operator:
// hostname, username, working directory, and platform details.
//
// Everything that would otherwise be a process-wide lookup goes through a
// Provider, so resolution and classification code can be tested with a
// Static provider instead of the real host.
package hostinfo

import "context"

// Linux distribution family constants.
// These represent canonical family names for grouping related distributions.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// Info describes the host and the operator running siteinfo.
type Info struct {
	Hostname   string // e.g. "build3.leepfrog.com"
	Username   string // login name of the operator
	WorkingDir string // process working directory
	OS         string // "linux", "darwin"
	Arch       string // GOARCH, e.g. "amd64"
	Platform   string // distro ID (Linux only, e.g. "rocky")
	Family     string // canonical family (e.g. "rhel")
	Version    string // distro version (Linux only, e.g. "8.9")
}

// IsLinux returns true if the host runs Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsRHELFamily returns true if the Linux distribution is RHEL-based.
func (i *Info) IsRHELFamily() bool {
	return i.IsLinux() && i.Family == FamilyRHEL
}

// MajorVersion returns the distro version up to the first dot.
func (i *Info) MajorVersion() string {
	for idx, r := range i.Version {
		if r == '.' {
			return i.Version[:idx]
		}
	}
	return i.Version
}

// Provider is the interface for host information lookups.
type Provider interface {
	Detect(ctx context.Context) (*Info, error)
}

// Static is a Provider that returns fixed information.
type Static struct {
	Info Info
}

// Detect returns a copy of the fixed information.
func (s Static) Detect(ctx context.Context) (*Info, error) {
	info := s.Info
	return &info, nil
}
