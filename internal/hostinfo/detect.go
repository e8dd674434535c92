package hostinfo

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// System implements Provider against the real host.
type System struct{}

// NewProvider creates a host information provider for the running machine.
func NewProvider() Provider {
	return &System{}
}

// Detect gathers hostname, operator, working directory, and platform details.
// It uses gopsutil for the hostname and Linux distribution, falling back to
// os.Hostname and empty distro fields when gopsutil cannot answer. Only a
// failure to determine the working directory or a cancelled context is an
// error.
func (s *System) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	info.WorkingDir = wd
	info.Username = lookupUsername()

	hostInfo, err := host.InfoWithContext(ctx)
	if err != nil {
		// Check if context was cancelled - this is a hard failure
		if ctx.Err() != nil {
			return nil, fmt.Errorf("host detection cancelled: %w", ctx.Err())
		}
		// Graceful fallback: hostname from the kernel, no distro details
		if name, herr := os.Hostname(); herr == nil {
			info.Hostname = name
		}
		return info, nil
	}

	info.Hostname = hostInfo.Hostname
	if info.IsLinux() {
		info.Platform = normalizePlatform(hostInfo.Platform)
		info.Family = mapFamily(hostInfo.PlatformFamily)
		info.Version = normalizePlatform(hostInfo.PlatformVersion)
	}

	return info, nil
}

// lookupUsername returns the login name of the current user, falling back to
// the environment when the user database is unavailable.
func lookupUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	for _, key := range []string{"USER", "LOGNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
