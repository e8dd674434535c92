package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/config"
	"github.com/ZebulonRouseFrantzich/siteinfo/internal/diag"
	"github.com/ZebulonRouseFrantzich/siteinfo/internal/hostinfo"
	"github.com/ZebulonRouseFrantzich/siteinfo/internal/shell"
	"github.com/ZebulonRouseFrantzich/siteinfo/internal/site"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, newApp()))
}

// exitCodeError ends the program with a status but no message.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit %d", e.code)
}

// run executes the CLI and returns the process exit status.
func run(args []string, stdout, stderr io.Writer, a *app) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var exit *exitCodeError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

// app holds the collaborators and global flags shared by every command.
type app struct {
	hosts    hostinfo.Provider
	runner   shell.Runner
	fs       afero.Fs
	now      func() time.Time
	newRunID func() uuid.UUID
	logger   diag.Logger

	configPath string
	siteRoot   string
	verbose    bool
	noColor    bool
	timeout    time.Duration
}

func newApp() *app {
	return &app{
		hosts:    hostinfo.NewProvider(),
		runner:   shell.NewRunner(),
		fs:       afero.NewOsFs(),
		now:      time.Now,
		newRunID: uuid.New,
	}
}

func newRootCmd(a *app) *cobra.Command {
	var syncLogger func()

	cmd := &cobra.Command{
		Use:           "siteinfo",
		Short:         "Report product versions and environment details for a site",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			logger, sync, err := diag.NewZapLogger(a.verbose)
			if err != nil {
				return err
			}
			a.logger, syncLogger = logger, sync
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if syncLogger != nil {
				syncLogger()
			}
		},
	}
	cmd.SetVersionTemplate("siteinfo {{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Lua config overriding the built-in catalog (default $"+config.EnvConfigPath+")")
	flags.StringVar(&a.siteRoot, "site-root", "", "site root to inspect (default: the site containing the working directory)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored diagnostics")
	flags.DurationVar(&a.timeout, "timeout", 0, "abort after this long (default: wait for every product)")

	cmd.AddCommand(
		newVersionsCmd(a),
		newEnvCmd(a),
		newRootPathCmd(a),
		newLinkCmd(a),
	)
	return cmd
}

// context returns the command context, bounded by --timeout when set.
func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.timeout > 0 {
		return context.WithTimeout(ctx, a.timeout)
	}
	return context.WithCancel(ctx)
}

// loadConfig returns the built-in catalog with any override applied.
func (a *app) loadConfig(ctx context.Context) (*config.Config, error) {
	path := a.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}

	cfg, err := config.NewParser(a.hosts, a.fs).Load(ctx, path)
	if err != nil {
		return nil, errors.New(config.FormatError(err, a.verbose))
	}
	a.log().Debug("config loaded", "path", path, "products", len(cfg.Products))
	return cfg, nil
}

// siteFor picks the site to inspect: --site-root, else the site containing
// the working directory, else the working directory itself.
func (a *app) siteFor(info *hostinfo.Info) (string, site.Descriptor) {
	if a.siteRoot != "" {
		return a.siteRoot, site.ClassifyDir(a.siteRoot)
	}
	desc := site.ClassifyDir(info.WorkingDir)
	if desc.Known() {
		return desc.SiteRoot, desc
	}
	return info.WorkingDir, desc
}

func (a *app) log() diag.Logger {
	if a.logger == nil {
		return diag.NopLogger()
	}
	return a.logger
}

func (a *app) console(cmd *cobra.Command) diag.Channel {
	return diag.NewConsole(cmd.ErrOrStderr(), a.noColor)
}
