package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/git"
	"github.com/ZebulonRouseFrantzich/siteinfo/internal/product"
	"github.com/ZebulonRouseFrantzich/siteinfo/internal/report"
	"github.com/ZebulonRouseFrantzich/siteinfo/internal/site"
)

func newVersionsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "versions [product...]",
		Short: "Show the installed version of each product",
		Long: `Show the installed version of each product at the site.

Products are reported in catalog order. Naming products restricts the report
to them. Problems reaching a product are printed to stderr; the report itself
always completes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			cfg, err := a.loadConfig(ctx)
			if err != nil {
				return err
			}
			info, err := a.hosts.Detect(ctx)
			if err != nil {
				return fmt.Errorf("detect host: %w", err)
			}
			root, desc := a.siteFor(info)

			env := &product.Env{
				SiteRoot:    root,
				Interpreter: cfg.Interpreter,
				Runner:      a.runner,
				Fs:          a.fs,
				Diag:        a.console(cmd),
				Logger:      a.log(),
			}
			if cfg.BranchCommand != "" {
				env.Branches = git.CommandReader{Runner: a.runner, Command: cfg.BranchCommand, Interpreter: cfg.Interpreter}
			}

			catalog, err := product.NewCatalog(cfg.Products, env)
			if err != nil {
				return err
			}
			catalog, err = catalog.Filter(args...)
			if err != nil {
				return err
			}

			runID := a.newRunID()
			a.log().Debug("collecting versions", "run_id", runID.String(), "site_root", root, "products", catalog.Len())
			rows := report.Collect(ctx, catalog, a.log())

			out := cmd.OutOrStdout()
			if f == report.FormatText {
				_, err := fmt.Fprint(out, report.RenderText(rows))
				return err
			}

			var descPtr *site.Descriptor
			if desc.Known() {
				descPtr = &desc
			}
			return report.Encode(out, f, report.NewDocument(runID, root, descPtr, rows, a.now()))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "output format: text, json, or yaml")
	return cmd
}
