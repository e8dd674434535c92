package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/link"
)

func newLinkCmd(a *app) *cobra.Command {
	var opts link.Options

	cmd := &cobra.Command{
		Use:   "link <source> [destination]",
		Short: "Print a copy-service link for cloning a site",
		Long: `Print a copy-service link for cloning a site onto this dev server.

With a destination, the link copies the source site to it. Otherwise the link
copies client <source> from production, naming the new site with --suffix
(default: today's date) prefixed by your username.

Must be run on a build host (build#.<domain>).`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			if len(args) == 2 {
				opts.Destination = args[1]
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

			b, err := link.NewBuilder(info.Hostname, cfg.BuildDomain, info.Username)
			if err != nil {
				return err
			}
			b.Now = a.now

			url, err := b.CopyURL(opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), url)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.ProdEnv, "prodenv", link.DefaultProdEnv, "production slot to copy: next, curr, or prior")
	flags.StringVar(&opts.Suffix, "suffix", "", "name suffix for the new site (default: YYYYMMDD)")
	flags.BoolVar(&opts.Anonymous, "anonymous", false, "leave your username out of the suffix")
	return cmd
}
