package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/siteinfo/internal/report"
	"github.com/ZebulonRouseFrantzich/siteinfo/internal/site"
)

func newEnvCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "env [path]",
		Short: "Classify a path as a dev, test, or prod site",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			desc, err := a.describe(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if f == report.FormatText {
				_, err := fmt.Fprint(out, formatDescriptor(desc))
				return err
			}
			return report.Encode(out, f, desc)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "output format: text, json, or yaml")
	return cmd
}

func newRootPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "root [path]",
		Short: "Print the site root containing a path",
		Long: `Print the site root containing a path (default: the working directory).

Exits with status 1 when the path is not inside a known site.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := a.describe(cmd, args)
			if err != nil {
				return err
			}
			if !desc.Known() {
				return &exitCodeError{code: 1}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), desc.SiteRoot)
			return err
		},
	}
}

// describe classifies the path argument as given, or the working directory.
func (a *app) describe(cmd *cobra.Command, args []string) (site.Descriptor, error) {
	if len(args) == 1 {
		return site.Classify(args[0]), nil
	}

	ctx, cancel := a.context(cmd)
	defer cancel()
	info, err := a.hosts.Detect(ctx)
	if err != nil {
		return site.Descriptor{}, fmt.Errorf("detect host: %w", err)
	}
	return site.ClassifyDir(info.WorkingDir), nil
}

// formatDescriptor renders the populated descriptor fields as aligned
// "label : value" lines.
func formatDescriptor(d site.Descriptor) string {
	fields := [][2]string{
		{"type", d.Type.String()},
		{"site name", d.SiteName},
		{"site root", d.SiteRoot},
		{"server", d.Server},
		{"client", d.Client},
		{"dev site", d.DevSite},
		{"slot", d.Slot},
		{"path", d.Path},
	}

	width := 0
	for _, f := range fields {
		if f[1] != "" {
			width = max(width, ansi.StringWidth(f[0]))
		}
	}

	var sb strings.Builder
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		sb.WriteString(f[0])
		sb.WriteString(strings.Repeat(" ", width-ansi.StringWidth(f[0])))
		sb.WriteString(" : ")
		sb.WriteString(f[1])
		sb.WriteByte('\n')
	}
	return sb.String()
}
