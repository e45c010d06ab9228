package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chazu/laybell/pkg/config"
	"github.com/chazu/laybell/pkg/export"
	"github.com/chazu/laybell/pkg/parts"
)

func newListCommand(g *globals) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List components in build order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := export.ForFormat(format)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range parts.All() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.File(w.Ext()), c.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&format, "format", "stl", "mesh format used for file names")
	return cmd
}

func newProfilesCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the named profiles in the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Resolve(g.configPath)
			names, err := config.Profiles(path)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
