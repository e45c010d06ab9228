package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/laybell/pkg/config"
)

func newValidateCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration against printable ranges",
		Long: `Load the configuration and check every dimension against the printable
range and the cross-field rules (label narrower than the frame, flange wider
than the spindle, and so on). Every problem is reported, not just the first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := g.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := config.Validate(cfg); err != nil {
				var ve *config.ValidationError
				if errors.As(err, &ve) {
					for _, p := range ve.Problems {
						fmt.Fprintf(out, "  %s\n", p)
					}
				}
				return err
			}
			fmt.Fprintf(out, "%s (%s): ok\n", path, profileLabel(g.profile))
			return nil
		},
	}
}
