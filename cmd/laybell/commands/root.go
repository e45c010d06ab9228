// Package commands implements the laybell command line.
package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/chazu/laybell/pkg/config"
	"github.com/chazu/laybell/pkg/telemetry"
)

// globals holds the persistent flags and what is derived from them.
type globals struct {
	configPath string
	profile    string
	logLevel   string

	log zerolog.Logger
}

// Execute runs the root command.
func Execute(ctx context.Context, version string) error {
	return NewRootCommand(version).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Running the root command with no
// subcommand builds every component.
func NewRootCommand(version string) *cobra.Command {
	g := &globals{}
	b := &buildOptions{}

	root := &cobra.Command{
		Use:   "laybell",
		Short: "Generate printable meshes for the vial labeling fixture",
		Long: `laybell turns one dimensional configuration into mesh files for the six
printed parts of the vial labeling fixture: main frame, peel plate, vial
cradle, spool holder, dancer arm and guide roller bracket.

The configuration is read from --config, $` + config.EnvVar + ` (or $` + config.LegacyEnvVar + `),
the repository's config.toml, a config.toml two directories above the executable, or the
current directory, in that order.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := telemetry.NewLogger(g.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			g.log = log
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, g, b, nil)
		},
	}

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file path (.toml, .yaml)")
	root.PersistentFlags().StringVar(&g.profile, "profile", "", "named profile overlaid on [default]")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "trace, debug, info, warn or error (default $"+telemetry.LevelEnv+" or info)")
	b.register(root)

	root.AddCommand(newBuildCommand(g))
	root.AddCommand(newValidateCommand(g))
	root.AddCommand(newDescribeCommand(g))
	root.AddCommand(newListCommand(g))
	root.AddCommand(newProfilesCommand(g))

	return root
}

// loadConfig resolves and loads the configuration. Failure here is fatal
// for the whole run.
func (g *globals) loadConfig() (*config.Config, string, error) {
	path := config.Resolve(g.configPath)
	cfg, err := config.Load(path, g.profile)
	if err != nil {
		return nil, path, err
	}
	g.log.Debug().Str("path", path).Str("profile", g.profile).Msg("configuration loaded")
	return cfg, path, nil
}

func profileLabel(p string) string {
	if p == "" {
		return "default"
	}
	return fmt.Sprintf("profile %s", p)
}
