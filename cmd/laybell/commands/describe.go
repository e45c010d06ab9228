package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/laybell/pkg/engine"
	"github.com/chazu/laybell/pkg/graph"
	"github.com/chazu/laybell/pkg/parts"
)

func newDescribeCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:       "describe [component...]",
		Short:     "Print composition graphs without meshing",
		ValidArgs: parts.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			comps, err := parts.Select(args)
			if err != nil {
				return err
			}
			cfg, _, err := g.loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, c := range comps {
				if i > 0 {
					fmt.Fprintln(out)
				}
				cg, err := engine.Compile(cfg, c)
				if err != nil {
					return err
				}
				b := cg.RootNode().Bounds
				fmt.Fprintf(out, "%s: %s\n", c.Name, c.Title)
				fmt.Fprintf(out, "  bounds %s .. %s (size %s), %d nodes, %d cuts\n",
					b.Min, b.Max, b.Size(), cg.NodeCount(), len(cg.Cuts()))
				if err := graph.Fprint(out, cg); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
