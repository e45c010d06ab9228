package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chazu/laybell/pkg/config"
	"github.com/chazu/laybell/pkg/engine"
	"github.com/chazu/laybell/pkg/export"
	"github.com/chazu/laybell/pkg/kernel"
	"github.com/chazu/laybell/pkg/kernel/manifold"
	"github.com/chazu/laybell/pkg/kernel/sdfx"
	"github.com/chazu/laybell/pkg/parts"
	"github.com/chazu/laybell/pkg/telemetry"
)

// Kernel names accepted by --kernel.
const (
	kernelSdfx     = "sdfx"
	kernelManifold = "manifold"
)

type buildOptions struct {
	out        string
	format     string
	kernel     string
	cells      int
	cellSize   float64
	workers    int
	timeout    time.Duration
	trace      bool
	noManifest bool
	strict     bool
}

func (o *buildOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.out, "out", export.DefaultDir, "output directory")
	f.StringVar(&o.format, "format", "stl", "mesh format: "+strings.Join(export.Formats, ", "))
	f.StringVar(&o.kernel, "kernel", kernelSdfx, "geometry kernel: sdfx or manifold")
	f.IntVar(&o.cells, "cells", sdfx.DefaultMeshCells, "marching cubes resolution along the longest side (sdfx only)")
	f.Float64Var(&o.cellSize, "cell-size", 0, "marching cubes cell size in mm, overrides --cells (sdfx only)")
	f.IntVar(&o.workers, "workers", 0, "concurrent builds (0 = one per component)")
	f.DurationVar(&o.timeout, "timeout", 0, "give up on a component after this long (0 = no limit)")
	f.BoolVar(&o.trace, "trace", false, "print build spans to stderr")
	f.BoolVar(&o.noManifest, "no-manifest", false, "do not write manifest.json")
	f.BoolVar(&o.strict, "strict", false, "refuse to build a configuration that fails validation")
}

func newBuildCommand(g *globals) *cobra.Command {
	b := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build [component...]",
		Short: "Build all or the named components",
		Example: `  # Everything, binary STL into models/components
  laybell build

  # Two parts as 3MF with the 22 mm vial profile
  laybell build --profile 22mm --format 3mf main_frame vial_cradle`,
		ValidArgs: parts.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, g, b, args)
		},
	}
	b.register(cmd)
	return cmd
}

func newKernel(name string, b *buildOptions) (kernel.Kernel, error) {
	switch name {
	case kernelSdfx:
		return sdfx.New(sdfx.WithMeshCells(b.cells), sdfx.WithCellSize(b.cellSize)), nil
	case kernelManifold:
		return manifold.New()
	}
	return nil, fmt.Errorf("unknown kernel %q (want %s or %s)", name, kernelSdfx, kernelManifold)
}

func runBuild(cmd *cobra.Command, g *globals, b *buildOptions, names []string) error {
	comps, err := parts.Select(names)
	if err != nil {
		return err
	}
	writer, err := export.ForFormat(b.format)
	if err != nil {
		return err
	}
	k, err := newKernel(b.kernel, b)
	if err != nil {
		return err
	}

	cfg, path, err := g.loadConfig()
	if err != nil {
		return err
	}
	if b.strict {
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}

	var spans io.Writer
	if b.trace {
		spans = cmd.ErrOrStderr()
	}
	tracer, err := telemetry.NewTracer(spans)
	if err != nil {
		return err
	}
	defer tracer.Shutdown(cmd.Context())

	out := cmd.OutOrStdout()
	runner := &engine.Runner{
		Kernel:     k,
		KernelName: b.kernel,
		Writer:     writer,
		OutDir:     b.out,
		Workers:    b.workers,
		Timeout:    b.timeout,
		Logger:     g.log,
		Tracer:     tracer,
		NoManifest: b.noManifest,
		Profile:    g.profile,
		ConfigPath: path,
		Progress: func(res engine.Result) {
			if res.Err == nil {
				fmt.Fprintf(out, "wrote %s (%d triangles)\n", res.Path, res.Mesh.TriangleCount())
			}
		},
	}

	report, err := runner.Run(cmd.Context(), cfg, comps)
	if report != nil {
		if n := len(report.Failed()); n > 0 {
			return fmt.Errorf("%d of %d components failed: %w", n, len(comps), err)
		}
	}
	return err
}
