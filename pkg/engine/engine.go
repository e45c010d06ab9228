// Package engine builds components into mesh files. Each component is
// recorded into a composition graph, checked, replayed into the geometry
// kernel, tessellated and written. Components build concurrently and a
// failure in one never stops the others.
package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/chazu/laybell/pkg/config"
	"github.com/chazu/laybell/pkg/export"
	"github.com/chazu/laybell/pkg/graph"
	"github.com/chazu/laybell/pkg/kernel"
	"github.com/chazu/laybell/pkg/parts"
	"github.com/chazu/laybell/pkg/telemetry"
	"github.com/chazu/laybell/pkg/tessellate"
)

// Error attributes a build failure to its component.
type Error struct {
	Component string
	Err       error
}

func (e *Error) Error() string { return fmt.Sprintf("engine: %s: %v", e.Component, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Compile records c against a fresh recorder and checks the resulting
// graph. No kernel is involved.
func Compile(cfg *config.Config, c parts.Component) (*graph.CompositionGraph, error) {
	r := graph.NewRecorder()
	s, err := c.Build(r, cfg)
	if err != nil {
		return nil, err
	}
	g, err := r.Graph(s)
	if err != nil {
		return nil, err
	}
	if err := graph.Check(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Mesh compiles c and tessellates it with k.
func Mesh(k kernel.Kernel, cfg *config.Config, c parts.Component) (*kernel.Mesh, error) {
	g, err := Compile(cfg, c)
	if err != nil {
		return nil, err
	}
	s, err := tessellate.Replay(g, k)
	if err != nil {
		return nil, err
	}
	return tessellate.Mesh(k, s, c.Name)
}

// Result is the outcome of one component.
type Result struct {
	Component string
	Path      string
	Mesh      *kernel.Mesh // nil on failure
	Duration  time.Duration
	Err       error
}

// Runner builds components with a kernel and writes them with a writer.
type Runner struct {
	Kernel     kernel.Kernel
	KernelName string // recorded in the manifest
	Writer     export.Writer
	OutDir     string
	// Workers bounds concurrent builds. Zero means one per component.
	Workers int
	// Timeout bounds the meshing of one component. Zero means no limit.
	Timeout time.Duration
	Logger  zerolog.Logger
	Tracer  trace.Tracer
	// Progress, when set, is called once per component after its file has
	// been written or its build has failed. Calls are serialised.
	Progress func(Result)
	// NoManifest skips writing manifest.json.
	NoManifest bool
	// Profile and ConfigPath are recorded in the manifest.
	Profile    string
	ConfigPath string
}

func (r *Runner) tracer() trace.Tracer {
	if r.Tracer == nil {
		return noop.NewTracerProvider().Tracer(telemetry.ServiceName)
	}
	return r.Tracer
}

func (r *Runner) outDir() string {
	if r.OutDir == "" {
		return export.DefaultDir
	}
	return r.OutDir
}

func (r *Runner) check(cfg *config.Config) error {
	switch {
	case r.Kernel == nil:
		return errors.New("engine: runner has no kernel")
	case r.Writer == nil:
		return errors.New("engine: runner has no writer")
	case cfg == nil:
		return errors.New("engine: no configuration")
	}
	return nil
}

// build runs one component end to end. The completion log line is only
// emitted once the writer has returned successfully.
func (r *Runner) build(ctx context.Context, log zerolog.Logger, cfg *config.Config, c parts.Component) (res Result) {
	start := time.Now()
	res = Result{Component: c.Name, Path: filepath.Join(r.outDir(), c.File(r.Writer.Ext()))}
	log = log.With().Str("component", c.Name).Logger()

	ctx, span := r.tracer().Start(ctx, "build "+c.Name, trace.WithAttributes(
		attribute.String("component", c.Name),
		attribute.String("output.path", res.Path),
	))
	defer func() {
		res.Duration = time.Since(start)
		if res.Err != nil {
			res.Err = &Error{Component: c.Name, Err: res.Err}
			log.Error().Err(res.Err).Msg("component failed")
		}
		telemetry.RecordError(span, res.Err)
		span.End()
	}()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	log.Debug().Msg("meshing")
	m, err := r.mesh(ctx, cfg, c)
	if err != nil {
		res.Err = err
		return res
	}
	span.SetAttributes(
		attribute.Int("mesh.triangles", m.TriangleCount()),
		attribute.Int("mesh.vertices", m.VertexCount()),
	)

	if err := r.Writer.Write(res.Path, m); err != nil {
		res.Err = err
		return res
	}
	res.Mesh = m
	log.Info().
		Str("path", res.Path).
		Int("triangles", m.TriangleCount()).
		Dur("took", time.Since(start)).
		Msg("component written")
	return res
}
