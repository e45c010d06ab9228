package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"

	"github.com/chazu/laybell/pkg/config"
	"github.com/chazu/laybell/pkg/export"
	"github.com/chazu/laybell/pkg/parts"
	"github.com/chazu/laybell/pkg/telemetry"
)

// Report collects the results of one run.
type Report struct {
	RunID    string
	Started  time.Time
	Results  []Result // in the order the components were given
	Manifest string   // path of manifest.json, empty if not written
}

// Failed returns the results that produced no file.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Err combines every component error, or returns nil.
func (r *Report) Err() error {
	var err error
	for _, res := range r.Results {
		err = multierr.Append(err, res.Err)
	}
	return err
}

// Run builds comps concurrently against cfg. It always returns a report
// once the runner is usable; the error is non-nil when any component or
// the manifest failed.
func (r *Runner) Run(ctx context.Context, cfg *config.Config, comps []parts.Component) (*Report, error) {
	if err := r.check(cfg); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
		Results: make([]Result, len(comps)),
	}
	log := r.Logger.With().Str("run_id", report.RunID).Logger()
	ctx, span := r.tracer().Start(ctx, "build", trace.WithAttributes(
		attribute.String("run.id", report.RunID),
		attribute.Int("components", len(comps)),
	))
	defer span.End()

	workers := r.Workers
	if workers <= 0 || workers > len(comps) {
		workers = len(comps)
	}
	log.Debug().Int("components", len(comps)).Int("workers", workers).Msg("starting build")

	queue := make(chan int, len(comps))
	for i := range comps {
		queue <- i
	}
	close(queue)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				res := r.build(ctx, log, cfg, comps[i])
				report.Results[i] = res
				if r.Progress != nil {
					mu.Lock()
					r.Progress(res)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	err := report.Err()
	if !r.NoManifest {
		path, merr := export.WriteManifest(r.outDir(), r.manifest(report))
		if merr != nil {
			log.Error().Err(merr).Msg("manifest not written")
		}
		err = multierr.Append(err, merr)
		if merr == nil {
			report.Manifest = path
		}
	}

	failed := len(report.Failed())
	log.Info().
		Int("written", len(comps)-failed).
		Int("failed", failed).
		Dur("took", time.Since(report.Started)).
		Msg("build finished")
	telemetry.RecordError(span, err)
	return report, err
}

func (r *Runner) manifest(report *Report) *export.Manifest {
	format := export.FormatName(r.Writer)
	m := &export.Manifest{
		RunID:       report.RunID,
		GeneratedAt: report.Started.UTC(),
		Kernel:      r.KernelName,
		Format:      format,
		Profile:     r.Profile,
		Config:      r.ConfigPath,
	}
	for _, res := range report.Results {
		file := res.Component + r.Writer.Ext()
		if res.Err != nil {
			m.Components = append(m.Components, export.Failed(res.Component, file, format, res.Err))
			continue
		}
		m.Components = append(m.Components, export.Describe(res.Component, file, format, res.Mesh))
	}
	return m
}
