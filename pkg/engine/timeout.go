package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/chazu/laybell/pkg/config"
	"github.com/chazu/laybell/pkg/kernel"
	"github.com/chazu/laybell/pkg/parts"
)

type meshResult struct {
	mesh *kernel.Mesh
	err  error
}

// mesh runs Mesh on its own goroutine so a kernel panic becomes an error
// and a slow kernel can be abandoned. An abandoned goroutine keeps running
// until the kernel returns; its result is dropped and nothing is written.
func (r *Runner) mesh(ctx context.Context, cfg *config.Config, c parts.Component) (*kernel.Mesh, error) {
	ch := make(chan meshResult, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				ch <- meshResult{err: fmt.Errorf("panic during build: %v", p)}
			}
		}()
		m, err := Mesh(r.Kernel, cfg, c)
		ch <- meshResult{mesh: m, err: err}
	}()
	return waitWithTimeout(ctx, ch, r.Timeout)
}

// waitWithTimeout waits for a result from ch, giving up when ctx is done
// or, if timeout is positive, when it elapses.
func waitWithTimeout(ctx context.Context, ch <-chan meshResult, timeout time.Duration) (*kernel.Mesh, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case res := <-ch:
		return res.mesh, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-expired:
		return nil, fmt.Errorf("build timed out after %s", timeout)
	}
}
