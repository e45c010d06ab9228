//go:build !manifold

// Package manifold binds the Manifold mesh-boolean library through CGo.
// Without the "manifold" build tag only this stub is compiled and New
// reports ErrUnavailable, so the sdfx kernel remains the default engine.
package manifold

import (
	"errors"

	"github.com/chazu/laybell/pkg/kernel"
)

// ErrUnavailable is returned by New when the binary was built without the
// manifold tag.
var ErrUnavailable = errors.New("manifold kernel not available: build with -tags=manifold")

// New always fails in builds without the manifold tag.
func New() (kernel.Kernel, error) {
	return nil, ErrUnavailable
}
