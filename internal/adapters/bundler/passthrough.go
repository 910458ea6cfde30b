package bundler

import (
	"context"
	"os"

	"go.trai.ch/prebundle/internal/core/domain"
	"go.trai.ch/zerr"
)

// Passthrough serves the entry file unchanged.
// The only bundled file is the entry itself.
func Passthrough(_ context.Context, bc domain.BundleContext) (*domain.BundleResult, error) {
	path := bc.Entry.ResolvedFilepath

	code, err := os.ReadFile(path) //nolint:gosec // Entry paths come from the project config
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrBundleFailed, err.Error()), "entry", path)
	}

	return &domain.BundleResult{
		Code:         string(code),
		BundledFiles: []string{path},
	}, nil
}
