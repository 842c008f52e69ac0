// Package batch runs the wipe over multiple roots in sequence and keeps
// the aggregate tally. Per-root failures are collected, not fatal: the
// remaining roots still get processed.
package batch

import (
	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/stefanos/scour/internal/walk"
)

// Totals aggregates deletions across every root of a run.
type Totals struct {
	FilesDeleted  int
	DirsDeleted   int
	FilesRetained int
}

// Driver iterates roots one at a time; concurrency would race the shared
// wipe buffers.
type Driver struct {
	walker *walk.Walker
	logger *zap.Logger
}

// New creates a Driver.
func New(walker *walk.Walker, logger *zap.Logger) *Driver {
	return &Driver{
		walker: walker,
		logger: logger.Named("batch"),
	}
}

// Run wipes every root in order and logs one aggregate summary. The
// returned error joins all per-root failures; Totals is valid either way.
func (d *Driver) Run(roots []string) (Totals, error) {
	var totals Totals
	var errs *multierror.Error

	for _, root := range roots {
		sum, err := d.walker.WipeTree(root)
		totals.FilesDeleted += sum.FilesDeleted
		totals.DirsDeleted += sum.DirsDeleted
		totals.FilesRetained += sum.FilesRetained
		if err != nil {
			d.logger.Error("root not fully wiped",
				zap.String("root", root),
				zap.Error(err))
			errs = multierror.Append(errs, errors.Wrapf(err, "root %q", root))
			continue
		}
		d.logger.Info("root done",
			zap.String("root", root),
			zap.Int("files_deleted", sum.FilesDeleted),
			zap.Int("dirs_deleted", sum.DirsDeleted))
	}

	d.logger.Info("summary",
		zap.Int("roots", len(roots)),
		zap.Int("files_deleted", totals.FilesDeleted),
		zap.Int("dirs_deleted", totals.DirsDeleted),
		zap.Int("files_retained", totals.FilesRetained))
	return totals, errs.ErrorOrNil()
}
