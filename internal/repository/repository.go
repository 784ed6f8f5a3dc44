// Package repository provides database abstraction for persisting
// partition run records.
package repository

import (
	"context"

	"github.com/Davinais/FM-Heuristic/pkg/model"
)

// RunRepository defines the interface for partition-run persistence.
type RunRepository interface {
	// CreateRun inserts a new run record in RunStatusRunning.
	CreateRun(ctx context.Context, run *model.PartitionRun) error

	// CompleteRun marks a run completed and fills in its result fields.
	CompleteRun(ctx context.Context, runUUID string, run *model.PartitionRun) error

	// FailRun marks a run failed with the given status info.
	FailRun(ctx context.Context, runUUID string, info string) error

	// GetRunByUUID retrieves a run by its UUID.
	GetRunByUUID(ctx context.Context, runUUID string) (*model.PartitionRun, error)

	// ListRecentRuns retrieves the most recent runs, newest first.
	ListRecentRuns(ctx context.Context, limit int) ([]*model.PartitionRun, error)
}

// PassRepository defines the interface for per-pass history persistence.
type PassRepository interface {
	// SavePasses appends the pass history for a run.
	SavePasses(ctx context.Context, passes []model.PassRecord) error

	// GetPassesByRunUUID retrieves the pass history for a run, in order.
	GetPassesByRunUUID(ctx context.Context, runUUID string) ([]model.PassRecord, error)
}
