package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Davinais/FM-Heuristic/pkg/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GormRunRepository.
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// CreateRun inserts a new run record.
func (r *GormRunRepository) CreateRun(ctx context.Context, run *model.PartitionRun) error {
	rec := &PartitionRunRecord{RunUUID: run.RunUUID}
	rec.FromModel(run)

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	run.ID = rec.ID
	run.CreateTime = rec.CreateTime
	return nil
}

// CompleteRun marks a run completed and fills in its result fields,
// locking the row FOR UPDATE first so a concurrent FailRun can't race it.
func (r *GormRunRepository) CompleteRun(ctx context.Context, runUUID string, run *model.PartitionRun) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec PartitionRunRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("run_uuid = ?", runUUID).
			First(&rec).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("run not found: %s", runUUID)
			}
			return fmt.Errorf("failed to lock run: %w", err)
		}

		now := time.Now()
		run.Status = model.RunStatusCompleted
		run.EndTime = &now
		rec.FromModel(run)

		if err := tx.Save(&rec).Error; err != nil {
			return fmt.Errorf("failed to complete run: %w", err)
		}
		return nil
	})
}

// FailRun marks a run failed with the given status info.
func (r *GormRunRepository) FailRun(ctx context.Context, runUUID string, info string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&PartitionRunRecord{}).
		Where("run_uuid = ?", runUUID).
		Updates(map[string]interface{}{
			"status":      model.RunStatusFailed,
			"status_info": info,
			"end_time":    now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to fail run: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("run not found: %s", runUUID)
	}
	return nil
}

// GetRunByUUID retrieves a run by its UUID.
func (r *GormRunRepository) GetRunByUUID(ctx context.Context, runUUID string) (*model.PartitionRun, error) {
	var rec PartitionRunRecord

	err := r.db.WithContext(ctx).Where("run_uuid = ?", runUUID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("run not found: %s", runUUID)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return rec.ToModel(), nil
}

// ListRecentRuns retrieves the most recent runs, newest first.
func (r *GormRunRepository) ListRecentRuns(ctx context.Context, limit int) ([]*model.PartitionRun, error) {
	var recs []PartitionRunRecord

	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*model.PartitionRun, len(recs))
	for i, rec := range recs {
		runs[i] = rec.ToModel()
	}
	return runs, nil
}

// GormPassRepository implements PassRepository using GORM.
type GormPassRepository struct {
	db *gorm.DB
}

// NewGormPassRepository creates a new GormPassRepository.
func NewGormPassRepository(db *gorm.DB) *GormPassRepository {
	return &GormPassRepository{db: db}
}

// SavePasses appends the pass history for a run in a single batch insert.
func (r *GormPassRepository) SavePasses(ctx context.Context, passes []model.PassRecord) error {
	if len(passes) == 0 {
		return nil
	}

	recs := make([]PassHistoryRecord, len(passes))
	for i, p := range passes {
		recs[i] = PassHistoryRecord{
			RunUUID:     p.RunUUID,
			PassIndex:   p.PassIndex,
			MoveNum:     p.MoveNum,
			BestMoveNum: p.BestMoveNum,
			AccGain:     p.AccGain,
		}
	}

	if err := r.db.WithContext(ctx).Create(&recs).Error; err != nil {
		return fmt.Errorf("failed to save pass history: %w", err)
	}
	return nil
}

// GetPassesByRunUUID retrieves the pass history for a run, in order.
func (r *GormPassRepository) GetPassesByRunUUID(ctx context.Context, runUUID string) ([]model.PassRecord, error) {
	var recs []PassHistoryRecord

	err := r.db.WithContext(ctx).
		Where("run_uuid = ?", runUUID).
		Order("pass_index ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pass history: %w", err)
	}

	passes := make([]model.PassRecord, len(recs))
	for i, rec := range recs {
		passes[i] = rec.ToModel()
	}
	return passes, nil
}
