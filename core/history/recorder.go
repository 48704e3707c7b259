package history

import (
	"context"
	"fmt"

	"shopify-sync/core/pipeline"

	"gorm.io/gorm"
)

// DefaultLimit is the number of runs List returns when no limit is given.
const DefaultLimit = 20

// Recorder stores pipeline summaries in the database.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder migrates the history tables and returns the recorder.
func NewRecorder(db *gorm.DB) (*Recorder, error) {
	if err := db.AutoMigrate(&SyncRun{}, &SyncStage{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history tables: %w", err)
	}
	return &Recorder{db: db}, nil
}

// Record implements pipeline.Recorder.
func (r *Recorder) Record(ctx context.Context, s pipeline.Summary) error {
	run := SyncRun{
		ID:         s.RunID,
		StartedAt:  s.Started.UTC(),
		FinishedAt: s.Finished.UTC(),
		OK:         s.OK(),
	}
	for i, st := range s.Stages {
		run.Stages = append(run.Stages, SyncStage{
			Position:     i,
			Name:         st.Name,
			Discipline:   st.Discipline,
			OK:           st.OK(),
			Error:        st.Error(),
			Files:        st.Report.Files,
			Rows:         st.Report.Rows,
			Mutations:    st.Report.Mutations,
			Succeeded:    st.Report.Succeeded,
			Failed:       st.Report.Failed,
			Skipped:      st.Report.Skipped,
			Warnings:     st.Report.Warnings,
			Exported:     st.Report.Exported,
			DeleteFailed: st.Report.DeleteFailed,
			StartedAt:    st.Started.UTC(),
			FinishedAt:   st.Finished.UTC(),
		})
	}

	if err := r.db.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("failed to record run %s: %w", s.RunID, err)
	}
	return nil
}

// List returns the most recent runs with their stages, newest first.
func (r *Recorder) List(ctx context.Context, limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var runs []SyncRun
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
