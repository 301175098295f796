package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunRepository persists simulation run metadata
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create records a new simulation run and returns its ID. The config
// snapshot is stored verbatim so a persisted run can be replayed.
func (r *RunRepository) Create(ctx context.Context, seed int64, configSnapshot string) (uuid.UUID, error) {
	runID := uuid.New()

	insertQuery := `
		INSERT INTO simulation_runs (id, seed, config, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, insertQuery, runID, seed, configSnapshot, time.Now().UTC())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert simulation run: %w", err)
	}

	return runID, nil
}
