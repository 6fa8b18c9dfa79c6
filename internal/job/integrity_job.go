package job

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/service"
)

// ColumnLister enumerates every column to check
type ColumnLister interface {
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

// IntegrityJob renumbers columns whose card positions are not exactly 0..N-1
type IntegrityJob struct {
	columns ColumnLister
	uow     repository.UnitOfWork
	metrics *metrics.Metrics
	logger  *zap.Logger
	timeout time.Duration
}

// NewIntegrityJob creates a new IntegrityJob instance
func NewIntegrityJob(columns ColumnLister, uow repository.UnitOfWork, m *metrics.Metrics, logger *zap.Logger) *IntegrityJob {
	return &IntegrityJob{
		columns: columns,
		uow:     uow,
		metrics: m,
		logger:  logger,
		timeout: 5 * time.Minute,
	}
}

// Schedule registers the job on c with a standard cron spec or descriptor such as "@hourly"
func (j *IntegrityJob) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	id, err := c.AddJob(spec, j)
	if err != nil {
		return 0, fmt.Errorf("invalid integrity job schedule %q: %w", spec, err)
	}
	return id, nil
}

// Run implements cron.Job
func (j *IntegrityJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if _, err := j.RunOnce(ctx); err != nil {
		j.logger.Error("Position integrity job failed", zap.Error(err))
	}
}

// RunOnce checks every column and returns how many columns were repaired
func (j *IntegrityJob) RunOnce(ctx context.Context) (int, error) {
	j.logger.Info("Starting position integrity job")

	ids, err := j.columns.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list columns: %w", err)
	}

	repaired, failed := 0, 0
	for _, columnID := range ids {
		changed, err := j.repairColumn(ctx, columnID)
		if err != nil {
			j.logger.Error("Failed to repair column positions",
				zap.String("column_id", columnID.String()),
				zap.Error(err),
			)
			failed++
			continue
		}
		if changed == 0 {
			continue
		}

		repaired++
		if j.metrics != nil {
			j.metrics.AddPositionsRepaired(changed)
		}
		j.logger.Warn("Repaired non-dense card positions",
			zap.String("column_id", columnID.String()),
			zap.Int("cards_renumbered", changed),
		)
	}

	j.logger.Info("Position integrity job completed",
		zap.Int("columns_checked", len(ids)),
		zap.Int("columns_repaired", repaired),
		zap.Int("failed", failed),
	)
	return repaired, nil
}

func (j *IntegrityJob) repairColumn(ctx context.Context, columnID uuid.UUID) (int, error) {
	changed := 0
	err := j.uow.Do(ctx, func(tx *repository.Repositories) error {
		cards, err := tx.Cards.FindByColumn(ctx, columnID)
		if err != nil {
			return err
		}
		positions := make([]int, len(cards))
		for i, card := range cards {
			positions[i] = card.Position
		}
		if service.IsDense(positions) {
			return nil
		}
		changed, err = tx.Cards.Compact(ctx, columnID)
		return err
	})
	return changed, err
}
