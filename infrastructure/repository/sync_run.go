package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-dashboard-api/pkg/utils"
)

const syncRunsTable = "sync_runs"

type SyncRunRepository interface {
	Create(userID int) (*domain.SyncRun, error)
	MarkRunning(runID string) error
	MarkFinished(runID string, status domain.SyncRunStatus) error
	GetByID(runID string) (*domain.SyncRun, error)
}

type syncRunRepository struct {
	conn *postgres.Connection
}

func NewSyncRunRepository(conn *postgres.Connection) SyncRunRepository {
	return &syncRunRepository{
		conn: conn,
	}
}

// Create registra uma nova run com status pending.
func (r *syncRunRepository) Create(userID int) (*domain.SyncRun, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da run: %w", err)
	}

	run := &domain.SyncRun{
		ID:     id,
		UserID: userID,
		Status: domain.SyncRunStatusPending,
	}

	query, args, err := squirrel.
		Insert(syncRunsTable).
		Columns("id", "user_id", "status").
		Values(run.ID, run.UserID, run.Status).
		Suffix("RETURNING started_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&run.StartedAt); err != nil {
		return nil, fmt.Errorf("erro ao criar sync run: %w", err)
	}

	return run, nil
}

func (r *syncRunRepository) MarkRunning(runID string) error {
	return r.updateStatus(runID, domain.SyncRunStatusRunning, false)
}

// MarkFinished fecha a run com um status terminal e grava finished_at. Uma
// run já finalizada nunca muda de novo.
func (r *syncRunRepository) MarkFinished(runID string, status domain.SyncRunStatus) error {
	if !status.IsFinished() {
		return fmt.Errorf("status %q não é terminal", status)
	}
	return r.updateStatus(runID, status, true)
}

func (r *syncRunRepository) updateStatus(runID string, status domain.SyncRunStatus, finished bool) error {
	queryBuilder := squirrel.
		Update(syncRunsTable).
		Set("status", status).
		Where(squirrel.Eq{"id": runID}).
		Where(squirrel.Eq{"status": []domain.SyncRunStatus{
			domain.SyncRunStatusPending,
			domain.SyncRunStatusRunning,
		}})

	if finished {
		queryBuilder = queryBuilder.Set("finished_at", time.Now().UTC())
	}

	query, args, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status da run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter linhas afetadas: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s já está finalizada", runID)
	}

	return nil
}

func (r *syncRunRepository) GetByID(runID string) (*domain.SyncRun, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "status", "started_at", "finished_at").
		From(syncRunsTable).
		Where(squirrel.Eq{"id": runID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var run domain.SyncRun
	err = r.conn.QueryRow(query, args...).Scan(
		&run.ID,
		&run.UserID,
		&run.Status,
		&run.StartedAt,
		&run.FinishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar sync run: %w", err)
	}

	return &run, nil
}
