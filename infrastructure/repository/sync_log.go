package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
)

const syncLogsTable = "sync_logs"

type SyncLogRepository interface {
	Append(runID, entity, message string) error
	ListSince(runID string, sinceID int64, limit int) ([]*domain.SyncLog, error)
}

type syncLogRepository struct {
	conn *postgres.Connection
}

func NewSyncLogRepository(conn *postgres.Connection) SyncLogRepository {
	return &syncLogRepository{
		conn: conn,
	}
}

// Append grava uma linha de log da run. A tabela é append-only; o id serial
// crescente é a ordem de leitura dos consumidores.
func (r *syncLogRepository) Append(runID, entity, message string) error {
	query, args, err := squirrel.
		Insert(syncLogsTable).
		Columns("run_id", "entity", "message").
		Values(runID, entity, message).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao gravar log da run: %w", err)
	}

	return nil
}

// ListSince devolve os logs da run com id > sinceID, em ordem crescente.
func (r *syncLogRepository) ListSince(runID string, sinceID int64, limit int) ([]*domain.SyncLog, error) {
	query, args, err := squirrel.
		Select("id", "run_id", "entity", "message", "created_at").
		From(syncLogsTable).
		Where(squirrel.Eq{"run_id": runID}).
		Where(squirrel.Gt{"id": sinceID}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar logs da run: %w", err)
	}
	defer rows.Close()

	logs := make([]*domain.SyncLog, 0)
	for rows.Next() {
		var log domain.SyncLog
		if err := rows.Scan(
			&log.ID,
			&log.RunID,
			&log.Entity,
			&log.Message,
			&log.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear log: %w", err)
		}
		logs = append(logs, &log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return logs, nil
}
