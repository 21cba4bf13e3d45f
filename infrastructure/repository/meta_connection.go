package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-dashboard-api/pkg/utils"
)

const metaConnectionsTable = "meta_connections"

type MetaConnectionRepository interface {
	Upsert(connection *domain.MetaConnection) (*domain.MetaConnection, error)
	GetByUserID(userID int) (*domain.MetaConnection, error)
	GetByMetaUserID(metaUserID string) (*domain.MetaConnection, error)
	ListConnected() ([]*domain.MetaConnection, error)
	Delete(userID int) error
}

type metaConnectionRepository struct {
	conn *postgres.Connection
}

func NewMetaConnectionRepository(conn *postgres.Connection) MetaConnectionRepository {
	return &metaConnectionRepository{
		conn: conn,
	}
}

// Upsert grava o vínculo do usuário com a Meta. Cada usuário tem no máximo
// uma conexão; reconectar substitui o token e a expiração.
func (r *metaConnectionRepository) Upsert(connection *domain.MetaConnection) (*domain.MetaConnection, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da conexão: %w", err)
	}

	query, args, err := squirrel.
		Insert(metaConnectionsTable).
		Columns("id", "user_id", "meta_user_id", "long_access_token", "expired_at").
		Values(id, connection.UserID, connection.MetaUserID, connection.LongAccessToken, connection.ExpiredAt).
		Suffix(`
			ON CONFLICT (user_id) DO UPDATE SET
				meta_user_id = EXCLUDED.meta_user_id,
				long_access_token = EXCLUDED.long_access_token,
				expired_at = EXCLUDED.expired_at,
				updated_at = NOW()
		`).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(
		&connection.ID,
		&connection.CreatedAt,
		&connection.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao salvar conexão com a Meta: %w", err)
	}

	return connection, nil
}

func (r *metaConnectionRepository) GetByUserID(userID int) (*domain.MetaConnection, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "meta_user_id", "long_access_token", "expired_at", "created_at", "updated_at").
		From(metaConnectionsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var connection domain.MetaConnection
	err = r.conn.QueryRow(query, args...).Scan(
		&connection.ID,
		&connection.UserID,
		&connection.MetaUserID,
		&connection.LongAccessToken,
		&connection.ExpiredAt,
		&connection.CreatedAt,
		&connection.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conexão com a Meta: %w", err)
	}

	return &connection, nil
}

// GetByMetaUserID localiza a conexão pelo id do usuário na Meta. Usado para
// impedir que o mesmo usuário da Meta seja vinculado a duas contas.
func (r *metaConnectionRepository) GetByMetaUserID(metaUserID string) (*domain.MetaConnection, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "meta_user_id", "long_access_token", "expired_at", "created_at", "updated_at").
		From(metaConnectionsTable).
		Where(squirrel.Eq{"meta_user_id": metaUserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var connection domain.MetaConnection
	err = r.conn.QueryRow(query, args...).Scan(
		&connection.ID,
		&connection.UserID,
		&connection.MetaUserID,
		&connection.LongAccessToken,
		&connection.ExpiredAt,
		&connection.CreatedAt,
		&connection.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conexão pelo usuário da Meta: %w", err)
	}

	return &connection, nil
}

// ListConnected devolve as conexões com token de longa duração presente,
// para a sincronização agendada.
func (r *metaConnectionRepository) ListConnected() ([]*domain.MetaConnection, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "meta_user_id", "long_access_token", "expired_at", "created_at", "updated_at").
		From(metaConnectionsTable).
		Where(squirrel.NotEq{"long_access_token": ""}).
		OrderBy("user_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar conexões: %w", err)
	}
	defer rows.Close()

	connections := make([]*domain.MetaConnection, 0)
	for rows.Next() {
		var connection domain.MetaConnection
		if err := rows.Scan(
			&connection.ID,
			&connection.UserID,
			&connection.MetaUserID,
			&connection.LongAccessToken,
			&connection.ExpiredAt,
			&connection.CreatedAt,
			&connection.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear conexão: %w", err)
		}
		connections = append(connections, &connection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return connections, nil
}

func (r *metaConnectionRepository) Delete(userID int) error {
	query, args, err := squirrel.
		Delete(metaConnectionsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao remover conexão: %w", err)
	}

	return nil
}
