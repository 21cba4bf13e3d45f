package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-dashboard-api/pkg/utils"
)

const adAccountsTable = "ad_accounts"

type AdAccountRepository interface {
	Upsert(account *domain.AdAccount) (string, error)
	ListByUserID(userID int) ([]*domain.AdAccount, error)
}

type adAccountRepository struct {
	conn *postgres.Connection
}

func NewAdAccountRepository(conn *postgres.Connection) AdAccountRepository {
	return &adAccountRepository{
		conn: conn,
	}
}

// Upsert grava a conta de anúncios e devolve o id interno. O external_id
// é sempre salvo sem o prefixo act_.
func (r *adAccountRepository) Upsert(account *domain.AdAccount) (string, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar id da conta: %w", err)
	}

	query, args, err := squirrel.
		Insert(adAccountsTable).
		Columns("id", "external_id", "name", "user_id").
		Values(id, account.ExternalID, account.Name, account.UserID).
		Suffix(`
			ON CONFLICT (external_id) DO UPDATE SET
				name = EXCLUDED.name,
				user_id = EXCLUDED.user_id,
				updated_at = NOW()
		`).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&account.ID); err != nil {
		return "", fmt.Errorf("erro ao salvar conta de anúncios: %w", err)
	}

	return account.ID, nil
}

func (r *adAccountRepository) ListByUserID(userID int) ([]*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select("id", "external_id", "name", "user_id").
		From(adAccountsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar contas: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		var account domain.AdAccount
		if err := rows.Scan(
			&account.ID,
			&account.ExternalID,
			&account.Name,
			&account.UserID,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear conta: %w", err)
		}
		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return accounts, nil
}
