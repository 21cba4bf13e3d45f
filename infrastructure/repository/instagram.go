package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-dashboard-api/pkg/utils"
)

const (
	facebookPagesTable     = "facebook_pages"
	instagramAccountsTable = "instagram_accounts"
	mediaInstagramTable    = "media_instagram"
)

type InstagramRepository interface {
	UpsertPage(page *domain.FacebookPage) (string, error)
	UpsertAccount(account *domain.InstagramAccount) (string, error)
	UpdateAccountMetrics(accountID string, metrics domain.InstagramAccountMetrics) error
	UpsertMedia(media *domain.MediaInstagram) (string, error)
	UpdateMediaMetrics(mediaID string, metrics domain.MediaMetrics) error
}

type instagramRepository struct {
	conn *postgres.Connection
}

func NewInstagramRepository(conn *postgres.Connection) InstagramRepository {
	return &instagramRepository{
		conn: conn,
	}
}

func (r *instagramRepository) UpsertPage(page *domain.FacebookPage) (string, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar id da página: %w", err)
	}

	query, args, err := squirrel.
		Insert(facebookPagesTable).
		Columns("id", "external_id", "name", "user_id").
		Values(id, page.ExternalID, page.Name, page.UserID).
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

	if err := r.conn.QueryRow(query, args...).Scan(&page.ID); err != nil {
		return "", fmt.Errorf("erro ao salvar página: %w", err)
	}

	return page.ID, nil
}

func (r *instagramRepository) UpsertAccount(account *domain.InstagramAccount) (string, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar id da conta: %w", err)
	}

	query, args, err := squirrel.
		Insert(instagramAccountsTable).
		Columns("id", "external_id", "page_id", "name").
		Values(id, account.ExternalID, account.PageID, account.Name).
		Suffix(`
			ON CONFLICT (external_id) DO UPDATE SET
				page_id = EXCLUDED.page_id,
				name = EXCLUDED.name,
				updated_at = NOW()
		`).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&account.ID); err != nil {
		return "", fmt.Errorf("erro ao salvar conta do Instagram: %w", err)
	}

	return account.ID, nil
}

// UpdateAccountMetrics aplica apenas as métricas presentes; campos nulos
// preservam o valor salvo.
func (r *instagramRepository) UpdateAccountMetrics(accountID string, metrics domain.InstagramAccountMetrics) error {
	if metrics.IsEmpty() {
		return nil
	}

	queryBuilder := squirrel.
		Update(instagramAccountsTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": accountID})

	if metrics.AccountsReached != nil {
		queryBuilder = queryBuilder.Set("accounts_reached", *metrics.AccountsReached)
	}
	if metrics.Impressions != nil {
		queryBuilder = queryBuilder.Set("impressions", *metrics.Impressions)
	}
	if metrics.ProfileViews != nil {
		queryBuilder = queryBuilder.Set("profile_views", *metrics.ProfileViews)
	}
	if metrics.AccountsEngaged != nil {
		queryBuilder = queryBuilder.Set("accounts_engaged", *metrics.AccountsEngaged)
	}
	if metrics.FollowerCount != nil {
		queryBuilder = queryBuilder.Set("follower_count", *metrics.FollowerCount)
	}
	if metrics.FollowsAndUnfollows != nil {
		queryBuilder = queryBuilder.Set("follows_and_unfollows", *metrics.FollowsAndUnfollows)
	}

	query, args, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar métricas da conta: %w", err)
	}

	return nil
}

func (r *instagramRepository) UpsertMedia(media *domain.MediaInstagram) (string, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar id da mídia: %w", err)
	}

	query, args, err := squirrel.
		Insert(mediaInstagramTable).
		Columns("id", "external_id", "instagram_account_id", "caption", "media_type", "media_url", "permalink", "timestamp", "likes", "comments").
		Values(id, media.ExternalID, media.InstagramAccountID, media.Caption, media.MediaType, media.MediaURL, media.Permalink, media.Timestamp, media.Likes, media.Comments).
		Suffix(`
			ON CONFLICT (external_id) DO UPDATE SET
				instagram_account_id = EXCLUDED.instagram_account_id,
				caption = EXCLUDED.caption,
				media_type = EXCLUDED.media_type,
				media_url = EXCLUDED.media_url,
				permalink = EXCLUDED.permalink,
				timestamp = EXCLUDED.timestamp,
				likes = EXCLUDED.likes,
				comments = EXCLUDED.comments,
				updated_at = NOW()
		`).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&media.ID); err != nil {
		return "", fmt.Errorf("erro ao salvar mídia: %w", err)
	}

	return media.ID, nil
}

// UpdateMediaMetrics aplica apenas as métricas presentes no batch; campos
// nulos preservam o valor salvo.
func (r *instagramRepository) UpdateMediaMetrics(mediaID string, metrics domain.MediaMetrics) error {
	if metrics.IsEmpty() {
		return nil
	}

	queryBuilder := squirrel.
		Update(mediaInstagramTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": mediaID})

	if metrics.Reach != nil {
		queryBuilder = queryBuilder.Set("reach", *metrics.Reach)
	}
	if metrics.Views != nil {
		queryBuilder = queryBuilder.Set("views", *metrics.Views)
	}
	if metrics.Saved != nil {
		queryBuilder = queryBuilder.Set("saved", *metrics.Saved)
	}
	if metrics.Shares != nil {
		queryBuilder = queryBuilder.Set("shares", *metrics.Shares)
	}
	if metrics.Plays != nil {
		queryBuilder = queryBuilder.Set("plays", *metrics.Plays)
	}
	if metrics.WatchTime != nil {
		queryBuilder = queryBuilder.Set("watch_time", *metrics.WatchTime)
	}
	if metrics.AvgWatchTime != nil {
		queryBuilder = queryBuilder.Set("avg_watch_time", *metrics.AvgWatchTime)
	}

	query, args, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar métricas da mídia: %w", err)
	}

	return nil
}
