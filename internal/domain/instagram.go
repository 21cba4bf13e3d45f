package domain

import "time"

type FacebookPage struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	UserID     int    `json:"user_id"`
}

// InstagramAccount representa uma conta business vinculada a uma página.
// Os contadores de insights são os últimos valores consolidados da janela
// sincronizada; follower_count é um snapshot pontual, nunca uma soma.
type InstagramAccount struct {
	ID                  string `json:"id"`
	ExternalID          string `json:"external_id"`
	PageID              string `json:"page_id"`
	Name                string `json:"name"`
	AccountsReached     *int64 `json:"accounts_reached"`
	Impressions         *int64 `json:"impressions"`
	ProfileViews        *int64 `json:"profile_views"`
	AccountsEngaged     *int64 `json:"accounts_engaged"`
	FollowerCount       *int64 `json:"follower_count"`
	FollowsAndUnfollows *int64 `json:"follows_and_unfollows"`
}

// InstagramAccountMetrics é o conjunto parcial de métricas aplicado sobre uma
// conta depois da consolidação; campos nulos não sobrescrevem o valor salvo.
type InstagramAccountMetrics struct {
	AccountsReached     *int64
	Impressions         *int64
	ProfileViews        *int64
	AccountsEngaged     *int64
	FollowerCount       *int64
	FollowsAndUnfollows *int64
}

type MediaInstagram struct {
	ID                 string     `json:"id"`
	ExternalID         string     `json:"external_id"`
	InstagramAccountID string     `json:"instagram_account_id"`
	Caption            string     `json:"caption"`
	MediaType          string     `json:"media_type"`
	MediaURL           string     `json:"media_url"`
	Permalink          string     `json:"permalink"`
	Timestamp          *time.Time `json:"timestamp"`
	Likes              int64      `json:"likes"`
	Comments           int64      `json:"comments"`
	Reach              *int64     `json:"reach"`
	Views              *int64     `json:"views"`
	Saved              *int64     `json:"saved"`
	Shares             *int64     `json:"shares"`
	Plays              *int64     `json:"plays"`
	WatchTime          *int64     `json:"watch_time"`
	AvgWatchTime       *float64   `json:"avg_watch_time"`
}

// MediaMetrics é o conjunto parcial de métricas de uma mídia retornado pelo
// batch de insights; campos nulos não sobrescrevem o valor salvo.
type MediaMetrics struct {
	Reach        *int64
	Views        *int64
	Saved        *int64
	Shares       *int64
	Plays        *int64
	WatchTime    *int64
	AvgWatchTime *float64
}

// IsEmpty informa se nenhuma métrica foi extraída do batch.
func (m MediaMetrics) IsEmpty() bool {
	return m.Reach == nil && m.Views == nil && m.Saved == nil && m.Shares == nil &&
		m.Plays == nil && m.WatchTime == nil && m.AvgWatchTime == nil
}

// IsEmpty informa se a consolidação não produziu nenhuma métrica de conta.
func (m InstagramAccountMetrics) IsEmpty() bool {
	return m.AccountsReached == nil && m.Impressions == nil && m.ProfileViews == nil &&
		m.AccountsEngaged == nil && m.FollowerCount == nil && m.FollowsAndUnfollows == nil
}
