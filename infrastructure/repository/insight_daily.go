package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
)

const (
	adInsightsDailyTable       = "ad_insights_daily"
	adSetInsightsDailyTable    = "ad_set_insights_daily"
	campaignInsightsDailyTable = "campaign_insights_daily"
)

// InsightRepository persiste as métricas diárias nos três níveis da
// hierarquia. Reprocessar a mesma janela sobrescreve as linhas existentes.
type InsightRepository interface {
	UpsertAdInsights(insights []*domain.AdInsightDaily) error
	UpsertAdSetInsights(insights []*domain.AdSetInsightDaily) error
	UpsertCampaignInsights(insights []*domain.CampaignInsightDaily) error
}

type insightRepository struct {
	conn *postgres.Connection
}

func NewInsightRepository(conn *postgres.Connection) InsightRepository {
	return &insightRepository{
		conn: conn,
	}
}

const insightConflictSuffix = `
	DO UPDATE SET
		spend = EXCLUDED.spend,
		impressions = EXCLUDED.impressions,
		reach = EXCLUDED.reach,
		clicks = EXCLUDED.clicks,
		results = EXCLUDED.results,
		ctr = EXCLUDED.ctr,
		cpm = EXCLUDED.cpm,
		cpc = EXCLUDED.cpc,
		frequency = EXCLUDED.frequency,
		updated_at = NOW()
`

var insightMetricColumns = []string{
	"spend", "impressions", "reach", "clicks", "results", "ctr", "cpm", "cpc", "frequency",
}

func metricValues(m domain.InsightMetrics) []interface{} {
	return []interface{}{
		m.Spend, m.Impressions, m.Reach, m.Clicks, m.Results, m.CTR, m.CPM, m.CPC, m.Frequency,
	}
}

// dedupeLastByKey mantém a última ocorrência de cada chave, na ordem da
// primeira aparição. Chave repetida num mesmo INSERT ... ON CONFLICT é erro
// no Postgres ("cannot affect row a second time").
func dedupeLastByKey[T any](items []T, key func(T) string) []T {
	if len(items) < 2 {
		return items
	}

	position := make(map[string]int, len(items))
	deduped := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if idx, ok := position[k]; ok {
			deduped[idx] = item
			continue
		}
		position[k] = len(deduped)
		deduped = append(deduped, item)
	}
	return deduped
}

func (r *insightRepository) UpsertAdInsights(insights []*domain.AdInsightDaily) error {
	if len(insights) == 0 {
		return nil
	}

	insights = dedupeLastByKey(insights, func(i *domain.AdInsightDaily) string {
		return i.AdID + "|" + i.Date.Format("2006-01-02")
	})

	queryBuilder := squirrel.
		Insert(adInsightsDailyTable).
		Columns(append([]string{"ad_id", "date"}, insightMetricColumns...)...)

	for _, insight := range insights {
		values := append(
			[]interface{}{insight.AdID, insight.Date.Format("2006-01-02")},
			metricValues(insight.InsightMetrics)...,
		)
		queryBuilder = queryBuilder.Values(values...)
	}

	query, args, err := queryBuilder.
		Suffix("ON CONFLICT (ad_id, date)" + insightConflictSuffix).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao salvar insights de anúncios: %w", err)
	}

	return nil
}

func (r *insightRepository) UpsertAdSetInsights(insights []*domain.AdSetInsightDaily) error {
	if len(insights) == 0 {
		return nil
	}

	insights = dedupeLastByKey(insights, func(i *domain.AdSetInsightDaily) string {
		return i.AdSetID + "|" + i.Date.Format("2006-01-02")
	})

	queryBuilder := squirrel.
		Insert(adSetInsightsDailyTable).
		Columns(append([]string{"ad_set_id", "date"}, insightMetricColumns...)...)

	for _, insight := range insights {
		values := append(
			[]interface{}{insight.AdSetID, insight.Date.Format("2006-01-02")},
			metricValues(insight.InsightMetrics)...,
		)
		queryBuilder = queryBuilder.Values(values...)
	}

	query, args, err := queryBuilder.
		Suffix("ON CONFLICT (ad_set_id, date)" + insightConflictSuffix).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao salvar insights de conjuntos: %w", err)
	}

	return nil
}

func (r *insightRepository) UpsertCampaignInsights(insights []*domain.CampaignInsightDaily) error {
	if len(insights) == 0 {
		return nil
	}

	insights = dedupeLastByKey(insights, func(i *domain.CampaignInsightDaily) string {
		return i.CampaignID + "|" + i.Date.Format("2006-01-02")
	})

	queryBuilder := squirrel.
		Insert(campaignInsightsDailyTable).
		Columns(append([]string{"campaign_id", "date"}, insightMetricColumns...)...)

	for _, insight := range insights {
		values := append(
			[]interface{}{insight.CampaignID, insight.Date.Format("2006-01-02")},
			metricValues(insight.InsightMetrics)...,
		)
		queryBuilder = queryBuilder.Values(values...)
	}

	query, args, err := queryBuilder.
		Suffix("ON CONFLICT (campaign_id, date)" + insightConflictSuffix).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao salvar insights de campanhas: %w", err)
	}

	return nil
}
