package domain

import "time"

// InsightMetrics é o conjunto de métricas diárias compartilhado pelos três
// níveis da hierarquia. As quatro razões (ctr, cpm, cpc, frequency) são
// sempre recalculadas a partir dos contadores somados nas agregações;
// somar razões diretamente não produz uma razão válida.
type InsightMetrics struct {
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Reach       int64   `json:"reach"`
	Clicks      int64   `json:"clicks"`
	Results     int64   `json:"results"`
	CTR         float64 `json:"ctr"`
	CPM         float64 `json:"cpm"`
	CPC         float64 `json:"cpc"`
	Frequency   float64 `json:"frequency"`
}

type AdInsightDaily struct {
	AdID string    `json:"ad_id"`
	Date time.Time `json:"date"`
	InsightMetrics
}

type AdSetInsightDaily struct {
	AdSetID string    `json:"adset_id"`
	Date    time.Time `json:"date"`
	InsightMetrics
}

type CampaignInsightDaily struct {
	CampaignID string    `json:"campaign_id"`
	Date       time.Time `json:"date"`
	InsightMetrics
}
