package metadomain

import "encoding/json"

// Linhas retornadas pelos edges consumidos na sincronização. Os campos
// numéricos de insights chegam como string na Graph API.

type AdAccountRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CampaignRow struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	CreatedTime     string `json:"created_time"`
	EffectiveStatus string `json:"effective_status"`
}

type AdSetRow struct {
	ID              string `json:"id"`
	CampaignID      string `json:"campaign_id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	CreatedTime     string `json:"created_time"`
	EffectiveStatus string `json:"effective_status"`
}

type AdRow struct {
	ID              string `json:"id"`
	AdSetID         string `json:"adset_id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	CreatedTime     string `json:"created_time"`
	EffectiveStatus string `json:"effective_status"`
}

// AdInsightRow é uma linha de insight level=ad. Results fica bruto porque a
// Meta devolve escalar, objeto ou lista dependendo do objetivo da campanha.
type AdInsightRow struct {
	AdID        string          `json:"ad_id"`
	ID          string          `json:"id"`
	Spend       string          `json:"spend"`
	Impressions string          `json:"impressions"`
	Reach       string          `json:"reach"`
	Clicks      string          `json:"clicks"`
	CTR         string          `json:"ctr"`
	CPM         string          `json:"cpm"`
	CPC         string          `json:"cpc"`
	Frequency   string          `json:"frequency"`
	DateStart   string          `json:"date_start"`
	DateStop    string          `json:"date_stop"`
	Results     json.RawMessage `json:"results"`
}

type InstagramBusinessAccount struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type PageRow struct {
	ID                       string                    `json:"id"`
	Name                     string                    `json:"name"`
	InstagramBusinessAccount *InstagramBusinessAccount `json:"instagram_business_account"`
}

type MediaRow struct {
	ID            string `json:"id"`
	Caption       string `json:"caption"`
	MediaType     string `json:"media_type"`
	MediaURL      string `json:"media_url"`
	Permalink     string `json:"permalink"`
	Timestamp     string `json:"timestamp"`
	LikeCount     int64  `json:"like_count"`
	CommentsCount int64  `json:"comments_count"`
}

// MetricEntry é uma métrica de insights do Instagram com sua série de
// valores; o value individual pode ser escalar ou objeto, então fica bruto.
type MetricEntry struct {
	Name   string        `json:"name"`
	Values []MetricValue `json:"values"`
}

type MetricValue struct {
	Value   json.RawMessage `json:"value"`
	EndTime string          `json:"end_time"`
}

// MetricEnvelope é o envelope de /insights de contas e mídias do Instagram.
type MetricEnvelope struct {
	Data []MetricEntry `json:"data"`
}
