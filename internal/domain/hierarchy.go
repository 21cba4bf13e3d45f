package domain

import "time"

// Hierarquia de entidades da Meta: AdAccount -> Campaign -> AdSet -> Ad.
// Os IDs internos são nanoids gerados pelo repositório; o external_id é o
// id atribuído pela Meta e é único por tipo de entidade.

type AdAccount struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	UserID     int    `json:"user_id"`
}

type Campaign struct {
	ID              string     `json:"id"`
	ExternalID      string     `json:"external_id"`
	AdAccountID     string     `json:"ad_account_id"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	EffectiveStatus string     `json:"effective_status"`
	CreatedTime     *time.Time `json:"created_time"`
}

type AdSet struct {
	ID              string     `json:"id"`
	ExternalID      string     `json:"external_id"`
	CampaignID      string     `json:"campaign_id"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	EffectiveStatus string     `json:"effective_status"`
	CreatedTime     *time.Time `json:"created_time"`
}

type Ad struct {
	ID              string     `json:"id"`
	ExternalID      string     `json:"external_id"`
	AdSetID         string     `json:"adset_id"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	EffectiveStatus string     `json:"effective_status"`
	CreatedTime     *time.Time `json:"created_time"`
}

// AdRef resolve um ad pelo external_id junto com os pais, para montar os
// acumuladores de adset e campaign sem uma consulta por linha de insight.
type AdRef struct {
	AdID       string
	AdSetID    string
	CampaignID string
}
