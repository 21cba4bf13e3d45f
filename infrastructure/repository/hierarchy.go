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
	campaignsTable = "campaigns"
	adSetsTable    = "ad_sets"
	adsTable       = "ads"
)

// HierarchyRepository persiste campanhas, conjuntos e anúncios. Cada Upsert
// devolve o id interno, usado pela sincronização para resolver os pais das
// entidades seguintes sem consulta extra.
type HierarchyRepository interface {
	UpsertCampaign(campaign *domain.Campaign) (string, error)
	UpsertAdSet(adSet *domain.AdSet) (string, error)
	UpsertAd(ad *domain.Ad) (string, error)
}

type hierarchyRepository struct {
	conn *postgres.Connection
}

func NewHierarchyRepository(conn *postgres.Connection) HierarchyRepository {
	return &hierarchyRepository{
		conn: conn,
	}
}

func (r *hierarchyRepository) UpsertCampaign(campaign *domain.Campaign) (string, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar id da campanha: %w", err)
	}

	query, args, err := squirrel.
		Insert(campaignsTable).
		Columns("id", "external_id", "ad_account_id", "name", "status", "effective_status", "created_time").
		Values(id, campaign.ExternalID, campaign.AdAccountID, campaign.Name, campaign.Status, campaign.EffectiveStatus, campaign.CreatedTime).
		Suffix(`
			ON CONFLICT (external_id) DO UPDATE SET
				ad_account_id = EXCLUDED.ad_account_id,
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				effective_status = EXCLUDED.effective_status,
				created_time = EXCLUDED.created_time,
				updated_at = NOW()
		`).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&campaign.ID); err != nil {
		return "", fmt.Errorf("erro ao salvar campanha: %w", err)
	}

	return campaign.ID, nil
}

func (r *hierarchyRepository) UpsertAdSet(adSet *domain.AdSet) (string, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar id do conjunto: %w", err)
	}

	query, args, err := squirrel.
		Insert(adSetsTable).
		Columns("id", "external_id", "campaign_id", "name", "status", "effective_status", "created_time").
		Values(id, adSet.ExternalID, adSet.CampaignID, adSet.Name, adSet.Status, adSet.EffectiveStatus, adSet.CreatedTime).
		Suffix(`
			ON CONFLICT (external_id) DO UPDATE SET
				campaign_id = EXCLUDED.campaign_id,
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				effective_status = EXCLUDED.effective_status,
				created_time = EXCLUDED.created_time,
				updated_at = NOW()
		`).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&adSet.ID); err != nil {
		return "", fmt.Errorf("erro ao salvar conjunto de anúncios: %w", err)
	}

	return adSet.ID, nil
}

func (r *hierarchyRepository) UpsertAd(ad *domain.Ad) (string, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar id do anúncio: %w", err)
	}

	query, args, err := squirrel.
		Insert(adsTable).
		Columns("id", "external_id", "ad_set_id", "name", "status", "effective_status", "created_time").
		Values(id, ad.ExternalID, ad.AdSetID, ad.Name, ad.Status, ad.EffectiveStatus, ad.CreatedTime).
		Suffix(`
			ON CONFLICT (external_id) DO UPDATE SET
				ad_set_id = EXCLUDED.ad_set_id,
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				effective_status = EXCLUDED.effective_status,
				created_time = EXCLUDED.created_time,
				updated_at = NOW()
		`).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&ad.ID); err != nil {
		return "", fmt.Errorf("erro ao salvar anúncio: %w", err)
	}

	return ad.ID, nil
}
