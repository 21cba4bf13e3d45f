package syncing

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	metadomain "github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/graphclient"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-dashboard-api/pkg/utils"
)

const insightUpsertBatch = 500

// parseMetaTime aceita os dois formatos de timestamp da Graph API: RFC3339
// e o offset sem dois-pontos (2023-05-01T10:00:00+0000).
func parseMetaTime(value string) *time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed
		}
	}
	return nil
}

func (r *runContext) syncAdAccounts() (stageResult, error) {
	params := url.Values{}
	params.Set("fields", "id,name")
	params.Set("limit", "100")

	total := 0
	err := r.client.Paginate("me/adaccounts", params, "ad_accounts", 0, func(item []byte) error {
		var row metadomain.AdAccountRow
		if err := json.Unmarshal(item, &row); err != nil {
			return nil
		}
		externalID := strings.TrimPrefix(strings.TrimSpace(row.ID), "act_")
		if externalID == "" {
			return nil
		}

		account := &domain.AdAccount{
			ExternalID: externalID,
			Name:       strings.TrimSpace(row.Name),
			UserID:     r.userID,
		}
		if _, err := r.svc.adAccountRepo.Upsert(account); err != nil {
			return err
		}
		r.accounts = append(r.accounts, account)
		total++
		return nil
	})
	if err != nil {
		return nil, err
	}

	return stageResult{"ad_accounts_upserted": total}, nil
}

func (r *runContext) syncCampaigns() (stageResult, error) {
	r.campaignIDs = map[string]string{}

	requests, err := r.hierarchyBatchRequests("campaigns", "id,name,status,created_time,effective_status")
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return stageResult{"campaigns_upserted": 0, "campaigns_batch_errors": 0}, nil
	}

	batchSize := r.svc.cfg.MetaSync.BatchSize
	r.log.Append("campaigns", fmt.Sprintf(
		"Extraindo campaigns em batch para %d contas (chunk=%d).", len(requests), batchSize,
	))

	total := 0
	errors := 0
	err = iterBatchPaginatedRequests(r.client, requests, "campaigns_batch", batchSize, r.svc.cfg.Meta.Version,
		func(request batchPageRequest, result metadomain.BatchResult) error {
			if !result.IsSuccess() {
				errors++
				r.log.Append("campaigns", fmt.Sprintf(
					"Falha no batch de campaigns para conta %s: status=%d.",
					request.accountMetaID, result.StatusCode,
				))
				return nil
			}

			for _, item := range decodeListItems(result.Body) {
				var row metadomain.CampaignRow
				if err := json.Unmarshal(item, &row); err != nil {
					continue
				}
				campaignID := strings.TrimSpace(row.ID)
				if campaignID == "" {
					continue
				}

				campaign := &domain.Campaign{
					ExternalID:      campaignID,
					AdAccountID:     request.accountInternal,
					Name:            strings.TrimSpace(row.Name),
					Status:          strings.TrimSpace(row.Status),
					EffectiveStatus: strings.TrimSpace(row.EffectiveStatus),
					CreatedTime:     parseMetaTime(row.CreatedTime),
				}
				internalID, err := r.svc.hierarchyRepo.UpsertCampaign(campaign)
				if err != nil {
					return err
				}
				r.campaignIDs[campaignID] = internalID
				total++
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	return stageResult{"campaigns_upserted": total, "campaigns_batch_errors": errors}, nil
}

func (r *runContext) syncAdSets() (stageResult, error) {
	r.adSetIDs = map[string]string{}
	r.adSetCampaign = map[string]string{}

	requests, err := r.hierarchyBatchRequests("adsets", "id,campaign_id,name,status,created_time,effective_status")
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return stageResult{
			"adsets_upserted":                 0,
			"adsets_skipped_missing_campaign": 0,
			"adsets_batch_errors":             0,
		}, nil
	}

	batchSize := r.svc.cfg.MetaSync.BatchSize
	r.log.Append("adsets", fmt.Sprintf(
		"Extraindo adsets em batch para %d contas (chunk=%d).", len(requests), batchSize,
	))

	total := 0
	skipped := 0
	errors := 0
	err = iterBatchPaginatedRequests(r.client, requests, "adsets_batch", batchSize, r.svc.cfg.Meta.Version,
		func(request batchPageRequest, result metadomain.BatchResult) error {
			if !result.IsSuccess() {
				errors++
				r.log.Append("adsets", fmt.Sprintf(
					"Falha no batch de adsets para conta %s: status=%d.",
					request.accountMetaID, result.StatusCode,
				))
				return nil
			}

			for _, item := range decodeListItems(result.Body) {
				var row metadomain.AdSetRow
				if err := json.Unmarshal(item, &row); err != nil {
					continue
				}
				adSetID := strings.TrimSpace(row.ID)
				campaignInternal := r.campaignIDs[strings.TrimSpace(row.CampaignID)]
				if adSetID == "" || campaignInternal == "" {
					skipped++
					continue
				}

				adSet := &domain.AdSet{
					ExternalID:      adSetID,
					CampaignID:      campaignInternal,
					Name:            strings.TrimSpace(row.Name),
					Status:          strings.TrimSpace(row.Status),
					EffectiveStatus: strings.TrimSpace(row.EffectiveStatus),
					CreatedTime:     parseMetaTime(row.CreatedTime),
				}
				internalID, err := r.svc.hierarchyRepo.UpsertAdSet(adSet)
				if err != nil {
					return err
				}
				r.adSetIDs[adSetID] = internalID
				r.adSetCampaign[internalID] = campaignInternal
				total++
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	return stageResult{
		"adsets_upserted":                 total,
		"adsets_skipped_missing_campaign": skipped,
		"adsets_batch_errors":             errors,
	}, nil
}

func (r *runContext) syncAds() (stageResult, error) {
	r.adRefs = map[string]domain.AdRef{}

	requests, err := r.hierarchyBatchRequests("ads", "id,adset_id,name,status,created_time,effective_status")
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return stageResult{
			"ads_upserted":              0,
			"ads_skipped_missing_adset": 0,
			"ads_batch_errors":          0,
		}, nil
	}

	batchSize := r.svc.cfg.MetaSync.BatchSize
	r.log.Append("ads", fmt.Sprintf(
		"Extraindo ads em batch para %d contas (chunk=%d).", len(requests), batchSize,
	))

	total := 0
	skipped := 0
	errors := 0
	err = iterBatchPaginatedRequests(r.client, requests, "ads_batch", batchSize, r.svc.cfg.Meta.Version,
		func(request batchPageRequest, result metadomain.BatchResult) error {
			if !result.IsSuccess() {
				errors++
				r.log.Append("ads", fmt.Sprintf(
					"Falha no batch de ads para conta %s: status=%d.",
					request.accountMetaID, result.StatusCode,
				))
				return nil
			}

			for _, item := range decodeListItems(result.Body) {
				var row metadomain.AdRow
				if err := json.Unmarshal(item, &row); err != nil {
					continue
				}
				adID := strings.TrimSpace(row.ID)
				adSetInternal := r.adSetIDs[strings.TrimSpace(row.AdSetID)]
				if adID == "" || adSetInternal == "" {
					skipped++
					continue
				}

				ad := &domain.Ad{
					ExternalID:      adID,
					AdSetID:         adSetInternal,
					Name:            strings.TrimSpace(row.Name),
					Status:          strings.TrimSpace(row.Status),
					EffectiveStatus: strings.TrimSpace(row.EffectiveStatus),
					CreatedTime:     parseMetaTime(row.CreatedTime),
				}
				internalID, err := r.svc.hierarchyRepo.UpsertAd(ad)
				if err != nil {
					return err
				}
				r.adRefs[adID] = domain.AdRef{
					AdID:       internalID,
					AdSetID:    adSetInternal,
					CampaignID: r.adSetCampaign[adSetInternal],
				}
				total++
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	return stageResult{
		"ads_upserted":              total,
		"ads_skipped_missing_adset": skipped,
		"ads_batch_errors":          errors,
	}, nil
}

type aggKey struct {
	ID   string
	Date string
}

func (r *runContext) syncAdInsights() (stageResult, error) {
	if len(r.adRefs) == 0 {
		r.log.Append("ad_insights", "Nenhum ad encontrado para processar insights.")
		return stageResult{
			"ad_insight_rows_seen":     0,
			"ad_insight_upserts":       0,
			"adset_insight_upserts":    0,
			"campaign_insight_upserts": 0,
			"ad_insight_errors":        0,
		}, nil
	}

	adSetAgg := map[aggKey]domain.InsightMetrics{}
	campaignAgg := map[aggKey]domain.InsightMetrics{}

	var pendingAdInsights []*domain.AdInsightDaily
	rowsSeen := 0
	adUpserts := 0
	insightErrors := 0

	flush := func() error {
		if len(pendingAdInsights) == 0 {
			return nil
		}
		if err := r.svc.insightRepo.UpsertAdInsights(pendingAdInsights); err != nil {
			return err
		}
		adUpserts += len(pendingAdInsights)
		pendingAdInsights = pendingAdInsights[:0]
		return nil
	}

	insightFields := "ad_id,results,impressions,reach,spend,clicks,ctr,cpm,cpc,frequency,date_start,date_stop"

	// Janelas de 3 meses equilibram o tamanho do payload com o número de
	// chamadas por conta.
	for _, window := range utils.MonthChunks(r.since, r.until, 3) {
		windowSince := formatDate(window.Since)
		windowUntil := formatDate(window.Until)
		r.log.Append("ad_insights", fmt.Sprintf(
			"Processando janela trimestral de insights: %s até %s", windowSince, windowUntil,
		))

		timeRange := fmt.Sprintf(`{"since":%q,"until":%q}`, windowSince, windowUntil)

		for _, account := range r.accounts {
			edgePath, err := adAccountEdgePath(account.ExternalID, "insights")
			if err != nil {
				continue
			}

			params := url.Values{}
			params.Set("level", "ad")
			params.Set("time_range", timeRange)
			params.Set("time_increment", "1")
			params.Set("fields", insightFields)
			params.Set("limit", "500")

			err = r.client.Paginate(edgePath, params, "ad_insights", 0, func(item []byte) error {
				var row metadomain.AdInsightRow
				if err := json.Unmarshal(item, &row); err != nil {
					return nil
				}
				rowsSeen++

				adMetaID := strings.TrimSpace(row.AdID)
				if adMetaID == "" {
					adMetaID = strings.TrimSpace(row.ID)
				}
				if adMetaID == "" {
					return nil
				}
				adRef, ok := r.adRefs[adMetaID]
				if !ok {
					return nil
				}

				dateRaw := row.DateStart
				if dateRaw == "" {
					dateRaw = row.DateStop
				}
				insightDate, err := time.Parse("2006-01-02", dateRaw)
				if err != nil {
					return nil
				}

				metrics := normalizeMetrics(row)

				pendingAdInsights = append(pendingAdInsights, &domain.AdInsightDaily{
					AdID:           adRef.AdID,
					Date:           insightDate,
					InsightMetrics: metrics,
				})
				if len(pendingAdInsights) >= insightUpsertBatch {
					if err := flush(); err != nil {
						return err
					}
				}

				if adRef.AdSetID != "" {
					key := aggKey{ID: adRef.AdSetID, Date: dateRaw}
					adSetAgg[key] = sumAgg(adSetAgg[key], metrics)
				}
				if adRef.CampaignID != "" {
					key := aggKey{ID: adRef.CampaignID, Date: dateRaw}
					campaignAgg[key] = sumAgg(campaignAgg[key], metrics)
				}
				return nil
			})
			if err != nil {
				if graphclient.IsNetworkError(err) || graphclient.IsProviderError(err) {
					insightErrors++
					r.log.Append("ad_insights", fmt.Sprintf(
						"Falha no insight level=ad da conta %s (%s..%s): %v",
						account.ExternalID, windowSince, windowUntil, err,
					))
					continue
				}
				return nil, err
			}
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}

	adSetInsights := make([]*domain.AdSetInsightDaily, 0, len(adSetAgg))
	for key, metrics := range adSetAgg {
		date, err := time.Parse("2006-01-02", key.Date)
		if err != nil {
			continue
		}
		adSetInsights = append(adSetInsights, &domain.AdSetInsightDaily{
			AdSetID:        key.ID,
			Date:           date,
			InsightMetrics: finalizeAgg(metrics),
		})
	}
	if err := upsertInBatches(adSetInsights, insightUpsertBatch, r.svc.insightRepo.UpsertAdSetInsights); err != nil {
		return nil, err
	}

	campaignInsights := make([]*domain.CampaignInsightDaily, 0, len(campaignAgg))
	for key, metrics := range campaignAgg {
		date, err := time.Parse("2006-01-02", key.Date)
		if err != nil {
			continue
		}
		campaignInsights = append(campaignInsights, &domain.CampaignInsightDaily{
			CampaignID:     key.ID,
			Date:           date,
			InsightMetrics: finalizeAgg(metrics),
		})
	}
	if err := upsertInBatches(campaignInsights, insightUpsertBatch, r.svc.insightRepo.UpsertCampaignInsights); err != nil {
		return nil, err
	}

	return stageResult{
		"ad_insight_rows_seen":     rowsSeen,
		"ad_insight_upserts":       adUpserts,
		"adset_insight_upserts":    len(adSetInsights),
		"campaign_insight_upserts": len(campaignInsights),
		"ad_insight_errors":        insightErrors,
	}, nil
}

func upsertInBatches[T any](items []T, batchSize int, fn func([]T) error) error {
	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}
		if err := fn(items[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// hierarchyBatchRequests monta uma chamada de batch por conta para um edge
// da hierarquia, com página de 200 itens.
func (r *runContext) hierarchyBatchRequests(edge, fields string) ([]batchPageRequest, error) {
	requests := make([]batchPageRequest, 0, len(r.accounts))
	for _, account := range r.accounts {
		edgePath, err := adAccountEdgePath(account.ExternalID, edge)
		if err != nil {
			continue
		}
		params := url.Values{}
		params.Set("fields", fields)
		params.Set("limit", "200")
		requests = append(requests, batchPageRequest{
			relativeURL:     toBatchRelativeURL(edgePath, params, r.svc.cfg.Meta.Version),
			accountMetaID:   account.ExternalID,
			accountInternal: account.ID,
		})
	}
	return requests, nil
}

func decodeListItems(body json.RawMessage) []json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	var envelope metadomain.ListEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	return envelope.Data
}
