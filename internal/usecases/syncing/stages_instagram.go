package syncing

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	metadomain "github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-dashboard-api/pkg/utils"
)

func (r *runContext) syncFacebookPages() (stageResult, error) {
	r.pageSnapshots = map[string]*metadomain.PageRow{}
	r.pages = nil

	params := url.Values{}
	params.Set("fields", "id,name,instagram_business_account{id,username}")
	params.Set("limit", "100")

	total := 0
	err := r.client.Paginate("me/accounts", params, "facebook_pages", 0, func(item []byte) error {
		var row metadomain.PageRow
		if err := json.Unmarshal(item, &row); err != nil {
			return nil
		}
		pageID := strings.TrimSpace(row.ID)
		if pageID == "" {
			return nil
		}

		page := &domain.FacebookPage{
			ExternalID: pageID,
			Name:       strings.TrimSpace(row.Name),
			UserID:     r.userID,
		}
		if _, err := r.svc.instagramRepo.UpsertPage(page); err != nil {
			return err
		}
		r.pageSnapshots[pageID] = &row
		r.pages = append(r.pages, page)
		total++
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Append("facebook_pages", fmt.Sprintf("Páginas sincronizadas: %d", total))
	return stageResult{"facebook_pages_upserted": total}, nil
}

func (r *runContext) syncInstagramAccounts() (stageResult, error) {
	r.igAccounts = nil

	upserted := 0
	withInsights := 0

	for _, page := range r.pages {
		var igInfo *metadomain.InstagramBusinessAccount
		if snapshot := r.pageSnapshots[page.ExternalID]; snapshot != nil {
			igInfo = snapshot.InstagramBusinessAccount
		}
		if igInfo == nil {
			params := url.Values{}
			params.Set("fields", "instagram_business_account{id,username}")
			body, err := r.client.RequestWithRetry("GET", page.ExternalID, params, nil, "instagram_accounts", 0)
			if err != nil {
				return nil, err
			}
			var detail metadomain.PageRow
			if err := json.Unmarshal(body, &detail); err == nil {
				igInfo = detail.InstagramBusinessAccount
			}
		}

		if igInfo == nil || strings.TrimSpace(igInfo.ID) == "" {
			continue
		}
		igID := strings.TrimSpace(igInfo.ID)

		igName := strings.TrimSpace(igInfo.Username)
		if igName == "" {
			igName = page.Name
		}

		account := &domain.InstagramAccount{
			ExternalID: igID,
			PageID:     page.ID,
			Name:       igName,
		}
		if _, err := r.svc.instagramRepo.UpsertAccount(account); err != nil {
			return nil, err
		}
		r.igAccounts = append(r.igAccounts, account)
		upserted++

		entries := r.fetchInstagramAccountInsights(igID)
		metrics := parseInstagramAccountInsights(entries)
		if !metrics.IsEmpty() {
			if err := r.svc.instagramRepo.UpdateAccountMetrics(account.ID, metrics); err != nil {
				return nil, err
			}
			withInsights++
		}
	}

	return stageResult{
		"instagram_accounts_upserted":      upserted,
		"instagram_accounts_with_insights": withInsights,
	}, nil
}

// metricMerger acumula a série de cada métrica entre janelas e chamadas de
// fallback, preservando a ordem de chegada dos valores.
type metricMerger struct {
	order   []string
	entries map[string]*metadomain.MetricEntry
}

func newMetricMerger() *metricMerger {
	return &metricMerger{entries: map[string]*metadomain.MetricEntry{}}
}

func (m *metricMerger) mergePayload(body []byte) {
	var envelope metadomain.MetricEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return
	}
	for _, entry := range envelope.Data {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		existing, ok := m.entries[name]
		if !ok {
			existing = &metadomain.MetricEntry{Name: name}
			m.entries[name] = existing
			m.order = append(m.order, name)
		}
		existing.Values = append(existing.Values, entry.Values...)
	}
}

func (m *metricMerger) has(name string) bool {
	_, ok := m.entries[name]
	return ok
}

func (m *metricMerger) result() []metadomain.MetricEntry {
	result := make([]metadomain.MetricEntry, 0, len(m.order))
	for _, name := range m.order {
		result = append(result, *m.entries[name])
	}
	return result
}

// fetchInstagramAccountInsights coleta as métricas diárias da conta na
// janela da run, em blocos de até 30 dias. Falhas são toleradas: primeiro
// tenta os grupos consolidados, depois métrica a métrica, e devolve o que
// conseguiu coletar.
func (r *runContext) fetchInstagramAccountInsights(igID string) []metadomain.MetricEntry {
	effectiveSince := r.since
	effectiveUntil := r.until
	today := utils.TruncateToDay(r.svc.now())

	// A Meta pode rejeitar datas exatamente no limite de 2 anos; margem de
	// 2 dias evita o erro de borda.
	minAllowedSince := utils.SubtractMonths(today, 24).AddDate(0, 0, 2)
	if effectiveSince.Before(minAllowedSince) {
		r.log.Append("instagram_account_insights", fmt.Sprintf(
			"Ajustando janela da conta %s para limite de 2 anos (margem +2d): since %s -> %s",
			igID, formatDate(effectiveSince), formatDate(minAllowedSince),
		))
		effectiveSince = minAllowedSince
	}

	if effectiveSince.After(effectiveUntil) {
		r.log.Append("instagram_account_insights", fmt.Sprintf(
			"Janela ignorada para conta %s: since=%s é maior que until=%s após ajuste de 2 anos.",
			igID, formatDate(effectiveSince), formatDate(effectiveUntil),
		))
		return nil
	}

	metricsRegular := []string{"reach"}
	metricsTotalValue := []string{"views", "content_views", "profile_views", "accounts_engaged", "follows_and_unfollows"}
	allMetrics := append(append([]string{}, metricsRegular...), metricsTotalValue...)
	allMetrics = append(allMetrics, "follower_count")

	merger := newMetricMerger()
	windows := utils.DayChunks(effectiveSince, effectiveUntil, 29)

	fetch := func(metric string, window utils.DateRange, totalValue bool) error {
		params := url.Values{}
		params.Set("metric", metric)
		params.Set("period", "day")
		params.Set("since", formatDate(window.Since))
		params.Set("until", formatDate(window.Until))
		if totalValue {
			params.Set("metric_type", "total_value")
		}
		body, err := r.client.RequestWithRetry("GET", igID+"/insights", params, nil, "instagram_account_insights", 0)
		if err != nil {
			return err
		}
		merger.mergePayload(body)
		return nil
	}

	for _, window := range windows {
		for _, group := range []struct {
			metrics    []string
			totalValue bool
		}{
			{metricsRegular, false},
			{metricsTotalValue, true},
		} {
			if len(group.metrics) == 0 {
				continue
			}
			if err := fetch(strings.Join(group.metrics, ","), window, group.totalValue); err != nil {
				r.log.Append("instagram_account_insights", fmt.Sprintf(
					"Falha na chamada consolidada da conta %s (%s..%s). Tentando fallback por métrica: %v",
					igID, formatDate(window.Since), formatDate(window.Until), err,
				))
			}
		}
	}

	totalValueSet := map[string]bool{}
	for _, metric := range metricsTotalValue {
		totalValueSet[metric] = true
	}
	for _, metric := range allMetrics {
		if metric == "follower_count" || merger.has(metric) {
			continue
		}
		var metricErr error
		for _, window := range windows {
			if err := fetch(metric, window, totalValueSet[metric]); err != nil {
				metricErr = err
			}
		}
		if !merger.has(metric) && metricErr != nil {
			r.log.Append("instagram_account_insights", fmt.Sprintf(
				"Métrica indisponível para conta %s: %s. Motivo: %v", igID, metric, metricErr,
			))
		}
	}

	// follower_count é mais restrito que as outras métricas: a Meta só
	// aceita os últimos 30 dias excluindo o dia corrente. Margem extra de
	// 1 dia evita problemas de fuso na borda.
	followerGuard := today.AddDate(0, 0, -2)
	followerUntil := utils.MinDate(effectiveUntil, followerGuard)
	followerSince := utils.MaxDate(effectiveSince, followerUntil.AddDate(0, 0, -27))
	if followerSince.After(followerUntil) {
		r.log.Append("instagram_account_insights", fmt.Sprintf(
			"Janela sem dados válidos para follower_count da conta %s: since=%s until=%s.",
			igID, formatDate(followerSince), formatDate(followerUntil),
		))
		return merger.result()
	}

	err := fetch("follower_count", utils.DateRange{Since: followerSince, Until: followerUntil}, false)
	if err == nil {
		return merger.result()
	}

	message := strings.ToLower(err.Error())
	if strings.Contains(message, "follower_count") && strings.Contains(message, "last 30 days excluding the current day") {
		retryUntil := today.AddDate(0, 0, -2)
		retrySince := utils.MaxDate(effectiveSince, retryUntil.AddDate(0, 0, -7))
		if retrySince.After(retryUntil) {
			r.log.Append("instagram_account_insights", fmt.Sprintf(
				"Retry follower_count ignorado para conta %s: since=%s until=%s.",
				igID, formatDate(retrySince), formatDate(retryUntil),
			))
			return merger.result()
		}

		retryErr := fetch("follower_count", utils.DateRange{Since: retrySince, Until: retryUntil}, false)
		if retryErr != nil {
			r.log.Append("instagram_account_insights", fmt.Sprintf(
				"Métrica indisponível para conta %s: follower_count. Motivo: %v", igID, retryErr,
			))
			return merger.result()
		}
		r.log.Append("instagram_account_insights", fmt.Sprintf(
			"Retry follower_count aplicado para conta %s: %s..%s.",
			igID, formatDate(retrySince), formatDate(retryUntil),
		))
		return merger.result()
	}

	r.log.Append("instagram_account_insights", fmt.Sprintf(
		"Métrica indisponível para conta %s: follower_count. Motivo: %v", igID, err,
	))
	return merger.result()
}

func (r *runContext) syncMediaAndInsights() (stageResult, error) {
	mediaUpserts := 0
	insightUpdates := 0
	insightErrors := 0

	for _, igAccount := range r.igAccounts {
		var batchCalls []metadomain.BatchCall
		type mediaBatchMeta struct {
			internalID string
			externalID string
			metrics    []string
		}
		var batchMeta []mediaBatchMeta

		params := url.Values{}
		params.Set("fields", "id,caption,media_type,media_url,permalink,timestamp,like_count,comments_count")
		params.Set("limit", "50")

		err := r.client.Paginate(igAccount.ExternalID+"/media", params, "instagram_media", 0, func(item []byte) error {
			var row metadomain.MediaRow
			if err := json.Unmarshal(item, &row); err != nil {
				return nil
			}
			mediaID := strings.TrimSpace(row.ID)
			if mediaID == "" {
				return nil
			}

			timestamp := parseMetaTime(row.Timestamp)
			if timestamp != nil && utils.TruncateToDay(*timestamp).Before(r.since) {
				return nil
			}

			media := &domain.MediaInstagram{
				ExternalID:         mediaID,
				InstagramAccountID: igAccount.ID,
				Caption:            row.Caption,
				MediaType:          row.MediaType,
				MediaURL:           row.MediaURL,
				Permalink:          row.Permalink,
				Timestamp:          timestamp,
				Likes:              row.LikeCount,
				Comments:           row.CommentsCount,
			}
			internalID, err := r.svc.instagramRepo.UpsertMedia(media)
			if err != nil {
				return err
			}
			mediaUpserts++

			metrics := mediaMetricsForType(row.MediaType)
			if len(metrics) == 0 {
				return nil
			}
			batchCalls = append(batchCalls, metadomain.BatchCall{
				Method:      "GET",
				RelativeURL: fmt.Sprintf("%s/insights?metric=%s", mediaID, strings.Join(metrics, ",")),
			})
			batchMeta = append(batchMeta, mediaBatchMeta{
				internalID: internalID,
				externalID: mediaID,
				metrics:    metrics,
			})
			return nil
		})
		if err != nil {
			return nil, err
		}

		if len(batchCalls) == 0 {
			continue
		}

		results, err := r.client.BatchRequest(
			batchCalls,
			"instagram_media_insights_"+igAccount.ExternalID,
			r.svc.cfg.MetaSync.BatchSize,
			false,
		)
		if err != nil {
			return nil, err
		}

		// Resultados excedentes não têm chamada correspondente; ignora.
		if len(results) > len(batchMeta) {
			results = results[:len(batchMeta)]
		}

		for idx, result := range results {
			meta := batchMeta[idx]
			if !result.IsSuccess() {
				insightErrors++
				detail := result.ErrorMessage()
				suffix := ""
				if detail != "" {
					suffix = "; erro=" + detail
				}
				r.log.Append("instagram_media_insights", fmt.Sprintf(
					"Falha no insight da mídia %s: status=%d; metrics=%s%s",
					meta.externalID, result.StatusCode, strings.Join(meta.metrics, ","), suffix,
				))
				continue
			}

			var envelope metadomain.MetricEnvelope
			if err := json.Unmarshal(result.Body, &envelope); err != nil {
				continue
			}
			metrics := parseMediaInsights(envelope.Data)
			if metrics.IsEmpty() {
				continue
			}
			if err := r.svc.instagramRepo.UpdateMediaMetrics(meta.internalID, metrics); err != nil {
				return nil, err
			}
			insightUpdates++
		}
	}

	return stageResult{
		"media_upserts":         mediaUpserts,
		"media_insight_updates": insightUpdates,
		"media_insight_errors":  insightErrors,
	}, nil
}
