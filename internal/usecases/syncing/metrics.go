package syncing

import (
	"encoding/json"
	"strconv"
	"strings"

	metadomain "github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-dashboard-api/pkg/utils"
)

// toInt converte um valor numérico vindo da Graph API. A Meta serializa
// contadores ora como número, ora como string (às vezes com separador de
// milhar); valores não numéricos viram 0.
func toInt(value string) int64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int64(parsed)
}

func toDecimal(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// rawToInt aceita número, string numérica ou objeto com value/total_value/
// count. Devolve nil quando não há valor extraível.
func rawToInt(raw json.RawMessage) *int64 {
	if len(raw) == 0 {
		return nil
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		value := int64(number)
		return &value
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		value := toInt(text)
		return &value
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err == nil {
		for _, key := range []string{"value", "total_value", "count"} {
			if inner, ok := object[key]; ok {
				if value := rawToInt(inner); value != nil {
					return value
				}
				value := int64(0)
				return &value
			}
		}
	}

	return nil
}

func rawToDecimal(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return &number
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		value := toDecimal(text)
		return &value
	}

	return nil
}

type resultsEntry struct {
	Value  json.RawMessage `json:"value"`
	Values []resultsValue  `json:"values"`
}

type resultsValue struct {
	Value              json.RawMessage `json:"value"`
	AttributionWindows []string        `json:"attribution_windows"`
}

// extractResultsList soma os valores de uma lista de values. Quando alguma
// entrada tem a janela de atribuição default, só essas contam; caso
// contrário somam todas.
func extractResultsList(values []resultsValue) int64 {
	var total int64
	var defaultTotal int64
	hasDefault := false

	for _, item := range values {
		parsed := rawToInt(item.Value)
		if parsed == nil {
			continue
		}
		total += *parsed
		for _, window := range item.AttributionWindows {
			if strings.EqualFold(strings.TrimSpace(window), "default") {
				defaultTotal += *parsed
				hasDefault = true
				break
			}
		}
	}

	if hasDefault {
		return defaultTotal
	}
	return total
}

// extractResults aceita os três formatos que a Meta usa para results:
// escalar, objeto {value|values} ou lista de objetos por indicador.
func extractResults(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}

	var entries []resultsEntry
	if err := json.Unmarshal(raw, &entries); err == nil {
		var total int64
		for _, entry := range entries {
			if len(entry.Values) > 0 {
				total += extractResultsList(entry.Values)
				continue
			}
			if value := rawToInt(entry.Value); value != nil {
				total += *value
			}
		}
		return total
	}

	var object resultsEntry
	if err := json.Unmarshal(raw, &object); err == nil && (len(object.Values) > 0 || len(object.Value) > 0) {
		if len(object.Values) > 0 {
			return extractResultsList(object.Values)
		}
		if value := rawToInt(object.Value); value != nil {
			return *value
		}
		return 0
	}

	if value := rawToInt(raw); value != nil {
		return *value
	}
	return 0
}

// normalizeMetrics converte uma linha de insight em métricas tipadas. As
// quatro razões só são recalculadas quando a Meta as omite e o denominador
// permite.
func normalizeMetrics(row metadomain.AdInsightRow) domain.InsightMetrics {
	metrics := domain.InsightMetrics{
		Spend:       toDecimal(row.Spend),
		Impressions: toInt(row.Impressions),
		Reach:       toInt(row.Reach),
		Clicks:      toInt(row.Clicks),
		Results:     extractResults(row.Results),
		CTR:         toDecimal(row.CTR),
		CPM:         toDecimal(row.CPM),
		CPC:         toDecimal(row.CPC),
		Frequency:   toDecimal(row.Frequency),
	}

	if metrics.Impressions > 0 && metrics.CTR == 0 {
		metrics.CTR = float64(metrics.Clicks) / float64(metrics.Impressions) * 100
	}
	if metrics.Impressions > 0 && metrics.CPM == 0 {
		metrics.CPM = metrics.Spend / float64(metrics.Impressions) * 1000
	}
	if metrics.Clicks > 0 && metrics.CPC == 0 {
		metrics.CPC = metrics.Spend / float64(metrics.Clicks)
	}
	if metrics.Reach > 0 && metrics.Frequency == 0 {
		metrics.Frequency = float64(metrics.Impressions) / float64(metrics.Reach)
	}

	return metrics
}

// sumAgg acumula contadores. Razões somadas não têm significado, então
// ficam zeradas até finalizeAgg.
func sumAgg(left, right domain.InsightMetrics) domain.InsightMetrics {
	return domain.InsightMetrics{
		Spend:       left.Spend + right.Spend,
		Impressions: left.Impressions + right.Impressions,
		Reach:       left.Reach + right.Reach,
		Clicks:      left.Clicks + right.Clicks,
		Results:     left.Results + right.Results,
	}
}

// finalizeAgg recalcula as razões a partir dos contadores somados.
// Denominador zero produz razão zero.
func finalizeAgg(agg domain.InsightMetrics) domain.InsightMetrics {
	final := domain.InsightMetrics{
		Spend:       agg.Spend,
		Impressions: agg.Impressions,
		Reach:       agg.Reach,
		Clicks:      agg.Clicks,
		Results:     agg.Results,
	}

	if final.Impressions > 0 {
		final.CTR = utils.RoundWithTwoDecimalPlace(float64(final.Clicks) / float64(final.Impressions) * 100)
		final.CPM = utils.RoundWithTwoDecimalPlace(final.Spend / float64(final.Impressions) * 1000)
	}
	if final.Clicks > 0 {
		final.CPC = utils.RoundWithTwoDecimalPlace(final.Spend / float64(final.Clicks))
	}
	if final.Reach > 0 {
		final.Frequency = utils.RoundWithTwoDecimalPlace(float64(final.Impressions) / float64(final.Reach))
	}

	return final
}

// mediaMetricsForType devolve as métricas pedidas para cada tipo de mídia.
func mediaMetricsForType(mediaType string) []string {
	common := []string{"reach", "saved", "shares"}
	switch strings.ToUpper(strings.TrimSpace(mediaType)) {
	case "REEL", "REELS":
		return append(common, "views", "plays", "ig_reels_video_view_total_time", "ig_reels_avg_watch_time")
	case "VIDEO":
		return append(common, "views")
	case "IMAGE", "CAROUSEL_ALBUM":
		return common
	}
	// tipos desconhecidos ainda tentam views
	return append(common, "views")
}

// parseInstagramAccountInsights consolida a série de cada métrica da conta.
// follower_count é um snapshot (último valor); as demais somam a janela.
func parseInstagramAccountInsights(entries []metadomain.MetricEntry) domain.InstagramAccountMetrics {
	metricMap := map[string]int64{}
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}

		var parsed []int64
		for _, value := range entry.Values {
			if extracted := rawToInt(value.Value); extracted != nil {
				parsed = append(parsed, *extracted)
			}
		}
		if len(parsed) == 0 {
			continue
		}

		if name == "follower_count" {
			metricMap[name] = parsed[len(parsed)-1]
			continue
		}
		var total int64
		for _, value := range parsed {
			total += value
		}
		metricMap[name] = total
	}

	var metrics domain.InstagramAccountMetrics
	if value, ok := firstMetric(metricMap, "reach", "accounts_reached"); ok {
		metrics.AccountsReached = &value
	}
	if value, ok := firstMetric(metricMap, "views", "content_views", "impressions"); ok {
		metrics.Impressions = &value
	}
	if value, ok := metricMap["profile_views"]; ok {
		metrics.ProfileViews = &value
	}
	if value, ok := metricMap["accounts_engaged"]; ok {
		metrics.AccountsEngaged = &value
	}
	if value, ok := metricMap["follower_count"]; ok {
		metrics.FollowerCount = &value
	}
	if value, ok := metricMap["follows_and_unfollows"]; ok {
		metrics.FollowsAndUnfollows = &value
	}
	return metrics
}

func firstMetric(metricMap map[string]int64, names ...string) (int64, bool) {
	for _, name := range names {
		if value, ok := metricMap[name]; ok {
			return value, true
		}
	}
	return 0, false
}

// parseMediaInsights consolida as métricas de uma mídia. Cada métrica usa o
// maior valor da série, já que a Meta devolve acumulados por janela.
func parseMediaInsights(entries []metadomain.MetricEntry) domain.MediaMetrics {
	intValues := map[string]int64{}
	var avgWatchTime *float64

	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}

		if name == "ig_reels_avg_watch_time" {
			for _, value := range entry.Values {
				parsed := rawToDecimal(value.Value)
				if parsed == nil {
					continue
				}
				if avgWatchTime == nil || *parsed > *avgWatchTime {
					avgWatchTime = parsed
				}
			}
			continue
		}

		var best *int64
		for _, value := range entry.Values {
			parsed := rawToInt(value.Value)
			if parsed == nil {
				continue
			}
			if best == nil || *parsed > *best {
				best = parsed
			}
		}
		if best != nil {
			intValues[name] = *best
		}
	}

	var metrics domain.MediaMetrics
	if value, ok := intValues["reach"]; ok {
		metrics.Reach = &value
	}
	if value, ok := firstMetric(intValues, "views", "video_views", "content_views"); ok {
		metrics.Views = &value
	}
	if value, ok := intValues["saved"]; ok {
		metrics.Saved = &value
	}
	if value, ok := intValues["shares"]; ok {
		metrics.Shares = &value
	}
	if value, ok := intValues["plays"]; ok {
		metrics.Plays = &value
	}
	if value, ok := firstMetric(intValues, "ig_reels_video_view_total_time", "total_watch_time"); ok {
		metrics.WatchTime = &value
	}
	metrics.AvgWatchTime = avgWatchTime
	return metrics
}
