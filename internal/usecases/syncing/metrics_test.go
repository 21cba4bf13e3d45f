package syncing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, int64(0), toInt(""))
	assert.Equal(t, int64(0), toInt("abc"))
	assert.Equal(t, int64(1234), toInt("1234"))
	assert.Equal(t, int64(1234), toInt("1,234"))
	assert.Equal(t, int64(12), toInt("12.9"))
}

func TestToDecimal(t *testing.T) {
	assert.Equal(t, 0.0, toDecimal(""))
	assert.Equal(t, 0.0, toDecimal("nada"))
	assert.Equal(t, 12.34, toDecimal("12.34"))
}

func TestExtractResultsScalar(t *testing.T) {
	assert.Equal(t, int64(7), extractResults(json.RawMessage(`7`)))
	assert.Equal(t, int64(7), extractResults(json.RawMessage(`"7"`)))
	assert.Equal(t, int64(0), extractResults(nil))
}

func TestExtractResultsObjectWithValue(t *testing.T) {
	assert.Equal(t, int64(12), extractResults(json.RawMessage(`{"value":12}`)))
}

func TestExtractResultsListPrefersDefaultAttributionWindow(t *testing.T) {
	raw := json.RawMessage(`[
		{
			"indicator": "actions:purchase",
			"values": [
				{"value": 7, "attribution_windows": ["default"]},
				{"value": 2, "attribution_windows": ["7d_click"]}
			]
		}
	]`)
	assert.Equal(t, int64(7), extractResults(raw))
}

func TestExtractResultsListSumsAllWithoutDefaultWindow(t *testing.T) {
	raw := json.RawMessage(`[
		{
			"indicator": "actions:purchase",
			"values": [
				{"value": 4, "attribution_windows": ["7d_click"]},
				{"value": 5, "attribution_windows": ["1d_view"]}
			]
		}
	]`)
	assert.Equal(t, int64(9), extractResults(raw))
}

func TestExtractResultsListOfScalarEntries(t *testing.T) {
	raw := json.RawMessage(`[
		{"indicator": "actions:purchase", "value": 3},
		{"indicator": "actions:lead", "value": 4}
	]`)
	assert.Equal(t, int64(7), extractResults(raw))
}

func TestNormalizeMetricsRecomputesMissingRatios(t *testing.T) {
	row := metadomain.AdInsightRow{
		Spend:       "100.0",
		Impressions: "2000",
		Reach:       "1000",
		Clicks:      "40",
		Results:     json.RawMessage(`5`),
	}

	metrics := normalizeMetrics(row)

	assert.Equal(t, 100.0, metrics.Spend)
	assert.Equal(t, int64(2000), metrics.Impressions)
	assert.Equal(t, int64(5), metrics.Results)
	assert.InDelta(t, 2.0, metrics.CTR, 1e-9)
	assert.InDelta(t, 50.0, metrics.CPM, 1e-9)
	assert.InDelta(t, 2.5, metrics.CPC, 1e-9)
	assert.InDelta(t, 2.0, metrics.Frequency, 1e-9)
}

func TestNormalizeMetricsKeepsProvidedRatios(t *testing.T) {
	row := metadomain.AdInsightRow{
		Spend:       "100.0",
		Impressions: "2000",
		Clicks:      "40",
		CTR:         "1.5",
		CPM:         "42",
		CPC:         "3",
	}

	metrics := normalizeMetrics(row)

	assert.Equal(t, 1.5, metrics.CTR)
	assert.Equal(t, 42.0, metrics.CPM)
	assert.Equal(t, 3.0, metrics.CPC)
}

func TestNormalizeMetricsZeroDenominators(t *testing.T) {
	metrics := normalizeMetrics(metadomain.AdInsightRow{Spend: "10"})

	assert.Zero(t, metrics.CTR)
	assert.Zero(t, metrics.CPM)
	assert.Zero(t, metrics.CPC)
	assert.Zero(t, metrics.Frequency)
}

func TestSumAggAndFinalizeAggRecomputeRatios(t *testing.T) {
	first := domain.InsightMetrics{Spend: 10, Impressions: 1000, Reach: 600, Clicks: 20, Results: 2, CTR: 2, CPM: 10}
	second := domain.InsightMetrics{Spend: 30, Impressions: 3000, Reach: 1400, Clicks: 60, Results: 3, CTR: 2, CPM: 10}

	agg := sumAgg(sumAgg(domain.InsightMetrics{}, first), second)

	// Acumulador soma só contadores.
	assert.Equal(t, 40.0, agg.Spend)
	assert.Equal(t, int64(4000), agg.Impressions)
	assert.Zero(t, agg.CTR)

	final := finalizeAgg(agg)

	assert.Equal(t, int64(5), final.Results)
	assert.InDelta(t, 2.0, final.CTR, 1e-9)
	assert.InDelta(t, 10.0, final.CPM, 1e-9)
	assert.InDelta(t, 0.5, final.CPC, 1e-9)
	assert.InDelta(t, 2.0, final.Frequency, 1e-9)
}

func TestFinalizeAggZeroDenominators(t *testing.T) {
	final := finalizeAgg(domain.InsightMetrics{Spend: 10})

	assert.Zero(t, final.CTR)
	assert.Zero(t, final.CPM)
	assert.Zero(t, final.CPC)
	assert.Zero(t, final.Frequency)
}

func TestMediaMetricsForType(t *testing.T) {
	assert.Equal(t,
		[]string{"reach", "saved", "shares", "views", "plays", "ig_reels_video_view_total_time", "ig_reels_avg_watch_time"},
		mediaMetricsForType("REEL"),
	)
	assert.Equal(t, []string{"reach", "saved", "shares", "views"}, mediaMetricsForType("video"))
	assert.Equal(t, []string{"reach", "saved", "shares"}, mediaMetricsForType("IMAGE"))
	assert.Equal(t, []string{"reach", "saved", "shares"}, mediaMetricsForType("CAROUSEL_ALBUM"))
	assert.Equal(t, []string{"reach", "saved", "shares", "views"}, mediaMetricsForType("ALGO_NOVO"))
}

func metricEntry(name string, values ...string) metadomain.MetricEntry {
	entry := metadomain.MetricEntry{Name: name}
	for _, value := range values {
		entry.Values = append(entry.Values, metadomain.MetricValue{Value: json.RawMessage(value)})
	}
	return entry
}

func TestParseInstagramAccountInsightsSumsSeries(t *testing.T) {
	metrics := parseInstagramAccountInsights([]metadomain.MetricEntry{
		metricEntry("reach", `10`, `20`, `5`),
		metricEntry("views", `100`, `50`),
		metricEntry("profile_views", `3`, `4`),
	})

	require.NotNil(t, metrics.AccountsReached)
	assert.Equal(t, int64(35), *metrics.AccountsReached)
	require.NotNil(t, metrics.Impressions)
	assert.Equal(t, int64(150), *metrics.Impressions)
	require.NotNil(t, metrics.ProfileViews)
	assert.Equal(t, int64(7), *metrics.ProfileViews)
	assert.Nil(t, metrics.FollowerCount)
}

func TestParseInstagramAccountInsightsFollowerCountIsSnapshot(t *testing.T) {
	metrics := parseInstagramAccountInsights([]metadomain.MetricEntry{
		metricEntry("follower_count", `100`, `105`, `103`),
	})

	require.NotNil(t, metrics.FollowerCount)
	assert.Equal(t, int64(103), *metrics.FollowerCount)
}

func TestParseInstagramAccountInsightsViewsAliases(t *testing.T) {
	metrics := parseInstagramAccountInsights([]metadomain.MetricEntry{
		metricEntry("content_views", `40`),
	})

	require.NotNil(t, metrics.Impressions)
	assert.Equal(t, int64(40), *metrics.Impressions)
}

func TestParseInstagramAccountInsightsObjectValues(t *testing.T) {
	metrics := parseInstagramAccountInsights([]metadomain.MetricEntry{
		metricEntry("accounts_engaged", `{"value": 12}`, `{"total_value": 8}`),
	})

	require.NotNil(t, metrics.AccountsEngaged)
	assert.Equal(t, int64(20), *metrics.AccountsEngaged)
}

func TestParseMediaInsightsUsesMaxOfSeries(t *testing.T) {
	metrics := parseMediaInsights([]metadomain.MetricEntry{
		metricEntry("reach", `10`, `25`, `20`),
		metricEntry("saved", `1`, `3`),
	})

	require.NotNil(t, metrics.Reach)
	assert.Equal(t, int64(25), *metrics.Reach)
	require.NotNil(t, metrics.Saved)
	assert.Equal(t, int64(3), *metrics.Saved)
	assert.Nil(t, metrics.Views)
}

func TestParseMediaInsightsViewsAndWatchTimeAliases(t *testing.T) {
	metrics := parseMediaInsights([]metadomain.MetricEntry{
		metricEntry("video_views", `90`),
		metricEntry("total_watch_time", `4200`),
	})

	require.NotNil(t, metrics.Views)
	assert.Equal(t, int64(90), *metrics.Views)
	require.NotNil(t, metrics.WatchTime)
	assert.Equal(t, int64(4200), *metrics.WatchTime)
}

func TestParseMediaInsightsAvgWatchTimeKeepsDecimalMax(t *testing.T) {
	metrics := parseMediaInsights([]metadomain.MetricEntry{
		metricEntry("ig_reels_avg_watch_time", `11.5`, `12.25`, `9.1`),
	})

	require.NotNil(t, metrics.AvgWatchTime)
	assert.Equal(t, 12.25, *metrics.AvgWatchTime)
}

func TestParseMediaInsightsEmpty(t *testing.T) {
	assert.True(t, parseMediaInsights(nil).IsEmpty())
	assert.True(t, parseInstagramAccountInsights(nil).IsEmpty())
}
