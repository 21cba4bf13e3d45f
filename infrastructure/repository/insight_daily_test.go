package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
)

func TestDedupeLastByKeyKeepsLastOccurrence(t *testing.T) {
	date := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	otherDate := date.AddDate(0, 0, 1)

	insights := []*domain.AdInsightDaily{
		{AdID: "ad01", Date: date, InsightMetrics: domain.InsightMetrics{Spend: 10}},
		{AdID: "ad02", Date: date, InsightMetrics: domain.InsightMetrics{Spend: 20}},
		{AdID: "ad01", Date: date, InsightMetrics: domain.InsightMetrics{Spend: 30}},
		{AdID: "ad01", Date: otherDate, InsightMetrics: domain.InsightMetrics{Spend: 40}},
	}

	deduped := dedupeLastByKey(insights, func(i *domain.AdInsightDaily) string {
		return i.AdID + "|" + i.Date.Format("2006-01-02")
	})

	// A repetição de (ad01, data) sobrescreve mantendo a posição original.
	assert.Len(t, deduped, 3)
	assert.Equal(t, "ad01", deduped[0].AdID)
	assert.Equal(t, float64(30), deduped[0].Spend)
	assert.Equal(t, "ad02", deduped[1].AdID)
	assert.Equal(t, "ad01", deduped[2].AdID)
	assert.Equal(t, float64(40), deduped[2].Spend)
}

func TestDedupeLastByKeyWithoutDuplicates(t *testing.T) {
	date := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	insights := []*domain.AdInsightDaily{
		{AdID: "ad01", Date: date},
		{AdID: "ad02", Date: date},
	}

	deduped := dedupeLastByKey(insights, func(i *domain.AdInsightDaily) string {
		return i.AdID + "|" + i.Date.Format("2006-01-02")
	})

	assert.Equal(t, insights, deduped)
}
