package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Djberg2/GrndWrkv0/internal/models"
)

func TestSummarize(t *testing.T) {
	jun := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	jul := time.Date(2025, 7, 2, 12, 0, 0, 0, time.UTC)
	leads := []models.Lead{
		{ServiceType: "lawn-mowing", Status: "New", Estimate: 100, CreatedAt: jun},
		{ServiceType: "Lawn Mowing", Status: "Scheduled", Estimate: 200, CreatedAt: jun},
		{ServiceType: "tree-removal", Status: "Quote Sent", Estimate: 301, CreatedAt: jul},
		{ServiceType: "", Status: "quote sent", Estimate: 0, CreatedAt: jul},
	}

	a := Summarize(leads, time.UTC)

	assert.Equal(t, KPIs{
		Total:          4,
		Scheduled:      1,
		QuoteSent:      2,
		ConversionRate: 50,
		AvgEstimate:    200,
		Pipeline:       301,
	}, a.KPIs)
	assert.Equal(t, []MonthCount{{"2025-06", 2}, {"2025-07", 2}}, a.LeadsByMonth)
	assert.Equal(t, []MonthRevenue{{"2025-06", 300}, {"2025-07", 301}}, a.RevenueByMonth)

	require.Len(t, a.ServiceMix, 2)
	assert.Equal(t, ServiceShare{Key: "lawn-mowing", Name: "Lawn Mowing", Value: 2}, a.ServiceMix[0])
	assert.Equal(t, "tree-removal", a.ServiceMix[1].Key)
}

func TestSummarize_Empty(t *testing.T) {
	a := Summarize(nil, nil)
	assert.Equal(t, KPIs{}, a.KPIs)
	assert.NotNil(t, a.LeadsByMonth)
	assert.Empty(t, a.ServiceMix)
}

func TestSummarize_MonthUsesLocation(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	leads := []models.Lead{{Status: "New", CreatedAt: time.Date(2025, 8, 1, 2, 0, 0, 0, time.UTC)}}
	assert.Equal(t, "2025-07", Summarize(leads, chicago).LeadsByMonth[0].Month)
}
