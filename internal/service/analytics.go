package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Djberg2/GrndWrkv0/internal/models"
	"github.com/Djberg2/GrndWrkv0/internal/pricing"
)

type KPIs struct {
	Total          int   `json:"total"`
	Scheduled      int   `json:"scheduled"`
	QuoteSent      int   `json:"quoteSent"`
	ConversionRate int   `json:"convRate"`
	AvgEstimate    int64 `json:"avgEstimate"`
	Pipeline       int64 `json:"pipeline"`
}

type MonthCount struct {
	Month string `json:"month"`
	Leads int    `json:"leads"`
}

type MonthRevenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

type ServiceShare struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Analytics struct {
	KPIs           KPIs           `json:"kpis"`
	LeadsByMonth   []MonthCount   `json:"leadsByMonth"`
	RevenueByMonth []MonthRevenue `json:"revenueByMonth"`
	ServiceMix     []ServiceShare `json:"serviceMix"`
}

// Summarize computes dashboard figures. Months are bucketed by creation time
// in loc. Only positive estimates count towards averages and revenue.
func Summarize(leads []models.Lead, loc *time.Location) Analytics {
	if loc == nil {
		loc = time.UTC
	}
	var (
		k        KPIs
		estSum   float64
		estCount int
		pipeline float64
		byMonth  = map[string]int{}
		revenue  = map[string]float64{}
		mix      = map[string]int{}
		mixOrder []string
	)
	k.Total = len(leads)

	for _, l := range leads {
		status := strings.ToLower(l.Status)
		positive := l.Estimate > 0 && !math.IsInf(l.Estimate, 0) && !math.IsNaN(l.Estimate)
		month := l.CreatedAt.In(loc).Format("2006-01")

		switch status {
		case "scheduled":
			k.Scheduled++
		case "quote sent":
			k.QuoteSent++
			if positive {
				pipeline += l.Estimate
			}
		}
		if positive {
			estSum += l.Estimate
			estCount++
			revenue[month] += l.Estimate
		}
		byMonth[month]++

		if key := pricing.ServiceKey(l.ServiceType); key != "" {
			if _, seen := mix[key]; !seen {
				mixOrder = append(mixOrder, key)
			}
			mix[key]++
		}
	}

	if k.Total > 0 {
		k.ConversionRate = int(math.Round(float64(k.QuoteSent) / float64(k.Total) * 100))
	}
	if estCount > 0 {
		k.AvgEstimate = int64(math.Round(estSum / float64(estCount)))
	}
	k.Pipeline = int64(math.Round(pipeline))

	out := Analytics{
		KPIs:           k,
		LeadsByMonth:   []MonthCount{},
		RevenueByMonth: []MonthRevenue{},
		ServiceMix:     []ServiceShare{},
	}
	for _, m := range sortedKeys(byMonth) {
		out.LeadsByMonth = append(out.LeadsByMonth, MonthCount{Month: m, Leads: byMonth[m]})
	}
	for _, m := range sortedKeys(revenue) {
		out.RevenueByMonth = append(out.RevenueByMonth, MonthRevenue{Month: m, Revenue: int64(math.Round(revenue[m]))})
	}
	for _, key := range mixOrder {
		out.ServiceMix = append(out.ServiceMix, ServiceShare{Key: key, Name: pricing.ServiceLabel(key), Value: mix[key]})
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
