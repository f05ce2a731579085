package domain

import "time"

const (
	MaxPageLimit     = 1000
	DefaultPageLimit = 50
)

// InsightFilters filtra a leitura dos snapshots armazenados
type InsightFilters struct {
	Level    *Level
	DateFrom *time.Time
	DateTo   *time.Time
}

// StoredInsightsQuery é a consulta paginada de snapshots de uma conta
type StoredInsightsQuery struct {
	Filters InsightFilters
	Page    int
	Limit   int
}

// Offset assume Page e Limit já validados
func (q StoredInsightsQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type MetricSnapshotPage struct {
	Items []*MetricSnapshotResponse `json:"items"`
	Total int                       `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}

// FetchInsightsRequest chega como texto e é validado antes de qualquer chamada externa
type FetchInsightsRequest struct {
	AdAccountID string
	Since       string
	Until       string
	Level       string
}

type FetchStatus string

const (
	FetchStatusSuccess FetchStatus = "success"
	FetchStatusPartial FetchStatus = "partial"
	FetchStatusFailed  FetchStatus = "failed"
)

type FetchInsightsResult struct {
	RowsIngested int         `json:"rows_ingested"`
	RowsSkipped  int         `json:"rows_skipped"`
	RowsFailed   int         `json:"rows_failed"`
	Pages        int         `json:"pages"`
	NextCursor   *string     `json:"next_cursor"`
	Status       FetchStatus `json:"status"`
}

// MetricsSummary agrega os snapshots de um período
type MetricsSummary struct {
	AdAccountID      string              `json:"ad_account_id"`
	Level            Level               `json:"level"`
	Days             int                 `json:"days"`
	TotalImpressions int64               `json:"total_impressions"`
	TotalClicks      int64               `json:"total_clicks"`
	TotalSpend       float64             `json:"total_spend"`
	TotalConversions int64               `json:"total_conversions"`
	TotalRevenue     float64             `json:"total_revenue"`
	AverageCTR       float64             `json:"average_ctr"`
	AverageROAS      float64             `json:"average_roas"`
	Trend            []*DailyMetricTrend `json:"trend"`
}

// DailyMetricTrend é um dia do período, do mais recente para o mais antigo
type DailyMetricTrend struct {
	Date        string  `json:"date"`
	Spend       float64 `json:"spend"`
	Revenue     float64 `json:"revenue"`
	Conversions int64   `json:"conversions"`
	CTR         float64 `json:"ctr"`
	ROAS        float64 `json:"roas"`
}
