package insighting

import (
	"context"

	"github.com/vfg2006/fb-insights-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_insighter.go -package=mocks

// Insighter é a superfície de insights usada pelos handlers, pelo scheduler e pela CLI
type Insighter interface {
	// FetchAndStoreInsights busca o período no Meta e grava cada snapshot de forma idempotente
	FetchAndStoreInsights(ctx context.Context, userID int, req domain.FetchInsightsRequest) (*domain.FetchInsightsResult, error)

	// QueryStoredInsights lê os snapshots gravados com paginação por offset
	QueryStoredInsights(ctx context.Context, userID int, adAccountID string, query domain.StoredInsightsQuery) (*domain.MetricSnapshotPage, error)

	// GetMetricsSummary agrega os últimos dias gravados de uma conta
	GetMetricsSummary(ctx context.Context, userID int, adAccountID string, days int, level domain.Level) (*domain.MetricsSummary, error)
}
