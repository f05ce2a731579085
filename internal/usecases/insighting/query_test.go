package insighting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fb-insights-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func seedSnapshots(t *testing.T, store *memoryStore, snapshots ...*domain.MetricSnapshot) {
	t.Helper()
	for _, s := range snapshots {
		_, err := store.Insert(context.Background(), s)
		require.NoError(t, err)
	}
}

func snapshotOn(day int, entity string, impressions, clicks int64, spend, revenue float64) *domain.MetricSnapshot {
	return &domain.MetricSnapshot{
		CredentialID: "cred-1",
		Date:         time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Level:        domain.LevelCampaign,
		EntityID:     entity,
		Impressions:  impressions,
		Clicks:       clicks,
		Spend:        spend,
		Conversions:  1,
		Revenue:      revenue,
	}
}

func TestService_QueryStoredInsights(t *testing.T) {
	f := newFixture(t)
	seedSnapshots(t, f.store,
		snapshotOn(1, "c1", 1000, 50, 100, 500),
		snapshotOn(2, "c1", 200, 2, 10, 0),
		snapshotOn(3, "c1", 0, 0, 0, 0),
	)

	f.credentials.EXPECT().GetByUserAndAdAccount(gomock.Any(), 7, "act_1").Return(validCredential(), nil)
	f.cache.EXPECT().Get(gomock.Any(), "cred-1", "query:campaign:::1:2", gomock.Any()).Return(false, nil)
	f.cache.EXPECT().Set(gomock.Any(), "cred-1", "query:campaign:::1:2", gomock.Any()).Return(nil)

	level := domain.LevelCampaign
	page, err := f.service.QueryStoredInsights(context.Background(), 7, "act_1", domain.StoredInsightsQuery{
		Filters: domain.InsightFilters{Level: &level},
		Page:    1,
		Limit:   2,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Limit)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "2024-01-03", page.Items[0].Date)
	assert.Equal(t, "2024-01-02", page.Items[1].Date)
	assert.Equal(t, 1.0, page.Items[1].CTR)
	assert.Equal(t, 0.0, page.Items[1].ROAS)
}

func TestService_QueryStoredInsights_CacheHit(t *testing.T) {
	f := newFixture(t)

	f.credentials.EXPECT().GetByUserAndAdAccount(gomock.Any(), 7, "act_1").Return(validCredential(), nil)
	f.cache.EXPECT().Get(gomock.Any(), "cred-1", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, dest any) (bool, error) {
			*dest.(*domain.MetricSnapshotPage) = domain.MetricSnapshotPage{Total: 42, Page: 1, Limit: 50}
			return true, nil
		})

	page, err := f.service.QueryStoredInsights(context.Background(), 7, "act_1", domain.StoredInsightsQuery{})

	require.NoError(t, err)
	assert.Equal(t, 42, page.Total)
}

func TestService_QueryStoredInsights_LimitesDePaginacao(t *testing.T) {
	tests := []struct {
		name          string
		query         domain.StoredInsightsQuery
		expectedPage  int
		expectedLimit int
	}{
		{name: "valores zerados usam o padrão", query: domain.StoredInsightsQuery{}, expectedPage: 1, expectedLimit: domain.DefaultPageLimit},
		{name: "limite acima do teto", query: domain.StoredInsightsQuery{Page: 3, Limit: 5000}, expectedPage: 3, expectedLimit: domain.MaxPageLimit},
		{name: "página negativa", query: domain.StoredInsightsQuery{Page: -1, Limit: 10}, expectedPage: 1, expectedLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.credentials.EXPECT().GetByUserAndAdAccount(gomock.Any(), 7, "act_1").Return(validCredential(), nil)
			f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis fora"))
			f.cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

			page, err := f.service.QueryStoredInsights(context.Background(), 7, "act_1", tt.query)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedPage, page.Page)
			assert.Equal(t, tt.expectedLimit, page.Limit)
			assert.Empty(t, page.Items)
		})
	}
}

func TestService_QueryStoredInsights_PeriodoInvalido(t *testing.T) {
	f := newFixture(t)

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.service.QueryStoredInsights(context.Background(), 7, "act_1", domain.StoredInsightsQuery{
		Filters: domain.InsightFilters{DateFrom: &from, DateTo: &to},
	})

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestService_GetMetricsSummary(t *testing.T) {
	f := newFixture(t)
	seedSnapshots(t, f.store,
		snapshotOn(10, "c1", 1000, 50, 100, 500),
		snapshotOn(10, "c2", 1000, 10, 100, 0),
		snapshotOn(9, "c1", 500, 5, 50, 50),
		snapshotOn(8, "c1", 100, 1, 10, 10),
		snapshotOn(7, "c1", 100, 1, 10, 10),
		snapshotOn(1, "c1", 9999, 9999, 9999, 9999),
	)

	f.credentials.EXPECT().GetByUserAndAdAccount(gomock.Any(), 7, "act_1").Return(validCredential(), nil)
	f.cache.EXPECT().Get(gomock.Any(), "cred-1", "summary:7:campaign", gomock.Any()).Return(false, nil)
	f.cache.EXPECT().Set(gomock.Any(), "cred-1", "summary:7:campaign", gomock.Any()).Return(nil)

	summary, err := f.service.GetMetricsSummary(context.Background(), 7, "act_1", 0, "")

	require.NoError(t, err)
	assert.Equal(t, 7, summary.Days)
	assert.Equal(t, domain.LevelCampaign, summary.Level)
	assert.Equal(t, int64(2700), summary.TotalImpressions)
	assert.Equal(t, int64(67), summary.TotalClicks)
	assert.InDelta(t, 270.0, summary.TotalSpend, 0.001)
	assert.InDelta(t, 570.0, summary.TotalRevenue, 0.001)
	assert.Equal(t, int64(5), summary.TotalConversions)
	assert.Equal(t, 2.48, summary.AverageCTR)
	assert.Equal(t, 2.11, summary.AverageROAS)

	require.Len(t, summary.Trend, 3)
	assert.Equal(t, "2024-01-10", summary.Trend[0].Date)
	assert.InDelta(t, 200.0, summary.Trend[0].Spend, 0.001)
	assert.Equal(t, 2.5, summary.Trend[0].ROAS)
	assert.Equal(t, int64(2), summary.Trend[0].Conversions)
	assert.Equal(t, "2024-01-08", summary.Trend[2].Date)
}

func TestService_GetMetricsSummary_Validacao(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetMetricsSummary(context.Background(), 7, "act_1", 400, domain.LevelCampaign)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = f.service.GetMetricsSummary(context.Background(), 7, "act_1", 7, domain.Level("creative"))
	assert.ErrorIs(t, err, ErrInvalidLevel)
}
