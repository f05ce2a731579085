package insighting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fb-insights-api/internal/domain"
	"github.com/vfg2006/fb-insights-api/pkg/apiErrors"
	"github.com/vfg2006/fb-insights-api/pkg/utils"
)

const (
	DefaultSummaryDays = 7
	MaxSummaryDays     = 365
	summaryTrendDays   = 3
)

// QueryStoredInsights lê os snapshots de uma conta do usuário, com cache por credencial
func (s *Service) QueryStoredInsights(ctx context.Context, userID int, adAccountID string, query domain.StoredInsightsQuery) (*domain.MetricSnapshotPage, error) {
	query, err := normalizeStoredQuery(adAccountID, query)
	if err != nil {
		return nil, err
	}

	credential, err := s.lookupCredential(ctx, userID, adAccountID)
	if err != nil {
		return nil, err
	}

	key := storedQueryKey(query)

	var cached domain.MetricSnapshotPage
	if found, err := s.cache.Get(ctx, credential.ID, key, &cached); err != nil {
		logrus.WithError(err).Warn("insights: erro ao ler cache, consultando o banco")
	} else if found {
		return &cached, nil
	}

	snapshots, total, err := s.snapshotRepository.Query(ctx, credential.ID, query)
	if err != nil {
		return nil, NewInsightError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, adAccountID, err.Error())
	}

	page := &domain.MetricSnapshotPage{
		Items: make([]*domain.MetricSnapshotResponse, 0, len(snapshots)),
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
	}
	for _, snapshot := range snapshots {
		page.Items = append(page.Items, snapshot.ToResponse())
	}

	if err := s.cache.Set(ctx, credential.ID, key, page); err != nil {
		logrus.WithError(err).Warn("insights: erro ao gravar cache")
	}

	return page, nil
}

// GetMetricsSummary soma os snapshots dos últimos days dias (até hoje, inclusive)
func (s *Service) GetMetricsSummary(ctx context.Context, userID int, adAccountID string, days int, level domain.Level) (*domain.MetricsSummary, error) {
	if days <= 0 {
		days = DefaultSummaryDays
	}
	if days > MaxSummaryDays {
		return nil, validationError(ErrInvalidDateRange, apiErrors.ErrInvalidDateRange, adAccountID, fmt.Sprintf("máximo de %d dias", MaxSummaryDays))
	}
	if level == "" {
		level = domain.LevelCampaign
	}
	if !level.IsValid() {
		return nil, validationError(ErrInvalidLevel, apiErrors.ErrInvalidLevel, adAccountID, string(level))
	}

	credential, err := s.lookupCredential(ctx, userID, adAccountID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("summary:%d:%s", days, level)

	var cached domain.MetricsSummary
	if found, err := s.cache.Get(ctx, credential.ID, key, &cached); err != nil {
		logrus.WithError(err).Warn("insights: erro ao ler cache, consultando o banco")
	} else if found {
		return &cached, nil
	}

	to := utils.StartOfDay(s.now())
	from := to.AddDate(0, 0, -(days - 1))

	snapshots, err := s.allSnapshots(ctx, credential.ID, domain.InsightFilters{
		Level:    &level,
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		return nil, NewInsightError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, adAccountID, err.Error())
	}

	summary := summarize(snapshots)
	summary.AdAccountID = adAccountID
	summary.Level = level
	summary.Days = days

	if err := s.cache.Set(ctx, credential.ID, key, summary); err != nil {
		logrus.WithError(err).Warn("insights: erro ao gravar cache")
	}

	return summary, nil
}

// lookupCredential não rejeita tokens vencidos: os dados gravados continuam legíveis
func (s *Service) lookupCredential(ctx context.Context, userID int, adAccountID string) (*domain.Credential, error) {
	credential, err := s.credentialRepository.GetByUserAndAdAccount(ctx, userID, adAccountID)
	if err != nil {
		return nil, NewInsightError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, adAccountID, err.Error())
	}
	if credential == nil {
		return nil, NewInsightError(ErrAccountNotFound, apiErrors.ErrAccountNotFound, adAccountID, adAccountID)
	}
	return credential, nil
}

func (s *Service) allSnapshots(ctx context.Context, credentialID string, filters domain.InsightFilters) ([]*domain.MetricSnapshot, error) {
	var all []*domain.MetricSnapshot

	for page := 1; ; page++ {
		snapshots, total, err := s.snapshotRepository.Query(ctx, credentialID, domain.StoredInsightsQuery{
			Filters: filters,
			Page:    page,
			Limit:   domain.MaxPageLimit,
		})
		if err != nil {
			return nil, err
		}

		all = append(all, snapshots...)
		if len(snapshots) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

func normalizeStoredQuery(adAccountID string, query domain.StoredInsightsQuery) (domain.StoredInsightsQuery, error) {
	if strings.TrimSpace(adAccountID) == "" {
		return query, validationError(ErrAdAccountID, apiErrors.ErrMissingRequiredData, "", "")
	}

	if query.Filters.Level != nil && !query.Filters.Level.IsValid() {
		return query, validationError(ErrInvalidLevel, apiErrors.ErrInvalidLevel, adAccountID, string(*query.Filters.Level))
	}

	if query.Filters.DateFrom != nil && query.Filters.DateTo != nil && query.Filters.DateFrom.After(*query.Filters.DateTo) {
		return query, validationError(ErrInvalidDateRange, apiErrors.ErrInvalidDateRange, adAccountID, "")
	}

	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = domain.DefaultPageLimit
	}
	if query.Limit > domain.MaxPageLimit {
		query.Limit = domain.MaxPageLimit
	}

	return query, nil
}

func storedQueryKey(query domain.StoredInsightsQuery) string {
	level, from, to := "", "", ""
	if query.Filters.Level != nil {
		level = string(*query.Filters.Level)
	}
	if query.Filters.DateFrom != nil {
		from = query.Filters.DateFrom.Format(time.DateOnly)
	}
	if query.Filters.DateTo != nil {
		to = query.Filters.DateTo.Format(time.DateOnly)
	}
	return fmt.Sprintf("query:%s:%s:%s:%d:%d", level, from, to, query.Page, query.Limit)
}

// summarize calcula CTR e ROAS médios a partir dos totais, não da média diária
func summarize(snapshots []*domain.MetricSnapshot) *domain.MetricsSummary {
	summary := &domain.MetricsSummary{Trend: []*domain.DailyMetricTrend{}}
	daily := make(map[string]*domain.MetricSnapshot)

	for _, snapshot := range snapshots {
		summary.TotalImpressions += snapshot.Impressions
		summary.TotalClicks += snapshot.Clicks
		summary.TotalSpend += snapshot.Spend
		summary.TotalConversions += snapshot.Conversions
		summary.TotalRevenue += snapshot.Revenue

		date := snapshot.Date.Format(time.DateOnly)
		day, ok := daily[date]
		if !ok {
			day = &domain.MetricSnapshot{Date: snapshot.Date}
			daily[date] = day
		}
		day.Impressions += snapshot.Impressions
		day.Clicks += snapshot.Clicks
		day.Spend += snapshot.Spend
		day.Conversions += snapshot.Conversions
		day.Revenue += snapshot.Revenue
	}

	summary.AverageCTR = domain.CalculateCTR(summary.TotalClicks, summary.TotalImpressions)
	summary.AverageROAS = domain.CalculateROAS(summary.TotalRevenue, summary.TotalSpend)

	dates := make([]string, 0, len(daily))
	for date := range daily {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	for i, date := range dates {
		if i == summaryTrendDays {
			break
		}
		day := daily[date]
		summary.Trend = append(summary.Trend, &domain.DailyMetricTrend{
			Date:        date,
			Spend:       day.Spend,
			Revenue:     day.Revenue,
			Conversions: day.Conversions,
			CTR:         day.CTR(),
			ROAS:        day.ROAS(),
		})
	}

	return summary
}
