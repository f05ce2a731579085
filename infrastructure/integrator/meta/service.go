package meta

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/fb-insights-api/internal/config"
	"github.com/vfg2006/fb-insights-api/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

// Insighter busca insights na Graph API e entrega os registros normalizados
type Insighter interface {
	StreamSnapshots(ctx context.Context, query metaclient.InsightsQuery, accessToken string, fn RecordFunc) (int, error)
}

// RecordResult é o resultado da normalização de um registro: Snapshot
// preenchido, Skipped (sem date_start) ou Err (*DataFormatError).
type RecordResult struct {
	Snapshot *domain.MetricSnapshot
	Skipped  bool
	Err      error
	Raw      json.RawMessage
}

// RecordFunc recebe cada registro na ordem de chegada; um erro interrompe a busca
type RecordFunc func(RecordResult) error

type MetaIntegrator struct {
	Client     metaclient.Client
	normalizer *Normalizer
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		Client:     client,
		normalizer: NewNormalizer(cfg.Meta.ConversionActionTypes),
	}
}

// StreamSnapshots retorna quantas páginas foram recebidas, mesmo em caso de erro
func (s *MetaIntegrator) StreamSnapshots(ctx context.Context, query metaclient.InsightsQuery, accessToken string, fn RecordFunc) (int, error) {
	pages := 0
	err := s.Client.EachInsightsPage(ctx, query, accessToken, func(records []json.RawMessage) error {
		pages++
		for _, raw := range records {
			if err := ctx.Err(); err != nil {
				return err
			}

			snapshot, err := s.normalizer.Normalize(raw, query.Level, query.AdAccountID)
			result := RecordResult{Snapshot: snapshot, Err: err, Raw: raw}
			if err == nil && snapshot == nil {
				result.Skipped = true
				logrus.WithFields(logrus.Fields{
					"ad_account_id": query.AdAccountID,
					"level":         query.Level,
				}).Debug("insights: registro sem date_start ignorado")
			}

			if err := fn(result); err != nil {
				return err
			}
		}
		return nil
	})
	return pages, err
}
