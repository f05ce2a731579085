package insighting

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fb-insights-api/infrastructure/cache"
	"github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta"
	"github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/fb-insights-api/infrastructure/repository"
	"github.com/vfg2006/fb-insights-api/internal/config"
	"github.com/vfg2006/fb-insights-api/internal/domain"
	"github.com/vfg2006/fb-insights-api/pkg/apiErrors"
	"github.com/vfg2006/fb-insights-api/pkg/utils"
)

// Service implementa Insighter
type Service struct {
	cfg                  *config.Config
	metaService          meta.Insighter
	credentialRepository repository.CredentialRepository
	snapshotRepository   repository.MetricSnapshotRepository
	cache                cache.InsightsCache
	now                  func() time.Time
}

// NewService cria uma nova instância do serviço de insights
func NewService(
	cfg *config.Config,
	metaService meta.Insighter,
	credentialRepo repository.CredentialRepository,
	snapshotRepo repository.MetricSnapshotRepository,
	insightsCache cache.InsightsCache,
) *Service {
	if insightsCache == nil {
		insightsCache = cache.NoopInsightsCache{}
	}

	return &Service{
		cfg:                  cfg,
		metaService:          metaService,
		credentialRepository: credentialRepo,
		snapshotRepository:   snapshotRepo,
		cache:                insightsCache,
		now:                  time.Now,
	}
}

// WithClock troca o relógio usado para checar a expiração das credenciais
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// FetchAndStoreInsights grava um snapshot por registro, na ordem de chegada.
// Registros malformados não interrompem a execução: são contados em
// RowsFailed. Uma falha de paginação encerra a execução e devolve o erro
// junto com as contagens parciais; o que já foi gravado permanece.
func (s *Service) FetchAndStoreInsights(ctx context.Context, userID int, req domain.FetchInsightsRequest) (*domain.FetchInsightsResult, error) {
	query, err := parseFetchRequest(req)
	if err != nil {
		return nil, err
	}

	credential, err := s.credentialFor(ctx, userID, query.AdAccountID)
	if err != nil {
		return nil, err
	}

	logger := logrus.WithFields(logrus.Fields{
		"ad_account_id": query.AdAccountID,
		"credential_id": credential.ID,
		"level":         query.Level,
		"since":         req.Since,
		"until":         req.Until,
	})

	result := &domain.FetchInsightsResult{}

	pages, streamErr := s.metaService.StreamSnapshots(ctx, query, credential.AccessToken, func(record meta.RecordResult) error {
		switch {
		case record.Skipped:
			result.RowsSkipped++
			return nil
		case record.Err != nil:
			result.RowsFailed++
			logger.WithError(record.Err).Warn("insights: registro descartado na normalização")
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		snapshot := record.Snapshot
		snapshot.CredentialID = credential.ID

		outcome, err := s.snapshotRepository.Insert(ctx, snapshot)
		if err != nil {
			result.RowsFailed++
			logger.WithFields(logrus.Fields{
				"date":      snapshot.Date.Format(time.DateOnly),
				"entity_id": snapshot.EntityID,
			}).WithError(err).Error("insights: erro ao gravar snapshot")
			return nil
		}

		if outcome == domain.IngestSkipped {
			result.RowsSkipped++
		} else {
			result.RowsIngested++
		}
		return nil
	})
	result.Pages = pages
	result.Status = runStatus(result, streamErr)

	if result.RowsIngested > 0 {
		if err := s.cache.Invalidate(ctx, credential.ID); err != nil {
			logger.WithError(err).Warn("insights: erro ao invalidar cache")
		}
	}

	logger.WithFields(logrus.Fields{
		"rows_ingested": result.RowsIngested,
		"rows_skipped":  result.RowsSkipped,
		"rows_failed":   result.RowsFailed,
		"pages":         result.Pages,
	}).Info("insights: execução finalizada")

	if streamErr != nil {
		return result, providerError(streamErr, query.AdAccountID)
	}

	return result, nil
}

func parseFetchRequest(req domain.FetchInsightsRequest) (metaclient.InsightsQuery, error) {
	adAccountID := strings.TrimSpace(req.AdAccountID)
	if adAccountID == "" {
		return metaclient.InsightsQuery{}, validationError(ErrAdAccountID, apiErrors.ErrMissingRequiredData, "", "")
	}

	level := domain.LevelCampaign
	if strings.TrimSpace(req.Level) != "" {
		parsed, err := domain.ParseLevel(req.Level)
		if err != nil {
			return metaclient.InsightsQuery{}, validationError(ErrInvalidLevel, apiErrors.ErrInvalidLevel, adAccountID, err.Error())
		}
		level = parsed
	}

	since, err := utils.ParseDateOnly(req.Since)
	if err != nil {
		return metaclient.InsightsQuery{}, validationError(ErrInvalidDate, apiErrors.ErrInvalidFormat, adAccountID, "since="+req.Since)
	}

	until, err := utils.ParseDateOnly(req.Until)
	if err != nil {
		return metaclient.InsightsQuery{}, validationError(ErrInvalidDate, apiErrors.ErrInvalidFormat, adAccountID, "until="+req.Until)
	}

	if since.After(until) {
		return metaclient.InsightsQuery{}, validationError(ErrInvalidDateRange, apiErrors.ErrInvalidDateRange, adAccountID, "")
	}

	return metaclient.InsightsQuery{
		AdAccountID: adAccountID,
		Since:       since,
		Until:       until,
		Level:       level,
	}, nil
}

// credentialFor busca a credencial do usuário e rejeita tokens vencidos
// antes de qualquer chamada ao Meta
func (s *Service) credentialFor(ctx context.Context, userID int, adAccountID string) (*domain.Credential, error) {
	credential, err := s.credentialRepository.GetByUserAndAdAccount(ctx, userID, adAccountID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": adAccountID,
			"user_id":       userID,
		}).WithError(err).Error("Erro ao buscar credencial no repositório")
		return nil, NewInsightError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, adAccountID, err.Error())
	}

	if credential == nil {
		return nil, NewInsightError(ErrAccountNotFound, apiErrors.ErrAccountNotFound, adAccountID, adAccountID)
	}

	if credential.IsExpired(s.now()) {
		return nil, NewInsightError(ErrCredentialExpired, apiErrors.ErrExpiredToken, adAccountID, "")
	}

	return credential, nil
}

func runStatus(result *domain.FetchInsightsResult, streamErr error) domain.FetchStatus {
	switch {
	case streamErr != nil && result.RowsIngested == 0 && result.RowsSkipped == 0:
		return domain.FetchStatusFailed
	case streamErr != nil || result.RowsFailed > 0:
		return domain.FetchStatusPartial
	default:
		return domain.FetchStatusSuccess
	}
}

// providerError classifica a falha do Meta; cancelamento é devolvido como está
func providerError(err error, adAccountID string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var insightErr *InsightError
	switch {
	case errors.Is(err, metaclient.ErrAuthentication):
		insightErr = NewInsightError(ErrCredentialExpired, apiErrors.ErrExpiredToken, adAccountID, err.Error())
	case errors.Is(err, metaclient.ErrRateLimited):
		insightErr = NewInsightError(ErrMetaRateLimited, apiErrors.ErrRateLimited, adAccountID, err.Error())
	default:
		insightErr = NewInsightError(ErrMetaIntegration, apiErrors.ErrExternalService, adAccountID, err.Error())
	}
	insightErr.Cause = err

	return insightErr
}
