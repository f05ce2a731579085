package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fb-insights-api/infrastructure/repository"
	"github.com/vfg2006/fb-insights-api/internal/config"
	"github.com/vfg2006/fb-insights-api/internal/domain"
	"github.com/vfg2006/fb-insights-api/internal/usecases/insighting"
)

// MetaInsightSyncConfig representa a configuração do agendador de insights do Meta
type MetaInsightSyncConfig struct {
	CronSchedule        string
	LookbackDays        int
	Levels              []domain.Level
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	SyncEnabled         bool
}

// SyncRunSummary resume a última execução da sincronização
type SyncRunSummary struct {
	RunID        string    `json:"run_id"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
	Credentials  int       `json:"credentials"`
	Expired      int       `json:"expired"`
	RowsIngested int       `json:"rows_ingested"`
	RowsSkipped  int       `json:"rows_skipped"`
	RowsFailed   int       `json:"rows_failed"`
	Errors       int       `json:"errors"`
}

// MetaInsightSyncService percorre todas as credenciais gravadas e busca a
// janela de lookback em cada nível configurado
type MetaInsightSyncService struct {
	scheduler      *gocron.Scheduler
	config         MetaInsightSyncConfig
	credentialRepo repository.CredentialRepository
	insighter      insighting.Insighter
	now            func() time.Time
	sleep          func(context.Context, time.Duration) error

	syncMutex   sync.Mutex
	syncRunning bool
	lastRun     *SyncRunSummary
}

// NewMetaInsightSyncService cria uma nova instância do serviço de sincronização de insights do Meta
func NewMetaInsightSyncService(
	credentialRepo repository.CredentialRepository,
	insighter insighting.Insighter,
	appConfig *config.Config,
) *MetaInsightSyncService {
	levels := make([]domain.Level, 0, len(appConfig.MetaInsightSync.Levels))
	for _, raw := range appConfig.MetaInsightSync.Levels {
		level, err := domain.ParseLevel(raw)
		if err != nil {
			logrus.WithField("level", raw).Warn("Nível de sincronização inválido ignorado")
			continue
		}
		levels = append(levels, level)
	}
	if len(levels) == 0 {
		levels = []domain.Level{domain.LevelCampaign}
	}

	insightConfig := MetaInsightSyncConfig{
		CronSchedule:        appConfig.MetaInsightSync.CronSchedule,
		LookbackDays:        max(appConfig.MetaInsightSync.LookbackDays, 1),
		Levels:              levels,
		RequestDelaySeconds: appConfig.MetaInsightSync.RequestDelaySeconds,
		MaxConcurrentJobs:   max(appConfig.MetaInsightSync.MaxConcurrentJobs, 1),
		SyncEnabled:         appConfig.MetaInsightSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         insightConfig.CronSchedule,
		"lookback_days":         insightConfig.LookbackDays,
		"levels":                insightConfig.Levels,
		"request_delay_seconds": insightConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   insightConfig.MaxConcurrentJobs,
		"sync_enabled":          insightConfig.SyncEnabled,
	}).Info("Configuração do agendador de insights do Meta carregada")

	return &MetaInsightSyncService{
		scheduler:      gocron.NewScheduler(time.UTC),
		config:         insightConfig,
		credentialRepo: credentialRepo,
		insighter:      insighter,
		now:            time.Now,
		sleep:          sleepContext,
	}
}

// Start inicia o agendador
func (s *MetaInsightSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de insights do Meta desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de insights do Meta")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de insights do Meta: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de insights do Meta")
		s.scheduler.Stop()
	}()

	return nil
}

// RunOnce executa uma sincronização completa e bloqueia até o fim; retorna
// false quando já havia uma execução em andamento
func (s *MetaInsightSyncService) RunOnce(ctx context.Context) bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de insights do Meta já em andamento, ignorando")
		return false
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	summary := &SyncRunSummary{
		RunID:     uuid.NewString(),
		StartedAt: s.now(),
	}
	logger := logrus.WithField("run_id", summary.RunID)

	credentials, err := s.credentialRepo.ListAll(ctx)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar credenciais para sincronização de insights do Meta")
		summary.Errors++
		s.finish(summary)
		return true
	}

	active := make([]*domain.Credential, 0, len(credentials))
	for _, credential := range credentials {
		if credential.IsExpired(summary.StartedAt) {
			summary.Expired++
			logger.WithField("ad_account_id", credential.AdAccountID).Warn("Credencial expirada, conta ignorada na sincronização")
			continue
		}
		active = append(active, credential)
	}
	summary.Credentials = len(active)

	since, until := s.window()
	logger.WithFields(logrus.Fields{
		"credentials": len(active),
		"since":       since,
		"until":       until,
	}).Info("Iniciando sincronização de insights do Meta")

	var mu sync.Mutex
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, credential := range active {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(c *domain.Credential) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			results, errs := s.syncCredential(ctx, logger, c, since, until)

			mu.Lock()
			defer mu.Unlock()
			for _, r := range results {
				summary.RowsIngested += r.RowsIngested
				summary.RowsSkipped += r.RowsSkipped
				summary.RowsFailed += r.RowsFailed
			}
			summary.Errors += errs
		}(credential)
	}

	wg.Wait()
	s.finish(summary)

	logger.WithFields(logrus.Fields{
		"duration":      summary.CompletedAt.Sub(summary.StartedAt).String(),
		"rows_ingested": summary.RowsIngested,
		"rows_skipped":  summary.RowsSkipped,
		"rows_failed":   summary.RowsFailed,
		"errors":        summary.Errors,
	}).Info("Sincronização de insights do Meta concluída")

	return true
}

// syncCredential busca os níveis em sequência para não disparar requisições
// paralelas com o mesmo token
func (s *MetaInsightSyncService) syncCredential(ctx context.Context, logger *logrus.Entry, c *domain.Credential, since, until string) ([]*domain.FetchInsightsResult, int) {
	results := make([]*domain.FetchInsightsResult, 0, len(s.config.Levels))
	errs := 0

	for i, level := range s.config.Levels {
		if i > 0 {
			if err := s.sleep(ctx, time.Duration(s.config.RequestDelaySeconds)*time.Second); err != nil {
				return results, errs + 1
			}
		}

		result, err := s.insighter.FetchAndStoreInsights(ctx, c.UserID, domain.FetchInsightsRequest{
			AdAccountID: c.AdAccountID,
			Since:       since,
			Until:       until,
			Level:       string(level),
		})
		if result != nil {
			results = append(results, result)
		}
		if err != nil {
			errs++
			logger.WithFields(logrus.Fields{
				"ad_account_id": c.AdAccountID,
				"level":         level,
			}).WithError(err).Error("Erro ao sincronizar insights do Meta")
		}
	}

	return results, errs
}

// window vai de LookbackDays atrás até ontem
func (s *MetaInsightSyncService) window() (string, string) {
	today := s.now().UTC()
	until := today.AddDate(0, 0, -1)
	since := today.AddDate(0, 0, -s.config.LookbackDays)
	return since.Format(time.DateOnly), until.Format(time.DateOnly)
}

func (s *MetaInsightSyncService) finish(summary *SyncRunSummary) {
	summary.CompletedAt = s.now()

	s.syncMutex.Lock()
	s.lastRun = summary
	s.syncMutex.Unlock()
}

// TriggerManualSync inicia manualmente uma sincronização de insights do Meta
func (s *MetaInsightSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Sincronização de insights do Meta já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização manual de insights do Meta")
	go s.RunOnce(context.Background())
	return true
}

// GetStatus retorna o status atual do agendador
func (s *MetaInsightSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":         s.config.SyncEnabled,
		"sync_cron":            s.config.CronSchedule,
		"sync_lookback_days":   s.config.LookbackDays,
		"sync_levels":          s.config.Levels,
		"sync_max_concurrent":  s.config.MaxConcurrentJobs,
		"sync_request_delay_s": s.config.RequestDelaySeconds,
		"sync_running":         s.syncRunning,
		"last_run":             s.lastRun,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
