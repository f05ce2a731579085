package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fb-insights-api/infrastructure/cache"
	"github.com/vfg2006/fb-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta"
	"github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/fb-insights-api/infrastructure/repository"
	"github.com/vfg2006/fb-insights-api/internal/api"
	"github.com/vfg2006/fb-insights-api/internal/config"
	"github.com/vfg2006/fb-insights-api/internal/scheduler"
	"github.com/vfg2006/fb-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/fb-insights-api/internal/usecases/connecting"
	"github.com/vfg2006/fb-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/fb-insights-api/pkg/vault"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	cipher, err := vault.NewCipher(cfg.SecretKey)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar a cifra dos tokens")
	}

	insightsCache, closeCache := cache.OpenInsightsCache(ctx, cfg.Redis)
	defer closeCache()

	credentialRepo := repository.NewCredentialStore(pgConn, cipher)
	snapshotRepo := repository.NewMetricSnapshotStore(pgConn)

	metaClient := metaclient.NewClient(cfg)
	metaIntegrator := meta.New(cfg, metaClient)

	authenticator := authenticating.NewService(cfg)
	connectService := connecting.NewService(cfg, metaClient, credentialRepo)
	insightService := insighting.NewService(cfg, metaIntegrator, credentialRepo, snapshotRepo, insightsCache)

	metaInsightSyncService := scheduler.NewMetaInsightSyncService(credentialRepo, insightService, cfg)
	if err := metaInsightSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de insights do Meta")
	}

	server, err := api.New(
		cfg,
		insightService,
		connectService,
		authenticator,
		metaInsightSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
