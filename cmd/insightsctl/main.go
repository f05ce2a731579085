package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fb-insights-api/infrastructure/cache"
	"github.com/vfg2006/fb-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta"
	"github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/fb-insights-api/infrastructure/repository"
	"github.com/vfg2006/fb-insights-api/internal/cli"
	"github.com/vfg2006/fb-insights-api/internal/config"
	"github.com/vfg2006/fb-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/fb-insights-api/pkg/vault"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(config.NewConfig, buildServices)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func buildServices(ctx context.Context, cfg *config.Config) (*cli.Services, error) {
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}

	cipher, err := vault.NewCipher(cfg.SecretKey)
	if err != nil {
		conn.Close()
		return nil, err
	}

	insightsCache, closeCache := cache.OpenInsightsCache(ctx, cfg.Redis)

	metaClient := metaclient.NewClient(cfg)
	insightService := insighting.NewService(
		cfg,
		meta.New(cfg, metaClient),
		repository.NewCredentialStore(conn, cipher),
		repository.NewMetricSnapshotStore(conn),
		insightsCache,
	)

	return &cli.Services{
		Insighter: insightService,
		Migrator:  conn,
		Close: func() error {
			return errors.Join(closeCache(), conn.Close())
		},
	}, nil
}
