package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fb-insights-api/internal/config"
)

// NewRedisClient conecta no Redis a partir de uma URL redis://
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("erro ao interpretar REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("erro ao conectar no redis: %w", err)
	}

	return client, nil
}

// OpenInsightsCache devolve o cache Redis quando habilitado; se o Redis não
// responder a API segue sem cache
func OpenInsightsCache(ctx context.Context, cfg config.Redis) (InsightsCache, func() error) {
	noop := func() error { return nil }

	if !cfg.CacheEnabled {
		return NoopInsightsCache{}, noop
	}

	client, err := NewRedisClient(ctx, cfg.URL)
	if err != nil {
		logrus.WithError(err).Warn("Cache de insights desabilitado: Redis indisponível")
		return NoopInsightsCache{}, noop
	}

	logrus.WithField("ttl", cfg.CacheTTL.String()).Info("Cache de insights no Redis habilitado")
	return NewRedisInsightsCache(client, cfg.CacheTTL), client.Close
}
