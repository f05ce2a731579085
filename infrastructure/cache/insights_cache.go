package cache

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=insights_cache.go -destination=mocks/mock_insights_cache.go -package=mocks

const keyPrefix = "fbinsights"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// InsightsCache guarda respostas de leitura por credencial. Invalidate descarta
// tudo que foi gravado para a credencial até o momento.
type InsightsCache interface {
	Get(ctx context.Context, credentialID, key string, dest any) (bool, error)
	Set(ctx context.Context, credentialID, key string, value any) error
	Invalidate(ctx context.Context, credentialID string) error
}

type RedisInsightsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisInsightsCache(client *redis.Client, ttl time.Duration) *RedisInsightsCache {
	return &RedisInsightsCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisInsightsCache) Get(ctx context.Context, credentialID, key string, dest any) (bool, error) {
	entryKey, err := c.entryKey(ctx, credentialID, key)
	if err != nil {
		return false, err
	}

	data, err := c.client.Get(ctx, entryKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("erro ao ler cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("erro ao decodificar cache: %w", err)
	}

	return true, nil
}

func (c *RedisInsightsCache) Set(ctx context.Context, credentialID, key string, value any) error {
	entryKey, err := c.entryKey(ctx, credentialID, key)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("erro ao codificar cache: %w", err)
	}

	if err := c.client.Set(ctx, entryKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("erro ao gravar cache: %w", err)
	}

	return nil
}

// Invalidate avança a geração da credencial; as entradas antigas expiram pelo TTL
func (c *RedisInsightsCache) Invalidate(ctx context.Context, credentialID string) error {
	if err := c.client.Incr(ctx, generationKey(credentialID)).Err(); err != nil {
		return fmt.Errorf("erro ao invalidar cache: %w", err)
	}
	return nil
}

func (c *RedisInsightsCache) entryKey(ctx context.Context, credentialID, key string) (string, error) {
	generation, err := c.client.Get(ctx, generationKey(credentialID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("erro ao ler geração do cache: %w", err)
	}

	sum := sha1.Sum([]byte(key))
	return fmt.Sprintf("%s:%s:%d:%x", keyPrefix, credentialID, generation, sum[:]), nil
}

func generationKey(credentialID string) string {
	return fmt.Sprintf("%s:%s:gen", keyPrefix, credentialID)
}

// NoopInsightsCache é usado quando o cache está desabilitado
type NoopInsightsCache struct{}

func (NoopInsightsCache) Get(context.Context, string, string, any) (bool, error) { return false, nil }

func (NoopInsightsCache) Set(context.Context, string, string, any) error { return nil }

func (NoopInsightsCache) Invalidate(context.Context, string) error { return nil }
