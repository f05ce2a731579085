package metaclient

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	metadomain "github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/fb-insights-api/internal/config"
)

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

type Client interface {
	ExchangeCode(ctx context.Context, code, redirectURI string) (*metadomain.TokenResponse, error)
	ExtendToken(ctx context.Context, shortLivedToken string) (*LongLivedToken, error)
	GetAdAccounts(ctx context.Context, accessToken string) ([]metadomain.AdAccount, error)
	EachInsightsPage(ctx context.Context, query InsightsQuery, accessToken string, fn PageFunc) error
	FetchAllInsights(ctx context.Context, query InsightsQuery, accessToken string) ([]json.RawMessage, error)
}

type MetaClient struct {
	baseURL              string
	appID                string
	appSecret            string
	appSecretProof       bool
	pageSize             int
	defaultTokenLifetime time.Duration
	policy               RetryPolicy
	httpClient           *http.Client
	sleep                func(context.Context, time.Duration) error
	now                  func() time.Time
}

type Option func(*MetaClient)

// WithHTTPClient substitui o cliente HTTP; o timeout por tentativa passa a ser o dele
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *MetaClient) {
		c.httpClient = httpClient
	}
}

func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(c *MetaClient) {
		c.sleep = sleep
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *MetaClient) {
		c.now = now
	}
}

func NewClient(cfg *config.Config, opts ...Option) *MetaClient {
	policy := DefaultRetryPolicy()
	if cfg.Retry.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.Retry.MaxAttempts
	}
	if cfg.Retry.BackoffFactor > 0 {
		policy.BackoffFactor = cfg.Retry.BackoffFactor
	}
	if cfg.Retry.RequestTimeout > 0 {
		policy.Timeout = cfg.Retry.RequestTimeout
	}

	pageSize := cfg.Meta.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	lifetime := cfg.Meta.DefaultTokenLifetime
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}

	c := &MetaClient{
		baseURL:              strings.TrimRight(cfg.Meta.URL, "/"),
		appID:                cfg.Meta.AppID,
		appSecret:            cfg.Meta.AppSecret,
		appSecretProof:       cfg.Meta.AppSecretProof,
		pageSize:             pageSize,
		defaultTokenLifetime: lifetime,
		policy:               policy,
		httpClient:           &http.Client{Timeout: policy.Timeout},
		sleep:                sleepContext,
		now:                  time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// withToken adiciona o access_token e, se habilitado, o appsecret_proof
func (c *MetaClient) withToken(params url.Values, accessToken string) url.Values {
	params.Set("access_token", accessToken)
	if c.appSecretProof && c.appSecret != "" {
		params.Set("appsecret_proof", AppSecretProof(c.appSecret, accessToken))
	}
	return params
}

// AppSecretProof é o HMAC-SHA256 do token com o app secret, em hex
func AppSecretProof(appSecret, accessToken string) string {
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write([]byte(accessToken))
	return hex.EncodeToString(mac.Sum(nil))
}
