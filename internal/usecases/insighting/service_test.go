package insighting

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cachemocks "github.com/vfg2006/fb-insights-api/infrastructure/cache/mocks"
	"github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta"
	"github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta/metaclient"
	metamocks "github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta/metaclient/mocks"
	repomocks "github.com/vfg2006/fb-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/fb-insights-api/internal/config"
	"github.com/vfg2006/fb-insights-api/internal/domain"
	"github.com/vfg2006/fb-insights-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	client      *metamocks.MockClient
	credentials *repomocks.MockCredentialRepository
	cache       *cachemocks.MockInsightsCache
	store       *memoryStore
	service     *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		client:      metamocks.NewMockClient(ctrl),
		credentials: repomocks.NewMockCredentialRepository(ctrl),
		cache:       cachemocks.NewMockInsightsCache(ctrl),
		store:       newMemoryStore(),
	}

	cfg := &config.Config{}
	f.service = NewService(cfg, meta.New(cfg, f.client), f.credentials, f.store, f.cache).
		WithClock(func() time.Time { return fixedNow })

	return f
}

func validCredential() *domain.Credential {
	expiresAt := fixedNow.Add(30 * 24 * time.Hour)
	return &domain.Credential{
		ID:          "cred-1",
		UserID:      7,
		AdAccountID: "act_1",
		AccessToken: "EAAB-token",
		Kind:        domain.TokenKindUser,
		ExpiresAt:   &expiresAt,
	}
}

// scriptedPages entrega as páginas em ordem e depois retorna finalErr
func scriptedPages(finalErr error, pages ...[]string) func(context.Context, metaclient.InsightsQuery, string, metaclient.PageFunc) error {
	return func(ctx context.Context, _ metaclient.InsightsQuery, _ string, fn metaclient.PageFunc) error {
		for _, page := range pages {
			records := make([]json.RawMessage, 0, len(page))
			for _, r := range page {
				records = append(records, json.RawMessage(r))
			}
			if err := fn(records); err != nil {
				return err
			}
		}
		return finalErr
	}
}

var campaignPage = []string{
	`{"date_start":"2024-01-01","campaign_id":"c1","impressions":"1000","clicks":"50","spend":"100.0","actions":[{"action_type":"purchase","value":"5"}],"action_values":[{"action_type":"purchase","value":"500.0"}]}`,
	`{"date_start":"2024-01-01","campaign_id":"c2","impressions":"10","clicks":"1","spend":"2.5"}`,
}

func TestService_FetchAndStoreInsights_Validacao(t *testing.T) {
	tests := []struct {
		name        string
		req         domain.FetchInsightsRequest
		expectedErr error
		code        string
	}{
		{
			name:        "conta vazia",
			req:         domain.FetchInsightsRequest{Since: "2024-01-01", Until: "2024-01-02"},
			expectedErr: ErrAdAccountID,
			code:        apiErrors.ErrMissingRequiredData,
		},
		{
			name:        "nível inválido",
			req:         domain.FetchInsightsRequest{AdAccountID: "act_1", Since: "2024-01-01", Until: "2024-01-02", Level: "creative"},
			expectedErr: ErrInvalidLevel,
			code:        apiErrors.ErrInvalidLevel,
		},
		{
			name:        "data malformada",
			req:         domain.FetchInsightsRequest{AdAccountID: "act_1", Since: "01/01/2024", Until: "2024-01-02"},
			expectedErr: ErrInvalidDate,
			code:        apiErrors.ErrInvalidFormat,
		},
		{
			name:        "until ausente",
			req:         domain.FetchInsightsRequest{AdAccountID: "act_1", Since: "2024-01-01"},
			expectedErr: ErrInvalidDate,
			code:        apiErrors.ErrInvalidFormat,
		},
		{
			name:        "since posterior a until",
			req:         domain.FetchInsightsRequest{AdAccountID: "act_1", Since: "2024-02-01", Until: "2024-01-01"},
			expectedErr: ErrInvalidDateRange,
			code:        apiErrors.ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			result, err := f.service.FetchAndStoreInsights(context.Background(), 7, tt.req)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.True(t, IsValidationError(err))

			var insightErr *InsightError
			require.True(t, errors.As(err, &insightErr))
			assert.Equal(t, tt.code, insightErr.Code)
		})
	}
}

func TestService_FetchAndStoreInsights_ContaNaoEncontrada(t *testing.T) {
	f := newFixture(t)

	f.credentials.EXPECT().GetByUserAndAdAccount(gomock.Any(), 7, "act_404").Return(nil, nil)

	result, err := f.service.FetchAndStoreInsights(context.Background(), 7, domain.FetchInsightsRequest{
		AdAccountID: "act_404", Since: "2024-01-01", Until: "2024-01-01",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	var insightErr *InsightError
	require.True(t, errors.As(err, &insightErr))
	assert.Equal(t, apiErrors.ErrAccountNotFound, insightErr.Code)
}

func TestService_FetchAndStoreInsights_CredencialExpirada(t *testing.T) {
	f := newFixture(t)

	credential := validCredential()
	expired := fixedNow.Add(-time.Hour)
	credential.ExpiresAt = &expired

	f.credentials.EXPECT().GetByUserAndAdAccount(gomock.Any(), 7, "act_1").Return(credential, nil)

	result, err := f.service.FetchAndStoreInsights(context.Background(), 7, domain.FetchInsightsRequest{
		AdAccountID: "act_1", Since: "2024-01-01", Until: "2024-01-01",
	})

	assert.Nil(t, result)
	assert.True(t, IsAuthenticationError(err))
}

func TestService_FetchAndStoreInsights_Idempotente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := domain.FetchInsightsRequest{AdAccountID: "act_1", Since: "2024-01-01", Until: "2024-01-01"}

	f.credentials.EXPECT().GetByUserAndAdAccount(gomock.Any(), 7, "act_1").Return(validCredential(), nil).Times(2)
	f.client.EXPECT().
		EachInsightsPage(gomock.Any(), gomock.Any(), "EAAB-token", gomock.Any()).
		DoAndReturn(scriptedPages(nil, campaignPage)).
		Times(2)
	f.cache.EXPECT().Invalidate(gomock.Any(), "cred-1").Return(nil).Times(1)

	first, err := f.service.FetchAndStoreInsights(ctx, 7, req)
	require.NoError(t, err)
	assert.Equal(t, 2, first.RowsIngested)
	assert.Equal(t, 0, first.RowsSkipped)
	assert.Equal(t, 1, first.Pages)
	assert.Equal(t, domain.FetchStatusSuccess, first.Status)
	assert.Nil(t, first.NextCursor)

	second, err := f.service.FetchAndStoreInsights(ctx, 7, req)
	require.NoError(t, err)
	assert.Equal(t, 0, second.RowsIngested)
	assert.Equal(t, 2, second.RowsSkipped)

	assert.Equal(t, 2, f.store.count())
}

func TestService_FetchAndStoreInsights_RegistrosProblematicos(t *testing.T) {
	f := newFixture(t)

	f.credentials.EXPECT().GetByUserAndAdAccount(gomock.Any(), 7, "act_1").Return(validCredential(), nil)
	f.client.EXPECT().
		EachInsightsPage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(scriptedPages(nil,
			[]string{
				`{"date_start":"2024-01-01","campaign_id":"c1","impressions":"1000"}`,
				`{"campaign_id":"sem-data"}`,
			},
			[]string{
				`{"date_start":"2024-01-02","campaign_id":"c2","clicks":"abc"}`,
			},
		))
	f.cache.EXPECT().Invalidate(gomock.Any(), "cred-1").Return(nil)

	result, err := f.service.FetchAndStoreInsights(context.Background(), 7, domain.FetchInsightsRequest{
		AdAccountID: "act_1", Since: "2024-01-01", Until: "2024-01-02", Level: "campaign",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.RowsIngested)
	assert.Equal(t, 1, result.RowsSkipped)
	assert.Equal(t, 1, result.RowsFailed)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, domain.FetchStatusPartial, result.Status)
}

func TestService_FetchAndStoreInsights_FalhaNaPaginacao(t *testing.T) {
	tests := []struct {
		name        string
		providerErr error
		code        string
		target      error
	}{
		{
			name:        "erro do servidor após as tentativas",
			providerErr: &metaclient.APIError{StatusCode: 503, Body: "indisponível"},
			code:        apiErrors.ErrExternalService,
			target:      ErrMetaIntegration,
		},
		{
			name:        "token recusado pelo Meta",
			providerErr: &metaclient.APIError{StatusCode: 401, Body: "{}"},
			code:        apiErrors.ErrExpiredToken,
			target:      ErrCredentialExpired,
		},
		{
			name:        "limite de requisições",
			providerErr: &metaclient.APIError{StatusCode: 429, Body: "{}"},
			code:        apiErrors.ErrRateLimited,
			target:      ErrMetaRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.credentials.EXPECT().GetByUserAndAdAccount(gomock.Any(), 7, "act_1").Return(validCredential(), nil)
			f.client.EXPECT().
				EachInsightsPage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(scriptedPages(tt.providerErr, campaignPage[:1]))
			f.cache.EXPECT().Invalidate(gomock.Any(), "cred-1").Return(nil)

			result, err := f.service.FetchAndStoreInsights(context.Background(), 7, domain.FetchInsightsRequest{
				AdAccountID: "act_1", Since: "2024-01-01", Until: "2024-01-01",
			})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var insightErr *InsightError
			require.True(t, errors.As(err, &insightErr))
			assert.Equal(t, tt.code, insightErr.Code)

			var providerErr *metaclient.APIError
			require.True(t, errors.As(err, &providerErr))
			assert.Equal(t, tt.providerErr, providerErr)

			require.NotNil(t, result)
			assert.Equal(t, 1, result.RowsIngested)
			assert.Equal(t, domain.FetchStatusPartial, result.Status)
			assert.Equal(t, 1, f.store.count())
		})
	}
}

func TestService_FetchAndStoreInsights_ErroAoGravar(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := metamocks.NewMockClient(ctrl)
	credentials := repomocks.NewMockCredentialRepository(ctrl)
	snapshots := repomocks.NewMockMetricSnapshotRepository(ctrl)

	cfg := &config.Config{}
	service := NewService(cfg, meta.New(cfg, client), credentials, snapshots, nil).
		WithClock(func() time.Time { return fixedNow })

	credentials.EXPECT().GetByUserAndAdAccount(gomock.Any(), 7, "act_1").Return(validCredential(), nil)
	client.EXPECT().
		EachInsightsPage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(scriptedPages(nil, campaignPage))

	gomock.InOrder(
		snapshots.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(domain.IngestSkipped, errors.New("conexão perdida")),
		snapshots.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s *domain.MetricSnapshot) (domain.IngestOutcome, error) {
				assert.Equal(t, "cred-1", s.CredentialID)
				assert.Equal(t, "c2", s.EntityID)
				return domain.IngestInserted, nil
			}),
	)

	result, err := service.FetchAndStoreInsights(context.Background(), 7, domain.FetchInsightsRequest{
		AdAccountID: "act_1", Since: "2024-01-01", Until: "2024-01-01",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.RowsIngested)
	assert.Equal(t, 1, result.RowsFailed)
	assert.Equal(t, domain.FetchStatusPartial, result.Status)
}

func TestService_FetchAndStoreInsights_Cancelamento(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	f.credentials.EXPECT().GetByUserAndAdAccount(gomock.Any(), 7, "act_1").Return(validCredential(), nil)
	f.client.EXPECT().
		EachInsightsPage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ metaclient.InsightsQuery, _ string, fn metaclient.PageFunc) error {
			cancel()
			return fn([]json.RawMessage{json.RawMessage(campaignPage[0])})
		})

	result, err := f.service.FetchAndStoreInsights(ctx, 7, domain.FetchInsightsRequest{
		AdAccountID: "act_1", Since: "2024-01-01", Until: "2024-01-01",
	})

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Zero(t, result.RowsIngested)
	assert.Zero(t, f.store.count())
}
