package metaclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fb-insights-api/internal/config"
)

type sleepRecorder struct {
	delays []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return ctx.Err()
}

func newTestConfig(url string) *config.Config {
	cfg := &config.Config{}
	cfg.Meta.URL = url
	cfg.Meta.AppID = "app-id"
	cfg.Meta.AppSecret = "app-secret"
	return cfg
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*MetaClient, *sleepRecorder) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rec := &sleepRecorder{}
	opts = append([]Option{WithSleep(rec.sleep)}, opts...)
	return NewClient(newTestConfig(srv.URL), opts...), rec
}

func TestMetaClient_get_RetryPolicy(t *testing.T) {
	tests := []struct {
		name          string
		statuses      []int
		wantCalls     int32
		wantDelays    []time.Duration
		wantErr       error
		wantErrStatus int
	}{
		{
			name:       "503 duas vezes e depois 200 deve ter sucesso",
			statuses:   []int{503, 503, 200},
			wantCalls:  3,
			wantDelays: []time.Duration{time.Second, 2 * time.Second},
		},
		{
			name:          "503 em todas as tentativas deve retornar o último erro",
			statuses:      []int{503, 503, 503},
			wantCalls:     3,
			wantDelays:    []time.Duration{time.Second, 2 * time.Second},
			wantErr:       ErrServerError,
			wantErrStatus: 503,
		},
		{
			name:       "429 é tratado como transitório",
			statuses:   []int{429, 200},
			wantCalls:  2,
			wantDelays: []time.Duration{time.Second},
		},
		{
			name:          "400 falha imediatamente sem retry",
			statuses:      []int{400, 200},
			wantCalls:     1,
			wantDelays:    nil,
			wantErrStatus: 400,
		},
		{
			name:          "404 falha imediatamente sem retry",
			statuses:      []int{404},
			wantCalls:     1,
			wantErrStatus: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				n := calls.Add(1)
				status := tt.statuses[n-1]
				w.WriteHeader(status)
				if status == http.StatusOK {
					_, _ = w.Write([]byte(`{"attempt":"ok"}`))
					return
				}
				_, _ = w.Write([]byte(`{"error":{"message":"falha","code":2}}`))
			})

			body, err := client.get(context.Background(), "/resource", nil)

			assert.Equal(t, tt.wantCalls, calls.Load())
			assert.Equal(t, tt.wantDelays, rec.delays)

			if tt.wantErrStatus == 0 {
				require.NoError(t, err)
				assert.JSONEq(t, `{"attempt":"ok"}`, string(body))
				return
			}

			require.Error(t, err)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantErrStatus, apiErr.StatusCode)
			assert.Contains(t, apiErr.Body, "falha")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestMetaClient_get_FalhaDeRede(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	rec := &sleepRecorder{}
	client := NewClient(newTestConfig(url), WithSleep(rec.sleep))

	_, err := client.get(context.Background(), "/resource", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransientNetwork)
	assert.Len(t, rec.delays, 2)
}

func TestMetaClient_get_CancelamentoEntreTentativas(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, WithSleep(func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}))

	_, err := client.get(ctx, "/resource", nil)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, int32(1), calls.Load())
}

func TestMetaClient_get_TokenExpirado(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Error validating access token: Session has expired","type":"OAuthException","code":190,"error_subcode":463}}`))
	})

	_, err := client.get(context.Background(), "/resource", nil)

	assert.ErrorIs(t, err, ErrAuthentication)
	assert.Empty(t, rec.delays)
}

func TestRetryPolicy_Backoff(t *testing.T) {
	policy := DefaultRetryPolicy()

	assert.Equal(t, time.Second, policy.Backoff(0))
	assert.Equal(t, 2*time.Second, policy.Backoff(1))
	assert.Equal(t, 4*time.Second, policy.Backoff(2))
}

func TestAppSecretProof(t *testing.T) {
	// HMAC-SHA256("token") com chave "secret"
	proof := AppSecretProof("secret", "token")

	assert.Len(t, proof, 64)
	assert.Equal(t, proof, AppSecretProof("secret", "token"))
	assert.NotEqual(t, proof, AppSecretProof("other", "token"))
}
