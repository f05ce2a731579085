package metaclient

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryPolicy: espera BackoffFactor^n segundos após a tentativa n (base 0)
// que falhou com erro transitório, até MaxAttempts tentativas no total.
type RetryPolicy struct {
	MaxAttempts   int
	BackoffFactor float64
	Timeout       time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:   3,
		BackoffFactor: 2.0,
		Timeout:       30 * time.Second,
	}
}

func (p RetryPolicy) Backoff(attempt int) time.Duration {
	return time.Duration(math.Pow(p.BackoffFactor, float64(attempt)) * float64(time.Second))
}

// sleepContext retorna o erro do contexto se ele for cancelado durante a espera
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// get executa um GET com a política de retry do cliente
func (c *MetaClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < c.policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := c.policy.Backoff(attempt - 1)
			logrus.WithFields(logrus.Fields{
				"path":    path,
				"attempt": attempt + 1,
				"delay":   delay.String(),
				"error":   lastErr.Error(),
			}).Warn("meta: nova tentativa após falha transitória")

			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := c.doOnce(ctx, endpoint)
		if err == nil {
			return body, nil
		}

		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
	}

	logrus.WithFields(logrus.Fields{
		"path":     path,
		"attempts": c.policy.MaxAttempts,
	}).WithError(lastErr).Error("meta: tentativas esgotadas")

	return nil, lastErr
}

func (c *MetaClient) doOnce(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// url.Error carrega a URL com access_token; guardamos só a causa
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, &TransientError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransientError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}
