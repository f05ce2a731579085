package metaclient

import (
	"errors"
	"fmt"
	"net/http"

	metadomain "github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta/domain"
)

var (
	ErrTransientNetwork = errors.New("meta: falha transitória de rede")
	ErrRateLimited      = errors.New("meta: limite de requisições atingido")
	ErrServerError      = errors.New("meta: erro no servidor da Graph API")
	ErrAuthentication   = errors.New("meta: token inválido ou expirado")
)

// APIError é uma resposta HTTP não-2xx da Graph API. Preserva status e corpo
// originais para diagnóstico.
type APIError struct {
	StatusCode int
	Body       string
	Graph      *metadomain.ErrorResponse
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Body:       string(body),
		Graph:      metadomain.ParseErrorResponse(body),
	}
}

func (e *APIError) Error() string {
	if e.Graph != nil {
		return fmt.Sprintf("meta: status %d: %s (code=%d subcode=%d fbtrace_id=%s)",
			e.StatusCode, e.Graph.Error.Message, e.Graph.Error.Code, e.Graph.Error.ErrorSubcode, e.Graph.Error.FBTraceID)
	}
	return fmt.Sprintf("meta: status %d: %s", e.StatusCode, e.Body)
}

// Retryable cobre 429 e 5xx; demais 4xx falham na hora
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || (e.Graph != nil && e.Graph.IsTokenExpired())
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrServerError:
		return e.StatusCode >= http.StatusInternalServerError
	case ErrAuthentication:
		return e.IsAuthError()
	}
	return false
}

// TransientError é uma falha de rede (conexão recusada, reset, timeout)
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("meta: falha de rede: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func (e *TransientError) Is(target error) bool {
	return target == ErrTransientNetwork
}

func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}

	var transientErr *TransientError
	return errors.As(err, &transientErr)
}
