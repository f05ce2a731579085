package insighting

import (
	"errors"
	"fmt"

	"github.com/vfg2006/fb-insights-api/pkg/apiErrors"
)

var (
	// Erros de validação
	ErrInvalidLevel     = errors.New("nível de agregação inválido")
	ErrInvalidDate      = errors.New("data inválida, use o formato YYYY-MM-DD")
	ErrInvalidDateRange = errors.New("a data de início não pode ser posterior à data de fim")
	ErrAdAccountID      = errors.New("ad account ID é obrigatório")

	// Erros de credencial
	ErrAccountNotFound   = errors.New("conta de anúncios não conectada")
	ErrCredentialExpired = errors.New("token da conta expirado, refaça a conexão com o Facebook")

	// Erros de serviços externos
	ErrMetaIntegration = errors.New("erro ao buscar insights no Meta")
	ErrMetaRateLimited = errors.New("limite de requisições do Meta atingido")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// InsightError é um erro com contexto adicional para insights
type InsightError struct {
	Err         error  // Erro base
	Code        string // Código de erro para API
	AdAccountID string // Conta envolvida (quando aplicável)
	Details     string // Detalhes adicionais
	Cause       error  // Falha original do Meta (quando aplicável)
}

func (e *InsightError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *InsightError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NewInsightError cria um novo InsightError
func NewInsightError(err error, code string, adAccountID string, details string) *InsightError {
	return &InsightError{
		Err:         err,
		Code:        code,
		AdAccountID: adAccountID,
		Details:     details,
	}
}

func validationError(err error, code string, adAccountID string, details string) *InsightError {
	if code == "" {
		code = apiErrors.ErrInvalidRequest
	}
	return NewInsightError(err, code, adAccountID, details)
}

// IsValidationError indica falhas rejeitadas antes de qualquer chamada externa
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidLevel) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrAdAccountID)
}

// IsAuthenticationError indica que o usuário precisa refazer o fluxo OAuth
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrCredentialExpired)
}
