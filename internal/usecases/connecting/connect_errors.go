package connecting

import (
	"errors"
	"fmt"
)

var (
	// Erros de validação
	ErrInvalidState        = errors.New("state do OAuth inválido ou expirado")
	ErrMissingCode         = errors.New("código de autorização ausente")
	ErrInvalidAdAccountID  = errors.New("ad account ID deve seguir o formato act_<número>")
	ErrMissingAccessToken  = errors.New("access token é obrigatório")
	ErrInvalidRedirectPath = errors.New("redirect_to deve ser um caminho relativo")

	// Erros de serviços externos
	ErrMetaAuthentication = errors.New("o Meta recusou o código ou o token")
	ErrMetaIntegration    = errors.New("erro ao comunicar com o Meta")
	ErrNoAdAccounts       = errors.New("nenhuma conta de anúncios encontrada para o usuário do Facebook")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// ConnectError é um erro com contexto adicional para a conexão de contas
type ConnectError struct {
	Err         error  // Erro base
	Code        string // Código de erro para API
	AdAccountID string // Conta envolvida (quando aplicável)
	Details     string // Detalhes adicionais
}

func (e *ConnectError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// NewConnectError cria um novo ConnectError
func NewConnectError(err error, code string, details string) *ConnectError {
	return &ConnectError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewConnectErrorWithID cria um novo ConnectError com a conta envolvida
func NewConnectErrorWithID(err error, code string, adAccountID string, details string) *ConnectError {
	return &ConnectError{
		Err:         err,
		Code:        code,
		AdAccountID: adAccountID,
		Details:     details,
	}
}
