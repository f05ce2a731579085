package metadomain

import (
	"encoding/json"
	"strings"
)

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// ParseErrorResponse retorna nil quando o corpo não segue o envelope de erro da Graph API
func ParseErrorResponse(body []byte) *ErrorResponse {
	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil
	}
	if errorResp.Error.Code == 0 && errorResp.Error.Message == "" {
		return nil
	}
	return &errorResp
}

// IsTokenExpired verifica se o erro é de token expirado ou invalidado
func (e *ErrorResponse) IsTokenExpired() bool {
	// O código 190 representa "token expirado" nas respostas da API do Meta
	// Possíveis subcódigos relacionados a problemas de token: 460, 463, 467
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467)) ||
		containsTokenExpirationMessage(e.Error.Message)
}

func containsTokenExpirationMessage(message string) bool {
	return strings.Contains(message, "Error validating access token") ||
		strings.Contains(message, "Session has expired") ||
		strings.Contains(message, "The session has been invalidated")
}
