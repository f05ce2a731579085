package domain

import (
	"time"
)

// TokenKind diferencia tokens OAuth de usuário e tokens de system user
type TokenKind string

const (
	TokenKindUser   TokenKind = "user"
	TokenKindSystem TokenKind = "system"

	DefaultTokenType = "bearer"
)

// Credential é o token de acesso de um usuário para uma conta de anúncios.
// Existe no máximo uma por (UserID, AdAccountID).
type Credential struct {
	ID          string     `json:"id"`
	UserID      int        `json:"user_id"`
	AdAccountID string     `json:"ad_account_id"`
	AccountName string     `json:"account_name"`
	AccessToken string     `json:"-"`
	TokenType   string     `json:"token_type"`
	Kind        TokenKind  `json:"kind"`
	ExpiresAt   *time.Time `json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsExpired retorna false para tokens sem expiração (system user)
func (c *Credential) IsExpired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(*c.ExpiresAt)
}

type CredentialResponse struct {
	ID           string     `json:"id"`
	AdAccountID  string     `json:"ad_account_id"`
	AccountName  string     `json:"account_name"`
	TokenType    string     `json:"token_type"`
	IsSystemUser bool       `json:"is_system_user"`
	ExpiresAt    *time.Time `json:"expires_at"`
	IsExpired    bool       `json:"is_expired"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (c *Credential) ToResponse(now time.Time) *CredentialResponse {
	return &CredentialResponse{
		ID:           c.ID,
		AdAccountID:  c.AdAccountID,
		AccountName:  c.AccountName,
		TokenType:    c.TokenType,
		IsSystemUser: c.Kind == TokenKindSystem,
		ExpiresAt:    c.ExpiresAt,
		IsExpired:    c.IsExpired(now),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type SystemUserTokenRequest struct {
	AdAccountID string `json:"ad_account_id"`
	AccessToken string `json:"access_token"`
	AccountName string `json:"account_name"`
}

// OAuthResult é o resultado do fluxo de callback do OAuth
type OAuthResult struct {
	RedirectTo string                `json:"redirect_to"`
	ExpiresAt  time.Time             `json:"expires_at"`
	Accounts   []*CredentialResponse `json:"accounts"`
}
