package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims é o principal autenticado emitido pelo serviço de sessão
type Claims struct {
	UserID    int    `json:"user_id"`
	UserEmail string `json:"user_email,omitempty"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

// OAuthState é o conteúdo assinado do parâmetro state do OAuth
type OAuthState struct {
	UserID     int    `json:"user_id"`
	RedirectTo string `json:"redirect_to"`
	jwt.RegisteredClaims
}
