package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fb-insights-api/internal/config"
	"github.com/vfg2006/fb-insights-api/internal/domain"
	"github.com/vfg2006/fb-insights-api/pkg/apiErrors"
)

const testSecret = "segredo-de-teste"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims *domain.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestService_ValidateToken(t *testing.T) {
	service := NewService(&config.Config{Auth: config.Auth{Secret: testSecret}})
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name         string
		token        func(t *testing.T) string
		expectedCode string
		userID       int
	}{
		{
			name: "token válido com prefixo Bearer",
			token: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), &domain.Claims{
					UserID: 7, IsAdmin: true, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future},
				})
			},
			userID: 7,
		},
		{
			name: "token expirado",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), &domain.Claims{
					UserID: 7, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: past},
				})
			},
			expectedCode: apiErrors.ErrExpiredToken,
		},
		{
			name: "assinatura com outro segredo",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte("outro"), &domain.Claims{UserID: 7})
			},
			expectedCode: apiErrors.ErrInvalidToken,
		},
		{
			name: "token sem usuário",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), &domain.Claims{})
			},
			expectedCode: apiErrors.ErrInvalidToken,
		},
		{
			name:         "token vazio",
			token:        func(*testing.T) string { return "" },
			expectedCode: apiErrors.ErrInvalidToken,
		},
		{
			name:         "token malformado",
			token:        func(*testing.T) string { return "abc.def" },
			expectedCode: apiErrors.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token(t))

			if tt.expectedCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.userID, claims.UserID)
				assert.True(t, claims.IsAdmin)
				return
			}

			assert.Nil(t, claims)
			assert.True(t, IsAuthorizationError(err))

			var authErr *AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.expectedCode, authErr.Code)
		})
	}
}
