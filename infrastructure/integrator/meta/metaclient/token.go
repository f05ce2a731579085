package metaclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta/domain"
)

// DefaultTokenLifetime é usado quando a API não informa expires_in
const DefaultTokenLifetime = 60 * 24 * time.Hour

// LongLivedToken tem ExpiresAt calculado localmente como now + lifetime
type LongLivedToken struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// ExchangeCode troca o código de autorização por um token de curta duração
func (c *MetaClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*metadomain.TokenResponse, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: código de autorização vazio", ErrAuthentication)
	}

	params := url.Values{}
	params.Set("client_id", c.appID)
	params.Set("client_secret", c.appSecret)
	params.Set("redirect_uri", redirectURI)
	params.Set("code", code)

	body, err := c.get(ctx, "/oauth/access_token", params)
	if err != nil {
		return nil, asAuthFailure(err)
	}

	tokenResp, err := decodeToken(body)
	if err != nil {
		return nil, err
	}

	logrus.Info("meta: código de autorização trocado por token de curta duração")
	return tokenResp, nil
}

// ExtendToken troca um token de curta duração por um de longa duração
func (c *MetaClient) ExtendToken(ctx context.Context, shortLivedToken string) (*LongLivedToken, error) {
	if shortLivedToken == "" {
		return nil, fmt.Errorf("%w: token de acesso não pode ser vazio", ErrAuthentication)
	}

	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", c.appID)
	params.Set("client_secret", c.appSecret)
	params.Set("fb_exchange_token", shortLivedToken)

	body, err := c.get(ctx, "/oauth/access_token", params)
	if err != nil {
		return nil, asAuthFailure(err)
	}

	tokenResp, err := decodeToken(body)
	if err != nil {
		return nil, err
	}

	lifetime := c.defaultTokenLifetime
	if tokenResp.ExpiresIn != nil && *tokenResp.ExpiresIn > 0 {
		lifetime = time.Duration(*tokenResp.ExpiresIn) * time.Second
	}

	logrus.Infof("Token de longa duração obtido com sucesso. Expira em %s.", FormatDuration(int64(lifetime.Seconds())))

	return &LongLivedToken{
		AccessToken: tokenResp.AccessToken,
		TokenType:   tokenResp.TokenType,
		ExpiresAt:   c.now().Add(lifetime),
	}, nil
}

func decodeToken(body []byte) (*metadomain.TokenResponse, error) {
	var tokenResp metadomain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta de token: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("%w: token retornado pela API é vazio", ErrAuthentication)
	}

	return &tokenResp, nil
}

// asAuthFailure marca rejeições 4xx do endpoint de token como erro de autenticação
func asAuthFailure(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && !apiErr.Retryable() && !apiErr.IsAuthError() {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	return err
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	if days > 0 {
		return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%d horas e %d minutos", hours, minutes)
	}
	return fmt.Sprintf("%d minutos", minutes)
}
