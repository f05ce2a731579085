package connecting

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/fb-insights-api/infrastructure/repository"
	"github.com/vfg2006/fb-insights-api/internal/config"
	"github.com/vfg2006/fb-insights-api/internal/domain"
	"github.com/vfg2006/fb-insights-api/pkg/apiErrors"
	"golang.org/x/oauth2"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_connector.go -package=mocks

const defaultRedirectPath = "/dashboard"

var adAccountIDPattern = regexp.MustCompile(`^act_\d+$`)

// Connector cuida do ciclo de vida das credenciais do Facebook
type Connector interface {
	AuthorizationURL(userID int, redirectTo string) (string, error)
	CompleteOAuth(ctx context.Context, code, state string) (*domain.OAuthResult, error)
	AddSystemUserToken(ctx context.Context, userID int, req domain.SystemUserTokenRequest) (*domain.CredentialResponse, error)
	ListAccounts(ctx context.Context, userID int) ([]*domain.CredentialResponse, error)
}

type Service struct {
	cfg                  *config.Config
	client               metaclient.Client
	credentialRepository repository.CredentialRepository
	oauth                *oauth2.Config
	now                  func() time.Time
}

func NewService(cfg *config.Config, client metaclient.Client, credentialRepo repository.CredentialRepository) *Service {
	return &Service{
		cfg:                  cfg,
		client:               client,
		credentialRepository: credentialRepo,
		oauth: &oauth2.Config{
			ClientID:     cfg.Meta.AppID,
			ClientSecret: cfg.Meta.AppSecret,
			RedirectURL:  cfg.Meta.RedirectURI,
			Scopes:       cfg.Meta.OAuthScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  fmt.Sprintf("%s/%s/dialog/oauth", strings.TrimSuffix(cfg.Meta.DialogURL, "/"), cfg.Meta.Version),
				TokenURL: cfg.Meta.URL + "/oauth/access_token",
			},
		},
		now: time.Now,
	}
}

// WithClock troca o relógio usado no state e na expiração
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// AuthorizationURL monta a URL do diálogo OAuth com um state assinado que
// identifica o usuário e o caminho de retorno
func (s *Service) AuthorizationURL(userID int, redirectTo string) (string, error) {
	if redirectTo == "" {
		redirectTo = defaultRedirectPath
	}
	if !strings.HasPrefix(redirectTo, "/") || strings.HasPrefix(redirectTo, "//") {
		return "", NewConnectError(ErrInvalidRedirectPath, apiErrors.ErrInvalidRequest, redirectTo)
	}

	now := s.now()
	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &domain.OAuthState{
		UserID:     userID,
		RedirectTo: redirectTo,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Auth.OAuthStateTTL)),
		},
	}).SignedString([]byte(s.cfg.Auth.Secret))
	if err != nil {
		return "", NewConnectError(err, apiErrors.ErrInternalServer, "erro ao assinar state")
	}

	return s.oauth.AuthCodeURL(state), nil
}

// CompleteOAuth troca o código por um token de longa duração e grava uma
// credencial de usuário para cada conta de anúncios retornada
func (s *Service) CompleteOAuth(ctx context.Context, code, state string) (*domain.OAuthResult, error) {
	oauthState, err := s.parseState(state)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(code) == "" {
		return nil, NewConnectError(ErrMissingCode, apiErrors.ErrMissingRequiredData, "")
	}

	logger := logrus.WithField("user_id", oauthState.UserID)

	shortLived, err := s.client.ExchangeCode(ctx, code, s.cfg.Meta.RedirectURI)
	if err != nil {
		logger.WithError(err).Error("oauth: erro ao trocar código por token")
		return nil, metaError(err)
	}

	longLived, err := s.client.ExtendToken(ctx, shortLived.AccessToken)
	if err != nil {
		logger.WithError(err).Error("oauth: erro ao estender token")
		return nil, metaError(err)
	}

	adAccounts, err := s.client.GetAdAccounts(ctx, longLived.AccessToken)
	if err != nil {
		logger.WithError(err).Error("oauth: erro ao listar contas de anúncios")
		return nil, metaError(err)
	}

	if len(adAccounts) == 0 {
		return nil, NewConnectError(ErrNoAdAccounts, apiErrors.ErrAccountNotFound, "")
	}

	expiresAt := longLived.ExpiresAt
	result := &domain.OAuthResult{
		RedirectTo: oauthState.RedirectTo,
		ExpiresAt:  expiresAt,
		Accounts:   make([]*domain.CredentialResponse, 0, len(adAccounts)),
	}

	for _, adAccount := range adAccounts {
		saved, err := s.credentialRepository.SaveOrUpdate(ctx, &domain.Credential{
			UserID:      oauthState.UserID,
			AdAccountID: adAccount.ID,
			AccountName: adAccount.Name,
			AccessToken: longLived.AccessToken,
			TokenType:   domain.DefaultTokenType,
			Kind:        domain.TokenKindUser,
			ExpiresAt:   &expiresAt,
		})
		if err != nil {
			logger.WithField("ad_account_id", adAccount.ID).WithError(err).Error("oauth: erro ao gravar credencial")
			return nil, NewConnectErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, adAccount.ID, err.Error())
		}
		result.Accounts = append(result.Accounts, saved.ToResponse(s.now()))
	}

	logger.Infof("oauth: %d contas de anúncios conectadas", len(result.Accounts))

	return result, nil
}

// AddSystemUserToken grava um token de system user, que não expira
func (s *Service) AddSystemUserToken(ctx context.Context, userID int, req domain.SystemUserTokenRequest) (*domain.CredentialResponse, error) {
	adAccountID := strings.TrimSpace(req.AdAccountID)
	if !adAccountIDPattern.MatchString(adAccountID) {
		return nil, NewConnectErrorWithID(ErrInvalidAdAccountID, apiErrors.ErrInvalidFormat, adAccountID, "")
	}

	token := strings.TrimSpace(req.AccessToken)
	if token == "" {
		return nil, NewConnectErrorWithID(ErrMissingAccessToken, apiErrors.ErrMissingRequiredData, adAccountID, "")
	}

	saved, err := s.credentialRepository.SaveOrUpdate(ctx, &domain.Credential{
		UserID:      userID,
		AdAccountID: adAccountID,
		AccountName: strings.TrimSpace(req.AccountName),
		AccessToken: token,
		TokenType:   domain.DefaultTokenType,
		Kind:        domain.TokenKindSystem,
	})
	if err != nil {
		return nil, NewConnectErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, adAccountID, err.Error())
	}

	return saved.ToResponse(s.now()), nil
}

func (s *Service) ListAccounts(ctx context.Context, userID int) ([]*domain.CredentialResponse, error) {
	credentials, err := s.credentialRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewConnectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	now := s.now()
	accounts := make([]*domain.CredentialResponse, 0, len(credentials))
	for _, credential := range credentials {
		accounts = append(accounts, credential.ToResponse(now))
	}

	return accounts, nil
}

func (s *Service) parseState(state string) (*domain.OAuthState, error) {
	if state == "" {
		return nil, NewConnectError(ErrInvalidState, apiErrors.ErrInvalidOAuthState, "state ausente")
	}

	token, err := jwt.ParseWithClaims(state, &domain.OAuthState{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, NewConnectError(ErrInvalidState, apiErrors.ErrInvalidOAuthState, err.Error())
	}

	oauthState, ok := token.Claims.(*domain.OAuthState)
	if !ok || !token.Valid || oauthState.UserID <= 0 {
		return nil, NewConnectError(ErrInvalidState, apiErrors.ErrInvalidOAuthState, "state sem usuário")
	}

	return oauthState, nil
}

func metaError(err error) error {
	if errors.Is(err, metaclient.ErrAuthentication) {
		return NewConnectError(ErrMetaAuthentication, apiErrors.ErrMetaAuthentication, err.Error())
	}
	return NewConnectError(ErrMetaIntegration, apiErrors.ErrExternalService, err.Error())
}
