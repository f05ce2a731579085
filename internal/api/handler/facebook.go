package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/fb-insights-api/internal/domain"
	"github.com/vfg2006/fb-insights-api/internal/usecases/connecting"
	"github.com/vfg2006/fb-insights-api/pkg/apiErrors"
	"github.com/vfg2006/fb-insights-api/pkg/log"
)

// OAuthLogin devolve a URL do diálogo do Facebook para o usuário autenticado
func OAuthLogin(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		authURL, err := service.AuthorizationURL(claims.UserID, r.URL.Query().Get("redirect_to"))
		if err != nil {
			handleConnectError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]string{
			"authorization_url": authURL,
			"message":           "Acesse esta URL para autorizar o acesso às contas de anúncios",
		})
	}
}

// OAuthCallback recebe o retorno do Facebook. Com frontendURL configurada o
// navegador volta para o redirect_to do state; caso contrário responde JSON.
func OAuthCallback(service connecting.Connector, frontendURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		if providerErr := query.Get("error"); providerErr != "" {
			logger.WithFields(log.Fields{
				"error":        providerErr,
				"error_reason": query.Get("error_reason"),
			}).Warn("oauth: autorização negada no Facebook")

			apiErrors.WriteError(w, apiErrors.ErrMetaAuthentication, "Autorização negada no Facebook", map[string]string{
				"error":             providerErr,
				"error_reason":      query.Get("error_reason"),
				"error_description": query.Get("error_description"),
			})
			return
		}

		result, err := service.CompleteOAuth(r.Context(), query.Get("code"), query.Get("state"))
		if err != nil {
			handleConnectError(w, r, err)
			return
		}

		logger.WithField("accounts", len(result.Accounts)).Info("oauth: contas de anúncios conectadas")

		if frontendURL != "" {
			target := strings.TrimSuffix(frontendURL, "/") + result.RedirectTo
			target += "?" + url.Values{"facebook": {"connected"}}.Encode()
			http.Redirect(w, r, target, http.StatusFound)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

// AddSystemUserToken grava um token de system user, sem expiração
func AddSystemUserToken(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req domain.SystemUserTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		account, err := service.AddSystemUserToken(r.Context(), claims.UserID, req)
		if err != nil {
			handleConnectError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, account)
	}
}

func ListAccounts(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		accounts, err := service.ListAccounts(r.Context(), claims.UserID)
		if err != nil {
			handleConnectError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, accounts)
	}
}

func handleConnectError(w http.ResponseWriter, r *http.Request, err error) {
	var connectErr *connecting.ConnectError
	if errors.As(err, &connectErr) {
		var details map[string]string
		if connectErr.AdAccountID != "" {
			details = map[string]string{"ad_account_id": connectErr.AdAccountID}
		}
		apiErrors.WriteError(w, connectErr.Code, connectErr.Error(), details)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("facebook: erro inesperado")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar a conexão com o Facebook", nil)
}
