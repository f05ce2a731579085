package handler

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fb-insights-api/internal/api/handler/router"
	"github.com/vfg2006/fb-insights-api/internal/domain"
	"github.com/vfg2006/fb-insights-api/pkg/middleware"
)

const testUserID = 42

// serve passa a requisição pelo roteador real para que os parâmetros de rota
// sejam resolvidos; claims nil simula requisição sem principal
func serve(t *testing.T, routes []router.Route, method, target string, body io.Reader, claims *domain.Claims) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	}

	rec := httptest.NewRecorder()
	router.New(router.WithRoutes(routes...)).ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func user() *domain.Claims {
	return &domain.Claims{UserID: testUserID}
}
