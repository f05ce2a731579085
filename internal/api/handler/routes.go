package handler

import (
	"net/http"

	"github.com/vfg2006/fb-insights-api/internal/api/handler/router"
	"github.com/vfg2006/fb-insights-api/internal/usecases/connecting"
	"github.com/vfg2006/fb-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/fb-insights-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Facebook(service connecting.Connector, frontendURL string) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/facebook/oauth/login",
			Method:  http.MethodGet,
			Handler: OAuthLogin(service),
		},
		{
			Path:    "/v1/facebook/oauth/callback",
			Method:  http.MethodGet,
			Handler: OAuthCallback(service, frontendURL),
		},
		{
			Path:    "/v1/facebook/system-user/token",
			Method:  http.MethodPost,
			Handler: AddSystemUserToken(service),
		},
		{
			Path:    "/v1/facebook/accounts",
			Method:  http.MethodGet,
			Handler: ListAccounts(service),
		},
	}
}

func Insights(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/facebook/accounts/:ad_account_id/insights/fetch",
			Method:  http.MethodPost,
			Handler: FetchInsights(service),
		},
		{
			Path:    "/v1/facebook/accounts/:ad_account_id/insights",
			Method:  http.MethodGet,
			Handler: QueryInsights(service),
		},
		{
			Path:    "/v1/facebook/accounts/:ad_account_id/insights/summary",
			Method:  http.MethodGet,
			Handler: GetInsightsSummary(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/:type/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
