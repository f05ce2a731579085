package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/fb-insights-api/internal/domain"
	"github.com/vfg2006/fb-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/fb-insights-api/pkg/apiErrors"
	"github.com/vfg2006/fb-insights-api/pkg/log"
	"github.com/vfg2006/fb-insights-api/pkg/utils"
)

// FetchInsights busca no Meta e grava os snapshots do período
func FetchInsights(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		adAccountID := httprouter.ParamsFromContext(r.Context()).ByName("ad_account_id")
		query := r.URL.Query()

		req := domain.FetchInsightsRequest{
			AdAccountID: adAccountID,
			Since:       query.Get("since"),
			Until:       query.Get("until"),
			Level:       query.Get("level"),
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"ad_account_id": adAccountID,
			"level":         req.Level,
			"since":         req.Since,
			"until":         req.Until,
		}).Info("insights: iniciando busca no Meta")

		result, err := service.FetchAndStoreInsights(r.Context(), claims.UserID, req)
		if err != nil {
			handleInsightError(w, r, err, result)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

// QueryInsights lista os snapshots gravados, do mais recente para o mais antigo
func QueryInsights(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		adAccountID := httprouter.ParamsFromContext(r.Context()).ByName("ad_account_id")
		query := r.URL.Query()

		filters := domain.InsightFilters{}

		if raw := query.Get("level"); raw != "" {
			level, err := domain.ParseLevel(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidLevel, err.Error(), nil)
				return
			}
			filters.Level = &level
		}

		for param, target := range map[string]**time.Time{"since": &filters.DateFrom, "until": &filters.DateTo} {
			raw := query.Get(param)
			if raw == "" {
				continue
			}
			date, err := utils.ParseDateOnly(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", map[string]string{param: raw})
				return
			}
			*target = &date
		}

		page, err := intParam(query.Get("page"), 1, 1, 0)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "page deve ser um inteiro maior ou igual a 1", nil)
			return
		}

		limit, err := intParam(query.Get("limit"), domain.DefaultPageLimit, 1, domain.MaxPageLimit)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "limit deve ser um inteiro entre 1 e 1000", nil)
			return
		}

		result, err := service.QueryStoredInsights(r.Context(), claims.UserID, adAccountID, domain.StoredInsightsQuery{
			Filters: filters,
			Page:    page,
			Limit:   limit,
		})
		if err != nil {
			handleInsightError(w, r, err, nil)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

// GetInsightsSummary agrega os últimos days dias de snapshots gravados
func GetInsightsSummary(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		adAccountID := httprouter.ParamsFromContext(r.Context()).ByName("ad_account_id")
		query := r.URL.Query()

		days, err := intParam(query.Get("days"), insighting.DefaultSummaryDays, 1, insighting.MaxSummaryDays)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "days deve ser um inteiro entre 1 e 365", nil)
			return
		}

		level := domain.LevelCampaign
		if raw := query.Get("level"); raw != "" {
			level, err = domain.ParseLevel(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidLevel, err.Error(), nil)
				return
			}
		}

		summary, err := service.GetMetricsSummary(r.Context(), claims.UserID, adAccountID, days, level)
		if err != nil {
			handleInsightError(w, r, err, nil)
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	}
}

// intParam aplica o valor padrão quando vazio; hi 0 significa sem limite
func intParam(raw string, def, lo, hi int) (int, error) {
	if raw == "" {
		return def, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value < lo || (hi > 0 && value > hi) {
		return 0, errors.Errorf("valor fora do intervalo: %d", value)
	}
	return value, nil
}

// handleInsightError traduz o erro do caso de uso; contagens parciais de uma
// execução interrompida vão em details.result
func handleInsightError(w http.ResponseWriter, r *http.Request, err error, result *domain.FetchInsightsResult) {
	logger := log.ForContext(r.Context())

	var insightErr *insighting.InsightError
	if !errors.As(err, &insightErr) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.WithError(err).Warn("insights: requisição cancelada")
			apiErrors.WriteError(w, apiErrors.ErrCommunication, "Requisição cancelada", resultDetails(result))
			return
		}

		logger.WithError(err).Error("insights: erro inesperado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar insights", resultDetails(result))
		return
	}

	details := resultDetails(result)
	if insightErr.AdAccountID != "" {
		details["ad_account_id"] = insightErr.AdAccountID
	}

	var providerErr *metaclient.APIError
	if errors.As(err, &providerErr) {
		details["provider_status"] = providerErr.StatusCode
		details["provider_body"] = providerErr.Body
	}

	if apiErrors.StatusFor(insightErr.Code) >= http.StatusInternalServerError {
		logger.WithError(err).Error("insights: falha ao processar requisição")
	} else {
		logger.WithError(err).Warn("insights: requisição rejeitada")
	}

	apiErrors.WriteError(w, insightErr.Code, insightErr.Error(), details)
}

func resultDetails(result *domain.FetchInsightsResult) map[string]any {
	details := map[string]any{}
	if result != nil {
		details["result"] = result
	}
	return details
}
