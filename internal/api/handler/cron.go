package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fb-insights-api/pkg/apiErrors"
)

// Tipos de cron job aceitos em /v1/cron/:type
const (
	CronJobTypeMetaInsights = "meta-insights"
	CronJobTypeAll          = "all"
)

// CronJob é implementado pelos agendadores em internal/scheduler
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os agendadores que podem ser disparados manualmente
type CronJobServices struct {
	MetaInsightSyncService CronJob
}

func (s CronJobServices) byType(cronType string) map[string]CronJob {
	all := map[string]CronJob{}
	if s.MetaInsightSyncService != nil {
		all[CronJobTypeMetaInsights] = s.MetaInsightSyncService
	}

	if cronType == CronJobTypeAll {
		return all
	}
	if job, ok := all[cronType]; ok {
		return map[string]CronJob{cronType: job}
	}
	return nil
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		logrus.WithField("type", cronType).Info("cron: execução manual solicitada")

		jobs := services.byType(cronType)
		if len(jobs) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: meta-insights, all", nil)
			return
		}

		started := map[string]bool{}
		for name, job := range jobs {
			started[name] = job.TriggerManualSync()
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
			"started": started,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		jobs := services.byType(cronType)
		if len(jobs) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: meta-insights, all", nil)
			return
		}

		status := map[string]any{}
		for name, job := range jobs {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
