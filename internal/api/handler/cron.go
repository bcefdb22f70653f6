package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/internal/scheduler"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeDaily  = "daily"
	CronJobTypeWeekly = "weekly"
	CronJobTypeAll    = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	DailySnapshotService *scheduler.DailySnapshotService
	WeeklyResetService   *scheduler.WeeklyResetService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeDaily:
			if services.DailySnapshotService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço do resumo diário não disponível", nil)
				return
			}
			services.DailySnapshotService.TriggerManualSync()

		case CronJobTypeWeekly:
			if services.WeeklyResetService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço do fechamento semanal não disponível", nil)
				return
			}
			services.WeeklyResetService.TriggerManualSync()

		case CronJobTypeAll:
			if services.DailySnapshotService != nil {
				services.DailySnapshotService.TriggerManualSync()
			}
			if services.WeeklyResetService != nil {
				services.WeeklyResetService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: daily, weekly, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"daily":  services.DailySnapshotService.GetStatus(),
			"weekly": services.WeeklyResetService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
