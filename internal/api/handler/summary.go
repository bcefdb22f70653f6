package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

type ResumoResponse struct {
	Date                string             `json:"date"`
	Month               string             `json:"month"`
	DayTotal            float64            `json:"day_total"`
	DayTotalFormatted   string             `json:"day_total_formatted"`
	WeekTotal           float64            `json:"week_total"`
	WeekTotalFormatted  string             `json:"week_total_formatted"`
	MonthTotal          float64            `json:"month_total"`
	MonthTotalFormatted string             `json:"month_total_formatted"`
	WeekdayTotal        map[string]float64 `json:"weekday_total"`
	WeekBuckets         []float64          `json:"week_buckets"`
}

// GetResumo retorna o relatório agregado da tela de resumo: totais do dia, da
// semana e do mês correntes, o histórico por dia útil e os baldes semanais.
func GetResumo(service aggregating.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.BuildResumoReport(r.Context(), time.Now())
		if err != nil {
			logrus.Error("Erro ao montar o relatório de resumo:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar o relatório de resumo", nil)
			return
		}

		weekdayTotal := make(map[string]float64, len(report.WeekdayTotal))
		for day, total := range report.WeekdayTotal {
			weekdayTotal[day.String()] = total
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(ResumoResponse{
			Date:                report.Date.Format(time.DateOnly),
			Month:               report.Month,
			DayTotal:            report.DayTotal,
			DayTotalFormatted:   utils.FormatBRL(report.DayTotal),
			WeekTotal:           report.WeekTotal,
			WeekTotalFormatted:  utils.FormatBRL(report.WeekTotal),
			MonthTotal:          report.MonthTotal,
			MonthTotalFormatted: utils.FormatBRL(report.MonthTotal),
			WeekdayTotal:        weekdayTotal,
			WeekBuckets:         report.WeekBuckets,
		})
		if err != nil {
			logrus.Error("Erro ao enviar resposta do resumo:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}
