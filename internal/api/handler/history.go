package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

type dailySnapshot struct {
	ID             int       `json:"id"`
	EmployeeName   string    `json:"employee_name"`
	Date           string    `json:"date"`
	Weekday        string    `json:"weekday"`
	Value          float64   `json:"value"`
	ValueFormatted string    `json:"value_formatted"`
	BatchID        string    `json:"batch_id"`
	CreatedAt      time.Time `json:"created_at"`
}

type sellerEntry struct {
	Seller         string  `json:"seller"`
	Total          float64 `json:"total"`
	TotalFormatted string  `json:"total_formatted"`
}

type resumoEntry struct {
	ID             int           `json:"id"`
	Resumo         string        `json:"resumo"`
	Total          float64       `json:"total"`
	TotalFormatted string        `json:"total_formatted"`
	Breakdown      []sellerEntry `json:"breakdown"`
	CreatedAt      time.Time     `json:"created_at"`
}

func toDailySnapshots(snapshots []*domain.DailySnapshot) []*dailySnapshot {
	entries := make([]*dailySnapshot, 0, len(snapshots))
	for _, snapshot := range snapshots {
		entries = append(entries, &dailySnapshot{
			ID:             snapshot.ID,
			EmployeeName:   snapshot.EmployeeName,
			Date:           snapshot.Date.Format(time.DateOnly),
			Weekday:        snapshot.Weekday.String(),
			Value:          snapshot.Value,
			ValueFormatted: utils.FormatBRL(snapshot.Value),
			BatchID:        snapshot.BatchID,
			CreatedAt:      snapshot.CreatedAt,
		})
	}
	return entries
}

// DailyHistory retorna os snapshots diários arquivados, do mais recente para
// o mais antigo. Aceita filtro opcional por período (?start_date=...&end_date=...).
func DailyHistory(repo repository.DailySnapshotRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startParam := r.URL.Query().Get("start_date")
		endParam := r.URL.Query().Get("end_date")

		snapshots, err := func() (snapshots []*dailySnapshot, err error) {
			if startParam == "" && endParam == "" {
				list, err := repo.ListAll(r.Context())
				return toDailySnapshots(list), err
			}

			startDate, err := utils.ParseDate(startParam)
			if err != nil {
				return nil, err
			}

			endDate, err := utils.ParseDate(endParam)
			if err != nil {
				return nil, err
			}

			list, err := repo.GetByDateRange(r.Context(), *startDate, *endDate)
			return toDailySnapshots(list), err
		}()
		if err != nil {
			logrus.Error("Erro ao buscar histórico diário:", err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Período de consulta inválido", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshots)
	}
}

// ResumoHistory retorna os resumos semanais fechados, do mais recente para o
// mais antigo, com os totais já formatados em moeda.
func ResumoHistory(repo repository.WeeklySummaryRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := repo.List(r.Context())
		if err != nil {
			logrus.Error("Erro ao buscar histórico de resumos:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar histórico de resumos", nil)
			return
		}

		response := make([]resumoEntry, 0, len(summaries))
		for _, summary := range summaries {
			breakdown := make([]sellerEntry, 0, len(summary.Breakdown))
			for _, entry := range summary.Breakdown {
				breakdown = append(breakdown, sellerEntry{
					Seller:         entry.Seller,
					Total:          entry.Total,
					TotalFormatted: utils.FormatBRL(entry.Total),
				})
			}

			response = append(response, resumoEntry{
				ID:             summary.ID,
				Resumo:         summary.WeekLabel,
				Total:          summary.Total,
				TotalFormatted: utils.FormatBRL(summary.Total),
				Breakdown:      breakdown,
				CreatedAt:      summary.CreatedAt,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}
