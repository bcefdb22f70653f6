package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/archiving"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

const secretKeyHeader = "X-SECRET-KEY"

type ResumoArchiveResponse struct {
	Status string `json:"status"`
	Resumo string `json:"resumo"`
	Total  string `json:"total"`
}

type DailySaveResponse struct {
	Status string `json:"status"`
	Date   string `json:"date,omitempty"`
	Day    string `json:"day,omitempty"`
	Total  string `json:"total,omitempty"`
}

// ResumoArchive fecha a semana manualmente: consolida o resumo semanal e zera
// a planilha. Protegido pelo segredo compartilhado no header X-SECRET-KEY.
func ResumoArchive(cfg *config.Config, service archiving.Archiver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ResumoArchive")

		secret := r.Header.Get(secretKeyHeader)
		if cfg.Archive.SecretKey == "" ||
			subtle.ConstantTimeCompare([]byte(secret), []byte(cfg.Archive.SecretKey)) != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidSecret, "Chave secreta inválida", nil)
			return
		}

		summary, err := service.CloseWeek(r.Context(), time.Now(), archiving.TriggerManual)
		if err != nil {
			handleArchiveError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ResumoArchiveResponse{
			Status: "success",
			Resumo: summary.WeekLabel,
			Total:  utils.FormatBRL(summary.Total),
		})
	}
}

// DailySave grava o snapshot diário da planilha. Nos fins de semana a
// operação é um no-op e a resposta indica apenas o status.
func DailySave(service archiving.Archiver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DailySave")

		result, err := service.RunDailySnapshot(r.Context(), time.Now())
		if err != nil {
			handleArchiveError(w, err)
			return
		}

		response := DailySaveResponse{Status: string(result.Status)}
		if result.Status != archiving.DailyStatusWeekend {
			response.Date = result.Date.Format(time.DateOnly)
			response.Day = result.Weekday.String()
			response.Total = utils.FormatBRL(result.Total)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// handleArchiveError traduz erros do arquivamento para respostas da API
func handleArchiveError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, repository.ErrStoreUnavailable),
		errors.Is(err, archiving.ErrLedgerUnavailable):
		apiErrors.WriteError(w, apiErrors.ErrStoreUnavailable, "Armazenamento indisponível", nil)

	case errors.Is(err, archiving.ErrArchivalFailed):
		apiErrors.WriteError(w, apiErrors.ErrArchivalFailed, "Arquivamento revertido", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no arquivamento", nil)
	}
}
