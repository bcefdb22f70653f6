package handler

import (
	"net/http"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
)

type LedgerResponse struct {
	Employees []string      `json:"employees"`
	Data      domain.Ledger `json:"data"`
}

// GetLedger retorna a planilha viva completa: todos os vendedores com seus
// valores por dia útil.
func GetLedger(repo repository.LedgerRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ledger, err := repo.Load(r.Context())
		if err != nil {
			logrus.Error("Erro ao carregar a planilha:", err)
			apiErrors.WriteError(w, apiErrors.ErrStoreUnavailable, "Erro ao carregar a planilha", nil)
			return
		}

		employees := make([]string, 0, len(ledger))
		for name := range ledger {
			employees = append(employees, name)
		}
		sort.Strings(employees)

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(LedgerResponse{
			Employees: employees,
			Data:      ledger,
		})
		if err != nil {
			logrus.Error("Erro ao enviar resposta da planilha:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// SaveLedger persiste a planilha enviada pelo cliente, vendedor a vendedor.
// Valores de dias não informados são gravados como zero.
func SaveLedger(repo repository.LedgerRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SaveLedger")

		var ledger domain.Ledger
		if err := json.NewDecoder(r.Body).Decode(&ledger); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if len(ledger) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhum vendedor informado", nil)
			return
		}

		if err := repo.SaveAll(r.Context(), ledger); err != nil {
			logrus.Error("Erro ao salvar a planilha:", err)
			apiErrors.WriteError(w, apiErrors.ErrStoreUnavailable, "Erro ao salvar a planilha", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "success",
		})
	}
}
