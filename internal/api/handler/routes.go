package handler

import (
	"net/http"

	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/archiving"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-tracker-api/pkg/middleware"
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

// Ledger retorna as rotas da planilha viva, consumidas pela interface da loja
func Ledger(repo repository.LedgerRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/api/data",
			Method:  http.MethodGet,
			Handler: GetLedger(repo),
		},
		{
			Path:    "/api/data",
			Method:  http.MethodPost,
			Handler: SaveLedger(repo),
		},
	}
}

// Archive retorna as rotas do arquivamento diário e do fechamento semanal
func Archive(cfg *config.Config, service archiving.Archiver) []router.Route {
	return []router.Route{
		{
			Path:    "/api/resumo-archive",
			Method:  http.MethodPost,
			Handler: ResumoArchive(cfg, service),
		},
		{
			Path:    "/api/daily-save",
			Method:  http.MethodPost,
			Handler: DailySave(service),
		},
	}
}

// History retorna as rotas de consulta aos dados arquivados
func History(snapshotRepo repository.DailySnapshotRepository, summaryRepo repository.WeeklySummaryRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/api/daily-history",
			Method:  http.MethodGet,
			Handler: DailyHistory(snapshotRepo),
		},
		{
			Path:    "/api/resumo-history",
			Method:  http.MethodGet,
			Handler: ResumoHistory(summaryRepo),
		},
	}
}

// Resumo retorna a rota do relatório agregado
func Resumo(service aggregating.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/api/resumo",
			Method:  http.MethodGet,
			Handler: GetResumo(service),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
