package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-tracker-api/infrastructure/migration"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/api"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/scheduler"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/archiving"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/authenticating"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if err := migration.Run(pgConn.DB); err != nil {
		logrus.WithError(err).Fatal("Erro ao executar as migrações do banco")
	}

	// Todo cálculo de calendário usa o fuso comercial, não o do servidor.
	location, err := time.LoadLocation(cfg.Archive.Timezone)
	if err != nil {
		logrus.WithError(err).Fatalf("Fuso horário comercial inválido: %s", cfg.Archive.Timezone)
	}

	ledgerRepo := repository.NewLedgerRepository(pgConn)
	snapshotRepo := repository.NewDailySnapshotRepository(pgConn)
	summaryRepo := repository.NewWeeklySummaryRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	archiveService := archiving.NewService(pgConn, ledgerRepo, snapshotRepo, summaryRepo, location)
	reportService := aggregating.NewReportService(snapshotRepo, location)

	// Agendadores: snapshot diário às 18h20 e fechamento semanal na segunda
	// às 00h01, ambos no fuso comercial.
	dailySnapshotService := scheduler.NewDailySnapshotService(archiveService, cfg, location)
	weeklyResetService := scheduler.NewWeeklyResetService(archiveService, cfg, location)

	if err := dailySnapshotService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do resumo diário")
	} else {
		logrus.Info("Agendador do resumo diário iniciado com sucesso")
	}

	if err := weeklyResetService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do fechamento semanal")
	} else {
		logrus.Info("Agendador do fechamento semanal iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		archiveService,
		reportService,
		authenticator,
		ledgerRepo,
		snapshotRepo,
		summaryRepo,
		dailySnapshotService,
		weeklyResetService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados, aguardando o banco subir
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnectionWithRetry(ctx, dbConfig, 10, 3*time.Second)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
