// Package scheduler contém os serviços de agendamento do arquivamento
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/archiving"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

type DailySnapshotConfig struct {
	CronSchedule string
	Enabled      bool
}

// DailySnapshotService dispara o snapshot diário no horário fixo do fuso
// comercial. A política de fim de semana mora no arquivador, não aqui: o
// gatilho dispara todo dia.
type DailySnapshotService struct {
	scheduler          *gocron.Scheduler
	archiver           archiving.Archiver
	config             DailySnapshotConfig
	location           *time.Location
	started            bool
	startMutex         sync.Mutex
	syncRunning        bool
	syncMutex          sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastRunStatus      string
}

func NewDailySnapshotService(
	archiver archiving.Archiver,
	cfg *config.Config,
	location *time.Location,
) *DailySnapshotService {
	jobConfig := DailySnapshotConfig{
		CronSchedule: cfg.DailySnapshotJob.CronSchedule, // Default: 18h20 todos os dias
		Enabled:      cfg.DailySnapshotJob.Enabled,
	}

	scheduler := gocron.NewScheduler(location)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": jobConfig.CronSchedule,
		"timezone":      location.String(),
	}).Info("Configuração do agendador do resumo diário carregada")

	return &DailySnapshotService{
		scheduler: scheduler,
		archiver:  archiver,
		config:    jobConfig,
		location:  location,
	}
}

// Start registra e inicia o job. Chamadas repetidas são no-op: o flag de
// estado impede disparos duplicados por reinicialização.
func (s *DailySnapshotService) Start(ctx context.Context) error {
	s.startMutex.Lock()
	defer s.startMutex.Unlock()

	if s.started {
		logrus.Info("Agendador do resumo diário já iniciado, ignorando")
		return nil
	}

	if !s.config.Enabled {
		logrus.Info("Cron do resumo diário desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron do resumo diário")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunOnce(ctx); err != nil {
			logrus.WithError(err).Error("Erro na execução do resumo diário")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar resumo diário: %w", err)
	}

	s.scheduler.StartAsync()
	s.started = true

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do resumo diário")
		s.scheduler.Stop()
	}()

	return nil
}

// RunOnce executa o snapshot diário imediatamente. Uma execução por vez; um
// job que falha não é repetido dentro da mesma janela.
func (s *DailySnapshotService) RunOnce(ctx context.Context) error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Resumo diário já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastRunStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastRunCompletedAt = time.Now()
	}()

	result, err := s.archiver.RunDailySnapshot(ctx, time.Now().In(s.location))
	if err != nil {
		s.lastRunStatus = "error"
		return err
	}

	s.lastRunStatus = string(result.Status)

	if result.Status == archiving.DailyStatusWeekend {
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"date":   result.Date.Format(time.DateOnly),
		"status": string(result.Status),
		"total":  utils.FormatBRL(result.Total),
	}).Info("Execução do resumo diário concluída")

	return nil
}

// TriggerManualSync inicia manualmente uma execução do resumo diário
func (s *DailySnapshotService) TriggerManualSync() {
	logrus.Info("Iniciando execução manual do resumo diário")
	go func() {
		if err := s.RunOnce(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na execução manual do resumo diário")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *DailySnapshotService) GetStatus() map[string]any {
	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron":                  s.config.CronSchedule,
		"started":               s.started,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_run_status":       s.lastRunStatus,
	}
}
