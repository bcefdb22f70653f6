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

type WeeklyResetConfig struct {
	CronSchedule string
	Enabled      bool
}

// WeeklyResetService fecha a semana no primeiro dia útil: consolida o resumo
// semanal e zera a planilha, via arquivador.
type WeeklyResetService struct {
	scheduler          *gocron.Scheduler
	archiver           archiving.Archiver
	config             WeeklyResetConfig
	location           *time.Location
	started            bool
	startMutex         sync.Mutex
	syncRunning        bool
	syncMutex          sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastRunStatus      string
}

func NewWeeklyResetService(
	archiver archiving.Archiver,
	cfg *config.Config,
	location *time.Location,
) *WeeklyResetService {
	jobConfig := WeeklyResetConfig{
		CronSchedule: cfg.WeeklyResetJob.CronSchedule, // Default: segunda às 00h01
		Enabled:      cfg.WeeklyResetJob.Enabled,
	}

	scheduler := gocron.NewScheduler(location)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": jobConfig.CronSchedule,
		"timezone":      location.String(),
	}).Info("Configuração do agendador do fechamento semanal carregada")

	return &WeeklyResetService{
		scheduler: scheduler,
		archiver:  archiver,
		config:    jobConfig,
		location:  location,
	}
}

// Start registra e inicia o job. Chamadas repetidas são no-op.
func (s *WeeklyResetService) Start(ctx context.Context) error {
	s.startMutex.Lock()
	defer s.startMutex.Unlock()

	if s.started {
		logrus.Info("Agendador do fechamento semanal já iniciado, ignorando")
		return nil
	}

	if !s.config.Enabled {
		logrus.Info("Cron do fechamento semanal desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron do fechamento semanal")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunOnce(ctx); err != nil {
			logrus.WithError(err).Error("Erro no fechamento semanal agendado")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar fechamento semanal: %w", err)
	}

	s.scheduler.StartAsync()
	s.started = true

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do fechamento semanal")
		s.scheduler.Stop()
	}()

	return nil
}

// RunOnce fecha a semana imediatamente. Um fechamento que falha deixa o
// estado intacto e espera o próximo disparo agendado.
func (s *WeeklyResetService) RunOnce(ctx context.Context) error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Fechamento semanal já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastRunStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastRunCompletedAt = time.Now()
	}()

	summary, err := s.archiver.CloseWeek(ctx, time.Now().In(s.location), archiving.TriggerScheduled)
	if err != nil {
		s.lastRunStatus = "error"
		return err
	}

	s.lastRunStatus = "ok"

	logrus.WithFields(logrus.Fields{
		"resumo": summary.WeekLabel,
		"total":  utils.FormatBRL(summary.Total),
	}).Info("Fechamento semanal concluído")

	return nil
}

// TriggerManualSync inicia manualmente um fechamento semanal
func (s *WeeklyResetService) TriggerManualSync() {
	logrus.Info("Iniciando fechamento semanal manual")
	go func() {
		if err := s.RunOnce(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro no fechamento semanal manual")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *WeeklyResetService) GetStatus() map[string]any {
	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron":                  s.config.CronSchedule,
		"started":               s.started,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_run_status":       s.lastRunStatus,
	}
}
