package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/archiving"
)

// stubArchiver registra as chamadas recebidas pelos agendadores.
type stubArchiver struct {
	mu             sync.Mutex
	dailyCalls     int
	closeWeekCalls int
	dailyResult    *archiving.DailySnapshotResult
	dailyErr       error
	closeErr       error
}

func (s *stubArchiver) RunDailySnapshot(ctx context.Context, now time.Time) (*archiving.DailySnapshotResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dailyCalls++

	if s.dailyErr != nil {
		return nil, s.dailyErr
	}
	if s.dailyResult != nil {
		return s.dailyResult, nil
	}
	return &archiving.DailySnapshotResult{Status: archiving.DailyStatusOK, Date: now}, nil
}

func (s *stubArchiver) CloseWeek(ctx context.Context, now time.Time, trigger archiving.Trigger) (*domain.WeeklySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeWeekCalls++

	if s.closeErr != nil {
		return nil, s.closeErr
	}
	return &domain.WeeklySummary{WeekLabel: "2025-09-08 a 2025-09-12", Total: 100}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		DailySnapshotJob: config.DailySnapshotJob{
			CronSchedule: "20 18 * * *",
			Enabled:      true,
		},
		WeeklyResetJob: config.WeeklyResetJob{
			CronSchedule: "1 0 * * 1",
			Enabled:      true,
		},
	}
}

func TestDailySnapshotService_StartIsIdempotent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	service := NewDailySnapshotService(&stubArchiver{}, testConfig(), time.UTC)

	assert.NoError(t, service.Start(ctx))
	assert.NoError(t, service.Start(ctx))

	status := service.GetStatus()
	assert.Equal(t, true, status["started"])
}

func TestDailySnapshotService_DisabledDoesNotStart(t *testing.T) {
	cfg := testConfig()
	cfg.DailySnapshotJob.Enabled = false

	service := NewDailySnapshotService(&stubArchiver{}, cfg, time.UTC)

	assert.NoError(t, service.Start(context.Background()))

	status := service.GetStatus()
	assert.Equal(t, false, status["started"])
	assert.Equal(t, false, status["enabled"])
}

func TestDailySnapshotService_RunOnce(t *testing.T) {
	tests := []struct {
		name           string
		archiver       *stubArchiver
		wantErr        bool
		expectedStatus string
	}{
		{
			name:           "Execução com sucesso",
			archiver:       &stubArchiver{},
			expectedStatus: "ok",
		},
		{
			name: "Fim de semana registra o status sem erro",
			archiver: &stubArchiver{
				dailyResult: &archiving.DailySnapshotResult{Status: archiving.DailyStatusWeekend},
			},
			expectedStatus: "weekend",
		},
		{
			name:           "Erro do arquivador é propagado",
			archiver:       &stubArchiver{dailyErr: errors.New("banco fora do ar")},
			wantErr:        true,
			expectedStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewDailySnapshotService(tt.archiver, testConfig(), time.UTC)

			err := service.RunOnce(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, 1, tt.archiver.dailyCalls)
			assert.Equal(t, tt.expectedStatus, service.GetStatus()["last_run_status"])
		})
	}
}

func TestWeeklyResetService_StartIsIdempotent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	service := NewWeeklyResetService(&stubArchiver{}, testConfig(), time.UTC)

	assert.NoError(t, service.Start(ctx))
	assert.NoError(t, service.Start(ctx))

	status := service.GetStatus()
	assert.Equal(t, true, status["started"])
}

func TestWeeklyResetService_RunOnce(t *testing.T) {
	archiver := &stubArchiver{}
	service := NewWeeklyResetService(archiver, testConfig(), time.UTC)

	assert.NoError(t, service.RunOnce(context.Background()))
	assert.Equal(t, 1, archiver.closeWeekCalls)
	assert.Equal(t, "ok", service.GetStatus()["last_run_status"])
}

func TestWeeklyResetService_RunOnceError(t *testing.T) {
	archiver := &stubArchiver{closeErr: errors.New("disco cheio")}
	service := NewWeeklyResetService(archiver, testConfig(), time.UTC)

	assert.Error(t, service.RunOnce(context.Background()))
	assert.Equal(t, "error", service.GetStatus()["last_run_status"])
}
