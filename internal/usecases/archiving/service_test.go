package archiving

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// fakeTxRunner executa fn diretamente, sem banco: os repositórios mockados
// nunca tocam na *sql.Tx.
type fakeTxRunner struct{}

func (f *fakeTxRunner) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	return fn(nil)
}

func newTestService(t *testing.T) (*Service, *mocks.MockLedgerRepository, *mocks.MockDailySnapshotRepository, *mocks.MockWeeklySummaryRepository) {
	ctrl := gomock.NewController(t)

	ledgerRepo := mocks.NewMockLedgerRepository(ctrl)
	snapshotRepo := mocks.NewMockDailySnapshotRepository(ctrl)
	summaryRepo := mocks.NewMockWeeklySummaryRepository(ctrl)

	service := NewService(&fakeTxRunner{}, ledgerRepo, snapshotRepo, summaryRepo, time.UTC)

	return service, ledgerRepo, snapshotRepo, summaryRepo
}

func TestRunDailySnapshot(t *testing.T) {
	// Terça-feira, 9 de setembro de 2025
	tuesday := time.Date(2025, 9, 9, 18, 20, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		setup    func(*mocks.MockLedgerRepository, *mocks.MockDailySnapshotRepository, *mocks.MockWeeklySummaryRepository)
		validate func(t *testing.T, result *DailySnapshotResult, err error)
	}{
		{
			name:  "Fim de semana é no-op",
			now:   time.Date(2025, 9, 13, 18, 20, 0, 0, time.UTC), // sábado
			setup: func(*mocks.MockLedgerRepository, *mocks.MockDailySnapshotRepository, *mocks.MockWeeklySummaryRepository) {},
			validate: func(t *testing.T, result *DailySnapshotResult, err error) {
				assert.NoError(t, err)
				assert.Equal(t, DailyStatusWeekend, result.Status)
			},
		},
		{
			name: "Grava apenas a coluna do dia corrente",
			now:  tuesday,
			setup: func(ledgerRepo *mocks.MockLedgerRepository, snapshotRepo *mocks.MockDailySnapshotRepository, _ *mocks.MockWeeklySummaryRepository) {
				ledgerRepo.EXPECT().Load(gomock.Any()).Return(domain.Ledger{
					"Alice": {Monday: 100, Tuesday: 200},
					"Bob":   {Tuesday: 30, Friday: 999},
				}, nil)

				snapshotRepo.EXPECT().
					InsertBatch(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sql.Tx, snapshots []*domain.DailySnapshot) error {
						assert.Len(t, snapshots, 2)
						assert.Equal(t, "Alice", snapshots[0].EmployeeName)
						assert.Equal(t, 200.0, snapshots[0].Value)
						assert.Equal(t, "Bob", snapshots[1].EmployeeName)
						assert.Equal(t, 30.0, snapshots[1].Value)
						for _, snapshot := range snapshots {
							assert.Equal(t, domain.Tuesday, snapshot.Weekday)
							assert.Equal(t, snapshots[0].BatchID, snapshot.BatchID)
							assert.NotEmpty(t, snapshot.BatchID)
						}
						return nil
					})
			},
			validate: func(t *testing.T, result *DailySnapshotResult, err error) {
				assert.NoError(t, err)
				assert.Equal(t, DailyStatusOK, result.Status)
				assert.Equal(t, domain.Tuesday, result.Weekday)
				assert.Equal(t, 230.0, result.Total)
				assert.Equal(t, 2, result.Snapshots)
			},
		},
		{
			name: "Planilha indisponível aborta a execução",
			now:  tuesday,
			setup: func(ledgerRepo *mocks.MockLedgerRepository, _ *mocks.MockDailySnapshotRepository, _ *mocks.MockWeeklySummaryRepository) {
				ledgerRepo.EXPECT().Load(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			validate: func(t *testing.T, result *DailySnapshotResult, err error) {
				assert.Nil(t, result)
				assert.ErrorIs(t, err, ErrLedgerUnavailable)
			},
		},
		{
			name: "Histórico indisponível degrada para resumo avulso",
			now:  tuesday,
			setup: func(ledgerRepo *mocks.MockLedgerRepository, snapshotRepo *mocks.MockDailySnapshotRepository, summaryRepo *mocks.MockWeeklySummaryRepository) {
				ledgerRepo.EXPECT().Load(gomock.Any()).Return(domain.Ledger{
					"Alice": {Tuesday: 150},
				}, nil)

				snapshotRepo.EXPECT().
					InsertBatch(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("%w: relation does not exist", repository.ErrStoreUnavailable))

				summaryRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sql.Tx, summary *domain.WeeklySummary) error {
						assert.Equal(t, "Auto 2025-09-09 - terca", summary.WeekLabel)
						assert.Equal(t, 150.0, summary.Total)
						return nil
					})
			},
			validate: func(t *testing.T, result *DailySnapshotResult, err error) {
				assert.NoError(t, err)
				assert.Equal(t, DailyStatusFallback, result.Status)
				assert.Equal(t, 150.0, result.Total)
			},
		},
		{
			name: "Falha no fallback devolve erro de arquivamento",
			now:  tuesday,
			setup: func(ledgerRepo *mocks.MockLedgerRepository, snapshotRepo *mocks.MockDailySnapshotRepository, summaryRepo *mocks.MockWeeklySummaryRepository) {
				ledgerRepo.EXPECT().Load(gomock.Any()).Return(domain.Ledger{
					"Alice": {Tuesday: 150},
				}, nil)

				snapshotRepo.EXPECT().
					InsertBatch(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("%w: relation does not exist", repository.ErrStoreUnavailable))

				summaryRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("disco cheio"))
			},
			validate: func(t *testing.T, result *DailySnapshotResult, err error) {
				assert.Nil(t, result)
				assert.ErrorIs(t, err, ErrArchivalFailed)
			},
		},
		{
			name: "Erro genérico na gravação não aciona o fallback",
			now:  tuesday,
			setup: func(ledgerRepo *mocks.MockLedgerRepository, snapshotRepo *mocks.MockDailySnapshotRepository, _ *mocks.MockWeeklySummaryRepository) {
				ledgerRepo.EXPECT().Load(gomock.Any()).Return(domain.Ledger{
					"Alice": {Tuesday: 150},
				}, nil)

				snapshotRepo.EXPECT().
					InsertBatch(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("violação de constraint"))
			},
			validate: func(t *testing.T, result *DailySnapshotResult, err error) {
				assert.Nil(t, result)
				assert.ErrorIs(t, err, ErrArchivalFailed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, ledgerRepo, snapshotRepo, summaryRepo := newTestService(t)
			tt.setup(ledgerRepo, snapshotRepo, summaryRepo)

			result, err := service.RunDailySnapshot(context.Background(), tt.now)
			tt.validate(t, result, err)
		})
	}
}

func TestCloseWeek(t *testing.T) {
	// Quarta-feira, 10 de setembro de 2025: a semana corrente vai de 08 a 12
	wednesday := time.Date(2025, 9, 10, 0, 1, 0, 0, time.UTC)

	t.Run("Consolida o resumo e zera a planilha no mesmo commit", func(t *testing.T) {
		service, ledgerRepo, _, summaryRepo := newTestService(t)

		ledgerRepo.EXPECT().Load(gomock.Any()).Return(domain.Ledger{
			"Alice": {Monday: 10, Wednesday: 20},
			"Bob":   {Friday: 5},
		}, nil)

		summaryRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sql.Tx, summary *domain.WeeklySummary) error {
				assert.Equal(t, "2025-09-08 a 2025-09-12", summary.WeekLabel)
				assert.Equal(t, 35.0, summary.Total)
				assert.Equal(t, []domain.SellerTotal{
					{Seller: "Alice", Total: 30},
					{Seller: "Bob", Total: 5},
				}, summary.Breakdown)
				return nil
			})

		ledgerRepo.EXPECT().ZeroAll(gomock.Any(), gomock.Any()).Return(nil)

		summary, err := service.CloseWeek(context.Background(), wednesday, TriggerManual)

		assert.NoError(t, err)
		assert.Equal(t, 35.0, summary.Total)
	})

	t.Run("Fechar duas vezes gera dois resumos e duas zeragens", func(t *testing.T) {
		service, ledgerRepo, _, summaryRepo := newTestService(t)

		ledgerRepo.EXPECT().Load(gomock.Any()).Return(domain.Ledger{
			"Alice": {Monday: 10},
		}, nil)
		ledgerRepo.EXPECT().Load(gomock.Any()).Return(domain.Ledger{
			"Alice": {},
		}, nil)

		summaryRepo.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		ledgerRepo.EXPECT().ZeroAll(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		first, err := service.CloseWeek(context.Background(), wednesday, TriggerScheduled)
		assert.NoError(t, err)
		assert.Equal(t, 10.0, first.Total)

		second, err := service.CloseWeek(context.Background(), wednesday, TriggerScheduled)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, second.Total)
	})

	t.Run("Falha na gravação reverte sem zerar a planilha", func(t *testing.T) {
		service, ledgerRepo, _, summaryRepo := newTestService(t)

		ledgerRepo.EXPECT().Load(gomock.Any()).Return(domain.Ledger{
			"Alice": {Monday: 10},
		}, nil)

		summaryRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("disco cheio"))

		summary, err := service.CloseWeek(context.Background(), wednesday, TriggerManual)

		assert.Nil(t, summary)
		assert.ErrorIs(t, err, ErrArchivalFailed)
	})

	t.Run("Segunda-feira fecha a semana que está começando", func(t *testing.T) {
		service, ledgerRepo, _, summaryRepo := newTestService(t)

		monday := time.Date(2025, 9, 15, 0, 1, 0, 0, time.UTC)

		ledgerRepo.EXPECT().Load(gomock.Any()).Return(domain.Ledger{}, nil)
		summaryRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sql.Tx, summary *domain.WeeklySummary) error {
				assert.Equal(t, "2025-09-15 a 2025-09-19", summary.WeekLabel)
				return nil
			})
		ledgerRepo.EXPECT().ZeroAll(gomock.Any(), gomock.Any()).Return(nil)

		_, err := service.CloseWeek(context.Background(), monday, TriggerScheduled)
		assert.NoError(t, err)
	})
}
