package aggregating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestBuildResumoReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	snapshotRepo := mocks.NewMockDailySnapshotRepository(ctrl)
	service := NewReportService(snapshotRepo, time.UTC)

	// Quarta-feira, 10 de setembro de 2025; semana corrente de 08 a 12
	now := time.Date(2025, 9, 10, 14, 0, 0, 0, time.UTC)
	today := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)

	weekSnapshots := []*domain.DailySnapshot{
		{Date: monday, Weekday: domain.Monday, Value: 100},
		{Date: today, Weekday: domain.Wednesday, Value: 40},
		{Date: today, Weekday: domain.Wednesday, Value: 10},
	}

	snapshotRepo.EXPECT().
		GetByDate(gomock.Any(), today).
		Return(weekSnapshots[1:], nil)

	snapshotRepo.EXPECT().
		GetByDateRange(gomock.Any(), monday, monday.AddDate(0, 0, 4)).
		Return(weekSnapshots, nil)

	snapshotRepo.EXPECT().
		GetByMonth(gomock.Any(), 2025, time.September).
		Return(weekSnapshots, nil)

	report, err := service.BuildResumoReport(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 50.0, report.DayTotal)
	assert.Equal(t, 150.0, report.WeekTotal)
	assert.Equal(t, 150.0, report.MonthTotal)
	assert.Equal(t, 100.0, report.WeekdayTotal[domain.Monday])
	assert.Equal(t, 50.0, report.WeekdayTotal[domain.Wednesday])
	assert.Equal(t, 0.0, report.WeekdayTotal[domain.Friday])
	assert.Equal(t, "2025-09", report.Month)

	// Setembro de 2025 começa numa segunda e tem cinco semanas de calendário
	assert.Len(t, report.WeekBuckets, 5)
	assert.Equal(t, 150.0, report.WeekBuckets[1])
}

func TestBuildResumoReportPropagatesStoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	snapshotRepo := mocks.NewMockDailySnapshotRepository(ctrl)
	service := NewReportService(snapshotRepo, time.UTC)

	snapshotRepo.EXPECT().
		GetByDate(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	report, err := service.BuildResumoReport(context.Background(), time.Date(2025, 9, 10, 14, 0, 0, 0, time.UTC))

	assert.Nil(t, report)
	assert.Error(t, err)
}
