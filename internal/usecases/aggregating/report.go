package aggregating

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

// Reporter monta o relatório agregado da tela de resumo.
type Reporter interface {
	BuildResumoReport(ctx context.Context, now time.Time) (*domain.ResumoReport, error)
}

type ReportService struct {
	snapshotRepo repository.DailySnapshotRepository
	location     *time.Location
}

func NewReportService(snapshotRepo repository.DailySnapshotRepository, location *time.Location) *ReportService {
	return &ReportService{
		snapshotRepo: snapshotRepo,
		location:     location,
	}
}

// BuildResumoReport agrega os snapshots arquivados em totais do dia, da
// semana e do mês correntes, mais o histórico por dia útil da semana e os
// baldes semanais do mês.
func (s *ReportService) BuildResumoReport(ctx context.Context, now time.Time) (*domain.ResumoReport, error) {
	now = now.In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)

	weekStart := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
	weekEnd := weekStart.AddDate(0, 0, 4)

	todaySnapshots, err := s.snapshotRepo.GetByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar snapshots do dia: %w", err)
	}

	dayTotal, err := Rollup(todaySnapshots, Period{Start: today, End: today})
	if err != nil {
		return nil, err
	}

	weekSnapshots, err := s.snapshotRepo.GetByDateRange(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar snapshots da semana: %w", err)
	}

	weekTotal, err := Rollup(weekSnapshots, Period{Start: weekStart, End: weekEnd})
	if err != nil {
		return nil, err
	}

	// Histórico da semana corrente, separado por dia útil.
	weekdayTotals := make(map[domain.Weekday]float64, 5)
	for _, day := range domain.Weekdays() {
		weekdayTotals[day] = 0
	}
	for _, snapshot := range weekSnapshots {
		weekdayTotals[snapshot.Weekday] += snapshot.Value
	}

	monthSnapshots, err := s.snapshotRepo.GetByMonth(ctx, today.Year(), today.Month())
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar snapshots do mês: %w", err)
	}

	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.location)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	monthTotal, err := Rollup(monthSnapshots, Period{Start: firstOfMonth, End: lastOfMonth})
	if err != nil {
		return nil, err
	}

	weekBuckets, err := MonthlyWeekBuckets(monthSnapshots, today.Year(), today.Month())
	if err != nil {
		return nil, err
	}

	return &domain.ResumoReport{
		Date:         today,
		DayTotal:     dayTotal,
		WeekTotal:    weekTotal,
		MonthTotal:   monthTotal,
		WeekdayTotal: weekdayTotals,
		WeekBuckets:  weekBuckets,
		Month:        today.Format("2006-01"),
	}, nil
}
