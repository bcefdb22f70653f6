// Package archiving implementa o arquivamento da planilha viva: o snapshot
// diário por vendedor e o fechamento semanal que consolida e zera a planilha.
package archiving

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

// Trigger identifica quem disparou o fechamento semanal.
type Trigger string

const (
	TriggerScheduled Trigger = "scheduled"
	TriggerManual    Trigger = "manual"
)

// DailyStatus é o desfecho de uma execução do snapshot diário.
type DailyStatus string

const (
	DailyStatusOK DailyStatus = "ok"
	// DailyStatusWeekend: sábado e domingo não têm coluna na planilha, a
	// execução vira no-op.
	DailyStatusWeekend DailyStatus = "weekend"
	// DailyStatusFallback: o histórico diário estava indisponível e o total
	// do dia foi registrado como um resumo avulso.
	DailyStatusFallback DailyStatus = "fallback"
)

// DailySnapshotResult descreve o que uma execução do snapshot diário gravou.
type DailySnapshotResult struct {
	Status    DailyStatus
	Date      time.Time
	Weekday   domain.Weekday
	Total     float64
	Snapshots int
}

// Archiver é a interface consumida pelos handlers HTTP e pelos agendadores.
type Archiver interface {
	RunDailySnapshot(ctx context.Context, now time.Time) (*DailySnapshotResult, error)
	CloseWeek(ctx context.Context, now time.Time, trigger Trigger) (*domain.WeeklySummary, error)
}

type Service struct {
	conn         postgres.TxRunner
	ledgerRepo   repository.LedgerRepository
	snapshotRepo repository.DailySnapshotRepository
	summaryRepo  repository.WeeklySummaryRepository
	location     *time.Location
}

func NewService(
	conn postgres.TxRunner,
	ledgerRepo repository.LedgerRepository,
	snapshotRepo repository.DailySnapshotRepository,
	summaryRepo repository.WeeklySummaryRepository,
	location *time.Location,
) *Service {
	return &Service{
		conn:         conn,
		ledgerRepo:   ledgerRepo,
		snapshotRepo: snapshotRepo,
		summaryRepo:  summaryRepo,
		location:     location,
	}
}

// RunDailySnapshot grava um DailySnapshot por vendedor com o valor da coluna
// do dia corrente, tudo em uma única transação. Se o histórico diário estiver
// indisponível, registra o total do dia como um resumo avulso rotulado
// "Auto <data> - <dia>" em vez de falhar.
func (s *Service) RunDailySnapshot(ctx context.Context, now time.Time) (*DailySnapshotResult, error) {
	now = now.In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)

	day, ok := domain.WeekdayFromTime(now)
	if !ok {
		logrus.Infof("Fim de semana (%s) — resumo diário não é salvo", today.Format(time.DateOnly))
		return &DailySnapshotResult{Status: DailyStatusWeekend, Date: today}, nil
	}

	logrus.WithFields(logrus.Fields{
		"date": today.Format(time.DateOnly),
		"day":  day.PortugueseName(),
	}).Info("Salvando resumo diário")

	ledger, err := s.ledgerRepo.Load(ctx)
	if err != nil {
		return nil, NewArchiveError(fmt.Errorf("%w: %v", ErrLedgerUnavailable, err), "daily-snapshot", "")
	}

	batchID, err := utils.GenerateID()
	if err != nil {
		return nil, NewArchiveError(err, "daily-snapshot", "erro ao gerar batch id")
	}

	// Somente a coluna do dia corrente entra no snapshot; os demais dias da
	// planilha são ignorados nesta execução.
	total := aggregating.DailyTotal(ledger, day)
	snapshots := make([]*domain.DailySnapshot, 0, len(ledger))
	for _, name := range sortedNames(ledger) {
		snapshots = append(snapshots, &domain.DailySnapshot{
			EmployeeName: name,
			Date:         today,
			Weekday:      day,
			Value:        ledger[name].Value(day),
			BatchID:      batchID,
		})
	}

	err = s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return s.snapshotRepo.InsertBatch(ctx, tx, snapshots)
	})
	if err == nil {
		logrus.WithFields(logrus.Fields{
			"date":      today.Format(time.DateOnly),
			"snapshots": len(snapshots),
			"total":     utils.FormatBRL(total),
		}).Info("Resumo diário salvo")

		return &DailySnapshotResult{
			Status:    DailyStatusOK,
			Date:      today,
			Weekday:   day,
			Total:     total,
			Snapshots: len(snapshots),
		}, nil
	}

	if !errors.Is(err, repository.ErrStoreUnavailable) {
		return nil, NewArchiveError(fmt.Errorf("%w: %v", ErrArchivalFailed, err), "daily-snapshot", "")
	}

	// Histórico diário indisponível: degrada para um resumo avulso cobrindo
	// só o dia, para não perder o registro.
	logrus.WithError(err).Warn("Histórico diário indisponível, usando fallback de resumo avulso")

	summary := s.buildFallbackSummary(ledger, today, day, total)
	fallbackErr := s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return s.summaryRepo.Insert(ctx, tx, summary)
	})
	if fallbackErr != nil {
		logrus.WithError(fallbackErr).Error("Fallback do resumo diário também falhou, abortando execução")
		return nil, NewArchiveError(fmt.Errorf("%w: %v", ErrArchivalFailed, fallbackErr), "daily-snapshot", "fallback indisponível")
	}

	logrus.WithField("resumo", summary.WeekLabel).Info("Resumo diário salvo via fallback")

	return &DailySnapshotResult{
		Status:  DailyStatusFallback,
		Date:    today,
		Weekday: day,
		Total:   total,
	}, nil
}

// CloseWeek consolida a semana corrente em um WeeklySummary e zera a planilha
// inteira, em um único commit. Qualquer falha reverte a operação completa.
func (s *Service) CloseWeek(ctx context.Context, now time.Time, trigger Trigger) (*domain.WeeklySummary, error) {
	now = now.In(s.location)
	weekStart := mostRecentMonday(now)
	weekEnd := weekStart.AddDate(0, 0, 4)

	logrus.WithFields(logrus.Fields{
		"week_start": weekStart.Format(time.DateOnly),
		"week_end":   weekEnd.Format(time.DateOnly),
		"trigger":    string(trigger),
	}).Info("Fechando a semana")

	ledger, err := s.ledgerRepo.Load(ctx)
	if err != nil {
		return nil, NewArchiveError(fmt.Errorf("%w: %v", ErrLedgerUnavailable, err), "close-week", "")
	}

	totals := aggregating.PerEmployeeTotals(ledger)
	breakdown := make([]domain.SellerTotal, 0, len(totals))
	for _, name := range sortedNames(ledger) {
		breakdown = append(breakdown, domain.SellerTotal{Seller: name, Total: totals[name]})
	}

	// O total é sempre recalculado a partir do próprio breakdown.
	var total float64
	for _, entry := range breakdown {
		total += entry.Total
	}

	summary := &domain.WeeklySummary{
		WeekLabel: fmt.Sprintf("%s a %s", weekStart.Format(time.DateOnly), weekEnd.Format(time.DateOnly)),
		StartedAt: weekStart,
		EndedAt:   weekEnd,
		Total:     total,
		Breakdown: breakdown,
	}

	err = s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.summaryRepo.Insert(ctx, tx, summary); err != nil {
			return err
		}
		return s.ledgerRepo.ZeroAll(ctx, tx)
	})
	if err != nil {
		return nil, NewArchiveError(fmt.Errorf("%w: %v", ErrArchivalFailed, err), "close-week", "")
	}

	logrus.WithFields(logrus.Fields{
		"resumo": summary.WeekLabel,
		"total":  utils.FormatBRL(total),
	}).Info("Semana fechada e planilha zerada")

	return summary, nil
}

func (s *Service) buildFallbackSummary(ledger domain.Ledger, today time.Time, day domain.Weekday, total float64) *domain.WeeklySummary {
	breakdown := make([]domain.SellerTotal, 0, len(ledger))
	for _, name := range sortedNames(ledger) {
		breakdown = append(breakdown, domain.SellerTotal{Seller: name, Total: ledger[name].Value(day)})
	}

	return &domain.WeeklySummary{
		WeekLabel: fmt.Sprintf("Auto %s - %s", today.Format(time.DateOnly), day.PortugueseName()),
		StartedAt: today,
		EndedAt:   today,
		Total:     total,
		Breakdown: breakdown,
	}
}

func sortedNames(ledger domain.Ledger) []string {
	names := make([]string, 0, len(ledger))
	for name := range ledger {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// mostRecentMonday devolve a segunda-feira mais recente (inclusive) da data.
func mostRecentMonday(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
