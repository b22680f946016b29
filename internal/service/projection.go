package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saldoapp/saldo-service/internal/assistant"
	"github.com/saldoapp/saldo-service/internal/calendar"
	"github.com/saldoapp/saldo-service/internal/engine"
	"github.com/saldoapp/saldo-service/internal/models"
	"github.com/saldoapp/saldo-service/internal/repository"
)

// snapshot is everything one projection run needs, loaded in one place so
// every operation sees a consistent view of the user's data.
type snapshot struct {
	transactions []models.Transaction
	incomes      []models.RecurringItem
	expenses     []models.RecurringItem
	settings     models.Settings
}

func (s *Service) settingsFor(userID int64) (*models.Settings, error) {
	settings, err := s.store.GetSettings(userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &models.Settings{
			BudgetEnabled: true,
			BudgetAmount:  s.config.DefaultBudget,
			TrackingStart: s.config.TrackingStart,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	if settings.TrackingStart.IsZero() {
		settings.TrackingStart = s.config.TrackingStart
	}
	return settings, nil
}

func (s *Service) loadSnapshot(userID int64) (*snapshot, error) {
	transactions, err := s.store.ListTransactions(userID)
	if err != nil {
		return nil, err
	}
	incomes, err := s.store.ListRecurring(userID, "income")
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListRecurring(userID, "expense")
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsFor(userID)
	if err != nil {
		return nil, err
	}
	return &snapshot{
		transactions: transactions,
		incomes:      incomes,
		expenses:     expenses,
		settings:     *settings,
	}, nil
}

// startingBalance is the ledger sum corrected by the reconciliation delta:
// money that should already have moved but was never recorded.
func startingBalance(snap *snapshot, now calendar.Date) decimal.Decimal {
	rec := engine.Reconcile(snap.transactions, snap.incomes, snap.expenses, snap.settings.TrackingStart, now)
	return engine.LedgerBalance(snap.transactions).Add(rec.Delta)
}

// Projection builds the monthly checkpoint series for the authenticated
// user: up to months checkpoints on the given day of month, starting from
// now. A non-nil budgetOverride replaces the user's configured budget for
// this run only.
func (s *Service) Projection(ctx context.Context, day, months int, budgetOverride *decimal.Decimal, now calendar.Date) ([]models.ProjectionPoint, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.ProjectionForUser(userID, day, months, budgetOverride, now)
}

// ProjectionForUser is Projection without the context indirection; the
// scheduled alert job calls it directly per user.
func (s *Service) ProjectionForUser(userID int64, day, months int, budgetOverride *decimal.Decimal, now calendar.Date) ([]models.ProjectionPoint, error) {
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("day of month must be between 1 and 31, got %d", day)
	}
	if months < 1 {
		return nil, fmt.Errorf("months must be positive, got %d", months)
	}
	snap, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}

	budget := snap.settings.EffectiveBudget()
	if budgetOverride != nil {
		budget = *budgetOverride
	}

	windowStart, windowEnd := engine.ProjectionWindow(now)
	timeline := engine.BuildTimeline(snap.incomes, snap.expenses, budget, windowStart, windowEnd)
	checkpoints := engine.MonthlyCheckpoints(now, day, months)
	projected := engine.Project(startingBalance(snap, now), timeline, checkpoints)

	points := make([]models.ProjectionPoint, 0, len(projected))
	for _, cp := range projected {
		points = append(points, models.ProjectionPoint{
			Label:        cp.Label,
			Date:         cp.Date,
			Balance:      cp.Balance.Round(2).InexactFloat64(),
			Income:       cp.Income.Round(2).InexactFloat64(),
			Expenses:     cp.Expenses.Round(2).InexactFloat64(),
			CostOfLiving: cp.CostOfLiving.Round(2).InexactFloat64(),
			Net:          cp.Net.Round(2).InexactFloat64(),
		})
	}
	return points, nil
}

// TargetProjection projects the balance at an arbitrary future date,
// consuming every recurring and budget event up to and including it.
func (s *Service) TargetProjection(ctx context.Context, target, now calendar.Date) (*models.SimulationResult, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if target.Before(now) {
		return nil, fmt.Errorf("target date %s is in the past", target)
	}
	balance, err := s.projectAt(userID, target, now)
	if err != nil {
		return nil, err
	}
	return &models.SimulationResult{
		TargetDate:       target,
		ProjectedBalance: balance.Round(2).InexactFloat64(),
	}, nil
}

func (s *Service) projectAt(userID int64, target, now calendar.Date) (decimal.Decimal, error) {
	snap, err := s.loadSnapshot(userID)
	if err != nil {
		return decimal.Zero, err
	}
	timeline := engine.BuildTimeline(snap.incomes, snap.expenses, snap.settings.EffectiveBudget(), now, target)
	projected := engine.Project(startingBalance(snap, now), timeline, []calendar.Date{target})
	return projected[0].Balance, nil
}

// Simulate answers a free-text "what if" question: it extracts a target
// date and any ad hoc amounts from the text, runs a projection to that
// date, and applies the extras on top.
func (s *Service) Simulate(ctx context.Context, text string, now calendar.Date) (*models.SimulationResult, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	target, ok := assistant.ParseDate(text, now)
	if !ok {
		return nil, fmt.Errorf("no date found in question")
	}
	if target.Before(now) {
		return nil, fmt.Errorf("target date %s is in the past", target)
	}

	balance, err := s.projectAt(userID, target, now)
	if err != nil {
		return nil, err
	}

	extras := assistant.ParseExtras(text, now)
	result := &models.SimulationResult{TargetDate: target}
	for _, extra := range extras {
		if extra.Kind == "income" {
			balance = balance.Add(extra.Amount)
		} else {
			balance = balance.Sub(extra.Amount)
		}
		result.Extras = append(result.Extras, models.SimulationExtra{
			Amount: extra.Amount.Round(2).InexactFloat64(),
			Label:  extra.Label,
			Kind:   extra.Kind,
		})
	}
	result.ProjectedBalance = balance.Round(2).InexactFloat64()
	return result, nil
}

// Stats computes the read-only financial statistics payload. A non-nil
// budgetOverride replaces the user's configured budget for this run only.
func (s *Service) Stats(ctx context.Context, budgetOverride *decimal.Decimal, now calendar.Date) (*models.FinancialStats, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}

	budget := snap.settings.EffectiveBudget()
	if budgetOverride != nil {
		budget = *budgetOverride
	}

	effective := engine.EffectiveBalance(snap.transactions, snap.incomes, snap.expenses, now)
	remaining := engine.RemainingFixedExpenses(snap.expenses, snap.transactions, now)
	availability, margin, status := engine.Availability(effective, remaining, budget)

	monthlyExpenses := decimal.Zero
	for _, item := range snap.expenses {
		if item.Active {
			monthlyExpenses = monthlyExpenses.Add(item.Amount)
		}
	}

	return &models.FinancialStats{
		TotalBalance:       effective.Round(2).InexactFloat64(),
		MonthlyExpenses:    monthlyExpenses.Round(2).InexactFloat64(),
		Availability:       availability.InexactFloat64(),
		AvailabilityMargin: margin.InexactFloat64(),
		FinancialStatus:    string(status),
		BudgetUsed:         engine.MonthlyActualExpenses(snap.transactions, now).Round(2).InexactFloat64(),
		Currency:           "EUR",
		Timestamp:          time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Reconciliation reports missing recurring occurrences without touching
// the ledger.
func (s *Service) Reconciliation(ctx context.Context, now calendar.Date) (*models.ReconciliationReport, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	rec := engine.Reconcile(snap.transactions, snap.incomes, snap.expenses, snap.settings.TrackingStart, now)

	report := &models.ReconciliationReport{Delta: rec.Delta.Round(2).InexactFloat64()}
	for _, miss := range rec.Missing {
		report.Missing = append(report.Missing, models.MissedOccurrence{
			Date:   miss.Date,
			Name:   miss.Name,
			Amount: miss.Amount.Round(2).InexactFloat64(),
			Kind:   miss.Kind.String(),
		})
	}
	return report, nil
}

// Backfill materializes every missing recurring occurrence as a real
// transaction, dated on the occurrence date and signed by kind. It returns
// the created transactions.
func (s *Service) Backfill(ctx context.Context, now calendar.Date) ([]models.Transaction, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	rec := engine.Reconcile(snap.transactions, snap.incomes, snap.expenses, snap.settings.TrackingStart, now)

	created := make([]models.Transaction, 0, len(rec.Missing))
	for _, miss := range rec.Missing {
		amount := miss.Amount
		category := "income"
		if miss.Kind == engine.KindExpense {
			amount = amount.Neg()
			category = "expense"
		}
		tx := models.Transaction{
			ID:          uuid.NewString(),
			Description: miss.Name,
			Category:    category,
			Amount:      amount,
			Date:        miss.Date,
			Icon:        iconFor(miss.Name, snap.incomes, snap.expenses),
		}
		if err := s.store.CreateTransaction(userID, &tx); err != nil {
			return created, fmt.Errorf("failed to backfill %s on %s: %w", miss.Name, miss.Date, err)
		}
		created = append(created, tx)
	}
	if len(created) > 0 {
		s.log.Infof("Backfilled %d missing transactions for user %d", len(created), userID)
	}
	return created, nil
}

func iconFor(name string, incomes, expenses []models.RecurringItem) string {
	for _, item := range incomes {
		if item.Name == name {
			return item.Icon
		}
	}
	for _, item := range expenses {
		if item.Name == name {
			return item.Icon
		}
	}
	return ""
}
