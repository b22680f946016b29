package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/saldoapp/saldo-service/internal/calendar"
	"github.com/saldoapp/saldo-service/internal/export"
	"github.com/saldoapp/saldo-service/internal/models"
)

// budgetOverride reads the optional budget query parameter.
func budgetOverride(r *http.Request) (*decimal.Decimal, error) {
	raw := r.URL.Query().Get("budget")
	if raw == "" {
		return nil, nil
	}
	budget, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// Projection returns monthly balance checkpoints. Query parameters: day
// (checkpoint day of month, default 1), months (how many checkpoints,
// default 12), budget (optional override).
func (h *Handler) Projection(w http.ResponseWriter, r *http.Request) {
	now, err := requestDate(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid now date")
		return
	}

	day := 1
	if raw := r.URL.Query().Get("day"); raw != "" {
		if day, err = strconv.Atoi(raw); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid day")
			return
		}
	}
	months := 12
	if raw := r.URL.Query().Get("months"); raw != "" {
		if months, err = strconv.Atoi(raw); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid months")
			return
		}
	}
	budget, err := budgetOverride(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid budget")
		return
	}

	points, err := h.svc.Projection(r.Context(), day, months, budget, now)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	if points == nil {
		points = []models.ProjectionPoint{}
	}
	writeJSON(w, http.StatusOK, points)
}

// TargetProjection returns the projected balance at one arbitrary date,
// given as the date query parameter.
func (h *Handler) TargetProjection(w http.ResponseWriter, r *http.Request) {
	now, err := requestDate(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid now date")
		return
	}
	target, err := calendar.Parse(r.URL.Query().Get("date"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid date")
		return
	}

	result, err := h.svc.TargetProjection(r.Context(), target, now)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Simulate answers a free-text what-if question posted as
// {"question": "..."}.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	now, err := requestDate(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid now date")
		return
	}
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Question == "" {
		writeErr(w, http.StatusBadRequest, "question is required")
		return
	}

	result, err := h.svc.Simulate(r.Context(), req.Question, now)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Stats returns the financial statistics payload. The optional field query
// parameter narrows the response to a single stat.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	now, err := requestDate(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid now date")
		return
	}
	budget, err := budgetOverride(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid budget")
		return
	}

	stats, err := h.svc.Stats(r.Context(), budget, now)
	if err != nil {
		writeServiceErr(w, err)
		return
	}

	if field := r.URL.Query().Get("field"); field != "" {
		value, ok := statField(stats, field)
		if !ok {
			writeErr(w, http.StatusBadRequest, "unknown field "+field)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"field": field, "value": value})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func statField(stats *models.FinancialStats, field string) (any, bool) {
	switch field {
	case "total_balance":
		return stats.TotalBalance, true
	case "monthly_expenses":
		return stats.MonthlyExpenses, true
	case "availability":
		return stats.Availability, true
	case "availability_margin":
		return stats.AvailabilityMargin, true
	case "financial_status":
		return stats.FinancialStatus, true
	case "budget_used":
		return stats.BudgetUsed, true
	}
	return nil, false
}

// Reconciliation reports missing recurring occurrences
func (h *Handler) Reconciliation(w http.ResponseWriter, r *http.Request) {
	now, err := requestDate(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid now date")
		return
	}
	report, err := h.svc.Reconciliation(r.Context(), now)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	if report.Missing == nil {
		report.Missing = []models.MissedOccurrence{}
	}
	writeJSON(w, http.StatusOK, report)
}

// Backfill materializes missing recurring occurrences as transactions
func (h *Handler) Backfill(w http.ResponseWriter, r *http.Request) {
	now, err := requestDate(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid now date")
		return
	}
	created, err := h.svc.Backfill(r.Context(), now)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	if created == nil {
		created = []models.Transaction{}
	}
	writeJSON(w, http.StatusCreated, created)
}

// Backup exports the user's data as JSON, or XML when format=xml.
func (h *Handler) Backup(w http.ResponseWriter, r *http.Request) {
	backup, err := h.svc.Backup(r.Context())
	if err != nil {
		writeServiceErr(w, err)
		return
	}

	if r.URL.Query().Get("format") == "xml" {
		data, err := export.BackupXML(backup)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	writeJSON(w, http.StatusOK, backup)
}
