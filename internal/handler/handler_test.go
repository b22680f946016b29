package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/saldoapp/saldo-service/internal/calendar"
	"github.com/saldoapp/saldo-service/internal/config"
	"github.com/saldoapp/saldo-service/internal/models"
	"github.com/saldoapp/saldo-service/internal/repository"
	"github.com/saldoapp/saldo-service/internal/service"
)

// memStore is a minimal in-memory service.Store for handler tests.
type memStore struct {
	transactions []models.Transaction
	incomes      []models.RecurringItem
	expenses     []models.RecurringItem
	settings     *models.Settings
}

func (m *memStore) CreateUser(user *models.User) error           { user.ID = 1; return nil }
func (m *memStore) FindUserByEmail(string) (*models.User, error) { return nil, repository.ErrNotFound }
func (m *memStore) FindUserByID(int64) (*models.User, error)     { return nil, repository.ErrNotFound }
func (m *memStore) ListUsers() ([]models.User, error)            { return nil, nil }

func (m *memStore) ListTransactions(int64) ([]models.Transaction, error) {
	return m.transactions, nil
}

func (m *memStore) CreateTransaction(_ int64, tx *models.Transaction) error {
	m.transactions = append(m.transactions, *tx)
	return nil
}

func (m *memStore) UpdateTransaction(int64, *models.Transaction) error {
	return repository.ErrNotFound
}

func (m *memStore) DeleteTransaction(int64, string) error { return repository.ErrNotFound }

func (m *memStore) ListRecurring(_ int64, kind string) ([]models.RecurringItem, error) {
	if kind == "income" {
		return m.incomes, nil
	}
	return m.expenses, nil
}

func (m *memStore) CreateRecurring(_ int64, kind string, item *models.RecurringItem) error {
	if kind == "income" {
		m.incomes = append(m.incomes, *item)
	} else {
		m.expenses = append(m.expenses, *item)
	}
	return nil
}

func (m *memStore) UpdateRecurring(int64, string, *models.RecurringItem) error {
	return repository.ErrNotFound
}

func (m *memStore) DeleteRecurring(int64, string, string) error { return repository.ErrNotFound }

func (m *memStore) GetSettings(int64) (*models.Settings, error) {
	if m.settings == nil {
		return nil, repository.ErrNotFound
	}
	copied := *m.settings
	return &copied, nil
}

func (m *memStore) SaveSettings(_ int64, s *models.Settings) error {
	copied := *s
	m.settings = &copied
	return nil
}

func testHandler(store service.Store) *Handler {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		DefaultBudget: decimal.NewFromInt(500),
		TrackingStart: calendar.MustParse("2025-01-01"),
	}
	return NewHandler(service.NewService(store, log, cfg))
}

// authed attaches the authenticated user ID the way the middleware does.
func authed(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), "userID", "1"))
}

func TestProjectionEndpoint(t *testing.T) {
	store := &memStore{
		transactions: []models.Transaction{
			{ID: "t1", Amount: decimal.NewFromInt(1000), Date: calendar.MustParse("2025-04-01")},
		},
		expenses: []models.RecurringItem{
			{ID: "e1", Name: "Rent", Amount: decimal.NewFromInt(800), Active: true, Day: 3, StartDate: calendar.MustParse("2025-01-01")},
		},
		settings: &models.Settings{TrackingStart: calendar.MustParse("2025-04-01")},
	}
	h := testHandler(store)

	r := authed(httptest.NewRequest("GET", "/projection?day=5&months=2&now=2025-04-02", nil))
	w := httptest.NewRecorder()
	h.Projection(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var points []models.ProjectionPoint
	if err := json.Unmarshal(w.Body.Bytes(), &points); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[0].Balance != 200 {
		t.Errorf("first balance = %v, want 200", points[0].Balance)
	}
}

func TestProjectionEndpointRejectsBadParams(t *testing.T) {
	h := testHandler(&memStore{})

	for _, query := range []string{"day=abc", "months=x", "budget=oops", "now=not-a-date"} {
		r := authed(httptest.NewRequest("GET", "/projection?"+query, nil))
		w := httptest.NewRecorder()
		h.Projection(w, r)
		if w.Code != http.StatusBadRequest {
			t.Errorf("query %q: status = %d, want 400", query, w.Code)
		}
		if !strings.Contains(w.Body.String(), "error") {
			t.Errorf("query %q: body %q has no error field", query, w.Body.String())
		}
	}
}

func TestStatsFieldSelection(t *testing.T) {
	store := &memStore{
		transactions: []models.Transaction{
			{ID: "t1", Amount: decimal.NewFromInt(1500), Date: calendar.MustParse("2025-04-01")},
		},
		settings: &models.Settings{TrackingStart: calendar.MustParse("2025-04-01")},
	}
	h := testHandler(store)

	r := authed(httptest.NewRequest("GET", "/stats?field=total_balance&now=2025-04-10", nil))
	w := httptest.NewRecorder()
	h.Stats(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["field"] != "total_balance" || resp["value"] != 1500.0 {
		t.Errorf("resp = %v, want total_balance 1500", resp)
	}

	r = authed(httptest.NewRequest("GET", "/stats?field=nope&now=2025-04-10", nil))
	w = httptest.NewRecorder()
	h.Stats(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown field: status = %d, want 400", w.Code)
	}
}

func TestRecurringRequiresType(t *testing.T) {
	h := testHandler(&memStore{})

	r := authed(httptest.NewRequest("GET", "/recurring", nil))
	w := httptest.NewRecorder()
	h.ListRecurring(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing type: status = %d, want 400", w.Code)
	}

	r = authed(httptest.NewRequest("GET", "/recurring?type=income", nil))
	w = httptest.NewRecorder()
	h.ListRecurring(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("valid type: status = %d, want 200", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("empty list body = %q, want []", w.Body.String())
	}
}

func TestUpdateMissingTransactionIs404(t *testing.T) {
	h := testHandler(&memStore{})

	r := authed(httptest.NewRequest("PUT", "/transactions/nope", strings.NewReader(`{"amount":"5","date":"2025-04-01"}`)))
	w := httptest.NewRecorder()
	h.UpdateTransaction(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestBackupXMLEndpoint(t *testing.T) {
	store := &memStore{
		transactions: []models.Transaction{
			{ID: "t1", Description: "Groceries", Amount: decimal.NewFromInt(-42), Date: calendar.MustParse("2025-03-04")},
		},
	}
	h := testHandler(store)

	r := authed(httptest.NewRequest("GET", "/backup?format=xml", nil))
	w := httptest.NewRecorder()
	h.Backup(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/xml" {
		t.Errorf("content type = %q, want application/xml", ct)
	}
	if !strings.Contains(w.Body.String(), "<transaction id=\"t1\">") {
		t.Errorf("body missing transaction element: %s", w.Body.String())
	}
}
