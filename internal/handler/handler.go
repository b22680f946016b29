package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/saldoapp/saldo-service/internal/calendar"
	"github.com/saldoapp/saldo-service/internal/models"
	"github.com/saldoapp/saldo-service/internal/repository"
	"github.com/saldoapp/saldo-service/internal/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// writeServiceErr maps service errors to HTTP statuses: a missing record is
// 404, anything else is a server failure.
func writeServiceErr(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	writeErr(w, http.StatusInternalServerError, err.Error())
}

// requestDate resolves the reference date for projection math: the "now"
// query parameter when present (useful for reproducible requests), today
// otherwise.
func requestDate(r *http.Request) (calendar.Date, error) {
	if raw := r.URL.Query().Get("now"); raw != "" {
		return calendar.Parse(raw)
	}
	return calendar.FromTime(time.Now()), nil
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeErr(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ListTransactions returns the user's transactions, newest first
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.svc.ListTransactions(r.Context())
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	writeJSON(w, http.StatusOK, transactions)
}

// CreateTransaction records a new transaction
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if tx.Date.IsZero() {
		writeErr(w, http.StatusBadRequest, "date is required")
		return
	}
	if err := h.svc.CreateTransaction(r.Context(), &tx); err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// UpdateTransaction updates a transaction by ID
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	tx.ID = mux.Vars(r)["id"]
	if err := h.svc.UpdateTransaction(r.Context(), &tx); err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// DeleteTransaction removes a transaction by ID
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTransaction(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recurringKind reads the mandatory type query parameter.
func recurringKind(r *http.Request) (string, bool) {
	kind := r.URL.Query().Get("type")
	return kind, kind == "income" || kind == "expense"
}

// ListRecurring returns the user's recurring items of the requested type
func (h *Handler) ListRecurring(w http.ResponseWriter, r *http.Request) {
	kind, ok := recurringKind(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "type must be income or expense")
		return
	}
	items, err := h.svc.ListRecurring(r.Context(), kind)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	if items == nil {
		items = []models.RecurringItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateRecurring records a new recurring item of the requested type
func (h *Handler) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	kind, ok := recurringKind(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "type must be income or expense")
		return
	}
	var item models.RecurringItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.svc.CreateRecurring(r.Context(), kind, &item); err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateRecurring updates a recurring item by ID
func (h *Handler) UpdateRecurring(w http.ResponseWriter, r *http.Request) {
	kind, ok := recurringKind(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "type must be income or expense")
		return
	}
	var item models.RecurringItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	item.ID = mux.Vars(r)["id"]
	if err := h.svc.UpdateRecurring(r.Context(), kind, &item); err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteRecurring removes a recurring item by ID
func (h *Handler) DeleteRecurring(w http.ResponseWriter, r *http.Request) {
	kind, ok := recurringKind(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "type must be income or expense")
		return
	}
	if err := h.svc.DeleteRecurring(r.Context(), kind, mux.Vars(r)["id"]); err != nil {
		writeServiceErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSettings returns the user's projection settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Settings(r.Context())
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings saves the user's projection settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.svc.UpdateSettings(r.Context(), &settings); err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
