package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"paisa/internal/core"
	"paisa/internal/ledger"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	amountStr := strings.TrimSpace(r.Form.Get("amount"))
	category := sanitizeInput(r.Form.Get("category"))
	remarks := sanitizeInput(r.Form.Get("remarks"))
	mode := core.Mode(strings.TrimSpace(r.Form.Get("mode")))
	txType := core.TxType(strings.TrimSpace(r.Form.Get("type")))

	createdAt := time.Now().UTC()
	if v := strings.TrimSpace(r.Form.Get("date")); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			createdAt = d
		}
	}

	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount</div>`))
		return
	}

	tx := core.Transaction{
		Amount:    core.Money{Cents: cents},
		Category:  category,
		Mode:      mode,
		Type:      txType,
		Remarks:   remarks,
		CreatedAt: createdAt,
	}
	if err := tx.Validate(); err != nil {
		var verr *core.ValidationError
		msg := "Invalid data"
		if errors.As(err, &verr) {
			msg = "Invalid " + verr.Field
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
		return
	}

	id, err := s.service.Create(r.Context(), tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction create error",
			"error", err,
			"amount_cents", tx.Amount.Cents,
			"category", tx.Category,
			"mode", string(tx.Mode),
			"type", string(tx.Type))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error saving transaction</div>`))
		return
	}

	// Invalidate the cached list and trigger a client refresh.
	s.invalidateList()
	w.Header().Set("HX-Trigger", `{"transaction:created": {"id": "`+template.JSEscapeString(id)+`"}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Saved: ` +
		template.HTMLEscapeString(tx.Category) +
		` — ₹` + template.HTMLEscapeString(amountStr) +
		` (` + template.HTMLEscapeString(string(tx.Mode)) + `)</div>`))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	if id == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Missing transaction id</div>`))
		return
	}

	if err := s.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<div class="error">Transaction not found</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Transaction delete error", "error", err, "id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error deleting transaction</div>`))
		return
	}

	s.invalidateList()
	w.Header().Set("HX-Trigger", `{"transaction:deleted": {"id": "`+template.JSEscapeString(id)+`"}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Transaction deleted</div>`))
}
