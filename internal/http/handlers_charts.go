package http

import (
	"log/slog"
	"net/http"

	"paisa/internal/core"
)

// servePNG writes a rendered chart, or 204 when there is nothing to draw.
func servePNG(w http.ResponseWriter, r *http.Request, png []byte, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "Chart render error", "error", err, "url", r.URL.Path)
		http.Error(w, "chart render failed", http.StatusInternalServerError)
		return
	}
	if len(png) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

func (s *Server) handleModeSplitChart(w http.ResponseWriter, r *http.Request) {
	txs, err := s.listTransactions(r.Context())
	if err != nil {
		http.Error(w, "data unavailable", http.StatusInternalServerError)
		return
	}
	png, err := s.generator.ModeSplitPie(core.ModeSplit(txs))
	servePNG(w, r, png, err)
}

func (s *Server) handleDailyChart(w http.ResponseWriter, r *http.Request) {
	txs, err := s.listTransactions(r.Context())
	if err != nil {
		http.Error(w, "data unavailable", http.StatusInternalServerError)
		return
	}
	png, err := s.generator.DailySeries(core.DailySeries(txs, core.TypeExpense))
	servePNG(w, r, png, err)
}

func (s *Server) handleBudgetChart(w http.ResponseWriter, r *http.Request) {
	txs, err := s.listTransactions(r.Context())
	if err != nil {
		http.Error(w, "data unavailable", http.StatusInternalServerError)
		return
	}
	wallet := core.FilterWallet(txs, core.ScopeFor(parseTab(r)))
	png, err := s.generator.BudgetBar(core.ComputeBudgetSplit(wallet))
	servePNG(w, r, png, err)
}

func (s *Server) handleCategoriesChart(w http.ResponseWriter, r *http.Request) {
	txs, err := s.listTransactions(r.Context())
	if err != nil {
		http.Error(w, "data unavailable", http.StatusInternalServerError)
		return
	}
	wallet := core.FilterWallet(txs, core.ScopeFor(parseTab(r)))
	png, err := s.generator.CategoryPie(core.GroupByCategory(wallet, core.TypeExpense))
	servePNG(w, r, png, err)
}
