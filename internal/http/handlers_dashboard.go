package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"paisa/internal/core"
)

// categoryRow is a rendered breakdown line with a progress width scaled to
// the largest category.
type categoryRow struct {
	Name   string
	Amount string
	Width  int
}

// txRow is a rendered transaction list line.
type txRow struct {
	ID       string
	Date     string
	Category string
	Amount   string
	Type     string
	Mode     string
	Remarks  string
	Expense  bool
}

type dailyRow struct {
	Date   string
	Amount string
	Width  int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	txs, err := s.listTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions error", "error", err)
	}

	data := struct {
		Balance string
		Tab     string
	}{
		Balance: formatRupees(core.Balance(txs).Cents),
		Tab:     parseTab(r),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleDashboard renders the dashboard partial for a wallet tab or the
// overview.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	tab := parseTab(r)
	scope := core.ScopeFor(tab)

	breakdownType := core.TypeExpense
	if strings.TrimSpace(r.URL.Query().Get("type")) == string(core.TypeIncome) {
		breakdownType = core.TypeIncome
	}

	txs, err := s.listTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard data error", "error", err, "tab", tab)
		_, _ = w.Write([]byte(`<section id="dashboard" class="dashboard"><div class="placeholder">Error loading dashboard</div></section>`))
		return
	}

	wallet := core.FilterWallet(txs, scope)
	split := core.ComputeBudgetSplit(wallet)

	data := struct {
		Tab           string
		IsOverview    bool
		Balance       string
		BreakdownType string
		Categories    []string
		Rows          []categoryRow
		Used          string
		Remaining     string
		Income        string
		UsedPercent   int
		Items         []txRow
		// Overview sections
		OnlineTotal  string
		CashTotal    string
		Daily        []dailyRow
		Leaderboard  []categoryRow
		Unclassified []txRow
	}{
		Tab:           tab,
		IsOverview:    scope == core.ScopeOverview,
		Balance:       formatRupees(core.Balance(wallet).Cents),
		BreakdownType: string(breakdownType),
		Categories:    core.Categories,
		Used:          formatRupees(split.Used.Cents),
		Remaining:     formatRupees(split.Remaining.Cents),
		Income:        formatRupees(split.Income.Cents),
		UsedPercent:   split.UsedPercent(),
	}

	data.Rows = buildCategoryRows(core.GroupByCategory(wallet, breakdownType))
	data.Items = buildTxRows(wallet)

	if data.IsOverview {
		mode := core.ModeSplit(txs)
		data.OnlineTotal = formatRupees(mode.Online.Cents)
		data.CashTotal = formatRupees(mode.Cash.Cents)
		data.Daily = buildDailyRows(core.DailySeries(txs, core.TypeExpense))
		data.Leaderboard = buildCategoryRows(core.Leaderboard(txs))
		data.Unclassified = buildTxRows(core.Unclassified(txs))
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="dashboard" class="dashboard"><div class="placeholder">Balance: ` + data.Balance + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "dashboard.html", "tab", tab)
		_, _ = w.Write([]byte(`<section id="dashboard" class="dashboard"><div class="placeholder">Error rendering dashboard</div></section>`))
	}
}

// buildCategoryRows formats category totals and scales progress widths to
// the largest amount.
func buildCategoryRows(cats []core.CategoryAmount) []categoryRow {
	var maxCents int64
	for _, c := range cats {
		if c.Amount.Cents > maxCents {
			maxCents = c.Amount.Cents
		}
	}

	rows := make([]categoryRow, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, categoryRow{
			Name:   c.Name,
			Amount: formatRupees(c.Amount.Cents),
			Width:  scaleWidth(c.Amount.Cents, maxCents),
		})
	}
	return rows
}

func buildDailyRows(series []core.DailyAmount) []dailyRow {
	var maxCents int64
	for _, d := range series {
		if d.Amount.Cents > maxCents {
			maxCents = d.Amount.Cents
		}
	}

	rows := make([]dailyRow, 0, len(series))
	for _, d := range series {
		rows = append(rows, dailyRow{
			Date:   d.Date,
			Amount: formatRupees(d.Amount.Cents),
			Width:  scaleWidth(d.Amount.Cents, maxCents),
		})
	}
	return rows
}

func buildTxRows(txs []core.Transaction) []txRow {
	rows := make([]txRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, txRow{
			ID:       tx.ID,
			Date:     tx.CreatedAt.UTC().Format("02 Jan 2006"),
			Category: template.HTMLEscapeString(tx.Category),
			Amount:   formatRupees(tx.Amount.Cents),
			Type:     string(tx.Type),
			Mode:     string(tx.Mode),
			Remarks:  template.HTMLEscapeString(tx.Remarks),
			Expense:  tx.Type == core.TypeExpense,
		})
	}
	return rows
}

// scaleWidth maps cents onto a 0-100 progress width, keeping tiny nonzero
// values visible.
func scaleWidth(cents, maxCents int64) int {
	if maxCents <= 0 || cents <= 0 {
		return 0
	}
	width := int((cents*100 + maxCents/2) / maxCents)
	if width > 0 && width < 2 {
		width = 2
	}
	if width > 100 {
		width = 100
	}
	return width
}
