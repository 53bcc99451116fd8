package core

import "sort"

// Scope selects which wallet an aggregate is computed over. The zero-value
// overview scope means "all wallets".
type Scope string

const (
	ScopeOverview Scope = ""
	ScopeCash     Scope = Scope(ModeCash)
	ScopeOnline   Scope = Scope(ModeOnline)
)

// ScopeFor maps a wallet tab name to a scope. Unknown names fall back to the
// overview.
func ScopeFor(tab string) Scope {
	switch tab {
	case string(ModeCash):
		return ScopeCash
	case string(ModeOnline):
		return ScopeOnline
	default:
		return ScopeOverview
	}
}

// CategoryAmount is an amount aggregated under a category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// DailyAmount is a per-UTC-day total. Date is in "2006-01-02" form, so
// lexicographic order is chronological order.
type DailyAmount struct {
	Date   string
	Amount Money
}

// BudgetSplit divides the scope's money into what was spent and what is left.
type BudgetSplit struct {
	Used      Money
	Remaining Money
	Income    Money
}

// ModeSplitTotals holds per-wallet expense totals.
type ModeSplitTotals struct {
	Online Money
	Cash   Money
}

// FilterWallet returns the transactions belonging to the scope's wallet,
// preserving input order. The overview scope returns the input unchanged.
// Filtering an already-filtered list with the same scope is a no-op.
func FilterWallet(txs []Transaction, scope Scope) []Transaction {
	if scope == ScopeOverview {
		return txs
	}
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Mode == Mode(scope) {
			out = append(out, tx)
		}
	}
	return out
}

// Balance is the signed total of the given transactions in cents: income
// adds, expense subtracts. The result does not depend on input order.
func Balance(txs []Transaction) Money {
	var cents int64
	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			cents += tx.Amount.Cents
		case TypeExpense:
			cents -= tx.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// GroupByCategory sums amounts of the given type per category. Categories
// appear in the order they are first seen in the input, so a list sorted
// newest-first yields the most recently used categories first.
func GroupByCategory(txs []Transaction, typ TxType) []CategoryAmount {
	idx := make(map[string]int)
	out := []CategoryAmount{}
	for _, tx := range txs {
		if tx.Type != typ {
			continue
		}
		i, ok := idx[tx.Category]
		if !ok {
			i = len(out)
			idx[tx.Category] = i
			out = append(out, CategoryAmount{Name: tx.Category})
		}
		out[i].Amount.Cents += tx.Amount.Cents
	}
	return out
}

// Leaderboard ranks expense categories across all wallets from least to
// most spent. Ties keep their first-seen relative order.
func Leaderboard(txs []Transaction) []CategoryAmount {
	out := GroupByCategory(txs, TypeExpense)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents < out[j].Amount.Cents
	})
	return out
}

// ComputeBudgetSplit derives the spent/remaining pair for the given
// transactions. Remaining never goes negative: overspending a wallet shows
// an exhausted budget, not a negative one.
func ComputeBudgetSplit(txs []Transaction) BudgetSplit {
	var income, expense int64
	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			income += tx.Amount.Cents
		case TypeExpense:
			expense += tx.Amount.Cents
		}
	}
	remaining := income - expense
	if remaining < 0 {
		remaining = 0
	}
	return BudgetSplit{
		Used:      Money{Cents: expense},
		Remaining: Money{Cents: remaining},
		Income:    Money{Cents: income},
	}
}

// UsedPercent is the share of income already spent, rounded to the nearest
// whole percent. With no income there is no meaningful ratio, so it reports
// zero rather than dividing by zero.
func (b BudgetSplit) UsedPercent() int {
	if b.Income.Cents == 0 {
		return 0
	}
	return int((b.Used.Cents*100 + b.Income.Cents/2) / b.Income.Cents)
}

// DailySeries buckets amounts of the given type by UTC calendar date and
// returns the buckets sorted ascending. Entries on the same UTC day collapse
// into a single bucket regardless of their original timezones.
func DailySeries(txs []Transaction, typ TxType) []DailyAmount {
	totals := make(map[string]int64)
	for _, tx := range txs {
		if tx.Type != typ {
			continue
		}
		totals[tx.DateKey()] += tx.Amount.Cents
	}
	out := make([]DailyAmount, 0, len(totals))
	for day, cents := range totals {
		out = append(out, DailyAmount{Date: day, Amount: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ModeSplit totals expenses per wallet. Transactions whose mode is outside
// the known set contribute to neither bucket.
func ModeSplit(txs []Transaction) ModeSplitTotals {
	var split ModeSplitTotals
	for _, tx := range txs {
		if tx.Type != TypeExpense {
			continue
		}
		switch tx.Mode {
		case ModeOnline:
			split.Online.Cents += tx.Amount.Cents
		case ModeCash:
			split.Cash.Cents += tx.Amount.Cents
		}
	}
	return split
}

// Unclassified returns the expenses still carrying the unknown-category
// sentinel, preserving input order.
func Unclassified(txs []Transaction) []Transaction {
	out := []Transaction{}
	for _, tx := range txs {
		if tx.Unclassified() {
			out = append(out, tx)
		}
	}
	return out
}
