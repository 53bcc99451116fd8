package cli

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"paisa/internal/core"
	"paisa/internal/services"
)

func NewSummaryCmd(svc *services.TransactionService) *cobra.Command {
	var wallet string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show balance, budget and category leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}

			scope := core.ScopeFor(wallet)
			scoped := core.FilterWallet(txs, scope)

			renderBalance(scoped, wallet)
			renderBudget(core.ComputeBudgetSplit(scoped))
			renderLeaderboard(core.Leaderboard(txs))

			if unclassified := core.Unclassified(txs); len(unclassified) > 0 {
				renderUnclassified(unclassified)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&wallet, "wallet", "w", "", "Scope balance and budget to a wallet: cash or online")

	return cmd
}

func renderBalance(txs []core.Transaction, wallet string) {
	label := "Total balance"
	if wallet != "" {
		label = fmt.Sprintf("%s balance", capitalize(wallet))
	}

	balance := core.Balance(txs)
	text := fmt.Sprintf("%s: %s", label, formatRupees(balance.Cents))
	if balance.Cents < 0 {
		pterm.DefaultBox.Println(pterm.Red(text))
		return
	}
	pterm.DefaultBox.Println(pterm.Green(text))
}

func renderBudget(split core.BudgetSplit) {
	pterm.DefaultSection.Println("Budget")

	pterm.Printf("Income:    %s\n", pterm.Green(formatRupees(split.Income.Cents)))
	pterm.Printf("Used:      %s (%d%%)\n", pterm.Red(formatRupees(split.Used.Cents)), split.UsedPercent())
	pterm.Printf("Remaining: %s\n", formatRupees(split.Remaining.Cents))

	filled := split.UsedPercent() / 5
	if filled > 20 {
		filled = 20
	}
	pterm.Println("[" + pterm.Red(strings.Repeat("█", filled)) + strings.Repeat("░", 20-filled) + "]")
}

func renderLeaderboard(board []core.CategoryAmount) {
	pterm.DefaultSection.Println("Categories, least to most spent")

	if len(board) == 0 {
		pterm.Warning.Println("No expenses yet")
		return
	}

	tableData := pterm.TableData{{"Rank", "Category", "Spent"}}
	for i, row := range board {
		tableData = append(tableData, []string{
			fmt.Sprintf("%d", i+1),
			row.Name,
			formatRupees(row.Amount.Cents),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

func renderUnclassified(txs []core.Transaction) {
	pterm.DefaultSection.Println("Unclassified expenses")
	for _, tx := range txs {
		pterm.Printf("%s  %s  %s\n", shortID(tx.ID), tx.DateKey(), formatRupees(tx.Amount.Cents))
	}
	pterm.Info.Printf("%d expenses still need a category\n", len(txs))
}
