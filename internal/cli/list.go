package cli

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"paisa/internal/core"
	"paisa/internal/services"
)

func NewListCmd(svc *services.TransactionService) *cobra.Command {
	var (
		wallet string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}

			txs = core.FilterWallet(txs, core.ScopeFor(wallet))
			if limit > 0 && len(txs) > limit {
				txs = txs[:limit]
			}

			return renderTransactionTable(txs, wallet)
		},
	}

	cmd.Flags().StringVarP(&wallet, "wallet", "w", "", "Filter by wallet: cash or online")
	cmd.Flags().IntVarP(&limit, "limit", "n", 25, "Maximum rows to show (0 for all)")

	return cmd
}

func renderTransactionTable(txs []core.Transaction, wallet string) error {
	if len(txs) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	if wallet != "" {
		pterm.DefaultSection.Printf("Transactions (%s wallet)", wallet)
	} else {
		pterm.DefaultSection.Println("Transactions")
	}

	tableData := pterm.TableData{
		{"ID", "Date", "Type", "Mode", "Category", "Amount", "Remarks"},
	}

	for _, tx := range txs {
		amount := formatRupees(tx.Amount.Cents)
		var coloredType, coloredAmount string
		switch tx.Type {
		case core.TypeExpense:
			coloredType = pterm.Red(string(tx.Type))
			coloredAmount = pterm.Red("-" + amount)
		case core.TypeIncome:
			coloredType = pterm.Green(string(tx.Type))
			coloredAmount = pterm.Green("+" + amount)
		default:
			coloredType = string(tx.Type)
			coloredAmount = amount
		}

		tableData = append(tableData, []string{
			shortID(tx.ID),
			tx.DateKey(),
			coloredType,
			string(tx.Mode),
			tx.Category,
			coloredAmount,
			tx.Remarks,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(txs))
	return nil
}

// shortID keeps tables narrow; full ids are still accepted by delete.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatRupees(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-₹" + s
	}
	return "₹" + s
}
