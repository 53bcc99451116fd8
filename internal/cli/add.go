package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"paisa/internal/core"
	"paisa/internal/services"
)

type addFlags struct {
	Amount   string
	Category string
	Mode     string
	Type     string
	Remarks  string
	Date     string
}

func NewAddCmd(svc *services.TransactionService) *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new transaction",
		Long: `Add a transaction to the ledger.

Examples:
# Interactive mode
paisactl add

# Quick mode with flags
paisactl add --amount 150 --category Travel --mode cash --type expense

# Backdated income
paisactl add --amount 5000 --category Allowance --mode online --type income --date 2026-08-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			hasFlags := cmd.Flags().Changed("amount") || cmd.Flags().Changed("category")
			if hasFlags {
				return runAddFlags(cmd.Context(), svc, flags)
			}
			return runAddInteractive(cmd.Context(), svc)
		},
	}

	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "Transaction amount (e.g., 150 or 150.50)")
	cmd.Flags().StringVarP(&flags.Category, "category", "g", "", "Category name")
	cmd.Flags().StringVarP(&flags.Mode, "mode", "m", "cash", "Wallet: cash or online")
	cmd.Flags().StringVarP(&flags.Type, "type", "t", "expense", "Transaction type: expense or income")
	cmd.Flags().StringVarP(&flags.Remarks, "remarks", "r", "", "Free-form remarks")
	cmd.Flags().StringVar(&flags.Date, "date", "", "Transaction date (YYYY-MM-DD), default is today")

	return cmd
}

func runAddFlags(ctx context.Context, svc *services.TransactionService, flags *addFlags) error {
	if flags.Amount == "" || flags.Category == "" {
		return fmt.Errorf("when using flags, --amount and --category are both required")
	}

	cents, err := core.ParseDecimalToCents(flags.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	createdAt := time.Now().UTC()
	if flags.Date != "" {
		t, err := time.Parse("2006-01-02", flags.Date)
		if err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
		}
		createdAt = t
	}

	tx := core.Transaction{
		Amount:    core.Money{Cents: cents},
		Category:  strings.TrimSpace(flags.Category),
		Mode:      core.Mode(strings.ToLower(flags.Mode)),
		Type:      core.TxType(strings.ToLower(flags.Type)),
		Remarks:   strings.TrimSpace(flags.Remarks),
		CreatedAt: createdAt,
	}

	return saveTransaction(ctx, svc, tx)
}

func runAddInteractive(ctx context.Context, svc *services.TransactionService) error {
	var (
		txType    = string(core.TypeExpense)
		mode      = string(core.ModeCash)
		amountStr string
		category  string
		dateStr   = time.Now().UTC().Format("2006-01-02")
		remarks   string
	)

	categoryOptions := make([]huh.Option[string], 0, len(core.Categories))
	for _, c := range core.Categories {
		categoryOptions = append(categoryOptions, huh.NewOption(c, c))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type:").
				Options(
					huh.NewOption("Expense", string(core.TypeExpense)),
					huh.NewOption("Income", string(core.TypeIncome)),
				).
				Value(&txType),
			huh.NewSelect[string]().
				Title("Wallet:").
				Options(
					huh.NewOption("Cash", string(core.ModeCash)),
					huh.NewOption("Online", string(core.ModeOnline)),
				).
				Value(&mode),
			huh.NewInput().
				Title("Amount:").
				Description("No currency symbol (e.g. 150 or 150.50)").
				Validate(func(s string) error {
					_, err := core.ParseDecimalToCents(s)
					return err
				}).
				Value(&amountStr),
			huh.NewSelect[string]().
				Title("Category:").
				Options(categoryOptions...).
				Height(10).
				Value(&category),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Date:").
				Description("YYYY-MM-DD, enter keeps today").
				Placeholder(dateStr).
				Value(&dateStr),
			huh.NewInput().
				Title("Remarks (optional):").
				Value(&remarks),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("input cancelled: %w", err)
	}

	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		return fmt.Errorf("invalid amount format: %w", err)
	}

	createdAt, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}

	tx := core.Transaction{
		Amount:    core.Money{Cents: cents},
		Category:  category,
		Mode:      core.Mode(mode),
		Type:      core.TxType(txType),
		Remarks:   strings.TrimSpace(remarks),
		CreatedAt: createdAt,
	}

	return saveTransaction(ctx, svc, tx)
}

func saveTransaction(ctx context.Context, svc *services.TransactionService, tx core.Transaction) error {
	id, err := svc.Create(ctx, tx)
	if err != nil {
		return err
	}

	pterm.Success.Printf("Transaction created (ID: %s)\n", id)
	pterm.Info.Printf("%s %s of %s under %s\n",
		tx.Mode, tx.Type, formatRupees(tx.Amount.Cents), tx.Category)
	return nil
}
