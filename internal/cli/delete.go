package cli

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"paisa/internal/services"
)

func NewDeleteCmd(svc *services.TransactionService) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction by id",
		Long:  `Delete a transaction. The id may be a unique prefix as shown by "paisactl list".`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(cmd, svc, strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}

			if !yes {
				confirmed, err := confirmDelete(id)
				if err != nil {
					return err
				}
				if !confirmed {
					pterm.Info.Println("Aborted")
					return nil
				}
			}

			if err := svc.Delete(cmd.Context(), id); err != nil {
				return err
			}

			pterm.Success.Printf("Transaction %s deleted\n", shortID(id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// resolveID expands a unique id prefix into the full transaction id.
func resolveID(cmd *cobra.Command, svc *services.TransactionService, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("transaction id is required")
	}

	txs, err := svc.List(cmd.Context())
	if err != nil {
		return "", err
	}

	var matches []string
	for _, tx := range txs {
		if tx.ID == prefix {
			return tx.ID, nil
		}
		if strings.HasPrefix(tx.ID, prefix) {
			matches = append(matches, tx.ID)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		// Let the store produce its not-found error for unknown ids.
		return prefix, nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

func confirmDelete(id string) (bool, error) {
	result, err := pterm.DefaultInteractiveConfirm.
		WithDefaultText(fmt.Sprintf("Delete transaction %s?", shortID(id))).
		Show()
	if err != nil {
		return false, err
	}
	return result, nil
}
