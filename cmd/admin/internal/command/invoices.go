package command

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/levaetras/internal/invoice"
	"github.com/MrJamesThe3rd/levaetras/internal/statement"
)

var markOverdueCmd = &cobra.Command{
	Use:   "mark-overdue",
	Short: "Flag unpaid invoices past their due date",
	RunE: func(cmd *cobra.Command, _ []string) error {
		at, err := dateFlag(cmd, "at")
		if err != nil {
			return err
		}

		if at == nil {
			at = new(time.Now())
		}

		svc, db, err := open(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		marked, err := svc.Invoices.MarkOverdue(cmd.Context(), *at)
		if err != nil {
			return err
		}

		for _, inv := range marked {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s vencida em %s\n", inv.Number, inv.ClientName, inv.DueAt.Format(time.DateOnly))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d faturas marcadas como vencidas\n", len(marked))

		return nil
	},
}

var exportStatementsCmd = &cobra.Command{
	Use:   "export-statements <dir>",
	Short: "Write one statement file per invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := dateFlag(cmd, "from")
		if err != nil {
			return err
		}

		end, err := dateFlag(cmd, "to")
		if err != nil {
			return err
		}

		clientID, _ := cmd.Flags().GetString("client")
		status, _ := cmd.Flags().GetString("status")

		svc, db, err := open(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		items, err := svc.Statements.Export(cmd.Context(), statement.Filter{
			ClientID:  clientID,
			Status:    invoice.Status(status),
			StartDate: start,
			EndDate:   end,
		}, args[0])
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), svc.Statements.Summary(items))

		return nil
	},
}

func dateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s, use YYYY-MM-DD: %w", name, err)
	}

	return &t, nil
}

func init() {
	rootCmd.AddCommand(markOverdueCmd, exportStatementsCmd)

	markOverdueCmd.Flags().String("at", "", "Reference date (YYYY-MM-DD, default: today)")

	exportStatementsCmd.Flags().String("client", "", "Only invoices of this client id")
	exportStatementsCmd.Flags().String("status", "", "Only invoices with this status (Aberta, Fechada, Paga, Finalizada, Vencida)")
	exportStatementsCmd.Flags().String("from", "", "Issued on or after (YYYY-MM-DD)")
	exportStatementsCmd.Flags().String("to", "", "Issued on or before (YYYY-MM-DD)")
}
