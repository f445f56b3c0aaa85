package command

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/levaetras/internal/app"
	"github.com/MrJamesThe3rd/levaetras/internal/config"
	"github.com/MrJamesThe3rd/levaetras/internal/database"
	"github.com/MrJamesThe3rd/levaetras/internal/invoice"
	kvStore "github.com/MrJamesThe3rd/levaetras/internal/storage/store"
	txStore "github.com/MrJamesThe3rd/levaetras/internal/transaction/store"
)

var rootCmd = &cobra.Command{
	Use:           "levaetras-admin",
	Short:         "Back-office maintenance tasks",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// open connects to the database and wires the services. The caller closes db.
func open(ctx context.Context) (*app.Services, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, nil, err
	}

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	svc := app.NewServices(kvStore.New(db), txStore.New(db), invoice.WithDueDays(cfg.Invoice.DueDays))

	return svc, db, nil
}
