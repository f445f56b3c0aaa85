package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/levaetras/internal/app"
	"github.com/MrJamesThe3rd/levaetras/internal/auth"
	"github.com/MrJamesThe3rd/levaetras/internal/config"
	"github.com/MrJamesThe3rd/levaetras/internal/database"
	apiHttp "github.com/MrJamesThe3rd/levaetras/internal/http"
	"github.com/MrJamesThe3rd/levaetras/internal/http/importcsv"
	invoiceHandler "github.com/MrJamesThe3rd/levaetras/internal/http/invoice"
	requestHandler "github.com/MrJamesThe3rd/levaetras/internal/http/request"
	statementHandler "github.com/MrJamesThe3rd/levaetras/internal/http/statement"
	txHandler "github.com/MrJamesThe3rd/levaetras/internal/http/transaction"
	"github.com/MrJamesThe3rd/levaetras/internal/invoice"
	kvStore "github.com/MrJamesThe3rd/levaetras/internal/storage/store"
	txStore "github.com/MrJamesThe3rd/levaetras/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	svc := app.NewServices(kvStore.New(db), txStore.New(db), invoice.WithDueDays(cfg.Invoice.DueDays))

	router := apiHttp.New(auth.NewTokens([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL), cfg.Server.CORSOrigins, apiHttp.Handlers{
		Requests:      requestHandler.NewHandler(svc.Requests, svc.Billing, svc.Clients, svc.Couriers),
		Invoices:      invoiceHandler.NewHandler(svc.Invoices),
		Transactions:  txHandler.NewHandler(svc.Transactions, svc.Clients),
		Neighborhoods: importcsv.NewHandler(svc.Importer, svc.Settings),
		Statements:    statementHandler.NewHandler(svc.Statements),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr)

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
