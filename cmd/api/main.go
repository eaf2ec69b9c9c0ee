package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/rvannote/billdash/internal/cache"
	"github.com/rvannote/billdash/internal/config"
	"github.com/rvannote/billdash/internal/customer"
	customerStore "github.com/rvannote/billdash/internal/customer/store"
	"github.com/rvannote/billdash/internal/database"
	billdashHttp "github.com/rvannote/billdash/internal/http"
	customerHandler "github.com/rvannote/billdash/internal/http/customer"
	importHandler "github.com/rvannote/billdash/internal/http/importcsv"
	invoiceHandler "github.com/rvannote/billdash/internal/http/invoice"
	"github.com/rvannote/billdash/internal/importer"
	"github.com/rvannote/billdash/internal/invoice"
	invoiceStore "github.com/rvannote/billdash/internal/invoice/store"
	"github.com/rvannote/billdash/migrations"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(cfg.ConnectionString(), migrations.FS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.PoolLimits{
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		ConnLifetime: cfg.DB.ConnLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	routes := cache.NewRoutes()

	var (
		invoiceService  = invoice.NewService(invoiceStore.New(db), routes)
		customerService = customer.NewService(customerStore.New(db), routes)
		importService   = importer.NewService()
	)

	var (
		invoicesH  = invoiceHandler.NewHandler(invoiceService, routes)
		customersH = customerHandler.NewHandler(customerService, routes)
		importH    = importHandler.NewHandler(importService, customerService)
	)

	router := billdashHttp.New(invoicesH, customersH, importH)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "port", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
