package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"google.golang.org/genai"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/auth"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/config"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/database"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/expense"
	expenseStore "github.com/Old-ch1ld/so-sach-happy-monkey/internal/expense/store"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/export"
	appHttp "github.com/Old-ch1ld/so-sach-happy-monkey/internal/http"
	eventsHandler "github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/events"
	expenseHandler "github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/expense"
	exportHandler "github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/exportcsv"
	importHandler "github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/importcsv"
	inventoryHandler "github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/inventory"
	ledgerHandler "github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/ledger"
	sessionHandler "github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/session"
	suggestHandler "github.com/Old-ch1ld/so-sach-happy-monkey/internal/http/suggest"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/importer"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/inventory"
	inventoryStore "github.com/Old-ch1ld/so-sach-happy-monkey/internal/inventory/store"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/ledger"
	ledgerStore "github.com/Old-ch1ld/so-sach-happy-monkey/internal/ledger/store"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/suggest"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/watch"
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

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	hub := watch.NewHub()

	var (
		authService      = auth.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
		inventoryService = inventory.NewService(inventoryStore.New(db), hub)
		ledgerService    = ledger.NewService(ledgerStore.New(db), inventoryService, hub)
		expenseService   = expense.NewService(expenseStore.New(db), hub)
		exportService    = export.NewService(ledgerService, cfg.Export.BOM)
		suggestService   = suggest.NewService(newGenerator(cfg))
	)

	var (
		sessionH   = sessionHandler.NewHandler(authService)
		ledgerH    = ledgerHandler.NewHandler(ledgerService)
		inventoryH = inventoryHandler.NewHandler(inventoryService)
		expenseH   = expenseHandler.NewHandler(expenseService)
		exportH    = exportHandler.NewHandler(exportService)
		importH    = importHandler.NewHandler(importer.NewParser(), ledgerService)
		suggestH   = suggestHandler.NewHandler(suggestService)
		eventsH    = eventsHandler.NewHandler(hub)
	)

	router := appHttp.New(authService, sessionH, ledgerH, inventoryH, expenseH, exportH, importH, suggestH, eventsH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// newGenerator builds the Gemini backend for unit suggestions. Without an
// API key the feature is disabled rather than fatal.
func newGenerator(cfg *config.Config) suggest.Generator {
	if cfg.Gemini.APIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, unit suggestions disabled")
		return nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: cfg.Gemini.APIKey})
	if err != nil {
		slog.Warn("failed to initialize gemini client, unit suggestions disabled", "error", err)
		return nil
	}

	return suggest.NewGemini(client, cfg.Gemini.Model)
}
