package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/paytrace/internal/config"
	"github.com/MrJamesThe3rd/paytrace/internal/database"
	"github.com/MrJamesThe3rd/paytrace/internal/docstore"
	paytraceHttp "github.com/MrJamesThe3rd/paytrace/internal/http"
	invoiceHandler "github.com/MrJamesThe3rd/paytrace/internal/http/invoice"
	reconHandler "github.com/MrJamesThe3rd/paytrace/internal/http/recon"
	statementHandler "github.com/MrJamesThe3rd/paytrace/internal/http/statement"
	"github.com/MrJamesThe3rd/paytrace/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/paytrace/internal/invoice/store"
	"github.com/MrJamesThe3rd/paytrace/internal/notify"
	"github.com/MrJamesThe3rd/paytrace/internal/recon"
	reconStore "github.com/MrJamesThe3rd/paytrace/internal/recon/store"
	"github.com/MrJamesThe3rd/paytrace/internal/statement"
	statementStore "github.com/MrJamesThe3rd/paytrace/internal/statement/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DB.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	docs, err := newDocStore(cfg)
	if err != nil {
		slog.Error("failed to set up document store", "error", err)
		os.Exit(1)
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.MailConfigured() {
		notifier = notify.NewMailer(cfg.Mail.Domain, cfg.Mail.APIKey, cfg.Mail.Sender, cfg.Mail.Recipient)
	}

	var (
		invoiceService   = invoice.NewService(invoiceStore.New(db))
		statementService = statement.NewService(statementStore.New(db))
		reconService     = recon.NewService(invoiceService, statementService, reconStore.New(db))
	)

	var (
		invoiceH   = invoiceHandler.NewHandler(invoiceService, invoice.NewParser(), docs)
		statementH = statementHandler.NewHandler(statementService, statement.NewParser(), docs)
		reconH     = reconHandler.NewHandler(reconService, notifier)
	)

	router := paytraceHttp.New(invoiceH, statementH, reconH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newDocStore(cfg *config.Config) (docstore.Store, error) {
	switch cfg.Docs.Backend {
	case "gcs":
		return docstore.NewGCS(context.Background(), cfg.Docs.Bucket)
	default:
		return docstore.NewFS(cfg.Docs.Root)
	}
}
