// Package notify delivers assembled audit reports to people.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/MrJamesThe3rd/paytrace/internal/report"
)

const reportSubject = "Automated Invoice Reconciliation Report"

const sendTimeout = 15 * time.Second

type Notifier interface {
	SendReport(ctx context.Context, rep *report.Report) error
}

// Mailer emails reports through Mailgun.
type Mailer struct {
	mg        mailgun.Mailgun
	sender    string
	recipient string
}

func NewMailer(domain, apiKey, sender, recipient string) *Mailer {
	return &Mailer{
		mg:        mailgun.NewMailgun(domain, apiKey),
		sender:    sender,
		recipient: recipient,
	}
}

func (m *Mailer) SendReport(ctx context.Context, rep *report.Report) error {
	body, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	msg := m.mg.NewMessage(m.sender, reportSubject, string(body), m.recipient)

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, id, err := m.mg.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("sending report mail: %w", err)
	}

	slog.Info("report mail sent", "run_id", rep.RunID, "message_id", id)

	return nil
}

// Noop is used when mail is not configured; runs still succeed, reports are
// just not delivered anywhere.
type Noop struct{}

func (Noop) SendReport(_ context.Context, rep *report.Report) error {
	slog.Info("mail not configured, skipping report delivery", "run_id", rep.RunID)
	return nil
}
