package recon

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/paytrace/internal/invoice"
	"github.com/MrJamesThe3rd/paytrace/internal/statement"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=recon
type InvoiceSource interface {
	List(ctx context.Context) ([]*invoice.Record, error)
}

type TransactionSource interface {
	List(ctx context.Context) ([]statement.Transaction, error)
}

type Repository interface {
	SaveRun(ctx context.Context, results []*Result) error
	ListRunIDs(ctx context.Context) ([]uuid.UUID, error)
	ListResults(ctx context.Context, runID uuid.UUID) ([]*Result, error)
}

type Service struct {
	invoices     InvoiceSource
	transactions TransactionSource
	repo         Repository
}

func NewService(invoices InvoiceSource, transactions TransactionSource, repo Repository) *Service {
	return &Service{
		invoices:     invoices,
		transactions: transactions,
		repo:         repo,
	}
}

// Run reconciles the current invoice and transaction snapshots under a fresh
// run id and persists all results as one atomic unit. On any error nothing
// is persisted for the run.
func (s *Service) Run(ctx context.Context) (uuid.UUID, []*Result, error) {
	invs, err := s.invoices.List(ctx)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("loading invoices: %w", err)
	}

	txs, err := s.transactions.List(ctx)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("loading transactions: %w", err)
	}

	runID := uuid.New()

	results, err := Reconcile(invs, txs, runID)
	if err != nil {
		return uuid.Nil, nil, err
	}

	if err := s.repo.SaveRun(ctx, results); err != nil {
		return uuid.Nil, nil, fmt.Errorf("saving run %s: %w", runID, err)
	}

	return runID, results, nil
}

func (s *Service) RunIDs(ctx context.Context) ([]uuid.UUID, error) {
	return s.repo.ListRunIDs(ctx)
}

// Results returns a past run's results in the order they were persisted.
// An unknown run id yields an empty slice, not an error.
func (s *Service) Results(ctx context.Context, runID uuid.UUID) ([]*Result, error) {
	return s.repo.ListResults(ctx, runID)
}
