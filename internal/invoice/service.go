package invoice

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	SaveInvoice(ctx context.Context, rec *Record) error
	ListInvoices(ctx context.Context) ([]*Record, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save persists an extracted invoice. Records without an invoice number are
// rejected before they reach the store: the number is the primary key.
func (s *Service) Save(ctx context.Context, rec *Record) error {
	if rec.InvoiceNumber == "" {
		return ErrMissingNumber
	}

	if err := s.repo.SaveInvoice(ctx, rec); err != nil {
		return fmt.Errorf("saving invoice %s: %w", rec.InvoiceNumber, err)
	}

	return nil
}

func (s *Service) List(ctx context.Context) ([]*Record, error) {
	return s.repo.ListInvoices(ctx)
}
