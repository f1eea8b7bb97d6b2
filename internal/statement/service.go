package statement

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=statement
type Repository interface {
	SaveTransactions(ctx context.Context, txs []Transaction) error
	ListTransactions(ctx context.Context) ([]Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save persists extracted transactions. Entries without a transaction id are
// dropped silently: without the key they can be neither deduplicated nor
// stored.
func (s *Service) Save(ctx context.Context, txs []Transaction) (int, error) {
	usable := make([]Transaction, 0, len(txs))

	for _, tx := range txs {
		if tx.TransactionID == "" {
			continue
		}

		usable = append(usable, tx)
	}

	if len(usable) == 0 {
		return 0, nil
	}

	if err := s.repo.SaveTransactions(ctx, usable); err != nil {
		return 0, fmt.Errorf("saving transactions: %w", err)
	}

	return len(usable), nil
}

func (s *Service) List(ctx context.Context) ([]Transaction, error) {
	return s.repo.ListTransactions(ctx)
}
