package recon_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/paytrace/internal/invoice"
	"github.com/MrJamesThe3rd/paytrace/internal/recon"
	"github.com/MrJamesThe3rd/paytrace/internal/statement"
)

func TestService_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoices := recon.NewMockInvoiceSource(ctrl)
	transactions := recon.NewMockTransactionSource(ctrl)
	repo := recon.NewMockRepository(ctrl)

	invoices.EXPECT().
		List(gomock.Any()).
		Return([]*invoice.Record{inv("INV-1", "Acme", "1000.00")}, nil)

	transactions.EXPECT().
		List(gomock.Any()).
		Return([]statement.Transaction{
			tx("T1", "INV-1", "2023-08-05", "600.00"),
			tx("T2", "INV-1", "2023-08-12", "400.00"),
		}, nil)

	var saved []*recon.Result

	repo.EXPECT().
		SaveRun(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, results []*recon.Result) error {
			saved = results
			return nil
		})

	svc := recon.NewService(invoices, transactions, repo)

	runID, results, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.NotEqual(t, uuid.Nil, runID)
	assert.Equal(t, runID, results[0].RunID)
	assert.Equal(t, recon.VerdictVerified, results[0].Verdict)

	// What was persisted is what was returned.
	assert.Equal(t, results, saved)
}

func TestService_Run_FreshRunIDPerInvocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoices := recon.NewMockInvoiceSource(ctrl)
	transactions := recon.NewMockTransactionSource(ctrl)
	repo := recon.NewMockRepository(ctrl)

	invoices.EXPECT().List(gomock.Any()).Return([]*invoice.Record{inv("INV-1", "Acme", "10.00")}, nil).Times(2)
	transactions.EXPECT().List(gomock.Any()).Return(nil, nil).Times(2)
	repo.EXPECT().SaveRun(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	svc := recon.NewService(invoices, transactions, repo)

	first, _, err := svc.Run(context.Background())
	require.NoError(t, err)

	second, _, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestService_Run_SaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoices := recon.NewMockInvoiceSource(ctrl)
	transactions := recon.NewMockTransactionSource(ctrl)
	repo := recon.NewMockRepository(ctrl)

	invoices.EXPECT().List(gomock.Any()).Return([]*invoice.Record{inv("INV-1", "Acme", "10.00")}, nil)
	transactions.EXPECT().List(gomock.Any()).Return(nil, nil)
	repo.EXPECT().SaveRun(gomock.Any(), gomock.Any()).Return(recon.ErrPersistence)

	svc := recon.NewService(invoices, transactions, repo)

	_, _, err := svc.Run(context.Background())
	require.ErrorIs(t, err, recon.ErrPersistence)
}

func TestService_Run_ReconciliationFailureSkipsSave(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoices := recon.NewMockInvoiceSource(ctrl)
	transactions := recon.NewMockTransactionSource(ctrl)
	repo := recon.NewMockRepository(ctrl)

	// Total missing but a payment matched: nothing must be persisted.
	invoices.EXPECT().List(gomock.Any()).Return([]*invoice.Record{inv("INV-1", "Acme", "")}, nil)
	transactions.EXPECT().List(gomock.Any()).Return([]statement.Transaction{
		tx("T1", "INV-1", "2023-08-05", "50.00"),
	}, nil)

	svc := recon.NewService(invoices, transactions, repo)

	_, _, err := svc.Run(context.Background())
	require.ErrorIs(t, err, recon.ErrMissingTotal)
}

func TestService_Run_SourceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoices := recon.NewMockInvoiceSource(ctrl)
	transactions := recon.NewMockTransactionSource(ctrl)
	repo := recon.NewMockRepository(ctrl)

	invoices.EXPECT().List(gomock.Any()).Return(nil, errors.New("db error"))

	svc := recon.NewService(invoices, transactions, repo)

	_, _, err := svc.Run(context.Background())
	assert.Error(t, err)
}
