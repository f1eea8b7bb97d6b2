package statement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/paytrace/internal/statement"
)

func TestService_Save(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := statement.NewMockRepository(ctrl)
	repo.EXPECT().
		SaveTransactions(gomock.Any(), gomock.Len(2)).
		Return(nil)

	svc := statement.NewService(repo)

	n, err := svc.Save(context.Background(), []statement.Transaction{
		{TransactionID: "T1", InvoiceNumber: "INV-1"},
		{TransactionID: "T2", InvoiceNumber: "INV-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestService_Save_DropsEntriesWithoutID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var saved []statement.Transaction

	repo := statement.NewMockRepository(ctrl)
	repo.EXPECT().
		SaveTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []statement.Transaction) error {
			saved = txs
			return nil
		})

	svc := statement.NewService(repo)

	n, err := svc.Save(context.Background(), []statement.Transaction{
		{TransactionID: "T1"},
		{InvoiceNumber: "INV-2"},
		{TransactionID: "T3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, saved, 2)
	assert.Equal(t, "T1", saved[0].TransactionID)
	assert.Equal(t, "T3", saved[1].TransactionID)
}

func TestService_Save_NothingUsable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nothing to persist, so the repository is never called.
	repo := statement.NewMockRepository(ctrl)

	svc := statement.NewService(repo)

	n, err := svc.Save(context.Background(), []statement.Transaction{{InvoiceNumber: "INV-1"}})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestService_Save_RepositoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := statement.NewMockRepository(ctrl)
	repo.EXPECT().SaveTransactions(gomock.Any(), gomock.Any()).Return(errors.New("locked"))

	svc := statement.NewService(repo)

	_, err := svc.Save(context.Background(), []statement.Transaction{{TransactionID: "T1"}})
	assert.Error(t, err)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	want := []statement.Transaction{{TransactionID: "T1"}}

	repo := statement.NewMockRepository(ctrl)
	repo.EXPECT().ListTransactions(gomock.Any()).Return(want, nil)

	svc := statement.NewService(repo)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
