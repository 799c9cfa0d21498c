package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"adclad/internal/ads/domain/model"
	"adclad/internal/ads/testutil"
	apperrors "adclad/internal/shared/errors"
)

func TestBalanceGate_Check(t *testing.T) {
	ctx := context.Background()
	vendor := testutil.Vendor()
	condition := bson.M{"owner": vendor.ID, "isDeleted": false}
	projection := bson.M{"balance": 1}

	tests := []struct {
		name    string
		account *model.Account
		budget  float64
		wantErr bool
	}{
		{name: "balance above budget", account: testutil.Balance(vendor.ID, 100), budget: 50},
		{name: "balance equal to budget", account: testutil.Balance(vendor.ID, 50), budget: 50},
		{name: "balance below budget", account: testutil.Balance(vendor.ID, 49.99), budget: 50, wantErr: true},
		{name: "no account", account: nil, budget: 1, wantErr: true},
		{name: "balance unset", account: &model.Account{}, budget: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &testutil.MockStore[model.Account]{}
			if tt.account == nil {
				accounts.On("GetOne", ctx, condition, projection).Return(nil, nil)
			} else {
				accounts.On("GetOne", ctx, condition, projection).Return(tt.account, nil)
			}

			account, err := NewBalanceGate(accounts).Check(ctx, vendor, tt.budget)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsInsufficientFunds(err))
				assert.Equal(t, 406, apperrors.HTTPStatus(err))
				assert.Nil(t, account)
			} else {
				require.NoError(t, err)
				assert.Same(t, tt.account, account)
			}
			accounts.AssertExpectations(t)
		})
	}
}

func TestBalanceGate_AdminBypasses(t *testing.T) {
	accounts := &testutil.MockStore[model.Account]{}
	account, err := NewBalanceGate(accounts).Check(context.Background(), testutil.Admin(), 1e9)
	require.NoError(t, err)
	assert.Nil(t, account)
	accounts.AssertNotCalled(t, "GetOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestBalanceGate_StoreErrorPassesThrough(t *testing.T) {
	accounts := &testutil.MockStore[model.Account]{}
	storeErr := errors.New("server selection timeout")
	accounts.On("GetOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, storeErr)

	_, err := NewBalanceGate(accounts).Check(context.Background(), testutil.Vendor(), 10)
	assert.ErrorIs(t, err, storeErr)
	assert.False(t, apperrors.IsInsufficientFunds(err))
}

func TestBalanceGate_RequiresPrincipal(t *testing.T) {
	_, err := NewBalanceGate(&testutil.MockStore[model.Account]{}).Check(context.Background(), nil, 10)
	assert.True(t, apperrors.IsAuthentication(err))
}
