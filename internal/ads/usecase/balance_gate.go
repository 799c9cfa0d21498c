package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"adclad/internal/ads/domain/model"
	"adclad/internal/ads/domain/repository"
	authmodel "adclad/internal/auth/domain/model"
	apperrors "adclad/internal/shared/errors"
)

// BalanceGate refuses vendor budgets the vendor's account cannot cover
type BalanceGate struct {
	accounts repository.Store[model.Account]
}

// NewBalanceGate creates a gate reading balances from accounts
func NewBalanceGate(accounts repository.Store[model.Account]) *BalanceGate {
	return &BalanceGate{accounts: accounts}
}

// Check passes admins unconditionally. For anyone else it loads the caller's
// live account and requires balance >= dailyBudget. The account is returned
// so callers can inspect the balance that was checked.
func (g *BalanceGate) Check(ctx context.Context, principal *authmodel.Principal, dailyBudget float64) (*model.Account, error) {
	if principal == nil {
		return nil, apperrors.NewAuthenticationError("Authentication required")
	}
	if principal.IsAdmin() {
		return nil, nil
	}

	account, err := g.accounts.GetOne(ctx, bson.M{
		"owner":     principal.ID,
		"isDeleted": false,
	}, bson.M{"balance": 1})
	if err != nil {
		return nil, err
	}
	if account == nil || account.Balance == nil || *account.Balance < dailyBudget {
		return nil, apperrors.NewInsufficientFundsError()
	}
	return account, nil
}
