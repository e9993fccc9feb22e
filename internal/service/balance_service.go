package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Rubayet19/roommate-expense-splitter/internal/calculator"
	"github.com/Rubayet19/roommate-expense-splitter/internal/repository/repoargs"
	"github.com/Rubayet19/roommate-expense-splitter/pkg/uow"
)

type BalanceService struct {
	uow            uow.UOW
	shareRepo      ShareRepository
	settlementRepo SettlementRepository
}

func NewBalanceService(u uow.UOW) (*BalanceService, error) {
	shareRepo, shareRepoErr := uow.GetRepositoryAs[ShareRepository](u, uow.RepositoryName(repoargs.ShareRepoName))
	if shareRepoErr != nil {
		return nil, shareRepoErr //nolint:wrapcheck
	}
	settlementRepo, settlementRepoErr := uow.GetRepositoryAs[SettlementRepository](
		u, uow.RepositoryName(repoargs.SettlementRepoName))
	if settlementRepoErr != nil {
		return nil, settlementRepoErr //nolint:wrapcheck
	}
	return &BalanceService{
		uow:            u,
		shareRepo:      shareRepo,
		settlementRepo: settlementRepo,
	}, nil
}

// CalculateBalances сводит доли по расходам юзера и его settlement'ы в карту
// контрагент -> нетто-баланс. Только чтение, повторный вызов на тех же данных
// дает идентичный результат.
func (s *BalanceService) CalculateBalances(ctx context.Context, userID int64) (map[int64]decimal.Decimal, error) {
	shares, sharesErr := s.shareRepo.FindSharesByOwnerID(ctx, userID)
	if sharesErr != nil {
		return nil, fmt.Errorf("calculating balances of user %d: %w", userID, sharesErr)
	}

	settlements, settlementsErr := s.settlementRepo.FindSettlementsByPartyID(ctx, userID)
	if settlementsErr != nil {
		return nil, fmt.Errorf("calculating balances of user %d: %w", userID, settlementsErr)
	}

	return calculator.AggregateBalances(userID, shares, settlements), nil
}
