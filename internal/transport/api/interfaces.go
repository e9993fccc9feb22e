package api

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
	"github.com/Rubayet19/roommate-expense-splitter/internal/repository/repoargs"
	"github.com/Rubayet19/roommate-expense-splitter/internal/service"
)

// UserServicer интерфейс исключительно для подмены в тестах.
type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
}

type RoommateServicer interface {
	AddRoommate(ctx context.Context, actingUserID int64, name string) (*domain.Roommate, error)
	ListRoommates(ctx context.Context, actingUserID int64) ([]domain.Roommate, error)
	GetRoommate(ctx context.Context, actingUserID, roommateID int64) (*domain.Roommate, error)
	DeleteRoommate(ctx context.Context, actingUserID, roommateID int64) error
}

type ExpenseServicer interface {
	CreateExpense(ctx context.Context, actingUserID int64, args service.ExpenseArgs) (*service.ExpenseWithShares, error)
	UpdateExpense(
		ctx context.Context,
		actingUserID int64,
		expenseID int64,
		args service.ExpenseArgs,
	) (*service.ExpenseWithShares, error)
	DeleteExpense(ctx context.Context, actingUserID, expenseID int64) error
	GetExpense(ctx context.Context, actingUserID, expenseID int64) (*service.ExpenseWithShares, error)
	ListUserExpenses(ctx context.Context, actingUserID int64) ([]service.ExpenseWithShares, error)
}

type SettlementServicer interface {
	CreateSettlement(ctx context.Context, actingUserID int64, args service.SettlementArgs) (*domain.Settlement, error)
	UpdateSettlement(
		ctx context.Context,
		actingUserID int64,
		settlementID int64,
		args service.SettlementArgs,
	) (*domain.Settlement, error)
	DeleteSettlement(ctx context.Context, actingUserID, settlementID int64) error
	GetSettlement(ctx context.Context, actingUserID, settlementID int64) (*domain.Settlement, error)
	ListSettlements(
		ctx context.Context,
		actingUserID int64,
		dateRange repoargs.DateRange,
	) ([]domain.Settlement, error)
	CalculateTotalSettledAmount(ctx context.Context, actingUserID int64) (decimal.Decimal, error)
	GetBalanceSummary(ctx context.Context, actingUserID int64) (*service.BalanceSummary, error)
	GetBalancesWithRoommates(ctx context.Context, actingUserID int64) (map[int64]decimal.Decimal, error)
}

type BalanceServicer interface {
	CalculateBalances(ctx context.Context, userID int64) (map[int64]decimal.Decimal, error)
}
