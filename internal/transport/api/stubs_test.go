package api

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
	"github.com/Rubayet19/roommate-expense-splitter/internal/repository/repoargs"
	"github.com/Rubayet19/roommate-expense-splitter/internal/service"
)

// Стабы сервисов с функциональными полями. Поле nil означает, что тест
// данный вызов не ожидает.

type stubUserService struct {
	registerFn func(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	loginFn    func(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
}

func (s *stubUserService) Register(
	ctx context.Context,
	args service.RegisterUserArgs,
) (*domain.User, string, error) {
	if s.registerFn == nil {
		panic("unexpected call to Register")
	}
	return s.registerFn(ctx, args)
}

func (s *stubUserService) Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error) {
	if s.loginFn == nil {
		panic("unexpected call to Login")
	}
	return s.loginFn(ctx, args)
}

type stubRoommateService struct {
	addFn    func(ctx context.Context, actingUserID int64, name string) (*domain.Roommate, error)
	listFn   func(ctx context.Context, actingUserID int64) ([]domain.Roommate, error)
	getFn    func(ctx context.Context, actingUserID, roommateID int64) (*domain.Roommate, error)
	deleteFn func(ctx context.Context, actingUserID, roommateID int64) error
}

func (s *stubRoommateService) AddRoommate(
	ctx context.Context,
	actingUserID int64,
	name string,
) (*domain.Roommate, error) {
	if s.addFn == nil {
		panic("unexpected call to AddRoommate")
	}
	return s.addFn(ctx, actingUserID, name)
}

func (s *stubRoommateService) ListRoommates(ctx context.Context, actingUserID int64) ([]domain.Roommate, error) {
	if s.listFn == nil {
		panic("unexpected call to ListRoommates")
	}
	return s.listFn(ctx, actingUserID)
}

func (s *stubRoommateService) GetRoommate(
	ctx context.Context,
	actingUserID, roommateID int64,
) (*domain.Roommate, error) {
	if s.getFn == nil {
		panic("unexpected call to GetRoommate")
	}
	return s.getFn(ctx, actingUserID, roommateID)
}

func (s *stubRoommateService) DeleteRoommate(ctx context.Context, actingUserID, roommateID int64) error {
	if s.deleteFn == nil {
		panic("unexpected call to DeleteRoommate")
	}
	return s.deleteFn(ctx, actingUserID, roommateID)
}

type stubExpenseService struct {
	createFn func(ctx context.Context, actingUserID int64, args service.ExpenseArgs) (*service.ExpenseWithShares, error)
	updateFn func(
		ctx context.Context,
		actingUserID int64,
		expenseID int64,
		args service.ExpenseArgs,
	) (*service.ExpenseWithShares, error)
	deleteFn func(ctx context.Context, actingUserID, expenseID int64) error
	getFn    func(ctx context.Context, actingUserID, expenseID int64) (*service.ExpenseWithShares, error)
	listFn   func(ctx context.Context, actingUserID int64) ([]service.ExpenseWithShares, error)
}

func (s *stubExpenseService) CreateExpense(
	ctx context.Context,
	actingUserID int64,
	args service.ExpenseArgs,
) (*service.ExpenseWithShares, error) {
	if s.createFn == nil {
		panic("unexpected call to CreateExpense")
	}
	return s.createFn(ctx, actingUserID, args)
}

func (s *stubExpenseService) UpdateExpense(
	ctx context.Context,
	actingUserID int64,
	expenseID int64,
	args service.ExpenseArgs,
) (*service.ExpenseWithShares, error) {
	if s.updateFn == nil {
		panic("unexpected call to UpdateExpense")
	}
	return s.updateFn(ctx, actingUserID, expenseID, args)
}

func (s *stubExpenseService) DeleteExpense(ctx context.Context, actingUserID, expenseID int64) error {
	if s.deleteFn == nil {
		panic("unexpected call to DeleteExpense")
	}
	return s.deleteFn(ctx, actingUserID, expenseID)
}

func (s *stubExpenseService) GetExpense(
	ctx context.Context,
	actingUserID, expenseID int64,
) (*service.ExpenseWithShares, error) {
	if s.getFn == nil {
		panic("unexpected call to GetExpense")
	}
	return s.getFn(ctx, actingUserID, expenseID)
}

func (s *stubExpenseService) ListUserExpenses(
	ctx context.Context,
	actingUserID int64,
) ([]service.ExpenseWithShares, error) {
	if s.listFn == nil {
		panic("unexpected call to ListUserExpenses")
	}
	return s.listFn(ctx, actingUserID)
}

type stubSettlementService struct {
	createFn func(ctx context.Context, actingUserID int64, args service.SettlementArgs) (*domain.Settlement, error)
	updateFn func(
		ctx context.Context,
		actingUserID int64,
		settlementID int64,
		args service.SettlementArgs,
	) (*domain.Settlement, error)
	deleteFn   func(ctx context.Context, actingUserID, settlementID int64) error
	getFn      func(ctx context.Context, actingUserID, settlementID int64) (*domain.Settlement, error)
	listFn     func(ctx context.Context, actingUserID int64, dateRange repoargs.DateRange) ([]domain.Settlement, error)
	totalFn    func(ctx context.Context, actingUserID int64) (decimal.Decimal, error)
	summaryFn  func(ctx context.Context, actingUserID int64) (*service.BalanceSummary, error)
	balancesFn func(ctx context.Context, actingUserID int64) (map[int64]decimal.Decimal, error)
}

func (s *stubSettlementService) CreateSettlement(
	ctx context.Context,
	actingUserID int64,
	args service.SettlementArgs,
) (*domain.Settlement, error) {
	if s.createFn == nil {
		panic("unexpected call to CreateSettlement")
	}
	return s.createFn(ctx, actingUserID, args)
}

func (s *stubSettlementService) UpdateSettlement(
	ctx context.Context,
	actingUserID int64,
	settlementID int64,
	args service.SettlementArgs,
) (*domain.Settlement, error) {
	if s.updateFn == nil {
		panic("unexpected call to UpdateSettlement")
	}
	return s.updateFn(ctx, actingUserID, settlementID, args)
}

func (s *stubSettlementService) DeleteSettlement(ctx context.Context, actingUserID, settlementID int64) error {
	if s.deleteFn == nil {
		panic("unexpected call to DeleteSettlement")
	}
	return s.deleteFn(ctx, actingUserID, settlementID)
}

func (s *stubSettlementService) GetSettlement(
	ctx context.Context,
	actingUserID, settlementID int64,
) (*domain.Settlement, error) {
	if s.getFn == nil {
		panic("unexpected call to GetSettlement")
	}
	return s.getFn(ctx, actingUserID, settlementID)
}

func (s *stubSettlementService) ListSettlements(
	ctx context.Context,
	actingUserID int64,
	dateRange repoargs.DateRange,
) ([]domain.Settlement, error) {
	if s.listFn == nil {
		panic("unexpected call to ListSettlements")
	}
	return s.listFn(ctx, actingUserID, dateRange)
}

func (s *stubSettlementService) CalculateTotalSettledAmount(
	ctx context.Context,
	actingUserID int64,
) (decimal.Decimal, error) {
	if s.totalFn == nil {
		panic("unexpected call to CalculateTotalSettledAmount")
	}
	return s.totalFn(ctx, actingUserID)
}

func (s *stubSettlementService) GetBalanceSummary(
	ctx context.Context,
	actingUserID int64,
) (*service.BalanceSummary, error) {
	if s.summaryFn == nil {
		panic("unexpected call to GetBalanceSummary")
	}
	return s.summaryFn(ctx, actingUserID)
}

func (s *stubSettlementService) GetBalancesWithRoommates(
	ctx context.Context,
	actingUserID int64,
) (map[int64]decimal.Decimal, error) {
	if s.balancesFn == nil {
		panic("unexpected call to GetBalancesWithRoommates")
	}
	return s.balancesFn(ctx, actingUserID)
}

type stubBalanceService struct {
	calculateFn func(ctx context.Context, userID int64) (map[int64]decimal.Decimal, error)
}

func (s *stubBalanceService) CalculateBalances(ctx context.Context, userID int64) (map[int64]decimal.Decimal, error) {
	if s.calculateFn == nil {
		panic("unexpected call to CalculateBalances")
	}
	return s.calculateFn(ctx, userID)
}
