package service

import (
	"context"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
	"github.com/Rubayet19/roommate-expense-splitter/internal/repository/repoargs"
)

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type UserRepository interface {
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

type RoommateRepository interface {
	CreateRoommate(ctx context.Context, args repoargs.CreateRoommate) (*domain.Roommate, error)
	FindRoommateByID(ctx context.Context, id int64) (*domain.Roommate, error)
	FindRoommatesByUserID(ctx context.Context, userID int64) ([]domain.Roommate, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteRoommate(ctx context.Context, id int64) error
}

type ExpenseRepository interface {
	CreateExpense(ctx context.Context, args repoargs.CreateExpense) (*domain.Expense, error)
	FindExpenseByID(ctx context.Context, id int64) (*domain.Expense, error)
	FindExpensesByUserID(ctx context.Context, userID int64) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, args repoargs.UpdateExpense) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
}

type ShareRepository interface {
	CreateShare(ctx context.Context, args repoargs.CreateShare) (*domain.ExpenseShare, error)
	FindSharesByExpenseID(ctx context.Context, expenseID int64) ([]domain.ExpenseShare, error)
	FindSharesByParticipantID(ctx context.Context, participantID int64) ([]domain.ExpenseShare, error)
	FindSharesByOwnerID(ctx context.Context, userID int64) ([]domain.ExpenseShare, error)
	DeleteSharesByExpenseID(ctx context.Context, expenseID int64) error
	DeleteSharesByParticipantID(ctx context.Context, participantID int64) error
	CountSharesByExpenseID(ctx context.Context, expenseID int64) (int64, error)
}

type SettlementRepository interface {
	CreateSettlement(ctx context.Context, args repoargs.CreateSettlement) (*domain.Settlement, error)
	FindSettlementByID(ctx context.Context, id int64) (*domain.Settlement, error)
	FindSettlementsByPartyID(ctx context.Context, partyID int64) ([]domain.Settlement, error)
	FindSettlementsByPayerID(ctx context.Context, payerID int64) ([]domain.Settlement, error)
	FindSettlementsByReceiverID(ctx context.Context, receiverID int64) ([]domain.Settlement, error)
	FindSettlementsByPartyIDAndDateRange(
		ctx context.Context,
		partyID int64,
		dateRange repoargs.DateRange,
	) ([]domain.Settlement, error)
	UpdateSettlement(ctx context.Context, args repoargs.UpdateSettlement) (*domain.Settlement, error)
	DeleteSettlement(ctx context.Context, id int64) error
	DeleteSettlementsByPartyID(ctx context.Context, partyID int64) error
}
