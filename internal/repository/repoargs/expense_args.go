package repoargs

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
)

type CreateExpense struct {
	UserID      int64
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	SplitType   domain.SplitType
	PaidBySelf  bool
}

type UpdateExpense struct {
	ID          int64
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	SplitType   domain.SplitType
	PaidBySelf  bool
}

type CreateShare struct {
	ExpenseID     int64
	ParticipantID int64
	Amount        decimal.Decimal
}
