package domain

import (
	"github.com/shopspring/decimal"

	"time"
)

type User struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string
	Password  string
}

// Roommate представляет участника дележки расходов. Не обязательно является
// зарегистрированным юзером: у каждого юзера есть как минимум одна собственная
// self-запись (Self == true), через которую он сам фигурирует в расходах.
type Roommate struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    int64
	Name      string
	Self      bool
}

type Expense struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      int64
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	SplitType   SplitType
	PaidBySelf  bool
}

// ExpenseShare хранит подписанную долю одного участника в одном расходе.
// Знак считается от лица создателя расхода: положительная сумма - создатель
// должен участнику, отрицательная - участник должен создателю.
type ExpenseShare struct {
	ID            int64
	CreatedAt     time.Time
	ExpenseID     int64
	ParticipantID int64
	Amount        decimal.Decimal
}

// Settlement фиксирует реальный платеж между двумя сторонами. PayerID и
// ReceiverID живут в общем пространстве id юзеров и roommate'ов; как минимум
// одна из сторон обязана быть настоящим юзером.
type Settlement struct {
	ID         int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	PayerID    int64
	ReceiverID int64
	Amount     decimal.Decimal
	Date       time.Time
}
