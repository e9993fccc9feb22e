package repoargs

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateSettlement struct {
	PayerID    int64
	ReceiverID int64
	Amount     decimal.Decimal
	Date       time.Time
}

type UpdateSettlement struct {
	ID         int64
	PayerID    int64
	ReceiverID int64
	Amount     decimal.Decimal
	Date       time.Time
}

// DateRange ограничивает выборку settlement'ов по полю даты (обе границы
// включительно). Нулевое значение границы означает "без ограничения".
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Empty() bool {
	return r.From.IsZero() && r.To.IsZero()
}
