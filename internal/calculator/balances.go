package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
)

// AggregateBalances сворачивает доли по расходам юзера и его settlement'ы в
// карту контрагент -> подписанный нетто-баланс. Знак от лица юзера:
// положительное значение - юзер должен контрагенту, отрицательное - контрагент
// должен юзеру. Нулевые записи сохраняются.
//
// Функция чистая и идемпотентная: повторный вызов на неизменных данных дает
// побитово идентичный результат, входные срезы не мутируются.
func AggregateBalances(
	userID int64,
	shares []domain.ExpenseShare,
	settlements []domain.Settlement,
) map[int64]decimal.Decimal {
	balances := make(map[int64]decimal.Decimal)

	for _, share := range shares {
		balances[share.ParticipantID] = balances[share.ParticipantID].Add(share.Amount)
	}

	for _, s := range settlements {
		switch userID {
		case s.PayerID:
			// юзер заплатил - его долг перед получателем уменьшается
			balances[s.ReceiverID] = balances[s.ReceiverID].Sub(s.Amount)
		case s.ReceiverID:
			// юзер получил платеж - долг перед плательщиком растет
			balances[s.PayerID] = balances[s.PayerID].Add(s.Amount)
		}
	}

	return balances
}
