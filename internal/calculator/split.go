// Package calculator содержит чистую расчетную часть: распределение долей
// расхода между участниками и свертку баланса по контрагентам. Никаких
// побочных эффектов и обращений к хранилищу здесь нет.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
)

const moneyScale = 2

var centStep = decimal.New(1, -moneyScale) // 0.01

// Contribution - введенное клиентом значение для одного участника. Для EQUAL
// это сумма, которую участник фактически заплатил, для CUSTOM - его доля.
// Порядок среза значим: лишние центы при делении достаются первым элементам.
type Contribution struct {
	ParticipantID int64
	Amount        decimal.Decimal
}

// Share - рассчитанная подписанная доля участника. Знак от лица создателя
// расхода: положительная сумма - создатель должен участнику, отрицательная -
// участник должен создателю.
type Share struct {
	ParticipantID int64
	Amount        decimal.Decimal
}

// ComputeShares превращает итоговую сумму расхода и введенные клиентом данные
// в набор подписанных долей. Инвариант: сумма contributions обязана сходиться
// с total с точностью до цента, иначе вернется *domain.SplitMismatchError и
// операция целиком отменяется.
func ComputeShares(
	total decimal.Decimal,
	splitType domain.SplitType,
	contributions []Contribution,
	paidBy []int64,
	actingUserID int64,
) ([]Share, error) {
	if len(contributions) == 0 {
		return nil, domain.ErrNoParticipants
	}
	if len(paidBy) == 0 {
		return nil, &domain.ValidationError{Msg: "paid_by must contain at least one participant"}
	}
	if !total.IsPositive() {
		return nil, &domain.ValidationError{Msg: "expense amount must be positive"}
	}

	var contributed decimal.Decimal
	for _, c := range contributions {
		contributed = contributed.Add(c.Amount)
	}
	if !contributed.Equal(total) {
		return nil, &domain.SplitMismatchError{Expected: total.StringFixed(moneyScale), Got: contributed.StringFixed(moneyScale)}
	}

	switch splitType {
	case domain.SplitTypeEqual:
		return equalShares(total, contributions, paidBy, actingUserID)
	case domain.SplitTypeCustom:
		return customShares(contributions, paidBy, actingUserID)
	default:
		return nil, &domain.ValidationError{Msg: "unknown split type " + string(splitType)}
	}
}

// equalShares делит total поровну: базовая доля округляется вниз до цента,
// остаток раздается по одному центу участникам в порядке следования среза.
// Сумма получившихся долей сходится с total копейка в копейку.
func equalShares(
	total decimal.Decimal,
	contributions []Contribution,
	paidBy []int64,
	actingUserID int64,
) ([]Share, error) {
	n := int64(len(contributions))
	equalShare := total.Div(decimal.NewFromInt(n)).RoundFloor(moneyScale)
	remainder := total.Sub(equalShare.Mul(decimal.NewFromInt(n)))
	extraCents := remainder.Div(centStep).IntPart()

	precise := make(map[int64]decimal.Decimal, n)
	var distributed decimal.Decimal
	for i, c := range contributions {
		share := equalShare
		if int64(i) < extraCents {
			share = share.Add(centStep)
		}
		precise[c.ParticipantID] = share
		distributed = distributed.Add(share)
	}
	// по построению не должно расходиться, но инвариант проверяем всегда
	if !distributed.Equal(total) {
		return nil, &domain.SplitMismatchError{Expected: total.StringFixed(moneyScale), Got: distributed.StringFixed(moneyScale)}
	}

	actingShould, ok := precise[actingUserID]
	if !ok {
		return nil, &domain.ValidationError{Msg: "acting user must be among the expense participants"}
	}
	actingPaid := paidAmount(contributions, actingUserID)

	if len(paidBy) > 1 {
		return multiPayerShares(contributions, precise, actingPaid, actingShould, actingUserID), nil
	}
	return singlePayerShares(contributions, precise, paidBy[0], actingUserID)
}

// singlePayerShares: платил ровно один участник. Если платил сам действующий
// юзер, каждый остальной участник должен ему свою долю; если платил кто-то
// другой, фиксируется только долг действующего юзера перед плательщиком.
func singlePayerShares(
	contributions []Contribution,
	precise map[int64]decimal.Decimal,
	payerID int64,
	actingUserID int64,
) ([]Share, error) {
	if payerID == actingUserID {
		shares := make([]Share, 0, len(contributions)-1)
		for _, c := range contributions {
			if c.ParticipantID == actingUserID {
				continue
			}
			shares = append(shares, Share{ParticipantID: c.ParticipantID, Amount: precise[c.ParticipantID].Neg()})
		}
		return shares, nil
	}

	if _, ok := precise[payerID]; !ok {
		return nil, &domain.ValidationError{Msg: "payer must be among the expense participants"}
	}
	return []Share{{ParticipantID: payerID, Amount: precise[actingUserID]}}, nil
}

// multiPayerShares: платили несколько участников. Баланс действующего юзера
// сводится попарно с каждым остальным: сравниваются переплата/недоплата обеих
// сторон, результат ограничивается min/max, чтобы никто не был должен больше
// собственной недоплаты и никому не приписали больше собственной переплаты.
func multiPayerShares(
	contributions []Contribution,
	precise map[int64]decimal.Decimal,
	actingPaid, actingShould decimal.Decimal,
	actingUserID int64,
) []Share {
	var shares []Share
	for _, c := range contributions {
		if c.ParticipantID == actingUserID {
			continue
		}
		pPaid := c.Amount
		pShould := precise[c.ParticipantID]

		var actingOwes decimal.Decimal
		switch {
		case actingPaid.LessThan(actingShould):
			actingUnder := actingShould.Sub(actingPaid)
			pOver := pPaid.Sub(pShould)
			actingOwes = decimal.Min(pOver, actingUnder)
		case pPaid.LessThan(pShould):
			pUnder := pShould.Sub(pPaid)
			actingOver := actingPaid.Sub(actingShould)
			actingOwes = decimal.Max(pUnder.Neg(), actingOver.Neg())
		}

		if actingOwes.IsZero() {
			continue
		}
		shares = append(shares, Share{ParticipantID: c.ParticipantID, Amount: actingOwes})
	}
	return shares
}

// customShares: contributions трактуются как доли напрямую, без пересчета.
// Точка отсчета - запись действующего юзера.
func customShares(contributions []Contribution, paidBy []int64, actingUserID int64) ([]Share, error) {
	payerID := paidBy[0]

	if payerID == actingUserID {
		shares := make([]Share, 0, len(contributions)-1)
		for _, c := range contributions {
			if c.ParticipantID == actingUserID {
				continue
			}
			shares = append(shares, Share{ParticipantID: c.ParticipantID, Amount: c.Amount.Neg()})
		}
		return shares, nil
	}

	actingShare, found := lookupContribution(contributions, actingUserID)
	if !found {
		return nil, &domain.ValidationError{Msg: "acting user must be among the expense participants"}
	}
	return []Share{{ParticipantID: payerID, Amount: actingShare}}, nil
}

func paidAmount(contributions []Contribution, participantID int64) decimal.Decimal {
	amount, _ := lookupContribution(contributions, participantID)
	return amount
}

func lookupContribution(contributions []Contribution, participantID int64) (decimal.Decimal, bool) {
	for _, c := range contributions {
		if c.ParticipantID == participantID {
			return c.Amount, true
		}
	}
	return decimal.Decimal{}, false
}
