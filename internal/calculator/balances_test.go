package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
)

func TestAggregateBalances_SharesFold(t *testing.T) {
	shares := []domain.ExpenseShare{
		{ExpenseID: 1, ParticipantID: userB, Amount: dec("-33.34")},
		{ExpenseID: 1, ParticipantID: userC, Amount: dec("-33.33")},
		{ExpenseID: 2, ParticipantID: userB, Amount: dec("-10.00")},
		{ExpenseID: 3, ParticipantID: userC, Amount: dec("25.00")},
	}

	balances := AggregateBalances(userA, shares, nil)

	require.Len(t, balances, 2)
	assert.True(t, dec("-43.34").Equal(balances[userB]), "B: %s", balances[userB])
	assert.True(t, dec("-8.33").Equal(balances[userC]), "C: %s", balances[userC])
}

func TestAggregateBalances_SettlementOffsets(t *testing.T) {
	// B должен A 33.33 и гасит часть долга платежом на 20.00
	shares := []domain.ExpenseShare{
		{ExpenseID: 1, ParticipantID: userB, Amount: dec("-33.33")},
	}
	settlements := []domain.Settlement{
		{PayerID: userB, ReceiverID: userA, Amount: dec("20.00")},
	}

	balances := AggregateBalances(userA, shares, settlements)
	assert.True(t, dec("-13.33").Equal(balances[userB]), "B: %s", balances[userB])
}

func TestAggregateBalances_SettlementSymmetry(t *testing.T) {
	// Платеж 20.00 от U1 к U2 уменьшает запись U1 по U2 на 20.00
	// и увеличивает запись U2 по U1 на 20.00.
	settlement := domain.Settlement{PayerID: userA, ReceiverID: userB, Amount: dec("20.00")}

	fromPayer := AggregateBalances(userA, nil, []domain.Settlement{settlement})
	fromReceiver := AggregateBalances(userB, nil, []domain.Settlement{settlement})

	assert.True(t, dec("-20.00").Equal(fromPayer[userB]), "payer view: %s", fromPayer[userB])
	assert.True(t, dec("20.00").Equal(fromReceiver[userA]), "receiver view: %s", fromReceiver[userA])
}

func TestAggregateBalances_ZeroEntriesRetained(t *testing.T) {
	shares := []domain.ExpenseShare{
		{ExpenseID: 1, ParticipantID: userB, Amount: dec("-20.00")},
	}
	settlements := []domain.Settlement{
		{PayerID: userB, ReceiverID: userA, Amount: dec("20.00")},
	}

	balances := AggregateBalances(userA, shares, settlements)

	got, ok := balances[userB]
	require.True(t, ok, "settled counterparty stays in the map")
	assert.True(t, got.IsZero(), "B: %s", got)
}

func TestAggregateBalances_Idempotent(t *testing.T) {
	shares := []domain.ExpenseShare{
		{ExpenseID: 1, ParticipantID: userB, Amount: dec("-33.34")},
		{ExpenseID: 1, ParticipantID: userC, Amount: dec("-33.33")},
		{ExpenseID: 2, ParticipantID: userD, Amount: dec("12.50")},
	}
	settlements := []domain.Settlement{
		{PayerID: userA, ReceiverID: userD, Amount: dec("5.00")},
		{PayerID: userB, ReceiverID: userA, Amount: dec("10.00")},
	}

	first := AggregateBalances(userA, shares, settlements)
	second := AggregateBalances(userA, shares, settlements)

	require.Equal(t, len(first), len(second))
	for id, amount := range first {
		other, ok := second[id]
		require.True(t, ok)
		assert.True(t, amount.Equal(other))
		// побитовая идентичность: совпадает и строковое представление
		assert.Equal(t, amount.String(), other.String())
	}
}
