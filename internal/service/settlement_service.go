package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
	"github.com/Rubayet19/roommate-expense-splitter/internal/repository/repoargs"
	"github.com/Rubayet19/roommate-expense-splitter/pkg/uow"
)

type SettlementService struct {
	uow            uow.UOW
	settlementRepo SettlementRepository
	userRepo       UserRepository
	roommateRepo   RoommateRepository
}

func NewSettlementService(u uow.UOW) (*SettlementService, error) {
	settlementRepo, settlementRepoErr := uow.GetRepositoryAs[SettlementRepository](
		u, uow.RepositoryName(repoargs.SettlementRepoName))
	if settlementRepoErr != nil {
		return nil, settlementRepoErr //nolint:wrapcheck
	}
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr //nolint:wrapcheck
	}
	roommateRepo, roommateRepoErr := uow.GetRepositoryAs[RoommateRepository](
		u, uow.RepositoryName(repoargs.RoommateRepoName))
	if roommateRepoErr != nil {
		return nil, roommateRepoErr //nolint:wrapcheck
	}
	return &SettlementService{
		uow:            u,
		settlementRepo: settlementRepo,
		userRepo:       userRepo,
		roommateRepo:   roommateRepo,
	}, nil
}

type SettlementArgs struct {
	PayerID    int64
	ReceiverID int64
	Amount     decimal.Decimal
	Date       time.Time
}

// CreateSettlement записывает платеж между двумя сторонами. Правила: стороны
// различны, действующий юзер обязан быть одной из них, обе ссылки разрешаются
// в существующего юзера или roommate'а, пара roommate-roommate запрещена.
func (s *SettlementService) CreateSettlement(
	ctx context.Context,
	actingUserID int64,
	args SettlementArgs,
) (*domain.Settlement, error) {
	if validateErr := s.validateSettlement(ctx, actingUserID, args); validateErr != nil {
		return nil, fmt.Errorf("creating settlement: %w", validateErr)
	}

	settlement, createErr := s.settlementRepo.CreateSettlement(ctx, repoargs.CreateSettlement{
		PayerID:    args.PayerID,
		ReceiverID: args.ReceiverID,
		Amount:     args.Amount,
		Date:       args.Date,
	})
	if createErr != nil {
		return nil, fmt.Errorf("creating settlement: %w", createErr)
	}
	return settlement, nil
}

// UpdateSettlement перезаписывает платеж. Сначала проверяется что исходная
// запись принадлежит действующему юзеру, затем новые значения проходят тот же
// набор проверок, что и при создании.
func (s *SettlementService) UpdateSettlement(
	ctx context.Context,
	actingUserID int64,
	settlementID int64,
	args SettlementArgs,
) (*domain.Settlement, error) {
	existing, findErr := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if findErr != nil {
		return nil, fmt.Errorf("updating settlement %d: %w", settlementID, findErr)
	}
	if !isSettlementParty(existing, actingUserID) {
		return nil, fmt.Errorf("updating settlement %d: %w", settlementID, domain.ErrUnauthorized)
	}

	if validateErr := s.validateSettlement(ctx, actingUserID, args); validateErr != nil {
		return nil, fmt.Errorf("updating settlement %d: %w", settlementID, validateErr)
	}

	settlement, updateErr := s.settlementRepo.UpdateSettlement(ctx, repoargs.UpdateSettlement{
		ID:         settlementID,
		PayerID:    args.PayerID,
		ReceiverID: args.ReceiverID,
		Amount:     args.Amount,
		Date:       args.Date,
	})
	if updateErr != nil {
		return nil, fmt.Errorf("updating settlement %d: %w", settlementID, updateErr)
	}
	return settlement, nil
}

func (s *SettlementService) DeleteSettlement(ctx context.Context, actingUserID, settlementID int64) error {
	existing, findErr := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if findErr != nil {
		return fmt.Errorf("deleting settlement %d: %w", settlementID, findErr)
	}
	if !isSettlementParty(existing, actingUserID) {
		return fmt.Errorf("deleting settlement %d: %w", settlementID, domain.ErrUnauthorized)
	}

	if deleteErr := s.settlementRepo.DeleteSettlement(ctx, settlementID); deleteErr != nil {
		return fmt.Errorf("deleting settlement %d: %w", settlementID, deleteErr)
	}
	return nil
}

func (s *SettlementService) GetSettlement(ctx context.Context, actingUserID, settlementID int64) (*domain.Settlement, error) {
	settlement, findErr := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if findErr != nil {
		return nil, fmt.Errorf("getting settlement %d: %w", settlementID, findErr)
	}
	if !isSettlementParty(settlement, actingUserID) {
		return nil, fmt.Errorf("getting settlement %d: %w", settlementID, domain.ErrUnauthorized)
	}
	return settlement, nil
}

// ListSettlements возвращает платежи с участием юзера, опционально ограниченные
// диапазоном дат (обе границы включительно).
func (s *SettlementService) ListSettlements(
	ctx context.Context,
	actingUserID int64,
	dateRange repoargs.DateRange,
) ([]domain.Settlement, error) {
	var settlements []domain.Settlement
	var listErr error
	if dateRange.Empty() {
		settlements, listErr = s.settlementRepo.FindSettlementsByPartyID(ctx, actingUserID)
	} else {
		settlements, listErr = s.settlementRepo.FindSettlementsByPartyIDAndDateRange(ctx, actingUserID, dateRange)
	}
	if listErr != nil {
		return nil, fmt.Errorf("listing settlements of user %d: %w", actingUserID, listErr)
	}
	return settlements, nil
}

// CalculateTotalSettledAmount возвращает нетто по платежам юзера:
// полученное минус заплаченное.
func (s *SettlementService) CalculateTotalSettledAmount(ctx context.Context, actingUserID int64) (decimal.Decimal, error) {
	received, paid, err := s.settledTotals(ctx, actingUserID)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("calculating settled total of user %d: %w", actingUserID, err)
	}
	return received.Sub(paid), nil
}

// BalanceSummary - сводка по платежам юзера без учета долей расходов.
type BalanceSummary struct {
	TotalOwed    decimal.Decimal
	TotalOwes    decimal.Decimal
	TotalBalance decimal.Decimal
}

func (s *SettlementService) GetBalanceSummary(ctx context.Context, actingUserID int64) (*BalanceSummary, error) {
	received, paid, err := s.settledTotals(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("summarizing settlements of user %d: %w", actingUserID, err)
	}
	return &BalanceSummary{
		TotalOwed:    received,
		TotalOwes:    paid,
		TotalBalance: received.Sub(paid),
	}, nil
}

// GetBalancesWithRoommates возвращает нетто по платежам в разрезе контрагентов:
// заплаченное юзером уходит в минус, полученное - в плюс.
func (s *SettlementService) GetBalancesWithRoommates(
	ctx context.Context,
	actingUserID int64,
) (map[int64]decimal.Decimal, error) {
	settlements, listErr := s.settlementRepo.FindSettlementsByPartyID(ctx, actingUserID)
	if listErr != nil {
		return nil, fmt.Errorf("calculating settlement balances of user %d: %w", actingUserID, listErr)
	}

	balances := make(map[int64]decimal.Decimal)
	for _, settlement := range settlements {
		if settlement.PayerID == actingUserID {
			balances[settlement.ReceiverID] = balances[settlement.ReceiverID].Sub(settlement.Amount)
		} else {
			balances[settlement.PayerID] = balances[settlement.PayerID].Add(settlement.Amount)
		}
	}
	return balances, nil
}

func (s *SettlementService) settledTotals(ctx context.Context, actingUserID int64) (received, paid decimal.Decimal, err error) {
	asReceiver, receiverErr := s.settlementRepo.FindSettlementsByReceiverID(ctx, actingUserID)
	if receiverErr != nil {
		return decimal.Decimal{}, decimal.Decimal{}, receiverErr //nolint:wrapcheck
	}
	for _, settlement := range asReceiver {
		received = received.Add(settlement.Amount)
	}

	asPayer, payerErr := s.settlementRepo.FindSettlementsByPayerID(ctx, actingUserID)
	if payerErr != nil {
		return decimal.Decimal{}, decimal.Decimal{}, payerErr //nolint:wrapcheck
	}
	for _, settlement := range asPayer {
		paid = paid.Add(settlement.Amount)
	}
	return received, paid, nil
}

// validateSettlement проверяет платеж в фиксированном порядке: сумма, различие
// сторон, участие действующего юзера, и только затем разрешение ссылок. Юзер
// вне пары получает domain.ErrUnauthorized еще до обращения к хранилищу, даже
// если одна из сторон не существует.
func (s *SettlementService) validateSettlement(ctx context.Context, actingUserID int64, args SettlementArgs) error {
	if !args.Amount.IsPositive() {
		return &domain.ValidationError{Msg: "settlement amount must be positive"}
	}
	if args.PayerID == args.ReceiverID {
		return &domain.ValidationError{Msg: "payer and receiver must be different parties"}
	}
	if args.PayerID != actingUserID && args.ReceiverID != actingUserID {
		return fmt.Errorf("user %d is not a settlement party: %w", actingUserID, domain.ErrUnauthorized)
	}

	payer, payerErr := s.resolveParty(ctx, args.PayerID)
	if payerErr != nil {
		return payerErr
	}
	receiver, receiverErr := s.resolveParty(ctx, args.ReceiverID)
	if receiverErr != nil {
		return receiverErr
	}

	if !payer.IsUser() && !receiver.IsUser() {
		return &domain.ValidationError{Msg: "settlement between two roommates is not allowed"}
	}
	return nil
}

// resolveParty разрешает сырой id в PartyRef: сначала проверяются юзеры, затем
// roommate'ы.
func (s *SettlementService) resolveParty(ctx context.Context, id int64) (domain.PartyRef, error) {
	isUser, userErr := s.userRepo.ExistsByID(ctx, id)
	if userErr != nil {
		return domain.PartyRef{}, fmt.Errorf("resolving party %d: %w", id, userErr)
	}
	if isUser {
		return domain.PartyRef{Kind: domain.PartyKindUser, ID: id}, nil
	}

	isRoommate, roommateErr := s.roommateRepo.ExistsByID(ctx, id)
	if roommateErr != nil {
		return domain.PartyRef{}, fmt.Errorf("resolving party %d: %w", id, roommateErr)
	}
	if isRoommate {
		return domain.PartyRef{Kind: domain.PartyKindRoommate, ID: id}, nil
	}
	return domain.PartyRef{}, fmt.Errorf("resolving party %d: %w", id, domain.ErrRecordNotFound)
}

func isSettlementParty(settlement *domain.Settlement, userID int64) bool {
	return settlement.PayerID == userID || settlement.ReceiverID == userID
}
