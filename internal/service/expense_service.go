package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Rubayet19/roommate-expense-splitter/internal/calculator"
	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
	"github.com/Rubayet19/roommate-expense-splitter/internal/repository/repoargs"
	"github.com/Rubayet19/roommate-expense-splitter/pkg/uow"
)

type ExpenseService struct {
	uow         uow.UOW
	expenseRepo ExpenseRepository
	shareRepo   ShareRepository
	log         *logrus.Entry
}

func NewExpenseService(u uow.UOW, log *logrus.Entry) (*ExpenseService, error) {
	expenseRepo, expenseRepoErr := uow.GetRepositoryAs[ExpenseRepository](u, uow.RepositoryName(repoargs.ExpenseRepoName))
	if expenseRepoErr != nil {
		return nil, expenseRepoErr //nolint:wrapcheck
	}
	shareRepo, shareRepoErr := uow.GetRepositoryAs[ShareRepository](u, uow.RepositoryName(repoargs.ShareRepoName))
	if shareRepoErr != nil {
		return nil, shareRepoErr //nolint:wrapcheck
	}
	return &ExpenseService{
		uow:         u,
		expenseRepo: expenseRepo,
		shareRepo:   shareRepo,
		log:         log,
	}, nil
}

// ExpenseArgs - данные расхода, как их прислал клиент. Contributions идут в
// порядке ввода: при EQUAL-делении лишние центы достаются первым участникам.
type ExpenseArgs struct {
	Description   string
	Amount        decimal.Decimal
	Date          time.Time
	SplitType     domain.SplitType
	Contributions []calculator.Contribution
	PaidBy        []int64
}

type ExpenseWithShares struct {
	Expense domain.Expense
	Shares  []domain.ExpenseShare
}

// CreateExpense создает расход и его доли в одной транзакции. Каждый id
// участника обязан быть самим действующим юзером либо его roommate'ом, иначе
// операция отменяется с domain.ErrRecordNotFound. Любая ошибка расчета долей
// откатывает и заголовок расхода.
func (s *ExpenseService) CreateExpense(
	ctx context.Context,
	actingUserID int64,
	args ExpenseArgs,
) (*ExpenseWithShares, error) {
	var result *ExpenseWithShares
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		expenseRepo, roommateRepo, shareRepo, reposErr := expenseTxRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		if resolveErr := resolveParticipants(c, roommateRepo, actingUserID, args); resolveErr != nil {
			return resolveErr
		}

		shares, sharesErr := calculator.ComputeShares(
			args.Amount, args.SplitType, args.Contributions, args.PaidBy, actingUserID)
		if sharesErr != nil {
			return sharesErr //nolint:wrapcheck
		}

		expense, expenseErr := expenseRepo.CreateExpense(c, repoargs.CreateExpense{
			UserID:      actingUserID,
			Description: args.Description,
			Amount:      args.Amount,
			Date:        args.Date,
			SplitType:   args.SplitType,
			PaidBySelf:  paidBySelf(args.PaidBy, actingUserID),
		})
		if expenseErr != nil {
			return expenseErr //nolint:wrapcheck
		}

		stored, insertErr := s.insertShares(c, roommateRepo, shareRepo, expense.ID, actingUserID, shares)
		if insertErr != nil {
			return insertErr
		}

		result = &ExpenseWithShares{Expense: *expense, Shares: stored}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("creating expense: %w", txErr)
	}
	return result, nil
}

// UpdateExpense переписывает расход целиком: заголовок перезаписывается, все
// старые доли удаляются и пересчитываются заново по присланному набору
// участников. Менять чужой расход нельзя.
func (s *ExpenseService) UpdateExpense(
	ctx context.Context,
	actingUserID int64,
	expenseID int64,
	args ExpenseArgs,
) (*ExpenseWithShares, error) {
	var result *ExpenseWithShares
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		expenseRepo, roommateRepo, shareRepo, reposErr := expenseTxRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		existing, findErr := expenseRepo.FindExpenseByID(c, expenseID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if existing.UserID != actingUserID {
			return fmt.Errorf("expense %d does not belong to user %d: %w",
				expenseID, actingUserID, domain.ErrUnauthorized)
		}

		if resolveErr := resolveParticipants(c, roommateRepo, actingUserID, args); resolveErr != nil {
			return resolveErr
		}

		shares, sharesErr := calculator.ComputeShares(
			args.Amount, args.SplitType, args.Contributions, args.PaidBy, actingUserID)
		if sharesErr != nil {
			return sharesErr //nolint:wrapcheck
		}

		expense, updateErr := expenseRepo.UpdateExpense(c, repoargs.UpdateExpense{
			ID:          expenseID,
			Description: args.Description,
			Amount:      args.Amount,
			Date:        args.Date,
			SplitType:   args.SplitType,
			PaidBySelf:  paidBySelf(args.PaidBy, actingUserID),
		})
		if updateErr != nil {
			return updateErr //nolint:wrapcheck
		}

		if deleteErr := shareRepo.DeleteSharesByExpenseID(c, expenseID); deleteErr != nil {
			return deleteErr //nolint:wrapcheck
		}
		stored, insertErr := s.insertShares(c, roommateRepo, shareRepo, expenseID, actingUserID, shares)
		if insertErr != nil {
			return insertErr
		}

		result = &ExpenseWithShares{Expense: *expense, Shares: stored}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("updating expense %d: %w", expenseID, txErr)
	}
	return result, nil
}

// DeleteExpense удаляет расход вместе с долями в одной транзакции.
func (s *ExpenseService) DeleteExpense(ctx context.Context, actingUserID, expenseID int64) error {
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		expenseRepo, _, shareRepo, reposErr := expenseTxRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		existing, findErr := expenseRepo.FindExpenseByID(c, expenseID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if existing.UserID != actingUserID {
			return fmt.Errorf("expense %d does not belong to user %d: %w",
				expenseID, actingUserID, domain.ErrUnauthorized)
		}

		if deleteErr := shareRepo.DeleteSharesByExpenseID(c, expenseID); deleteErr != nil {
			return deleteErr //nolint:wrapcheck
		}
		return expenseRepo.DeleteExpense(c, expenseID) //nolint:wrapcheck
	})
	if txErr != nil {
		return fmt.Errorf("deleting expense %d: %w", expenseID, txErr)
	}
	return nil
}

// GetExpense возвращает расход с долями. Чужие расходы не видны: для них
// возвращается domain.ErrRecordNotFound.
func (s *ExpenseService) GetExpense(ctx context.Context, actingUserID, expenseID int64) (*ExpenseWithShares, error) {
	expense, findErr := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if findErr != nil {
		return nil, fmt.Errorf("getting expense %d: %w", expenseID, findErr)
	}
	if expense.UserID != actingUserID {
		return nil, fmt.Errorf("getting expense %d: %w", expenseID, domain.ErrRecordNotFound)
	}

	shares, sharesErr := s.shareRepo.FindSharesByExpenseID(ctx, expenseID)
	if sharesErr != nil {
		return nil, fmt.Errorf("getting expense %d: %w", expenseID, sharesErr)
	}
	return &ExpenseWithShares{Expense: *expense, Shares: shares}, nil
}

// ListUserExpenses возвращает расходы юзера с долями, новые первыми.
func (s *ExpenseService) ListUserExpenses(ctx context.Context, actingUserID int64) ([]ExpenseWithShares, error) {
	expenses, expensesErr := s.expenseRepo.FindExpensesByUserID(ctx, actingUserID)
	if expensesErr != nil {
		return nil, fmt.Errorf("listing expenses of user %d: %w", actingUserID, expensesErr)
	}

	shares, sharesErr := s.shareRepo.FindSharesByOwnerID(ctx, actingUserID)
	if sharesErr != nil {
		return nil, fmt.Errorf("listing expenses of user %d: %w", actingUserID, sharesErr)
	}
	byExpense := make(map[int64][]domain.ExpenseShare, len(expenses))
	for _, share := range shares {
		byExpense[share.ExpenseID] = append(byExpense[share.ExpenseID], share)
	}

	result := make([]ExpenseWithShares, 0, len(expenses))
	for _, expense := range expenses {
		result = append(result, ExpenseWithShares{Expense: expense, Shares: byExpense[expense.ID]})
	}
	return result, nil
}

// DeleteExpensesForRoommate удаляет все доли roommate'а и расходы, у которых
// после этого не осталось ни одной доли. Расход хотя бы с одной оставшейся
// долей переживает каскад.
func (s *ExpenseService) DeleteExpensesForRoommate(ctx context.Context, roommateID int64) error {
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		return deleteExpensesForRoommateTx(c, tx, roommateID)
	})
	if txErr != nil {
		return fmt.Errorf("cascading expenses of roommate %d: %w", roommateID, txErr)
	}
	return nil
}

func deleteExpensesForRoommateTx(ctx context.Context, tx uow.TX, roommateID int64) error {
	expenseRepo, _, shareRepo, reposErr := expenseTxRepos(tx)
	if reposErr != nil {
		return reposErr
	}

	shares, sharesErr := shareRepo.FindSharesByParticipantID(ctx, roommateID)
	if sharesErr != nil {
		return sharesErr //nolint:wrapcheck
	}

	affected := make([]int64, 0, len(shares))
	seen := make(map[int64]struct{}, len(shares))
	for _, share := range shares {
		if _, ok := seen[share.ExpenseID]; ok {
			continue
		}
		seen[share.ExpenseID] = struct{}{}
		affected = append(affected, share.ExpenseID)
	}

	if deleteErr := shareRepo.DeleteSharesByParticipantID(ctx, roommateID); deleteErr != nil {
		return deleteErr //nolint:wrapcheck
	}

	for _, expenseID := range affected {
		count, countErr := shareRepo.CountSharesByExpenseID(ctx, expenseID)
		if countErr != nil {
			return countErr //nolint:wrapcheck
		}
		if count > 0 {
			continue
		}
		if deleteErr := expenseRepo.DeleteExpense(ctx, expenseID); deleteErr != nil {
			return deleteErr //nolint:wrapcheck
		}
	}
	return nil
}

// resolveParticipants проверяет что каждый id из contributions и paidBy - сам
// действующий юзер либо принадлежащий ему roommate.
func resolveParticipants(
	ctx context.Context,
	roommateRepo RoommateRepository,
	actingUserID int64,
	args ExpenseArgs,
) error {
	ids := make([]int64, 0, len(args.Contributions)+len(args.PaidBy))
	for _, c := range args.Contributions {
		ids = append(ids, c.ParticipantID)
	}
	ids = append(ids, args.PaidBy...)

	checked := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id == actingUserID {
			continue
		}
		if _, ok := checked[id]; ok {
			continue
		}
		checked[id] = struct{}{}

		roommate, findErr := roommateRepo.FindRoommateByID(ctx, id)
		if findErr != nil {
			return fmt.Errorf("resolving participant %d: %w", id, findErr)
		}
		if roommate.UserID != actingUserID {
			return fmt.Errorf("resolving participant %d: %w", id, domain.ErrRecordNotFound)
		}
	}
	return nil
}

// insertShares сохраняет рассчитанные доли. Доля самого действующего юзера не
// пишется: создатель не хранит запись долга против самого себя. Участник,
// переставший существовать к моменту записи, логируется и пропускается.
func (s *ExpenseService) insertShares(
	ctx context.Context,
	roommateRepo RoommateRepository,
	shareRepo ShareRepository,
	expenseID int64,
	actingUserID int64,
	shares []calculator.Share,
) ([]domain.ExpenseShare, error) {
	stored := make([]domain.ExpenseShare, 0, len(shares))
	for _, share := range shares {
		if share.ParticipantID == actingUserID {
			continue
		}

		exists, existsErr := roommateRepo.ExistsByID(ctx, share.ParticipantID)
		if existsErr != nil {
			return nil, existsErr //nolint:wrapcheck
		}
		if !exists {
			s.log.WithFields(logrus.Fields{
				"expenseID":     expenseID,
				"participantID": share.ParticipantID,
			}).Warn("participant vanished before share insert, skipping")
			continue
		}

		row, createErr := shareRepo.CreateShare(ctx, repoargs.CreateShare{
			ExpenseID:     expenseID,
			ParticipantID: share.ParticipantID,
			Amount:        share.Amount,
		})
		if createErr != nil {
			return nil, createErr //nolint:wrapcheck
		}
		stored = append(stored, *row)
	}
	return stored, nil
}

func paidBySelf(paidBy []int64, actingUserID int64) bool {
	return len(paidBy) == 1 && paidBy[0] == actingUserID
}

func expenseTxRepos(tx uow.TX) (ExpenseRepository, RoommateRepository, ShareRepository, error) {
	expenseRepo, expenseRepoErr := uow.GetAs[ExpenseRepository](tx, uow.RepositoryName(repoargs.ExpenseRepoName))
	if expenseRepoErr != nil {
		return nil, nil, nil, expenseRepoErr //nolint:wrapcheck
	}
	roommateRepo, roommateRepoErr := uow.GetAs[RoommateRepository](tx, uow.RepositoryName(repoargs.RoommateRepoName))
	if roommateRepoErr != nil {
		return nil, nil, nil, roommateRepoErr //nolint:wrapcheck
	}
	shareRepo, shareRepoErr := uow.GetAs[ShareRepository](tx, uow.RepositoryName(repoargs.ShareRepoName))
	if shareRepoErr != nil {
		return nil, nil, nil, shareRepoErr //nolint:wrapcheck
	}
	return expenseRepo, roommateRepo, shareRepo, nil
}
