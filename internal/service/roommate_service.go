package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
	"github.com/Rubayet19/roommate-expense-splitter/internal/repository/repoargs"
	"github.com/Rubayet19/roommate-expense-splitter/pkg/uow"
)

type RoommateService struct {
	uow          uow.UOW
	roommateRepo RoommateRepository
}

func NewRoommateService(u uow.UOW) (*RoommateService, error) {
	rName := uow.RepositoryName(repoargs.RoommateRepoName)
	roommateRepo, roommateRepoErr := uow.GetRepositoryAs[RoommateRepository](u, rName)
	if roommateRepoErr != nil {
		return nil, roommateRepoErr //nolint:wrapcheck
	}
	return &RoommateService{
		uow:          u,
		roommateRepo: roommateRepo,
	}, nil
}

func (s *RoommateService) AddRoommate(ctx context.Context, actingUserID int64, name string) (*domain.Roommate, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &domain.ValidationError{Msg: "roommate name must not be empty"}
	}

	roommate, createErr := s.roommateRepo.CreateRoommate(ctx, repoargs.CreateRoommate{
		UserID: actingUserID,
		Name:   name,
	})
	if createErr != nil {
		return nil, fmt.Errorf("adding roommate: %w", createErr)
	}
	return roommate, nil
}

func (s *RoommateService) ListRoommates(ctx context.Context, actingUserID int64) ([]domain.Roommate, error) {
	roommates, listErr := s.roommateRepo.FindRoommatesByUserID(ctx, actingUserID)
	if listErr != nil {
		return nil, fmt.Errorf("listing roommates of user %d: %w", actingUserID, listErr)
	}
	return roommates, nil
}

// GetRoommate возвращает roommate'а юзера. Чужие записи не видны: для них
// возвращается domain.ErrRecordNotFound.
func (s *RoommateService) GetRoommate(ctx context.Context, actingUserID, roommateID int64) (*domain.Roommate, error) {
	roommate, findErr := s.roommateRepo.FindRoommateByID(ctx, roommateID)
	if findErr != nil {
		return nil, fmt.Errorf("getting roommate %d: %w", roommateID, findErr)
	}
	if roommate.UserID != actingUserID {
		return nil, fmt.Errorf("getting roommate %d: %w", roommateID, domain.ErrRecordNotFound)
	}
	return roommate, nil
}

// DeleteRoommate удаляет roommate'а и каскадом все связанное с ним: его доли,
// осиротевшие расходы и settlement'ы с его участием. Все в одной транзакции.
// Self-запись юзера удалить нельзя.
func (s *RoommateService) DeleteRoommate(ctx context.Context, actingUserID, roommateID int64) error {
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		roommateRepo, roommateRepoErr := uow.GetAs[RoommateRepository](tx, uow.RepositoryName(repoargs.RoommateRepoName))
		if roommateRepoErr != nil {
			return roommateRepoErr //nolint:wrapcheck
		}
		settlementRepo, settlementRepoErr := uow.GetAs[SettlementRepository](tx, uow.RepositoryName(repoargs.SettlementRepoName))
		if settlementRepoErr != nil {
			return settlementRepoErr //nolint:wrapcheck
		}

		roommate, findErr := roommateRepo.FindRoommateByID(c, roommateID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if roommate.UserID != actingUserID {
			return fmt.Errorf("roommate %d: %w", roommateID, domain.ErrRecordNotFound)
		}
		if roommate.Self {
			return &domain.ValidationError{Msg: "self roommate cannot be deleted"}
		}

		if cascadeErr := deleteExpensesForRoommateTx(c, tx, roommateID); cascadeErr != nil {
			return cascadeErr
		}
		if settlementsErr := settlementRepo.DeleteSettlementsByPartyID(c, roommateID); settlementsErr != nil {
			return settlementsErr //nolint:wrapcheck
		}
		return roommateRepo.DeleteRoommate(c, roommateID) //nolint:wrapcheck
	})
	if txErr != nil {
		return fmt.Errorf("deleting roommate %d: %w", roommateID, txErr)
	}
	return nil
}
