package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
	"github.com/Rubayet19/roommate-expense-splitter/internal/repository/repoargs"
	"github.com/Rubayet19/roommate-expense-splitter/pkg/uow"
)

type ShareRepository struct {
	db uow.DBTX
}

func NewShareRepository(db uow.DBTX) *ShareRepository {
	return &ShareRepository{db: db}
}

const shareColumns = `id, created_at, expense_id, participant_id, amount`

func (s *ShareRepository) CreateShare(ctx context.Context, args repoargs.CreateShare) (*domain.ExpenseShare, error) {
	row := s.db.QueryRow(ctx,
		`INSERT INTO expense_shares (expense_id, participant_id, amount) VALUES ($1, $2, $3) RETURNING `+shareColumns,
		args.ExpenseID, args.ParticipantID, args.Amount,
	)
	share, err := scanShare(row)
	if err != nil {
		return nil, convertErr(err, "creating share for expense %d", args.ExpenseID)
	}
	return share, nil
}

func (s *ShareRepository) FindSharesByExpenseID(ctx context.Context, expenseID int64) ([]domain.ExpenseShare, error) {
	return s.findShares(ctx, `expense_id`, expenseID)
}

func (s *ShareRepository) FindSharesByParticipantID(ctx context.Context, participantID int64) ([]domain.ExpenseShare, error) {
	return s.findShares(ctx, `participant_id`, participantID)
}

// FindSharesByOwnerID возвращает доли по всем расходам, созданным юзером.
// Используется агрегатором баланса, чтобы не ходить за каждым расходом отдельно.
func (s *ShareRepository) FindSharesByOwnerID(ctx context.Context, userID int64) ([]domain.ExpenseShare, error) {
	rows, err := s.db.Query(ctx,
		`SELECT es.id, es.created_at, es.expense_id, es.participant_id, es.amount
		 FROM expense_shares es
		 JOIN expenses e ON e.id = es.expense_id
		 WHERE e.user_id = $1
		 ORDER BY es.expense_id ASC, es.id ASC`, userID)
	if err != nil {
		return nil, convertErr(err, "finding shares owned by user %d", userID)
	}
	return collectShares(rows, userID)
}

// DeleteSharesByExpenseID удаляет все доли расхода. Отсутствие строк не
// считается ошибкой: у расхода могло не остаться долей.
func (s *ShareRepository) DeleteSharesByExpenseID(ctx context.Context, expenseID int64) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM expense_shares WHERE expense_id = $1`, expenseID); err != nil {
		return convertErr(err, "deleting shares of expense %d", expenseID)
	}
	return nil
}

func (s *ShareRepository) DeleteSharesByParticipantID(ctx context.Context, participantID int64) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM expense_shares WHERE participant_id = $1`, participantID); err != nil {
		return convertErr(err, "deleting shares of participant %d", participantID)
	}
	return nil
}

func (s *ShareRepository) CountSharesByExpenseID(ctx context.Context, expenseID int64) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM expense_shares WHERE expense_id = $1`, expenseID).Scan(&count)
	if err != nil {
		return 0, convertErr(err, "counting shares of expense %d", expenseID)
	}
	return count, nil
}

func (s *ShareRepository) findShares(ctx context.Context, column string, id int64) ([]domain.ExpenseShare, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+shareColumns+` FROM expense_shares WHERE `+column+` = $1 ORDER BY id ASC`, id)
	if err != nil {
		return nil, convertErr(err, "finding shares by %s %d", column, id)
	}
	return collectShares(rows, id)
}

func collectShares(rows pgx.Rows, id int64) ([]domain.ExpenseShare, error) {
	defer rows.Close()

	var shares []domain.ExpenseShare
	for rows.Next() {
		share, scanErr := scanShare(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning shares %d", id)
		}
		shares = append(shares, *share)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "reading shares %d", id)
	}
	return shares, nil
}

func scanShare(row rowScanner) (*domain.ExpenseShare, error) {
	var share domain.ExpenseShare
	err := row.Scan(
		&share.ID,
		&share.CreatedAt,
		&share.ExpenseID,
		&share.ParticipantID,
		&share.Amount,
	)
	if err != nil {
		return nil, err
	}
	return &share, nil
}
