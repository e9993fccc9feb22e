package pgrepo

import (
	"context"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
	"github.com/Rubayet19/roommate-expense-splitter/internal/repository/repoargs"
	"github.com/Rubayet19/roommate-expense-splitter/pkg/uow"
)

type ExpenseRepository struct {
	db uow.DBTX
}

func NewExpenseRepository(db uow.DBTX) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = `id, created_at, updated_at, user_id, description, amount, expense_date, split_type, paid_by_self`

func (e *ExpenseRepository) CreateExpense(ctx context.Context, args repoargs.CreateExpense) (*domain.Expense, error) {
	row := e.db.QueryRow(ctx,
		`INSERT INTO expenses (user_id, description, amount, expense_date, split_type, paid_by_self)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+expenseColumns,
		args.UserID, args.Description, args.Amount, args.Date, string(args.SplitType), args.PaidBySelf,
	)
	expense, err := scanExpense(row)
	if err != nil {
		return nil, convertErr(err, "creating expense")
	}
	return expense, nil
}

func (e *ExpenseRepository) FindExpenseByID(ctx context.Context, id int64) (*domain.Expense, error) {
	row := e.db.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id)
	expense, err := scanExpense(row)
	if err != nil {
		return nil, convertErr(err, "finding expense by id %d", id)
	}
	return expense, nil
}

// FindExpensesByUserID возвращает расходы юзера, новые первыми.
func (e *ExpenseRepository) FindExpensesByUserID(ctx context.Context, userID int64) ([]domain.Expense, error) {
	rows, err := e.db.Query(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE user_id = $1 ORDER BY expense_date DESC, id DESC`, userID)
	if err != nil {
		return nil, convertErr(err, "finding expenses of user %d", userID)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		expense, scanErr := scanExpense(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning expenses of user %d", userID)
		}
		expenses = append(expenses, *expense)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "reading expenses of user %d", userID)
	}
	return expenses, nil
}

func (e *ExpenseRepository) UpdateExpense(ctx context.Context, args repoargs.UpdateExpense) (*domain.Expense, error) {
	row := e.db.QueryRow(ctx,
		`UPDATE expenses
		 SET description = $2, amount = $3, expense_date = $4, split_type = $5, paid_by_self = $6, updated_at = now()
		 WHERE id = $1 RETURNING `+expenseColumns,
		args.ID, args.Description, args.Amount, args.Date, string(args.SplitType), args.PaidBySelf,
	)
	expense, err := scanExpense(row)
	if err != nil {
		return nil, convertErr(err, "updating expense %d", args.ID)
	}
	return expense, nil
}

func (e *ExpenseRepository) DeleteExpense(ctx context.Context, id int64) error {
	tag, err := e.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting expense %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "deleting expense %d", id)
	}
	return nil
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var expense domain.Expense
	var splitType string
	err := row.Scan(
		&expense.ID,
		&expense.CreatedAt,
		&expense.UpdatedAt,
		&expense.UserID,
		&expense.Description,
		&expense.Amount,
		&expense.Date,
		&splitType,
		&expense.PaidBySelf,
	)
	if err != nil {
		return nil, err
	}
	expense.SplitType = domain.SplitType(splitType)
	return &expense, nil
}
