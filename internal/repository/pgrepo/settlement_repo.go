package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
	"github.com/Rubayet19/roommate-expense-splitter/internal/repository/repoargs"
	"github.com/Rubayet19/roommate-expense-splitter/pkg/uow"
)

type SettlementRepository struct {
	db uow.DBTX
}

func NewSettlementRepository(db uow.DBTX) *SettlementRepository {
	return &SettlementRepository{db: db}
}

const settlementColumns = `id, created_at, updated_at, payer_id, receiver_id, amount, settled_at`

func (s *SettlementRepository) CreateSettlement(ctx context.Context, args repoargs.CreateSettlement) (*domain.Settlement, error) {
	row := s.db.QueryRow(ctx,
		`INSERT INTO settlements (payer_id, receiver_id, amount, settled_at)
		 VALUES ($1, $2, $3, $4) RETURNING `+settlementColumns,
		args.PayerID, args.ReceiverID, args.Amount, args.Date,
	)
	settlement, err := scanSettlement(row)
	if err != nil {
		return nil, convertErr(err, "creating settlement")
	}
	return settlement, nil
}

func (s *SettlementRepository) FindSettlementByID(ctx context.Context, id int64) (*domain.Settlement, error) {
	row := s.db.QueryRow(ctx, `SELECT `+settlementColumns+` FROM settlements WHERE id = $1`, id)
	settlement, err := scanSettlement(row)
	if err != nil {
		return nil, convertErr(err, "finding settlement by id %d", id)
	}
	return settlement, nil
}

// FindSettlementsByPartyID возвращает расчеты, где сторона участвует как
// плательщик или получатель, новые первыми.
func (s *SettlementRepository) FindSettlementsByPartyID(ctx context.Context, partyID int64) ([]domain.Settlement, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+settlementColumns+` FROM settlements
		 WHERE payer_id = $1 OR receiver_id = $1
		 ORDER BY settled_at DESC, id DESC`, partyID)
	if err != nil {
		return nil, convertErr(err, "finding settlements of party %d", partyID)
	}
	return collectSettlements(rows, partyID)
}

func (s *SettlementRepository) FindSettlementsByPayerID(ctx context.Context, payerID int64) ([]domain.Settlement, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+settlementColumns+` FROM settlements WHERE payer_id = $1 ORDER BY settled_at DESC, id DESC`, payerID)
	if err != nil {
		return nil, convertErr(err, "finding settlements by payer %d", payerID)
	}
	return collectSettlements(rows, payerID)
}

func (s *SettlementRepository) FindSettlementsByReceiverID(ctx context.Context, receiverID int64) ([]domain.Settlement, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+settlementColumns+` FROM settlements WHERE receiver_id = $1 ORDER BY settled_at DESC, id DESC`, receiverID)
	if err != nil {
		return nil, convertErr(err, "finding settlements by receiver %d", receiverID)
	}
	return collectSettlements(rows, receiverID)
}

// FindSettlementsByPartyIDAndDateRange фильтрует по settled_at, обе границы
// включительно; нулевая граница не ограничивает выборку.
func (s *SettlementRepository) FindSettlementsByPartyIDAndDateRange(
	ctx context.Context,
	partyID int64,
	dateRange repoargs.DateRange,
) ([]domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE (payer_id = $1 OR receiver_id = $1)`
	queryArgs := []any{partyID}

	if !dateRange.From.IsZero() {
		queryArgs = append(queryArgs, dateRange.From)
		query += ` AND settled_at >= $2`
	}
	if !dateRange.To.IsZero() {
		queryArgs = append(queryArgs, dateRange.To)
		if len(queryArgs) == 3 {
			query += ` AND settled_at <= $3`
		} else {
			query += ` AND settled_at <= $2`
		}
	}
	query += ` ORDER BY settled_at DESC, id DESC`

	rows, err := s.db.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, convertErr(err, "finding settlements of party %d in range", partyID)
	}
	return collectSettlements(rows, partyID)
}

func (s *SettlementRepository) UpdateSettlement(ctx context.Context, args repoargs.UpdateSettlement) (*domain.Settlement, error) {
	row := s.db.QueryRow(ctx,
		`UPDATE settlements
		 SET payer_id = $2, receiver_id = $3, amount = $4, settled_at = $5, updated_at = now()
		 WHERE id = $1 RETURNING `+settlementColumns,
		args.ID, args.PayerID, args.ReceiverID, args.Amount, args.Date,
	)
	settlement, err := scanSettlement(row)
	if err != nil {
		return nil, convertErr(err, "updating settlement %d", args.ID)
	}
	return settlement, nil
}

func (s *SettlementRepository) DeleteSettlement(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM settlements WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting settlement %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "deleting settlement %d", id)
	}
	return nil
}

func (s *SettlementRepository) DeleteSettlementsByPartyID(ctx context.Context, partyID int64) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM settlements WHERE payer_id = $1 OR receiver_id = $1`, partyID); err != nil {
		return convertErr(err, "deleting settlements of party %d", partyID)
	}
	return nil
}

func collectSettlements(rows pgx.Rows, id int64) ([]domain.Settlement, error) {
	defer rows.Close()

	var settlements []domain.Settlement
	for rows.Next() {
		settlement, scanErr := scanSettlement(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning settlements %d", id)
		}
		settlements = append(settlements, *settlement)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "reading settlements %d", id)
	}
	return settlements, nil
}

func scanSettlement(row rowScanner) (*domain.Settlement, error) {
	var settlement domain.Settlement
	err := row.Scan(
		&settlement.ID,
		&settlement.CreatedAt,
		&settlement.UpdatedAt,
		&settlement.PayerID,
		&settlement.ReceiverID,
		&settlement.Amount,
		&settlement.Date,
	)
	if err != nil {
		return nil, err
	}
	return &settlement, nil
}
