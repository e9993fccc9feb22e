package pgrepo

import (
	"context"

	"github.com/Rubayet19/roommate-expense-splitter/internal/domain"
	"github.com/Rubayet19/roommate-expense-splitter/internal/repository/repoargs"
	"github.com/Rubayet19/roommate-expense-splitter/pkg/uow"
)

type RoommateRepository struct {
	db uow.DBTX
}

func NewRoommateRepository(db uow.DBTX) *RoommateRepository {
	return &RoommateRepository{db: db}
}

const roommateColumns = `id, created_at, updated_at, user_id, name, self`

func (r *RoommateRepository) CreateRoommate(ctx context.Context, args repoargs.CreateRoommate) (*domain.Roommate, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO roommates (user_id, name, self) VALUES ($1, $2, $3) RETURNING `+roommateColumns,
		args.UserID, args.Name, args.Self,
	)
	roommate, err := scanRoommate(row)
	if err != nil {
		return nil, convertErr(err, "creating roommate")
	}
	return roommate, nil
}

func (r *RoommateRepository) FindRoommateByID(ctx context.Context, id int64) (*domain.Roommate, error) {
	row := r.db.QueryRow(ctx, `SELECT `+roommateColumns+` FROM roommates WHERE id = $1`, id)
	roommate, err := scanRoommate(row)
	if err != nil {
		return nil, convertErr(err, "finding roommate by id %d", id)
	}
	return roommate, nil
}

// FindRoommatesByUserID возвращает roommate'ов юзера; self-запись идет первой.
func (r *RoommateRepository) FindRoommatesByUserID(ctx context.Context, userID int64) ([]domain.Roommate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+roommateColumns+` FROM roommates WHERE user_id = $1 ORDER BY self DESC, id ASC`, userID)
	if err != nil {
		return nil, convertErr(err, "finding roommates of user %d", userID)
	}
	defer rows.Close()

	var roommates []domain.Roommate
	for rows.Next() {
		roommate, scanErr := scanRoommate(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning roommates of user %d", userID)
		}
		roommates = append(roommates, *roommate)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "reading roommates of user %d", userID)
	}
	return roommates, nil
}

func (r *RoommateRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM roommates WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, convertErr(err, "checking roommate existence %d", id)
	}
	return exists, nil
}

func (r *RoommateRepository) DeleteRoommate(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM roommates WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting roommate %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "deleting roommate %d", id)
	}
	return nil
}

func scanRoommate(row rowScanner) (*domain.Roommate, error) {
	var roommate domain.Roommate
	err := row.Scan(
		&roommate.ID,
		&roommate.CreatedAt,
		&roommate.UpdatedAt,
		&roommate.UserID,
		&roommate.Name,
		&roommate.Self,
	)
	if err != nil {
		return nil, err
	}
	return &roommate, nil
}
