package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"bnbBack/internal/models"
)

const apartmentColumns = `id, owner_id, title, rooms, beds, bathrooms, square_meters, address, city, image, vote`

type ApartmentRepository struct {
	DB *sql.DB
}

func (r *ApartmentRepository) GetApartments(ctx context.Context) ([]models.Apartment, error) {
	query := `SELECT ` + apartmentColumns + ` FROM apartments ORDER BY vote DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apartments := []models.Apartment{}
	for rows.Next() {
		a, err := scanApartment(rows)
		if err != nil {
			return nil, err
		}
		apartments = append(apartments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return apartments, nil
}

func (r *ApartmentRepository) GetApartmentByID(ctx context.Context, id int) (models.Apartment, error) {
	query := `SELECT ` + apartmentColumns + ` FROM apartments WHERE id = ?`

	a, err := scanApartment(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Apartment{}, models.ErrApartmentNotFound
	}
	if err != nil {
		return models.Apartment{}, err
	}
	return a, nil
}

// IncrementVote bumps the popularity counter in a single statement so that
// concurrent votes never lose an increment.
func (r *ApartmentRepository) IncrementVote(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE apartments SET vote = vote + 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrApartmentNotFound
	}
	return nil
}

// CreateApartment inserts the apartment and its service associations in one
// transaction. Either both land or neither does.
func (r *ApartmentRepository) CreateApartment(ctx context.Context, apartment models.Apartment, serviceIDs []int) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO apartments (owner_id, title, rooms, beds, bathrooms, square_meters, address, city, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		apartment.OwnerID, apartment.Title, apartment.Rooms, apartment.Beds, apartment.Bathrooms,
		apartment.SquareMeters, apartment.Address, apartment.City, apartment.Image,
	)
	if err != nil {
		return 0, err
	}
	apartmentID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err = insertApartmentServices(ctx, tx, apartmentID, serviceIDs); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return int(apartmentID), nil
}

func insertApartmentServices(ctx context.Context, tx *sql.Tx, apartmentID int64, serviceIDs []int) error {
	if len(serviceIDs) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(serviceIDs))
	args := make([]interface{}, 0, len(serviceIDs)*2)
	for _, serviceID := range serviceIDs {
		placeholders = append(placeholders, "(?, ?)")
		args = append(args, apartmentID, serviceID)
	}

	query := `INSERT INTO services_apartments (apartment_id, service_id) VALUES ` + strings.Join(placeholders, ", ")
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApartment(row rowScanner) (models.Apartment, error) {
	var a models.Apartment
	err := row.Scan(&a.ID, &a.OwnerID, &a.Title, &a.Rooms, &a.Beds, &a.Bathrooms,
		&a.SquareMeters, &a.Address, &a.City, &a.Image, &a.Vote)
	return a, err
}
