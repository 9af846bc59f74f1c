package repositories

import (
	"context"
	"database/sql"

	"bnbBack/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

// CreateReview stores the review with the database's current date. A foreign
// key failure on apartment_id is reported as ErrApartmentNotFound.
func (r *ReviewRepository) CreateReview(ctx context.Context, apartmentID int, in models.ReviewInput) error {
	query := `
		INSERT INTO reviews (apartment_id, username, email, review, date, days)
		VALUES (?, ?, ?, ?, CURRENT_DATE, ?)
	`
	_, err := r.DB.ExecContext(ctx, query, apartmentID, in.Username, in.Email, in.Review, in.Days)
	if isForeignKeyConstraintError(err) {
		return models.ErrApartmentNotFound
	}
	return err
}

func (r *ReviewRepository) GetReviewsByApartmentID(ctx context.Context, apartmentID int) ([]models.Review, error) {
	query := `
		SELECT id, apartment_id, username, email, review, date, days
		FROM reviews
		WHERE apartment_id = ?
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, apartmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.ApartmentID, &rev.Username, &rev.Email, &rev.Review, &rev.Date, &rev.Days); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
