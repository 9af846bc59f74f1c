package repositories

import (
	"context"
	"database/sql"
	"errors"

	"bnbBack/internal/models"
)

type OwnerRepository struct {
	DB *sql.DB
}

// GetOwnerByApartmentID returns nil without an error when the apartment has
// no resolvable owner.
func (r *OwnerRepository) GetOwnerByApartmentID(ctx context.Context, apartmentID int) (*models.Owner, error) {
	query := `
		SELECT owners.id, owners.name, owners.last_name, owners.email, owners.phone_number
		FROM owners
		JOIN apartments ON apartments.owner_id = owners.id
		WHERE apartments.id = ?
	`
	var o models.Owner
	err := r.DB.QueryRowContext(ctx, query, apartmentID).Scan(&o.ID, &o.Name, &o.LastName, &o.Email, &o.PhoneNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
