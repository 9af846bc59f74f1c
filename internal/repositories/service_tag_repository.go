package repositories

import (
	"context"
	"database/sql"
	"strings"

	"bnbBack/internal/models"
)

type ServiceTagRepository struct {
	DB *sql.DB
}

func (r *ServiceTagRepository) GetServiceTags(ctx context.Context) ([]models.ServiceTag, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, label FROM services ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []models.ServiceTag{}
	for rows.Next() {
		var t models.ServiceTag
		if err := rows.Scan(&t.ID, &t.Label); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *ServiceTagRepository) GetLabelsByApartmentID(ctx context.Context, apartmentID int) ([]string, error) {
	query := `
		SELECT services.label
		FROM services
		JOIN services_apartments ON services.id = services_apartments.service_id
		WHERE services_apartments.apartment_id = ?
	`
	rows, err := r.DB.QueryContext(ctx, query, apartmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []string{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

// FilterExistingIDs returns the subset of ids present in the catalog.
func (r *ServiceTagRepository) FilterExistingIDs(ctx context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return []int{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT id FROM services WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make([]int, 0, len(ids))
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing = append(existing, id)
	}
	return existing, rows.Err()
}
