package database

import (
	"database/sql"

	"github.com/urbanoasis/venue-backend/internal/models"
)

// EventSpaceRepository handles database operations for the event_spaces table
type EventSpaceRepository struct {
	db DB
}

// NewEventSpaceRepository creates a new EventSpaceRepository
func NewEventSpaceRepository(db DB) *EventSpaceRepository {
	return &EventSpaceRepository{db: db}
}

// GetByID retrieves an event space by ID
func (r *EventSpaceRepository) GetByID(spaceID string) (*models.EventSpace, error) {
	query := `
		SELECT id, name, description, capacity, rate, active, created_at
		FROM event_spaces
		WHERE id = $1
	`

	space := &models.EventSpace{}
	var description sql.NullString

	err := r.db.QueryRow(query, spaceID).Scan(
		&space.ID, &space.Name, &description, &space.Capacity, &space.Rate, &space.Active, &space.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if description.Valid {
		space.Description = &description.String
	}

	return space, nil
}

// ListActive retrieves all active event spaces ordered by name
func (r *EventSpaceRepository) ListActive() ([]models.EventSpace, error) {
	query := `
		SELECT id, name, description, capacity, rate, active, created_at
		FROM event_spaces
		WHERE active = true
		ORDER BY name
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spaces := []models.EventSpace{}
	for rows.Next() {
		var space models.EventSpace
		var description sql.NullString

		err := rows.Scan(&space.ID, &space.Name, &description, &space.Capacity, &space.Rate, &space.Active, &space.CreatedAt)
		if err != nil {
			return nil, err
		}
		if description.Valid {
			space.Description = &description.String
		}

		spaces = append(spaces, space)
	}

	return spaces, rows.Err()
}
