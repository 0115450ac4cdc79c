package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/urbanoasis/venue-backend/internal/models"
)

// ReservationRepository handles database operations for the
// restaurant_reservations table
type ReservationRepository struct {
	db DB
}

// NewReservationRepository creates a new ReservationRepository
func NewReservationRepository(db DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create persists a new table reservation
func (r *ReservationRepository) Create(reservation *models.Reservation) error {
	query := `
		INSERT INTO restaurant_reservations (
			id, reference, name, email, phone,
			reservation_date, reservation_time, guests, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING created_at, updated_at
	`

	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		reservation.ID, reservation.Reference, reservation.Name, reservation.Email, reservation.Phone,
		reservation.Date, reservation.Time, reservation.Guests, reservation.Status,
	).Scan(&reservation.CreatedAt, &reservation.UpdatedAt)
	if err != nil {
		return &models.PersistenceError{Op: "create reservation", Err: err}
	}

	return nil
}

// GetByID retrieves a reservation by ID
func (r *ReservationRepository) GetByID(reservationID string) (*models.Reservation, error) {
	query := `
		SELECT id, reference, name, email, phone,
			   reservation_date, reservation_time, guests, status,
			   created_at, updated_at
		FROM restaurant_reservations
		WHERE id = $1
	`

	reservation := &models.Reservation{}
	err := r.db.QueryRow(query, reservationID).Scan(
		&reservation.ID, &reservation.Reference, &reservation.Name, &reservation.Email, &reservation.Phone,
		&reservation.Date, &reservation.Time, &reservation.Guests, &reservation.Status,
		&reservation.CreatedAt, &reservation.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

// List retrieves reservations, optionally filtered by status, newest first
func (r *ReservationRepository) List(status *models.ReservationStatus) ([]models.Reservation, error) {
	query := `
		SELECT id, reference, name, email, phone,
			   reservation_date, reservation_time, guests, status,
			   created_at, updated_at
		FROM restaurant_reservations
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
	`

	var statusArg interface{}
	if status != nil {
		statusArg = string(*status)
	}

	rows, err := r.db.Query(query, statusArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []models.Reservation{}
	for rows.Next() {
		var reservation models.Reservation
		err := rows.Scan(
			&reservation.ID, &reservation.Reference, &reservation.Name, &reservation.Email, &reservation.Phone,
			&reservation.Date, &reservation.Time, &reservation.Guests, &reservation.Status,
			&reservation.CreatedAt, &reservation.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}

	return reservations, rows.Err()
}

// UpdateStatus updates the status of a reservation
func (r *ReservationRepository) UpdateStatus(reservationID string, status models.ReservationStatus) error {
	query := `
		UPDATE restaurant_reservations
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, reservationID, status)
	if err != nil {
		return &models.PersistenceError{Op: "update reservation status", Err: err}
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrNotFound
	}

	return nil
}
