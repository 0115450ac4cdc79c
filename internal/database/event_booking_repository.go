package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/urbanoasis/venue-backend/internal/models"
)

// EventBookingRepository handles database operations for the
// event_bookings table
type EventBookingRepository struct {
	db DB
}

// NewEventBookingRepository creates a new EventBookingRepository
func NewEventBookingRepository(db DB) *EventBookingRepository {
	return &EventBookingRepository{db: db}
}

// Create persists a new event booking
func (r *EventBookingRepository) Create(booking *models.EventBooking) error {
	query := `
		INSERT INTO event_bookings (
			id, booking_reference, event_space_id, customer_name, customer_phone,
			customer_email, event_date, start_time, end_time, guests, amount,
			status, payment_status, payment_method, payment_reference, source_platform
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
		RETURNING created_at, updated_at
	`

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		booking.ID, booking.BookingReference, booking.EventSpaceID, booking.CustomerName, booking.CustomerPhone,
		booking.CustomerEmail, booking.EventDate, booking.StartTime, booking.EndTime, booking.Guests, booking.Amount,
		booking.Status, booking.PaymentStatus, booking.PaymentMethod, booking.PaymentReference, booking.SourcePlatform,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return &models.PersistenceError{Op: "create event booking", Err: err}
	}

	return nil
}

// GetByID retrieves an event booking by ID
func (r *EventBookingRepository) GetByID(bookingID string) (*models.EventBooking, error) {
	query := `
		SELECT id, booking_reference, event_space_id, customer_name, customer_phone,
			   customer_email, event_date, start_time, end_time, guests, amount,
			   status, payment_status, payment_method, payment_reference, source_platform,
			   created_at, updated_at
		FROM event_bookings
		WHERE id = $1
	`

	return r.scanBooking(r.db.QueryRow(query, bookingID))
}

// EventBookingListFilter declares the filters supported by the admin event
// booking listing. Each field maps to exactly one operator.
type EventBookingListFilter struct {
	Status        *models.EventBookingStatus // equality
	PaymentStatus *models.PaymentStatus      // equality
	EventSpaceID  *string                    // equality
	EventDateFrom *string                    // >=
}

// List retrieves event bookings matching the filter, newest first
func (r *EventBookingRepository) List(filter EventBookingListFilter) ([]models.EventBooking, error) {
	query := `
		SELECT id, booking_reference, event_space_id, customer_name, customer_phone,
			   customer_email, event_date, start_time, end_time, guests, amount,
			   status, payment_status, payment_method, payment_reference, source_platform,
			   created_at, updated_at
		FROM event_bookings
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR payment_status = $2)
		  AND ($3::text IS NULL OR event_space_id = $3)
		  AND ($4::text IS NULL OR event_date >= $4)
		ORDER BY created_at DESC
	`

	var statusArg, paymentArg, spaceArg, dateArg interface{}
	if filter.Status != nil {
		statusArg = string(*filter.Status)
	}
	if filter.PaymentStatus != nil {
		paymentArg = string(*filter.PaymentStatus)
	}
	if filter.EventSpaceID != nil {
		spaceArg = *filter.EventSpaceID
	}
	if filter.EventDateFrom != nil {
		dateArg = *filter.EventDateFrom
	}

	rows, err := r.db.Query(query, statusArg, paymentArg, spaceArg, dateArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.EventBooking{}
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

// UpdateStatus updates the fulfillment status of an event booking
func (r *EventBookingRepository) UpdateStatus(bookingID string, status models.EventBookingStatus) error {
	query := `
		UPDATE event_bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, bookingID, status)
	if err != nil {
		return &models.PersistenceError{Op: "update event booking status", Err: err}
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

// UpdatePaymentStatus updates the payment status of an event booking
func (r *EventBookingRepository) UpdatePaymentStatus(bookingID string, status models.PaymentStatus) error {
	query := `
		UPDATE event_bookings
		SET payment_status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, bookingID, status)
	if err != nil {
		return &models.PersistenceError{Op: "update event booking payment status", Err: err}
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

// ExpireStalePending cancels event bookings that have waited for electronic
// payment longer than the cutoff. Returns the number cancelled.
func (r *EventBookingRepository) ExpireStalePending(cutoff time.Time) (int64, error) {
	query := `
		UPDATE event_bookings
		SET status = 'cancelled', updated_at = NOW()
		WHERE status = 'pending'
		  AND payment_status = 'pending'
		  AND payment_method IN ('mobile_money', 'card')
		  AND created_at < $1
	`

	result, err := r.db.Exec(query, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// scanBooking scans a single event booking
func (r *EventBookingRepository) scanBooking(row scanner) (*models.EventBooking, error) {
	booking := &models.EventBooking{}
	var customerEmail sql.NullString
	var paymentReference sql.NullString
	var sourcePlatform sql.NullString

	err := row.Scan(
		&booking.ID, &booking.BookingReference, &booking.EventSpaceID, &booking.CustomerName, &booking.CustomerPhone,
		&customerEmail, &booking.EventDate, &booking.StartTime, &booking.EndTime, &booking.Guests, &booking.Amount,
		&booking.Status, &booking.PaymentStatus, &booking.PaymentMethod, &paymentReference, &sourcePlatform,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if customerEmail.Valid {
		booking.CustomerEmail = &customerEmail.String
	}
	if paymentReference.Valid {
		booking.PaymentReference = &paymentReference.String
	}
	if sourcePlatform.Valid {
		booking.SourcePlatform = &sourcePlatform.String
	}

	return booking, nil
}
