package models

import "time"

// ReservationStatus represents the state of a table reservation
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// reservationTransitions defines the administrative state machine for
// table reservations. Confirmed and cancelled are terminal.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed: {},
	ReservationStatusCancelled: {},
}

// IsValid returns true if the status is a recognized reservation status
func (s ReservationStatus) IsValid() bool {
	_, exists := reservationTransitions[s]
	return exists
}

// CanTransitionTo returns true if the transition to target is allowed
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	for _, t := range reservationTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible
func (s ReservationStatus) IsTerminal() bool {
	return len(reservationTransitions[s]) == 0
}

// Reservation represents a restaurant table booking
type Reservation struct {
	ID        string            `json:"id" db:"id"`
	Reference string            `json:"reference" db:"reference"`
	Name      string            `json:"name" db:"name"`
	Email     string            `json:"email" db:"email"`
	Phone     string            `json:"phone" db:"phone"`
	Date      string            `json:"date" db:"reservation_date"`
	Time      string            `json:"time" db:"reservation_time"`
	Guests    int               `json:"guests" db:"guests"`
	Status    ReservationStatus `json:"status" db:"status"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

// CreateReservationRequest represents the request to book a table
type CreateReservationRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Guests int    `json:"guests"`
}

// Validate validates the create reservation request
func (r *CreateReservationRequest) Validate() error {
	if r.Name == "" {
		return NewValidationError("name", "is required")
	}
	if r.Email == "" {
		return NewValidationError("email", "is required")
	}
	if r.Phone == "" {
		return NewValidationError("phone", "is required")
	}
	if r.Date == "" {
		return NewValidationError("date", "is required")
	}
	if r.Time == "" {
		return NewValidationError("time", "is required")
	}
	if r.Guests < 1 {
		return NewValidationError("guests", "must be at least 1")
	}
	return nil
}
