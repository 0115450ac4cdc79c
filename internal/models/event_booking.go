package models

import "time"

// EventBookingStatus represents the fulfillment state of an event-space booking
type EventBookingStatus string

const (
	EventBookingStatusPending   EventBookingStatus = "pending"
	EventBookingStatusApproved  EventBookingStatus = "approved"
	EventBookingStatusCancelled EventBookingStatus = "cancelled"
)

// eventBookingTransitions defines the administrative state machine for
// event-space bookings. The payment_status pending -> paid transition is
// handled separately and is gated on status == approved.
var eventBookingTransitions = map[EventBookingStatus][]EventBookingStatus{
	EventBookingStatusPending:   {EventBookingStatusApproved, EventBookingStatusCancelled},
	EventBookingStatusApproved:  {},
	EventBookingStatusCancelled: {},
}

// IsValid returns true if the status is a recognized event booking status
func (s EventBookingStatus) IsValid() bool {
	_, exists := eventBookingTransitions[s]
	return exists
}

// CanTransitionTo returns true if the transition to target is allowed
func (s EventBookingStatus) CanTransitionTo(target EventBookingStatus) bool {
	for _, t := range eventBookingTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible
func (s EventBookingStatus) IsTerminal() bool {
	return len(eventBookingTransitions[s]) == 0
}

// EventSpace represents a bookable venue space
type EventSpace struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Capacity    int       `json:"capacity" db:"capacity"`
	Rate        float64   `json:"rate" db:"rate"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// EventBooking represents a booking of an event space
type EventBooking struct {
	ID               string             `json:"id" db:"id"`
	BookingReference string             `json:"booking_reference" db:"booking_reference"`
	EventSpaceID     string             `json:"event_space_id" db:"event_space_id"`
	CustomerName     string             `json:"customer_name" db:"customer_name"`
	CustomerPhone    string             `json:"customer_phone" db:"customer_phone"`
	CustomerEmail    *string            `json:"customer_email,omitempty" db:"customer_email"`
	EventDate        string             `json:"event_date" db:"event_date"`
	StartTime        string             `json:"start_time" db:"start_time"`
	EndTime          string             `json:"end_time" db:"end_time"`
	Guests           int                `json:"guests" db:"guests"`
	Amount           float64            `json:"amount" db:"amount"`
	Status           EventBookingStatus `json:"status" db:"status"`
	PaymentStatus    PaymentStatus      `json:"payment_status" db:"payment_status"`
	PaymentMethod    PaymentMethod      `json:"payment_method" db:"payment_method"`
	PaymentReference *string            `json:"payment_reference,omitempty" db:"payment_reference"`
	SourcePlatform   *string            `json:"source_platform,omitempty" db:"source_platform"`
	CreatedAt        time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" db:"updated_at"`
}

// CreateEventBookingRequest represents the request to book an event space
type CreateEventBookingRequest struct {
	EventSpaceID      string        `json:"event_space_id"`
	CustomerName      string        `json:"customer_name"`
	CustomerPhone     string        `json:"customer_phone"`
	CustomerEmail     *string       `json:"customer_email,omitempty"`
	EventDate         string        `json:"event_date"`
	StartTime         string        `json:"start_time"`
	EndTime           string        `json:"end_time"`
	Guests            int           `json:"guests"`
	PaymentMethod     PaymentMethod `json:"payment_method"`
	PaymentReference  *string       `json:"payment_reference,omitempty"`
	PaymentStatusHint *string       `json:"payment_status,omitempty"`
}

// Validate validates the create event booking request
func (r *CreateEventBookingRequest) Validate() error {
	if r.CustomerName == "" {
		return NewValidationError("customer_name", "is required")
	}
	if r.CustomerPhone == "" {
		return NewValidationError("customer_phone", "is required")
	}
	if r.EventSpaceID == "" {
		return NewValidationError("event_space_id", "is required")
	}
	if r.EventDate == "" {
		return NewValidationError("event_date", "is required")
	}
	if r.StartTime == "" {
		return NewValidationError("start_time", "is required")
	}
	if r.EndTime == "" {
		return NewValidationError("end_time", "is required")
	}
	if r.StartTime >= r.EndTime {
		return NewValidationError("end_time", "must be after start_time")
	}
	if !r.PaymentMethod.IsValid() {
		return NewValidationError("payment_method", "must be cash, mobile_money or card")
	}
	if r.PaymentMethod.IsElectronic() && (r.PaymentReference == nil || *r.PaymentReference == "") {
		return ErrMissingPaymentReference
	}
	return nil
}
