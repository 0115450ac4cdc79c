package models

import "time"

// MembershipStatus represents the state of a gym membership
type MembershipStatus string

const (
	MembershipStatusPending   MembershipStatus = "pending"
	MembershipStatusActive    MembershipStatus = "active"
	MembershipStatusCancelled MembershipStatus = "cancelled"
	MembershipStatusExpired   MembershipStatus = "expired"
)

// IsValid returns true if the status is a recognized membership status
func (s MembershipStatus) IsValid() bool {
	switch s {
	case MembershipStatusPending, MembershipStatusActive, MembershipStatusCancelled, MembershipStatusExpired:
		return true
	}
	return false
}

// FitnessPlan represents a purchasable gym plan
type FitnessPlan struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	Price          float64   `json:"price" db:"price"`
	DurationMonths int       `json:"duration_months" db:"duration_months"`
	Features       []string  `json:"features,omitempty"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// UpsertFitnessPlanRequest represents the admin request to create or
// update a fitness plan
type UpsertFitnessPlanRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	DurationMonths int      `json:"duration_months"`
	Features       []string `json:"features,omitempty"`
}

// Validate validates the fitness plan request
func (r *UpsertFitnessPlanRequest) Validate() error {
	if r.Name == "" {
		return NewValidationError("name", "is required")
	}
	if r.Description == "" {
		return NewValidationError("description", "is required")
	}
	if r.Price <= 0 {
		return NewValidationError("price", "must be positive")
	}
	if r.DurationMonths <= 0 {
		return NewValidationError("duration_months", "must be positive")
	}
	return nil
}

// Membership represents a purchased gym membership
type Membership struct {
	ID               string           `json:"id" db:"id"`
	Reference        string           `json:"reference" db:"reference"`
	PlanID           string           `json:"plan_id" db:"plan_id"`
	MemberName       string           `json:"member_name" db:"member_name"`
	MemberEmail      string           `json:"member_email" db:"member_email"`
	MemberPhone      *string          `json:"member_phone,omitempty" db:"member_phone"`
	Amount           float64          `json:"amount" db:"amount"`
	Status           MembershipStatus `json:"status" db:"status"`
	PaymentStatus    PaymentStatus    `json:"payment_status" db:"payment_status"`
	PaymentMethod    PaymentMethod    `json:"payment_method" db:"payment_method"`
	PaymentReference *string          `json:"payment_reference,omitempty" db:"payment_reference"`
	StartsAt         *time.Time       `json:"starts_at,omitempty" db:"starts_at"`
	ExpiresAt        *time.Time       `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// CreateMembershipRequest represents the request to purchase a plan
type CreateMembershipRequest struct {
	PlanID            string        `json:"plan_id"`
	MemberName        string        `json:"member_name"`
	MemberEmail       string        `json:"member_email"`
	MemberPhone       *string       `json:"member_phone,omitempty"`
	PaymentMethod     PaymentMethod `json:"payment_method"`
	PaymentReference  *string       `json:"payment_reference,omitempty"`
	PaymentStatusHint *string       `json:"payment_status,omitempty"`
}

// Validate validates the create membership request
func (r *CreateMembershipRequest) Validate() error {
	if r.PlanID == "" {
		return NewValidationError("plan_id", "is required")
	}
	if r.MemberName == "" {
		return NewValidationError("member_name", "is required")
	}
	if r.MemberEmail == "" {
		return NewValidationError("member_email", "is required")
	}
	if !r.PaymentMethod.IsValid() {
		return NewValidationError("payment_method", "must be cash, mobile_money or card")
	}
	if r.PaymentMethod.IsElectronic() && (r.PaymentReference == nil || *r.PaymentReference == "") {
		return ErrMissingPaymentReference
	}
	return nil
}
