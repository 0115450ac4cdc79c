package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/urbanoasis/venue-backend/internal/models"
)

// MembershipRepository handles database operations for the
// fitness_memberships table
type MembershipRepository struct {
	db DB
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create persists a new membership
func (r *MembershipRepository) Create(membership *models.Membership) error {
	query := `
		INSERT INTO fitness_memberships (
			id, reference, plan_id, member_name, member_email, member_phone,
			amount, status, payment_status, payment_method, payment_reference,
			starts_at, expires_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		RETURNING created_at, updated_at
	`

	if membership.ID == "" {
		membership.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		membership.ID, membership.Reference, membership.PlanID, membership.MemberName,
		membership.MemberEmail, membership.MemberPhone,
		membership.Amount, membership.Status, membership.PaymentStatus, membership.PaymentMethod,
		membership.PaymentReference, membership.StartsAt, membership.ExpiresAt,
	).Scan(&membership.CreatedAt, &membership.UpdatedAt)
	if err != nil {
		return &models.PersistenceError{Op: "create membership", Err: err}
	}

	return nil
}

// GetByID retrieves a membership by ID
func (r *MembershipRepository) GetByID(membershipID string) (*models.Membership, error) {
	query := `
		SELECT id, reference, plan_id, member_name, member_email, member_phone,
			   amount, status, payment_status, payment_method, payment_reference,
			   starts_at, expires_at, created_at, updated_at
		FROM fitness_memberships
		WHERE id = $1
	`

	return r.scanMembership(r.db.QueryRow(query, membershipID))
}

// List retrieves memberships, optionally filtered by status, newest first
func (r *MembershipRepository) List(status *models.MembershipStatus) ([]models.Membership, error) {
	query := `
		SELECT id, reference, plan_id, member_name, member_email, member_phone,
			   amount, status, payment_status, payment_method, payment_reference,
			   starts_at, expires_at, created_at, updated_at
		FROM fitness_memberships
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

	memberships := []models.Membership{}
	for rows.Next() {
		membership, err := r.scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, *membership)
	}

	return memberships, rows.Err()
}

// MarkPaid confirms payment for a membership. The payment_status change and
// the forced status -> active change happen in one UPDATE so no reader can
// observe a paid-but-pending membership. The membership term starts at
// confirmation time.
func (r *MembershipRepository) MarkPaid(membershipID string) error {
	query := `
		UPDATE fitness_memberships
		SET payment_status = 'paid',
			status = 'active',
			starts_at = NOW(),
			expires_at = NOW() + (
				SELECT make_interval(months => p.duration_months)
				FROM fitness_plans p
				WHERE p.id = fitness_memberships.plan_id
			),
			updated_at = NOW()
		WHERE id = $1
		  AND payment_status = 'pending'
	`

	result, err := r.db.Exec(query, membershipID)
	if err != nil {
		return &models.PersistenceError{Op: "mark membership paid", Err: err}
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Zero rows means either the membership does not exist or the
		// payment_status guard filtered it. Re-read to tell the two apart
		// so a double confirmation is rejected as a bad transition, not
		// reported as a missing record.
		var status string
		err := r.db.QueryRow(`SELECT payment_status FROM fitness_memberships WHERE id = $1`, membershipID).Scan(&status)
		if err == sql.ErrNoRows {
			return models.ErrNotFound
		}
		if err != nil {
			return &models.PersistenceError{Op: "mark membership paid", Err: err}
		}
		return models.ErrInvalidStatus
	}

	return nil
}

// scanMembership scans a single membership
func (r *MembershipRepository) scanMembership(row scanner) (*models.Membership, error) {
	membership := &models.Membership{}
	var memberPhone sql.NullString
	var paymentReference sql.NullString
	var startsAt sql.NullTime
	var expiresAt sql.NullTime

	err := row.Scan(
		&membership.ID, &membership.Reference, &membership.PlanID, &membership.MemberName,
		&membership.MemberEmail, &memberPhone,
		&membership.Amount, &membership.Status, &membership.PaymentStatus, &membership.PaymentMethod,
		&paymentReference, &startsAt, &expiresAt, &membership.CreatedAt, &membership.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if memberPhone.Valid {
		membership.MemberPhone = &memberPhone.String
	}
	if paymentReference.Valid {
		membership.PaymentReference = &paymentReference.String
	}
	if startsAt.Valid {
		membership.StartsAt = &startsAt.Time
	}
	if expiresAt.Valid {
		membership.ExpiresAt = &expiresAt.Time
	}

	return membership, nil
}
