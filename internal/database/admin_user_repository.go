package database

import (
	"database/sql"

	"github.com/urbanoasis/venue-backend/internal/models"
)

// AdminUserRepository handles database operations for the admin_users table
type AdminUserRepository struct {
	db DB
}

// NewAdminUserRepository creates a new AdminUserRepository
func NewAdminUserRepository(db DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// GetByEmail retrieves an admin user by email
func (r *AdminUserRepository) GetByEmail(email string) (*models.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM admin_users
		WHERE email = $1
	`

	admin := &models.AdminUser{}
	err := r.db.QueryRow(query, email).Scan(
		&admin.ID, &admin.Email, &admin.PasswordHash, &admin.Name, &admin.Role,
		&admin.CreatedAt, &admin.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return admin, nil
}

// GetByID retrieves an admin user by ID
func (r *AdminUserRepository) GetByID(adminID string) (*models.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM admin_users
		WHERE id = $1
	`

	admin := &models.AdminUser{}
	err := r.db.QueryRow(query, adminID).Scan(
		&admin.ID, &admin.Email, &admin.PasswordHash, &admin.Name, &admin.Role,
		&admin.CreatedAt, &admin.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return admin, nil
}
