package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/urbanoasis/venue-backend/internal/models"
)

// FitnessPlanRepository handles database operations for the fitness_plans
// and fitness_plan_features tables
type FitnessPlanRepository struct {
	db DB
}

// NewFitnessPlanRepository creates a new FitnessPlanRepository
func NewFitnessPlanRepository(db DB) *FitnessPlanRepository {
	return &FitnessPlanRepository{db: db}
}

// Create persists a new fitness plan. Feature rows are written separately
// by AddFeature; see FitnessService for the best-effort policy.
func (r *FitnessPlanRepository) Create(plan *models.FitnessPlan) error {
	query := `
		INSERT INTO fitness_plans (id, name, description, price, duration_months)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		plan.ID, plan.Name, plan.Description, plan.Price, plan.DurationMonths,
	).Scan(&plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return &models.PersistenceError{Op: "create fitness plan", Err: err}
	}

	return nil
}

// Update updates an existing fitness plan
func (r *FitnessPlanRepository) Update(plan *models.FitnessPlan) error {
	query := `
		UPDATE fitness_plans
		SET name = $2, description = $3, price = $4, duration_months = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		plan.ID, plan.Name, plan.Description, plan.Price, plan.DurationMonths,
	).Scan(&plan.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.ErrNotFound
	}
	if err != nil {
		return &models.PersistenceError{Op: "update fitness plan", Err: err}
	}

	return nil
}

// AddFeature inserts a single feature row for a plan
func (r *FitnessPlanRepository) AddFeature(planID, feature string) error {
	_, err := r.db.Exec(`
		INSERT INTO fitness_plan_features (id, plan_id, feature)
		VALUES ($1, $2, $3)
	`, uuid.New().String(), planID, feature)
	if err != nil {
		return &models.PersistenceError{Op: "add plan feature", Err: err}
	}
	return nil
}

// GetByID retrieves a fitness plan with its features
func (r *FitnessPlanRepository) GetByID(planID string) (*models.FitnessPlan, error) {
	query := `
		SELECT id, name, description, price, duration_months, created_at, updated_at
		FROM fitness_plans
		WHERE id = $1
	`

	plan := &models.FitnessPlan{}
	err := r.db.QueryRow(query, planID).Scan(
		&plan.ID, &plan.Name, &plan.Description, &plan.Price, &plan.DurationMonths,
		&plan.CreatedAt, &plan.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	features, err := r.getFeatures(plan.ID)
	if err != nil {
		return nil, err
	}
	plan.Features = features

	return plan, nil
}

// List retrieves all fitness plans with their features, cheapest first
func (r *FitnessPlanRepository) List() ([]models.FitnessPlan, error) {
	query := `
		SELECT id, name, description, price, duration_months, created_at, updated_at
		FROM fitness_plans
		ORDER BY price
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []models.FitnessPlan{}
	for rows.Next() {
		var plan models.FitnessPlan
		err := rows.Scan(
			&plan.ID, &plan.Name, &plan.Description, &plan.Price, &plan.DurationMonths,
			&plan.CreatedAt, &plan.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range plans {
		features, err := r.getFeatures(plans[i].ID)
		if err != nil {
			return nil, err
		}
		plans[i].Features = features
	}

	return plans, nil
}

// Delete removes a fitness plan. Dependent feature rows are removed first;
// the plan row only goes once its features are gone.
func (r *FitnessPlanRepository) Delete(planID string) error {
	if _, err := r.db.Exec(`DELETE FROM fitness_plan_features WHERE plan_id = $1`, planID); err != nil {
		return &models.PersistenceError{Op: "delete plan features", Err: err}
	}

	result, err := r.db.Exec(`DELETE FROM fitness_plans WHERE id = $1`, planID)
	if err != nil {
		return &models.PersistenceError{Op: "delete fitness plan", Err: err}
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

// getFeatures retrieves the feature strings for a plan
func (r *FitnessPlanRepository) getFeatures(planID string) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT feature
		FROM fitness_plan_features
		WHERE plan_id = $1
		ORDER BY feature
	`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	features := []string{}
	for rows.Next() {
		var feature string
		if err := rows.Scan(&feature); err != nil {
			return nil, err
		}
		features = append(features, feature)
	}

	return features, rows.Err()
}
