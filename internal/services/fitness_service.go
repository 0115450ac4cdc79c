package services

import (
	"github.com/sirupsen/logrus"
	"github.com/urbanoasis/venue-backend/internal/database"
	"github.com/urbanoasis/venue-backend/internal/models"
)

// FitnessService handles fitness plan administration. Plan feature rows are
// written best-effort after the plan row: a failed feature insert never
// rolls back the plan, but the failure is reported to the caller instead of
// disappearing into the log.
type FitnessService struct {
	planRepo *database.FitnessPlanRepository
	logger   *logrus.Logger
}

// PlanWriteResult reports a plan write together with any features that
// could not be persisted
type PlanWriteResult struct {
	Plan           *models.FitnessPlan `json:"plan"`
	FailedFeatures []string            `json:"failed_features,omitempty"`
}

// NewFitnessService creates a new FitnessService
func NewFitnessService(planRepo *database.FitnessPlanRepository, logger *logrus.Logger) *FitnessService {
	return &FitnessService{planRepo: planRepo, logger: logger}
}

// CreatePlan persists a new plan and then its feature rows best-effort
func (s *FitnessService) CreatePlan(req *models.UpsertFitnessPlanRequest) (*PlanWriteResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	plan := &models.FitnessPlan{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		DurationMonths: req.DurationMonths,
	}

	if err := s.planRepo.Create(plan); err != nil {
		return nil, err
	}

	failed := s.writeFeatures(plan.ID, req.Features)

	for _, feature := range req.Features {
		if !contains(failed, feature) {
			plan.Features = append(plan.Features, feature)
		}
	}

	return &PlanWriteResult{Plan: plan, FailedFeatures: failed}, nil
}

// UpdatePlan updates a plan and replaces its feature rows. Feature replacement
// is best-effort like creation.
func (s *FitnessService) UpdatePlan(planID string, req *models.UpsertFitnessPlanRequest) (*PlanWriteResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	plan := &models.FitnessPlan{
		ID:             planID,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		DurationMonths: req.DurationMonths,
	}

	if err := s.planRepo.Update(plan); err != nil {
		return nil, err
	}

	failed := s.writeFeatures(planID, req.Features)

	updated, err := s.planRepo.GetByID(planID)
	if err != nil {
		return nil, err
	}

	return &PlanWriteResult{Plan: updated, FailedFeatures: failed}, nil
}

// DeletePlan removes a plan, cascading its feature rows first
func (s *FitnessService) DeletePlan(planID string) error {
	return s.planRepo.Delete(planID)
}

// writeFeatures inserts feature rows one by one, collecting failures
// instead of aborting
func (s *FitnessService) writeFeatures(planID string, features []string) []string {
	var failed []string
	for _, feature := range features {
		if err := s.planRepo.AddFeature(planID, feature); err != nil {
			s.logger.WithFields(logrus.Fields{
				"plan_id": planID,
				"feature": feature,
			}).WithError(err).Warn("Failed to persist plan feature")
			failed = append(failed, feature)
		}
	}
	return failed
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
