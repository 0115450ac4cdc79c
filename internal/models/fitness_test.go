package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertFitnessPlanRequest_Validate(t *testing.T) {
	valid := func() *UpsertFitnessPlanRequest {
		return &UpsertFitnessPlanRequest{
			Name:           "Premium",
			Description:    "Full gym access with personal training",
			Price:          350.00,
			DurationMonths: 3,
			Features:       []string{"24/7 access", "Personal trainer"},
		}
	}

	t.Run("valid plan", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		req := valid()
		req.Name = ""
		err := req.Validate()

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "name", validationErr.Field)
	})

	t.Run("missing description", func(t *testing.T) {
		req := valid()
		req.Description = ""
		assert.Error(t, req.Validate())
	})

	t.Run("non-positive price", func(t *testing.T) {
		req := valid()
		req.Price = 0
		assert.Error(t, req.Validate())

		req.Price = -10
		assert.Error(t, req.Validate())
	})

	t.Run("non-positive duration", func(t *testing.T) {
		req := valid()
		req.DurationMonths = 0
		err := req.Validate()

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "duration_months", validationErr.Field)
	})

	t.Run("plan without features is allowed", func(t *testing.T) {
		req := valid()
		req.Features = nil
		assert.NoError(t, req.Validate())
	})
}

func TestCreateMembershipRequest_Validate(t *testing.T) {
	valid := func() *CreateMembershipRequest {
		return &CreateMembershipRequest{
			PlanID:        "plan-1",
			MemberName:    "Esi Owusu",
			MemberEmail:   "esi@example.com",
			PaymentMethod: PaymentMethodCash,
		}
	}

	t.Run("valid cash purchase", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("required fields", func(t *testing.T) {
		req := valid()
		req.PlanID = ""
		assert.Error(t, req.Validate())

		req = valid()
		req.MemberName = ""
		assert.Error(t, req.Validate())

		req = valid()
		req.MemberEmail = ""
		assert.Error(t, req.Validate())
	})

	t.Run("electronic purchase without reference", func(t *testing.T) {
		req := valid()
		req.PaymentMethod = PaymentMethodMobileMoney
		assert.ErrorIs(t, req.Validate(), ErrMissingPaymentReference)
	})

	t.Run("electronic purchase with reference", func(t *testing.T) {
		req := valid()
		req.PaymentMethod = PaymentMethodCard
		ref := "T100200300"
		req.PaymentReference = &ref
		assert.NoError(t, req.Validate())
	})
}

func TestMembershipStatus_IsValid(t *testing.T) {
	for _, s := range []MembershipStatus{MembershipStatusPending, MembershipStatusActive, MembershipStatusCancelled, MembershipStatusExpired} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, MembershipStatus("frozen").IsValid())
	assert.False(t, MembershipStatus("").IsValid())
}
