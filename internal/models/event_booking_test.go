package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEventBookingRequest() *CreateEventBookingRequest {
	return &CreateEventBookingRequest{
		EventSpaceID:  "space-1",
		CustomerName:  "Kofi Boateng",
		CustomerPhone: "0209876543",
		EventDate:     "2025-09-20",
		StartTime:     "14:00",
		EndTime:       "18:00",
		Guests:        50,
		PaymentMethod: PaymentMethodCash,
	}
}

func TestCreateEventBookingRequest_Validate(t *testing.T) {
	t.Run("valid cash booking", func(t *testing.T) {
		assert.NoError(t, validEventBookingRequest().Validate())
	})

	t.Run("required fields", func(t *testing.T) {
		cases := []struct {
			field  string
			mutate func(*CreateEventBookingRequest)
		}{
			{"customer_name", func(r *CreateEventBookingRequest) { r.CustomerName = "" }},
			{"customer_phone", func(r *CreateEventBookingRequest) { r.CustomerPhone = "" }},
			{"event_space_id", func(r *CreateEventBookingRequest) { r.EventSpaceID = "" }},
			{"event_date", func(r *CreateEventBookingRequest) { r.EventDate = "" }},
			{"start_time", func(r *CreateEventBookingRequest) { r.StartTime = "" }},
			{"end_time", func(r *CreateEventBookingRequest) { r.EndTime = "" }},
		}

		for _, tc := range cases {
			t.Run(tc.field, func(t *testing.T) {
				req := validEventBookingRequest()
				tc.mutate(req)
				err := req.Validate()

				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tc.field, validationErr.Field)
			})
		}
	})

	t.Run("end time must be after start time", func(t *testing.T) {
		req := validEventBookingRequest()
		req.StartTime = "18:00"
		req.EndTime = "14:00"
		err := req.Validate()

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "end_time", validationErr.Field)

		req.EndTime = "18:00"
		assert.Error(t, req.Validate())
	})

	t.Run("electronic payment without reference", func(t *testing.T) {
		req := validEventBookingRequest()
		req.PaymentMethod = PaymentMethodCard
		assert.ErrorIs(t, req.Validate(), ErrMissingPaymentReference)
	})

	t.Run("electronic payment with reference", func(t *testing.T) {
		req := validEventBookingRequest()
		req.PaymentMethod = PaymentMethodMobileMoney
		ref := "T100200300"
		req.PaymentReference = &ref
		assert.NoError(t, req.Validate())
	})
}

func TestEventBookingStatus(t *testing.T) {
	t.Run("recognized statuses", func(t *testing.T) {
		for _, s := range []EventBookingStatus{EventBookingStatusPending, EventBookingStatusApproved, EventBookingStatusCancelled} {
			assert.True(t, s.IsValid(), string(s))
		}
		assert.False(t, EventBookingStatus("rejected").IsValid())
	})

	t.Run("pending may be approved or cancelled", func(t *testing.T) {
		assert.True(t, EventBookingStatusPending.CanTransitionTo(EventBookingStatusApproved))
		assert.True(t, EventBookingStatusPending.CanTransitionTo(EventBookingStatusCancelled))
	})

	t.Run("approved and cancelled are terminal", func(t *testing.T) {
		assert.True(t, EventBookingStatusApproved.IsTerminal())
		assert.True(t, EventBookingStatusCancelled.IsTerminal())
		assert.False(t, EventBookingStatusApproved.CanTransitionTo(EventBookingStatusCancelled))
		assert.False(t, EventBookingStatusCancelled.CanTransitionTo(EventBookingStatusPending))
	})
}
