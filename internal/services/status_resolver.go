package services

import (
	"github.com/urbanoasis/venue-backend/internal/models"
)

// Resolution is the jointly computed outcome of a new booking request. The
// fulfillment status and payment status are always derived together from
// (payment_method, payment_reference, payment_status_hint) so that a record
// can never be created in an inconsistent pair such as cancelled-but-paid.
type Resolution int

const (
	// ResolutionAcceptedUnpaid covers cash bookings: the venue accepts the
	// booking provisionally and payment is collected on site.
	ResolutionAcceptedUnpaid Resolution = iota

	// ResolutionPaid covers electronic payments the caller has verified with
	// the gateway before invoking the resolver.
	ResolutionPaid

	// ResolutionPendingPayment covers electronic payments that carry a
	// reference but no confirmed success yet.
	ResolutionPendingPayment
)

// Resolve computes the resolution and payment status for a booking request.
//
// A client-supplied "paid" hint is only honored when the caller has already
// verified the transaction with the gateway; handlers are responsible for
// that verification and must downgrade the hint when verification fails.
// Electronic requests without a reference are rejected by the validators
// before this point; the check here is a guard, not the primary gate.
func Resolve(method models.PaymentMethod, reference *string, hint *string) (Resolution, models.PaymentStatus, error) {
	if method == models.PaymentMethodCash {
		return ResolutionAcceptedUnpaid, models.PaymentStatusPending, nil
	}

	if reference == nil || *reference == "" {
		return 0, "", models.ErrMissingPaymentReference
	}

	if hint != nil && models.PaymentStatus(*hint) == models.PaymentStatusPaid {
		return ResolutionPaid, models.PaymentStatusPaid, nil
	}

	return ResolutionPendingPayment, pendingHint(hint), nil
}

// pendingHint maps an unconfirmed hint onto a payment status. Only pending
// and failed are accepted from the client; anything else is pending.
func pendingHint(hint *string) models.PaymentStatus {
	if hint == nil {
		return models.PaymentStatusPending
	}
	switch s := models.PaymentStatus(*hint); s {
	case models.PaymentStatusPending, models.PaymentStatusFailed:
		return s
	}
	return models.PaymentStatusPending
}

// ResolveOrderStatus computes the initial (status, payment_status) pair for
// a food order. Orders enter the fulfillment pipeline at pending regardless
// of payment outcome; only the payment axis varies.
func ResolveOrderStatus(method models.PaymentMethod, reference *string, hint *string) (models.OrderStatus, models.PaymentStatus, error) {
	_, payment, err := Resolve(method, reference, hint)
	if err != nil {
		return "", "", err
	}
	return models.OrderStatusPending, payment, nil
}

// ResolveEventBookingStatus computes the initial (status, payment_status)
// pair for an event-space booking. Cash bookings are provisionally approved
// with payment deferred; verified electronic payments are approved and
// paid; unconfirmed electronic payments stay pending on both axes.
func ResolveEventBookingStatus(method models.PaymentMethod, reference *string, hint *string) (models.EventBookingStatus, models.PaymentStatus, error) {
	resolution, payment, err := Resolve(method, reference, hint)
	if err != nil {
		return "", "", err
	}
	switch resolution {
	case ResolutionAcceptedUnpaid, ResolutionPaid:
		return models.EventBookingStatusApproved, payment, nil
	default:
		return models.EventBookingStatusPending, payment, nil
	}
}

// ResolveMembershipStatus computes the initial (status, payment_status)
// pair for a gym membership purchase. A membership only becomes active once
// its payment is confirmed.
func ResolveMembershipStatus(method models.PaymentMethod, reference *string, hint *string) (models.MembershipStatus, models.PaymentStatus, error) {
	resolution, payment, err := Resolve(method, reference, hint)
	if err != nil {
		return "", "", err
	}
	if resolution == ResolutionPaid {
		return models.MembershipStatusActive, payment, nil
	}
	return models.MembershipStatusPending, payment, nil
}
