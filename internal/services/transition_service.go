package services

import (
	"github.com/sirupsen/logrus"
	"github.com/urbanoasis/venue-backend/internal/database"
	"github.com/urbanoasis/venue-backend/internal/models"
)

// TransitionService enforces the administrative status state machines. All
// transitions are triggered by administrator action only; the allow-list is
// checked against the current persisted status before any update, and a
// rejected transition leaves the record untouched.
type TransitionService struct {
	orderRepo       *database.OrderRepository
	reservationRepo *database.ReservationRepository
	bookingRepo     *database.EventBookingRepository
	membershipRepo  *database.MembershipRepository
	logger          *logrus.Logger
}

// NewTransitionService creates a new TransitionService
func NewTransitionService(
	orderRepo *database.OrderRepository,
	reservationRepo *database.ReservationRepository,
	bookingRepo *database.EventBookingRepository,
	membershipRepo *database.MembershipRepository,
	logger *logrus.Logger,
) *TransitionService {
	return &TransitionService{
		orderRepo:       orderRepo,
		reservationRepo: reservationRepo,
		bookingRepo:     bookingRepo,
		membershipRepo:  membershipRepo,
		logger:          logger,
	}
}

// TransitionOrder moves an order to the target status
func (s *TransitionService) TransitionOrder(orderID string, target models.OrderStatus) (*models.Order, error) {
	if !target.IsValid() {
		return nil, models.ErrInvalidStatus
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(target) {
		s.logger.WithFields(logrus.Fields{
			"order_id": orderID,
			"from":     order.Status,
			"to":       target,
		}).Warn("Rejected order status transition")
		return nil, models.ErrInvalidStatus
	}

	if err := s.orderRepo.UpdateStatus(orderID, target); err != nil {
		return nil, err
	}

	order.Status = target
	s.logger.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   target,
	}).Info("Order status updated")

	return order, nil
}

// TransitionReservation moves a reservation to the target status
func (s *TransitionService) TransitionReservation(reservationID string, target models.ReservationStatus) (*models.Reservation, error) {
	if !target.IsValid() {
		return nil, models.ErrInvalidStatus
	}

	reservation, err := s.reservationRepo.GetByID(reservationID)
	if err != nil {
		return nil, err
	}

	if !reservation.Status.CanTransitionTo(target) {
		return nil, models.ErrInvalidStatus
	}

	if err := s.reservationRepo.UpdateStatus(reservationID, target); err != nil {
		return nil, err
	}

	reservation.Status = target
	s.logger.WithFields(logrus.Fields{
		"reservation_id": reservationID,
		"status":         target,
	}).Info("Reservation status updated")

	return reservation, nil
}

// TransitionEventBooking moves an event booking to the target status
func (s *TransitionService) TransitionEventBooking(bookingID string, target models.EventBookingStatus) (*models.EventBooking, error) {
	if !target.IsValid() {
		return nil, models.ErrInvalidStatus
	}

	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(target) {
		return nil, models.ErrInvalidStatus
	}

	if err := s.bookingRepo.UpdateStatus(bookingID, target); err != nil {
		return nil, err
	}

	booking.Status = target
	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"status":     target,
	}).Info("Event booking status updated")

	return booking, nil
}

// MarkEventBookingPaid moves an event booking's payment status from pending
// to paid. The transition is gated on the booking already being approved.
func (s *TransitionService) MarkEventBookingPaid(bookingID string) (*models.EventBooking, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != models.EventBookingStatusApproved {
		return nil, models.ErrInvalidStatus
	}
	if booking.PaymentStatus != models.PaymentStatusPending {
		return nil, models.ErrInvalidStatus
	}

	if err := s.bookingRepo.UpdatePaymentStatus(bookingID, models.PaymentStatusPaid); err != nil {
		return nil, err
	}

	booking.PaymentStatus = models.PaymentStatusPaid
	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
	}).Info("Event booking marked paid")

	return booking, nil
}

// MarkMembershipPaid confirms payment for a membership. Payment
// confirmation forces the membership active in the same database write.
func (s *TransitionService) MarkMembershipPaid(membershipID string) (*models.Membership, error) {
	membership, err := s.membershipRepo.GetByID(membershipID)
	if err != nil {
		return nil, err
	}

	if membership.PaymentStatus != models.PaymentStatusPending {
		return nil, models.ErrInvalidStatus
	}

	if err := s.membershipRepo.MarkPaid(membershipID); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"membership_id": membershipID,
	}).Info("Membership payment confirmed, membership activated")

	return s.membershipRepo.GetByID(membershipID)
}
