package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urbanoasis/venue-backend/internal/database"
)

// ExpirationService cancels bookings and orders that have been waiting for
// an electronic payment longer than the configured TTL. Cash records are
// never touched; their payment is collected on site.
type ExpirationService struct {
	orderRepo   *database.OrderRepository
	bookingRepo *database.EventBookingRepository
	logger      *logrus.Logger
	ttl         time.Duration
}

// NewExpirationService creates a new ExpirationService
func NewExpirationService(
	orderRepo *database.OrderRepository,
	bookingRepo *database.EventBookingRepository,
	logger *logrus.Logger,
	ttl time.Duration,
) *ExpirationService {
	return &ExpirationService{
		orderRepo:   orderRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
		ttl:         ttl,
	}
}

// Sweep runs one expiration pass over orders and event bookings
func (s *ExpirationService) Sweep() {
	cutoff := time.Now().Add(-s.ttl)

	orders, err := s.orderRepo.ExpireStalePending(cutoff)
	if err != nil {
		s.logger.WithError(err).Error("Failed to expire stale pending orders")
	} else if orders > 0 {
		s.logger.WithFields(logrus.Fields{
			"count":  orders,
			"cutoff": cutoff,
		}).Info("Expired stale pending orders")
	}

	bookings, err := s.bookingRepo.ExpireStalePending(cutoff)
	if err != nil {
		s.logger.WithError(err).Error("Failed to expire stale pending event bookings")
	} else if bookings > 0 {
		s.logger.WithFields(logrus.Fields{
			"count":  bookings,
			"cutoff": cutoff,
		}).Info("Expired stale pending event bookings")
	}
}
