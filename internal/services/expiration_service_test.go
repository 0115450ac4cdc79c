package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanoasis/venue-backend/internal/database"
)

func newExpirationFixture(t *testing.T, ttl time.Duration) (*ExpirationService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := &mockDatabase{db: db}
	service := NewExpirationService(
		database.NewOrderRepository(wrapped),
		database.NewEventBookingRepository(wrapped),
		testLogger(),
		ttl,
	)
	return service, mock
}

func TestExpirationService_Sweep(t *testing.T) {
	t.Run("cancels stale orders and bookings", func(t *testing.T) {
		service, mock := newExpirationFixture(t, 30*time.Minute)

		mock.ExpectExec(`UPDATE orders`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`UPDATE event_bookings`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		service.Sweep()
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("order failure does not stop the booking pass", func(t *testing.T) {
		service, mock := newExpirationFixture(t, 30*time.Minute)

		mock.ExpectExec(`UPDATE orders`).
			WillReturnError(fmt.Errorf("connection reset"))
		mock.ExpectExec(`UPDATE event_bookings`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		service.Sweep()
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
