package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanoasis/venue-backend/internal/config"
	"github.com/urbanoasis/venue-backend/internal/database"
	"github.com/urbanoasis/venue-backend/internal/models"
	"github.com/urbanoasis/venue-backend/internal/services"
)

// mockDatabase adapts a sqlmock *sql.DB to the database.DB interface
type mockDatabase struct {
	db *sql.DB
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Get not implemented in mock")
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Select not implemented in mock")
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}

type bookingFixture struct {
	handler      *EventBookingHandler
	mock         sqlmock.Sqlmock
	gatewayCalls *int
}

func newBookingFixture(t *testing.T, gatewayHandler http.HandlerFunc) *bookingFixture {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if gatewayHandler != nil {
			gatewayHandler(w, r)
		}
	}))
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	wrapped := &mockDatabase{db: db}
	bookingRepo := database.NewEventBookingRepository(wrapped)
	spaceRepo := database.NewEventSpaceRepository(wrapped)
	paymentSvc := services.NewPaystackService(&config.PaymentConfig{
		BaseURL:   server.URL,
		SecretKey: "sk_test_secret",
		Currency:  "GHS",
	}, logger)
	transitionSvc := services.NewTransitionService(
		database.NewOrderRepository(wrapped),
		database.NewReservationRepository(wrapped),
		bookingRepo,
		database.NewMembershipRepository(wrapped),
		logger,
	)

	return &bookingFixture{
		handler:      NewEventBookingHandler(bookingRepo, spaceRepo, paymentSvc, transitionSvc),
		mock:         mock,
		gatewayCalls: &calls,
	}
}

func (f *bookingFixture) post(t *testing.T, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	f.handler.CreateBooking(c)
	return w
}

func (f *bookingFixture) expectSpace(capacity int, rate float64, active bool) {
	f.mock.ExpectQuery(`FROM event_spaces`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "capacity", "rate", "active", "created_at"}).
			AddRow("space-1", "Garden Pavilion", nil, capacity, rate, active, time.Now()))
}

func bookingRequestBody() map[string]interface{} {
	return map[string]interface{}{
		"event_space_id": "space-1",
		"customer_name":  "Kofi Boateng",
		"customer_phone": "0209876543",
		"event_date":     "2025-09-20",
		"start_time":     "14:00",
		"end_time":       "18:00",
		"guests":         50,
		"payment_method": "cash",
	}
}

func TestEventBookingHandler_CreateBooking(t *testing.T) {
	t.Run("cash booking approved with payment pending", func(t *testing.T) {
		f := newBookingFixture(t, nil)
		f.expectSpace(100, 1200.00, true)

		now := time.Now()
		f.mock.ExpectQuery(`INSERT INTO event_bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		w := f.post(t, bookingRequestBody())

		require.Equal(t, http.StatusCreated, w.Code)

		var booking models.EventBooking
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
		assert.Equal(t, models.EventBookingStatusApproved, booking.Status)
		assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)
		assert.Equal(t, 1200.00, booking.Amount)
		assert.NotEmpty(t, booking.BookingReference)
		assert.Equal(t, 0, *f.gatewayCalls)
	})

	t.Run("card booking without reference rejected before any gateway call", func(t *testing.T) {
		f := newBookingFixture(t, nil)

		body := bookingRequestBody()
		body["payment_method"] = "card"
		body["payment_status"] = "paid"

		w := f.post(t, body)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "payment_reference")
		assert.Equal(t, 0, *f.gatewayCalls)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("paid hint is verified against the gateway", func(t *testing.T) {
		f := newBookingFixture(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transaction/verify/T100200300", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  true,
				"message": "Verification successful",
				"data": map[string]interface{}{
					"status":    "success",
					"reference": "T100200300",
					"amount":    120000,
					"currency":  "GHS",
					"customer":  map[string]interface{}{"email": "kofi@example.com"},
				},
			})
		})
		f.expectSpace(100, 1200.00, true)

		now := time.Now()
		f.mock.ExpectQuery(`INSERT INTO event_bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		body := bookingRequestBody()
		body["payment_method"] = "card"
		body["payment_reference"] = "T100200300"
		body["payment_status"] = "paid"

		w := f.post(t, body)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *f.gatewayCalls)

		var booking models.EventBooking
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
		assert.Equal(t, models.EventBookingStatusApproved, booking.Status)
		assert.Equal(t, models.PaymentStatusPaid, booking.PaymentStatus)
		assert.Equal(t, 1200.00, booking.Amount)
	})

	t.Run("failed verification aborts the booking", func(t *testing.T) {
		f := newBookingFixture(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  false,
				"message": "Transaction reference not found",
			})
		})
		f.expectSpace(100, 1200.00, true)

		body := bookingRequestBody()
		body["payment_method"] = "mobile_money"
		body["payment_reference"] = "BOGUS"
		body["payment_status"] = "paid"

		w := f.post(t, body)

		require.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "Payment failed")
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("unconfirmed electronic booking stays pending without gateway call", func(t *testing.T) {
		f := newBookingFixture(t, nil)
		f.expectSpace(100, 1200.00, true)

		now := time.Now()
		f.mock.ExpectQuery(`INSERT INTO event_bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		body := bookingRequestBody()
		body["payment_method"] = "mobile_money"
		body["payment_reference"] = "T100200300"

		w := f.post(t, body)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 0, *f.gatewayCalls)

		var booking models.EventBooking
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
		assert.Equal(t, models.EventBookingStatusPending, booking.Status)
		assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)
	})

	t.Run("inactive space rejected", func(t *testing.T) {
		f := newBookingFixture(t, nil)
		f.expectSpace(100, 1200.00, false)

		w := f.post(t, bookingRequestBody())

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "not available")
	})

	t.Run("guest count above capacity rejected", func(t *testing.T) {
		f := newBookingFixture(t, nil)
		f.expectSpace(30, 1200.00, true)

		w := f.post(t, bookingRequestBody())

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "capacity")
	})

	t.Run("unknown space", func(t *testing.T) {
		f := newBookingFixture(t, nil)
		f.mock.ExpectQuery(`FROM event_spaces`).WillReturnError(sql.ErrNoRows)

		w := f.post(t, bookingRequestBody())
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEventBookingHandler_UpdateBooking(t *testing.T) {
	patch := func(t *testing.T, f *bookingFixture, id string, body interface{}) *httptest.ResponseRecorder {
		payload, err := json.Marshal(body)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/"+id, bytes.NewReader(payload))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: id}}

		f.handler.UpdateBooking(c)
		return w
	}

	bookingRow := func(status, payment string) *sqlmock.Rows {
		now := time.Now()
		return sqlmock.NewRows([]string{
			"id", "booking_reference", "event_space_id", "customer_name", "customer_phone",
			"customer_email", "event_date", "start_time", "end_time", "guests", "amount",
			"status", "payment_status", "payment_method", "payment_reference", "source_platform",
			"created_at", "updated_at",
		}).AddRow(
			"booking-1", "EVT-1", "space-1", "Kofi Boateng", "0209876543",
			nil, "2025-09-20", "14:00", "18:00", 50, 1200.00,
			status, payment, "cash", nil, nil,
			now, now,
		)
	}

	t.Run("status and payment_status together rejected", func(t *testing.T) {
		f := newBookingFixture(t, nil)

		w := patch(t, f, "booking-1", map[string]interface{}{
			"status":         "approved",
			"payment_status": "paid",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty body rejected", func(t *testing.T) {
		f := newBookingFixture(t, nil)

		w := patch(t, f, "booking-1", map[string]interface{}{})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid transition maps to 400", func(t *testing.T) {
		f := newBookingFixture(t, nil)
		f.mock.ExpectQuery(`FROM event_bookings`).
			WillReturnRows(bookingRow("cancelled", "pending"))

		w := patch(t, f, "booking-1", map[string]interface{}{"status": "approved"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid status transition")
	})

	t.Run("payment_status other than paid rejected", func(t *testing.T) {
		f := newBookingFixture(t, nil)

		w := patch(t, f, "booking-1", map[string]interface{}{"payment_status": "refunded"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("approved booking marked paid", func(t *testing.T) {
		f := newBookingFixture(t, nil)
		f.mock.ExpectQuery(`FROM event_bookings`).
			WillReturnRows(bookingRow("approved", "pending"))
		f.mock.ExpectExec(`UPDATE event_bookings`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := patch(t, f, "booking-1", map[string]interface{}{"payment_status": "paid"})
		require.Equal(t, http.StatusOK, w.Code)

		var booking models.EventBooking
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
		assert.Equal(t, models.PaymentStatusPaid, booking.PaymentStatus)
	})
}
