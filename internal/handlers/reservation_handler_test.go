package handlers

import (
	"bytes"
	"encoding/json"
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
	"github.com/urbanoasis/venue-backend/internal/database"
	"github.com/urbanoasis/venue-backend/internal/services"
	"github.com/urbanoasis/venue-backend/pkg/validator"
)

type reservationFixture struct {
	handler *ReservationHandler
	mock    sqlmock.Sqlmock
}

func newReservationFixture(t *testing.T) *reservationFixture {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	wrapped := &mockDatabase{db: db}
	reservationRepo := database.NewReservationRepository(wrapped)
	transitionSvc := services.NewTransitionService(
		database.NewOrderRepository(wrapped),
		reservationRepo,
		database.NewEventBookingRepository(wrapped),
		database.NewMembershipRepository(wrapped),
		logger,
	)

	return &reservationFixture{
		handler: NewReservationHandler(reservationRepo, transitionSvc, validator.NewPhoneValidator()),
		mock:    mock,
	}
}

func (f *reservationFixture) post(t *testing.T, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	f.handler.CreateReservation(c)
	return w
}

func reservationRequestBody() map[string]interface{} {
	return map[string]interface{}{
		"name":   "Ama Mensah",
		"email":  "ama@example.com",
		"phone":  "0209876543",
		"date":   "2025-09-18",
		"time":   "19:30",
		"guests": 4,
	}
}

func TestReservationHandler_CreateReservation(t *testing.T) {
	t.Run("international phone is normalized before persisting", func(t *testing.T) {
		fixture := newReservationFixture(t)

		fixture.mock.ExpectQuery(`INSERT INTO restaurant_reservations`).
			WithArgs(
				sqlmock.AnyArg(), sqlmock.AnyArg(), "Ama Mensah", "ama@example.com", "0209876543",
				"2025-09-18", "19:30", 4, "pending",
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(time.Now(), time.Now()))

		body := reservationRequestBody()
		body["phone"] = "+233 20 987-6543"
		w := fixture.post(t, body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"phone":"0209876543"`)
		assert.NoError(t, fixture.mock.ExpectationsWereMet())
	})

	t.Run("unreachable phone rejected before any write", func(t *testing.T) {
		invalid := []string{"12345", "020987654", "02098765432", "2209876543", "020-98-ABCD"}

		for _, phone := range invalid {
			fixture := newReservationFixture(t)

			body := reservationRequestBody()
			body["phone"] = phone
			w := fixture.post(t, body)

			assert.Equal(t, http.StatusBadRequest, w.Code, "phone %q", phone)
			assert.Contains(t, w.Body.String(), "phone")
			assert.NoError(t, fixture.mock.ExpectationsWereMet())
		}
	})

	t.Run("missing guests rejected", func(t *testing.T) {
		fixture := newReservationFixture(t)

		body := reservationRequestBody()
		body["guests"] = 0
		w := fixture.post(t, body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "guests")
	})
}
