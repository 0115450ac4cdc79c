package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanoasis/venue-backend/internal/config"
	"github.com/urbanoasis/venue-backend/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestPaystackService(baseURL string) *PaystackService {
	return NewPaystackService(&config.PaymentConfig{
		BaseURL:   baseURL,
		SecretKey: "sk_test_secret",
		Currency:  "GHS",
	}, testLogger())
}

func TestPaystackService_InitializeTransaction(t *testing.T) {
	t.Run("successful initialization", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/transaction/initialize", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

			var req InitializeTransactionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ama@example.com", req.Email)
			assert.Equal(t, int64(50000), req.Amount)
			assert.Equal(t, "GHS", req.Currency)

			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  true,
				"message": "Authorization URL created",
				"data": map[string]interface{}{
					"authorization_url": "https://checkout.paystack.com/abc123",
					"access_code":       "abc123",
					"reference":         "T100200300",
				},
			})
		}))
		defer server.Close()

		service := newTestPaystackService(server.URL)
		result, err := service.InitializeTransaction("ama@example.com", 500.00, map[string]interface{}{"order_reference": "ORD-7F3A21C9"})

		require.NoError(t, err)
		assert.Equal(t, "https://checkout.paystack.com/abc123", result.AuthorizationURL)
		assert.Equal(t, "T100200300", result.Reference)
	})

	t.Run("fractional amounts round to the exact minor unit", func(t *testing.T) {
		amounts := []struct {
			major float64
			minor int64
		}{
			{1.13, 113},
			{8.20, 820},
			{170.00, 17000},
			{1999.99, 199999},
		}

		var received []int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req InitializeTransactionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			received = append(received, req.Amount)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": true,
				"data":   map[string]interface{}{"reference": "T100200300"},
			})
		}))
		defer server.Close()

		service := newTestPaystackService(server.URL)
		for _, amount := range amounts {
			_, err := service.InitializeTransaction("ama@example.com", amount.major, nil)
			require.NoError(t, err)
		}

		require.Len(t, received, len(amounts))
		for i, amount := range amounts {
			assert.Equal(t, amount.minor, received[i], "wire amount for %v", amount.major)
		}
	})

	t.Run("gateway rejection surfaces message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  false,
				"message": "Invalid email address",
			})
		}))
		defer server.Close()

		service := newTestPaystackService(server.URL)
		_, err := service.InitializeTransaction("not-an-email", 100.00, nil)

		require.Error(t, err)
		var gatewayErr *models.GatewayError
		require.ErrorAs(t, err, &gatewayErr)
		assert.Equal(t, "initialize", gatewayErr.Operation)
		assert.Contains(t, gatewayErr.Message, "Invalid email")
	})

	t.Run("missing secret key", func(t *testing.T) {
		service := NewPaystackService(&config.PaymentConfig{Currency: "GHS"}, testLogger())
		_, err := service.InitializeTransaction("ama@example.com", 100.00, nil)
		assert.ErrorIs(t, err, models.ErrGatewayNotConfigured)
	})
}

func TestPaystackService_VerifyTransaction(t *testing.T) {
	successPayload := map[string]interface{}{
		"status":  true,
		"message": "Verification successful",
		"data": map[string]interface{}{
			"status":    "success",
			"reference": "T100200300",
			"amount":    50000,
			"currency":  "GHS",
			"paid_at":   "2025-08-12T14:03:22.000Z",
			"customer": map[string]interface{}{
				"email": "ama@example.com",
			},
			"metadata": map[string]interface{}{
				"order_reference": "ORD-7F3A21C9",
			},
		},
	}

	t.Run("successful verification converts minor units", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/transaction/verify/T100200300", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(successPayload)
		}))
		defer server.Close()

		service := newTestPaystackService(server.URL)
		result, err := service.VerifyTransaction("T100200300")

		require.NoError(t, err)
		assert.Equal(t, "T100200300", result.Reference)
		assert.Equal(t, "GHS", result.Currency)
		assert.Equal(t, 500.00, result.Amount)
		assert.Equal(t, "ama@example.com", result.CustomerEmail)
		assert.Equal(t, "ORD-7F3A21C9", result.Metadata["order_reference"])
	})

	t.Run("repeated verification yields the same outcome", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			json.NewEncoder(w).Encode(successPayload)
		}))
		defer server.Close()

		service := newTestPaystackService(server.URL)

		first, err := service.VerifyTransaction("T100200300")
		require.NoError(t, err)
		second, err := service.VerifyTransaction("T100200300")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 2, calls)
	})

	t.Run("envelope failure maps to verification error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  false,
				"message": "Transaction reference not found",
			})
		}))
		defer server.Close()

		service := newTestPaystackService(server.URL)
		_, err := service.VerifyTransaction("UNKNOWN-REF")
		assert.ErrorIs(t, err, models.ErrVerificationFailed)
	})

	t.Run("non-success transaction state maps to verification error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  true,
				"message": "Verification successful",
				"data": map[string]interface{}{
					"status":    "abandoned",
					"reference": "T100200300",
				},
			})
		}))
		defer server.Close()

		service := newTestPaystackService(server.URL)
		_, err := service.VerifyTransaction("T100200300")
		assert.ErrorIs(t, err, models.ErrVerificationFailed)
	})

	t.Run("empty reference rejected before any network call", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()

		service := newTestPaystackService(server.URL)
		_, err := service.VerifyTransaction("")

		require.Error(t, err)
		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, 0, calls)
	})

	t.Run("missing secret key", func(t *testing.T) {
		service := NewPaystackService(&config.PaymentConfig{Currency: "GHS"}, testLogger())
		_, err := service.VerifyTransaction("T100200300")
		assert.ErrorIs(t, err, models.ErrGatewayNotConfigured)
	})
}
