package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urbanoasis/venue-backend/internal/config"
	"github.com/urbanoasis/venue-backend/internal/models"
)

// PaystackService handles payment gateway integration with Paystack
type PaystackService struct {
	config *config.PaymentConfig
	logger *logrus.Logger
	client *http.Client
}

// InitializeTransactionRequest is the payload for POST /transaction/initialize.
// Amount is in the gateway's minor currency units.
type InitializeTransactionRequest struct {
	Email       string                 `json:"email"`
	Amount      int64                  `json:"amount"`
	Currency    string                 `json:"currency"`
	Reference   string                 `json:"reference,omitempty"`
	CallbackURL string                 `json:"callback_url,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// InitializedTransaction is the result of a successful initialize call
type InitializedTransaction struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// VerifiedTransaction is the result of a successful verify call. Amount is
// converted back to major currency units.
type VerifiedTransaction struct {
	Reference     string
	Currency      string
	Amount        float64
	CustomerEmail string
	PaidAt        string
	Metadata      map[string]interface{}
}

// paystackEnvelope mirrors the common wrapper around every Paystack response
type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type verifyData struct {
	Status    string                 `json:"status"`
	Reference string                 `json:"reference"`
	Amount    int64                  `json:"amount"`
	Currency  string                 `json:"currency"`
	PaidAt    string                 `json:"paid_at"`
	Metadata  map[string]interface{} `json:"metadata"`
	Customer  struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// NewPaystackService creates a new Paystack payment service
func NewPaystackService(cfg *config.PaymentConfig, logger *logrus.Logger) *PaystackService {
	return &PaystackService{
		config: cfg,
		logger: logger,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IsConfigured returns true if the gateway secret key is present
func (s *PaystackService) IsConfigured() bool {
	return s.config.SecretKey != ""
}

// InitializeTransaction creates a remote transaction and returns the
// authorization URL the customer must visit to complete payment.
// amountMajor is in major currency units and converted to the gateway's
// minor units (x100) on the wire.
func (s *PaystackService) InitializeTransaction(email string, amountMajor float64, metadata map[string]interface{}) (*InitializedTransaction, error) {
	if !s.IsConfigured() {
		return nil, models.ErrGatewayNotConfigured
	}

	// Round rather than truncate: 1.13 * 100 is 112.999... in float64 and
	// would otherwise go on the wire one minor unit short.
	amountMinor := int64(math.Round(amountMajor * 100))

	request := &InitializeTransactionRequest{
		Email:       email,
		Amount:      amountMinor,
		Currency:    s.config.Currency,
		CallbackURL: s.config.CallbackURL,
		Metadata:    metadata,
	}

	s.logger.WithFields(logrus.Fields{
		"email":    email,
		"amount":   request.Amount,
		"currency": request.Currency,
	}).Info("Initializing Paystack transaction")

	envelope, err := s.post("/transaction/initialize", request)
	if err != nil {
		return nil, err
	}

	if !envelope.Status {
		return nil, &models.GatewayError{Operation: "initialize", Message: envelope.Message}
	}

	var data InitializedTransaction
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse initialize response: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"reference":   data.Reference,
		"access_code": data.AccessCode,
	}).Info("Paystack transaction initialized")

	return &data, nil
}

// VerifyTransaction checks the authoritative state of a transaction by
// reference. It succeeds only when the gateway reports status:true and
// data.status == "success". The call is idempotent: repeated verification
// of the same reference yields the same outcome.
func (s *PaystackService) VerifyTransaction(reference string) (*VerifiedTransaction, error) {
	if !s.IsConfigured() {
		return nil, models.ErrGatewayNotConfigured
	}

	if reference == "" {
		return nil, models.NewValidationError("reference", "is required")
	}

	url := fmt.Sprintf("%s/transaction/verify/%s", s.config.BaseURL, reference)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.SecretKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WithError(err).Error("Failed to call Paystack verify endpoint")
		return nil, &models.GatewayError{Operation: "verify", Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read verify response: %w", err)
	}

	var envelope paystackEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse verify response: %w", err)
	}

	if !envelope.Status {
		s.logger.WithFields(logrus.Fields{
			"reference": reference,
			"message":   envelope.Message,
		}).Warn("Paystack rejected verification")
		return nil, models.ErrVerificationFailed
	}

	var data verifyData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse verify response data: %w", err)
	}

	if data.Status != "success" {
		s.logger.WithFields(logrus.Fields{
			"reference":      reference,
			"gateway_status": data.Status,
		}).Warn("Paystack transaction not successful")
		return nil, models.ErrVerificationFailed
	}

	return &VerifiedTransaction{
		Reference:     data.Reference,
		Currency:      data.Currency,
		Amount:        float64(data.Amount) / 100,
		CustomerEmail: data.Customer.Email,
		PaidAt:        data.PaidAt,
		Metadata:      data.Metadata,
	}, nil
}

// post sends an authenticated JSON POST to the gateway and decodes the
// response envelope
func (s *PaystackService) post(path string, payload interface{}) (*paystackEnvelope, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.config.BaseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WithError(err).Error("Failed to call Paystack endpoint")
		return nil, &models.GatewayError{Operation: "initialize", Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"path":        path,
	}).Debug("Paystack response received")

	var envelope paystackEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		s.logger.WithFields(logrus.Fields{
			"body":  string(body),
			"error": err.Error(),
		}).Error("Failed to parse Paystack response")
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &envelope, nil
}
