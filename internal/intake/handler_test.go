package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solvedet-intake/internal/common/config"
	"solvedet-intake/internal/common/logger"
	"solvedet-intake/internal/common/mail"
)

// fakeTransport records verify calls and send attempts and can fail at
// either stage.
type fakeTransport struct {
	verifyCalls int
	verifyErr   error
	attempts    []*mail.Message
	failAttempt int // 1-based attempt number that fails; 0 means never
}

func (f *fakeTransport) Verify(_ context.Context) error {
	f.verifyCalls++
	return f.verifyErr
}

func (f *fakeTransport) Send(_ context.Context, msg *mail.Message) error {
	f.attempts = append(f.attempts, msg)
	if f.failAttempt == len(f.attempts) {
		return errors.New("relay rejected message")
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Mail: config.MailConfig{
			Provider: "smtp",
			SMTP: config.SMTPConfig{
				Host:     "smtp.gmail.com",
				Port:     587,
				Username: "applications@solvedet.com",
				Password: "app-password",
				UseTLS:   true,
			},
		},
		Intake: config.IntakeConfig{
			OperatorInbox:      "info@solvedet.com",
			BusinessSenderName: "SolveDet Applications",
			ClientSenderName:   "SolveDet Team",
			Brand:              testBrand(),
		},
	}
}

func newTestHandler(t *testing.T, transport mail.Transport) *Handler {
	t.Helper()
	return NewHandler(testConfig(), transport, logger.NewTestLogger(t))
}

func postSubmission(t *testing.T, h *Handler, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/applications", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func minimalPayload() map[string]interface{} {
	return map[string]interface{}{
		"clientName":     "Test User",
		"clientEmail":    "t@example.com",
		"clientPhone":    "9999999999",
		"totalFee":       50000,
		"currentPayment": 5000,
	}
}

func assertCORSHeaders(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandler_OptionsPreflight(t *testing.T) {
	transport := &fakeTransport{}
	h := newTestHandler(t, transport)

	req := httptest.NewRequest(http.MethodOptions, "/api/applications", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assertCORSHeaders(t, rec)
	assert.Zero(t, transport.verifyCalls)
	assert.Empty(t, transport.attempts)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	transport := &fakeTransport{}
	h := newTestHandler(t, transport)

	req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assertCORSHeaders(t, rec)

	resp := decodeError(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Method not allowed. Use POST.", resp.Error)
	assert.Empty(t, transport.attempts)
}

func TestHandler_MissingRequiredField(t *testing.T) {
	fields := []string{"clientName", "clientEmail", "clientPhone", "totalFee", "currentPayment"}

	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			transport := &fakeTransport{}
			h := newTestHandler(t, transport)

			payload := minimalPayload()
			delete(payload, field)

			rec := postSubmission(t, h, payload)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assertCORSHeaders(t, rec)

			resp := decodeError(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, "Missing required field: "+field, resp.Error)

			// No transport interaction on a validation failure.
			assert.Zero(t, transport.verifyCalls)
			assert.Empty(t, transport.attempts)
		})
	}
}

func TestHandler_InvalidJSONBody(t *testing.T) {
	transport := &fakeTransport{}
	h := newTestHandler(t, transport)

	req := httptest.NewRequest(http.MethodPost, "/api/applications", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.False(t, resp.Success)
	assert.Empty(t, transport.attempts)
}

func TestHandler_TransportVerificationFailure(t *testing.T) {
	transport := &fakeTransport{verifyErr: errors.New("535 bad credentials")}
	h := newTestHandler(t, transport)

	rec := postSubmission(t, h, minimalPayload())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assertCORSHeaders(t, rec)

	resp := decodeError(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Email configuration error. Please check environment variables.", resp.Error)
	assert.Empty(t, resp.Details, "credential details must not leak to the client")

	assert.Equal(t, 1, transport.verifyCalls)
	assert.Empty(t, transport.attempts, "no sends after failed verification")
}

func TestHandler_BusinessSendFailureStopsPipeline(t *testing.T) {
	transport := &fakeTransport{failAttempt: 1}
	h := newTestHandler(t, transport)

	rec := postSubmission(t, h, minimalPayload())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decodeError(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Details, "business-notification")

	require.Len(t, transport.attempts, 1, "client send must not be attempted")
	assert.Equal(t, "info@solvedet.com", transport.attempts[0].To)
}

func TestHandler_ClientSendFailureAfterBusinessSend(t *testing.T) {
	transport := &fakeTransport{failAttempt: 2}
	h := newTestHandler(t, transport)

	rec := postSubmission(t, h, minimalPayload())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decodeError(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Details, "client-confirmation")

	// The business notification already went out; the response still
	// collapses to a generic server error.
	require.Len(t, transport.attempts, 2)
	assert.Equal(t, "info@solvedet.com", transport.attempts[0].To)
	assert.Equal(t, "t@example.com", transport.attempts[1].To)
}

func TestHandler_SuccessfulSubmission(t *testing.T) {
	transport := &fakeTransport{}
	h := newTestHandler(t, transport)

	rec := postSubmission(t, h, minimalPayload())

	assert.Equal(t, http.StatusOK, rec.Code)
	assertCORSHeaders(t, rec)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Application processed successfully", resp.Message)
	assert.Equal(t, "Test User", resp.ClientName)
	assert.Equal(t, 5000.0, resp.PaymentAmount)
	assert.NotEmpty(t, resp.Timestamp)

	require.Len(t, transport.attempts, 2, "exactly two sends")
	assert.Equal(t, 1, transport.verifyCalls)

	business := transport.attempts[0]
	assert.Equal(t, "info@solvedet.com", business.To)
	assert.Equal(t, "SolveDet Applications", business.FromName)
	assert.Equal(t, "applications@solvedet.com", business.From)
	assert.Contains(t, business.Subject, "Test User")
	assert.Contains(t, business.Subject, "₹5,000")
	assert.Contains(t, business.HTMLBody, "NEW SOLVEDET APPLICATION")

	client := transport.attempts[1]
	assert.Equal(t, "t@example.com", client.To)
	assert.Equal(t, "SolveDet Team", client.FromName)
	assert.Equal(t, "Consulting Agreement Confirmation - SolveDet", client.Subject)
	assert.Contains(t, client.HTMLBody, "Dear Test User,")
}

func TestHandler_SuppliedFeesFlowIntoDocuments(t *testing.T) {
	transport := &fakeTransport{}
	h := newTestHandler(t, transport)

	payload := minimalPayload()
	payload["calculatedFees"] = map[string]interface{}{
		"initiationAmount":   111,
		"confirmationAmount": 222,
		"balanceAmount":      333,
	}

	rec := postSubmission(t, h, payload)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, transport.attempts, 2)
	assert.Contains(t, transport.attempts[0].HTMLBody, "111 INR")
	assert.Contains(t, transport.attempts[0].HTMLBody, "222 INR")
	assert.Contains(t, transport.attempts[1].HTMLBody, "333 INR")
}
