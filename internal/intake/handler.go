package intake

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"solvedet-intake/internal/common/config"
	apperrors "solvedet-intake/internal/common/errors"
	"solvedet-intake/internal/common/logger"
	"solvedet-intake/internal/common/mail"
	"solvedet-intake/internal/common/metrics"
)

// Handler is the single entry point for application submissions. It owns
// the full pipeline: validate, verify the mail transport, derive fees,
// render the two documents, dispatch them, respond.
type Handler struct {
	mailCfg   config.MailConfig
	intakeCfg config.IntakeConfig
	transport mail.Transport
	logger    logger.Logger
}

func NewHandler(cfg *config.Config, transport mail.Transport, log logger.Logger) *Handler {
	return &Handler{
		mailCfg:   cfg.Mail,
		intakeCfg: cfg.Intake,
		transport: transport,
		logger:    log.WithFields(map[string]interface{}{"component": "intake-handler"}),
	}
}

// ServeHTTP implements http.Handler. Every response path carries the
// permissive CORS headers, success or failure.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
		// fall through to the pipeline
	default:
		h.respondError(w, apperrors.NewMethodNotAllowedError(r.Method))
		return
	}

	metrics.ApplicationsReceived.Inc()

	requestID := uuid.New().String()
	log := h.logger.WithFields(map[string]interface{}{"requestId": requestID})

	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		log.Warn("failed to decode submission body", map[string]interface{}{"error": err.Error()})
		h.respondError(w, apperrors.NewValidationFailedError("Invalid JSON payload", err.Error()))
		return
	}

	log.Info("received application", map[string]interface{}{
		"clientName":     sub.ClientName,
		"clientEmail":    sub.ClientEmail,
		"totalFee":       sub.TotalFee,
		"currentPayment": sub.CurrentPayment,
		"hasSignatory":   sub.SignatoryName != "",
	})

	if verr := ValidateSubmission(&sub); verr != nil {
		log.Warn("submission validation failed", map[string]interface{}{"error": verr.Message})
		h.respondError(w, verr)
		return
	}

	ctx := r.Context()

	// Fail fast before composing content the transport can never deliver.
	if err := h.transport.Verify(ctx); err != nil {
		log.Error("mail transport verification failed", map[string]interface{}{"error": err.Error()})
		h.respondError(w, apperrors.NewMailConfigError(err))
		return
	}
	log.Info("mail transport verified", nil)

	fees := DeriveFees(&sub)
	now := time.Now()

	sender := h.mailCfg.SenderAddress()
	brand := h.intakeCfg.Brand

	businessMsg := &mail.Message{
		FromName: h.intakeCfg.BusinessSenderName,
		From:     sender,
		To:       h.intakeCfg.OperatorInbox,
		Subject:  BusinessSubject(&sub, brand),
		HTMLBody: RenderBusinessDocument(&sub, fees, brand, now),
	}
	clientMsg := &mail.Message{
		FromName: h.intakeCfg.ClientSenderName,
		From:     sender,
		To:       sub.ClientEmail,
		Subject:  ClientSubject(brand),
		HTMLBody: RenderClientDocument(&sub, fees, brand, now),
	}

	// The client confirmation must never go out before the business
	// notification has been attempted.
	log.Info("sending business notification", map[string]interface{}{"to": businessMsg.To})
	if err := h.send(ctx, "business", businessMsg); err != nil {
		log.Error("business notification send failed", map[string]interface{}{"error": err.Error()})
		h.respondError(w, apperrors.NewDeliveryFailedError("business-notification", err))
		return
	}

	log.Info("sending client confirmation", map[string]interface{}{"to": clientMsg.To})
	if err := h.send(ctx, "client", clientMsg); err != nil {
		log.Error("client confirmation send failed", map[string]interface{}{"error": err.Error()})
		h.respondError(w, apperrors.NewDeliveryFailedError("client-confirmation", err))
		return
	}

	metrics.ApplicationsProcessed.Inc()
	log.Info("application processed", map[string]interface{}{"clientName": sub.ClientName})

	writeJSON(w, http.StatusOK, SuccessResponse{
		Success:       true,
		Message:       "Application processed successfully",
		ClientName:    sub.ClientName,
		PaymentAmount: sub.CurrentPayment,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}

// send dispatches one message and records its duration.
func (h *Handler) send(ctx context.Context, recipient string, msg *mail.Message) error {
	start := time.Now()
	err := h.transport.Send(ctx, msg)
	metrics.EmailSendDuration.WithLabelValues(recipient).Observe(time.Since(start).Seconds())
	return err
}

func setCORSHeaders(w http.ResponseWriter) {
	header := w.Header()
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

// respondError converts a StandardError into the uniform JSON failure body.
// Details are exposed only for server-side delivery and internal errors;
// everything else stays generic toward the client.
func (h *Handler) respondError(w http.ResponseWriter, stdErr *apperrors.StandardError) {
	metrics.ApplicationsFailed.WithLabelValues(string(stdErr.Code)).Inc()

	resp := ErrorResponse{
		Success: false,
		Error:   stdErr.Message,
	}
	switch stdErr.Code {
	case apperrors.ErrCodeDeliveryFailed, apperrors.ErrCodeInternalError:
		resp.Details = stdErr.Details
	}

	writeJSON(w, apperrors.HTTPStatus(stdErr.Code), resp)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
