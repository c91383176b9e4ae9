package stripewebhooks

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"

	"payments-service/config"
	domain "payments-service/internal/domain/payments"
	stripeinfra "payments-service/internal/infra/stripe"
)

// PaymentServiceContract is the slice of the orchestrator the webhook needs:
// resolving a gateway reference and applying the reported outcome through
// the ordinary validated update path.
type PaymentServiceContract interface {
	ApplyGatewayResult(ctx context.Context, reference string, target domain.Status) (*domain.Payment, error)
}

type Handler struct {
	svc PaymentServiceContract
}

func NewHandler(svc PaymentServiceContract) *Handler {
	return &Handler{svc: svc}
}

// StripeWebhook receives asynchronous payment-intent outcomes from Stripe.
// Events for unknown references, repeats, and out-of-order notifications are
// acknowledged without effect so Stripe stops retrying them.
func (h *Handler) StripeWebhook(c *gin.Context) {
	endpointSecret := config.STRIPE_WEBHOOK_SECRET
	if endpointSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed", "payment_intent.canceled":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse payment intent"})
			return
		}
		if err := h.applyIntent(c.Request.Context(), string(event.Type), &intent); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})

	default:
		// Acknowledge unknown events to avoid retries
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func (h *Handler) applyIntent(ctx context.Context, eventType string, intent *stripe.PaymentIntent) error {
	target, ok := intentTarget(eventType, intent)
	if !ok {
		return nil
	}

	_, err := h.svc.ApplyGatewayResult(ctx, intent.ID, target)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidTransition):
		// No matching record, a repeat, or an out-of-order event. Nothing to
		// apply; ack so Stripe stops retrying.
		return nil
	default:
		return err
	}
}

func intentTarget(eventType string, intent *stripe.PaymentIntent) (domain.Status, bool) {
	switch eventType {
	case "payment_intent.succeeded":
		return domain.StatusCompleted, true
	case "payment_intent.payment_failed":
		return domain.StatusFailed, true
	case "payment_intent.canceled":
		return stripeinfra.NormalizeIntentStatus(string(intent.Status))
	default:
		return "", false
	}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
