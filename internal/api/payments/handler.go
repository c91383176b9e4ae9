package payments

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "payments-service/internal/domain/payments"
	"payments-service/internal/payments"
)

// ServiceContract is the slice of the orchestrator the HTTP layer needs.
type ServiceContract interface {
	Create(ctx context.Context, req payments.CreateRequest) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id string, target domain.Status) (*domain.Payment, error)
	Refund(ctx context.Context, id string) (*domain.Payment, error)
	Get(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	svc ServiceContract
}

func NewHandler(svc ServiceContract) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreatePayment(c *gin.Context) {
	var body CreatePaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid payment fields"})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), payments.CreateRequest{
		Amount:      body.Amount,
		PaymentDate: body.PaymentDate,
		Method:      domain.Method(body.Method),
		ServiceID:   body.ServiceID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toConfirmation(p))
}

func (h *Handler) ListPayments(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetPayment(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	var body UpdateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid status"})
		return
	}

	p, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), domain.Status(body.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) RefundPayment(c *gin.Context) {
	p, err := h.svc.Refund(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePayment(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondError maps the error taxonomy onto HTTP statuses. Reconciliation
// gaps get their own error code so operators can tell them apart from plain
// gateway failures.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrReconciliationRequired):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "code": "reconciliation_required"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidMethod),
		errors.Is(err, domain.ErrUnknownService),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNotRefundable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsGatewayError(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "code": "gateway_error"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
