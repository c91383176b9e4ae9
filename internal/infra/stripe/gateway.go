package stripe

import (
	"context"
	"math"
	"time"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/paymentintent"
	"github.com/stripe/stripe-go/v75/refund"

	"payments-service/internal/payments"
)

// Gateway implements the card-gateway port on top of Stripe PaymentIntents.
// Every call runs under a bounded timeout; a deadline hit surfaces as an
// ordinary error and is treated by the orchestrator as a gateway failure.
type Gateway struct {
	timeout time.Duration
}

func NewGateway(apiKey string, timeout time.Duration) *Gateway {
	stripe.Key = apiKey
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Gateway{timeout: timeout}
}

func (g *Gateway) CreateIntent(ctx context.Context, amount float64, currency string) (*payments.ChargeIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return &payments.ChargeIntent{
		Reference:    pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

func (g *Gateway) Refund(ctx context.Context, reference string) (*payments.RefundReceipt, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(reference),
	}
	params.Context = ctx

	r, err := refund.New(params)
	if err != nil {
		return nil, err
	}
	return &payments.RefundReceipt{RefundID: r.ID}, nil
}

// toMinorUnits converts a decimal amount to the integer minor units Stripe
// expects (cents for eur/usd).
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
