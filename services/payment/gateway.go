package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// Charge is the outcome of a gateway call.
type Charge struct {
	Reference string
	Succeeded bool
}

// PaymentGateway charges a validated card.
type PaymentGateway interface {
	Charge(ctx context.Context, bookingID string, amount float64, cardLast4 string) (*Charge, error)
}

// SimulatedGateway approves every charge.
type SimulatedGateway struct{}

func (SimulatedGateway) Charge(_ context.Context, _ string, _ float64, _ string) (*Charge, error) {
	return &Charge{Reference: "sim_" + uuid.NewString(), Succeeded: true}, nil
}

// StripeGateway confirms a PaymentIntent with Stripe's test card.
// stripe.Key must be set by the caller.
type StripeGateway struct {
	Currency string
}

func (g StripeGateway) Charge(ctx context.Context, bookingID string, amount float64, cardLast4 string) (*Charge, error) {
	currency := g.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(math.Round(amount * 100))),
		Currency:           stripe.String(currency),
		PaymentMethod:      stripe.String("pm_card_visa"),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Confirm:            stripe.Bool(true),
		Description:        stripe.String("FlyNext booking " + bookingID),
	}
	params.Context = ctx
	params.AddMetadata("bookingId", bookingID)
	params.AddMetadata("cardLast4", cardLast4)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: %w", err)
	}
	return &Charge{Reference: pi.ID, Succeeded: pi.Status == stripe.PaymentIntentStatusSucceeded}, nil
}
