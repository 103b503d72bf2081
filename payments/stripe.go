package payments

import (
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"
)

// StripeGateway is the slice of the Stripe API the storefront touches.
// Handlers take the interface so tests can stand in a fake gateway.
type StripeGateway interface {
	CreateIntent(amountCents int64, currency, description, receiptEmail, orderID string) (*stripe.PaymentIntent, error)
	GetIntent(id string) (*stripe.PaymentIntent, error)
	ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error)
}

type StripeClient struct {
	webhookSecret string
}

func NewStripeClient(secretKey, webhookSecret string) *StripeClient {
	stripe.Key = secretKey
	return &StripeClient{webhookSecret: webhookSecret}
}

func (s *StripeClient) CreateIntent(amountCents int64, currency, description, receiptEmail, orderID string) (*stripe.PaymentIntent, error) {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(amountCents),
		Currency:     stripe.String(currency),
		Description:  stripe.String(description),
		ReceiptEmail: stripe.String(receiptEmail),
	}
	params.AddMetadata("orderId", orderID)
	params.AddMetadata("customerEmail", receiptEmail)
	return paymentintent.New(params)
}

func (s *StripeClient) GetIntent(id string) (*stripe.PaymentIntent, error) {
	return paymentintent.Get(id, nil)
}

func (s *StripeClient) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, s.webhookSecret)
}

// VerifyPayment checks that a PaymentIntent actually backs the claimed
// order total. The returned reason is a client-facing 400 message; a
// non-nil error means the gateway call itself failed.
func VerifyPayment(gw StripeGateway, paymentIntentID string, total float64) (string, error) {
	pi, err := gw.GetIntent(paymentIntentID)
	if err != nil {
		return "", err
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Sprintf("Payment %s", pi.Status), nil
	}
	expected := int64(math.Round(total * 100))
	if expected <= 0 {
		return "Invalid order total", nil
	}
	if pi.Amount != expected {
		return "Order total does not match payment amount", nil
	}
	return "", nil
}
