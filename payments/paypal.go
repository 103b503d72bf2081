package payments

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/plutov/paypal/v4"
)

// PayPalGateway wraps the Orders API calls the checkout needs.
type PayPalGateway interface {
	CreateOrder(ctx context.Context, amount float64, currency, invoiceID, returnURL, cancelURL string) (id, approvalURL string, err error)
	CaptureOrder(ctx context.Context, orderID string) (*paypal.CaptureOrderResponse, error)
	VerifyWebhook(ctx context.Context, req *http.Request) (bool, error)
}

type PayPalClient struct {
	client    *paypal.Client
	webhookID string
}

func NewPayPalClient(clientID, secret, mode, webhookID string) (*PayPalClient, error) {
	base := paypal.APIBaseSandBox
	if mode == "live" {
		base = paypal.APIBaseLive
	}
	c, err := paypal.NewClient(clientID, secret, base)
	if err != nil {
		return nil, err
	}
	return &PayPalClient{client: c, webhookID: webhookID}, nil
}

func (p *PayPalClient) CreateOrder(ctx context.Context, amount float64, currency, invoiceID, returnURL, cancelURL string) (string, string, error) {
	if currency == "" {
		currency = "USD"
	}
	units := []paypal.PurchaseUnitRequest{{
		InvoiceID:   invoiceID,
		Description: "Order " + invoiceID,
		Amount: &paypal.PurchaseUnitAmount{
			Currency: currency,
			Value:    fmt.Sprintf("%.2f", amount),
		},
	}}
	appCtx := &paypal.ApplicationContext{
		ReturnURL: returnURL,
		CancelURL: cancelURL,
	}
	order, err := p.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, appCtx)
	if err != nil {
		return "", "", err
	}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			return order.ID, link.Href, nil
		}
	}
	return "", "", errors.New("paypal order has no approval link")
}

func (p *PayPalClient) CaptureOrder(ctx context.Context, orderID string) (*paypal.CaptureOrderResponse, error) {
	return p.client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
}

func (p *PayPalClient) VerifyWebhook(ctx context.Context, req *http.Request) (bool, error) {
	resp, err := p.client.VerifyWebhookSignature(ctx, req, p.webhookID)
	if err != nil {
		return false, err
	}
	return resp.VerificationStatus == "SUCCESS", nil
}
