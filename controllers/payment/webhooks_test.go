package paymentControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/plutov/paypal/v4"
	"github.com/stripe/stripe-go/v81"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/luxemarket/storefront-api/config"
	"github.com/luxemarket/storefront-api/mailer"
	"github.com/luxemarket/storefront-api/models"
)

// fakeStripe replays a canned event or intent instead of calling Stripe.
type fakeStripe struct {
	intent *stripe.PaymentIntent
	event  stripe.Event
	err    error
}

func (f *fakeStripe) CreateIntent(amountCents int64, currency, description, receiptEmail, orderID string) (*stripe.PaymentIntent, error) {
	return f.intent, f.err
}

func (f *fakeStripe) GetIntent(id string) (*stripe.PaymentIntent, error) {
	return f.intent, f.err
}

func (f *fakeStripe) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	if f.err != nil {
		return stripe.Event{}, f.err
	}
	return f.event, nil
}

type fakePayPal struct {
	verified bool
	err      error
	capture  *paypal.CaptureOrderResponse
}

func (f *fakePayPal) CreateOrder(ctx context.Context, amount float64, currency, invoiceID, returnURL, cancelURL string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return "PAYPAL-ORDER-1", "https://paypal.test/approve/PAYPAL-ORDER-1", nil
}

func (f *fakePayPal) CaptureOrder(ctx context.Context, orderID string) (*paypal.CaptureOrderResponse, error) {
	return f.capture, f.err
}

func (f *fakePayPal) VerifyWebhook(ctx context.Context, req *http.Request) (bool, error) {
	return f.verified, f.err
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.WebhookEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, id, intentID string) {
	t.Helper()
	err := db.Create(&models.Order{
		ID:              id,
		ItemsJSON:       "[]",
		Total:           25.99,
		CustomerJSON:    `{"name":"A","email":"a@b.co"}`,
		PaymentMethod:   models.PaymentMethodStripe,
		PaymentIntentID: intentID,
		Status:          models.OrderStatusPending,
		CreatedAt:       time.Now().UTC(),
	}).Error
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
}

func stripeEvent(id, eventType string, object interface{}) stripe.Event {
	raw, _ := json.Marshal(object)
	return stripe.Event{
		ID:   id,
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func postWebhook(r *gin.Engine, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStripeWebhookPaymentSucceeded(t *testing.T) {
	db := setupDB(t)
	seedOrder(t, db, "ORDER-1-hook", "pi_hook")

	gw := &fakeStripe{event: stripeEvent("evt_1", "payment_intent.succeeded", gin.H{"id": "pi_hook"})}
	mail := mailer.New(&config.Config{}) // no SMTP host, sends are no-ops

	r := gin.New()
	r.POST("/api/webhooks/stripe", StripeWebhook(db, gw, mail))

	w := postWebhook(r, "/api/webhooks/stripe", []byte(`{}`))
	if w.Code != http.StatusOK {
		t.Fatalf("got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	if err := db.First(&order, "id = ?", "ORDER-1-hook").Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if order.Status != models.OrderStatusPaid {
		t.Fatalf("order status = %s, want paid", order.Status)
	}
}

func TestStripeWebhookDuplicateDelivery(t *testing.T) {
	db := setupDB(t)
	seedOrder(t, db, "ORDER-2-dup", "pi_dup")

	gw := &fakeStripe{event: stripeEvent("evt_dup", "payment_intent.succeeded", gin.H{"id": "pi_dup"})}
	r := gin.New()
	r.POST("/api/webhooks/stripe", StripeWebhook(db, gw, mailer.New(&config.Config{})))

	if w := postWebhook(r, "/api/webhooks/stripe", []byte(`{}`)); w.Code != http.StatusOK {
		t.Fatalf("first delivery: got %d", w.Code)
	}
	w := postWebhook(r, "/api/webhooks/stripe", []byte(`{}`))
	if w.Code != http.StatusOK {
		t.Fatalf("second delivery: got %d", w.Code)
	}
	var resp map[string]bool
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp["duplicate"] {
		t.Fatalf("replay not flagged as duplicate: %s", w.Body.String())
	}

	var ledger int64
	db.Model(&models.WebhookEvent{}).Where("event_id = ?", "evt_dup").Count(&ledger)
	if ledger != 1 {
		t.Fatalf("ledger rows = %d, want 1", ledger)
	}
}

func TestStripeWebhookBadSignature(t *testing.T) {
	db := setupDB(t)
	gw := &fakeStripe{err: errors.New("signature mismatch")}

	r := gin.New()
	r.POST("/api/webhooks/stripe", StripeWebhook(db, gw, mailer.New(&config.Config{})))

	if w := postWebhook(r, "/api/webhooks/stripe", []byte(`{}`)); w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", w.Code)
	}
}

func TestStripeWebhookRefund(t *testing.T) {
	db := setupDB(t)
	seedOrder(t, db, "ORDER-3-ref", "pi_ref")
	db.Model(&models.Order{}).Where("id = ?", "ORDER-3-ref").Update("status", models.OrderStatusPaid)

	gw := &fakeStripe{event: stripeEvent("evt_ref", "charge.refunded", gin.H{
		"id":             "ch_1",
		"payment_intent": gin.H{"id": "pi_ref"},
	})}
	r := gin.New()
	r.POST("/api/webhooks/stripe", StripeWebhook(db, gw, mailer.New(&config.Config{})))

	if w := postWebhook(r, "/api/webhooks/stripe", []byte(`{}`)); w.Code != http.StatusOK {
		t.Fatalf("got %d", w.Code)
	}
	var order models.Order
	db.First(&order, "id = ?", "ORDER-3-ref")
	if order.Status != models.OrderStatusRefunded {
		t.Fatalf("order status = %s, want refunded", order.Status)
	}
}

func TestPayPalWebhook(t *testing.T) {
	db := setupDB(t)
	seedOrder(t, db, "ORDER-4-pp", "")

	r := gin.New()
	r.POST("/api/webhooks/paypal", PayPalWebhook(db, &fakePayPal{verified: true}))

	event := gin.H{
		"id":         "WH-1",
		"event_type": "PAYMENT.CAPTURE.COMPLETED",
		"resource":   gin.H{"id": "CAP-1", "invoice_id": "ORDER-4-pp", "status": "COMPLETED"},
	}
	body, _ := json.Marshal(event)
	if w := postWebhook(r, "/api/webhooks/paypal", body); w.Code != http.StatusOK {
		t.Fatalf("got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	db.First(&order, "id = ?", "ORDER-4-pp")
	if order.Status != models.OrderStatusPaid {
		t.Fatalf("order status = %s, want paid", order.Status)
	}
}

func TestPayPalWebhookRejectsUnverified(t *testing.T) {
	db := setupDB(t)

	r := gin.New()
	r.POST("/api/webhooks/paypal", PayPalWebhook(db, &fakePayPal{verified: false}))

	if w := postWebhook(r, "/api/webhooks/paypal", []byte(`{"id":"WH-2"}`)); w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
	var ledger int64
	db.Model(&models.WebhookEvent{}).Count(&ledger)
	if ledger != 0 {
		t.Fatal("unverified delivery was recorded")
	}
}
