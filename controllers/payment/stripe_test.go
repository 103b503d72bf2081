package paymentControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/plutov/paypal/v4"
	"github.com/stripe/stripe-go/v81"

	"github.com/luxemarket/storefront-api/config"
)

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateStripeIntent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gw := &fakeStripe{intent: &stripe.PaymentIntent{
		ID:           "pi_new",
		ClientSecret: "pi_new_secret_abc",
	}}
	r := gin.New()
	r.POST("/api/payments/stripe/create-intent", CreateStripeIntent(gw))

	w := postJSON(t, r, "/api/payments/stripe/create-intent", gin.H{
		"amount": 25.99, "customerEmail": "ana@example.com",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		ClientSecret    string `json:"clientSecret"`
		PaymentIntentID string `json:"paymentIntentId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ClientSecret != "pi_new_secret_abc" || resp.PaymentIntentID != "pi_new" {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}

	if w := postJSON(t, r, "/api/payments/stripe/create-intent", gin.H{"amount": 0, "customerEmail": "ana@example.com"}); w.Code != http.StatusBadRequest {
		t.Fatalf("zero amount: got %d, want 400", w.Code)
	}
	if w := postJSON(t, r, "/api/payments/stripe/create-intent", gin.H{"amount": 10.0, "customerEmail": "not-an-email"}); w.Code != http.StatusBadRequest {
		t.Fatalf("bad email: got %d, want 400", w.Code)
	}
}

func TestConfirmStripePayment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gw := &fakeStripe{intent: &stripe.PaymentIntent{
		ID:       "pi_done",
		Status:   stripe.PaymentIntentStatusSucceeded,
		Amount:   2599,
		Currency: "usd",
	}}
	r := gin.New()
	r.POST("/api/payments/stripe/confirm", ConfirmStripePayment(gw))

	w := postJSON(t, r, "/api/payments/stripe/confirm", gin.H{"paymentIntentId": "pi_done"})
	if w.Code != http.StatusOK {
		t.Fatalf("got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success       bool    `json:"success"`
		TransactionID string  `json:"transactionId"`
		Amount        float64 `json:"amount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.TransactionID != "pi_done" || resp.Amount != 25.99 {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}

	if w := postJSON(t, r, "/api/payments/stripe/confirm", gin.H{}); w.Code != http.StatusBadRequest {
		t.Fatalf("missing intent id: got %d, want 400", w.Code)
	}

	gw.intent.Status = stripe.PaymentIntentStatusProcessing
	w = postJSON(t, r, "/api/payments/stripe/confirm", gin.H{"paymentIntentId": "pi_done"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unsettled intent: got %d, want 400", w.Code)
	}
	var errResp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &errResp)
	if errResp["error"] != "Payment processing" {
		t.Fatalf("got error %v", errResp["error"])
	}
}

func TestStripeConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/config/stripe", StripeConfig(&config.Config{StripePublishableKey: "pk_test_123"}))
	req := httptest.NewRequest(http.MethodGet, "/api/config/stripe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d", w.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["publishableKey"] != "pk_test_123" {
		t.Fatalf("unexpected key: %s", w.Body.String())
	}

	r = gin.New()
	r.GET("/api/config/stripe", StripeConfig(&config.Config{}))
	req = httptest.NewRequest(http.MethodGet, "/api/config/stripe", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("unconfigured: got %d, want 500", w.Code)
	}
}

func TestCreatePayPalPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/payments/paypal/create", CreatePayPalPayment(&fakePayPal{}, &config.Config{ClientURL: "https://shop.test"}))

	w := postJSON(t, r, "/api/payments/paypal/create", gin.H{"amount": 25.99, "orderId": "ORDER-9-pp"})
	if w.Code != http.StatusOK {
		t.Fatalf("got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["paymentId"] != "PAYPAL-ORDER-1" || resp["approvalUrl"] == "" {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}

	if w := postJSON(t, r, "/api/payments/paypal/create", gin.H{"amount": 0}); w.Code != http.StatusBadRequest {
		t.Fatalf("zero amount: got %d, want 400", w.Code)
	}
}

func TestExecutePayPalPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gw := &fakePayPal{capture: &paypal.CaptureOrderResponse{
		ID:     "PAYPAL-ORDER-1",
		Status: "COMPLETED",
		PurchaseUnits: []paypal.CapturedPurchaseUnit{{
			Payments: &paypal.CapturedPayments{
				Captures: []paypal.CaptureAmount{{
					ID:     "CAP-1",
					Amount: &paypal.Money{Currency: "USD", Value: "25.99"},
				}},
			},
		}},
	}}
	r := gin.New()
	r.POST("/api/payments/paypal/execute", ExecutePayPalPayment(gw))

	w := postJSON(t, r, "/api/payments/paypal/execute", gin.H{"paymentId": "PAYPAL-ORDER-1"})
	if w.Code != http.StatusOK {
		t.Fatalf("got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["transactionId"] != "PAYPAL-ORDER-1" || resp["amount"] != "25.99" {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}

	if w := postJSON(t, r, "/api/payments/paypal/execute", gin.H{}); w.Code != http.StatusBadRequest {
		t.Fatalf("missing payment id: got %d, want 400", w.Code)
	}

	gw.capture.Status = "DECLINED"
	if w := postJSON(t, r, "/api/payments/paypal/execute", gin.H{"paymentId": "PAYPAL-ORDER-1"}); w.Code != http.StatusBadRequest {
		t.Fatalf("declined capture: got %d, want 400", w.Code)
	}
}
