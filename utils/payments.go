package utils

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type razorpayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

type RazorpayClient struct {
	client    *resty.Client
	keyID     string
	keySecret string
}

func NewRazorpayClient(baseURL, keyID, keySecret string) *RazorpayClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(keyID, keySecret).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json")

	return &RazorpayClient{client: client, keyID: keyID, keySecret: keySecret}
}

func (c *RazorpayClient) KeyID() string {
	return c.keyID
}

// CreateOrder registers a payable order of amount paise with the gateway.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (RazorpayOrder, error) {
	var order RazorpayOrder
	var apiErr razorpayError

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"amount":   amount,
			"currency": currency,
			"receipt":  receipt,
		}).
		SetResult(&order).
		SetError(&apiErr).
		Post("/v1/orders")
	if err != nil {
		return RazorpayOrder{}, err
	}
	if resp.IsError() {
		return RazorpayOrder{}, fmt.Errorf("razorpay order request failed with status %d: %s", resp.StatusCode(), apiErr.Error.Description)
	}
	if order.ID == "" {
		return RazorpayOrder{}, fmt.Errorf("razorpay order id not found in response: %s", resp.String())
	}
	return order, nil
}

// VerifySignature checks the checkout signature, an HMAC-SHA256 of
// "orderID|paymentID" keyed with the account secret.
func (c *RazorpayClient) VerifySignature(orderID, paymentID, signature string) bool {
	return hmac.Equal([]byte(PaymentSignature(c.keySecret, orderID, paymentID)), []byte(signature))
}

func PaymentSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
