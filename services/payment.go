package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentGateway is the boundary to the external payment processor.
type PaymentGateway interface {
	// CreateOrder registers a checkout with the processor and returns its
	// order id. Amount is in major currency units.
	CreateOrder(amount float64, currency, receipt string) (string, error)
	// VerifyWebhookSignature checks the HMAC signature of an inbound
	// webhook against the raw request body.
	VerifyWebhookSignature(payload []byte, signature string) bool
	// Payout transfers funds to an educator's linked account and returns
	// the transfer reference.
	Payout(amount float64, currency, account string) (string, error)
}

type RazorpayGateway struct {
	client        *razorpay.Client
	webhookSecret string
}

func NewRazorpayGateway(keyID, keySecret, webhookSecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client:        razorpay.NewClient(keyID, keySecret),
		webhookSecret: webhookSecret,
	}
}

// MinorUnits converts a major-unit amount to the processor's integer minor
// units. Rounding, not truncation: 19.99 * 100 is 1998.999… in float64.
func MinorUnits(amount float64) int {
	return int(math.Round(amount * 100))
}

func (g *RazorpayGateway) CreateOrder(amount float64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   MinorUnits(amount),
		"currency": currency,
		"receipt":  receipt,
	}

	resp, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}

	orderID, ok := resp["id"].(string)
	if !ok {
		return "", fmt.Errorf("create order: missing id in response")
	}
	return orderID, nil
}

func (g *RazorpayGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	if g.webhookSecret == "" {
		return false
	}

	h := hmac.New(sha256.New, []byte(g.webhookSecret))
	h.Write(payload)
	expected := hex.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func (g *RazorpayGateway) Payout(amount float64, currency, account string) (string, error) {
	data := map[string]interface{}{
		"account":  account,
		"amount":   MinorUnits(amount),
		"currency": currency,
	}

	resp, err := g.client.Transfer.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("create transfer: %w", err)
	}

	transferID, ok := resp["id"].(string)
	if !ok {
		return "", fmt.Errorf("create transfer: missing id in response")
	}
	return transferID, nil
}
