package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int
	}{
		{0, 0},
		{1, 100},
		{19.99, 1999},
		{0.29, 29},
		{49.95, 4995},
		{1234.56, 123456},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MinorUnits(tc.amount), "amount %v", tc.amount)
	}
}

func TestVerifyWebhookSignatureWithoutSecret(t *testing.T) {
	g := NewRazorpayGateway("key", "secret", "")
	assert.False(t, g.VerifyWebhookSignature([]byte("{}"), "anything"))
}
