package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/models"
)

func webhookBody(t *testing.T, event, paymentID, orderID string) []byte {
	t.Helper()
	raw, err := json.Marshal(fiber.Map{
		"event": event,
		"payload": fiber.Map{
			"payment": fiber.Map{
				"entity": fiber.Map{
					"id":       paymentID,
					"order_id": orderID,
				},
			},
		},
	})
	require.NoError(t, err)
	return raw
}

func postWebhook(t *testing.T, env *testEnv, body []byte, signature string) (*http.Response, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/payment/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Razorpay-Signature", signature)
	}

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && json.Valid(raw) {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

// startCheckout runs a real checkout initialization and returns the order id.
func startCheckout(t *testing.T, env *testEnv, token string, courseID uint) string {
	t.Helper()
	resp, body := env.doJSON(t, "POST", "/api/user/initializeCoursePayment", token, fiber.Map{
		"courseId": courseID,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return body["data"].(map[string]interface{})["orderId"].(string)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	env := newTestEnv(t)

	body := webhookBody(t, "payment.captured", "pay_1", "order_1")

	resp, _ := postWebhook(t, env, body, "deadbeef")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = postWebhook(t, env, body, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookSettlesPayment(t *testing.T) {
	env := newTestEnv(t)
	_, educatorID := env.newEducator(t, "settle-edu@example.com")
	token, studentID := env.register(t, "Buyer", "buyer@example.com")

	course := env.seedCourse(t, educatorID, "Bought Course", models.CourseStatusApproved, 1)
	orderID := startCheckout(t, env, token, course.ID)

	body := webhookBody(t, "payment.captured", "pay_settle", orderID)
	resp, parsed := postWebhook(t, env, body, signWebhook(body))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "processed", parsed["status"])

	var payment models.Payment
	require.NoError(t, env.db.Where("order_id = ?", orderID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, "pay_settle", payment.PaymentID)

	var enrollment models.Enrollment
	require.NoError(t, env.db.Where("user_id = ? AND course_id = ?", studentID, course.ID).
		First(&enrollment).Error)

	// The course costs 100; the educator keeps 70%.
	var wallet models.Wallet
	require.NoError(t, env.db.Preload("Transactions").
		Where("educator_id = ?", educatorID).First(&wallet).Error)
	assert.InDelta(t, 70.0, wallet.Balance, 0.001)
	require.Len(t, wallet.Transactions, 1)
	assert.Equal(t, models.TransactionEarning, wallet.Transactions[0].Type)
	assert.Equal(t, orderID, wallet.Transactions[0].Reference)

	// The student now sees the purchase.
	resp2, statusBody := env.doJSON(t, "GET", fmt.Sprintf("/api/user/paymentStatus/%s", orderID), token, nil)
	require.Equal(t, fiber.StatusOK, resp2.StatusCode)
	assert.Equal(t, "completed", statusBody["data"].(map[string]interface{})["status"])
}

func TestWebhookReplayIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	_, educatorID := env.newEducator(t, "replay-edu@example.com")
	token, studentID := env.register(t, "Buyer", "replay-buyer@example.com")

	course := env.seedCourse(t, educatorID, "Replayed Course", models.CourseStatusApproved, 1)
	orderID := startCheckout(t, env, token, course.ID)

	body := webhookBody(t, "payment.captured", "pay_replay", orderID)
	signature := signWebhook(body)

	for i := 0; i < 3; i++ {
		resp, _ := postWebhook(t, env, body, signature)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var enrollments int64
	env.db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", studentID, course.ID).Count(&enrollments)
	assert.EqualValues(t, 1, enrollments)

	var wallet models.Wallet
	require.NoError(t, env.db.Where("educator_id = ?", educatorID).First(&wallet).Error)
	assert.InDelta(t, 70.0, wallet.Balance, 0.001, "replays must not credit the wallet again")

	var earnings int64
	env.db.Model(&models.WalletTransaction{}).
		Where("wallet_id = ? AND type = ?", wallet.ID, models.TransactionEarning).Count(&earnings)
	assert.EqualValues(t, 1, earnings)
}

func TestWebhookMarksFailedPayment(t *testing.T) {
	env := newTestEnv(t)
	_, educatorID := env.newEducator(t, "fail-edu@example.com")
	token, studentID := env.register(t, "Buyer", "fail-buyer@example.com")

	course := env.seedCourse(t, educatorID, "Failed Course", models.CourseStatusApproved, 1)
	orderID := startCheckout(t, env, token, course.ID)

	body := webhookBody(t, "payment.failed", "pay_fail", orderID)
	resp, _ := postWebhook(t, env, body, signWebhook(body))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payment models.Payment
	require.NoError(t, env.db.Where("order_id = ?", orderID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)

	var enrollments int64
	env.db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", studentID, course.ID).Count(&enrollments)
	assert.Zero(t, enrollments, "a failed payment must not enroll")
}

func TestWebhookUnknownOrder(t *testing.T) {
	env := newTestEnv(t)

	body := webhookBody(t, "payment.captured", "pay_x", "order_missing")
	resp, _ := postWebhook(t, env, body, signWebhook(body))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestWebhookAcknowledgesUnhandledEvents(t *testing.T) {
	env := newTestEnv(t)

	body := webhookBody(t, "refund.created", "pay_y", "order_y")
	resp, parsed := postWebhook(t, env, body, signWebhook(body))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "acknowledged", parsed["status"])
}
