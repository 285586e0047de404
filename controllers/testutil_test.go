package controllers_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"learnhub/config"
	"learnhub/models"
	"learnhub/routes"
	"learnhub/utils"
)

const webhookTestSecret = "whsec_test"

type fakeGateway struct {
	orders    int
	payouts   []float64
	payoutErr error
}

func (g *fakeGateway) CreateOrder(amount float64, currency, receipt string) (string, error) {
	g.orders++
	return fmt.Sprintf("order_%d", g.orders), nil
}

func (g *fakeGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	return signWebhook(payload) == signature
}

func (g *fakeGateway) Payout(amount float64, currency, account string) (string, error) {
	if g.payoutErr != nil {
		return "", g.payoutErr
	}
	g.payouts = append(g.payouts, amount)
	return fmt.Sprintf("transfer_%d", len(g.payouts)), nil
}

func signWebhook(payload []byte) string {
	h := hmac.New(sha256.New, []byte(webhookTestSecret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

type fakeMedia struct{ uploads []string }

func (m *fakeMedia) Upload(ctx context.Context, file io.Reader, folder, name string) (string, error) {
	m.uploads = append(m.uploads, folder+"/"+name)
	return "https://cdn.test/" + folder + "/" + name, nil
}

type fakeMailer struct{ sent []string }

func (m *fakeMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, to)
	return nil
}

type fakeAssistant struct{}

func (fakeAssistant) Generate(ctx context.Context, prompt string) (string, error) {
	return "echo: " + prompt, nil
}

type testEnv struct {
	app     *fiber.App
	db      *gorm.DB
	cfg     *config.Config
	gateway *fakeGateway
	media   *fakeMedia
	mailer  *fakeMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test-secret",
		Currency:  "USD",
	}

	env := &testEnv{
		app:     fiber.New(),
		db:      db,
		cfg:     cfg,
		gateway: &fakeGateway{},
		media:   &fakeMedia{},
		mailer:  &fakeMailer{},
	}

	routes.SetupRoutes(env.app, db, cfg, routes.Deps{
		Payments:  env.gateway,
		Media:     env.media,
		Mailer:    env.mailer,
		Assistant: fakeAssistant{},
		Logger:    zap.NewNop(),
	})

	return env
}

// register creates an account through the API and returns its token and id.
func (e *testEnv) register(t *testing.T, name, email string) (string, uint) {
	t.Helper()

	resp, body := e.doJSON(t, "POST", "/api/auth/register", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	token := body["token"].(string)
	id := uint(body["user"].(map[string]interface{})["id"].(float64))
	return token, id
}

func (e *testEnv) setRole(t *testing.T, userID uint, role string) {
	t.Helper()
	require.NoError(t, e.db.Model(&models.User{}).Where("id = ?", userID).Update("role", role).Error)
}

// newEducator registers a user and promotes it to educator with a wallet.
func (e *testEnv) newEducator(t *testing.T, email string) (string, uint) {
	t.Helper()
	token, id := e.register(t, "Educator "+email, email)
	e.setRole(t, id, models.RoleEducator)
	require.NoError(t, e.db.Create(&models.Wallet{EducatorID: id}).Error)
	return token, id
}

// seedCourse writes a course with one chapter of the given lectures straight
// to the database.
func (e *testEnv) seedCourse(t *testing.T, educatorID uint, title string, status models.CourseStatus, lectures int) *models.Course {
	t.Helper()

	course := &models.Course{
		Title:        title,
		Description:  "seeded course",
		Category:     "programming",
		Price:        100,
		ThumbnailURL: "https://cdn.test/thumb.png",
		CourseType:   models.CourseTypeBasic,
		Status:       status,
		EducatorID:   educatorID,
	}

	chapter := models.Chapter{Title: "Chapter 1", SequenceOrder: 1}
	for i := 0; i < lectures; i++ {
		chapter.Lectures = append(chapter.Lectures, models.Lecture{
			Title:           fmt.Sprintf("Lecture %d", i+1),
			DurationMinutes: 10,
			MediaURL:        fmt.Sprintf("https://media.test/l%d.mp4", i+1),
			SequenceOrder:   i + 1,
		})
	}
	course.Chapters = []models.Chapter{chapter}

	require.NoError(t, e.db.Create(course).Error)
	return course
}

func (e *testEnv) enroll(t *testing.T, userID, courseID uint) {
	t.Helper()
	require.NoError(t, e.db.Create(&models.Enrollment{UserID: userID, CourseID: courseID}).Error)
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var body map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && json.Valid(raw) {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp, body
}
