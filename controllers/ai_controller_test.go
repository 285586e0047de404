package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskRequiresPrompt(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "Asker", "asker@example.com")

	resp, _ := env.doJSON(t, "POST", "/ai", token, fiber.Map{"prompt": "   "})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAsk(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "Asker", "ask-ok@example.com")

	resp, body := env.doJSON(t, "POST", "/ai", token, fiber.Map{"prompt": "What is Go?"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "echo: What is Go?", body["data"].(map[string]interface{})["reply"])
}

func TestAskRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.doJSON(t, "POST", "/ai", "", fiber.Map{"prompt": "hello"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func postAIFile(t *testing.T, env *testEnv, token, filename, content, prompt string) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	if prompt != "" {
		require.NoError(t, writer.WriteField("prompt", prompt))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/ai/file", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", token)

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)

	var body map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && json.Valid(raw) {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp.StatusCode, body
}

func TestAskWithTextFile(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "Asker", "ask-file@example.com")

	status, body := postAIFile(t, env, token, "notes.txt", "Go has goroutines.", "Explain this")
	require.Equal(t, fiber.StatusOK, status)

	reply := body["data"].(map[string]interface{})["reply"].(string)
	assert.Contains(t, reply, "Explain this")
	assert.Contains(t, reply, "Go has goroutines.")
}

func TestAskWithFileDefaultsToSummary(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "Asker", "ask-summary@example.com")

	status, body := postAIFile(t, env, token, "data.csv", "a,b\n1,2", "")
	require.Equal(t, fiber.StatusOK, status)

	reply := body["data"].(map[string]interface{})["reply"].(string)
	assert.Contains(t, reply, "Summarize the following document.")
}

func TestAskWithUnsupportedFileType(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "Asker", "ask-bad@example.com")

	status, body := postAIFile(t, env, token, "malware.exe", "MZ", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["message"], "unsupported file type")
}
