package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/ledongthuc/pdf"
	"google.golang.org/api/option"
)

// Assistant answers free-form prompts via a generative-language API.
type Assistant interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type GeminiAssistant struct {
	client *genai.Client
	model  string
}

func NewGeminiAssistant(ctx context.Context, apiKey, model string) (*GeminiAssistant, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	return &GeminiAssistant{client: client, model: model}, nil
}

func (a *GeminiAssistant) Generate(ctx context.Context, prompt string) (string, error) {
	m := a.client.GenerativeModel(a.model)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("generate: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func (a *GeminiAssistant) Close() error {
	return a.client.Close()
}

// ExtractPDFText pulls the plain text out of a PDF on disk so it can be fed
// to the assistant as part of a prompt.
func ExtractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	text, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return string(text), nil
}
