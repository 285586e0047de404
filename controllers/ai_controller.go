package controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnhub/config"
	"learnhub/services"
	"learnhub/utils"
)

// AIController proxies prompts to the generative-language API.
type AIController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Assistant services.Assistant
}

func NewAIController(db *gorm.DB, cfg *config.Config, assistant services.Assistant) *AIController {
	return &AIController{DB: db, Cfg: cfg, Assistant: assistant}
}

// Ask answers a plain text prompt.
func (ai *AIController) Ask(c *fiber.Ctx) error {
	var input struct {
		Prompt string `json:"prompt"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if strings.TrimSpace(input.Prompt) == "" {
		return utils.BadRequest(c, "prompt is required")
	}

	reply, err := ai.Assistant.Generate(c.Context(), input.Prompt)
	if err != nil {
		return utils.InternalServerError(c, "Assistant request failed")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"reply": reply})
}

// AskWithFile answers a prompt about an uploaded document. Plain text, CSV
// and JSON are read directly; PDFs go through text extraction. The temporary
// file is removed after use.
func (ai *AIController) AskWithFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".txt", ".csv", ".json", ".pdf":
	default:
		return utils.BadRequest(c, fmt.Sprintf("unsupported file type %s", ext))
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+ext)
	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		return utils.InternalServerError(c, "Could not store uploaded file")
	}
	defer os.Remove(tmpPath)

	var content string
	if ext == ".pdf" {
		content, err = services.ExtractPDFText(tmpPath)
		if err != nil {
			return utils.BadRequest(c, "Could not extract text from PDF")
		}
	} else {
		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return utils.InternalServerError(c, "Could not read uploaded file")
		}
		content = string(data)
	}

	prompt := c.FormValue("prompt")
	if prompt == "" {
		prompt = "Summarize the following document."
	}

	reply, err := ai.Assistant.Generate(c.Context(), prompt+"\n\n"+content)
	if err != nil {
		return utils.InternalServerError(c, "Assistant request failed")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"reply": reply})
}
