package controllers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnhub/config"
	"learnhub/models"
	"learnhub/services"
	"learnhub/utils"
)

// PaymentController handles the processor's server-to-server webhook. It is
// the only trusted path for payment confirmation; browser redirect query
// parameters are never acted on.
type PaymentController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Payments services.PaymentGateway
	Logger   *zap.Logger
}

func NewPaymentController(db *gorm.DB, cfg *config.Config, payments services.PaymentGateway, logger *zap.Logger) *PaymentController {
	return &PaymentController{DB: db, Cfg: cfg, Payments: payments, Logger: logger}
}

type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Amount  int64  `json:"amount"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// Webhook godoc
// @Summary Payment processor webhook
// @Description Verifies the HMAC signature over the raw body, then settles
// the referenced payment: enrollment is created and the educator's wallet is
// credited in a single transaction. Replays are no-ops.
// @Tags payment
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Router /payment/webhook [post]
func (pc *PaymentController) Webhook(c *fiber.Ctx) error {
	body := c.Body()

	signature := c.Get("X-Razorpay-Signature")
	if !pc.Payments.VerifyWebhookSignature(body, signature) {
		pc.Logger.Warn("webhook signature rejected")
		return utils.Unauthorized(c, "Invalid signature")
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return utils.BadRequest(c, "Invalid payload format")
	}

	switch payload.Event {
	case "payment.captured", "order.paid":
		return pc.settle(c, payload)
	case "payment.failed":
		return pc.fail(c, payload)
	default:
		// Unhandled events are acknowledged so the processor stops retrying.
		return c.JSON(fiber.Map{"status": "acknowledged", "event": payload.Event})
	}
}

func (pc *PaymentController) settle(c *fiber.Ctx, payload webhookPayload) error {
	entity := payload.Payload.Payment.Entity

	var payment models.Payment
	if err := pc.DB.Where("order_id = ?", entity.OrderID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Unknown order")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if payment.Status == models.PaymentStatusCompleted {
		return c.JSON(fiber.Map{"status": "acknowledged"})
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		payment.Status = models.PaymentStatusCompleted
		payment.PaymentID = entity.ID
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		enrollment := models.Enrollment{UserID: payment.UserID, CourseID: payment.CourseID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&enrollment).Error; err != nil {
			return err
		}

		var course models.Course
		if err := tx.First(&course, payment.CourseID).Error; err != nil {
			return err
		}

		var wallet models.Wallet
		err := tx.Where("educator_id = ?", course.EducatorID).First(&wallet).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			wallet = models.Wallet{EducatorID: course.EducatorID}
			if err := tx.Create(&wallet).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		share := payment.Amount * models.EducatorShare
		wallet.Balance += share
		if err := tx.Save(&wallet).Error; err != nil {
			return err
		}

		return tx.Create(&models.WalletTransaction{
			WalletID:  wallet.ID,
			Type:      models.TransactionEarning,
			Amount:    share,
			Status:    models.TransactionProcessed,
			Reference: payment.OrderID,
		}).Error
	})
	if err != nil {
		pc.Logger.Error("webhook settlement failed", zap.String("order_id", entity.OrderID), zap.Error(err))
		return utils.InternalServerError(c, "Could not settle payment")
	}

	pc.Logger.Info("payment settled",
		zap.String("order_id", entity.OrderID),
		zap.Uint("user_id", payment.UserID),
		zap.Uint("course_id", payment.CourseID),
	)

	return c.JSON(fiber.Map{"status": "processed"})
}

func (pc *PaymentController) fail(c *fiber.Ctx, payload webhookPayload) error {
	entity := payload.Payload.Payment.Entity

	err := pc.DB.Model(&models.Payment{}).
		Where("order_id = ? AND status = ?", entity.OrderID, models.PaymentStatusPending).
		Update("status", models.PaymentStatusFailed).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not update payment")
	}

	return c.JSON(fiber.Map{"status": "acknowledged"})
}
