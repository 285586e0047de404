package controllers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learnhub/config"
	"learnhub/models"
	"learnhub/services"
	"learnhub/utils"
)

// AdminController serves the review surfaces: educator applications, course
// approval and certificate issuing.
type AdminController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Media  services.MediaStore
	Mailer services.Mailer
	Logger *zap.Logger
}

func NewAdminController(db *gorm.DB, cfg *config.Config, media services.MediaStore, mailer services.Mailer, logger *zap.Logger) *AdminController {
	return &AdminController{DB: db, Cfg: cfg, Media: media, Mailer: mailer, Logger: logger}
}

// GetAllEducatorApplications lists applications, optionally filtered by
// status.
func (ac *AdminController) GetAllEducatorApplications(c *fiber.Ctx) error {
	status := c.Query("status")

	query := ac.DB.Preload("User").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var applications []models.EducatorApplication
	if err := query.Find(&applications).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := []fiber.Map{}
	for _, app := range applications {
		result = append(result, fiber.Map{
			"id":          app.ID,
			"userId":      app.UserID,
			"name":        app.Name,
			"tagline":     app.Tagline,
			"bio":         app.Bio,
			"techTags":    app.TechTags,
			"githubUrl":   app.GitHubURL,
			"linkedinUrl": app.LinkedInURL,
			"imageUrl":    app.ImageURL,
			"status":      app.Status,
			"email":       app.User.Email,
			"appliedAt":   app.CreatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// ApproveEducator decides an application. Approval upgrades the applicant's
// role and opens a wallet; rejection requires a reason.
func (ac *AdminController) ApproveEducator(c *fiber.Ctx) error {
	var input struct {
		ApplicationID uint   `json:"applicationId"`
		Approve       bool   `json:"approve"`
		Reason        string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var application models.EducatorApplication
	if err := ac.DB.Preload("User").First(&application, input.ApplicationID).Error; err != nil {
		return utils.NotFound(c, "Application not found")
	}
	if application.Status != models.ApplicationStatusPending {
		return utils.Conflict(c, "Application already decided")
	}

	if !input.Approve {
		if input.Reason == "" {
			return utils.BadRequest(c, "Rejection requires a reason")
		}
		application.Status = models.ApplicationStatusRejected
		application.RejectionReason = input.Reason
		if err := ac.DB.Save(&application).Error; err != nil {
			return utils.InternalServerError(c, "Could not update application")
		}
		ac.notify(application.User.Email, "Educator application update",
			fmt.Sprintf("Your educator application was not approved: %s", input.Reason))
		return utils.Message(c, fiber.StatusOK, "Application rejected")
	}

	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		application.Status = models.ApplicationStatusApproved
		application.RejectionReason = ""
		if err := tx.Save(&application).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", application.UserID).
			Update("role", models.RoleEducator).Error; err != nil {
			return err
		}
		var wallet models.Wallet
		err := tx.Where("educator_id = ?", application.UserID).First(&wallet).Error
		if err == gorm.ErrRecordNotFound {
			return tx.Create(&models.Wallet{EducatorID: application.UserID}).Error
		}
		return err
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not approve application")
	}

	ac.notify(application.User.Email, "Welcome aboard",
		"Your educator application has been approved. You can now publish courses.")

	return utils.Message(c, fiber.StatusOK, "Application approved")
}

// GetPendingCourses lists courses awaiting review.
func (ac *AdminController) GetPendingCourses(c *fiber.Ctx) error {
	var courses []models.Course
	err := ac.DB.Preload("Educator").Preload("Chapters.Lectures").
		Where("status = ?", models.CourseStatusPending).
		Order("created_at").
		Find(&courses).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := []fiber.Map{}
	for _, course := range courses {
		result = append(result, fiber.Map{
			"id":            course.ID,
			"title":         course.Title,
			"category":      course.Category,
			"courseType":    course.CourseType,
			"price":         course.Price,
			"educator":      course.Educator.Name,
			"totalLectures": course.TotalLectures(),
			"submittedAt":   course.UpdatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// ReviewCourse godoc
// @Summary Approve or reject a course
// @Description Rejection requires a non-empty reason; approval clears any
// previous reason.
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/reviewCourse [post]
func (ac *AdminController) ReviewCourse(c *fiber.Ctx) error {
	var input struct {
		CourseID uint                `json:"courseId"`
		Status   models.CourseStatus `json:"status"`
		Reason   string              `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Status != models.CourseStatusApproved && input.Status != models.CourseStatusRejected {
		return utils.BadRequest(c, "status must be approved or rejected")
	}
	if input.Status == models.CourseStatusRejected && input.Reason == "" {
		return utils.BadRequest(c, "Rejection requires a reason")
	}

	var course models.Course
	if err := ac.DB.First(&course, input.CourseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	course.Status = input.Status
	if input.Status == models.CourseStatusRejected {
		course.RejectionReason = input.Reason
	} else {
		course.RejectionReason = ""
	}

	if err := ac.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	return utils.Message(c, fiber.StatusOK, "Course "+string(input.Status), fiber.Map{
		"courseId": course.ID,
		"status":   course.Status,
	})
}

// GetCertificateRequests lists certificate requests, pending first.
func (ac *AdminController) GetCertificateRequests(c *fiber.Ctx) error {
	var requests []models.CertificateRequest
	err := ac.DB.Preload("User").Preload("Course").
		Order("CASE WHEN status = 'pending' THEN 0 ELSE 1 END, created_at").
		Find(&requests).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := []fiber.Map{}
	for _, r := range requests {
		result = append(result, fiber.Map{
			"id":          r.ID,
			"student":     r.User.Name,
			"course":      r.Course.Title,
			"phone":       r.Phone,
			"email":       r.Email,
			"status":      r.Status,
			"requestedAt": r.CreatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// ProcessCertificateRequest issues or rejects a pending request. Issuing
// renders the PDF, uploads it to the media host and mails the student.
func (ac *AdminController) ProcessCertificateRequest(c *fiber.Ctx) error {
	var input struct {
		RequestID uint   `json:"requestId"`
		Action    string `json:"action"` // issue | reject
		Reason    string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var request models.CertificateRequest
	if err := ac.DB.Preload("User").Preload("Course").First(&request, input.RequestID).Error; err != nil {
		return utils.NotFound(c, "Certificate request not found")
	}
	if request.Status != models.CertificateStatusPending {
		return utils.Conflict(c, "Request already processed")
	}

	switch input.Action {
	case "reject":
		if input.Reason == "" {
			return utils.BadRequest(c, "Rejection requires a reason")
		}
		request.Status = models.CertificateStatusRejected
		request.RejectionReason = input.Reason
		if err := ac.DB.Save(&request).Error; err != nil {
			return utils.InternalServerError(c, "Could not update request")
		}
		return utils.Message(c, fiber.StatusOK, "Certificate request rejected")

	case "issue":
		number := uuid.NewString()
		pdfBytes, err := services.RenderCertificatePDF(request.User.Name, request.Course.Title, number, time.Now())
		if err != nil {
			return utils.InternalServerError(c, "Could not render certificate")
		}

		url, err := ac.Media.Upload(c.Context(), bytes.NewReader(pdfBytes), "certificates", "certificate-"+number)
		if err != nil {
			return utils.InternalServerError(c, "Could not store certificate")
		}

		certificate := models.Certificate{
			UserID:   request.UserID,
			CourseID: request.CourseID,
			Number:   number,
			URL:      url,
			IssuedAt: time.Now(),
		}

		err = ac.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&certificate).Error; err != nil {
				return err
			}
			request.Status = models.CertificateStatusIssued
			return tx.Save(&request).Error
		})
		if err != nil {
			return utils.InternalServerError(c, "Could not issue certificate")
		}

		ac.notify(request.Email, "Your certificate is ready",
			fmt.Sprintf("Congratulations! Your certificate for %q is available at %s", request.Course.Title, url))

		return utils.Message(c, fiber.StatusOK, "Certificate issued", fiber.Map{
			"certificateNumber": number,
			"url":               url,
		})

	default:
		return utils.BadRequest(c, "action must be issue or reject")
	}
}

// notify sends best-effort mail; delivery failure never fails the request.
func (ac *AdminController) notify(to, subject, body string) {
	if err := ac.Mailer.Send(to, subject, body); err != nil {
		ac.Logger.Warn("mail delivery failed", zap.String("to", to), zap.Error(err))
	}
}
