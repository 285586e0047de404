package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnhub/config"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/services"
	"learnhub/utils"
)

type UserController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Payments services.PaymentGateway
	Media    services.MediaStore
	validate *validator.Validate
}

func NewUserController(db *gorm.DB, cfg *config.Config, payments services.PaymentGateway, media services.MediaStore) *UserController {
	return &UserController{DB: db, Cfg: cfg, Payments: payments, Media: media, validate: validator.New()}
}

// InitializeCoursePayment godoc
// @Summary Start checkout for a course
// @Description Short-circuits if the caller already holds the course,
// otherwise registers an order with the payment processor. Enrollment itself
// happens when the processor's webhook confirms capture.
// @Tags user
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/initializeCoursePayment [post]
func (uc *UserController) InitializeCoursePayment(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var input struct {
		CourseID uint `json:"courseId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var course models.Course
	if err := uc.DB.Where("status = ?", models.CourseStatusApproved).First(&course, input.CourseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	var enrolled int64
	uc.DB.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, course.ID).
		Count(&enrolled)
	if enrolled > 0 {
		return utils.Conflict(c, "Already enrolled")
	}

	amount := course.DiscountedPrice()
	receipt := fmt.Sprintf("rcpt_%d_%d", userID, course.ID)

	orderID, err := uc.Payments.CreateOrder(amount, uc.Cfg.Currency, receipt)
	if err != nil {
		return utils.InternalServerError(c, "Payment initialization failed")
	}

	// Reuse a pending payment row for the same (user, course) so retried
	// checkouts do not pile up.
	var payment models.Payment
	err = uc.DB.Where("user_id = ? AND course_id = ? AND status = ?",
		userID, course.ID, models.PaymentStatusPending).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		payment = models.Payment{
			UserID:   userID,
			CourseID: course.ID,
			OrderID:  orderID,
			Amount:   amount,
			Currency: uc.Cfg.Currency,
			Status:   models.PaymentStatusPending,
		}
		if err := uc.DB.Create(&payment).Error; err != nil {
			return utils.InternalServerError(c, "Could not record payment")
		}
	} else if err == nil {
		payment.OrderID = orderID
		payment.Amount = amount
		if err := uc.DB.Save(&payment).Error; err != nil {
			return utils.InternalServerError(c, "Could not record payment")
		}
	} else {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"orderId":  orderID,
		"amount":   amount,
		"currency": payment.Currency,
		"keyId":    uc.Cfg.RazorpayKeyID,
	})
}

// GetPaymentStatus reports the stored state of a checkout. The redirect query
// parameters the processor sends the browser back with are display-only; this
// is the source of truth the client polls.
func (uc *UserController) GetPaymentStatus(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	orderID := c.Params("orderId")

	var payment models.Payment
	if err := uc.DB.Where("order_id = ? AND user_id = ?", orderID, userID).First(&payment).Error; err != nil {
		return utils.NotFound(c, "Payment not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"orderId":  payment.OrderID,
		"courseId": payment.CourseID,
		"amount":   payment.Amount,
		"status":   payment.Status,
	})
}

// GetEnrolledCourses godoc
// @Summary Caller's enrolled courses with completion percentage
// @Tags user
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /user/enrolled-courses [get]
func (uc *UserController) GetEnrolledCourses(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var enrollments []models.Enrollment
	if err := uc.DB.Preload("Course").Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := []fiber.Map{}
	for _, e := range enrollments {
		completed, total, percent := uc.completion(userID, e.CourseID)
		result = append(result, fiber.Map{
			"id":            e.Course.ID,
			"title":         e.Course.Title,
			"thumbnailUrl":  e.Course.ThumbnailURL,
			"courseType":    e.Course.CourseType,
			"completed":     completed,
			"totalLectures": total,
			"progress":      percent,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// UpdateCourseProgress godoc
// @Summary Mark a lecture complete
// @Description Set semantics: marking the same lecture twice is a no-op.
// @Tags user
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /user/update-course-progress [post]
func (uc *UserController) UpdateCourseProgress(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var input struct {
		CourseID  uint `json:"courseId"`
		LectureID uint `json:"lectureId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if !uc.isEnrolled(userID, input.CourseID) {
		return utils.Forbidden(c, "Not enrolled in this course")
	}

	// The lecture must belong to the course it is reported against.
	var belongs int64
	uc.DB.Model(&models.Lecture{}).
		Joins("JOIN chapters ON chapters.id = lectures.chapter_id").
		Where("lectures.id = ? AND chapters.course_id = ?", input.LectureID, input.CourseID).
		Count(&belongs)
	if belongs == 0 {
		return utils.NotFound(c, "Lecture not found in course")
	}

	var progress models.CourseProgress
	err := uc.DB.Where("user_id = ? AND course_id = ?", userID, input.CourseID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.CourseProgress{UserID: userID, CourseID: input.CourseID}
		if err := uc.DB.Create(&progress).Error; err != nil {
			return utils.InternalServerError(c, "Could not create progress")
		}
	} else if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	// Duplicate marks hit the unique index and are dropped.
	mark := models.CompletedLecture{CourseProgressID: progress.ID, LectureID: input.LectureID}
	if err := uc.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&mark).Error; err != nil {
		return utils.InternalServerError(c, "Could not save progress")
	}

	progress.LastAccessed = time.Now()
	uc.DB.Save(&progress)

	completed, total, percent := uc.completion(userID, input.CourseID)

	return utils.Message(c, fiber.StatusOK, "Progress updated", fiber.Map{
		"completed":     completed,
		"totalLectures": total,
		"progress":      percent,
	})
}

// GetCourseProgress returns the completed lecture ids and the recomputed
// completion percentage for one course.
func (uc *UserController) GetCourseProgress(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	if !uc.isEnrolled(userID, uint(courseID)) {
		return utils.Forbidden(c, "Not enrolled in this course")
	}

	lectureIDs := []uint{}
	uc.DB.Model(&models.CompletedLecture{}).
		Joins("JOIN course_progresses ON course_progresses.id = completed_lectures.course_progress_id").
		Joins("JOIN lectures ON lectures.id = completed_lectures.lecture_id AND lectures.deleted_at IS NULL").
		Joins("JOIN chapters ON chapters.id = lectures.chapter_id AND chapters.course_id = course_progresses.course_id").
		Where("course_progresses.user_id = ? AND course_progresses.course_id = ?", userID, courseID).
		Pluck("completed_lectures.lecture_id", &lectureIDs)

	completed, total, percent := uc.completion(userID, uint(courseID))

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"completedLectures": lectureIDs,
		"completed":         completed,
		"totalLectures":     total,
		"progress":          percent,
	})
}

type ratingInput struct {
	CourseID uint `json:"courseId" validate:"required"`
	Rating   int  `json:"rating" validate:"required,min=1,max=5"`
}

// AddRating godoc
// @Summary Rate a course
// @Description One rating per user per course; a second call overwrites the first.
// @Tags user
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /user/add-rating [post]
func (uc *UserController) AddRating(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var input ratingInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := uc.validate.Struct(input); err != nil {
		return utils.BadRequest(c, "Rating must be between 1 and 5")
	}

	if !uc.isEnrolled(userID, input.CourseID) {
		return utils.Forbidden(c, "Not enrolled in this course")
	}

	rating := models.Rating{UserID: userID, CourseID: input.CourseID, Value: input.Rating}
	err := uc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": input.Rating, "updated_at": time.Now()}),
	}).Create(&rating).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not save rating")
	}

	return utils.Message(c, fiber.StatusOK, "Rating saved")
}

type certificateRequestInput struct {
	CourseID uint   `json:"courseId" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// RequestCertificate godoc
// @Summary Request a completion certificate
// @Description Allowed only at 100% progress on a premium course that offers
// certificates. Duplicate requests are rejected.
// @Tags user
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/request-certificate [post]
func (uc *UserController) RequestCertificate(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var input certificateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := uc.validate.Struct(input); err != nil {
		return utils.BadRequest(c, "Course, phone and a valid email are required")
	}

	if !uc.isEnrolled(userID, input.CourseID) {
		return utils.Forbidden(c, "Not enrolled in this course")
	}

	var course models.Course
	if err := uc.DB.Preload("PremiumFeatures").First(&course, input.CourseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}
	if course.CourseType != models.CourseTypePremium || course.PremiumFeatures == nil || !course.PremiumFeatures.HasCertificate {
		return utils.BadRequest(c, "This course does not offer a certificate")
	}

	_, _, percent := uc.completion(userID, input.CourseID)
	if percent < 100 {
		return utils.BadRequest(c, fmt.Sprintf("Course is only %.0f%% complete; finish all lectures to request a certificate", percent))
	}

	var existing int64
	uc.DB.Model(&models.CertificateRequest{}).
		Where("user_id = ? AND course_id = ?", userID, input.CourseID).
		Count(&existing)
	if existing > 0 {
		return utils.Conflict(c, "Certificate already requested")
	}

	request := models.CertificateRequest{
		UserID:   userID,
		CourseID: input.CourseID,
		Phone:    input.Phone,
		Email:    input.Email,
		Status:   models.CertificateStatusPending,
	}
	if err := uc.DB.Create(&request).Error; err != nil {
		// Racing duplicate hits the unique index.
		return utils.Conflict(c, "Certificate already requested")
	}

	return utils.Message(c, fiber.StatusCreated, "Certificate requested", fiber.Map{
		"requestId": request.ID,
		"status":    request.Status,
	})
}

type educatorApplicationInput struct {
	Name        string   `json:"name" validate:"required"`
	Tagline     string   `json:"tagline"`
	Bio         string   `json:"bio" validate:"required"`
	TechTags    []string `json:"techTags"`
	GitHubURL   string   `json:"githubUrl" validate:"omitempty,url"`
	LinkedInURL string   `json:"linkedinUrl" validate:"omitempty,url"`
	ImageURL    string   `json:"imageUrl"`
}

// ApplyEducator creates a pending educator application for the caller.
func (uc *UserController) ApplyEducator(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var input educatorApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := uc.validate.Struct(input); err != nil {
		return utils.BadRequest(c, "Name and bio are required; links must be valid URLs")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}
	if user.IsEducator() {
		return utils.Conflict(c, "Already an educator")
	}

	var existing models.EducatorApplication
	err := uc.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil && existing.Status == models.ApplicationStatusPending {
		return utils.Conflict(c, "Application already pending")
	}

	tags, _ := json.Marshal(input.TechTags)

	application := models.EducatorApplication{
		UserID:      userID,
		Name:        input.Name,
		Tagline:     input.Tagline,
		Bio:         input.Bio,
		TechTags:    datatypes.JSON(tags),
		GitHubURL:   input.GitHubURL,
		LinkedInURL: input.LinkedInURL,
		ImageURL:    input.ImageURL,
		Status:      models.ApplicationStatusPending,
	}

	if err == nil {
		// Rejected applicants may re-apply; the old row is replaced.
		application.ID = existing.ID
		application.CreatedAt = existing.CreatedAt
		if err := uc.DB.Save(&application).Error; err != nil {
			return utils.InternalServerError(c, "Could not save application")
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := uc.DB.Create(&application).Error; err != nil {
			return utils.InternalServerError(c, "Could not save application")
		}
	} else {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Message(c, fiber.StatusCreated, "Application submitted", fiber.Map{
		"applicationId": application.ID,
		"status":        application.Status,
	})
}

// GetProfile returns the caller's profile.
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	var enrolled int64
	uc.DB.Model(&models.Enrollment{}).Where("user_id = ?", userID).Count(&enrolled)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":              user.ID,
		"name":            user.Name,
		"email":           user.Email,
		"role":            user.Role,
		"imageUrl":        user.ImageURL,
		"enrolledCourses": enrolled,
		"createdAt":       user.CreatedAt,
	})
}

// UpdateProfile updates the caller's name and, when a multipart "image"
// field is present, proxies the profile image to the media host.
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	if name := c.FormValue("name"); name != "" {
		user.Name = name
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return utils.BadRequest(c, "Could not read image")
		}
		defer file.Close()

		url, err := uc.Media.Upload(c.Context(), file, "profile-images", fmt.Sprintf("user-%d", userID))
		if err != nil {
			return utils.InternalServerError(c, "Image upload failed")
		}
		user.ImageURL = url
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update profile")
	}

	return utils.Message(c, fiber.StatusOK, "Profile updated", fiber.Map{
		"name":     user.Name,
		"imageUrl": user.ImageURL,
	})
}

func (uc *UserController) isEnrolled(userID, courseID uint) bool {
	var count int64
	uc.DB.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count)
	return count > 0
}

// completion recomputes the percentage on every read; it is never stored.
func (uc *UserController) completion(userID, courseID uint) (int64, int64, float64) {
	return completionStats(uc.DB, userID, courseID)
}
