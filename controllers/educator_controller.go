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

	"learnhub/config"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/services"
	"learnhub/utils"
)

// EducatorController serves the authoring console: course lifecycle, roster
// and the earnings wallet.
type EducatorController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Media    services.MediaStore
	Payments services.PaymentGateway
	validate *validator.Validate
}

func NewEducatorController(db *gorm.DB, cfg *config.Config, media services.MediaStore, payments services.PaymentGateway) *EducatorController {
	return &EducatorController{DB: db, Cfg: cfg, Media: media, Payments: payments, validate: validator.New()}
}

type lectureInput struct {
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
	MediaURL        string `json:"mediaUrl"`
	IsFreePreview   bool   `json:"isFreePreview"`
	SequenceOrder   int    `json:"order"`
}

type chapterInput struct {
	Title         string         `json:"title"`
	SequenceOrder int            `json:"order"`
	Lectures      []lectureInput `json:"lectures"`
}

type handoutInput struct {
	Name      string `json:"name"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
	URL       string `json:"url"`
}

type premiumFeaturesInput struct {
	CommunityURL         string         `json:"communityUrl"`
	QAEnabled            bool           `json:"qaEnabled"`
	CareerSupport        bool           `json:"careerSupport"`
	InstructorAssistance string         `json:"instructorAssistance"`
	LiveSessionSchedule  string         `json:"liveSessionSchedule"`
	HasCertificate       bool           `json:"hasCertificate"`
	Handouts             []handoutInput `json:"handouts"`
}

type courseInput struct {
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	Category         string                `json:"category"`
	Difficulty       string                `json:"difficulty"`
	Language         string                `json:"language"`
	Tags             []string              `json:"tags"`
	Requirements     []string              `json:"requirements"`
	LearningOutcomes []string              `json:"learningOutcomes"`
	Price            float64               `json:"price"`
	DiscountPercent  int                   `json:"discountPercent"`
	PromoVideoURL    string                `json:"promoVideoUrl"`
	CourseType       models.CourseType     `json:"courseType"`
	Chapters         []chapterInput        `json:"courseContent"`
	PremiumFeatures  *premiumFeaturesInput `json:"premiumFeatures"`
}

func validateCourseInput(input *courseInput) error {
	if input.Title == "" || input.Description == "" {
		return errors.New("title and description are required")
	}
	if input.Price < 0 {
		return errors.New("price must not be negative")
	}
	if len(input.Chapters) == 0 {
		return errors.New("course must have at least one chapter")
	}
	for _, ch := range input.Chapters {
		if ch.Title == "" {
			return errors.New("every chapter needs a title")
		}
		if len(ch.Lectures) == 0 {
			return fmt.Errorf("chapter %q has no lectures", ch.Title)
		}
		for _, lec := range ch.Lectures {
			if lec.Title == "" {
				return fmt.Errorf("chapter %q has a lecture without a title", ch.Title)
			}
			if lec.DurationMinutes <= 0 {
				return fmt.Errorf("lecture %q must have a positive duration", lec.Title)
			}
		}
	}
	if input.CourseType == models.CourseTypePremium && input.PremiumFeatures == nil {
		return errors.New("premium course requires a premium features block")
	}
	return nil
}

// AddCourse godoc
// @Summary Create a course
// @Description Multipart: "courseData" JSON plus a "thumbnail" file which is
// proxied to the media host. The new course starts in the pending state.
// @Tags educator
// @Accept mpfd
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /educator/add-course [post]
func (ec *EducatorController) AddCourse(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	raw := c.FormValue("courseData")
	if raw == "" {
		return utils.BadRequest(c, "courseData is required")
	}

	var input courseInput
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		return utils.BadRequest(c, "Cannot parse courseData")
	}
	if err := validateCourseInput(&input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	fileHeader, err := c.FormFile("thumbnail")
	if err != nil {
		return utils.BadRequest(c, "thumbnail required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.BadRequest(c, "Could not read thumbnail")
	}
	defer file.Close()

	thumbnailURL, err := ec.Media.Upload(c.Context(), file, "course-thumbnails",
		fmt.Sprintf("course-%d-%d", userID, time.Now().UnixNano()))
	if err != nil {
		return utils.InternalServerError(c, "Thumbnail upload failed")
	}

	course := ec.buildCourse(&input, userID)
	course.ThumbnailURL = thumbnailURL

	if err := ec.DB.Create(course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return utils.Message(c, fiber.StatusCreated, "Course created", fiber.Map{
		"courseId": course.ID,
		"status":   course.Status,
	})
}

// buildCourse assembles the nested course document. Sequence orders are
// assigned monotonically by position when the input does not carry them.
func (ec *EducatorController) buildCourse(input *courseInput, educatorID uint) *models.Course {
	tags, _ := json.Marshal(input.Tags)
	reqs, _ := json.Marshal(input.Requirements)
	outcomes, _ := json.Marshal(input.LearningOutcomes)

	courseType := input.CourseType
	if courseType == "" {
		courseType = models.CourseTypeBasic
	}

	course := &models.Course{
		Title:            input.Title,
		Description:      input.Description,
		Category:         input.Category,
		Difficulty:       input.Difficulty,
		Language:         input.Language,
		Tags:             datatypes.JSON(tags),
		Requirements:     datatypes.JSON(reqs),
		LearningOutcomes: datatypes.JSON(outcomes),
		Price:            input.Price,
		DiscountPercent:  clampDiscount(input.DiscountPercent),
		PromoVideoURL:    input.PromoVideoURL,
		CourseType:       courseType,
		Status:           models.CourseStatusPending,
		EducatorID:       educatorID,
		Chapters:         buildChapters(input.Chapters),
	}

	if courseType == models.CourseTypePremium && input.PremiumFeatures != nil {
		pf := &models.PremiumFeatures{
			CommunityURL:         input.PremiumFeatures.CommunityURL,
			QAEnabled:            input.PremiumFeatures.QAEnabled,
			CareerSupport:        input.PremiumFeatures.CareerSupport,
			InstructorAssistance: input.PremiumFeatures.InstructorAssistance,
			LiveSessionSchedule:  input.PremiumFeatures.LiveSessionSchedule,
			HasCertificate:       input.PremiumFeatures.HasCertificate,
		}
		for _, h := range input.PremiumFeatures.Handouts {
			pf.Handouts = append(pf.Handouts, models.Handout{
				Name:       h.Name,
				MimeType:   h.MimeType,
				SizeBytes:  h.SizeBytes,
				URL:        h.URL,
				UploadedAt: time.Now(),
			})
		}
		course.PremiumFeatures = pf
	}

	return course
}

func buildChapters(inputs []chapterInput) []models.Chapter {
	chapters := make([]models.Chapter, 0, len(inputs))
	chapterOrder := 0
	for _, ch := range inputs {
		chapterOrder = nextOrder(ch.SequenceOrder, chapterOrder)

		lectures := make([]models.Lecture, 0, len(ch.Lectures))
		lectureOrder := 0
		for _, lec := range ch.Lectures {
			lectureOrder = nextOrder(lec.SequenceOrder, lectureOrder)
			lectures = append(lectures, models.Lecture{
				Title:           lec.Title,
				DurationMinutes: lec.DurationMinutes,
				MediaURL:        lec.MediaURL,
				IsFreePreview:   lec.IsFreePreview,
				SequenceOrder:   lectureOrder,
			})
		}

		chapters = append(chapters, models.Chapter{
			Title:         ch.Title,
			SequenceOrder: chapterOrder,
			Lectures:      lectures,
		})
	}
	return chapters
}

// nextOrder keeps a client-provided order when present, otherwise appends
// after the highest order seen so far. Gaps left by removals stay.
func nextOrder(given, previous int) int {
	if given > previous {
		return given
	}
	return previous + 1
}

// UpdateCourseBasic godoc
// @Summary Update course metadata and pricing
// @Description Owner-only. Does not touch course content or the publication
// status.
// @Tags educator
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /educator/updateCourseBasic/{id} [post]
func (ec *EducatorController) UpdateCourseBasic(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	course, errResp := ec.ownedCourse(c, userID)
	if course == nil {
		return errResp
	}

	var input struct {
		Title            string    `json:"title"`
		Description      string    `json:"description"`
		Category         string    `json:"category"`
		Difficulty       string    `json:"difficulty"`
		Language         string    `json:"language"`
		Tags             []string  `json:"tags"`
		Requirements     []string  `json:"requirements"`
		LearningOutcomes []string  `json:"learningOutcomes"`
		Price            *float64  `json:"price"`
		DiscountPercent  *int      `json:"discountPercent"`
		PromoVideoURL    string    `json:"promoVideoUrl"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Category != "" {
		course.Category = input.Category
	}
	if input.Difficulty != "" {
		course.Difficulty = input.Difficulty
	}
	if input.Language != "" {
		course.Language = input.Language
	}
	if input.Tags != nil {
		tags, _ := json.Marshal(input.Tags)
		course.Tags = datatypes.JSON(tags)
	}
	if input.Requirements != nil {
		reqs, _ := json.Marshal(input.Requirements)
		course.Requirements = datatypes.JSON(reqs)
	}
	if input.LearningOutcomes != nil {
		outcomes, _ := json.Marshal(input.LearningOutcomes)
		course.LearningOutcomes = datatypes.JSON(outcomes)
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return utils.BadRequest(c, "price must not be negative")
		}
		course.Price = *input.Price
	}
	if input.DiscountPercent != nil {
		course.DiscountPercent = clampDiscount(*input.DiscountPercent)
	}
	if input.PromoVideoURL != "" {
		course.PromoVideoURL = input.PromoVideoURL
	}

	if err := ec.DB.Save(course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	return utils.Message(c, fiber.StatusOK, "Course updated")
}

// UpdateCourseContent replaces the chapter/lecture tree wholesale; there is
// no field-level patching of content.
func (ec *EducatorController) UpdateCourseContent(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	course, errResp := ec.ownedCourse(c, userID)
	if course == nil {
		return errResp
	}

	var input struct {
		Chapters []chapterInput `json:"courseContent"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if len(input.Chapters) == 0 {
		return utils.BadRequest(c, "course must have at least one chapter")
	}
	for _, ch := range input.Chapters {
		if len(ch.Lectures) == 0 {
			return utils.BadRequest(c, fmt.Sprintf("chapter %q has no lectures", ch.Title))
		}
		for _, lec := range ch.Lectures {
			if lec.DurationMinutes <= 0 {
				return utils.BadRequest(c, fmt.Sprintf("lecture %q must have a positive duration", lec.Title))
			}
		}
	}

	chapters := buildChapters(input.Chapters)

	err := ec.DB.Transaction(func(tx *gorm.DB) error {
		var chapterIDs []uint
		if err := tx.Model(&models.Chapter{}).Where("course_id = ?", course.ID).Pluck("id", &chapterIDs).Error; err != nil {
			return err
		}
		if len(chapterIDs) > 0 {
			if err := tx.Unscoped().Where("chapter_id IN ?", chapterIDs).Delete(&models.Lecture{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("course_id = ?", course.ID).Delete(&models.Chapter{}).Error; err != nil {
				return err
			}
		}
		for i := range chapters {
			chapters[i].CourseID = course.ID
		}
		return tx.Create(&chapters).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not save course content")
	}

	return utils.Message(c, fiber.StatusOK, "Course content saved")
}

// SubmitForReview re-runs the structural checks and moves a rejected course
// back to pending. Review itself happens out of band through the admin
// endpoints; pending courses simply stay pending.
func (ec *EducatorController) SubmitForReview(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	course, errResp := ec.ownedCourse(c, userID)
	if course == nil {
		return errResp
	}

	if course.Status == models.CourseStatusApproved {
		return utils.Conflict(c, "Course is already approved")
	}

	if err := ec.DB.Preload("Chapters.Lectures").First(course, course.ID).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	if course.ThumbnailURL == "" {
		return utils.BadRequest(c, "thumbnail required")
	}
	if len(course.Chapters) == 0 {
		return utils.BadRequest(c, "course must have at least one chapter")
	}
	for _, ch := range course.Chapters {
		if len(ch.Lectures) == 0 {
			return utils.BadRequest(c, fmt.Sprintf("chapter %q has no lectures", ch.Title))
		}
	}

	course.Status = models.CourseStatusPending
	course.RejectionReason = ""
	if err := ec.DB.Save(course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	return utils.Message(c, fiber.StatusOK, "Course submitted for review", fiber.Map{
		"status": course.Status,
	})
}

// GetCourses lists the educator's own courses with enrollment counts.
func (ec *EducatorController) GetCourses(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var courses []models.Course
	if err := ec.DB.Where("educator_id = ?", userID).Order("created_at DESC").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := []fiber.Map{}
	for _, course := range courses {
		var enrollments int64
		ec.DB.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&enrollments)

		result = append(result, fiber.Map{
			"id":              course.ID,
			"title":           course.Title,
			"status":          course.Status,
			"rejectionReason": course.RejectionReason,
			"price":           course.Price,
			"discountPercent": course.DiscountPercent,
			"courseType":      course.CourseType,
			"thumbnailUrl":    course.ThumbnailURL,
			"enrollments":     enrollments,
			"createdAt":       course.CreatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// GetDashboard summarizes earnings, courses and latest enrollments.
func (ec *EducatorController) GetDashboard(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var courseCount int64
	ec.DB.Model(&models.Course{}).Where("educator_id = ?", userID).Count(&courseCount)

	var enrollmentCount int64
	ec.DB.Model(&models.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.educator_id = ?", userID).
		Count(&enrollmentCount)

	var totalEarnings float64
	ec.DB.Model(&models.WalletTransaction{}).
		Joins("JOIN wallets ON wallets.id = wallet_transactions.wallet_id").
		Where("wallets.educator_id = ? AND wallet_transactions.type = ?", userID, models.TransactionEarning).
		Select("COALESCE(SUM(wallet_transactions.amount), 0)").
		Scan(&totalEarnings)

	var latest []models.Enrollment
	ec.DB.Preload("User").Preload("Course").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.educator_id = ?", userID).
		Order("enrollments.created_at DESC").
		Limit(5).
		Find(&latest)

	latestEnrollments := []fiber.Map{}
	for _, e := range latest {
		latestEnrollments = append(latestEnrollments, fiber.Map{
			"student":    e.User.Name,
			"course":     e.Course.Title,
			"enrolledAt": e.CreatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"totalEarnings":     totalEarnings,
		"courses":           courseCount,
		"enrollments":       enrollmentCount,
		"latestEnrollments": latestEnrollments,
	})
}

// GetEnrolledStudents lists students across all of the educator's courses.
func (ec *EducatorController) GetEnrolledStudents(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	rows, err := ec.rosterRows(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := []fiber.Map{}
	for _, r := range rows {
		result = append(result, fiber.Map{
			"student":    r.StudentName,
			"email":      r.StudentEmail,
			"course":     r.CourseTitle,
			"enrolledAt": r.EnrolledAt,
			"amountPaid": r.AmountPaid,
			"progress":   r.Progress,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// ExportEnrollments streams the roster as an xlsx download.
func (ec *EducatorController) ExportEnrollments(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	rows, err := ec.rosterRows(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	buf, err := services.EnrollmentSheet(rows)
	if err != nil {
		return utils.InternalServerError(c, "Could not build export")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="enrollments.xlsx"`)
	return c.Send(buf.Bytes())
}

func (ec *EducatorController) rosterRows(educatorID uint) ([]services.EnrollmentRow, error) {
	var enrollments []models.Enrollment
	err := ec.DB.Preload("User").Preload("Course").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.educator_id = ?", educatorID).
		Order("enrollments.created_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}

	rows := make([]services.EnrollmentRow, 0, len(enrollments))
	for _, e := range enrollments {
		var paid float64
		ec.DB.Model(&models.Payment{}).
			Where("user_id = ? AND course_id = ? AND status = ?", e.UserID, e.CourseID, models.PaymentStatusCompleted).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&paid)

		_, _, percent := completionStats(ec.DB, e.UserID, e.CourseID)

		rows = append(rows, services.EnrollmentRow{
			StudentName:  e.User.Name,
			StudentEmail: e.User.Email,
			CourseTitle:  e.Course.Title,
			EnrolledAt:   e.CreatedAt,
			AmountPaid:   paid,
			Progress:     percent,
		})
	}
	return rows, nil
}

// GetWallet godoc
// @Summary Wallet balance and transaction history
// @Tags educator
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /educator/getWallet [get]
func (ec *EducatorController) GetWallet(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var wallet models.Wallet
	err := ec.DB.Preload("Transactions", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}).Where("educator_id = ?", userID).First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Success(c, fiber.StatusOK, fiber.Map{
				"balance":      0,
				"transactions": []fiber.Map{},
			})
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	transactions := []fiber.Map{}
	for _, t := range wallet.Transactions {
		transactions = append(transactions, fiber.Map{
			"type":      t.Type,
			"amount":    t.Amount,
			"status":    t.Status,
			"reference": t.Reference,
			"date":      t.CreatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"balance":      wallet.Balance,
		"transactions": transactions,
	})
}

type withdrawInput struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	AccountNumber string  `json:"accountNumber" validate:"required"`
	BankCode      string  `json:"bankCode" validate:"required"`
}

// WithdrawFromWallet godoc
// @Summary Withdraw accrued earnings
// @Description Guards: amount > 0 and amount <= available balance; the
// transfer itself is performed by the payment processor. The debit and the
// withdrawal record move in one transaction.
// @Tags educator
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /educator/withdrawFromWallet [post]
func (ec *EducatorController) WithdrawFromWallet(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var input withdrawInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ec.validate.Struct(input); err != nil {
		return utils.BadRequest(c, "Amount, account number and bank code are required; amount must be positive")
	}

	var wallet models.Wallet
	if err := ec.DB.Where("educator_id = ?", userID).First(&wallet).Error; err != nil {
		return utils.NotFound(c, "Wallet not found")
	}
	if input.Amount > wallet.Balance {
		return utils.BadRequest(c, "Insufficient balance")
	}

	// Debit first and record the withdrawal as pending, so the transfer is
	// only attempted once the funds are committed. A failed transfer refunds
	// the debit.
	withdrawal := models.WalletTransaction{
		Type:   models.TransactionWithdrawal,
		Amount: input.Amount,
		Status: models.TransactionPending,
	}
	err := ec.DB.Transaction(func(tx *gorm.DB) error {
		var w models.Wallet
		if err := tx.Where("educator_id = ?", userID).First(&w).Error; err != nil {
			return err
		}
		if input.Amount > w.Balance {
			return errors.New("insufficient balance")
		}
		w.Balance -= input.Amount
		if err := tx.Save(&w).Error; err != nil {
			return err
		}
		withdrawal.WalletID = w.ID
		return tx.Create(&withdrawal).Error
	})
	if err != nil {
		if err.Error() == "insufficient balance" {
			return utils.BadRequest(c, "Insufficient balance")
		}
		return utils.InternalServerError(c, "Withdrawal failed")
	}

	reference, err := ec.Payments.Payout(input.Amount, ec.Cfg.Currency, input.AccountNumber)
	if err != nil {
		refundErr := ec.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Wallet{}).Where("id = ?", withdrawal.WalletID).
				Update("balance", gorm.Expr("balance + ?", input.Amount)).Error; err != nil {
				return err
			}
			return tx.Model(&withdrawal).Update("status", models.TransactionFailed).Error
		})
		if refundErr != nil {
			return utils.InternalServerError(c, "Withdrawal failed; contact support")
		}
		return utils.InternalServerError(c, "Withdrawal failed")
	}

	if err := ec.DB.Model(&withdrawal).Updates(map[string]interface{}{
		"status":    models.TransactionProcessed,
		"reference": reference,
	}).Error; err != nil {
		return utils.InternalServerError(c, "Withdrawal failed")
	}

	return utils.Message(c, fiber.StatusOK, "Withdrawal processed", fiber.Map{
		"amount":    input.Amount,
		"reference": reference,
	})
}

// ownedCourse loads the course from the :id param and enforces the owner
// rule on every mutating call.
func (ec *EducatorController) ownedCourse(c *fiber.Ctx, userID uint) (*models.Course, error) {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := ec.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound(c, "Course not found")
		}
		return nil, utils.InternalServerError(c, "Could not query database")
	}

	if course.EducatorID != userID {
		return nil, utils.Forbidden(c, "You don't have permission to edit this course")
	}

	return &course, nil
}
