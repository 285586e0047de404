package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnhub/config"
	"learnhub/models"
	"learnhub/utils"
)

// CourseController serves the public storefront: catalog browsing and the
// course detail page.
type CourseController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCourseController(db *gorm.DB, cfg *config.Config) *CourseController {
	return &CourseController{DB: db, Cfg: cfg}
}

// GetAllCourses godoc
// @Summary List approved courses
// @Description Returns the public catalog with search, category filter and sorting
// @Tags courses
// @Produce json
// @Param search query string false "Search term"
// @Param category query string false "Category filter"
// @Param sort query string false "Sort (popularity|newest|rating|price)" default(popularity)
// @Success 200 {object} utils.SuccessResponse
// @Router /course/all [get]
func (cc *CourseController) GetAllCourses(c *fiber.Ctx) error {
	search := c.Query("search")
	category := c.Query("category")
	sort := c.Query("sort", "popularity")

	query := cc.DB.Model(&models.Course{}).
		Where("status = ?", models.CourseStatusApproved).
		Preload("Educator")

	if search != "" {
		query = query.Where("title LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	switch sort {
	case "newest":
		query = query.Order("created_at DESC")
	case "price":
		query = query.Order("price * (100 - discount_percent) ASC")
	case "rating":
		query = query.Order("(SELECT COALESCE(AVG(value), 0) FROM ratings WHERE ratings.course_id = courses.id AND ratings.deleted_at IS NULL) DESC")
	default: // popularity
		query = query.Order("(SELECT COUNT(*) FROM enrollments WHERE enrollments.course_id = courses.id AND enrollments.deleted_at IS NULL) DESC")
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch courses")
	}

	result := []fiber.Map{}
	for _, course := range courses {
		rating, enrollments, lectures := cc.courseAggregates(course.ID)

		result = append(result, fiber.Map{
			"id":              course.ID,
			"title":           course.Title,
			"category":        course.Category,
			"difficulty":      course.Difficulty,
			"language":        course.Language,
			"courseType":      course.CourseType,
			"price":           course.Price,
			"discountPercent": course.DiscountPercent,
			"discountedPrice": course.DiscountedPrice(),
			"thumbnailUrl":    course.ThumbnailURL,
			"educator":        course.Educator.Name,
			"rating":          rating,
			"enrollments":     enrollments,
			"totalLectures":   lectures,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// GetCourseByID godoc
// @Summary Course detail
// @Description Returns one approved course with its content. Lecture media
// URLs are hidden unless the lecture is a free preview or the caller is
// enrolled (or owns the course).
// @Tags courses
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /course/{id} [get]
func (cc *CourseController) GetCourseByID(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	err = cc.DB.
		Preload("Educator").
		Preload("Chapters", func(db *gorm.DB) *gorm.DB { return db.Order("sequence_order") }).
		Preload("Chapters.Lectures", func(db *gorm.DB) *gorm.DB { return db.Order("sequence_order") }).
		Preload("PremiumFeatures").
		Preload("PremiumFeatures.Handouts").
		First(&course, courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	// Unlisted courses are visible only to their owner.
	viewerID, _ := utils.ExtractUserIDFromToken(c, cc.Cfg) // optional auth
	isOwner := viewerID != 0 && viewerID == course.EducatorID
	if course.Status != models.CourseStatusApproved && !isOwner {
		return utils.NotFound(c, "Course not found")
	}

	enrolled := false
	if viewerID != 0 {
		var count int64
		cc.DB.Model(&models.Enrollment{}).
			Where("user_id = ? AND course_id = ?", viewerID, course.ID).
			Count(&count)
		enrolled = count > 0
	}

	chapters := []fiber.Map{}
	for _, ch := range course.Chapters {
		lectures := []fiber.Map{}
		for _, lec := range ch.Lectures {
			mediaURL := lec.MediaURL
			if !lec.IsFreePreview && !enrolled && !isOwner {
				mediaURL = ""
			}
			lectures = append(lectures, fiber.Map{
				"id":              lec.ID,
				"title":           lec.Title,
				"durationMinutes": lec.DurationMinutes,
				"isFreePreview":   lec.IsFreePreview,
				"order":           lec.SequenceOrder,
				"mediaUrl":        mediaURL,
			})
		}
		chapters = append(chapters, fiber.Map{
			"id":       ch.ID,
			"title":    ch.Title,
			"order":    ch.SequenceOrder,
			"lectures": lectures,
		})
	}

	rating, enrollments, lectures := cc.courseAggregates(course.ID)

	payload := fiber.Map{
		"id":               course.ID,
		"title":            course.Title,
		"description":      course.Description,
		"category":         course.Category,
		"difficulty":       course.Difficulty,
		"language":         course.Language,
		"tags":             course.Tags,
		"requirements":     course.Requirements,
		"learningOutcomes": course.LearningOutcomes,
		"price":            course.Price,
		"discountPercent":  course.DiscountPercent,
		"discountedPrice":  course.DiscountedPrice(),
		"thumbnailUrl":     course.ThumbnailURL,
		"promoVideoUrl":    course.PromoVideoURL,
		"courseType":       course.CourseType,
		"status":           course.Status,
		"educator":         fiber.Map{"id": course.Educator.ID, "name": course.Educator.Name},
		"courseContent":    chapters,
		"rating":           rating,
		"enrollments":      enrollments,
		"totalLectures":    lectures,
		"isEnrolled":       enrolled,
	}

	if course.CourseType == models.CourseTypePremium && course.PremiumFeatures != nil {
		handouts := []fiber.Map{}
		for _, h := range course.PremiumFeatures.Handouts {
			handouts = append(handouts, fiber.Map{
				"id":         h.ID,
				"name":       h.Name,
				"mimeType":   h.MimeType,
				"sizeBytes":  h.SizeBytes,
				"url":        h.URL,
				"uploadedAt": h.UploadedAt,
			})
		}
		payload["premiumFeatures"] = fiber.Map{
			"communityUrl":         course.PremiumFeatures.CommunityURL,
			"qaEnabled":            course.PremiumFeatures.QAEnabled,
			"careerSupport":        course.PremiumFeatures.CareerSupport,
			"instructorAssistance": course.PremiumFeatures.InstructorAssistance,
			"liveSessionSchedule":  course.PremiumFeatures.LiveSessionSchedule,
			"hasCertificate":       course.PremiumFeatures.HasCertificate,
			"handouts":             handouts,
		}
	}

	return utils.Success(c, fiber.StatusOK, payload)
}

func (cc *CourseController) courseAggregates(courseID uint) (float64, int64, int64) {
	var rating float64
	cc.DB.Model(&models.Rating{}).
		Select("COALESCE(AVG(value), 0)").
		Where("course_id = ?", courseID).
		Scan(&rating)

	var enrollments int64
	cc.DB.Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&enrollments)

	var lectures int64
	cc.DB.Model(&models.Lecture{}).
		Joins("JOIN chapters ON chapters.id = lectures.chapter_id").
		Where("chapters.course_id = ?", courseID).
		Count(&lectures)

	return rating, enrollments, lectures
}
