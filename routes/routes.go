package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learnhub/config"
	"learnhub/controllers"
	"learnhub/middleware"
	"learnhub/services"
)

// Deps carries the external-collaborator clients the handlers depend on.
type Deps struct {
	Payments  services.PaymentGateway
	Media     services.MediaStore
	Mailer    services.Mailer
	Assistant services.Assistant
	Logger    *zap.Logger
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, deps Deps) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	educatorMiddleware := middleware.EducatorMiddleware(db, cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// Public catalog
	courseController := controllers.NewCourseController(db, cfg)
	app.Get("/api/course/all", courseController.GetAllCourses)
	app.Get("/api/course/:id", courseController.GetCourseByID)

	// Student routes
	userController := controllers.NewUserController(db, cfg, deps.Payments, deps.Media)
	user := app.Group("/api/user", authMiddleware)
	user.Post("/initializeCoursePayment", userController.InitializeCoursePayment)
	user.Get("/paymentStatus/:orderId", userController.GetPaymentStatus)
	user.Get("/enrolled-courses", userController.GetEnrolledCourses)
	user.Post("/update-course-progress", userController.UpdateCourseProgress)
	user.Get("/get-course-progress/:courseId", userController.GetCourseProgress)
	user.Post("/add-rating", userController.AddRating)
	user.Post("/request-certificate", userController.RequestCertificate)
	user.Post("/apply-educator", userController.ApplyEducator)
	user.Get("/profile", userController.GetProfile)
	user.Put("/profile", userController.UpdateProfile)

	// Educator routes
	educatorController := controllers.NewEducatorController(db, cfg, deps.Media, deps.Payments)
	educator := app.Group("/api/educator", educatorMiddleware)
	educator.Post("/add-course", educatorController.AddCourse)
	educator.Post("/updateCourseBasic/:id", educatorController.UpdateCourseBasic)
	educator.Post("/updateCourseContent/:id", educatorController.UpdateCourseContent)
	educator.Post("/submitForReview/:id", educatorController.SubmitForReview)
	educator.Get("/courses", educatorController.GetCourses)
	educator.Get("/dashboard", educatorController.GetDashboard)
	educator.Get("/enrolledStudents", educatorController.GetEnrolledStudents)
	educator.Get("/exportEnrollments", educatorController.ExportEnrollments)
	educator.Get("/getWallet", educatorController.GetWallet)
	educator.Post("/withdrawFromWallet", educatorController.WithdrawFromWallet)

	// Admin routes
	adminController := controllers.NewAdminController(db, cfg, deps.Media, deps.Mailer, deps.Logger)
	admin := app.Group("/api/admin", adminMiddleware)
	admin.Get("/getAllEducatorApplications", adminController.GetAllEducatorApplications)
	admin.Post("/approveEducator", adminController.ApproveEducator)
	admin.Get("/pendingCourses", adminController.GetPendingCourses)
	admin.Post("/reviewCourse", adminController.ReviewCourse)
	admin.Get("/certificateRequests", adminController.GetCertificateRequests)
	admin.Post("/processCertificateRequest", adminController.ProcessCertificateRequest)

	// Payment processor webhook (server-to-server, signature-verified)
	paymentController := controllers.NewPaymentController(db, cfg, deps.Payments, deps.Logger)
	app.Post("/api/payment/webhook", paymentController.Webhook)

	// AI assistant
	aiController := controllers.NewAIController(db, cfg, deps.Assistant)
	app.Post("/ai", authMiddleware, aiController.Ask)
	app.Post("/ai/file", authMiddleware, aiController.AskWithFile)
}
