package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"thinkhabit/backend/config"
	"thinkhabit/backend/controllers"
	"thinkhabit/backend/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg, logger)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/google", authController.GoogleLogin)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(cfg)
	widgetMiddleware := middleware.WidgetMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)
	app.Post("/api/widget/token", authMiddleware, userController.IssueWidgetToken)

	// Dashboard and training progress
	dashboardController := controllers.NewDashboardController(db, cfg, logger)
	app.Get("/api/dashboard", authMiddleware, dashboardController.GetDashboard)
	app.Get("/api/training/assignments", authMiddleware, dashboardController.GetTrainingAssignments)
	app.Get("/api/widget/dashboard", widgetMiddleware, dashboardController.GetWidgetDashboard)

	// Categories
	categoryController := controllers.NewCategoryController(db, cfg)
	app.Get("/api/categories", authMiddleware, categoryController.ListCategories)
	app.Get("/api/categories/:id", authMiddleware, categoryController.GetCategory)
	adminCategories := app.Group("/api/admin/categories", authMiddleware, adminMiddleware)
	adminCategories.Post("/", categoryController.CreateCategory)
	adminCategories.Put("/:id", categoryController.UpdateCategory)
	adminCategories.Delete("/:id", categoryController.DeactivateCategory)

	// Journals and comments
	journalController := controllers.NewJournalController(db, cfg)
	commentController := controllers.NewCommentController(db, cfg)
	journals := app.Group("/api/journals", authMiddleware)
	journals.Post("/", journalController.CreateJournal)
	journals.Get("/", journalController.ListJournals)
	journals.Get("/:id", journalController.GetJournal)
	journals.Put("/:id", journalController.UpdateJournal)
	journals.Delete("/:id", journalController.DeleteJournal)
	journals.Post("/:journalId/comments", commentController.CreateComment)
	journals.Get("/:journalId/comments", commentController.ListComments)
	app.Delete("/api/comments/:id", authMiddleware, commentController.DeleteComment)

	// Assignments (admin CRUD)
	assignmentController := controllers.NewAssignmentController(db, cfg)
	adminAssignments := app.Group("/api/admin/assignments", authMiddleware, adminMiddleware)
	adminAssignments.Post("/", assignmentController.CreateAssignment)
	adminAssignments.Get("/", assignmentController.ListAssignments)
	adminAssignments.Put("/:id", assignmentController.UpdateAssignment)
	adminAssignments.Delete("/:id", assignmentController.RevokeAssignment)

	// Notifications
	notificationController := controllers.NewNotificationController(db, cfg, logger)
	app.Get("/api/notifications", authMiddleware, notificationController.ListNotifications)
	app.Put("/api/notifications/read-all", authMiddleware, notificationController.MarkAllRead)
	app.Put("/api/notifications/:id/read", authMiddleware, notificationController.MarkRead)

	// Uploads
	uploadController := controllers.NewUploadController(cfg, logger)
	app.Post("/api/upload/image", authMiddleware, uploadController.UploadImage)

	// Surveys
	surveyController := controllers.NewSurveyController(db, cfg)
	app.Get("/api/surveys/questions", authMiddleware, surveyController.GetQuestions)
	app.Post("/api/surveys", authMiddleware, surveyController.SubmitSurvey)
	app.Get("/api/surveys/latest", authMiddleware, surveyController.GetLatestResult)
}
