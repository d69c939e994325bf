package router

import (
	"log"
	"time"

	"github.com/edupanel/campus-api/config"
	"github.com/edupanel/campus-api/database"
	"github.com/edupanel/campus-api/handlers"
	admin_handlers "github.com/edupanel/campus-api/handlers/admin"
	attendance_handlers "github.com/edupanel/campus-api/handlers/attendance"
	auth_handlers "github.com/edupanel/campus-api/handlers/auth"
	batch_handlers "github.com/edupanel/campus-api/handlers/batch"
	course_handlers "github.com/edupanel/campus-api/handlers/course"
	fee_handlers "github.com/edupanel/campus-api/handlers/fee"
	notification_handlers "github.com/edupanel/campus-api/handlers/notification"
	query_handlers "github.com/edupanel/campus-api/handlers/query"
	result_handlers "github.com/edupanel/campus-api/handlers/result"
	student_handlers "github.com/edupanel/campus-api/handlers/student"
	"github.com/edupanel/campus-api/model"
	"github.com/edupanel/campus-api/services"
	"github.com/edupanel/campus-api/utils/auth"
	"github.com/edupanel/campus-api/utils/cache"
	"github.com/edupanel/campus-api/utils/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, store database.Storage, getEnv *config.EnviornmentVariable) {
	jwtSecret := getEnv.JWT_SECRET
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "campus-api"
	}

	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        auth.AccessTokenTTL,
		RefreshExpiry: auth.RefreshTokenTTL,
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	db := store.GetDB()

	// Redis cache backs the brute force lockouts; the API still runs
	// without it, just unprotected.
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Services
	accountService := services.NewAccountService(db, jwtManager)
	notificationService := services.NewNotificationService(db)
	catalogService := services.NewCatalogService(db, notificationService)
	attendanceService := services.NewAttendanceService(db)
	resultService := services.NewResultService(db)
	feeService := services.NewFeeService(db)
	queryService := services.NewQueryService(db)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(db, accountService, jwtManager, bruteForceProtection)
	studentHandler := student_handlers.NewStudentHandler(accountService, catalogService)
	adminHandler := admin_handlers.NewAdminHandler(accountService)
	courseHandler := course_handlers.NewCourseHandler(catalogService)
	batchHandler := batch_handlers.NewBatchHandler(catalogService)
	attendanceHandler := attendance_handlers.NewAttendanceHandler(attendanceService)
	resultHandler := result_handlers.NewResultHandler(resultService)
	feeHandler := fee_handlers.NewFeeHandler(feeService)
	notificationHandler := notification_handlers.NewNotificationHandler(notificationService)
	queryHandler := query_handlers.NewQueryHandler(queryService)

	allowedOrigins := getEnv.ALLOWED_ORIGINS
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth(store))

	api := app.Group("/api/v1")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register/student", authHandler.RegisterStudent)
	authGroup.Post("/register/admin",
		authMiddleware.Required(),
		middleware.RequireRoles(model.RoleSuperAdmin),
		authHandler.RegisterAdmin)

	if bruteForceProtection != nil {
		loginGuard := bruteForceProtection.CheckAndRecordAttempt()
		authGroup.Post("/login/student", loginGuard, authHandler.LoginStudent)
		authGroup.Post("/login/admin", loginGuard, authHandler.LoginAdmin)
		authGroup.Post("/login/superadmin", loginGuard, authHandler.LoginSuperAdmin)
	} else {
		authGroup.Post("/login/student", authHandler.LoginStudent)
		authGroup.Post("/login/admin", authHandler.LoginAdmin)
		authGroup.Post("/login/superadmin", authHandler.LoginSuperAdmin)
	}

	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)

	staffOnly := middleware.RequireRoles(model.RoleAdmin, model.RoleSuperAdmin)
	superAdminOnly := middleware.RequireRoles(model.RoleSuperAdmin)

	// Student routes
	students := api.Group("/students", authMiddleware.Required())
	students.Get("/", staffOnly, studentHandler.ListStudents)
	students.Get("/:id", middleware.RequireSelfOrRoles("id", model.RoleAdmin, model.RoleSuperAdmin), studentHandler.GetStudent)
	students.Put("/:id", middleware.RequireSelfOrRoles("id", model.RoleAdmin, model.RoleSuperAdmin), studentHandler.UpdateStudent)
	students.Delete("/:id", staffOnly, studentHandler.DeleteStudent)
	students.Post("/enroll", studentHandler.Enroll)

	// Admin routes
	admins := api.Group("/admins", authMiddleware.Required())
	admins.Get("/", superAdminOnly, adminHandler.ListAdmins)
	admins.Get("/:id", middleware.RequireSelfOrRoles("id", model.RoleSuperAdmin), adminHandler.GetAdmin)
	admins.Post("/", superAdminOnly, adminHandler.CreateAdmin)
	admins.Put("/:id", superAdminOnly, adminHandler.UpdateAdmin)
	admins.Delete("/:id", superAdminOnly, adminHandler.DeleteAdmin)

	// SuperAdmin profile
	api.Get("/superadmin/profile", authMiddleware.Required(), superAdminOnly, adminHandler.GetSuperAdminProfile)

	// Course routes
	courses := api.Group("/courses", authMiddleware.Required())
	courses.Get("/", courseHandler.ListCourses)
	courses.Get("/:id", courseHandler.GetCourse)
	courses.Post("/", staffOnly, courseHandler.CreateCourse)
	courses.Put("/:id", staffOnly, courseHandler.UpdateCourse)
	courses.Delete("/:id", staffOnly, courseHandler.DeleteCourse)

	// Batch routes
	batches := api.Group("/batches", authMiddleware.Required())
	batches.Get("/", staffOnly, batchHandler.ListBatches)
	batches.Get("/:id", staffOnly, batchHandler.GetBatch)
	batches.Post("/", staffOnly, batchHandler.CreateBatch)

	// Attendance routes
	attendance := api.Group("/attendance", authMiddleware.Required())
	attendance.Post("/batch", staffOnly, attendanceHandler.SubmitBatch)
	attendance.Post("/actor", attendanceHandler.MarkActor)
	attendance.Get("/batch/:id", staffOnly, attendanceHandler.ByBatch)
	attendance.Get("/student/:id", middleware.RequireSelfOrRoles("id", model.RoleAdmin, model.RoleSuperAdmin), attendanceHandler.ByStudent)
	attendance.Get("/students", staffOnly, attendanceHandler.ByStudents)
	attendance.Get("/admins", staffOnly, attendanceHandler.ByAdmins)

	// Result routes
	results := api.Group("/results", authMiddleware.Required())
	results.Post("/", staffOnly, resultHandler.PostResult)
	results.Get("/student/:id", middleware.RequireSelfOrRoles("id", model.RoleAdmin, model.RoleSuperAdmin), resultHandler.ByStudent)

	// Fee routes
	fees := api.Group("/fees", authMiddleware.Required())
	fees.Post("/payments", staffOnly, feeHandler.PostPayment)
	fees.Get("/student/:id", middleware.RequireSelfOrRoles("id", model.RoleAdmin, model.RoleSuperAdmin), feeHandler.Balance)

	// Notification routes
	notifications := api.Group("/notifications", authMiddleware.Required())
	notifications.Get("/", staffOnly, notificationHandler.List)
	notifications.Get("/student/:id", middleware.RequireSelfOrRoles("id", model.RoleAdmin, model.RoleSuperAdmin), notificationHandler.ByStudent)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)

	// Query routes
	queries := api.Group("/queries", authMiddleware.Required())
	queries.Post("/", queryHandler.Submit)
	queries.Get("/", staffOnly, queryHandler.List)
	queries.Get("/student/:id", middleware.RequireSelfOrRoles("id", model.RoleAdmin, model.RoleSuperAdmin), queryHandler.ByStudent)
}
