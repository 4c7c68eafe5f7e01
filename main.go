package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"resto/config"
	"resto/controllers/notificationController"
	"resto/controllers/otpController"
	"resto/database"
	"resto/middleware"
	"resto/repository"
	notificationRoutes "resto/routers/notificationRoutes"
	otpRoutes "resto/routers/otpRoutes"
	"resto/services"
	"resto/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Service wiring: store adapter -> lifecycle manager -> controllers.
	mailer := utils.NewMailerFromConfig()
	otpRepo := repository.NewOTPRepository(database.Database.Db)
	otpService := services.NewOTPService(otpRepo, mailer, config.AppConfig.OTPHashSecret)

	// Sweep stale records from previous runs, then keep sweeping hourly.
	if _, err := otpService.CleanupExpired(time.Now()); err != nil {
		log.Printf("Startup cleanup failed: %v", err)
	}
	utils.InitializeCleanupScheduler(otpService)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Use(middleware.GeneralRateLimiter())

	startedAt := time.Now()
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success":   true,
			"message":   "Server running",
			"timestamp": time.Now().UTC(),
			"uptime":    time.Since(startedAt).Seconds(),
		})
	})
	app.Get("/api/info", infoHandler)

	otpRoutes.SetupOTPRoutes(app, otpController.NewOTPController(otpService))
	notificationRoutes.SetupNotificationRoutes(app, notificationController.NewNotificationController(mailer))

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}

func infoHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"service": "Restaurant App Backend",
		"version": "1.0.0",
		"features": []string{
			"OTP Email Verification",
			"Rate Limiting",
			"Email Notifications",
		},
		"endpoints": fiber.Map{
			"POST /api/otp/send":                            "Send OTP code",
			"POST /api/otp/verify":                          "Verify OTP code",
			"GET /api/otp/status/:email":                    "Active OTP status",
			"GET /api/otp/stats/:email":                     "OTP statistics",
			"POST /api/otp/cleanup":                         "Clean up expired OTP codes",
			"POST /api/notifications/email/code-redeemed":   "Notify code redeemed",
			"POST /api/notifications/email/code-generated":  "Notify code generated",
			"GET /api/notifications/health":                 "Notification service health",
			"GET /health":                                   "Server health",
		},
	})
}
