package notificationRoutes

import (
	"resto/controllers/notificationController"
	"resto/middleware"
	notificationValidators "resto/validators/notification"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App, ctrl *notificationController.NotificationController) {
	notificationGroup := app.Group("/api/notifications")

	// Validators run first so malformed requests only spend the general
	// budget, not the per-route one.
	notificationGroup.Post("/email/code-redeemed", notificationValidators.CodeNotification(), middleware.NotificationRateLimiter(), ctrl.CodeRedeemed)
	notificationGroup.Post("/email/code-generated", notificationValidators.CodeNotification(), middleware.NotificationRateLimiter(), ctrl.CodeGenerated)
	notificationGroup.Get("/health", ctrl.Health)
}
