package notificationController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"resto/middleware"
	"resto/models"
	"resto/utils"
)

// NotificationController sends the transactional discount-code emails
// triggered by the mobile app.
type NotificationController struct {
	Mailer utils.Mailer
}

func NewNotificationController(mailer utils.Mailer) *NotificationController {
	return &NotificationController{Mailer: mailer}
}

// CodeRedeemed handles POST /api/notifications/email/code-redeemed.
func (ctrl *NotificationController) CodeRedeemed(c *fiber.Ctx) error {
	reqData := c.Locals("codeNotificationRequest").(*models.CodeNotificationRequest)

	log.Printf("[notification] code redeemed: email=%s restaurant=%s code=%s",
		reqData.Email, reqData.RestaurantName, reqData.Code)

	if err := ctrl.Mailer.SendCodeRedeemedEmail(reqData); err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to send notification email", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Notification email sent successfully",
	})
}

// CodeGenerated handles POST /api/notifications/email/code-generated.
func (ctrl *NotificationController) CodeGenerated(c *fiber.Ctx) error {
	reqData := c.Locals("codeNotificationRequest").(*models.CodeNotificationRequest)

	log.Printf("[notification] code generated: email=%s restaurant=%s code=%s",
		reqData.Email, reqData.RestaurantName, reqData.Code)

	if err := ctrl.Mailer.SendCodeGeneratedEmail(reqData); err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to send notification email", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Notification email sent successfully",
	})
}

// Health handles GET /api/notifications/health.
func (ctrl *NotificationController) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Notification service running",
		"timestamp": time.Now().UTC(),
	})
}
