package notificationValidator

import (
	"regexp"

	"github.com/gofiber/fiber/v2"

	"resto/middleware"
	"resto/models"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CodeNotification validator middleware for the discount-code email
// endpoints.
func CodeNotification() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.CodeNotificationRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, "Invalid request body")
		}

		if reqData.Email == "" || reqData.RestaurantName == "" || reqData.Code == "" ||
			reqData.DiscountPercent == 0 || reqData.People == 0 {
			return middleware.ValidationErrorResponse(c, "Missing required fields: email, restaurantName, code, discountPercent, people")
		}
		if !emailRegex.MatchString(reqData.Email) {
			return middleware.ValidationErrorResponse(c, "Invalid email format")
		}

		c.Locals("codeNotificationRequest", reqData)
		return c.Next()
	}
}
