package otpValidator

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resto/middleware"
	"resto/models"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Helper to validate email format
func isValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// SendOTP validator middleware
func SendOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.SendOTPRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, "Invalid request body")
		}

		if !isValidEmail(reqData.Email) {
			return middleware.ValidationErrorResponse(c, "Invalid email")
		}

		if reqData.Type == "" {
			reqData.Type = models.OTPTypeLogin
		}
		if reqData.Type != models.OTPTypeLogin && reqData.Type != models.OTPTypeRegistration {
			return middleware.ValidationErrorResponse(c, "Invalid OTP type")
		}

		c.Locals("sendOTPRequest", reqData)
		return c.Next()
	}
}

// VerifyOTP validator middleware
func VerifyOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.VerifyOTPRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, "Invalid request body")
		}

		if reqData.Email == "" || reqData.OTPCode == "" || reqData.OTPID == "" {
			return middleware.ValidationErrorResponse(c, "Missing required fields")
		}
		if !isValidEmail(reqData.Email) {
			return middleware.ValidationErrorResponse(c, "Invalid email")
		}

		c.Locals("verifyOTPRequest", reqData)
		return c.Next()
	}
}

// EmailParam validates the :email path parameter of the status and stats
// endpoints.
func EmailParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := url.PathUnescape(c.Params("email"))
		if err != nil || !isValidEmail(email) {
			return middleware.ValidationErrorResponse(c, "Invalid email")
		}
		c.Locals("email", email)
		return c.Next()
	}
}
