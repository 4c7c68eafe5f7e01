package otpRoutes

import (
	"resto/controllers/otpController"
	"resto/middleware"
	otpValidators "resto/validators/otp"

	"github.com/gofiber/fiber/v2"
)

func SetupOTPRoutes(app *fiber.App, ctrl *otpController.OTPController) {
	otpGroup := app.Group("/api/otp")

	// Validators run first so malformed requests only spend the general
	// budget, not the per-route one.
	otpGroup.Post("/send", otpValidators.SendOTP(), middleware.SendOTPRateLimiter(), ctrl.Send)
	otpGroup.Post("/verify", otpValidators.VerifyOTP(), middleware.VerifyOTPRateLimiter(), ctrl.Verify)
	otpGroup.Get("/status/:email", otpValidators.EmailParam(), ctrl.Status)
	otpGroup.Get("/stats/:email", otpValidators.EmailParam(), ctrl.Stats)
	otpGroup.Post("/cleanup", ctrl.Cleanup)
}
