package otpController

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"resto/middleware"
	"resto/models"
	"resto/services"
)

// OTPController maps OTP lifecycle outcomes onto the HTTP surface.
type OTPController struct {
	Service *services.OTPService
}

func NewOTPController(service *services.OTPService) *OTPController {
	return &OTPController{Service: service}
}

// Send handles POST /api/otp/send.
func (ctrl *OTPController) Send(c *fiber.Ctx) error {
	reqData := c.Locals("sendOTPRequest").(*models.SendOTPRequest)

	otp, err := ctrl.Service.Create(reqData.Email, reqData.Type)
	if err != nil {
		if errors.Is(err, services.ErrDeliveryFailed) {
			return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to send OTP email", err)
		}
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to create OTP", err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "OTP code sent successfully",
		"otpId":     otp.ID,
		"expiresAt": otp.ExpiresAt,
		// Never the code itself.
	})
}

// Verify handles POST /api/otp/verify.
func (ctrl *OTPController) Verify(c *fiber.Ctx) error {
	reqData := c.Locals("verifyOTPRequest").(*models.VerifyOTPRequest)

	err := ctrl.Service.Verify(reqData.Email, reqData.OTPCode, reqData.OTPID)
	if err == nil {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "OTP code verified successfully",
		})
	}

	var invalidCode *services.InvalidCodeError
	if errors.As(err, &invalidCode) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":           false,
			"error":             "Incorrect OTP code",
			"remainingAttempts": invalidCode.RemainingAttempts,
		})
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		return middleware.JsonError(c, fiber.StatusBadRequest, "OTP code not found", nil)
	case errors.Is(err, services.ErrEmailMismatch):
		return middleware.JsonError(c, fiber.StatusBadRequest, "Email does not match", nil)
	case errors.Is(err, services.ErrExpired):
		return middleware.JsonError(c, fiber.StatusBadRequest, "OTP code expired", nil)
	case errors.Is(err, services.ErrAlreadyUsed):
		return middleware.JsonError(c, fiber.StatusBadRequest, "OTP code already used", nil)
	case errors.Is(err, services.ErrTooManyAttempts):
		return middleware.JsonError(c, fiber.StatusBadRequest, "Too many failed attempts", nil)
	default:
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Internal server error", err)
	}
}

// Status handles GET /api/otp/status/:email.
func (ctrl *OTPController) Status(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	otp, err := ctrl.Service.ActiveByEmail(email)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonError(c, fiber.StatusNotFound, "No active OTP code", nil)
		}
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Internal server error", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"otpId":   otp.ID,
		"otpData": models.OTPStatusData{
			Type:        otp.Type,
			CreatedAt:   otp.CreatedAt,
			ExpiresAt:   otp.ExpiresAt,
			Attempts:    otp.Attempts,
			MaxAttempts: otp.MaxAttempts,
		},
	})
}

// Stats handles GET /api/otp/stats/:email.
func (ctrl *OTPController) Stats(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	stats, err := ctrl.Service.Stats(email)
	if err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Internal server error", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}

// Cleanup handles POST /api/otp/cleanup.
func (ctrl *OTPController) Cleanup(c *fiber.Ctx) error {
	removed, err := ctrl.Service.CleanupExpired(time.Now())
	if err != nil {
		return middleware.JsonError(c, fiber.StatusInternalServerError, "Failed to clean up expired OTP codes", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Cleaned up %d expired OTP codes", removed),
	})
}
