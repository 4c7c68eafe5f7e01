package notificationController_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto/config"
	"resto/controllers/notificationController"
	"resto/models"
	notificationRoutes "resto/routers/notificationRoutes"
)

type stubMailer struct {
	generated int
	redeemed  int
	lastReq   *models.CodeNotificationRequest
	fail      bool
}

func (m *stubMailer) SendOTPEmail(to, code, otpType string) error { return nil }

func (m *stubMailer) SendCodeGeneratedEmail(req *models.CodeNotificationRequest) error {
	m.generated++
	m.lastReq = req
	if m.fail {
		return errors.New("smtp unreachable")
	}
	return nil
}

func (m *stubMailer) SendCodeRedeemedEmail(req *models.CodeNotificationRequest) error {
	m.redeemed++
	m.lastReq = req
	if m.fail {
		return errors.New("smtp unreachable")
	}
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *stubMailer) {
	t.Helper()
	config.AppConfig = &config.Config{Env: "test"}

	mailer := &stubMailer{}
	app := fiber.New()
	notificationRoutes.SetupNotificationRoutes(app, notificationController.NewNotificationController(mailer))
	return app, mailer
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

func validNotification() fiber.Map {
	return fiber.Map{
		"email":           "user@example.com",
		"restaurantName":  "La Trattoria",
		"code":            "DESC-1234",
		"discountPercent": 20,
		"people":          4,
	}
}

func TestCodeGenerated(t *testing.T) {
	app, mailer := newTestApp(t)

	resp, body := postJSON(t, app, "/api/notifications/email/code-generated", validNotification())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1, mailer.generated)
	assert.Equal(t, "La Trattoria", mailer.lastReq.RestaurantName)
}

func TestCodeRedeemed(t *testing.T) {
	app, mailer := newTestApp(t)

	req := validNotification()
	req["redeemedAt"] = "2024-06-01T20:15:00Z"
	resp, body := postJSON(t, app, "/api/notifications/email/code-redeemed", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1, mailer.redeemed)
	assert.Equal(t, "2024-06-01T20:15:00Z", mailer.lastReq.RedeemedAt)
}

func TestMissingFieldsRejectedBeforeSend(t *testing.T) {
	app, mailer := newTestApp(t)

	req := validNotification()
	delete(req, "restaurantName")
	resp, body := postJSON(t, app, "/api/notifications/email/code-generated", req)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "Missing required fields")
	assert.Zero(t, mailer.generated)
}

func TestMalformedRequestsDoNotSpendRateLimit(t *testing.T) {
	app, mailer := newTestApp(t)

	incomplete := validNotification()
	delete(incomplete, "code")
	for i := 0; i < 25; i++ {
		resp, _ := postJSON(t, app, "/api/notifications/email/code-generated", incomplete)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	resp, body := postJSON(t, app, "/api/notifications/email/code-generated", validNotification())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1, mailer.generated)
}

func TestMailerFailure(t *testing.T) {
	app, mailer := newTestApp(t)
	mailer.fail = true

	resp, body := postJSON(t, app, "/api/notifications/email/code-redeemed", validNotification())
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to send notification email", body["error"])
}
