package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"resto/config"
	"resto/models"
)

// Mailer sends the transactional emails of the app: OTP codes and
// discount-code notifications.
type Mailer interface {
	SendOTPEmail(to, code, otpType string) error
	SendCodeGeneratedEmail(req *models.CodeNotificationRequest) error
	SendCodeRedeemedEmail(req *models.CodeNotificationRequest) error
}

// NewMailerFromConfig selects the provider configured in the environment.
func NewMailerFromConfig() Mailer {
	if config.AppConfig.EmailProvider == "sendgrid" {
		return &SendGridMailer{
			ApiKey: config.AppConfig.SendGridApiKey,
			From:   config.AppConfig.GmailUser,
		}
	}
	return &SMTPMailer{
		Host:     "smtp.gmail.com",
		Port:     "587",
		From:     config.AppConfig.GmailUser,
		Password: config.AppConfig.GmailPass,
	}
}

// SMTPMailer delivers through Gmail SMTP with an app password.
type SMTPMailer struct {
	Host     string
	Port     string
	From     string
	Password string
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Restaurant App <%s>\r\n", m.From)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	if err := smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, []byte(msg)); err != nil {
		log.Printf("[email] smtp send failed: to=%s subject=%q err=%v", to, subject, err)
		return err
	}
	return nil
}

func (m *SMTPMailer) SendOTPEmail(to, code, otpType string) error {
	subject, html := otpEmailContent(code, otpType)
	return m.send(to, subject, html)
}

func (m *SMTPMailer) SendCodeGeneratedEmail(req *models.CodeNotificationRequest) error {
	subject, html := codeGeneratedContent(req)
	return m.send(req.Email, subject, html)
}

func (m *SMTPMailer) SendCodeRedeemedEmail(req *models.CodeNotificationRequest) error {
	subject, html := codeRedeemedContent(req)
	return m.send(req.Email, subject, html)
}

// SendGridMailer delivers through the SendGrid v3 API.
type SendGridMailer struct {
	ApiKey string
	From   string
}

func (m *SendGridMailer) send(to, subject, htmlBody string) error {
	from := sgmail.NewEmail("Restaurant App", m.From)
	message := sgmail.NewSingleEmail(from, subject, sgmail.NewEmail("", to), "", htmlBody)
	client := sendgrid.NewSendClient(m.ApiKey)

	resp, err := client.Send(message)
	if err != nil {
		log.Printf("[email] sendgrid send failed: to=%s subject=%q err=%v", to, subject, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("[email] sendgrid rejected: to=%s status=%d body=%s", to, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

func (m *SendGridMailer) SendOTPEmail(to, code, otpType string) error {
	subject, html := otpEmailContent(code, otpType)
	return m.send(to, subject, html)
}

func (m *SendGridMailer) SendCodeGeneratedEmail(req *models.CodeNotificationRequest) error {
	subject, html := codeGeneratedContent(req)
	return m.send(req.Email, subject, html)
}

func (m *SendGridMailer) SendCodeRedeemedEmail(req *models.CodeNotificationRequest) error {
	subject, html := codeRedeemedContent(req)
	return m.send(req.Email, subject, html)
}

// getEmailTemplate wraps body content in the app's shared layout.
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 10px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 26px; }
			.content { padding: 35px 30px; color: #333333; line-height: 1.6; }
			.code-box { background: #FFFFFF; border: 2px solid #667eea; border-radius: 8px; text-align: center; padding: 20px; margin: 20px 0; }
			.code-box h2 { color: #667eea; font-size: 32px; letter-spacing: 5px; margin: 0; font-family: 'Courier New', monospace; }
			.detail-row { display: flex; justify-content: space-between; margin-bottom: 12px; padding: 10px; background: #f8f9fa; border-radius: 5px; }
			.info-box { background: #fff3cd; padding: 15px; border-radius: 8px; border-left: 4px solid #ffc107; margin: 20px 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				%s
			</div>
			<div class="footer">
				This is an automated message, please do not reply.<br>
				&copy; 2024 Restaurant App. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

func otpEmailContent(code, otpType string) (string, string) {
	subject := "Verification code - Sign in"
	title := "Security Verification"
	intro := "You requested to sign in to your account. Enter the following verification code to continue:"
	if otpType == models.OTPTypeRegistration {
		subject = "Verify your account - OTP code"
		title = "Welcome!"
		intro = "Thanks for signing up for our restaurant app. To complete your registration, please verify your email with the following code:"
	}

	body := fmt.Sprintf(`
		<p>%s</p>
		<div class="code-box">
			<h2>%s</h2>
		</div>
		<p><strong>This code expires in 5 minutes.</strong></p>
		<p>If you did not request this code, please ignore this email.</p>
	`, intro, code)

	return subject, getEmailTemplate(title, body)
}

func codeGeneratedContent(req *models.CodeNotificationRequest) (string, string) {
	body := fmt.Sprintf(`
		<p>Your discount code is ready to use.</p>
		%s
		<div class="info-box">
			Remember to show this code to the restaurant staff to get your discount.
		</div>
	`, codeDetailRows(req, time.Now().Format("Jan 2, 2006 15:04")))

	return "New discount code generated!", getEmailTemplate("New Code Generated!", body)
}

func codeRedeemedContent(req *models.CodeNotificationRequest) (string, string) {
	redeemedAt := req.RedeemedAt
	if redeemedAt == "" {
		redeemedAt = time.Now().Format("Jan 2, 2006 15:04")
	}
	body := fmt.Sprintf(`
		<p>Your discount was applied successfully.</p>
		%s
		<div class="info-box" style="background: #e8f5e8; border-left-color: #28a745;">
			Thank you for using our app! We hope you enjoyed your experience.
		</div>
	`, codeDetailRows(req, redeemedAt))

	return "Code redeemed successfully!", getEmailTemplate("Code Redeemed!", body)
}

func codeDetailRows(req *models.CodeNotificationRequest, when string) string {
	rows := []string{
		fmt.Sprintf(`<div class="detail-row"><strong>Restaurant:</strong><span>%s</span></div>`, req.RestaurantName),
		fmt.Sprintf(`<div class="detail-row"><strong>Code:</strong><span style="color: #007bff; font-weight: bold;">%s</span></div>`, req.Code),
		fmt.Sprintf(`<div class="detail-row"><strong>Discount:</strong><span style="color: #28a745; font-weight: bold;">%d%%</span></div>`, req.DiscountPercent),
		fmt.Sprintf(`<div class="detail-row"><strong>People:</strong><span>%d</span></div>`, req.People),
		fmt.Sprintf(`<div class="detail-row"><strong>Date:</strong><span>%s</span></div>`, when),
	}
	return strings.Join(rows, "\n")
}
