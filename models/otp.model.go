package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OTP types supported by the send endpoint.
const (
	OTPTypeLogin        = "login"
	OTPTypeRegistration = "registration"
)

// Fixed OTP policy, matching the mobile client's expectations.
const (
	OTPCodeLength  = 6
	OTPValidity    = 5 * time.Minute
	OTPMaxAttempts = 3
)

// OTP is a single issued one-time passcode. Only the keyed hash of the
// code is stored; the plaintext exists transiently between generation
// and email delivery.
type OTP struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Email       string     `gorm:"size:100;not null;index" json:"email"` // stored lower-cased
	CodeHash    string     `gorm:"size:64;not null" json:"-"`
	Type        string     `gorm:"size:20;not null" json:"type"` // "login" or "registration"
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `gorm:"not null;index" json:"expires_at"`
	IsUsed      bool       `gorm:"default:false" json:"is_used"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
	Attempts    int        `gorm:"default:0" json:"attempts"`
	MaxAttempts int        `gorm:"default:3" json:"max_attempts"`
}

// BeforeCreate assigns an opaque record id.
func (o *OTP) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// IsExpired reports whether the record is past its validity window.
func (o *OTP) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// IsActive reports whether the record can still be verified.
func (o *OTP) IsActive(now time.Time) bool {
	return !o.IsUsed && o.Attempts < o.MaxAttempts && !o.IsExpired(now)
}

// SendOTPRequest is the body of POST /api/otp/send.
type SendOTPRequest struct {
	Email string `json:"email"`
	Type  string `json:"type"`
}

// VerifyOTPRequest is the body of POST /api/otp/verify.
type VerifyOTPRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otpCode"`
	OTPID   string `json:"otpId"`
}

// OTPStatusData is the metadata exposed by the status endpoint. The code
// and its hash are never included.
type OTPStatusData struct {
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"maxAttempts"`
}

// OTPRecordSummary is one entry of the stats endpoint.
type OTPRecordSummary struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	IsUsed    bool      `json:"isUsed"`
	IsExpired bool      `json:"isExpired"`
}

// OTPStats summarizes the most recent records for one email address.
type OTPStats struct {
	Total   int                `json:"total"`
	Used    int                `json:"used"`
	Expired int                `json:"expired"`
	Active  int                `json:"active"`
	Recent  []OTPRecordSummary `json:"recent"`
}
