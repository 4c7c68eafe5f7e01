package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"resto/models"
	"resto/repository"
	"resto/utils"
)

var (
	ErrNotFound        = errors.New("otp code not found")
	ErrEmailMismatch   = errors.New("email does not match")
	ErrExpired         = errors.New("otp code expired")
	ErrAlreadyUsed     = errors.New("otp code already used")
	ErrTooManyAttempts = errors.New("too many failed attempts")
	ErrDeliveryFailed  = errors.New("otp email delivery failed")
)

// InvalidCodeError is returned on a wrong code and carries the attempt
// budget left on the record so the client can show it to the user.
type InvalidCodeError struct {
	RemainingAttempts int
}

func (e *InvalidCodeError) Error() string {
	return "invalid otp code"
}

// CodeSender delivers a plaintext code to its recipient. Implementations
// must never persist the code.
type CodeSender interface {
	SendOTPEmail(to, code, otpType string) error
}

// OTPService owns the lifecycle of OTP records: creation, verification,
// status queries and the expired-record sweep. It holds no state between
// calls beyond what the repository persists.
type OTPService struct {
	Repo       repository.OTPRepository
	Sender     CodeSender
	HashSecret string
}

func NewOTPService(repo repository.OTPRepository, sender CodeSender, hashSecret string) *OTPService {
	return &OTPService{
		Repo:       repo,
		Sender:     sender,
		HashSecret: hashSecret,
	}
}

// NormalizeEmail is the canonical form under which records are stored and
// compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create issues a new code for the given email and type, persists its
// hash and emails the plaintext. The returned record never contains the
// code. If the email cannot be sent the record is kept for the cleanup
// sweep and the error is still reported to the caller.
func (s *OTPService) Create(email, otpType string) (*models.OTP, error) {
	email = NormalizeEmail(email)

	code, err := utils.GenerateOTP(models.OTPCodeLength)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	otp := &models.OTP{
		Email:       email,
		CodeHash:    utils.HashOTP(code, s.HashSecret),
		Type:        otpType,
		CreatedAt:   now,
		ExpiresAt:   now.Add(models.OTPValidity),
		Attempts:    0,
		MaxAttempts: models.OTPMaxAttempts,
	}

	if _, err := s.Repo.Create(otp); err != nil {
		return nil, err
	}

	if err := s.Sender.SendOTPEmail(email, code, otpType); err != nil {
		// The orphaned record expires on its own and is removed by the
		// sweep; the caller must still learn that nothing was delivered.
		log.Printf("[otp] delivery failed: id=%s email=%s err=%v", otp.ID, email, err)
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	log.Printf("[otp] created: id=%s email=%s type=%s expires_at=%s", otp.ID, email, otpType, otp.ExpiresAt.Format(time.RFC3339))
	return otp, nil
}

// Verify checks a candidate code against the record with the given id.
// A nil return means the code matched and the record is now consumed.
func (s *OTPService) Verify(email, code, otpID string) error {
	email = NormalizeEmail(email)

	otp, err := s.Repo.GetByID(otpID)
	if err != nil {
		return err
	}
	if otp == nil {
		return ErrNotFound
	}
	// A leaked record id must not let one account consume another's code.
	if otp.Email != email {
		return ErrEmailMismatch
	}
	if otp.IsExpired(time.Now()) {
		return ErrExpired
	}
	if otp.IsUsed {
		return ErrAlreadyUsed
	}
	// Once the budget is exhausted the counter stops moving.
	if otp.Attempts >= otp.MaxAttempts {
		return ErrTooManyAttempts
	}

	if !utils.CheckOTPHash(code, s.HashSecret, otp.CodeHash) {
		attempts, incErr := s.Repo.IncrementAttempts(otp.ID)
		if incErr != nil {
			return incErr
		}
		remaining := otp.MaxAttempts - attempts
		if remaining < 0 {
			remaining = 0
		}
		return &InvalidCodeError{RemainingAttempts: remaining}
	}

	consumed, err := s.Repo.MarkUsed(otp.ID, time.Now())
	if err != nil {
		return err
	}
	if !consumed {
		// Lost a race against a concurrent verify.
		return ErrAlreadyUsed
	}

	log.Printf("[otp] verified: id=%s email=%s", otp.ID, email)
	return nil
}

// ActiveByEmail returns the newest unconsumed, unexpired record for an
// email address, or ErrNotFound.
func (s *OTPService) ActiveByEmail(email string) (*models.OTP, error) {
	email = NormalizeEmail(email)

	otp, err := s.Repo.LatestActiveByEmail(email, time.Now())
	if err != nil {
		return nil, err
	}
	if otp == nil {
		return nil, ErrNotFound
	}
	return otp, nil
}

// Stats summarizes the last 10 records for an email address.
func (s *OTPService) Stats(email string) (*models.OTPStats, error) {
	email = NormalizeEmail(email)

	records, err := s.Repo.ListRecentByEmail(email, 10)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := &models.OTPStats{Recent: []models.OTPRecordSummary{}}
	for _, rec := range records {
		stats.Total++
		expired := rec.IsExpired(now)
		switch {
		case rec.IsUsed:
			stats.Used++
		case expired:
			stats.Expired++
		default:
			stats.Active++
		}
		stats.Recent = append(stats.Recent, models.OTPRecordSummary{
			ID:        rec.ID,
			Type:      rec.Type,
			CreatedAt: rec.CreatedAt,
			IsUsed:    rec.IsUsed,
			IsExpired: expired,
		})
	}
	return stats, nil
}

// CleanupExpired removes every record whose validity window has passed,
// consumed or not, and returns how many were deleted. Safe to run
// repeatedly.
func (s *OTPService) CleanupExpired(now time.Time) (int64, error) {
	expired, err := s.Repo.ListExpired(now)
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(expired))
	for _, rec := range expired {
		ids = append(ids, rec.ID)
	}
	deleted, err := s.Repo.DeleteByIDs(ids)
	if err != nil {
		return 0, err
	}

	log.Printf("[otp] cleanup removed %d expired records", deleted)
	return deleted, nil
}
