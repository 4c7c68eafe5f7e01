package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"resto/models"
)

// OTPRepository is the store contract required by the OTP lifecycle.
// Lookups return (nil, nil) when no record matches; every error is a
// store failure the caller surfaces as-is.
type OTPRepository interface {
	Create(otp *models.OTP) (string, error)
	GetByID(id string) (*models.OTP, error)
	// IncrementAttempts atomically bumps the attempt counter and returns
	// the new value.
	IncrementAttempts(id string) (int, error)
	// MarkUsed consumes a record. It is a no-op on an already-consumed
	// record and reports whether this call did the consuming.
	MarkUsed(id string, usedAt time.Time) (bool, error)
	ListExpired(now time.Time) ([]models.OTP, error)
	DeleteByIDs(ids []string) (int64, error)
	// LatestActiveByEmail returns the newest unconsumed, unexpired record
	// for an email address.
	LatestActiveByEmail(email string, now time.Time) (*models.OTP, error)
	ListRecentByEmail(email string, limit int) ([]models.OTP, error)
}

type gormOTPRepository struct {
	db *gorm.DB
}

// NewOTPRepository builds the gorm-backed store adapter.
func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &gormOTPRepository{db: db}
}

func (r *gormOTPRepository) Create(otp *models.OTP) (string, error) {
	if err := r.db.Create(otp).Error; err != nil {
		return "", fmt.Errorf("create otp record: %w", err)
	}
	return otp.ID, nil
}

func (r *gormOTPRepository) GetByID(id string) (*models.OTP, error) {
	var otp models.OTP
	if err := r.db.Where("id = ?", id).First(&otp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get otp record: %w", err)
	}
	return &otp, nil
}

func (r *gormOTPRepository) IncrementAttempts(id string) (int, error) {
	result := r.db.Model(&models.OTP{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1"))
	if result.Error != nil {
		return 0, fmt.Errorf("increment otp attempts: %w", result.Error)
	}

	var otp models.OTP
	if err := r.db.Select("attempts").Where("id = ?", id).First(&otp).Error; err != nil {
		return 0, fmt.Errorf("read otp attempts: %w", err)
	}
	return otp.Attempts, nil
}

func (r *gormOTPRepository) MarkUsed(id string, usedAt time.Time) (bool, error) {
	// Guarded update: only one caller can flip is_used.
	result := r.db.Model(&models.OTP{}).
		Where("id = ? AND is_used = ?", id, false).
		Updates(map[string]interface{}{"is_used": true, "used_at": usedAt})
	if result.Error != nil {
		return false, fmt.Errorf("mark otp used: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormOTPRepository) ListExpired(now time.Time) ([]models.OTP, error) {
	var expired []models.OTP
	if err := r.db.Where("expires_at <= ?", now).Find(&expired).Error; err != nil {
		return nil, fmt.Errorf("list expired otp records: %w", err)
	}
	return expired, nil
}

func (r *gormOTPRepository) DeleteByIDs(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("id IN ?", ids).Delete(&models.OTP{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete otp records: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormOTPRepository) LatestActiveByEmail(email string, now time.Time) (*models.OTP, error) {
	var otp models.OTP
	err := r.db.
		Where("email = ? AND is_used = ? AND expires_at > ?", email, false, now).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get active otp record: %w", err)
	}
	return &otp, nil
}

func (r *gormOTPRepository) ListRecentByEmail(email string, limit int) ([]models.OTP, error) {
	var records []models.OTP
	err := r.db.
		Where("email = ?", email).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list otp records: %w", err)
	}
	return records, nil
}
