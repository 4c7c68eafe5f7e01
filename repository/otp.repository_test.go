package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resto/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// In-memory sqlite is per-connection; keep the pool at one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.OTP{}))
	return db
}

func newRecord(email string, expiresAt time.Time) *models.OTP {
	return &models.OTP{
		Email:       email,
		CodeHash:    "digest",
		Type:        models.OTPTypeLogin,
		CreatedAt:   time.Now(),
		ExpiresAt:   expiresAt,
		MaxAttempts: models.OTPMaxAttempts,
	}
}

func TestCreateAssignsOpaqueID(t *testing.T) {
	repo := NewOTPRepository(newTestDB(t))

	id, err := repo.Create(newRecord("a@x.com", time.Now().Add(5*time.Minute)))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	otp, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, otp)
	assert.Equal(t, "a@x.com", otp.Email)
	assert.False(t, otp.IsUsed)
	assert.Zero(t, otp.Attempts)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewOTPRepository(newTestDB(t))

	otp, err := repo.GetByID("missing")
	require.NoError(t, err)
	assert.Nil(t, otp)
}

func TestIncrementAttempts(t *testing.T) {
	repo := NewOTPRepository(newTestDB(t))
	id, err := repo.Create(newRecord("a@x.com", time.Now().Add(5*time.Minute)))
	require.NoError(t, err)

	attempts, err := repo.IncrementAttempts(id)
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)

	attempts, err = repo.IncrementAttempts(id)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestMarkUsedIsSingleShot(t *testing.T) {
	repo := NewOTPRepository(newTestDB(t))
	id, err := repo.Create(newRecord("a@x.com", time.Now().Add(5*time.Minute)))
	require.NoError(t, err)

	usedAt := time.Now()
	consumed, err := repo.MarkUsed(id, usedAt)
	require.NoError(t, err)
	assert.True(t, consumed)

	// Second call is a no-op, not an error.
	consumed, err = repo.MarkUsed(id, usedAt.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, consumed)

	otp, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, otp)
	assert.True(t, otp.IsUsed)
	require.NotNil(t, otp.UsedAt)
}

func TestListExpiredAndDelete(t *testing.T) {
	repo := NewOTPRepository(newTestDB(t))
	now := time.Now()

	expiredID, err := repo.Create(newRecord("a@x.com", now.Add(-time.Minute)))
	require.NoError(t, err)
	liveID, err := repo.Create(newRecord("b@x.com", now.Add(5*time.Minute)))
	require.NoError(t, err)

	expired, err := repo.ListExpired(now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, expiredID, expired[0].ID)

	deleted, err := repo.DeleteByIDs([]string{expiredID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// The live record is untouched.
	otp, err := repo.GetByID(liveID)
	require.NoError(t, err)
	assert.NotNil(t, otp)

	deleted, err = repo.DeleteByIDs(nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestLatestActiveByEmail(t *testing.T) {
	repo := NewOTPRepository(newTestDB(t))
	now := time.Now()

	// Oldest active, a consumed one, an expired one, then the newest active.
	older := newRecord("a@x.com", now.Add(5*time.Minute))
	older.CreatedAt = now.Add(-3 * time.Minute)
	_, err := repo.Create(older)
	require.NoError(t, err)

	used := newRecord("a@x.com", now.Add(5*time.Minute))
	used.CreatedAt = now.Add(-2 * time.Minute)
	usedID, err := repo.Create(used)
	require.NoError(t, err)
	_, err = repo.MarkUsed(usedID, now)
	require.NoError(t, err)

	expired := newRecord("a@x.com", now.Add(-time.Minute))
	expired.CreatedAt = now.Add(-time.Minute)
	_, err = repo.Create(expired)
	require.NoError(t, err)

	newest := newRecord("a@x.com", now.Add(5*time.Minute))
	newest.CreatedAt = now
	newestID, err := repo.Create(newest)
	require.NoError(t, err)

	otp, err := repo.LatestActiveByEmail("a@x.com", now)
	require.NoError(t, err)
	require.NotNil(t, otp)
	assert.Equal(t, newestID, otp.ID)

	otp, err = repo.LatestActiveByEmail("nobody@x.com", now)
	require.NoError(t, err)
	assert.Nil(t, otp)
}

func TestListRecentByEmail(t *testing.T) {
	repo := NewOTPRepository(newTestDB(t))
	now := time.Now()

	for i := 0; i < 12; i++ {
		rec := newRecord("a@x.com", now.Add(5*time.Minute))
		rec.CreatedAt = now.Add(time.Duration(i) * time.Second)
		_, err := repo.Create(rec)
		require.NoError(t, err)
	}
	_, err := repo.Create(newRecord("b@x.com", now.Add(5*time.Minute)))
	require.NoError(t, err)

	records, err := repo.ListRecentByEmail("a@x.com", 10)
	require.NoError(t, err)
	require.Len(t, records, 10)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i-1].CreatedAt.Before(records[i].CreatedAt), "records must be newest first")
	}
}
