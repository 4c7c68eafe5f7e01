package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// ExpiredSweeper is the part of the OTP service the scheduler needs.
type ExpiredSweeper interface {
	CleanupExpired(now time.Time) (int64, error)
}

// InitializeCleanupScheduler runs the expired-OTP sweep every hour.
// Expiry itself is enforced lazily at verify time; the sweep only keeps
// the table from growing.
func InitializeCleanupScheduler(sweeper ExpiredSweeper) *cron.Cron {
	c := cron.New()

	c.AddFunc("@hourly", func() {
		if _, err := sweeper.CleanupExpired(time.Now()); err != nil {
			log.Printf("[cleanup-scheduler] sweep failed: %v", err)
		}
	})

	c.Start()
	log.Println("[cleanup-scheduler] started - expired OTP sweep runs hourly")
	return c
}
