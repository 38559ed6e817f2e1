package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	registrationService "eventhub_backend/internals/features/registrations/service"
)

// StartAutoAbsentScheduler periodically marks no-show registrations of
// finished events as absent. The read path does the same sweep lazily for
// events organizers open; this loop catches the rest.
func StartAutoAbsentScheduler(db *gorm.DB) {
	go func() {
		intervalHours := 1
		if val := os.Getenv("AUTO_ABSENT_INTERVAL_HOURS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalHours = parsed
			}
		}

		for {
			n, err := registrationService.SweepAllExpired(db, time.Now())
			if err != nil {
				log.Printf("[CLEANUP ERROR] Auto-absent sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("[CLEANUP] Marked %d registrations absent", n)
			}

			time.Sleep(time.Duration(intervalHours) * time.Hour)
		}
	}()
}
