package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	"edupath_backend/internals/configs"
	"edupath_backend/internals/features/school/progress/service"
)

// StartWindowOpenerScheduler opens assessments whose window start has been
// reached. Interval comes from WINDOW_OPENER_INTERVAL_MINUTES.
func StartWindowOpenerScheduler(db *gorm.DB) {
	go func() {
		for {
			opened, err := service.OpenDueAssessments(db, time.Now())
			if err != nil {
				log.Printf("[OPENER ERROR] failed to open due assessments: %v", err)
			} else if opened > 0 {
				log.Printf("[OPENER] %d assessments opened", opened)
			}
			time.Sleep(configs.WindowOpenerInterval)
		}
	}()
}

// StartGraceExpiryScheduler marks records past their grace deadline as
// incomplete. Interval comes from GRACE_EXPIRY_INTERVAL_MINUTES.
func StartGraceExpiryScheduler(db *gorm.DB) {
	go func() {
		for {
			expired, err := service.ExpirePastGrace(db, time.Now())
			if err != nil {
				log.Printf("[EXPIRY ERROR] failed to expire past-grace records: %v", err)
			} else if expired > 0 {
				log.Printf("[EXPIRY] %d records marked MISSED_GRACE_PERIOD", expired)
			}
			time.Sleep(configs.GraceExpiryInterval)
		}
	}()
}
