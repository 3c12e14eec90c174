// file: internals/seeds/runner.go
package seeds

import (
	"log"

	"gorm.io/gorm"

	school "edupath_backend/internals/seeds/school"
)

// RunAllSeeds loads dev fixtures. Guarded behind SEED_DEV_DATA in main,
// never runs in production.
func RunAllSeeds(db *gorm.DB) {
	log.Println("[SEED] loading dev fixtures...")

	if err := school.SeedDemoWeek(db); err != nil {
		log.Printf("[SEED][ERROR] demo week: %v", err)
		return
	}

	log.Println("[SEED] done")
}
