// file: internals/features/school/progress/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edupath_backend/internals/features/school/progress/controller"
)

// ProgressUserRoutes mounts the student-facing progress endpoints on the
// authenticated group.
func ProgressUserRoutes(group fiber.Router, db *gorm.DB) {
	ctl := controller.NewProgressController(db)

	progress := group.Group("/progress")
	progress.Get("/", ctl.ListMine)
	progress.Get("/:id/access", ctl.CheckAccess)
}
