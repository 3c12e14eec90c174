// file: internals/features/school/reconcile/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edupath_backend/internals/features/school/reconcile/controller"
	"edupath_backend/internals/middlewares"
)

// ReconcileAdminRoutes mounts the repair pipeline and the read-only health
// endpoints on the admin group. The pipeline gets its own tight rate limit.
func ReconcileAdminRoutes(group fiber.Router, db *gorm.DB) {
	ctl := controller.NewReconcileController(db)

	group.Post("/reconcile", middlewares.ReconcileRateLimiter(), ctl.Reconcile)
	group.Get("/progress-health/:student_id", ctl.StudentHealth)
	group.Get("/progress-stats", ctl.Stats)
}
