// file: internals/features/school/assessments/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edupath_backend/internals/features/school/assessments/controller"
)

// AssessmentAdminRoutes mounts the teacher/admin assessment endpoints.
func AssessmentAdminRoutes(group fiber.Router, db *gorm.DB) {
	ctl := controller.NewAssessmentController(db)

	group.Post("/custom-assessments", ctl.CreateCustom)
}
