// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edupath_backend/internals/constants"
	assessmentRoute "edupath_backend/internals/features/school/assessments/route"
	progressRoute "edupath_backend/internals/features/school/progress/route"
	reconcileRoute "edupath_backend/internals/features/school/reconcile/route"
	authmw "edupath_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up USER group (/api/u)...")
	user := app.Group("/api/u", authmw.AuthMiddleware())
	progressRoute.ProgressUserRoutes(user, db)

	// ===================== ADMIN / TEACHER =====================
	log.Println("[INFO] Setting up ADMIN group (/api/a)...")
	admin := app.Group("/api/a",
		authmw.AuthMiddleware(),
		authmw.RequireRoles(constants.TeacherAndUp...),
	)
	reconcileRoute.ReconcileAdminRoutes(admin, db)
	assessmentRoute.AssessmentAdminRoutes(admin, db)
}
