// file: internals/features/school/reconcile/controller/reconcile_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"edupath_backend/internals/features/school/reconcile/dto"
	"edupath_backend/internals/features/school/reconcile/service"
	helper "edupath_backend/internals/helpers"
)

var validate = validator.New()

type ReconcileController struct {
	DB      *gorm.DB
	Service *service.ReconcileService
}

func NewReconcileController(db *gorm.DB) *ReconcileController {
	return &ReconcileController{
		DB:      db,
		Service: service.NewReconcileService(db),
	}
}

// Reconcile runs the full repair pipeline over the requested scope.
// POST /api/a/reconcile
func (ctrl *ReconcileController) Reconcile(c *fiber.Ctx) error {
	var req dto.ReconcileRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	scope, err := req.ToScope()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	report, err := ctrl.Service.Run(c.UserContext(), scope)
	if err != nil {
		var stepErr *service.StepError
		if errors.As(err, &stepErr) {
			// earlier passes stayed committed; surface the partial report
			return helper.ErrorWithDetails(c, fiber.StatusInternalServerError,
				"Reconciliation failed at pass "+stepErr.Pass, report)
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Reconciliation failed")
	}

	return helper.Success(c, "Reconciliation complete", report)
}

// StudentHealth reports one student's consistency counters.
// GET /api/a/progress-health/:student_id
func (ctrl *ReconcileController) StudentHealth(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid student id")
	}

	report, err := ctrl.Service.StudentHealth(c.UserContext(), studentID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to compute health report")
	}
	return helper.Success(c, "Student progress health", report)
}

// Stats reports engine-wide aggregate counters.
// GET /api/a/progress-stats
func (ctrl *ReconcileController) Stats(c *fiber.Ctx) error {
	report, err := ctrl.Service.Stats(c.UserContext())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}
	return helper.Success(c, "Progress stats", report)
}
