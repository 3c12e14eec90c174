// file: internals/features/school/assessments/controller/assessment_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edupath_backend/internals/features/school/assessments/dto"
	"edupath_backend/internals/features/school/assessments/service"
	helper "edupath_backend/internals/helpers"
	authmw "edupath_backend/internals/middlewares/auth"
)

var validate = validator.New()

type AssessmentController struct {
	DB      *gorm.DB
	Service *service.AssessmentService
}

func NewAssessmentController(db *gorm.DB) *AssessmentController {
	return &AssessmentController{
		DB:      db,
		Service: service.NewAssessmentService(db),
	}
}

// CreateCustom creates a teacher-authored assessment for a later-period
// record that is waiting for one, and attaches it in the same transaction.
// POST /api/a/custom-assessments
func (ctrl *AssessmentController) CreateCustom(c *fiber.Ctx) error {
	var req dto.CreateCustomAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	creatorID, err := authmw.UserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	assessment, err := ctrl.Service.CreateCustomAssessment(c.UserContext(), service.CreateCustomAssessmentInput{
		ProgressID: req.ProgressID,
		Title:      req.Title,
		TotalMarks: req.TotalMarks,
		CreatedBy:  creatorID,
	})
	switch {
	case errors.Is(err, service.ErrProgressNotFound):
		return helper.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotAwaitingCustom):
		return helper.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrDuplicateCustom):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	case err != nil:
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create custom assessment")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Custom assessment created", dto.FromAssessmentModel(assessment))
}
