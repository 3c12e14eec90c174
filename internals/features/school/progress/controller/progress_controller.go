// file: internals/features/school/progress/controller/progress_controller.go
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"edupath_backend/internals/constants"
	d "edupath_backend/internals/features/school/progress/dto"
	m "edupath_backend/internals/features/school/progress/model"
	s "edupath_backend/internals/features/school/progress/service"
	helper "edupath_backend/internals/helpers"
	authmw "edupath_backend/internals/middlewares/auth"
)

/* =========================
   Controller & Constructor
   ========================= */

type ProgressController struct {
	DB         *gorm.DB
	Dependency *s.PeriodDependencyService
}

func NewProgressController(db *gorm.DB) *ProgressController {
	return &ProgressController{
		DB:         db,
		Dependency: s.NewPeriodDependencyService(db),
	}
}

func parseDateParam(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	return time.Parse("2006-01-02", v)
}

/* =========================
   GET /api/u/progress/:id/access
   ========================= */

func (ctl *ProgressController) CheckAccess(c *fiber.Ctx) error {
	progressID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "progress id invalid")
	}

	requesterID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	var progress m.LessonProgressModel
	if err := ctl.DB.First(&progress, "lesson_progress_id = ?", progressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(http.StatusNotFound, fmt.Sprintf("progress %s not found", progressID))
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to load progress")
	}

	// Students may only check their own records. Never redirect, always deny.
	role := authmw.Role(c)
	if role == constants.RoleStudent && progress.LessonProgressStudentID != requesterID {
		return fiber.NewError(http.StatusForbidden, "progress record belongs to another student")
	}

	verdict, err := ctl.Dependency.CheckAccess(&progress)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "access check failed")
	}

	resp := d.AccessCheckResponse{
		ProgressID:               progress.LessonProgressID,
		CanAccess:                verdict.CanAccess,
		StatusCode:               verdict.StatusCode,
		PeriodNumber:             progress.LessonProgressPeriodNumber,
		PeriodSequence:           progress.LessonProgressPeriodSequence,
		TotalPeriods:             progress.LessonProgressTotalPeriods,
		HasPreviousPeriod:        progress.HasPreviousPeriod(),
		BlockingProgressID:       verdict.BlockingProgressID,
		RequiresCustomAssessment: progress.LessonProgressRequiresCustomAssessment,
		AssessmentCreated:        progress.LessonProgressAssessmentID != nil,
		AssessmentWindowStart:    progress.LessonProgressWindowStart,
		AssessmentWindowEnd:      progress.LessonProgressWindowEnd,
		GracePeriodEnd:           progress.LessonProgressGracePeriodEnd,
		WindowStatus:             string(verdict.WindowStatus),
		MinutesUntilOpen:         verdict.MinutesUntilOpen,
		MinutesRemaining:         verdict.MinutesRemaining,
		GracePeriodActive:        verdict.GracePeriodActive,
		Completed:                progress.LessonProgressCompleted,
		CompletedAt:              progress.LessonProgressCompletedAt,
		CurrentTime:              time.Now(),
	}
	if verdict.Reason != "" {
		resp.Reason = &verdict.Reason
	}
	resp.PreviousPeriodCompleted = verdict.PreviousPeriodCompleted

	return helper.Success(c, "Access check computed", resp)
}

/* =========================
   GET /api/u/progress
   ========================= */

type listProgressQuery struct {
	From   string `query:"from"` // YYYY-MM-DD
	To     string `query:"to"`   // YYYY-MM-DD
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

func (ctl *ProgressController) ListMine(c *fiber.Ctx) error {
	var q listProgressQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	requesterID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	db := ctl.DB.Model(&m.LessonProgressModel{}).
		Where("lesson_progress_student_id = ?", requesterID)

	if strings.TrimSpace(q.From) != "" {
		dt, err := parseDateParam(q.From)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "from invalid (YYYY-MM-DD)")
		}
		db = db.Where("lesson_progress_date >= ?", dt)
	}
	if strings.TrimSpace(q.To) != "" {
		dt, err := parseDateParam(q.To)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "to invalid (YYYY-MM-DD)")
		}
		db = db.Where("lesson_progress_date <= ?", dt)
	}

	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	var rows []m.LessonProgressModel
	if err := db.
		Order("lesson_progress_date ASC, lesson_progress_period_number ASC").
		Limit(q.Limit).Offset(q.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(http.StatusInternalServerError, "failed to list progress")
	}

	items := make([]d.ProgressItemResponse, 0, len(rows))
	for i := range rows {
		items = append(items, d.FromProgressModel(&rows[i]))
	}
	return helper.Success(c, "Progress list", items)
}
