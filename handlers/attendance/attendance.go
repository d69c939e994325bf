package attendance

import (
	"time"

	"github.com/edupanel/campus-api/handlers"
	"github.com/edupanel/campus-api/model"
	"github.com/edupanel/campus-api/services"
	"github.com/edupanel/campus-api/utils/middleware"
	"github.com/edupanel/campus-api/utils/response"
	"github.com/edupanel/campus-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// AttendanceHandler handles attendance ledger requests
type AttendanceHandler struct {
	attendance *services.AttendanceService
	validator  *validation.Validator
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendance *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		attendance: attendance,
		validator:  validation.NewValidator(),
	}
}

// SubmitBatchRequest is the payload for batch attendance. Attendance maps
// student id to status; members absent from the map are recorded Absent.
type SubmitBatchRequest struct {
	BatchID    uint                            `json:"batch_id" validate:"required,min=1"`
	Date       string                          `json:"date" validate:"required"`
	Attendance map[uint]model.AttendanceStatus `json:"attendance"`
}

// SubmitBatch handles POST /attendance/batch
func (h *AttendanceHandler) SubmitBatch(c *fiber.Ctx) error {
	var req SubmitBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
	}

	records, err := h.attendance.SubmitBatchAttendance(c.Context(), req.BatchID, date, req.Attendance)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Created(c, records)
}

// MarkActorRequest is the payload for self-marked attendance
type MarkActorRequest struct {
	Status model.AttendanceStatus `json:"status" validate:"required,oneof=Present Absent"`
}

// MarkActor handles POST /attendance/actor. The actor is always the
// authenticated subject; the body only names the status.
func (h *AttendanceHandler) MarkActor(c *fiber.Ctx) error {
	var req MarkActorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}

	subjectID, ok := middleware.GetSubjectID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}
	role, _ := middleware.GetSubjectRole(c)

	var actorType model.ActorType
	switch role {
	case model.RoleStudent:
		actorType = model.ActorTypeStudent
	case model.RoleAdmin:
		actorType = model.ActorTypeAdmin
	default:
		return response.Forbidden(c, "Only students and admins record attendance")
	}

	record, err := h.attendance.MarkActorAttendance(c.Context(), subjectID, actorType, req.Status)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Created(c, record)
}

// ByStudent handles GET /attendance/student/:id
func (h *AttendanceHandler) ByStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid student id")
	}

	records, err := h.attendance.ListByStudent(c.Context(), uint(id))
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Success(c, records)
}

// ByBatch handles GET /attendance/batch/:id
func (h *AttendanceHandler) ByBatch(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid batch id")
	}

	records, err := h.attendance.ListByBatch(c.Context(), uint(id))
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Success(c, records)
}

// ByStudents handles GET /attendance/students
func (h *AttendanceHandler) ByStudents(c *fiber.Ctx) error {
	records, err := h.attendance.ListByActorType(c.Context(), model.ActorTypeStudent)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, records)
}

// ByAdmins handles GET /attendance/admins
func (h *AttendanceHandler) ByAdmins(c *fiber.Ctx) error {
	records, err := h.attendance.ListByActorType(c.Context(), model.ActorTypeAdmin)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, records)
}
