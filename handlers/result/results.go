package result

import (
	"github.com/edupanel/campus-api/handlers"
	"github.com/edupanel/campus-api/model"
	"github.com/edupanel/campus-api/services"
	"github.com/edupanel/campus-api/utils/response"
	"github.com/edupanel/campus-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// ResultHandler handles exam result requests
type ResultHandler struct {
	results   *services.ResultService
	validator *validation.Validator
}

// NewResultHandler creates a new result handler
func NewResultHandler(results *services.ResultService) *ResultHandler {
	return &ResultHandler{
		results:   results,
		validator: validation.NewValidator(),
	}
}

// PostResultRequest is the payload for recording an exam outcome
type PostResultRequest struct {
	StudentID     uint               `json:"student_id" validate:"required,min=1"`
	MarksObtained int                `json:"marks_obtained" validate:"min=0"`
	TotalMarks    int                `json:"total_marks" validate:"required,min=1"`
	Grade         string             `json:"grade" validate:"required"`
	Status        model.ResultStatus `json:"status" validate:"required,oneof=Pass Fail"`
	Comments      string             `json:"comments"`
}

// PostResult handles POST /results
func (h *ResultHandler) PostResult(c *fiber.Ctx) error {
	var req PostResultRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}
	if req.MarksObtained > req.TotalMarks {
		return response.BadRequest(c, "Marks obtained cannot exceed total marks")
	}

	result, err := h.results.PostResult(c.Context(), services.PostResultInput{
		StudentID:     req.StudentID,
		MarksObtained: req.MarksObtained,
		TotalMarks:    req.TotalMarks,
		Grade:         req.Grade,
		Status:        req.Status,
		Comments:      req.Comments,
	})
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Created(c, result)
}

// ByStudent handles GET /results/student/:id
func (h *ResultHandler) ByStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid student id")
	}

	results, err := h.results.ListByStudent(c.Context(), uint(id))
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Success(c, results)
}
