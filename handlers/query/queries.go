package query

import (
	"github.com/edupanel/campus-api/handlers"
	"github.com/edupanel/campus-api/model"
	"github.com/edupanel/campus-api/services"
	"github.com/edupanel/campus-api/utils/middleware"
	"github.com/edupanel/campus-api/utils/response"
	"github.com/edupanel/campus-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// QueryHandler handles student query submissions
type QueryHandler struct {
	queries   *services.QueryService
	validator *validation.Validator
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(queries *services.QueryService) *QueryHandler {
	return &QueryHandler{
		queries:   queries,
		validator: validation.NewValidator(),
	}
}

// SubmitQueryRequest is the payload for submitting a query
type SubmitQueryRequest struct {
	StudentID uint   `json:"student_id" validate:"required,min=1"`
	Message   string `json:"message" validate:"required,min=1,max=2000"`
}

// Submit handles POST /queries
func (h *QueryHandler) Submit(c *fiber.Ctx) error {
	var req SubmitQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}

	// A student only submits for themselves; staff may file on behalf
	if role, _ := middleware.GetSubjectRole(c); role == model.RoleStudent {
		if subjectID, ok := middleware.GetSubjectID(c); !ok || subjectID != req.StudentID {
			return response.Forbidden(c, "Students can only submit their own queries")
		}
	}

	q, err := h.queries.Submit(c.Context(), req.StudentID, req.Message)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Created(c, q)
}

// List handles GET /queries
func (h *QueryHandler) List(c *fiber.Ctx) error {
	queries, err := h.queries.List(c.Context())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, queries)
}

// ByStudent handles GET /queries/student/:id
func (h *QueryHandler) ByStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid student id")
	}

	queries, err := h.queries.ListByStudent(c.Context(), uint(id))
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Success(c, queries)
}
