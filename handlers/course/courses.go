package course

import (
	"github.com/edupanel/campus-api/handlers"
	"github.com/edupanel/campus-api/model"
	"github.com/edupanel/campus-api/services"
	"github.com/edupanel/campus-api/utils/response"
	"github.com/edupanel/campus-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// CourseHandler handles course catalog requests
type CourseHandler struct {
	catalog   *services.CatalogService
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(catalog *services.CatalogService) *CourseHandler {
	return &CourseHandler{
		catalog:   catalog,
		validator: validation.NewValidator(),
	}
}

// CreateCourseRequest is the payload for creating a course
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"required,max=1000"`
}

// CreateCourse handles POST /courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}

	course, err := h.catalog.CreateCourse(c.Context(), req.Title, req.Description)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Created(c, course.ToResponse())
}

// GetCourse handles GET /courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	course, err := h.catalog.GetCourse(c.Context(), uint(id))
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Success(c, course.ToResponse())
}

// ListCourses handles GET /courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.catalog.ListCourses(c.Context())
	if err != nil {
		return handlers.RespondError(c, err)
	}

	responses := make([]model.CourseResponse, 0, len(courses))
	for i := range courses {
		responses = append(responses, courses[i].ToResponse())
	}
	return response.Success(c, responses)
}

// UpdateCourseRequest is a partial course update
type UpdateCourseRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// UpdateCourse handles PUT /courses/:id
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}

	course, err := h.catalog.UpdateCourse(c.Context(), uint(id), services.UpdateCourseInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.SuccessWithMessage(c, "Course updated successfully", course.ToResponse())
}

// DeleteCourse handles DELETE /courses/:id
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	if err := h.catalog.DeleteCourse(c.Context(), uint(id)); err != nil {
		return handlers.RespondError(c, err)
	}

	return response.SuccessWithMessage(c, "Course deleted successfully", nil)
}
