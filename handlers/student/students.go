package student

import (
	"github.com/edupanel/campus-api/handlers"
	"github.com/edupanel/campus-api/model"
	"github.com/edupanel/campus-api/services"
	"github.com/edupanel/campus-api/utils/middleware"
	"github.com/edupanel/campus-api/utils/response"
	"github.com/edupanel/campus-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// StudentHandler handles student profile and enrollment requests
type StudentHandler struct {
	accounts  *services.AccountService
	catalog   *services.CatalogService
	validator *validation.Validator
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(accounts *services.AccountService, catalog *services.CatalogService) *StudentHandler {
	return &StudentHandler{
		accounts:  accounts,
		catalog:   catalog,
		validator: validation.NewValidator(),
	}
}

// GetStudent handles GET /students/:id
func (h *StudentHandler) GetStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid student id")
	}

	student, err := h.accounts.GetStudent(c.Context(), uint(id))
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Success(c, student.ToResponse())
}

// ListStudents handles GET /students
func (h *StudentHandler) ListStudents(c *fiber.Ctx) error {
	students, err := h.accounts.ListStudents(c.Context())
	if err != nil {
		return handlers.RespondError(c, err)
	}

	responses := make([]model.StudentResponse, 0, len(students))
	for i := range students {
		responses = append(responses, students[i].ToResponse())
	}
	return response.Success(c, responses)
}

// UpdateStudentRequest is a partial student update; absent fields are left
// untouched
type UpdateStudentRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
	Age       *int    `json:"age" validate:"omitempty,gte=1,lte=120"`
	Gender    *string `json:"gender" validate:"omitempty"`
	TotalFees *int64  `json:"total_fees" validate:"omitempty,gte=0"`
}

// UpdateStudent handles PUT /students/:id
func (h *StudentHandler) UpdateStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid student id")
	}

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}

	// Students may edit their own profile but never their fee total
	if req.TotalFees != nil {
		if role, _ := middleware.GetSubjectRole(c); role == model.RoleStudent {
			return response.Forbidden(c, "Only staff can change fee totals")
		}
	}

	student, err := h.accounts.UpdateStudent(c.Context(), uint(id), services.UpdateStudentInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Age:       req.Age,
		Gender:    req.Gender,
		TotalFees: req.TotalFees,
	})
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.SuccessWithMessage(c, "Student updated successfully", student.ToResponse())
}

// DeleteStudent handles DELETE /students/:id
func (h *StudentHandler) DeleteStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid student id")
	}

	if err := h.accounts.DeleteStudent(c.Context(), uint(id)); err != nil {
		return handlers.RespondError(c, err)
	}

	return response.SuccessWithMessage(c, "Student deleted successfully", nil)
}

// EnrollRequest names the student/course pair to enroll
type EnrollRequest struct {
	StudentID uint `json:"student_id" validate:"required,min=1"`
	CourseID  uint `json:"course_id" validate:"required,min=1"`
}

// Enroll handles POST /students/enroll
func (h *StudentHandler) Enroll(c *fiber.Ctx) error {
	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}

	// A student only enrolls themselves; staff may enroll anyone
	if role, _ := middleware.GetSubjectRole(c); role == model.RoleStudent {
		if subjectID, ok := middleware.GetSubjectID(c); !ok || subjectID != req.StudentID {
			return response.Forbidden(c, "Students can only enroll themselves")
		}
	}

	if err := h.catalog.Enroll(c.Context(), req.StudentID, req.CourseID); err != nil {
		return handlers.RespondError(c, err)
	}

	return response.SuccessWithMessage(c, "Enrolled in course successfully", nil)
}
