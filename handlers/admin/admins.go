package admin

import (
	"github.com/edupanel/campus-api/handlers"
	"github.com/edupanel/campus-api/model"
	"github.com/edupanel/campus-api/services"
	"github.com/edupanel/campus-api/utils/middleware"
	"github.com/edupanel/campus-api/utils/response"
	"github.com/edupanel/campus-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin account administration (SuperAdmin surface)
type AdminHandler struct {
	accounts  *services.AccountService
	validator *validation.Validator
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(accounts *services.AccountService) *AdminHandler {
	return &AdminHandler{
		accounts:  accounts,
		validator: validation.NewValidator(),
	}
}

// CreateAdminRequest is the payload for SuperAdmin-created admins
type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// CreateAdmin handles POST /admins
func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	var req CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}

	admin, err := h.accounts.RegisterAdmin(c.Context(), services.RegisterAdminInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Created(c, admin.ToResponse())
}

// GetAdmin handles GET /admins/:id
func (h *AdminHandler) GetAdmin(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid admin id")
	}

	admin, err := h.accounts.GetAdmin(c.Context(), uint(id))
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Success(c, admin.ToResponse())
}

// ListAdmins handles GET /admins
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.accounts.ListAdmins(c.Context())
	if err != nil {
		return handlers.RespondError(c, err)
	}

	responses := make([]model.AdminResponse, 0, len(admins))
	for i := range admins {
		responses = append(responses, admins[i].ToResponse())
	}
	return response.Success(c, responses)
}

// UpdateAdminRequest is a partial admin update
type UpdateAdminRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// UpdateAdmin handles PUT /admins/:id
func (h *AdminHandler) UpdateAdmin(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid admin id")
	}

	var req UpdateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}

	admin, err := h.accounts.UpdateAdmin(c.Context(), uint(id), services.UpdateAdminInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.SuccessWithMessage(c, "Admin updated successfully", admin.ToResponse())
}

// DeleteAdmin handles DELETE /admins/:id
func (h *AdminHandler) DeleteAdmin(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid admin id")
	}

	if err := h.accounts.DeleteAdmin(c.Context(), uint(id)); err != nil {
		return handlers.RespondError(c, err)
	}

	return response.SuccessWithMessage(c, "Admin deleted successfully", nil)
}

// GetSuperAdminProfile handles GET /superadmin/profile; the subject id comes
// from the verified token, never from the path
func (h *AdminHandler) GetSuperAdminProfile(c *fiber.Ctx) error {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	superAdmin, err := h.accounts.GetSuperAdmin(c.Context(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Success(c, superAdmin.ToResponse())
}
