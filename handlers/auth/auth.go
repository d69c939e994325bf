package auth

import (
	"time"

	"github.com/edupanel/campus-api/handlers"
	"github.com/edupanel/campus-api/model"
	"github.com/edupanel/campus-api/services"
	authutil "github.com/edupanel/campus-api/utils/auth"
	"github.com/edupanel/campus-api/utils/middleware"
	"github.com/edupanel/campus-api/utils/response"
	"github.com/edupanel/campus-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login, logout and token refresh for all
// three identity types
type AuthHandler struct {
	accounts             *services.AccountService
	jwtManager           *authutil.JWTManager
	blacklistService     *authutil.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
	validator            *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, accounts *services.AccountService, jwtManager *authutil.JWTManager, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		accounts:             accounts,
		jwtManager:           jwtManager,
		blacklistService:     authutil.NewBlacklistService(db),
		bruteForceProtection: bruteForceProtection,
		validator:            validation.NewValidator(),
	}
}

// RegisterStudentRequest is the student registration payload
type RegisterStudentRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Age      int    `json:"age" validate:"required,gte=1,lte=120"`
	Gender   string `json:"gender" validate:"required"`
}

// RegisterStudent handles POST /auth/students/register
func (h *AuthHandler) RegisterStudent(c *fiber.Ctx) error {
	var req RegisterStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}

	student, err := h.accounts.RegisterStudent(c.Context(), services.RegisterStudentInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Gender:   req.Gender,
	})
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Created(c, student.ToResponse())
}

// RegisterAdminRequest is the admin signup payload
type RegisterAdminRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterAdmin handles POST /auth/admins/register
func (h *AuthHandler) RegisterAdmin(c *fiber.Ctx) error {
	var req RegisterAdminRequest
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

// LoginRequest is the login payload, shared by all roles
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginStudent handles POST /auth/students/login
func (h *AuthHandler) LoginStudent(c *fiber.Ctx) error {
	return h.login(c, model.RoleStudent)
}

// LoginAdmin handles POST /auth/admins/login
func (h *AuthHandler) LoginAdmin(c *fiber.Ctx) error {
	return h.login(c, model.RoleAdmin)
}

// LoginSuperAdmin handles POST /auth/superadmin/login
func (h *AuthHandler) LoginSuperAdmin(c *fiber.Ctx) error {
	return h.login(c, model.RoleSuperAdmin)
}

func (h *AuthHandler) login(c *fiber.Ctx, role string) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	ip := c.IP()

	result, err := h.accounts.Login(c.Context(), role, req.Email, req.Password)
	if err != nil {
		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c, ip)
		}
		return handlers.RespondError(c, err)
	}

	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c, ip)
	}

	return response.SuccessWithMessage(c, "Logged in successfully", result)
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return response.BadRequest(c, "refresh_token is required")
	}

	claims, err := h.jwtManager.ValidateToken(req.RefreshToken)
	if err != nil {
		return response.Unauthorized(c, "Invalid token")
	}

	revoked, err := h.blacklistService.IsTokenRevoked(c.Context(), claims.ID)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if revoked {
		return response.Unauthorized(c, "Token has been revoked")
	}

	accessToken, _, err := h.jwtManager.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		return response.Unauthorized(c, "Invalid token")
	}

	return response.Success(c, fiber.Map{
		"access_token": accessToken,
		"expires_in":   h.jwtManager.AccessExpirySeconds(),
	})
}

// LogoutRequest optionally carries the refresh token issued alongside the
// access token, so the whole session dies at once
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout handles POST /auth/logout; revokes the presented access token and,
// when the body carries one, the session's refresh token
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	expiresAt := time.Now().Add(time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	err := h.blacklistService.RevokeToken(c.Context(), claims.ID, claims.SubjectID, claims.Role, expiresAt, "logout")
	if err != nil {
		return handlers.RespondError(c, err)
	}

	// The refresh token is revoked best-effort: one that fails validation
	// is useless to an attacker anyway.
	var req LogoutRequest
	if err := c.BodyParser(&req); err == nil && req.RefreshToken != "" {
		refreshClaims, err := h.jwtManager.ValidateToken(req.RefreshToken)
		if err == nil && refreshClaims.TokenType == "refresh" && refreshClaims.SubjectID == claims.SubjectID {
			refreshExpiry := time.Now().Add(authutil.RefreshTokenTTL)
			if refreshClaims.ExpiresAt != nil {
				refreshExpiry = refreshClaims.ExpiresAt.Time
			}
			if err := h.blacklistService.RevokeToken(c.Context(), refreshClaims.ID, refreshClaims.SubjectID, refreshClaims.Role, refreshExpiry, "logout"); err != nil {
				return handlers.RespondError(c, err)
			}
		}
	}

	return response.SuccessWithMessage(c, "Logged out successfully", nil)
}
