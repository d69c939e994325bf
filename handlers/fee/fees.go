package fee

import (
	"github.com/edupanel/campus-api/handlers"
	"github.com/edupanel/campus-api/services"
	"github.com/edupanel/campus-api/utils/response"
	"github.com/edupanel/campus-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// FeeHandler handles fee ledger requests
type FeeHandler struct {
	fees      *services.FeeService
	validator *validation.Validator
}

// NewFeeHandler creates a new fee handler
func NewFeeHandler(fees *services.FeeService) *FeeHandler {
	return &FeeHandler{
		fees:      fees,
		validator: validation.NewValidator(),
	}
}

// PostPaymentRequest is the payload for recording a fee payment
type PostPaymentRequest struct {
	StudentID  uint  `json:"student_id" validate:"required,min=1"`
	AmountPaid int64 `json:"amount_paid" validate:"required"`
}

// PostPayment handles POST /fees/payments
func (h *FeeHandler) PostPayment(c *fiber.Ctx) error {
	var req PostPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}

	balance, err := h.fees.PostPayment(c.Context(), req.StudentID, req.AmountPaid)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Success(c, balance)
}

// Balance handles GET /fees/student/:id
func (h *FeeHandler) Balance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid student id")
	}

	balance, err := h.fees.Balance(c.Context(), uint(id))
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Success(c, balance)
}
