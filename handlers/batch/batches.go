package batch

import (
	"github.com/edupanel/campus-api/handlers"
	"github.com/edupanel/campus-api/model"
	"github.com/edupanel/campus-api/services"
	"github.com/edupanel/campus-api/utils/response"
	"github.com/edupanel/campus-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// BatchHandler handles batch catalog requests
type BatchHandler struct {
	catalog   *services.CatalogService
	validator *validation.Validator
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(catalog *services.CatalogService) *BatchHandler {
	return &BatchHandler{
		catalog:   catalog,
		validator: validation.NewValidator(),
	}
}

// CreateBatchRequest is the payload for creating a batch
type CreateBatchRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	CourseLabel string `json:"course" validate:"required,min=1,max=255"`
	StudentIDs  []uint `json:"student_ids"`
}

// CreateBatch handles POST /batches
func (h *BatchHandler) CreateBatch(c *fiber.Ctx) error {
	var req CreateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstValidationError(err))
	}

	batch, err := h.catalog.CreateBatch(c.Context(), req.Name, req.CourseLabel, req.StudentIDs)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Created(c, batch.ToResponse())
}

// GetBatch handles GET /batches/:id
func (h *BatchHandler) GetBatch(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid batch id")
	}

	batch, err := h.catalog.GetBatch(c.Context(), uint(id))
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Success(c, batch.ToResponse())
}

// ListBatches handles GET /batches
func (h *BatchHandler) ListBatches(c *fiber.Ctx) error {
	batches, err := h.catalog.ListBatches(c.Context())
	if err != nil {
		return handlers.RespondError(c, err)
	}

	responses := make([]model.BatchResponse, 0, len(batches))
	for i := range batches {
		responses = append(responses, batches[i].ToResponse())
	}
	return response.Success(c, responses)
}
