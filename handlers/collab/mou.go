package collab

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/sahilchouksey/campus-bridge/services"
	"github.com/sahilchouksey/campus-bridge/utils/response"
)

// SaveMoURequest replaces the editable MoU content. Signature blocks in
// the payload are ignored; they only change through the sign endpoint.
type SaveMoURequest struct {
	MoU             model.MoUDocument `json:"mou" validate:"required"`
	ExpectedVersion int64             `json:"expected_version" validate:"required,gt=0"`
}

// SignMoURequest records the calling party's signature
type SignMoURequest struct {
	Name            string `json:"name" validate:"required,min=2,max=255"`
	Title           string `json:"title" validate:"required,min=2,max=255"`
	ExpectedVersion int64  `json:"expected_version" validate:"required,gt=0"`
}

// SaveMoU handles POST /api/v1/collaborations/:id/mou
func (h *CollabHandler) SaveMoU(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return serviceError(c, err)
	}

	id, err := collabID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid collaboration id")
	}

	var req SaveMoURequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	collab, err := h.mou.Save(c.Context(), actor, id, req.MoU, req.ExpectedVersion)
	if err != nil {
		return serviceError(c, err)
	}

	return response.SuccessWithMessage(c, "MoU saved successfully", collab)
}

// SignMoU handles POST /api/v1/collaborations/:id/mou/sign
func (h *CollabHandler) SignMoU(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return serviceError(c, err)
	}

	id, err := collabID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid collaboration id")
	}

	var req SignMoURequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	collab, err := h.mou.Sign(c.Context(), actor, id, services.SignRequest{
		Name:            req.Name,
		Title:           req.Title,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return response.SuccessWithMessage(c, "MoU signed successfully", collab)
}
