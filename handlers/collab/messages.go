package collab

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/sahilchouksey/campus-bridge/services"
	"github.com/sahilchouksey/campus-bridge/utils/response"
)

// PostMessageRequest represents the request body for posting a message.
// At least one of text/attachments must be present.
type PostMessageRequest struct {
	Text        string             `json:"text" validate:"omitempty,max=10000"`
	Attachments []model.Attachment `json:"attachments" validate:"omitempty,dive"`
}

// ListMessages handles GET /api/v1/collaborations/:id/messages
func (h *CollabHandler) ListMessages(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return serviceError(c, err)
	}

	id, err := collabID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid collaboration id")
	}

	messages, err := h.messages.List(c.Context(), actor, id)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, messages)
}

// PostMessage handles POST /api/v1/collaborations/:id/messages
func (h *CollabHandler) PostMessage(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return serviceError(c, err)
	}

	id, err := collabID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid collaboration id")
	}

	var req PostMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	message, err := h.messages.PostMessage(c.Context(), actor, id, services.PostMessageRequest{
		Text:        req.Text,
		Attachments: req.Attachments,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return response.Created(c, message)
}
