package collab

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/campus-bridge/utils/response"
)

// Upload handles POST /api/v1/collaborations/:id/uploads. The stored
// object is returned as {name, url} ready to attach to a message.
func (h *CollabHandler) Upload(c *fiber.Ctx) error {
	if !h.uploads.Enabled() {
		return response.Error(c, fiber.StatusServiceUnavailable, "File storage is not configured", "UPLOADS_DISABLED")
	}

	actor, err := h.actor(c)
	if err != nil {
		return serviceError(c, err)
	}

	id, err := collabID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid collaboration id")
	}

	// Get uploaded file
	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}

	attachment, err := h.uploads.Upload(c.Context(), actor, id, file)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Created(c, attachment)
}
