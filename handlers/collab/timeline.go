package collab

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/campus-bridge/utils/response"
)

// GetTimeline handles GET /api/v1/collaborations/:id/timeline
func (h *CollabHandler) GetTimeline(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return serviceError(c, err)
	}

	id, err := collabID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid collaboration id")
	}

	// Authorization goes through Get; the timeline itself is scoped to
	// the collaboration
	if _, err := h.collabs.Get(c.Context(), actor, id); err != nil {
		return serviceError(c, err)
	}

	entries, err := h.collabs.Timeline().List(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, entries)
}
