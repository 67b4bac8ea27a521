package collab

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/sahilchouksey/campus-bridge/services"
	"github.com/sahilchouksey/campus-bridge/utils/middleware"
	"github.com/sahilchouksey/campus-bridge/utils/response"
	"github.com/sahilchouksey/campus-bridge/utils/validation"
)

// CollabHandler handles collaboration workspace requests: the
// collaboration itself plus its board, messages, MoU and timeline
type CollabHandler struct {
	collabs   *services.CollaborationService
	board     *services.BoardService
	messages  *services.MessageService
	mou       *services.MoUService
	uploads   *services.UploadService
	validator *validation.Validator
}

// NewCollabHandler creates a new collaboration handler
func NewCollabHandler(
	collabs *services.CollaborationService,
	board *services.BoardService,
	messages *services.MessageService,
	mou *services.MoUService,
	uploads *services.UploadService,
) *CollabHandler {
	return &CollabHandler{
		collabs:   collabs,
		board:     board,
		messages:  messages,
		mou:       mou,
		uploads:   uploads,
		validator: validation.NewValidator(),
	}
}

var errNotAuthenticated = errors.New("not authenticated")

// actor resolves the authenticated user into a collaboration actor
// (profile IDs included). Admins get a profile-less actor.
func (h *CollabHandler) actor(c *fiber.Ctx) (*services.Actor, error) {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return nil, errNotAuthenticated
	}
	return h.collabs.ResolveActor(c.Context(), user)
}

// collabID parses the :id route parameter
func collabID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// serviceError maps service sentinels onto the HTTP error envelope
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errNotAuthenticated):
		return response.Unauthorized(c, "Not authenticated")

	case errors.Is(err, services.ErrCollaborationNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrCounterpartNotFound):
		return response.NotFound(c, err.Error())

	case errors.Is(err, services.ErrNoProfile),
		errors.Is(err, services.ErrNotParticipant):
		return response.Forbidden(c, err.Error())

	case errors.Is(err, services.ErrVersionMismatch),
		errors.Is(err, services.ErrAlreadySigned):
		return response.Conflict(c, err.Error())

	case errors.Is(err, services.ErrInvalidStage),
		errors.Is(err, services.ErrStageTransition),
		errors.Is(err, services.ErrInvalidColumn),
		errors.Is(err, services.ErrInvalidAssignee),
		errors.Is(err, services.ErrEmptyTitle),
		errors.Is(err, services.ErrEmptyTaskTitle),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrInvalidMoU),
		errors.Is(err, services.ErrInvalidSignature),
		errors.Is(err, services.ErrInvalidUpload),
		errors.Is(err, services.ErrSameParty):
		return response.BadRequest(c, err.Error())
	}

	return response.InternalServerError(c, "Something went wrong")
}

// StartCollaborationRequest represents the request body for starting a collaboration
type StartCollaborationRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Counterpart string `json:"counterpart" validate:"required,min=2,max=255"`
	Summary     string `json:"summary" validate:"omitempty,max=5000"`
}

// UpdateCollaborationRequest is a partial patch; omitted fields are untouched
type UpdateCollaborationRequest struct {
	Title           *string            `json:"title"`
	Summary         *string            `json:"summary"`
	Stage           *string            `json:"stage"`
	ExpectedVersion int64              `json:"expected_version" validate:"required,gt=0"`
	MoU             *model.MoUDocument `json:"mou"`
}

// ListCollaborations handles GET /api/v1/collaborations
func (h *CollabHandler) ListCollaborations(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return serviceError(c, err)
	}

	summaries, err := h.collabs.List(c.Context(), actor)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, summaries)
}

// StartCollaboration handles POST /api/v1/collaborations
func (h *CollabHandler) StartCollaboration(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return serviceError(c, err)
	}

	var req StartCollaborationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	collab, err := h.collabs.Start(c.Context(), actor, services.StartRequest{
		Title:       req.Title,
		Counterpart: req.Counterpart,
		Summary:     req.Summary,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return response.Created(c, collab)
}

// GetCollaboration handles GET /api/v1/collaborations/:id
func (h *CollabHandler) GetCollaboration(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return serviceError(c, err)
	}

	id, err := collabID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid collaboration id")
	}

	collab, err := h.collabs.Get(c.Context(), actor, id)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, collab)
}

// UpdateCollaboration handles PATCH /api/v1/collaborations/:id
func (h *CollabHandler) UpdateCollaboration(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return serviceError(c, err)
	}

	id, err := collabID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid collaboration id")
	}

	var req UpdateCollaborationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	update := services.UpdateMetaRequest{
		Title:           req.Title,
		Summary:         req.Summary,
		MoU:             req.MoU,
		ExpectedVersion: req.ExpectedVersion,
	}
	if req.Stage != nil {
		stage := model.CollabStage(*req.Stage)
		update.Stage = &stage
	}

	collab, err := h.collabs.UpdateMeta(c.Context(), actor, id, update)
	if err != nil {
		return serviceError(c, err)
	}

	return response.SuccessWithMessage(c, "Collaboration updated successfully", collab)
}
