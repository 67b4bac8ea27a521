package collab

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/sahilchouksey/campus-bridge/services"
	"github.com/sahilchouksey/campus-bridge/utils/response"
)

// AddTaskRequest represents the request body for adding a board task
type AddTaskRequest struct {
	Title        string     `json:"title" validate:"required,min=1,max=255"`
	Column       string     `json:"column" validate:"omitempty,oneof=backlog discussion actions approvals"`
	AssigneeRole string     `json:"assignee_role" validate:"omitempty,oneof=company university both"`
	Due          *time.Time `json:"due"`
	Notes        string     `json:"notes" validate:"omitempty,max=5000"`
}

// UpdateTaskRequest moves a task between columns and/or toggles done
type UpdateTaskRequest struct {
	ToColumn        *string `json:"to_column" validate:"omitempty,oneof=backlog discussion actions approvals"`
	Done            *bool   `json:"done"`
	ExpectedVersion int64   `json:"expected_version" validate:"required,gt=0"`
}

// GetBoard handles GET /api/v1/collaborations/:id/board
func (h *CollabHandler) GetBoard(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return serviceError(c, err)
	}

	id, err := collabID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid collaboration id")
	}

	board, err := h.board.Board(c.Context(), actor, id)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, board)
}

// AddTask handles POST /api/v1/collaborations/:id/tasks
func (h *CollabHandler) AddTask(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return serviceError(c, err)
	}

	id, err := collabID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid collaboration id")
	}

	var req AddTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	// New cards land in the backlog unless a column is given
	column := model.ColumnBacklog
	if req.Column != "" {
		column = model.TaskColumn(req.Column)
	}

	task, err := h.board.AddTask(c.Context(), actor, id, services.AddTaskRequest{
		Title:        req.Title,
		Column:       column,
		AssigneeRole: model.AssigneeRole(req.AssigneeRole),
		Due:          req.Due,
		Notes:        req.Notes,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return response.Created(c, task)
}

// UpdateTask handles PATCH /api/v1/collaborations/:id/tasks/:task_id
func (h *CollabHandler) UpdateTask(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return serviceError(c, err)
	}

	id, err := collabID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid collaboration id")
	}

	taskID, err := strconv.ParseUint(c.Params("task_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid task id")
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	update := services.UpdateTaskRequest{
		Done:            req.Done,
		ExpectedVersion: req.ExpectedVersion,
	}
	if req.ToColumn != nil {
		column := model.TaskColumn(*req.ToColumn)
		update.ToColumn = &column
	}

	task, err := h.board.UpdateTask(c.Context(), actor, id, uint(taskID), update)
	if err != nil {
		return serviceError(c, err)
	}

	return response.SuccessWithMessage(c, "Task updated successfully", task)
}
