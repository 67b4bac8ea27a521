package services

import (
	"context"
	"testing"
	"time"

	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoardFixture(t *testing.T) (*BoardService, *CollaborationService, *Actor, *model.Collaboration) {
	db := setupTestDB(t)
	companyActor, _ := seedParties(t, db)
	collabs := NewCollaborationService(db, nil)
	board := NewBoardService(db, collabs)
	collab := startCollab(t, collabs, companyActor)
	return board, collabs, companyActor, collab
}

func TestAddTaskAppendsToColumn(t *testing.T) {
	board, collabs, actor, collab := newBoardFixture(t)
	ctx := context.Background()

	first, err := board.AddTask(ctx, actor, collab.ID, AddTaskRequest{
		Title:  "Draft agreement outline",
		Column: model.ColumnBacklog,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, model.AssigneeBoth, first.AssigneeRole, "assignee defaults to both")
	assert.False(t, first.Done)

	second, err := board.AddTask(ctx, actor, collab.ID, AddTaskRequest{
		Title:        "Collect placement statistics",
		Column:       model.ColumnBacklog,
		AssigneeRole: model.AssigneeUniversity,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Position, "new cards land at the end of the column")

	// Each task add bumps the aggregate version
	current, err := collabs.Get(ctx, actor, collab.ID)
	require.NoError(t, err)
	assert.Equal(t, collab.Version+2, current.Version)
	assert.Contains(t, timelineKinds(current.Timeline), model.TimelineTaskAdded)
}

func TestAddTaskValidation(t *testing.T) {
	board, _, actor, collab := newBoardFixture(t)
	ctx := context.Background()

	_, err := board.AddTask(ctx, actor, collab.ID, AddTaskRequest{
		Title:  "  ",
		Column: model.ColumnBacklog,
	})
	assert.ErrorIs(t, err, ErrEmptyTaskTitle)

	_, err = board.AddTask(ctx, actor, collab.ID, AddTaskRequest{
		Title:  "Valid title",
		Column: model.TaskColumn("icebox"),
	})
	assert.ErrorIs(t, err, ErrInvalidColumn)

	_, err = board.AddTask(ctx, actor, collab.ID, AddTaskRequest{
		Title:        "Valid title",
		Column:       model.ColumnBacklog,
		AssigneeRole: model.AssigneeRole("nobody"),
	})
	assert.ErrorIs(t, err, ErrInvalidAssignee)
}

func TestMoveTaskPreservesFields(t *testing.T) {
	board, collabs, actor, collab := newBoardFixture(t)
	ctx := context.Background()

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	task, err := board.AddTask(ctx, actor, collab.ID, AddTaskRequest{
		Title:        "Review MoU legal clauses",
		Column:       model.ColumnDiscussion,
		AssigneeRole: model.AssigneeCompany,
		Due:          &due,
		Notes:        "Legal wants two weeks of lead time",
	})
	require.NoError(t, err)

	// An existing card in the destination column
	_, err = board.AddTask(ctx, actor, collab.ID, AddTaskRequest{
		Title:  "Schedule kickoff call",
		Column: model.ColumnActions,
	})
	require.NoError(t, err)

	current, err := collabs.Get(ctx, actor, collab.ID)
	require.NoError(t, err)

	dest := model.ColumnActions
	moved, err := board.UpdateTask(ctx, actor, collab.ID, task.ID, UpdateTaskRequest{
		ToColumn:        &dest,
		ExpectedVersion: current.Version,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ColumnActions, moved.Column)
	assert.Equal(t, 2, moved.Position, "moved card appends after the existing one")
	assert.Equal(t, "Review MoU legal clauses", moved.Title)
	assert.Equal(t, model.AssigneeCompany, moved.AssigneeRole)
	assert.Equal(t, "Legal wants two weeks of lead time", moved.Notes)
	require.NotNil(t, moved.Due)
	assert.True(t, moved.Due.Equal(due))

	after, err := collabs.Get(ctx, actor, collab.ID)
	require.NoError(t, err)
	assert.Contains(t, timelineKinds(after.Timeline), model.TimelineTaskMoved)
}

func TestToggleTaskDone(t *testing.T) {
	board, collabs, actor, collab := newBoardFixture(t)
	ctx := context.Background()

	task, err := board.AddTask(ctx, actor, collab.ID, AddTaskRequest{
		Title:  "Sign MoU",
		Column: model.ColumnApprovals,
	})
	require.NoError(t, err)

	current, err := collabs.Get(ctx, actor, collab.ID)
	require.NoError(t, err)

	done := true
	completed, err := board.UpdateTask(ctx, actor, collab.ID, task.ID, UpdateTaskRequest{
		Done:            &done,
		ExpectedVersion: current.Version,
	})
	require.NoError(t, err)
	assert.True(t, completed.Done)

	current, err = collabs.Get(ctx, actor, collab.ID)
	require.NoError(t, err)
	assert.Contains(t, timelineKinds(current.Timeline), model.TimelineTaskCompleted)

	reopen := false
	reopened, err := board.UpdateTask(ctx, actor, collab.ID, task.ID, UpdateTaskRequest{
		Done:            &reopen,
		ExpectedVersion: current.Version,
	})
	require.NoError(t, err)
	assert.False(t, reopened.Done)

	current, err = collabs.Get(ctx, actor, collab.ID)
	require.NoError(t, err)
	assert.Contains(t, timelineKinds(current.Timeline), model.TimelineTaskReopened)
}

func TestUpdateTaskVersionMismatch(t *testing.T) {
	board, _, actor, collab := newBoardFixture(t)
	ctx := context.Background()

	task, err := board.AddTask(ctx, actor, collab.ID, AddTaskRequest{
		Title:  "Prepare onboarding docs",
		Column: model.ColumnBacklog,
	})
	require.NoError(t, err)

	done := true
	_, err = board.UpdateTask(ctx, actor, collab.ID, task.ID, UpdateTaskRequest{
		Done:            &done,
		ExpectedVersion: collab.Version, // stale: AddTask already bumped it
	})
	assert.ErrorIs(t, err, ErrVersionMismatch)
}

func TestUpdateTaskScopedToCollaboration(t *testing.T) {
	board, collabs, actor, collab := newBoardFixture(t)
	ctx := context.Background()

	// A task in a different collaboration must not be reachable
	other, err := collabs.Start(ctx, actor, StartRequest{
		Title:       "Unrelated drive",
		Counterpart: "Tech University",
	})
	require.NoError(t, err)

	strayTask, err := board.AddTask(ctx, actor, other.ID, AddTaskRequest{
		Title:  "Stray task",
		Column: model.ColumnBacklog,
	})
	require.NoError(t, err)

	current, err := collabs.Get(ctx, actor, collab.ID)
	require.NoError(t, err)

	done := true
	_, err = board.UpdateTask(ctx, actor, collab.ID, strayTask.ID, UpdateTaskRequest{
		Done:            &done,
		ExpectedVersion: current.Version,
	})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestBoardGroupsByColumn(t *testing.T) {
	board, _, actor, collab := newBoardFixture(t)
	ctx := context.Background()

	for _, tc := range []struct {
		title  string
		column model.TaskColumn
	}{
		{"One", model.ColumnBacklog},
		{"Two", model.ColumnBacklog},
		{"Three", model.ColumnDiscussion},
		{"Four", model.ColumnApprovals},
	} {
		_, err := board.AddTask(ctx, actor, collab.ID, AddTaskRequest{Title: tc.title, Column: tc.column})
		require.NoError(t, err)
	}

	view, err := board.Board(ctx, actor, collab.ID)
	require.NoError(t, err)

	require.Len(t, view.Backlog, 2)
	assert.Equal(t, "One", view.Backlog[0].Title)
	assert.Equal(t, "Two", view.Backlog[1].Title)
	assert.Len(t, view.Discussion, 1)
	assert.Empty(t, view.Actions)
	assert.Len(t, view.Approvals, 1)
}
