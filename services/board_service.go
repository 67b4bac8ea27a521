package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/sahilchouksey/campus-bridge/utils/validation"
	"gorm.io/gorm"
)

// BoardService manages the four-column task board of a collaboration.
// Tasks are never deleted; cards only move between columns and flip
// their done flag.
type BoardService struct {
	db       *gorm.DB
	collabs  *CollaborationService
	timeline *TimelineRecorder
}

// NewBoardService creates a new board service
func NewBoardService(db *gorm.DB, collabs *CollaborationService) *BoardService {
	return &BoardService{
		db:       db,
		collabs:  collabs,
		timeline: collabs.Timeline(),
	}
}

// AddTaskRequest carries the fields for a new board task
type AddTaskRequest struct {
	Title        string
	Column       model.TaskColumn
	AssigneeRole model.AssigneeRole
	Due          *time.Time
	Notes        string
}

// AddTask appends a task to the end of the requested column with
// done=false
func (s *BoardService) AddTask(ctx context.Context, actor *Actor, collabID uint, req AddTaskRequest) (*model.BoardTask, error) {
	title := validation.SanitizeString(req.Title)
	if title == "" {
		return nil, ErrEmptyTaskTitle
	}
	if !req.Column.IsValid() {
		return nil, ErrInvalidColumn
	}

	assignee := req.AssigneeRole
	if assignee == "" {
		assignee = model.AssigneeBoth
	}
	if !assignee.IsValid() {
		return nil, ErrInvalidAssignee
	}

	task := model.BoardTask{
		CollaborationID: collabID,
		Title:           title,
		Column:          req.Column,
		AssigneeRole:    assignee,
		Due:             req.Due,
		Notes:           validation.StripHTML(req.Notes),
		Done:            false,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		collab, err := s.collabs.load(ctx, tx, actor, collabID)
		if err != nil {
			return err
		}

		position, err := s.nextPosition(ctx, tx, collabID, req.Column)
		if err != nil {
			return err
		}
		task.Position = position

		if err := tx.Create(&task).Error; err != nil {
			return err
		}

		if err := s.bumpVersion(tx, collab); err != nil {
			return err
		}

		s.timeline.RecordBestEffort(ctx, tx, collabID, model.TimelineTaskAdded, actor.Name,
			fmt.Sprintf("Task %q added to %s", task.Title, task.Column), map[string]interface{}{
				"task_id": task.ID,
				"column":  task.Column,
			})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// UpdateTaskRequest moves a task and/or flips its done flag. Nil fields
// are untouched. ExpectedVersion guards against concurrent board edits.
type UpdateTaskRequest struct {
	ToColumn        *model.TaskColumn
	Done            *bool
	ExpectedVersion int64
}

// UpdateTask applies a column move and/or done toggle. A move removes
// the card from its source column and appends it to the destination,
// preserving every other field.
func (s *BoardService) UpdateTask(ctx context.Context, actor *Actor, collabID, taskID uint, req UpdateTaskRequest) (*model.BoardTask, error) {
	var task model.BoardTask

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		collab, err := s.collabs.load(ctx, tx, actor, collabID)
		if err != nil {
			return err
		}
		if collab.Version != req.ExpectedVersion {
			return ErrVersionMismatch
		}

		if err := tx.Where("collaboration_id = ?", collabID).First(&task, taskID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTaskNotFound
			}
			return err
		}

		if req.ToColumn != nil && *req.ToColumn != task.Column {
			dest := *req.ToColumn
			if !dest.IsValid() {
				return ErrInvalidColumn
			}

			position, err := s.nextPosition(ctx, tx, collabID, dest)
			if err != nil {
				return err
			}

			from := task.Column
			task.Column = dest
			task.Position = position

			s.timeline.RecordBestEffort(ctx, tx, collabID, model.TimelineTaskMoved, actor.Name,
				fmt.Sprintf("Task %q moved from %s to %s", task.Title, from, dest), map[string]interface{}{
					"task_id": task.ID,
					"from":    from,
					"to":      dest,
				})
		}

		if req.Done != nil && *req.Done != task.Done {
			task.Done = *req.Done

			kind := model.TimelineTaskCompleted
			if !task.Done {
				kind = model.TimelineTaskReopened
			}
			s.timeline.RecordBestEffort(ctx, tx, collabID, kind, actor.Name,
				fmt.Sprintf("Task %q marked %s", task.Title, doneLabel(task.Done)), map[string]interface{}{
					"task_id": task.ID,
				})
		}

		if err := tx.Save(&task).Error; err != nil {
			return err
		}

		return s.casVersion(tx, collab, req.ExpectedVersion)
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// Board returns the collaboration's tasks grouped into column views
func (s *BoardService) Board(ctx context.Context, actor *Actor, collabID uint) (*model.Board, error) {
	if _, err := s.collabs.load(ctx, s.db, actor, collabID); err != nil {
		return nil, err
	}

	var tasks []model.BoardTask
	err := s.db.WithContext(ctx).
		Where("collaboration_id = ?", collabID).
		Order("position ASC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	board := model.GroupBoard(tasks)
	return &board, nil
}

// nextPosition returns the append slot at the end of a column
func (s *BoardService) nextPosition(ctx context.Context, tx *gorm.DB, collabID uint, column model.TaskColumn) (int, error) {
	var max int
	err := tx.WithContext(ctx).
		Model(&model.BoardTask{}).
		Where("collaboration_id = ? AND board_column = ?", collabID, column).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// bumpVersion unconditionally advances the aggregate version
func (s *BoardService) bumpVersion(tx *gorm.DB, collab *model.Collaboration) error {
	return tx.Model(&model.Collaboration{}).
		Where("id = ?", collab.ID).
		UpdateColumn("version", gorm.Expr("version + ?", 1)).
		Error
}

// casVersion advances the version only if it still matches what the
// caller read
func (s *BoardService) casVersion(tx *gorm.DB, collab *model.Collaboration, expected int64) error {
	res := tx.Model(&model.Collaboration{}).
		Where("id = ? AND version = ?", collab.ID, expected).
		UpdateColumn("version", expected+1)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionMismatch
	}
	return nil
}

func doneLabel(done bool) string {
	if done {
		return "done"
	}
	return "open"
}
