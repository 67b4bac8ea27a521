package model

import (
	"time"

	"gorm.io/gorm"
)

// TaskColumn is one of the four fixed board columns
type TaskColumn string

const (
	ColumnBacklog    TaskColumn = "backlog"
	ColumnDiscussion TaskColumn = "discussion"
	ColumnActions    TaskColumn = "actions"
	ColumnApprovals  TaskColumn = "approvals"
)

// IsValid reports whether the column is one of the four known buckets
func (c TaskColumn) IsValid() bool {
	switch c {
	case ColumnBacklog, ColumnDiscussion, ColumnActions, ColumnApprovals:
		return true
	}
	return false
}

// AssigneeRole identifies which party a task is assigned to
type AssigneeRole string

const (
	AssigneeCompany    AssigneeRole = "company"
	AssigneeUniversity AssigneeRole = "university"
	AssigneeBoth       AssigneeRole = "both"
)

// IsValid reports whether the assignee role is known
func (r AssigneeRole) IsValid() bool {
	switch r {
	case AssigneeCompany, AssigneeUniversity, AssigneeBoth:
		return true
	}
	return false
}

// BoardTask is a single card on a collaboration's task board. Tasks are
// stored flat and keyed by id; the column is a field, so a move is a
// metadata update rather than an array splice. Position orders tasks
// within their column and is reassigned to the end of the destination
// column on every move.
type BoardTask struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	CollaborationID uint           `gorm:"not null;index" json:"collaboration_id"`
	Title           string         `gorm:"not null" json:"title"`
	Column          TaskColumn     `gorm:"column:board_column;type:varchar(20);not null;index" json:"column"`
	AssigneeRole    AssigneeRole   `gorm:"type:varchar(20);not null;default:'both'" json:"assignee_role"`
	Due             *time.Time     `json:"due,omitempty"`
	Notes           string         `gorm:"type:text" json:"notes,omitempty"`
	Done            bool           `gorm:"default:false" json:"done"`
	Position        int            `gorm:"not null;default:0" json:"position"`

	// Relationships
	Collaboration Collaboration `gorm:"foreignKey:CollaborationID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for BoardTask
func (BoardTask) TableName() string {
	return "board_tasks"
}

// Board groups tasks into the four display columns, each in position order
type Board struct {
	Backlog    []BoardTask `json:"backlog"`
	Discussion []BoardTask `json:"discussion"`
	Actions    []BoardTask `json:"actions"`
	Approvals  []BoardTask `json:"approvals"`
}

// GroupBoard partitions a position-ordered task list into column views
func GroupBoard(tasks []BoardTask) Board {
	board := Board{
		Backlog:    []BoardTask{},
		Discussion: []BoardTask{},
		Actions:    []BoardTask{},
		Approvals:  []BoardTask{},
	}
	for _, task := range tasks {
		switch task.Column {
		case ColumnBacklog:
			board.Backlog = append(board.Backlog, task)
		case ColumnDiscussion:
			board.Discussion = append(board.Discussion, task)
		case ColumnActions:
			board.Actions = append(board.Actions, task)
		case ColumnApprovals:
			board.Approvals = append(board.Approvals, task)
		}
	}
	return board
}
