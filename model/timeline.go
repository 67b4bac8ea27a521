package model

import (
	"time"

	"gorm.io/datatypes"
)

// TimelineKind is a closed enum of auditable collaboration events
type TimelineKind string

const (
	TimelineCreated       TimelineKind = "created"
	TimelineStageChanged  TimelineKind = "stage_changed"
	TimelineRenamed       TimelineKind = "renamed"
	TimelineTaskAdded     TimelineKind = "task_added"
	TimelineTaskMoved     TimelineKind = "task_moved"
	TimelineTaskCompleted TimelineKind = "task_completed"
	TimelineTaskReopened  TimelineKind = "task_reopened"
	TimelineMessagePosted TimelineKind = "message_posted"
	TimelineMoUUpdated    TimelineKind = "mou_updated"
	TimelineMoUSigned     TimelineKind = "mou_signed"
	TimelineArchived      TimelineKind = "archived"
)

// IsValid reports whether the kind is one of the known event tags
func (k TimelineKind) IsValid() bool {
	switch k {
	case TimelineCreated, TimelineStageChanged, TimelineRenamed,
		TimelineTaskAdded, TimelineTaskMoved, TimelineTaskCompleted,
		TimelineTaskReopened, TimelineMessagePosted, TimelineMoUUpdated,
		TimelineMoUSigned, TimelineArchived:
		return true
	}
	return false
}

// TimelineEntry is one row of a collaboration's append-only audit trail.
// Entries are returned in insertion order; display order is the client's
// choice.
type TimelineEntry struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	CollaborationID uint           `gorm:"not null;index" json:"collaboration_id"`
	Kind            TimelineKind   `gorm:"type:varchar(30);not null" json:"kind"`
	By              string         `gorm:"type:varchar(255)" json:"by,omitempty"` // actor label
	Note            string         `gorm:"type:text" json:"note,omitempty"`
	Metadata        datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`

	// Relationships
	Collaboration Collaboration `gorm:"foreignKey:CollaborationID;constraint:OnDelete:CASCADE" json:"-"`
}
