package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/sahilchouksey/campus-bridge/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TimelineRecorder appends audit entries to a collaboration's timeline.
// It is a pure sink: entries are written by the other services on
// notable events and only ever read back in insertion order.
type TimelineRecorder struct {
	db *gorm.DB
}

// NewTimelineRecorder creates a new timeline recorder
func NewTimelineRecorder(db *gorm.DB) *TimelineRecorder {
	return &TimelineRecorder{db: db}
}

// Record appends a timeline entry with a server-assigned timestamp.
// metadata may be nil. Failures are logged rather than propagated when
// called via RecordBestEffort since the audit trail is instrumentation,
// not part of the mutation contract.
func (r *TimelineRecorder) Record(ctx context.Context, tx *gorm.DB, collabID uint, kind model.TimelineKind, by, note string, metadata map[string]interface{}) error {
	if tx == nil {
		tx = r.db
	}

	entry := model.TimelineEntry{
		CollaborationID: collabID,
		Kind:            kind,
		By:              by,
		Note:            note,
	}

	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		entry.Metadata = datatypes.JSON(raw)
	}

	return tx.WithContext(ctx).Create(&entry).Error
}

// RecordBestEffort records an entry and only logs on failure
func (r *TimelineRecorder) RecordBestEffort(ctx context.Context, tx *gorm.DB, collabID uint, kind model.TimelineKind, by, note string, metadata map[string]interface{}) {
	if err := r.Record(ctx, tx, collabID, kind, by, note, metadata); err != nil {
		log.Printf("Warning: failed to record timeline entry %s for collaboration %d: %v", kind, collabID, err)
	}
}

// List returns a collaboration's timeline entries in insertion order
func (r *TimelineRecorder) List(ctx context.Context, collabID uint) ([]model.TimelineEntry, error) {
	var entries []model.TimelineEntry
	err := r.db.WithContext(ctx).
		Where("collaboration_id = ?", collabID).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}
