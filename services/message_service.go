package services

import (
	"context"

	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/sahilchouksey/campus-bridge/utils/validation"
	"gorm.io/gorm"
)

// MessageService appends to a collaboration's message log. The log is
// append-only; messages carry text, attachment links or both.
type MessageService struct {
	db       *gorm.DB
	collabs  *CollaborationService
	timeline *TimelineRecorder
}

// NewMessageService creates a new message service
func NewMessageService(db *gorm.DB, collabs *CollaborationService) *MessageService {
	return &MessageService{
		db:       db,
		collabs:  collabs,
		timeline: collabs.Timeline(),
	}
}

// PostMessageRequest carries a message body and/or attachment links
type PostMessageRequest struct {
	Text        string
	Attachments []model.Attachment
}

// PostMessage appends a message authored by the actor. At least one of
// text/attachments must be non-empty; this is enforced here rather than
// trusted to the client.
func (s *MessageService) PostMessage(ctx context.Context, actor *Actor, collabID uint, req PostMessageRequest) (*model.Message, error) {
	text := validation.StripHTML(req.Text)

	attachments := make(model.Attachments, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		if a.URL == "" {
			continue
		}
		if a.Name == "" {
			a.Name = a.URL
		}
		attachments = append(attachments, a)
	}

	if text == "" && len(attachments) == 0 {
		return nil, ErrEmptyMessage
	}

	message := model.Message{
		CollaborationID: collabID,
		AuthorID:        actor.UserID,
		AuthorName:      actor.Name,
		AuthorRole:      actor.Role,
		Text:            text,
		Attachments:     attachments,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.collabs.load(ctx, tx, actor, collabID); err != nil {
			return err
		}

		if err := tx.Create(&message).Error; err != nil {
			return err
		}

		s.timeline.RecordBestEffort(ctx, tx, collabID, model.TimelineMessagePosted, actor.Name,
			"", map[string]interface{}{
				"message_id":  message.ID,
				"attachments": len(attachments),
			})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// List returns the message log in insertion order; display order is the
// client's choice.
func (s *MessageService) List(ctx context.Context, actor *Actor, collabID uint) ([]model.Message, error) {
	if _, err := s.collabs.load(ctx, s.db, actor, collabID); err != nil {
		return nil, err
	}

	var messages []model.Message
	err := s.db.WithContext(ctx).
		Where("collaboration_id = ?", collabID).
		Order("id ASC").
		Find(&messages).Error
	return messages, err
}
