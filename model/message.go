package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Attachment is a named link to an externally stored file. Binary storage
// is not part of this service; the upload endpoint returns the URL
// consumed here.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Attachments is a custom type for storing attachment lists as JSONB
type Attachments []Attachment

// Scan implements the sql.Scanner interface for reading from database
func (a *Attachments) Scan(value interface{}) error {
	if value == nil {
		*a = Attachments{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			bytes = []byte(str)
		} else {
			return errors.New("failed to unmarshal attachments value")
		}
	}

	return json.Unmarshal(bytes, a)
}

// Value implements the driver.Valuer interface for writing to database
func (a Attachments) Value() (driver.Value, error) {
	if len(a) == 0 {
		return []byte("[]"), nil // Return empty JSON array instead of nil
	}
	return json.Marshal(a)
}

// Message is one entry in a collaboration's append-only message log.
// At least one of Text/Attachments is non-empty; messages are never
// edited or deleted.
type Message struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time   `json:"created_at"`
	CollaborationID uint        `gorm:"not null;index" json:"collaboration_id"`
	AuthorID        uint        `gorm:"not null;index" json:"author_id"`
	AuthorName      string      `gorm:"not null" json:"author_name"`
	AuthorRole      string      `gorm:"type:varchar(20);not null" json:"author_role"` // company, university
	Text            string      `gorm:"type:text" json:"text,omitempty"`
	Attachments     Attachments `gorm:"type:jsonb" json:"attachments"`

	// Relationships
	Collaboration Collaboration `gorm:"foreignKey:CollaborationID;constraint:OnDelete:CASCADE" json:"-"`
	Author        User          `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}
