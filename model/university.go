package model

import (
	"time"

	"gorm.io/gorm"
)

// UniversityProfile represents an educational institution on the platform
type UniversityProfile struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Name         string         `gorm:"not null;uniqueIndex" json:"name"`
	Code         string         `gorm:"uniqueIndex;not null" json:"code"` // e.g., "AKTU", "DU"
	Location     string         `gorm:"type:varchar(255)" json:"location"`
	Website      string         `gorm:"type:varchar(255)" json:"website"`
	ContactEmail string         `gorm:"type:varchar(255);index" json:"contact_email"`
	About        string         `gorm:"type:text" json:"about"`

	// Relationships
	User           User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Collaborations []Collaboration `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"-"`
}
