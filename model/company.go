package model

import (
	"time"

	"gorm.io/gorm"
)

// CompanyProfile represents a recruiting company on the platform
type CompanyProfile struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Name         string         `gorm:"not null;uniqueIndex" json:"name"`
	Industry     string         `gorm:"type:varchar(100)" json:"industry"`
	Website      string         `gorm:"type:varchar(255)" json:"website"`
	Location     string         `gorm:"type:varchar(255)" json:"location"`
	ContactEmail string         `gorm:"type:varchar(255);index" json:"contact_email"`
	About        string         `gorm:"type:text" json:"about"`

	// Relationships
	User           User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	JobPostings    []JobPosting    `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"job_postings,omitempty"`
	Collaborations []Collaboration `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
}
