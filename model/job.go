package model

import (
	"time"

	"gorm.io/gorm"
)

// JobStatus represents the publication status of a job posting
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// JobPosting represents a position advertised by a company
type JobPosting struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	CompanyID   uint           `gorm:"not null;index" json:"company_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Location    string         `gorm:"type:varchar(255)" json:"location"`
	SalaryRange string         `gorm:"type:varchar(100)" json:"salary_range"`
	Status      JobStatus      `gorm:"type:varchar(20);default:'open'" json:"status"`

	// Relationships
	Company CompanyProfile `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"company,omitempty"`
}
