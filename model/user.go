package model

import (
	"time"

	"gorm.io/gorm"
)

// Account roles
const (
	RoleCompany    = "company"
	RoleUniversity = "university"
	RoleAdmin      = "admin"
)

// User represents a registered account in the system
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	Name         string         `gorm:"not null" json:"name"`
	Role         string         `gorm:"type:varchar(20);default:'company'" json:"role"` // company, university, admin
	TokenVersion int            `gorm:"default:0" json:"-"`                             // Increment to invalidate all user tokens

	// Relationships
	CompanyProfile    *CompanyProfile     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"company_profile,omitempty"`
	UniversityProfile *UniversityProfile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"university_profile,omitempty"`
	TokenBlacklist    []JWTTokenBlacklist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
