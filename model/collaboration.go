package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// CollabStage represents the lifecycle stage of a collaboration
type CollabStage string

const (
	StageDraft       CollabStage = "draft"
	StageReview      CollabStage = "review"
	StageNegotiation CollabStage = "negotiation"
	StageApproved    CollabStage = "approved"
	StageActive      CollabStage = "active"
	StageCompleted   CollabStage = "completed"
	StageArchived    CollabStage = "archived"
)

// stageTransitions is the allowed forward progression. Archived is reachable
// from any non-terminal stage and is itself terminal.
var stageTransitions = map[CollabStage]CollabStage{
	StageDraft:       StageReview,
	StageReview:      StageNegotiation,
	StageNegotiation: StageApproved,
	StageApproved:    StageActive,
	StageActive:      StageCompleted,
}

// IsValid reports whether the stage is one of the seven known values
func (s CollabStage) IsValid() bool {
	switch s {
	case StageDraft, StageReview, StageNegotiation, StageApproved,
		StageActive, StageCompleted, StageArchived:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is allowed
func (s CollabStage) CanTransitionTo(next CollabStage) bool {
	if !next.IsValid() || s == StageArchived {
		return false
	}
	if next == StageArchived {
		return true
	}
	return stageTransitions[s] == next
}

// Representatives holds the named signatory-side representatives
type Representatives struct {
	Company    string `json:"company,omitempty"`
	University string `json:"university,omitempty"`
}

// MoUOverview holds the header fields of the memorandum
type MoUOverview struct {
	Title           string          `json:"title,omitempty"`
	CompanyName     string          `json:"company_name,omitempty"`
	UniversityName  string          `json:"university_name,omitempty"`
	Representatives Representatives `json:"representatives,omitempty"`
	EffectiveDate   string          `json:"effective_date,omitempty"` // ISO date (2006-01-02)
	DurationMonths  int             `json:"duration_months,omitempty"`
}

// MoUScope lists responsibilities per party
type MoUScope struct {
	Company    []string `json:"company,omitempty"`
	University []string `json:"university,omitempty"`
	Joint      []string `json:"joint,omitempty"`
}

// MoUOperations describes how the partnership is run
type MoUOperations struct {
	NodalOfficers      Representatives `json:"nodal_officers,omitempty"`
	ImplementationMode string          `json:"implementation_mode,omitempty"`
	MeetingSchedule    string          `json:"meeting_schedule,omitempty"`
	Reporting          string          `json:"reporting,omitempty"`
}

// MoUKPI is a single measurable deliverable
type MoUKPI struct {
	Area        string `json:"area,omitempty"`
	Deliverable string `json:"deliverable,omitempty"`
	Outcome     string `json:"outcome,omitempty"`
}

// MoULegal holds the boilerplate legal clauses
type MoULegal struct {
	Confidentiality    string `json:"confidentiality,omitempty"`
	FinancialLiability string `json:"financial_liability,omitempty"`
	TermRenewal        string `json:"term_renewal,omitempty"`
	Termination        string `json:"termination,omitempty"`
	Jurisdiction       string `json:"jurisdiction,omitempty"`
}

// MoUSignature records one party's e-signature. Once At is set the
// signature is immutable.
type MoUSignature struct {
	Name  string     `json:"name,omitempty"`
	Title string     `json:"title,omitempty"`
	At    *time.Time `json:"at,omitempty"`
}

// Signed reports whether this party has signed
func (s MoUSignature) Signed() bool {
	return s.At != nil
}

// MoUSignatures is the two-party signature block
type MoUSignatures struct {
	Company    MoUSignature `json:"company,omitempty"`
	University MoUSignature `json:"university,omitempty"`
}

// MoUDocument is the structured memorandum stored as JSONB on the
// collaboration row
type MoUDocument struct {
	Overview   MoUOverview   `json:"overview,omitempty"`
	Objectives []string      `json:"objectives,omitempty"`
	Scope      MoUScope      `json:"scope,omitempty"`
	Benefits   []string      `json:"benefits,omitempty"`
	Operations MoUOperations `json:"operations,omitempty"`
	KPIs       []MoUKPI      `json:"kpis,omitempty"`
	Legal      MoULegal      `json:"legal,omitempty"`
	Signatures MoUSignatures `json:"signatures,omitempty"`
}

// Scan implements the sql.Scanner interface for reading from database
func (m *MoUDocument) Scan(value interface{}) error {
	if value == nil {
		*m = MoUDocument{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			bytes = []byte(str)
		} else {
			return errors.New("failed to unmarshal MoU document value")
		}
	}

	if len(bytes) == 0 {
		*m = MoUDocument{}
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Value implements the driver.Valuer interface for writing to database
func (m MoUDocument) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Collaboration is the root aggregate tracking a company-university
// partnership. CompanyID and UniversityID are immutable after creation.
// Version is a monotonic counter; every write must supply the version it
// read, and a mismatch is rejected so concurrent edits cannot silently
// overwrite each other.
type Collaboration struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	CompanyID    uint           `gorm:"not null;index" json:"company_id"`
	UniversityID uint           `gorm:"not null;index" json:"university_id"`
	Title        string         `gorm:"not null" json:"title"`
	Summary      string         `gorm:"type:text" json:"summary,omitempty"`
	Stage        CollabStage    `gorm:"type:varchar(20);not null;default:'draft'" json:"stage"`
	MoU          MoUDocument    `gorm:"column:mou;type:jsonb" json:"mou"`
	Version      int64          `gorm:"not null;default:1" json:"version"`

	// Relationships
	Company    CompanyProfile    `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"company,omitempty"`
	University UniversityProfile `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"university,omitempty"`
	Tasks      []BoardTask       `gorm:"foreignKey:CollaborationID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	Messages   []Message         `gorm:"foreignKey:CollaborationID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
	Timeline   []TimelineEntry   `gorm:"foreignKey:CollaborationID;constraint:OnDelete:CASCADE" json:"timeline,omitempty"`
}

// IsParticipant reports whether the given profile is one of the two parties
func (c *Collaboration) IsParticipant(companyID, universityID uint) bool {
	return (companyID != 0 && c.CompanyID == companyID) ||
		(universityID != 0 && c.UniversityID == universityID)
}
