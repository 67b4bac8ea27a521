package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/sahilchouksey/campus-bridge/utils/validation"
	"gorm.io/gorm"
)

// MoUService edits and signs the memorandum subdocument of a
// collaboration. Saving replaces the draft fields; signatures are
// set-once per party and survive draft saves untouched.
type MoUService struct {
	db       *gorm.DB
	collabs  *CollaborationService
	timeline *TimelineRecorder
}

// NewMoUService creates a new MoU service
func NewMoUService(db *gorm.DB, collabs *CollaborationService) *MoUService {
	return &MoUService{
		db:       db,
		collabs:  collabs,
		timeline: collabs.Timeline(),
	}
}

// ValidateMoU checks the cross-field invariants the document must hold
// before persisting: a parseable effective date and a positive duration
// when either is present.
func ValidateMoU(mou *model.MoUDocument) error {
	if mou == nil {
		return nil
	}
	if !validation.ValidateISODate(mou.Overview.EffectiveDate) {
		return fmt.Errorf("%w: effective_date must be a date in 2006-01-02 form", ErrInvalidMoU)
	}
	if mou.Overview.DurationMonths < 0 {
		return fmt.Errorf("%w: duration_months must be positive", ErrInvalidMoU)
	}
	return nil
}

// Save replaces the MoU draft, keeping the existing signature block
func (s *MoUService) Save(ctx context.Context, actor *Actor, collabID uint, mou model.MoUDocument, expectedVersion int64) (*model.Collaboration, error) {
	return s.collabs.UpdateMeta(ctx, actor, collabID, UpdateMetaRequest{
		MoU:             &mou,
		ExpectedVersion: expectedVersion,
	})
}

// SignRequest carries a party's signature
type SignRequest struct {
	Name            string
	Title           string
	ExpectedVersion int64
}

// Sign sets the actor's party signature with a server timestamp. A
// party's signature is immutable once set; re-signing returns
// ErrAlreadySigned. The counterpart's block is never touched.
func (s *MoUService) Sign(ctx context.Context, actor *Actor, collabID uint, req SignRequest) (*model.Collaboration, error) {
	name := validation.SanitizeString(req.Name)
	title := validation.SanitizeString(req.Title)
	if name == "" || title == "" {
		return nil, ErrInvalidSignature
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		collab, err := s.collabs.load(ctx, tx, actor, collabID)
		if err != nil {
			return err
		}
		if collab.Version != req.ExpectedVersion {
			return ErrVersionMismatch
		}

		now := time.Now().UTC()
		signature := model.MoUSignature{Name: name, Title: title, At: &now}

		mou := collab.MoU
		switch actor.Role {
		case model.RoleCompany:
			if mou.Signatures.Company.Signed() {
				return ErrAlreadySigned
			}
			mou.Signatures.Company = signature
		case model.RoleUniversity:
			if mou.Signatures.University.Signed() {
				return ErrAlreadySigned
			}
			mou.Signatures.University = signature
		default:
			return ErrNotParticipant
		}

		res := tx.Model(&model.Collaboration{}).
			Where("id = ? AND version = ?", collab.ID, req.ExpectedVersion).
			Updates(map[string]interface{}{
				"mou":     mou,
				"version": req.ExpectedVersion + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionMismatch
		}

		s.timeline.RecordBestEffort(ctx, tx, collabID, model.TimelineMoUSigned, actor.Name,
			fmt.Sprintf("MoU signed by %s (%s)", name, actor.Role), map[string]interface{}{
				"role": actor.Role,
			})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.collabs.Get(ctx, actor, collabID)
}
