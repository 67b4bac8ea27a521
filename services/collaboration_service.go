package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/sahilchouksey/campus-bridge/utils/cache"
	"github.com/sahilchouksey/campus-bridge/utils/validation"
	"gorm.io/gorm"
)

// listCacheTTL bounds the staleness of the collaboration list used by
// polling clients
const listCacheTTL = 30 * time.Second

// Actor identifies the calling party of a collaboration operation
type Actor struct {
	UserID       uint
	Name         string
	Role         string // company or university
	CompanyID    uint   // set when Role == company
	UniversityID uint   // set when Role == university
}

// CollaborationService drives the collaboration aggregate: creation,
// metadata and stage updates, and participant-scoped reads
type CollaborationService struct {
	db       *gorm.DB
	timeline *TimelineRecorder
	cache    *cache.RedisCache // nil disables list caching
}

// NewCollaborationService creates a new collaboration service
func NewCollaborationService(db *gorm.DB, redisCache *cache.RedisCache) *CollaborationService {
	return &CollaborationService{
		db:       db,
		timeline: NewTimelineRecorder(db),
		cache:    redisCache,
	}
}

// Timeline exposes the recorder shared with the other collaboration services
func (s *CollaborationService) Timeline() *TimelineRecorder {
	return s.timeline
}

// ResolveActor loads the caller's linked profile. Callers without a
// company or university profile cannot touch collaborations.
func (s *CollaborationService) ResolveActor(ctx context.Context, user *model.User) (*Actor, error) {
	actor := &Actor{UserID: user.ID, Name: user.Name, Role: user.Role}

	switch user.Role {
	case model.RoleCompany:
		var profile model.CompanyProfile
		if err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNoProfile
			}
			return nil, err
		}
		actor.CompanyID = profile.ID
		actor.Name = profile.Name
	case model.RoleUniversity:
		var profile model.UniversityProfile
		if err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNoProfile
			}
			return nil, err
		}
		actor.UniversityID = profile.ID
		actor.Name = profile.Name
	case model.RoleAdmin:
		// Admins act without a profile and see every collaboration
	default:
		return nil, ErrNoProfile
	}

	return actor, nil
}

// StartRequest carries the fields to open a collaboration
type StartRequest struct {
	Title       string
	Counterpart string // counterpart account email or profile name
	Summary     string
}

// Start creates a collaboration between the caller's profile and the
// counterpart resolved from the other side. New collaborations begin in
// the draft stage with an empty board, message log and MoU.
func (s *CollaborationService) Start(ctx context.Context, actor *Actor, req StartRequest) (*model.Collaboration, error) {
	title := validation.SanitizeString(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	collab := model.Collaboration{
		Title:   title,
		Summary: validation.StripHTML(req.Summary),
		Stage:   model.StageDraft,
		Version: 1,
	}

	switch actor.Role {
	case model.RoleCompany:
		collab.CompanyID = actor.CompanyID
		university, err := s.findUniversity(ctx, req.Counterpart)
		if err != nil {
			return nil, err
		}
		collab.UniversityID = university.ID
	case model.RoleUniversity:
		collab.UniversityID = actor.UniversityID
		company, err := s.findCompany(ctx, req.Counterpart)
		if err != nil {
			return nil, err
		}
		collab.CompanyID = company.ID
	default:
		return nil, ErrSameParty
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&collab).Error; err != nil {
			return err
		}
		return s.timeline.Record(ctx, tx, collab.ID, model.TimelineCreated, actor.Name,
			fmt.Sprintf("Collaboration %q started", collab.Title), nil)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return s.Get(ctx, actor, collab.ID)
}

// findUniversity resolves a counterpart university by account email,
// contact email or profile name
func (s *CollaborationService) findUniversity(ctx context.Context, counterpart string) (*model.UniversityProfile, error) {
	var profile model.UniversityProfile
	err := s.db.WithContext(ctx).
		Joins("JOIN users ON users.id = university_profiles.user_id").
		Where("users.email = ? OR university_profiles.contact_email = ? OR university_profiles.name = ?",
			counterpart, counterpart, counterpart).
		First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCounterpartNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// findCompany resolves a counterpart company by account email, contact
// email or profile name
func (s *CollaborationService) findCompany(ctx context.Context, counterpart string) (*model.CompanyProfile, error) {
	var profile model.CompanyProfile
	err := s.db.WithContext(ctx).
		Joins("JOIN users ON users.id = company_profiles.user_id").
		Where("users.email = ? OR company_profiles.contact_email = ? OR company_profiles.name = ?",
			counterpart, counterpart, counterpart).
		First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCounterpartNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// CollaborationSummary is the list-view projection of a collaboration
type CollaborationSummary struct {
	ID             uint              `json:"id"`
	Title          string            `json:"title"`
	Stage          model.CollabStage `json:"stage"`
	CompanyName    string            `json:"company_name"`
	UniversityName string            `json:"university_name"`
	Version        int64             `json:"version"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// List returns summaries of the collaborations the actor participates in.
// Results are cached briefly; clients poll this endpoint and tolerate
// staleness up to the TTL.
func (s *CollaborationService) List(ctx context.Context, actor *Actor) ([]CollaborationSummary, error) {
	cacheKey := fmt.Sprintf("collab:list:%s:%d:%d", actor.Role, actor.CompanyID, actor.UniversityID)

	if s.cache != nil {
		var cached []CollaborationSummary
		if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	var collabs []model.Collaboration
	query := s.db.WithContext(ctx).
		Preload("Company").
		Preload("University").
		Order("updated_at DESC")

	switch actor.Role {
	case model.RoleCompany:
		query = query.Where("company_id = ?", actor.CompanyID)
	case model.RoleUniversity:
		query = query.Where("university_id = ?", actor.UniversityID)
	case model.RoleAdmin:
		// Admins see everything
	default:
		return nil, ErrNoProfile
	}

	if err := query.Find(&collabs).Error; err != nil {
		return nil, err
	}

	summaries := make([]CollaborationSummary, 0, len(collabs))
	for _, c := range collabs {
		summaries = append(summaries, CollaborationSummary{
			ID:             c.ID,
			Title:          c.Title,
			Stage:          c.Stage,
			CompanyName:    c.Company.Name,
			UniversityName: c.University.Name,
			Version:        c.Version,
			UpdatedAt:      c.UpdatedAt,
		})
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, summaries, listCacheTTL); err != nil {
			log.Printf("Warning: failed to cache collaboration list: %v", err)
		}
	}

	return summaries, nil
}

// Get returns the full aggregate, scoped to participants (or admins)
func (s *CollaborationService) Get(ctx context.Context, actor *Actor, id uint) (*model.Collaboration, error) {
	var collab model.Collaboration
	err := s.db.WithContext(ctx).
		Preload("Company").
		Preload("University").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("board_tasks.position ASC, board_tasks.id ASC")
		}).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.id ASC")
		}).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("timeline_entries.id ASC")
		}).
		First(&collab, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCollaborationNotFound
		}
		return nil, err
	}

	if err := s.authorize(actor, &collab); err != nil {
		return nil, err
	}

	return &collab, nil
}

// load fetches the bare row and checks participation; used by mutations
func (s *CollaborationService) load(ctx context.Context, tx *gorm.DB, actor *Actor, id uint) (*model.Collaboration, error) {
	var collab model.Collaboration
	if err := tx.WithContext(ctx).First(&collab, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCollaborationNotFound
		}
		return nil, err
	}
	if err := s.authorize(actor, &collab); err != nil {
		return nil, err
	}
	return &collab, nil
}

func (s *CollaborationService) authorize(actor *Actor, collab *model.Collaboration) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	if !collab.IsParticipant(actor.CompanyID, actor.UniversityID) {
		return ErrNotParticipant
	}
	return nil
}

// UpdateMetaRequest is a partial patch of collaboration metadata. Nil
// fields are left untouched. ExpectedVersion must match the version the
// caller read.
type UpdateMetaRequest struct {
	Title           *string
	Summary         *string
	Stage           *model.CollabStage
	MoU             *model.MoUDocument
	ExpectedVersion int64
}

// UpdateMeta applies a partial update to title/summary/stage/mou. Stage
// changes are validated against the transition table; every write bumps
// the version and a stale ExpectedVersion is rejected with
// ErrVersionMismatch so the client can refetch and retry.
func (s *CollaborationService) UpdateMeta(ctx context.Context, actor *Actor, id uint, req UpdateMetaRequest) (*model.Collaboration, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		collab, err := s.load(ctx, tx, actor, id)
		if err != nil {
			return err
		}

		if collab.Version != req.ExpectedVersion {
			return ErrVersionMismatch
		}

		updates := map[string]interface{}{
			"version": collab.Version + 1,
		}

		if req.Title != nil {
			title := validation.SanitizeString(*req.Title)
			if title == "" {
				return ErrEmptyTitle
			}
			if title != collab.Title {
				updates["title"] = title
				s.timeline.RecordBestEffort(ctx, tx, collab.ID, model.TimelineRenamed, actor.Name,
					fmt.Sprintf("Renamed from %q to %q", collab.Title, title), nil)
			}
		}

		if req.Summary != nil {
			updates["summary"] = validation.StripHTML(*req.Summary)
		}

		if req.Stage != nil && *req.Stage != collab.Stage {
			next := *req.Stage
			if !next.IsValid() {
				return ErrInvalidStage
			}
			if !collab.Stage.CanTransitionTo(next) {
				return fmt.Errorf("%w: %s -> %s", ErrStageTransition, collab.Stage, next)
			}
			updates["stage"] = next

			kind := model.TimelineStageChanged
			if next == model.StageArchived {
				kind = model.TimelineArchived
			}
			s.timeline.RecordBestEffort(ctx, tx, collab.ID, kind, actor.Name,
				fmt.Sprintf("Stage changed from %s to %s", collab.Stage, next), map[string]interface{}{
					"from": collab.Stage,
					"to":   next,
				})
		}

		if req.MoU != nil {
			if err := ValidateMoU(req.MoU); err != nil {
				return err
			}
			// The signature block is owned by SignMoU; carry it over so a
			// draft save can never clear or forge a signature.
			mou := *req.MoU
			mou.Signatures = collab.MoU.Signatures
			updates["mou"] = mou
			s.timeline.RecordBestEffort(ctx, tx, collab.ID, model.TimelineMoUUpdated, actor.Name,
				"MoU draft updated", nil)
		}

		// Compare-and-swap on the version column; a concurrent writer
		// makes RowsAffected zero.
		res := tx.Model(&model.Collaboration{}).
			Where("id = ? AND version = ?", collab.ID, req.ExpectedVersion).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionMismatch
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return s.Get(ctx, actor, id)
}

func (s *CollaborationService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "collab:list:*"); err != nil {
		log.Printf("Warning: failed to invalidate collaboration list cache: %v", err)
	}
}
