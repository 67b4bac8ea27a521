package services

import (
	"context"
	"testing"

	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartCollaboration(t *testing.T) {
	db := setupTestDB(t)
	companyActor, _ := seedParties(t, db)
	svc := NewCollaborationService(db, nil)
	ctx := context.Background()

	collab, err := svc.Start(ctx, companyActor, StartRequest{
		Title:       "Campus Hiring 2026",
		Counterpart: "Tech University",
		Summary:     "Annual placement drive",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StageDraft, collab.Stage, "new collaborations start in draft")
	assert.Equal(t, int64(1), collab.Version)
	assert.Equal(t, companyActor.CompanyID, collab.CompanyID)
	assert.NotZero(t, collab.UniversityID, "counterpart should be resolved by profile name")
	assert.Empty(t, collab.Tasks)
	assert.Empty(t, collab.Messages)

	// Creation is the first timeline entry
	require.NotEmpty(t, collab.Timeline)
	assert.Equal(t, model.TimelineCreated, collab.Timeline[0].Kind)
}

func TestStartCollaborationResolvesCounterpartByEmail(t *testing.T) {
	db := setupTestDB(t)
	_, universityActor := seedParties(t, db)
	svc := NewCollaborationService(db, nil)
	ctx := context.Background()

	// A university can start too, resolving the company by account email
	collab, err := svc.Start(ctx, universityActor, StartRequest{
		Title:       "Internship MoU",
		Counterpart: "hr@acme.test",
	})
	require.NoError(t, err)
	assert.Equal(t, universityActor.UniversityID, collab.UniversityID)
	assert.NotZero(t, collab.CompanyID)
}

func TestStartCollaborationUnknownCounterpart(t *testing.T) {
	db := setupTestDB(t)
	companyActor, _ := seedParties(t, db)
	svc := NewCollaborationService(db, nil)

	_, err := svc.Start(context.Background(), companyActor, StartRequest{
		Title:       "Campus Hiring 2026",
		Counterpart: "Nowhere University",
	})
	assert.ErrorIs(t, err, ErrCounterpartNotFound)
}

func TestStartCollaborationEmptyTitle(t *testing.T) {
	db := setupTestDB(t)
	companyActor, _ := seedParties(t, db)
	svc := NewCollaborationService(db, nil)

	_, err := svc.Start(context.Background(), companyActor, StartRequest{
		Title:       "   ",
		Counterpart: "Tech University",
	})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestListScopedToParticipants(t *testing.T) {
	db := setupTestDB(t)
	companyActor, universityActor := seedParties(t, db)
	svc := NewCollaborationService(db, nil)
	ctx := context.Background()

	startCollab(t, svc, companyActor)

	// A second company that is not a participant
	otherUser := model.User{Email: "hr@other.test", PasswordHash: "x", Name: "Other HR", Role: model.RoleCompany}
	require.NoError(t, db.Create(&otherUser).Error)
	otherProfile := model.CompanyProfile{UserID: otherUser.ID, Name: "Other Corp"}
	require.NoError(t, db.Create(&otherProfile).Error)
	otherActor := &Actor{UserID: otherUser.ID, Name: otherUser.Name, Role: model.RoleCompany, CompanyID: otherProfile.ID}

	mine, err := svc.List(ctx, companyActor)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, "Campus Hiring 2026", mine[0].Title)
	assert.Equal(t, "Acme Technologies", mine[0].CompanyName)
	assert.Equal(t, "Tech University", mine[0].UniversityName)

	theirs, err := svc.List(ctx, universityActor)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)

	none, err := svc.List(ctx, otherActor)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetRejectsNonParticipant(t *testing.T) {
	db := setupTestDB(t)
	companyActor, _ := seedParties(t, db)
	svc := NewCollaborationService(db, nil)
	ctx := context.Background()

	collab := startCollab(t, svc, companyActor)

	otherUser := model.User{Email: "hr@other.test", PasswordHash: "x", Name: "Other HR", Role: model.RoleCompany}
	require.NoError(t, db.Create(&otherUser).Error)
	otherProfile := model.CompanyProfile{UserID: otherUser.ID, Name: "Other Corp"}
	require.NoError(t, db.Create(&otherProfile).Error)
	otherActor := &Actor{UserID: otherUser.ID, Name: otherUser.Name, Role: model.RoleCompany, CompanyID: otherProfile.ID}

	_, err := svc.Get(ctx, otherActor, collab.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)

	// Admins bypass the participant check
	adminActor := &Actor{UserID: 999, Name: "Admin", Role: model.RoleAdmin}
	_, err = svc.Get(ctx, adminActor, collab.ID)
	assert.NoError(t, err)
}

func TestUpdateMetaRenameBumpsVersion(t *testing.T) {
	db := setupTestDB(t)
	companyActor, _ := seedParties(t, db)
	svc := NewCollaborationService(db, nil)
	ctx := context.Background()

	collab := startCollab(t, svc, companyActor)

	title := "Campus Hiring 2027"
	updated, err := svc.UpdateMeta(ctx, companyActor, collab.ID, UpdateMetaRequest{
		Title:           &title,
		ExpectedVersion: collab.Version,
	})
	require.NoError(t, err)

	assert.Equal(t, "Campus Hiring 2027", updated.Title)
	assert.Equal(t, collab.Version+1, updated.Version)

	kinds := timelineKinds(updated.Timeline)
	assert.Contains(t, kinds, model.TimelineRenamed)
}

func TestUpdateMetaStageTransitions(t *testing.T) {
	db := setupTestDB(t)
	companyActor, _ := seedParties(t, db)
	svc := NewCollaborationService(db, nil)
	ctx := context.Background()

	collab := startCollab(t, svc, companyActor)

	// draft -> review is a legal single step
	review := model.StageReview
	updated, err := svc.UpdateMeta(ctx, companyActor, collab.ID, UpdateMetaRequest{
		Stage:           &review,
		ExpectedVersion: collab.Version,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StageReview, updated.Stage)
	assert.Contains(t, timelineKinds(updated.Timeline), model.TimelineStageChanged)

	// review -> active skips two stages and must be rejected
	active := model.StageActive
	_, err = svc.UpdateMeta(ctx, companyActor, collab.ID, UpdateMetaRequest{
		Stage:           &active,
		ExpectedVersion: updated.Version,
	})
	assert.ErrorIs(t, err, ErrStageTransition)

	// archiving is allowed from any live stage and records its own kind
	archived := model.StageArchived
	updated, err = svc.UpdateMeta(ctx, companyActor, collab.ID, UpdateMetaRequest{
		Stage:           &archived,
		ExpectedVersion: updated.Version,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StageArchived, updated.Stage)
	assert.Contains(t, timelineKinds(updated.Timeline), model.TimelineArchived)

	// archived is terminal
	draft := model.StageDraft
	_, err = svc.UpdateMeta(ctx, companyActor, collab.ID, UpdateMetaRequest{
		Stage:           &draft,
		ExpectedVersion: updated.Version,
	})
	assert.ErrorIs(t, err, ErrStageTransition)
}

func TestUpdateMetaUnknownStage(t *testing.T) {
	db := setupTestDB(t)
	companyActor, _ := seedParties(t, db)
	svc := NewCollaborationService(db, nil)

	collab := startCollab(t, svc, companyActor)

	bogus := model.CollabStage("limbo")
	_, err := svc.UpdateMeta(context.Background(), companyActor, collab.ID, UpdateMetaRequest{
		Stage:           &bogus,
		ExpectedVersion: collab.Version,
	})
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestUpdateMetaVersionMismatch(t *testing.T) {
	db := setupTestDB(t)
	companyActor, _ := seedParties(t, db)
	svc := NewCollaborationService(db, nil)
	ctx := context.Background()

	collab := startCollab(t, svc, companyActor)

	// First writer wins
	title := "Renamed once"
	_, err := svc.UpdateMeta(ctx, companyActor, collab.ID, UpdateMetaRequest{
		Title:           &title,
		ExpectedVersion: collab.Version,
	})
	require.NoError(t, err)

	// Second writer still holds the old version and must be rejected
	stale := "Renamed twice"
	_, err = svc.UpdateMeta(ctx, companyActor, collab.ID, UpdateMetaRequest{
		Title:           &stale,
		ExpectedVersion: collab.Version,
	})
	assert.ErrorIs(t, err, ErrVersionMismatch)

	// The first write survived
	current, err := svc.Get(ctx, companyActor, collab.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed once", current.Title)
}

func timelineKinds(entries []model.TimelineEntry) []model.TimelineKind {
	kinds := make([]model.TimelineKind, 0, len(entries))
	for _, e := range entries {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
