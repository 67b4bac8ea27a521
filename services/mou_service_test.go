package services

import (
	"context"
	"testing"

	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMoUFixture(t *testing.T) (*MoUService, *CollaborationService, *Actor, *Actor, *model.Collaboration) {
	db := setupTestDB(t)
	companyActor, universityActor := seedParties(t, db)
	collabs := NewCollaborationService(db, nil)
	mou := NewMoUService(db, collabs)
	collab := startCollab(t, collabs, companyActor)
	return mou, collabs, companyActor, universityActor, collab
}

func TestValidateMoU(t *testing.T) {
	assert.NoError(t, ValidateMoU(nil))
	assert.NoError(t, ValidateMoU(&model.MoUDocument{}))

	ok := model.MoUDocument{
		Overview: model.MoUOverview{EffectiveDate: "2026-09-01", DurationMonths: 24},
	}
	assert.NoError(t, ValidateMoU(&ok))

	badDate := model.MoUDocument{
		Overview: model.MoUOverview{EffectiveDate: "01/09/2026"},
	}
	assert.ErrorIs(t, ValidateMoU(&badDate), ErrInvalidMoU)

	badDuration := model.MoUDocument{
		Overview: model.MoUOverview{DurationMonths: -6},
	}
	assert.ErrorIs(t, ValidateMoU(&badDuration), ErrInvalidMoU)
}

func TestSaveMoUDraft(t *testing.T) {
	mouSvc, _, companyActor, _, collab := newMoUFixture(t)
	ctx := context.Background()

	doc := model.MoUDocument{
		Overview: model.MoUOverview{
			Title:          "Campus Recruitment MoU",
			CompanyName:    "Acme Technologies",
			UniversityName: "Tech University",
			EffectiveDate:  "2026-09-01",
			DurationMonths: 24,
		},
		Objectives: []string{"Structured campus hiring", "Joint skill workshops"},
	}

	updated, err := mouSvc.Save(ctx, companyActor, collab.ID, doc, collab.Version)
	require.NoError(t, err)

	assert.Equal(t, "Campus Recruitment MoU", updated.MoU.Overview.Title)
	assert.Equal(t, 24, updated.MoU.Overview.DurationMonths)
	assert.Len(t, updated.MoU.Objectives, 2)
	assert.Equal(t, collab.Version+1, updated.Version)
	assert.Contains(t, timelineKinds(updated.Timeline), model.TimelineMoUUpdated)
}

func TestSignMoUBothParties(t *testing.T) {
	mouSvc, _, companyActor, universityActor, collab := newMoUFixture(t)
	ctx := context.Background()

	signed, err := mouSvc.Sign(ctx, companyActor, collab.ID, SignRequest{
		Name:            "Jane Doe",
		Title:           "VP Engineering",
		ExpectedVersion: collab.Version,
	})
	require.NoError(t, err)

	assert.True(t, signed.MoU.Signatures.Company.Signed())
	assert.Equal(t, "Jane Doe", signed.MoU.Signatures.Company.Name)
	assert.NotNil(t, signed.MoU.Signatures.Company.At, "signature timestamp is server-set")
	assert.False(t, signed.MoU.Signatures.University.Signed())
	assert.Contains(t, timelineKinds(signed.Timeline), model.TimelineMoUSigned)

	both, err := mouSvc.Sign(ctx, universityActor, collab.ID, SignRequest{
		Name:            "Prof. R. Gupta",
		Title:           "Dean of Placements",
		ExpectedVersion: signed.Version,
	})
	require.NoError(t, err)
	assert.True(t, both.MoU.Signatures.Company.Signed())
	assert.True(t, both.MoU.Signatures.University.Signed())
}

func TestSignMoUImmutable(t *testing.T) {
	mouSvc, _, companyActor, _, collab := newMoUFixture(t)
	ctx := context.Background()

	signed, err := mouSvc.Sign(ctx, companyActor, collab.ID, SignRequest{
		Name:            "Jane Doe",
		Title:           "VP Engineering",
		ExpectedVersion: collab.Version,
	})
	require.NoError(t, err)

	_, err = mouSvc.Sign(ctx, companyActor, collab.ID, SignRequest{
		Name:            "Someone Else",
		Title:           "CEO",
		ExpectedVersion: signed.Version,
	})
	assert.ErrorIs(t, err, ErrAlreadySigned)
}

func TestSignMoURequiresNameAndTitle(t *testing.T) {
	mouSvc, _, companyActor, _, collab := newMoUFixture(t)
	ctx := context.Background()

	_, err := mouSvc.Sign(ctx, companyActor, collab.ID, SignRequest{
		Name:            "",
		Title:           "VP Engineering",
		ExpectedVersion: collab.Version,
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = mouSvc.Sign(ctx, companyActor, collab.ID, SignRequest{
		Name:            "Jane Doe",
		Title:           "  ",
		ExpectedVersion: collab.Version,
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSaveMoUPreservesSignatures(t *testing.T) {
	mouSvc, _, companyActor, _, collab := newMoUFixture(t)
	ctx := context.Background()

	signed, err := mouSvc.Sign(ctx, companyActor, collab.ID, SignRequest{
		Name:            "Jane Doe",
		Title:           "VP Engineering",
		ExpectedVersion: collab.Version,
	})
	require.NoError(t, err)

	// A later draft save carries a forged signature block; it must be ignored
	doc := model.MoUDocument{
		Overview: model.MoUOverview{Title: "Edited after signing"},
		Signatures: model.MoUSignatures{
			University: model.MoUSignature{Name: "Forged", Title: "Forged"},
		},
	}
	updated, err := mouSvc.Save(ctx, companyActor, collab.ID, doc, signed.Version)
	require.NoError(t, err)

	assert.Equal(t, "Edited after signing", updated.MoU.Overview.Title)
	assert.True(t, updated.MoU.Signatures.Company.Signed(), "existing signature survives draft saves")
	assert.Equal(t, "Jane Doe", updated.MoU.Signatures.Company.Name)
	assert.False(t, updated.MoU.Signatures.University.Signed(), "forged signature is dropped")
}

func TestSignMoUVersionMismatch(t *testing.T) {
	mouSvc, _, companyActor, _, collab := newMoUFixture(t)

	_, err := mouSvc.Sign(context.Background(), companyActor, collab.ID, SignRequest{
		Name:            "Jane Doe",
		Title:           "VP Engineering",
		ExpectedVersion: collab.Version + 10,
	})
	assert.ErrorIs(t, err, ErrVersionMismatch)
}
