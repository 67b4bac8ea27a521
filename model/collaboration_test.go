package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollabStageIsValid(t *testing.T) {
	valid := []CollabStage{
		StageDraft, StageReview, StageNegotiation,
		StageApproved, StageActive, StageCompleted, StageArchived,
	}
	for _, stage := range valid {
		assert.True(t, stage.IsValid(), "stage %s should be valid", stage)
	}

	assert.False(t, CollabStage("").IsValid())
	assert.False(t, CollabStage("pending").IsValid())
	assert.False(t, CollabStage("Draft").IsValid())
}

func TestStageTransitionsForward(t *testing.T) {
	// The lifecycle only moves forward, one step at a time
	steps := []CollabStage{
		StageDraft, StageReview, StageNegotiation,
		StageApproved, StageActive, StageCompleted,
	}
	for i := 0; i < len(steps)-1; i++ {
		assert.True(t, steps[i].CanTransitionTo(steps[i+1]),
			"%s -> %s should be allowed", steps[i], steps[i+1])
	}
}

func TestStageTransitionsRejectSkipsAndBackwards(t *testing.T) {
	assert.False(t, StageDraft.CanTransitionTo(StageNegotiation), "skipping review")
	assert.False(t, StageDraft.CanTransitionTo(StageApproved), "skipping two stages")
	assert.False(t, StageReview.CanTransitionTo(StageDraft), "moving backwards")
	assert.False(t, StageActive.CanTransitionTo(StageApproved), "moving backwards")
	assert.False(t, StageDraft.CanTransitionTo(StageDraft), "self transition")
}

func TestStageArchivedFromAnywhere(t *testing.T) {
	for _, stage := range []CollabStage{
		StageDraft, StageReview, StageNegotiation, StageApproved, StageActive,
	} {
		assert.True(t, stage.CanTransitionTo(StageArchived),
			"%s -> archived should be allowed", stage)
	}
}

func TestStageTerminalStates(t *testing.T) {
	for _, next := range []CollabStage{
		StageDraft, StageReview, StageNegotiation,
		StageApproved, StageActive, StageCompleted, StageArchived,
	} {
		assert.False(t, StageArchived.CanTransitionTo(next),
			"archived is terminal, archived -> %s must fail", next)
	}

	// Completed can only be archived
	assert.True(t, StageCompleted.CanTransitionTo(StageArchived))
	assert.False(t, StageCompleted.CanTransitionTo(StageActive))
	assert.False(t, StageCompleted.CanTransitionTo(StageDraft))
}

func TestMoUSignatureSigned(t *testing.T) {
	var sig MoUSignature
	assert.False(t, sig.Signed())

	sig.Name = "Jane Doe"
	assert.False(t, sig.Signed(), "a name without a timestamp is not a signature")

	now := time.Now()
	sig.At = &now
	assert.True(t, sig.Signed())
}

func TestCollaborationIsParticipant(t *testing.T) {
	collab := Collaboration{CompanyID: 7, UniversityID: 11}

	assert.True(t, collab.IsParticipant(7, 0))
	assert.True(t, collab.IsParticipant(0, 11))
	assert.False(t, collab.IsParticipant(8, 0))
	assert.False(t, collab.IsParticipant(0, 12))
	assert.False(t, collab.IsParticipant(0, 0))
}
