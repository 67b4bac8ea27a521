package services

import (
	"context"
	"testing"

	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessageFixture(t *testing.T) (*MessageService, *CollaborationService, *Actor, *Actor, *model.Collaboration) {
	db := setupTestDB(t)
	companyActor, universityActor := seedParties(t, db)
	collabs := NewCollaborationService(db, nil)
	messages := NewMessageService(db, collabs)
	collab := startCollab(t, collabs, companyActor)
	return messages, collabs, companyActor, universityActor, collab
}

func TestPostMessage(t *testing.T) {
	messages, collabs, companyActor, _, collab := newMessageFixture(t)
	ctx := context.Background()

	msg, err := messages.PostMessage(ctx, companyActor, collab.ID, PostMessageRequest{
		Text: "Sharing the draft agenda for next week.",
	})
	require.NoError(t, err)

	assert.Equal(t, companyActor.UserID, msg.AuthorID)
	assert.Equal(t, companyActor.Name, msg.AuthorName)
	assert.Equal(t, model.RoleCompany, msg.AuthorRole)
	assert.Equal(t, "Sharing the draft agenda for next week.", msg.Text)

	current, err := collabs.Get(ctx, companyActor, collab.ID)
	require.NoError(t, err)
	assert.Contains(t, timelineKinds(current.Timeline), model.TimelineMessagePosted)
}

func TestPostMessageStripsMarkup(t *testing.T) {
	messages, _, companyActor, _, collab := newMessageFixture(t)

	msg, err := messages.PostMessage(context.Background(), companyActor, collab.ID, PostMessageRequest{
		Text: "<script>alert(1)</script>Hello <b>team</b>",
	})
	require.NoError(t, err)
	assert.NotContains(t, msg.Text, "<script>")
	assert.NotContains(t, msg.Text, "<b>")
	assert.Contains(t, msg.Text, "Hello")
}

func TestPostMessageRejectsEmpty(t *testing.T) {
	messages, _, companyActor, _, collab := newMessageFixture(t)
	ctx := context.Background()

	_, err := messages.PostMessage(ctx, companyActor, collab.ID, PostMessageRequest{})
	assert.ErrorIs(t, err, ErrEmptyMessage)

	// Whitespace-only text is empty after sanitization
	_, err = messages.PostMessage(ctx, companyActor, collab.ID, PostMessageRequest{Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)

	// Attachments without URLs do not count either
	_, err = messages.PostMessage(ctx, companyActor, collab.ID, PostMessageRequest{
		Attachments: []model.Attachment{{Name: "ghost.pdf"}},
	})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestPostMessageAttachmentOnly(t *testing.T) {
	messages, _, companyActor, _, collab := newMessageFixture(t)

	msg, err := messages.PostMessage(context.Background(), companyActor, collab.ID, PostMessageRequest{
		Attachments: []model.Attachment{
			{URL: "https://cdn.example.com/mou-draft.pdf"},
		},
	})
	require.NoError(t, err)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "https://cdn.example.com/mou-draft.pdf", msg.Attachments[0].URL)
	assert.Equal(t, "https://cdn.example.com/mou-draft.pdf", msg.Attachments[0].Name,
		"attachment name falls back to its URL")
}

func TestListMessagesInsertionOrder(t *testing.T) {
	messages, _, companyActor, universityActor, collab := newMessageFixture(t)
	ctx := context.Background()

	for _, body := range []string{"first", "second", "third"} {
		actor := companyActor
		if body == "second" {
			actor = universityActor
		}
		_, err := messages.PostMessage(ctx, actor, collab.ID, PostMessageRequest{Text: body})
		require.NoError(t, err)
	}

	log, err := messages.List(ctx, universityActor, collab.ID)
	require.NoError(t, err)
	require.Len(t, log, 3)
	assert.Equal(t, "first", log[0].Text)
	assert.Equal(t, "second", log[1].Text)
	assert.Equal(t, model.RoleUniversity, log[1].AuthorRole)
	assert.Equal(t, "third", log[2].Text)
}
