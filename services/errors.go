package services

import "errors"

// Sentinel errors returned by the collaboration services. Handlers map
// these onto HTTP statuses with errors.Is.
var (
	// Not-found family
	ErrCollaborationNotFound = errors.New("collaboration not found")
	ErrTaskNotFound          = errors.New("task not found")
	ErrCounterpartNotFound   = errors.New("counterpart account not found")

	// Validation family
	ErrInvalidStage          = errors.New("unknown collaboration stage")
	ErrStageTransition       = errors.New("stage transition not allowed")
	ErrInvalidColumn         = errors.New("unknown board column")
	ErrInvalidAssignee       = errors.New("unknown assignee role")
	ErrEmptyTitle            = errors.New("collaboration title must not be empty")
	ErrEmptyTaskTitle        = errors.New("task title must not be empty")
	ErrEmptyMessage          = errors.New("message must have text or attachments")
	ErrInvalidMoU            = errors.New("invalid MoU document")
	ErrInvalidSignature      = errors.New("signature requires a name and title")
	ErrInvalidUpload         = errors.New("invalid upload")
	ErrSameParty             = errors.New("collaboration requires a company and a university")

	// Forbidden family
	ErrNoProfile      = errors.New("caller has no linked company or university profile")
	ErrNotParticipant = errors.New("caller is not a party of this collaboration")

	// Conflict family
	ErrVersionMismatch = errors.New("collaboration was modified concurrently")
	ErrAlreadySigned   = errors.New("party has already signed the MoU")
)
