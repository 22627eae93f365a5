package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"selpkm/internal/contextutil"
	"selpkm/internal/storage"
)

// MaxCaptureNameLength is the longest note name, in runes, a capture produces.
const MaxCaptureNameLength = 80

// CaptureResult describes the note created by a capture.
type CaptureResult struct {
	NoteID      int64
	ContainerID int64
	Name        string
	// InboxCreated is set when the inbox container did not exist yet.
	InboxCreated bool
}

// CaptureService stores free-form ideas as notes in an inbox container.
type CaptureService interface {
	// Capture stores text as a new note in the inbox.
	Capture(ctx context.Context, text string) (CaptureResult, error)
}

// captureService implements CaptureService.
type captureService struct {
	containers storage.ContainerStore
	notes      storage.NoteStore
	inbox      string
}

// NewCaptureService creates a new CaptureService writing to the container
// named inbox.
func NewCaptureService(containers storage.ContainerStore, notes storage.NoteStore, inbox string) CaptureService {
	return &captureService{
		containers: containers,
		notes:      notes,
		inbox:      inbox,
	}
}

// Capture stores text in the inbox, creating the inbox on first use. The
// note is named after the first non-empty line; the full text becomes the
// description when it says more than the name.
func (s *captureService) Capture(ctx context.Context, text string) (CaptureResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	text = strings.TrimSpace(text)
	if text == "" {
		logger.WarnContext(ctx, "empty capture text")
		return CaptureResult{}, &ValidationError{
			Field:   "text",
			Message: "cannot be empty",
		}
	}

	name := CaptureName(text)
	var description *string
	if name != text {
		description = &text
	}

	inboxID, created, err := s.ensureInbox(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to resolve inbox", "inbox", s.inbox, "error", err)
		return CaptureResult{}, WrapError(err, "failed to resolve inbox")
	}

	noteID, err := s.notes.AddNote(ctx, name, description, storage.ByID(inboxID))
	if err != nil {
		logger.ErrorContext(ctx, "failed to store capture", "error", err)
		return CaptureResult{}, WrapError(err, "failed to store capture")
	}

	logger.InfoContext(ctx, "captured note", "note_id", noteID, "inbox", s.inbox, "text_length", len(text))
	return CaptureResult{
		NoteID:       noteID,
		ContainerID:  inboxID,
		Name:         name,
		InboxCreated: created,
	}, nil
}

func (s *captureService) ensureInbox(ctx context.Context) (id int64, created bool, err error) {
	c, err := s.containers.GetContainer(ctx, storage.ByName(s.inbox))
	if err == nil {
		return c.ID, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return 0, false, err
	}

	id, err = s.containers.AddContainer(ctx, s.inbox, storage.Selector{})
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, storage.ErrNameExists) {
		return 0, false, err
	}

	// Someone else created it in between.
	c, err = s.containers.GetContainer(ctx, storage.ByName(s.inbox))
	if err != nil {
		return 0, false, err
	}
	return c.ID, false, nil
}

// CaptureName returns the first non-empty line of text, trimmed and cut to
// MaxCaptureNameLength runes.
func CaptureName(text string) string {
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > MaxCaptureNameLength {
			line = strings.TrimSpace(string([]rune(line)[:MaxCaptureNameLength]))
		}
		return line
	}
	return ""
}
