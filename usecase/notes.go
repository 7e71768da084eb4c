package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/utils"
)

// AutoAnalysisThreshold is the note count at which automatic analysis fires.
// It is a one-shot edge trigger: the count must equal the threshold exactly,
// so past it automatic analysis never fires again for that user.
const AutoAnalysisThreshold = 10

// autoAnalysisTimeout bounds a background run. It has to outlast the
// analyzer call, which can itself take minutes.
const autoAnalysisTimeout = 5 * time.Minute

type NotesService struct {
	NotesRepo *repository.NotesRepo
	Analysis  *AnalysisService
}

func validateNoteInput(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return &model.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if len(title) > 200 {
		return &model.ValidationError{Field: "title", Reason: "exceeds maximum length"}
	}
	if strings.TrimSpace(content) == "" {
		return &model.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if len(content) > 50000 {
		return &model.ValidationError{Field: "content", Reason: "exceeds maximum length"}
	}
	return nil
}

// CreateNote validates and persists a new note, then checks the trigger
// policy. When the user's note count lands exactly on the threshold, an
// automatic analysis run is scheduled in the background; its latency and
// failures never reach the caller.
func (svc *NotesService) CreateNote(ctx context.Context, userID, title, content string) (*model.Note, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	if err := validateNoteInput(title, content); err != nil {
		utils.TrackError("validation", "invalid_note_input")
		return nil, err
	}

	note, err := svc.NotesRepo.CreateNote(ctx, userID, title, content)
	if err != nil {
		return nil, err
	}
	utils.TrackNoteOperation("create")

	count, err := svc.NotesRepo.CountUserNotes(ctx, userID)
	if err != nil {
		// The note was created; a failed count only costs the trigger check.
		log.Printf("Trigger policy count failed for %s: %v", userID, err)
		return note, nil
	}

	if count == AutoAnalysisThreshold {
		svc.scheduleAutoAnalysis(userID)
	}

	return note, nil
}

// scheduleAutoAnalysis runs analysis detached from the originating request.
// The goroutine carries its own bounded context; failures are logged and
// counted but never surfaced to the user who created the note.
func (svc *NotesService) scheduleAutoAnalysis(userID string) {
	if svc.Analysis == nil {
		log.Printf("Automatic analysis requested for %s but no analysis service is configured", userID)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), autoAnalysisTimeout)
		defer cancel()

		entry, err := svc.Analysis.RunAnalysis(ctx, userID, model.TriggerAutomatic)
		if err != nil {
			log.Printf("Automatic analysis failed for %s: %v", userID, err)
			return
		}
		log.Printf("Automatic analysis completed for %s: log %d, %d notes",
			userID, entry.ID, len(entry.NotesAnalyzed))
	}()
}

// GetUserNotes returns all notes for a user, most recently updated first.
func (svc *NotesService) GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	return svc.NotesRepo.GetUserNotes(ctx, userID)
}

// GetNote returns a single note for a user.
func (svc *NotesService) GetNote(ctx context.Context, userID string, noteID int64) (*model.Note, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	return svc.NotesRepo.GetNote(ctx, userID, noteID)
}

// UpdateNote replaces both fields of a note and refreshes its timestamp.
func (svc *NotesService) UpdateNote(ctx context.Context, userID string, noteID int64, title, content string) (*model.Note, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	if err := validateNoteInput(title, content); err != nil {
		utils.TrackError("validation", "invalid_note_input")
		return nil, err
	}

	note, err := svc.NotesRepo.UpdateNote(ctx, userID, noteID, title, content)
	if err != nil {
		return nil, err
	}
	utils.TrackNoteOperation("update")
	return note, nil
}

// DeleteNote removes a note permanently.
func (svc *NotesService) DeleteNote(ctx context.Context, userID string, noteID int64) error {
	if userID == "" {
		return errors.New("user ID is required")
	}
	if err := svc.NotesRepo.DeleteNote(ctx, userID, noteID); err != nil {
		return err
	}
	utils.TrackNoteOperation("delete")
	return nil
}
