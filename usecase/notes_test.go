package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"main/model"
)

// waitFor polls until the condition holds or the deadline passes. Used to
// observe background analysis runs without exposing their goroutine.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestCreateNoteValidation(t *testing.T) {
	notesService, _ := newTestServices(t, &stubAnalyzer{})
	ctx := context.Background()

	tests := []struct {
		name    string
		title   string
		content string
	}{
		{"EmptyTitle", "", "content"},
		{"WhitespaceTitle", "   ", "content"},
		{"EmptyContent", "title", ""},
		{"WhitespaceContent", "title", "  \n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := notesService.CreateNote(ctx, "u1", tt.title, tt.content)
			var validationErr *model.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}

	t.Run("NothingPersistedOnValidationError", func(t *testing.T) {
		count, err := notesService.NotesRepo.CountUserNotes(ctx, "u1")
		if err != nil {
			t.Fatal("count failed", err)
		}
		if count != 0 {
			t.Errorf("expected no persisted notes, got %d", count)
		}
	})
}

func TestAutomaticTrigger(t *testing.T) {
	ctx := context.Background()

	t.Run("FiresExactlyAtThreshold", func(t *testing.T) {
		analyzer := &stubAnalyzer{}
		notesService, analysisService := newTestServices(t, analyzer)

		// Notes 1..9: no trigger.
		for i := 1; i < AutoAnalysisThreshold; i++ {
			if _, err := notesService.CreateNote(ctx, "u1", fmt.Sprintf("note %d", i), "short content"); err != nil {
				t.Fatal("create note failed", err)
			}
		}
		if analyzer.callCount() != 0 {
			t.Fatalf("no analysis should run before the threshold, got %d calls", analyzer.callCount())
		}

		// The 10th note schedules exactly one automatic run.
		if _, err := notesService.CreateNote(ctx, "u1", "note 10", "short content"); err != nil {
			t.Fatal("create note failed", err)
		}

		ok := waitFor(t, 2*time.Second, func() bool {
			logs, err := analysisService.ListLogs(ctx, "u1")
			return err == nil && len(logs) == 1
		})
		if !ok {
			t.Fatal("automatic analysis never produced a log")
		}

		logs, err := analysisService.ListLogs(ctx, "u1")
		if err != nil {
			t.Fatal("list logs failed", err)
		}
		if logs[0].TriggerType != model.TriggerAutomatic {
			t.Errorf("expected automatic trigger, got %q", logs[0].TriggerType)
		}
		if len(logs[0].NotesAnalyzed) != 10 {
			t.Errorf("expected 10 notes in snapshot, got %d", len(logs[0].NotesAnalyzed))
		}
		if logs[0].NotesAnalyzed[0].Title != "note 10" {
			t.Errorf("snapshot should be newest-first, got %+v", logs[0].NotesAnalyzed[0])
		}
		if analyzer.callCount() != 1 {
			t.Errorf("expected exactly one analyzer call, got %d", analyzer.callCount())
		}
	})

	t.Run("NeverFiresPastThreshold", func(t *testing.T) {
		analyzer := &stubAnalyzer{}
		notesService, analysisService := newTestServices(t, analyzer)

		for i := 1; i <= AutoAnalysisThreshold+3; i++ {
			if _, err := notesService.CreateNote(ctx, "u2", fmt.Sprintf("note %d", i), "short content"); err != nil {
				t.Fatal("create note failed", err)
			}
		}

		waitFor(t, 2*time.Second, func() bool {
			logs, err := analysisService.ListLogs(ctx, "u2")
			return err == nil && len(logs) == 1
		})
		// Give any extra (buggy) runs a moment to land before asserting.
		time.Sleep(50 * time.Millisecond)

		logs, err := analysisService.ListLogs(ctx, "u2")
		if err != nil {
			t.Fatal("list logs failed", err)
		}
		if len(logs) != 1 {
			t.Fatalf("expected exactly one automatic log ever, got %d", len(logs))
		}
		if analyzer.callCount() != 1 {
			t.Errorf("expected exactly one analyzer call, got %d", analyzer.callCount())
		}
	})

	t.Run("BackgroundFailureDoesNotAffectCreate", func(t *testing.T) {
		analyzer := &stubAnalyzer{err: &model.AnalyzerError{Op: "api call", Err: errors.New("provider down")}}
		notesService, analysisService := newTestServices(t, analyzer)

		var lastErr error
		for i := 1; i <= AutoAnalysisThreshold; i++ {
			_, lastErr = notesService.CreateNote(ctx, "u3", fmt.Sprintf("note %d", i), "short content")
			if lastErr != nil {
				t.Fatal("create note failed", lastErr)
			}
		}

		waitFor(t, 2*time.Second, func() bool {
			return analyzer.callCount() == 1
		})

		logs, err := analysisService.ListLogs(ctx, "u3")
		if err != nil {
			t.Fatal("list logs failed", err)
		}
		if len(logs) != 0 {
			t.Errorf("failed automatic run must not persist a log, got %d", len(logs))
		}

		count, err := notesService.NotesRepo.CountUserNotes(ctx, "u3")
		if err != nil {
			t.Fatal("count failed", err)
		}
		if count != AutoAnalysisThreshold {
			t.Errorf("all notes should have been created, got %d", count)
		}
	})
}

func TestUpdateNoteMovesToFront(t *testing.T) {
	notesService, _ := newTestServices(t, &stubAnalyzer{})
	ctx := context.Background()

	var targetID int64
	for i := 1; i <= 5; i++ {
		note, err := notesService.CreateNote(ctx, "u1", fmt.Sprintf("note %d", i), "content")
		if err != nil {
			t.Fatal("create note failed", err)
		}
		if i == 2 {
			targetID = note.ID
		}
		time.Sleep(2 * time.Millisecond)
	}

	before, err := notesService.GetNote(ctx, "u1", targetID)
	if err != nil {
		t.Fatal("get note failed", err)
	}
	time.Sleep(2 * time.Millisecond)

	updated, err := notesService.UpdateNote(ctx, "u1", targetID, "X", "new content")
	if err != nil {
		t.Fatal("update note failed", err)
	}
	if updated.Title != "X" {
		t.Errorf("expected updated title, got %q", updated.Title)
	}
	if !updated.LastUpdated.After(before.LastUpdated) {
		t.Error("expected last_updated strictly greater after update")
	}

	notes, err := notesService.GetUserNotes(ctx, "u1")
	if err != nil {
		t.Fatal("list failed", err)
	}
	if notes[0].ID != targetID {
		t.Error("updated note should be first in the list")
	}
}
