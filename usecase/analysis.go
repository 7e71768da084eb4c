package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

// Batch limits for one analysis run. Recency wins: notes are taken newest
// first until either cap is hit.
const (
	MaxBatchNotes = 10
	MaxBatchChars = 16000
)

type AnalysisService struct {
	NotesRepo *repository.NotesRepo
	LogRepo   *repository.AnalysisLogRepo
	Analyzer  services.ResourceAnalyzer
	Cache     *services.AnalysisLogCache
}

// RunAnalysis performs one full orchestration: select a batch, call the
// analyzer, persist the result. Nothing is persisted on failure, and
// nothing is retried.
func (svc *AnalysisService) RunAnalysis(ctx context.Context, userID, triggerType string) (*model.AnalysisLog, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	if triggerType != model.TriggerManual && triggerType != model.TriggerAutomatic {
		return nil, &model.ValidationError{Field: "trigger_type", Reason: "must be manual or automatic"}
	}

	notes, err := svc.NotesRepo.GetUserNotes(ctx, userID)
	if err != nil {
		utils.TrackAnalysisRun(triggerType, "failure")
		return nil, fmt.Errorf("failed to load notes for analysis: %w", err)
	}

	batch := selectBatch(notes)
	if len(batch) == 0 {
		utils.TrackAnalysisRun(triggerType, "empty")
		return nil, model.ErrNoNotes
	}

	result, err := svc.Analyzer.Analyze(ctx, batch)
	if err != nil {
		utils.TrackAnalysisRun(triggerType, "failure")
		utils.TrackError("analyzer", "analyze_failed")
		return nil, err
	}
	result = services.NormalizeResourceSet(result)

	snapshot := make([]model.NoteRef, len(batch))
	for i, note := range batch {
		snapshot[i] = model.NoteRef{ID: note.ID, Title: note.Title}
	}

	entry, err := svc.LogRepo.Append(ctx, userID, model.AnalysisTypeMentalHealth,
		snapshot, result, triggerType)
	if err != nil {
		utils.TrackAnalysisRun(triggerType, "failure")
		return nil, fmt.Errorf("failed to persist analysis log: %w", err)
	}

	if err := svc.Cache.Invalidate(ctx, userID); err != nil {
		log.Printf("Failed to invalidate analysis log cache for %s: %v", userID, err)
	}

	utils.TrackAnalysisRun(triggerType, "success")
	return entry, nil
}

// ListLogs returns all analysis logs for a user, newest first, through the
// cache when one is configured.
func (svc *AnalysisService) ListLogs(ctx context.Context, userID string) ([]*model.AnalysisLog, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}

	cached, err := svc.Cache.GetUserLogs(ctx, userID)
	if err != nil {
		log.Printf("Analysis log cache read failed for %s: %v", userID, err)
	}
	if cached != nil {
		return cached, nil
	}

	logs, err := svc.LogRepo.GetUserLogs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := svc.Cache.SetUserLogs(ctx, userID, logs); err != nil {
		log.Printf("Analysis log cache write failed for %s: %v", userID, err)
	}
	return logs, nil
}

// GetLog returns a single analysis log for a user.
func (svc *AnalysisService) GetLog(ctx context.Context, userID string, logID int64) (*model.AnalysisLog, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	return svc.LogRepo.GetLog(ctx, userID, logID)
}

// selectBatch takes notes newest-first up to MaxBatchNotes, trimming further
// by a cumulative title+content character budget. The loop stops at the
// first note that would exceed the budget, so a single oversized most-recent
// note yields an empty batch.
func selectBatch(notes []*model.Note) []*model.Note {
	batch := make([]*model.Note, 0, MaxBatchNotes)
	budget := 0
	for _, note := range notes {
		if len(batch) == MaxBatchNotes {
			break
		}
		size := len(note.Title) + len(note.Content)
		if budget+size > MaxBatchChars {
			break
		}
		budget += size
		batch = append(batch, note)
	}
	return batch
}
