package dto

import (
	"main/model"
	"time"
)

type AnalysisLogResponse struct {
	ID                 int64              `json:"id"`
	AnalysisType       string             `json:"analysis_type"`
	NotesAnalyzed      []model.NoteRef    `json:"notes_analyzed"`
	GeneratedResources *model.ResourceSet `json:"generated_resources"`
	CreatedAt          time.Time          `json:"created_at"`
	TriggerType        string             `json:"trigger_type"`
}

// AnalysisRunResponse is returned from the analyze action: the structured
// result plus the id of the log row it was persisted as.
type AnalysisRunResponse struct {
	LogID         int64              `json:"log_id"`
	NotesAnalyzed int                `json:"notes_analyzed"`
	TriggerType   string             `json:"trigger_type"`
	Resources     *model.ResourceSet `json:"resources"`
}

func ToAnalysisLogResponse(entry *model.AnalysisLog) AnalysisLogResponse {
	return AnalysisLogResponse{
		ID:                 entry.ID,
		AnalysisType:       entry.AnalysisType,
		NotesAnalyzed:      entry.NotesAnalyzed,
		GeneratedResources: entry.GeneratedResources,
		CreatedAt:          entry.CreatedAt,
		TriggerType:        entry.TriggerType,
	}
}

func ToAnalysisLogResponses(entries []*model.AnalysisLog) []AnalysisLogResponse {
	responses := make([]AnalysisLogResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToAnalysisLogResponse(entry)
	}
	return responses
}

func ToAnalysisRunResponse(entry *model.AnalysisLog) AnalysisRunResponse {
	return AnalysisRunResponse{
		LogID:         entry.ID,
		NotesAnalyzed: len(entry.NotesAnalyzed),
		TriggerType:   entry.TriggerType,
		Resources:     entry.GeneratedResources,
	}
}
