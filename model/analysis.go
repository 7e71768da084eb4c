package model

import (
	"time"
)

// Trigger types for an analysis run.
const (
	TriggerManual    = "manual"
	TriggerAutomatic = "automatic"
)

// AnalysisTypeMentalHealth is the classification tag written with every log.
const AnalysisTypeMentalHealth = "mental_health_analysis"

// Valid resource categories. Anything else coming back from the analyzer is
// normalized to ResourceTypeAnalysis.
const (
	ResourceTypeArticle   = "article"
	ResourceTypeExercise  = "exercise"
	ResourceTypeTechnique = "technique"
	ResourceTypeTool      = "tool"
	ResourceTypeAnalysis  = "analysis"
)

type Resource struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	URL         *string `json:"url"`
}

// ResourceSet is the structured output of one analyzer run.
type ResourceSet struct {
	Analysis        string     `json:"analysis"`
	Resources       []Resource `json:"resources"`
	Recommendations string     `json:"recommendations"`
}

// AnalysisLog is one immutable record of a completed analysis run.
// Rows are append-only; nothing in the service updates or deletes them.
type AnalysisLog struct {
	ID                 int64        `json:"id"`
	UserID             string       `json:"user_id"`
	AnalysisType       string       `json:"analysis_type"`
	NotesAnalyzed      []NoteRef    `json:"notes_analyzed"`
	GeneratedResources *ResourceSet `json:"generated_resources"`
	CreatedAt          time.Time    `json:"created_at"`
	TriggerType        string       `json:"trigger_type"`
}
