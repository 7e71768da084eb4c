package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"main/model"
	"main/utils"
)

type AnalysisLogRepo struct {
	DB *sql.DB
}

func GetAnalysisLogRepo(db *sql.DB) *AnalysisLogRepo {
	return &AnalysisLogRepo{DB: db}
}

// Append inserts a new analysis log row. The store is append-only: there is
// no update or delete path.
func (r *AnalysisLogRepo) Append(ctx context.Context, userID, analysisType string, notesAnalyzed []model.NoteRef, result *model.ResourceSet, triggerType string) (*model.AnalysisLog, error) {
	timer := utils.TrackDBOperation("insert", "analysis_logs")
	defer timer.ObserveDuration()

	notesJSON, err := json.Marshal(notesAnalyzed)
	if err != nil {
		utils.TrackError("database", "log_encode_failed")
		return nil, fmt.Errorf("failed to encode notes snapshot: %w", err)
	}
	resourcesJSON, err := json.Marshal(result)
	if err != nil {
		utils.TrackError("database", "log_encode_failed")
		return nil, fmt.Errorf("failed to encode resources: %w", err)
	}

	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO analysis_logs (user_id, analysis_type, notes_analyzed, generated_resources, created_at, trigger_type)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, analysisType, string(notesJSON), string(resourcesJSON), now.Format(timeFormat), triggerType)
	if err != nil {
		utils.TrackError("database", "log_creation_failed")
		return nil, fmt.Errorf("failed to append analysis log: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		utils.TrackError("database", "log_creation_failed")
		return nil, fmt.Errorf("failed to read analysis log id: %w", err)
	}

	return &model.AnalysisLog{
		ID:                 id,
		UserID:             userID,
		AnalysisType:       analysisType,
		NotesAnalyzed:      notesAnalyzed,
		GeneratedResources: result,
		CreatedAt:          now,
		TriggerType:        triggerType,
	}, nil
}

// GetUserLogs retrieves all analysis logs for a user, newest first.
func (r *AnalysisLogRepo) GetUserLogs(ctx context.Context, userID string) ([]*model.AnalysisLog, error) {
	timer := utils.TrackDBOperation("find", "analysis_logs")
	defer timer.ObserveDuration()

	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, analysis_type, notes_analyzed, generated_resources, created_at, trigger_type
		 FROM analysis_logs
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		utils.TrackError("database", "log_fetch_failed")
		return nil, fmt.Errorf("failed to fetch analysis logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*model.AnalysisLog, 0)
	for rows.Next() {
		entry, err := scanAnalysisLog(rows)
		if err != nil {
			utils.TrackError("database", "log_decode_failed")
			return nil, err
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		utils.TrackError("database", "log_fetch_failed")
		return nil, fmt.Errorf("failed to fetch analysis logs: %w", err)
	}
	return logs, nil
}

// GetLog retrieves a specific analysis log, owner-scoped the same way as
// NotesRepo.GetNote.
func (r *AnalysisLogRepo) GetLog(ctx context.Context, userID string, logID int64) (*model.AnalysisLog, error) {
	timer := utils.TrackDBOperation("find", "analysis_logs")
	defer timer.ObserveDuration()

	row := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, analysis_type, notes_analyzed, generated_resources, created_at, trigger_type
		 FROM analysis_logs
		 WHERE id = ? AND user_id = ?`,
		logID, userID)

	entry, err := scanAnalysisLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrLogNotFound
		}
		utils.TrackError("database", "log_fetch_failed")
		return nil, err
	}
	return entry, nil
}

func scanAnalysisLog(row rowScanner) (*model.AnalysisLog, error) {
	var entry model.AnalysisLog
	var notesJSON, resourcesJSON, createdAt string
	err := row.Scan(&entry.ID, &entry.UserID, &entry.AnalysisType,
		&notesJSON, &resourcesJSON, &createdAt, &entry.TriggerType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to decode analysis log: %w", err)
	}

	if err := json.Unmarshal([]byte(notesJSON), &entry.NotesAnalyzed); err != nil {
		return nil, fmt.Errorf("failed to decode notes snapshot: %w", err)
	}
	var resources model.ResourceSet
	if err := json.Unmarshal([]byte(resourcesJSON), &resources); err != nil {
		return nil, fmt.Errorf("failed to decode resources: %w", err)
	}
	entry.GeneratedResources = &resources

	ts, err := time.Parse(timeFormat, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log timestamp: %w", err)
	}
	entry.CreatedAt = ts
	return &entry, nil
}
