package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"main/model"
	"main/utils"
)

type NotesRepo struct {
	DB *sql.DB
}

func GetNotesRepo(db *sql.DB) *NotesRepo {
	return &NotesRepo{DB: db}
}

// timeFormat is the canonical timestamp representation in SQLite. The
// fraction is fixed-width (RFC3339Nano drops trailing zeros) so the text
// column sorts lexicographically in chronological order, which the list
// queries rely on. All timestamps are stored in UTC.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// CreateNote inserts a new note and returns it with its assigned id.
func (r *NotesRepo) CreateNote(ctx context.Context, userID, title, content string) (*model.Note, error) {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	now := time.Now().UTC()
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO notes (user_id, title, content, last_updated) VALUES (?, ?, ?, ?)`,
		userID, title, content, now.Format(timeFormat))
	if err != nil {
		utils.TrackError("database", "note_creation_failed")
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		utils.TrackError("database", "note_creation_failed")
		return nil, fmt.Errorf("failed to read note id: %w", err)
	}

	return &model.Note{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Content:     content,
		LastUpdated: now,
	}, nil
}

// GetUserNotes retrieves all notes for a user, most recently updated first.
func (r *NotesRepo) GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, title, content, last_updated FROM notes
		 WHERE user_id = ?
		 ORDER BY last_updated DESC, id DESC`,
		userID)
	if err != nil {
		utils.TrackError("database", "note_fetch_failed")
		return nil, fmt.Errorf("failed to fetch notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			utils.TrackError("database", "note_decode_failed")
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		utils.TrackError("database", "note_fetch_failed")
		return nil, fmt.Errorf("failed to fetch notes: %w", err)
	}
	return notes, nil
}

// GetNote retrieves a specific note. A note owned by a different user is
// reported as not found, same as a missing one.
func (r *NotesRepo) GetNote(ctx context.Context, userID string, noteID int64) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	row := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, title, content, last_updated FROM notes
		 WHERE id = ? AND user_id = ?`,
		noteID, userID)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNoteNotFound
		}
		utils.TrackError("database", "note_fetch_failed")
		return nil, err
	}
	return note, nil
}

// UpdateNote replaces the title and content of a note and refreshes its
// timestamp.
func (r *NotesRepo) UpdateNote(ctx context.Context, userID string, noteID int64, title, content string) (*model.Note, error) {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	now := time.Now().UTC()
	result, err := r.DB.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, last_updated = ?
		 WHERE id = ? AND user_id = ?`,
		title, content, now.Format(timeFormat), noteID, userID)
	if err != nil {
		utils.TrackError("database", "note_update_failed")
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		utils.TrackError("database", "note_update_failed")
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	if affected == 0 {
		utils.TrackError("database", "note_not_found")
		return nil, model.ErrNoteNotFound
	}

	return &model.Note{
		ID:          noteID,
		UserID:      userID,
		Title:       title,
		Content:     content,
		LastUpdated: now,
	}, nil
}

// DeleteNote deletes a specific note.
func (r *NotesRepo) DeleteNote(ctx context.Context, userID string, noteID int64) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND user_id = ?`,
		noteID, userID)
	if err != nil {
		utils.TrackError("database", "note_deletion_failed")
		return fmt.Errorf("failed to delete note: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		utils.TrackError("database", "note_deletion_failed")
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if affected == 0 {
		utils.TrackError("database", "note_not_found")
		return model.ErrNoteNotFound
	}
	return nil
}

// CountUserNotes counts the number of notes for a user.
func (r *NotesRepo) CountUserNotes(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "notes")
	defer timer.ObserveDuration()

	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notes WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		utils.TrackError("database", "note_count_failed")
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*model.Note, error) {
	var note model.Note
	var updated string
	if err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to decode note: %w", err)
	}

	ts, err := time.Parse(timeFormat, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to parse note timestamp: %w", err)
	}
	note.LastUpdated = ts
	return &note, nil
}
