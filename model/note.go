package model

import (
	"time"
)

type Note struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title" binding:"required"`
	Content     string    `json:"content" binding:"required"`
	LastUpdated time.Time `json:"last_updated"`
}

// NoteRef is the denormalized {id, title} snapshot stored with an analysis
// log. It is a value copy, not a foreign key: editing or deleting the
// underlying note leaves past logs untouched.
type NoteRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}
