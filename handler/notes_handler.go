package handler

import (
	"errors"
	"log"
	"strconv"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type noteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func CreateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	userID := c.GetString("user_id")
	note, err := notesService.CreateNote(c.Request.Context(), userID, req.Title, req.Content)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	utils.Created(c, dto.ToNoteResponse(note))
}

func GetUserNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID := c.GetString("user_id")

	notes, err := notesService.GetUserNotes(c.Request.Context(), userID)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponses(notes))
}

func GetNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}
	userID := c.GetString("user_id")

	note, err := notesService.GetNote(c.Request.Context(), userID, noteID)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}
	userID := c.GetString("user_id")

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	note, err := notesService.UpdateNote(c.Request.Context(), userID, noteID, req.Title, req.Content)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func DeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}
	userID := c.GetString("user_id")

	if err := notesService.DeleteNote(c.Request.Context(), userID, noteID); err != nil {
		respondNoteError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Note deleted successfully"})
}

func parseNoteID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid note id")
		return 0, false
	}
	return id, true
}

func respondNoteError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.BadRequest(c, validationErr.Error())
	case errors.Is(err, model.ErrNoteNotFound):
		utils.NotFound(c, "Note not found")
	default:
		log.Printf("Note operation failed: %v", err)
		utils.InternalError(c, "Internal server error")
	}
}
