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

type analyzeRequest struct {
	TriggerType string `json:"trigger_type" binding:"omitempty,trigger"`
}

// TriggerAnalysisHandler runs a manual analysis for the calling user. The
// request may carry a trigger_type but anything client-initiated through
// this endpoint is a manual run.
func TriggerAnalysisHandler(c *gin.Context, analysisService *usecase.AnalysisService) {
	var req analyzeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid request body")
			return
		}
	}
	if req.TriggerType == "" {
		req.TriggerType = model.TriggerManual
	}

	userID := c.GetString("user_id")
	entry, err := analysisService.RunAnalysis(c.Request.Context(), userID, req.TriggerType)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	utils.Success(c, dto.ToAnalysisRunResponse(entry))
}

func GetAnalysisLogsHandler(c *gin.Context, analysisService *usecase.AnalysisService) {
	userID := c.GetString("user_id")

	logs, err := analysisService.ListLogs(c.Request.Context(), userID)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	utils.Success(c, dto.ToAnalysisLogResponses(logs))
}

func GetAnalysisLogHandler(c *gin.Context, analysisService *usecase.AnalysisService) {
	logID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid log id")
		return
	}
	userID := c.GetString("user_id")

	entry, err := analysisService.GetLog(c.Request.Context(), userID, logID)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	utils.Success(c, dto.ToAnalysisLogResponse(entry))
}

func respondAnalysisError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	var analyzerErr *model.AnalyzerError
	switch {
	case errors.As(err, &validationErr):
		utils.BadRequest(c, validationErr.Error())
	case errors.Is(err, model.ErrNoNotes):
		utils.UnprocessableEntity(c, "No notes available for analysis")
	case errors.Is(err, model.ErrLogNotFound):
		utils.NotFound(c, "Analysis log not found")
	case errors.As(err, &analyzerErr):
		log.Printf("Analyzer failure: %v", err)
		utils.BadGateway(c, "Analysis provider failed")
	default:
		log.Printf("Analysis operation failed: %v", err)
		utils.InternalError(c, "Internal server error")
	}
}
