package handlers

import (
  "encoding/json"
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/services"
)

type WeeklyHandler struct {
  log       *logger.Logger
  weeklySvc services.WeeklyContentService
}

func NewWeeklyHandler(log *logger.Logger, weeklySvc services.WeeklyContentService) *WeeklyHandler {
  return &WeeklyHandler{
    log:       log.With("handler", "WeeklyHandler"),
    weeklySvc: weeklySvc,
  }
}

// GET /api/week/:candidate_id/:week_number
// Materializes the week's content on first access.
func (h *WeeklyHandler) GetWeekContent(c *gin.Context) {
  candidateID, err := uuid.Parse(c.Param("candidate_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_candidate_id", err)
    return
  }
  weekNumber, err := strconv.Atoi(c.Param("week_number"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_week_number", err)
    return
  }

  content, err := h.weeklySvc.GetWeekContent(c.Request.Context(), candidateID, weekNumber)
  if err != nil {
    RespondAppError(c, err)
    return
  }

  RespondOK(c, gin.H{
    "week_number":      content.WeekNumber,
    "reading_material": json.RawMessage(content.ReadingMaterial),
    "coding_tasks":     json.RawMessage(content.CodingTasks),
    "quiz":             json.RawMessage(content.Quiz),
  })
}




