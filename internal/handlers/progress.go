package handlers

import (
  "errors"
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/pkg/apperr"
  "github.com/onboardly/onboardly-backend/internal/services"
)

type ProgressHandler struct {
  log         *logger.Logger
  progressSvc services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progressSvc services.ProgressService) *ProgressHandler {
  return &ProgressHandler{
    log:         log.With("handler", "ProgressHandler"),
    progressSvc: progressSvc,
  }
}

type progressUpdateRequest struct {
  WeekNumber  int           `json:"week_number" binding:"required"`
  TaskID      *string       `json:"task_id"`
  QuizAnswers []interface{} `json:"quiz_answers"`
}

// POST /api/progress/:candidate_id
func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
  candidateID, err := uuid.Parse(c.Param("candidate_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_candidate_id", err)
    return
  }
  var req progressUpdateRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  if req.TaskID != nil {
    if _, err := h.progressSvc.MarkTaskComplete(c.Request.Context(), candidateID, req.WeekNumber, *req.TaskID); err != nil {
      RespondAppError(c, err)
      return
    }
  }
  if req.QuizAnswers != nil {
    if _, err := h.progressSvc.SubmitQuizAnswers(c.Request.Context(), candidateID, req.WeekNumber, req.QuizAnswers); err != nil {
      RespondAppError(c, err)
      return
    }
  }

  RespondOK(c, gin.H{"message": "Progress updated successfully"})
}

// POST /api/progress/:candidate_id/week/:week_number/chapter/:chapter_number/complete
func (h *ProgressHandler) MarkChapterComplete(c *gin.Context) {
  candidateID, weekNumber, ok := h.pathIDs(c)
  if !ok {
    return
  }
  chapterNumber, err := strconv.Atoi(c.Param("chapter_number"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_chapter_number", err)
    return
  }

  progress, err := h.progressSvc.MarkChapterComplete(c.Request.Context(), candidateID, weekNumber, chapterNumber)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "message":            "Chapter marked as complete",
    "completed_chapters": progress.CompletedChapters,
  })
}

// POST /api/progress/:candidate_id/week/:week_number/task/:task_id/complete
func (h *ProgressHandler) MarkTaskComplete(c *gin.Context) {
  candidateID, weekNumber, ok := h.pathIDs(c)
  if !ok {
    return
  }

  progress, err := h.progressSvc.MarkTaskComplete(c.Request.Context(), candidateID, weekNumber, c.Param("task_id"))
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "message":         "Task marked as complete",
    "completed_tasks": progress.CompletedTasks,
  })
}

// GET /api/progress/:candidate_id/week/:week_number
// Includes the weighted percent when the week's content exists.
func (h *ProgressHandler) GetWeekProgress(c *gin.Context) {
  candidateID, weekNumber, ok := h.pathIDs(c)
  if !ok {
    return
  }

  progress, err := h.progressSvc.GetWeekProgress(c.Request.Context(), candidateID, weekNumber)
  if err != nil {
    RespondAppError(c, err)
    return
  }

  resp := gin.H{
    "candidate_id":       progress.CandidateID,
    "week_number":        progress.WeekNumber,
    "completed_chapters": progress.CompletedChapters,
    "completed_tasks":    progress.CompletedTasks,
    "quiz_score":         progress.QuizScore,
  }
  if percent, err := h.progressSvc.WeekPercent(c.Request.Context(), candidateID, weekNumber); err == nil {
    resp["percent"] = percent
  } else if !errors.Is(err, apperr.ErrNotFound) {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, resp)
}

// GET /api/progress/:candidate_id/overall
func (h *ProgressHandler) GetOverallProgress(c *gin.Context) {
  candidateID, err := uuid.Parse(c.Param("candidate_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_candidate_id", err)
    return
  }

  percent, err := h.progressSvc.OverallPercent(c.Request.Context(), candidateID)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"candidate_id": candidateID, "percent": percent})
}

func (h *ProgressHandler) pathIDs(c *gin.Context) (uuid.UUID, int, bool) {
  candidateID, err := uuid.Parse(c.Param("candidate_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_candidate_id", err)
    return uuid.Nil, 0, false
  }
  weekNumber, err := strconv.Atoi(c.Param("week_number"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_week_number", err)
    return uuid.Nil, 0, false
  }
  return candidateID, weekNumber, true
}




