package handlers

import (
  "io"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/services"
)

type CandidateHandler struct {
  log          *logger.Logger
  candidateSvc services.CandidateService
}

func NewCandidateHandler(log *logger.Logger, candidateSvc services.CandidateService) *CandidateHandler {
  return &CandidateHandler{
    log:          log.With("handler", "CandidateHandler"),
    candidateSvc: candidateSvc,
  }
}

// POST /api/upload-resume
// Multipart upload. The file's bytes are consumed as already-extracted resume
// text; analysis itself happens in the background sweep.
func (h *CandidateHandler) UploadResume(c *gin.Context) {
  fileHeader, err := c.FormFile("file")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "missing_file", err)
    return
  }

  file, err := fileHeader.Open()
  if err != nil {
    RespondError(c, http.StatusBadRequest, "unreadable_file", err)
    return
  }
  defer file.Close()

  contents, err := io.ReadAll(file)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "unreadable_file", err)
    return
  }

  candidate, err := h.candidateSvc.UploadResume(
    c.Request.Context(),
    fileHeader.Filename,
    c.PostForm("name"),
    c.PostForm("email"),
    string(contents),
  )
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, candidate)
}

// GET /api/candidates
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
  candidates, err := h.candidateSvc.List(c.Request.Context())
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, candidates)
}

// GET /api/candidate/:candidate_id/status
func (h *CandidateHandler) GetStatus(c *gin.Context) {
  candidateID, err := uuid.Parse(c.Param("candidate_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_candidate_id", err)
    return
  }

  status, err := h.candidateSvc.GetStatus(c.Request.Context(), candidateID)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, status)
}




