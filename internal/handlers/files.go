package handlers

import (
  "github.com/gin-gonic/gin"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/repos"
  "github.com/onboardly/onboardly-backend/internal/services"
)

type FilesHandler struct {
  log        *logger.Logger
  fileSvc    services.FileService
  configRepo repos.CodebaseConfigRepo
}

func NewFilesHandler(log *logger.Logger, fileSvc services.FileService, configRepo repos.CodebaseConfigRepo) *FilesHandler {
  return &FilesHandler{
    log:        log.With("handler", "FilesHandler"),
    fileSvc:    fileSvc,
    configRepo: configRepo,
  }
}

func (h *FilesHandler) ensureRepo(c *gin.Context, codebaseID string) {
  config, err := h.configRepo.GetByID(c.Request.Context(), nil, codebaseID)
  if err != nil {
    return
  }
  if err := h.fileSvc.EnsureRepo(c.Request.Context(), codebaseID, config.RepositoryURL); err != nil {
    h.log.Warn("Failed to clone codebase for browsing", "codebase_id", codebaseID, "error", err)
  }
}

// GET /api/codebase/:codebase_id/files
func (h *FilesHandler) ListFiles(c *gin.Context) {
  codebaseID := c.Param("codebase_id")
  h.ensureRepo(c, codebaseID)

  files, err := h.fileSvc.ListFiles(codebaseID, c.Query("path"))
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"files": files})
}

// GET /api/codebase/:codebase_id/content
func (h *FilesHandler) GetFileContent(c *gin.Context) {
  codebaseID := c.Param("codebase_id")
  h.ensureRepo(c, codebaseID)

  content, err := h.fileSvc.FileContent(codebaseID, c.Query("path"))
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"content": content})
}




