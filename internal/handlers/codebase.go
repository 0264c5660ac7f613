package handlers

import (
  "encoding/json"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/repos"
  "github.com/onboardly/onboardly-backend/internal/services"
  "github.com/onboardly/onboardly-backend/internal/types"
)

type CodebaseHandler struct {
  log         *logger.Logger
  configRepo  repos.CodebaseConfigRepo
  analyzerSvc services.CodebaseAnalyzerService
}

func NewCodebaseHandler(log *logger.Logger, configRepo repos.CodebaseConfigRepo, analyzerSvc services.CodebaseAnalyzerService) *CodebaseHandler {
  return &CodebaseHandler{
    log:         log.With("handler", "CodebaseHandler"),
    configRepo:  configRepo,
    analyzerSvc: analyzerSvc,
  }
}

// GET /api/codebases
func (h *CodebaseHandler) ListCodebases(c *gin.Context) {
  codebases, err := h.configRepo.List(c.Request.Context(), nil)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, codebases)
}

type addCodebaseRequest struct {
  ID            string `json:"id" binding:"required"`
  Name          string `json:"name" binding:"required"`
  RepositoryURL string `json:"repository_url" binding:"required"`
  GithubToken   string `json:"github_token"`
}

// POST /api/codebases
// Registers a codebase and kicks off its first analysis inline.
func (h *CodebaseHandler) AddCodebase(c *gin.Context) {
  var req addCodebaseRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  row := &types.CodebaseConfig{
    ID:            req.ID,
    Name:          req.Name,
    RepositoryURL: req.RepositoryURL,
  }
  if req.GithubToken != "" {
    row.GithubToken = &req.GithubToken
  }
  if err := h.configRepo.Upsert(c.Request.Context(), nil, row); err != nil {
    RespondAppError(c, err)
    return
  }

  if _, err := h.analyzerSvc.Refresh(c.Request.Context(), req.ID); err != nil {
    h.log.Warn("Initial codebase analysis failed", "codebase_id", req.ID, "error", err)
  }

  RespondOK(c, gin.H{"message": "Codebase added and analysis started", "codebase_id": req.ID})
}

// POST /api/analyze-codebase/:codebase_id
func (h *CodebaseHandler) TriggerAnalysis(c *gin.Context) {
  codebaseID := c.Param("codebase_id")
  if _, err := h.analyzerSvc.Refresh(c.Request.Context(), codebaseID); err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Analysis triggered", "codebase_id": codebaseID})
}

// GET /api/codebase-analysis/:codebase_id
func (h *CodebaseHandler) GetAnalysis(c *gin.Context) {
  analysis, err := h.analyzerSvc.GetLatest(c.Request.Context(), c.Param("codebase_id"))
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, json.RawMessage(analysis.AnalysisData))
}




