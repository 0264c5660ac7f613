package handlers

import (
  "encoding/json"
  "net/http"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/services"
  "github.com/onboardly/onboardly-backend/internal/types"
)

type PlanHandler struct {
  log         *logger.Logger
  planSvc     services.LearningPlanService
  templateSvc services.PlanTemplateService
}

func NewPlanHandler(log *logger.Logger, planSvc services.LearningPlanService, templateSvc services.PlanTemplateService) *PlanHandler {
  return &PlanHandler{
    log:         log.With("handler", "PlanHandler"),
    planSvc:     planSvc,
    templateSvc: templateSvc,
  }
}

type generatePlanRequest struct {
  CandidateID     uuid.UUID `json:"candidate_id" binding:"required"`
  CodebaseID      string    `json:"codebase_id" binding:"required"`
  ForceRegenerate bool      `json:"force_regenerate"`
}

type planResponse struct {
  ID              uuid.UUID        `json:"id"`
  CandidateID     uuid.UUID        `json:"candidate_id"`
  CodebaseID      string           `json:"codebase_id"`
  Overview        string           `json:"overview"`
  Recommendations []string         `json:"recommendations,omitempty"`
  Weeks           []types.PlanWeek `json:"weeks"`
  CreatedAt       time.Time        `json:"created_at"`
}

func planResponseFromRow(plan *types.LearningPlan) (*planResponse, error) {
  var planData types.PlanData
  if err := json.Unmarshal(plan.PlanData, &planData); err != nil {
    return nil, err
  }
  return &planResponse{
    ID:              plan.ID,
    CandidateID:     plan.CandidateID,
    CodebaseID:      plan.CodebaseID,
    Overview:        planData.Overview,
    Recommendations: planData.Recommendations,
    Weeks:           planData.Weeks,
    CreatedAt:       plan.CreatedAt,
  }, nil
}

// POST /api/generate-plan
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
  var req generatePlanRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  plan, err := h.planSvc.CreatePlan(c.Request.Context(), req.CandidateID, req.CodebaseID, req.ForceRegenerate)
  if err != nil {
    RespondAppError(c, err)
    return
  }

  resp, err := planResponseFromRow(plan)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, resp)
}

// GET /api/plan/:candidate_id
func (h *PlanHandler) GetPlan(c *gin.Context) {
  candidateID, err := uuid.Parse(c.Param("candidate_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_candidate_id", err)
    return
  }

  plan, err := h.planSvc.GetPlan(c.Request.Context(), candidateID)
  if err != nil {
    RespondAppError(c, err)
    return
  }

  resp, err := planResponseFromRow(plan)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, resp)
}

// GET /api/study-plan/:candidate_id
func (h *PlanHandler) GetStudyPlan(c *gin.Context) {
  candidateID, err := uuid.Parse(c.Param("candidate_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_candidate_id", err)
    return
  }

  studyPlan, err := h.planSvc.GetStudyPlan(c.Request.Context(), candidateID)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, studyPlan)
}

// POST /api/generate-master-plan/:codebase_id
func (h *PlanHandler) GenerateMasterPlan(c *gin.Context) {
  codebaseID := c.Param("codebase_id")
  masterPlan, err := h.templateSvc.GenerateMasterPlan(c.Request.Context(), codebaseID)
  if err != nil {
    RespondAppError(c, err)
    return
  }

  var weeks []types.MasterWeek
  if err := json.Unmarshal(masterPlan.WeeksData, &weeks); err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "message":     "Master plan generated successfully",
    "plan_id":     masterPlan.ID,
    "weeks_count": len(weeks),
  })
}

// GET /api/master-plan/:codebase_id
func (h *PlanHandler) GetMasterPlan(c *gin.Context) {
  masterPlan, err := h.templateSvc.GetMasterPlan(c.Request.Context(), c.Param("codebase_id"))
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "id":           masterPlan.ID,
    "codebase_id":  masterPlan.CodebaseID,
    "version":      masterPlan.Version,
    "overview":     masterPlan.PlanOverview,
    "weeks":        json.RawMessage(masterPlan.WeeksData),
    "generated_at": masterPlan.GeneratedAt,
  })
}




