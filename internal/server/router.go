package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

  "github.com/onboardly/onboardly-backend/internal/handlers"
)

type RouterConfig struct {
  HealthcheckHandler *handlers.HealthcheckHandler
  CandidateHandler   *handlers.CandidateHandler
  CodebaseHandler    *handlers.CodebaseHandler
  PlanHandler        *handlers.PlanHandler
  WeeklyHandler      *handlers.WeeklyHandler
  ProgressHandler    *handlers.ProgressHandler
  FilesHandler       *handlers.FilesHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Tracing
  router.Use(otelgin.Middleware("onboardly"))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5173",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)

  api := router.Group("/api")
  {
    // Candidates
    api.POST("/upload-resume", cfg.CandidateHandler.UploadResume)
    api.GET("/candidates", cfg.CandidateHandler.ListCandidates)
    api.GET("/candidate/:candidate_id/status", cfg.CandidateHandler.GetStatus)

    // Codebases
    api.GET("/codebases", cfg.CodebaseHandler.ListCodebases)
    api.POST("/codebases", cfg.CodebaseHandler.AddCodebase)
    api.POST("/analyze-codebase/:codebase_id", cfg.CodebaseHandler.TriggerAnalysis)
    api.GET("/codebase-analysis/:codebase_id", cfg.CodebaseHandler.GetAnalysis)

    // Plans
    api.POST("/generate-plan", cfg.PlanHandler.GeneratePlan)
    api.GET("/plan/:candidate_id", cfg.PlanHandler.GetPlan)
    api.GET("/study-plan/:candidate_id", cfg.PlanHandler.GetStudyPlan)
    api.POST("/generate-master-plan/:codebase_id", cfg.PlanHandler.GenerateMasterPlan)
    api.GET("/master-plan/:codebase_id", cfg.PlanHandler.GetMasterPlan)

    // Weekly content
    api.GET("/week/:candidate_id/:week_number", cfg.WeeklyHandler.GetWeekContent)

    // Progress
    api.POST("/progress/:candidate_id", cfg.ProgressHandler.UpdateProgress)
    api.POST("/progress/:candidate_id/week/:week_number/chapter/:chapter_number/complete", cfg.ProgressHandler.MarkChapterComplete)
    api.POST("/progress/:candidate_id/week/:week_number/task/:task_id/complete", cfg.ProgressHandler.MarkTaskComplete)
    api.GET("/progress/:candidate_id/week/:week_number", cfg.ProgressHandler.GetWeekProgress)
    api.GET("/progress/:candidate_id/overall", cfg.ProgressHandler.GetOverallProgress)

    // Code browser
    api.GET("/codebase/:codebase_id/files", cfg.FilesHandler.ListFiles)
    api.GET("/codebase/:codebase_id/content", cfg.FilesHandler.GetFileContent)
  }

  return router
}




