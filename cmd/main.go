package main

import (
  "context"
  "fmt"
  "os"

  "github.com/onboardly/onboardly-backend/internal/db"
  "github.com/onboardly/onboardly-backend/internal/handlers"
  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/observability"
  "github.com/onboardly/onboardly-backend/internal/repos"
  "github.com/onboardly/onboardly-backend/internal/server"
  "github.com/onboardly/onboardly-backend/internal/services"
  "github.com/onboardly/onboardly-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Tracing
  otelShutdown := observability.Init(context.Background(), log, observability.Config{
    ServiceName: "onboardly-backend",
    Environment: logMode,
  })
  if otelShutdown != nil {
    defer func() {
      if err := otelShutdown(context.Background()); err != nil {
        log.Warn("Trace shutdown failed", "error", err)
      }
    }()
  }

  // DB
  dbService, err := db.NewService(log)
  if err != nil {
    log.Error("Database init failed", "error", err)
    os.Exit(1)
  }
  if err = dbService.AutoMigrateAll(); err != nil {
    log.Error("Auto migration failed", "error", err)
    os.Exit(1)
  }
  theDB := dbService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  candidateRepo := repos.NewCandidateRepo(theDB, log)
  configRepo := repos.NewCodebaseConfigRepo(theDB, log)
  analysisRepo := repos.NewCodebaseAnalysisRepo(theDB, log)
  masterPlanRepo := repos.NewMasterPlanRepo(theDB, log)
  learningPlanRepo := repos.NewLearningPlanRepo(theDB, log)
  weeklyContentRepo := repos.NewWeeklyContentRepo(theDB, log)
  progressRepo := repos.NewProgressRepo(theDB, log)

  // Seed pre-configured codebases
  seedPath := utils.GetEnv("CODEBASES_CONFIG", "codebases.yaml", log)
  if err := services.SeedCodebases(context.Background(), seedPath, configRepo, log); err != nil {
    log.Error("Codebase seeding failed", "error", err)
    os.Exit(1)
  }

  // Services
  log.Info("Setting up Services from main...")
  grokClient := services.NewGrokClient(log)
  grokService := services.NewGrokService(grokClient, log)
  analyzerService := services.NewCodebaseAnalyzerService(grokService, configRepo, analysisRepo, log)
  planTemplateService := services.NewPlanTemplateService(grokService, masterPlanRepo, analysisRepo, log)
  learningPlanService := services.NewLearningPlanService(theDB, grokService, planTemplateService, candidateRepo, configRepo, analysisRepo, learningPlanRepo, weeklyContentRepo, log)
  weeklyContentService := services.NewWeeklyContentService(grokService, candidateRepo, learningPlanRepo, weeklyContentRepo, masterPlanRepo, analysisRepo, log)
  progressService := services.NewProgressService(progressRepo, learningPlanRepo, weeklyContentRepo, log)
  candidateService := services.NewCandidateService(candidateRepo, log)
  fileService := services.NewFileService(log)

  // Scheduler
  schedulerService := services.NewSchedulerService(grokService, planTemplateService, candidateRepo, configRepo, log)
  schedulerService.Start(context.Background())

  // Handlers
  log.Info("Setting up handlers from main...")
  healthcheckHandler := handlers.NewHealthcheckHandler()
  candidateHandler := handlers.NewCandidateHandler(log, candidateService)
  codebaseHandler := handlers.NewCodebaseHandler(log, configRepo, analyzerService)
  planHandler := handlers.NewPlanHandler(log, learningPlanService, planTemplateService)
  weeklyHandler := handlers.NewWeeklyHandler(log, weeklyContentService)
  progressHandler := handlers.NewProgressHandler(log, progressService)
  filesHandler := handlers.NewFilesHandler(log, fileService, configRepo)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    HealthcheckHandler: healthcheckHandler,
    CandidateHandler:   candidateHandler,
    CodebaseHandler:    codebaseHandler,
    PlanHandler:        planHandler,
    WeeklyHandler:      weeklyHandler,
    ProgressHandler:    progressHandler,
    FilesHandler:       filesHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}




