package services

import (
  "context"
  "encoding/json"
  "sync/atomic"
  "time"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/repos"
  "github.com/onboardly/onboardly-backend/internal/utils"
)

const resumeSweepBatchSize = 5

// SchedulerService runs the two periodic duties: draining candidates whose
// resumes are still unanalyzed, and refreshing master plans. Both are
// stateless sweeps; the database is the only cross-run memory, so a failed
// item is simply retried on a later tick.
type SchedulerService interface {
  Start(ctx context.Context)
  SweepResumes(ctx context.Context)
  SweepMasterPlans(ctx context.Context)
}

type schedulerService struct {
  grok          GrokService
  planTemplate  PlanTemplateService
  candidateRepo repos.CandidateRepo
  configRepo    repos.CodebaseConfigRepo

  resumeInterval time.Duration
  masterInterval time.Duration

  resumeBusy atomic.Bool
  masterBusy atomic.Bool

  log *logger.Logger
}

func NewSchedulerService(
  grok GrokService,
  planTemplate PlanTemplateService,
  candidateRepo repos.CandidateRepo,
  configRepo repos.CodebaseConfigRepo,
  log *logger.Logger,
) SchedulerService {
  serviceLog := log.With("service", "SchedulerService")
  return &schedulerService{
    grok:           grok,
    planTemplate:   planTemplate,
    candidateRepo:  candidateRepo,
    configRepo:     configRepo,
    resumeInterval: time.Duration(utils.GetEnvAsInt("RESUME_SWEEP_SECONDS", 30, log)) * time.Second,
    masterInterval: time.Duration(utils.GetEnvAsInt("MASTER_PLAN_REFRESH_SECONDS", 3600, log)) * time.Second,
    log:            serviceLog,
  }
}

// Start launches both duty loops. They stop when ctx is cancelled.
func (s *schedulerService) Start(ctx context.Context) {
  go s.runLoop(ctx, s.resumeInterval, s.SweepResumes)
  go s.runLoop(ctx, s.masterInterval, s.SweepMasterPlans)
  s.log.Info("Background scheduler started",
    "resume_sweep_seconds", int(s.resumeInterval.Seconds()),
    "master_plan_refresh_seconds", int(s.masterInterval.Seconds()))
}

func (s *schedulerService) runLoop(ctx context.Context, interval time.Duration, sweep func(context.Context)) {
  ticker := time.NewTicker(interval)
  defer ticker.Stop()
  for {
    select {
    case <-ctx.Done():
      return
    case <-ticker.C:
      sweep(ctx)
    }
  }
}

// SweepResumes analyzes up to a batch of pending candidates, sequentially,
// committing per candidate so one failure never rolls back earlier successes.
// Skips the tick entirely if the previous sweep is still in flight.
func (s *schedulerService) SweepResumes(ctx context.Context) {
  if !s.resumeBusy.CompareAndSwap(false, true) {
    s.log.Debug("Resume sweep still running, skipping tick")
    return
  }
  defer s.resumeBusy.Store(false)

  pending, err := s.candidateRepo.ListPendingAnalysis(ctx, nil, resumeSweepBatchSize)
  if err != nil {
    s.log.Error("Failed to list pending candidates", "error", err)
    return
  }
  if len(pending) == 0 {
    return
  }
  s.log.Info("Found candidates with pending resume analysis", "count", len(pending))

  for _, candidate := range pending {
    analysis, err := s.grok.AnalyzeResume(ctx, candidate.ResumeText)
    if err != nil {
      s.log.Error("Failed to analyze resume", "candidate_id", candidate.ID, "error", err)
      continue
    }
    payload, err := json.Marshal(analysis)
    if err != nil {
      s.log.Error("Failed to encode resume analysis", "candidate_id", candidate.ID, "error", err)
      continue
    }
    if err := s.candidateRepo.UpdateResumeAnalysis(ctx, nil, candidate.ID, payload); err != nil {
      s.log.Error("Failed to save resume analysis", "candidate_id", candidate.ID, "error", err)
      continue
    }
    s.log.Info("Completed resume analysis", "candidate_id", candidate.ID)
  }
}

// SweepMasterPlans regenerates the master plan for every configured codebase,
// bumping the version each time. Per-codebase failures are logged and the
// sweep continues.
func (s *schedulerService) SweepMasterPlans(ctx context.Context) {
  if !s.masterBusy.CompareAndSwap(false, true) {
    s.log.Debug("Master plan sweep still running, skipping tick")
    return
  }
  defer s.masterBusy.Store(false)

  codebases, err := s.configRepo.List(ctx, nil)
  if err != nil {
    s.log.Error("Failed to list codebases", "error", err)
    return
  }
  s.log.Info("Starting master plan refresh", "codebases", len(codebases))

  for _, codebase := range codebases {
    plan, err := s.planTemplate.GenerateMasterPlan(ctx, codebase.ID)
    if err != nil {
      s.log.Error("Failed to refresh master plan", "codebase_id", codebase.ID, "error", err)
      continue
    }
    s.log.Info("Master plan updated", "codebase_id", codebase.ID, "plan_id", plan.ID)
  }
  s.log.Info("Master plan refresh completed")
}




