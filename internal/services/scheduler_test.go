package services

import (
  "context"
  "encoding/json"
  "testing"
  "time"

  "gorm.io/gorm"

  "github.com/onboardly/onboardly-backend/internal/repos"
  "github.com/onboardly/onboardly-backend/internal/types"
)

type schedulerFixture struct {
  gdb           *gorm.DB
  grok          *fakeGrok
  svc           *schedulerService
  candidateRepo repos.CandidateRepo
  configRepo    repos.CodebaseConfigRepo
  masterRepo    repos.MasterPlanRepo
}

func newSchedulerFixture(t *testing.T, grok *fakeGrok) *schedulerFixture {
  t.Helper()
  gdb := newTestDB(t)
  log := newTestLogger(t)

  candidateRepo := repos.NewCandidateRepo(gdb, log)
  configRepo := repos.NewCodebaseConfigRepo(gdb, log)
  analysisRepo := repos.NewCodebaseAnalysisRepo(gdb, log)
  masterRepo := repos.NewMasterPlanRepo(gdb, log)
  template := NewPlanTemplateService(grok, masterRepo, analysisRepo, log)

  svc := &schedulerService{
    grok:           grok,
    planTemplate:   template,
    candidateRepo:  candidateRepo,
    configRepo:     configRepo,
    resumeInterval: time.Second,
    masterInterval: time.Second,
    log:            log,
  }
  return &schedulerFixture{gdb: gdb, grok: grok, svc: svc, candidateRepo: candidateRepo, configRepo: configRepo, masterRepo: masterRepo}
}

func (f *schedulerFixture) seedCandidate(t *testing.T, email string, analyzed bool) *types.Candidate {
  t.Helper()
  candidate := &types.Candidate{Name: "C", Email: email, ResumeText: "resume for " + email}
  if analyzed {
    candidate.ResumeAnalysis = []byte(`{"background": "done"}`)
  }
  if err := f.candidateRepo.Create(context.Background(), nil, candidate); err != nil {
    t.Fatalf("failed to seed candidate: %v", err)
  }
  return candidate
}

func TestSweepResumes_AnalyzesPendingCandidates(t *testing.T) {
  grok := &fakeGrok{resumeAnalysis: &types.ResumeAnalysis{Background: "storage", ExperienceLevel: "senior"}}
  fx := newSchedulerFixture(t, grok)
  pending := fx.seedCandidate(t, "pending@example.com", false)
  fx.seedCandidate(t, "done@example.com", true)

  fx.svc.SweepResumes(context.Background())

  if grok.resumeCalls != 1 {
    t.Fatalf("expected 1 analysis call, got %d", grok.resumeCalls)
  }
  row, err := fx.candidateRepo.GetByID(context.Background(), nil, pending.ID)
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  var analysis types.ResumeAnalysis
  if err := json.Unmarshal(row.ResumeAnalysis, &analysis); err != nil {
    t.Fatalf("failed to decode analysis: %v", err)
  }
  if analysis.Background != "storage" {
    t.Fatalf("unexpected analysis: %#v", analysis)
  }

  // A second sweep finds nothing pending.
  fx.svc.SweepResumes(context.Background())
  if grok.resumeCalls != 1 {
    t.Fatalf("expected no further calls, got %d", grok.resumeCalls)
  }
}

func TestSweepResumes_FailureLeavesCandidatePending(t *testing.T) {
  grok := &fakeGrok{resumeErr: errBoom}
  fx := newSchedulerFixture(t, grok)
  pending := fx.seedCandidate(t, "pending@example.com", false)

  fx.svc.SweepResumes(context.Background())

  row, err := fx.candidateRepo.GetByID(context.Background(), nil, pending.ID)
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if len(row.ResumeAnalysis) != 0 {
    t.Fatalf("expected candidate still pending")
  }

  // The failed candidate is retried on the next tick.
  grok.resumeErr = nil
  fx.svc.SweepResumes(context.Background())
  row, err = fx.candidateRepo.GetByID(context.Background(), nil, pending.ID)
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if len(row.ResumeAnalysis) == 0 {
    t.Fatalf("expected retry to succeed")
  }
}

func TestSweepResumes_SkipsTickWhileBusy(t *testing.T) {
  grok := &fakeGrok{}
  fx := newSchedulerFixture(t, grok)
  fx.seedCandidate(t, "pending@example.com", false)

  fx.svc.resumeBusy.Store(true)
  fx.svc.SweepResumes(context.Background())
  if grok.resumeCalls != 0 {
    t.Fatalf("expected busy sweep to skip, got %d calls", grok.resumeCalls)
  }

  fx.svc.resumeBusy.Store(false)
  fx.svc.SweepResumes(context.Background())
  if grok.resumeCalls != 1 {
    t.Fatalf("expected sweep after flag cleared, got %d calls", grok.resumeCalls)
  }
}

func TestSweepMasterPlans_RefreshesEveryCodebaseAndContinuesOnFailure(t *testing.T) {
  grok := &fakeGrok{
    overview: "o",
    weeks:    []types.WeekPlan{{WeekNumber: 1, Title: "Week 1"}},
  }
  fx := newSchedulerFixture(t, grok)

  for _, id := range []string{"rocksdb", "redis"} {
    err := fx.configRepo.Upsert(context.Background(), nil, &types.CodebaseConfig{
      ID:            id,
      Name:          id,
      RepositoryURL: "https://github.com/example/" + id,
    })
    if err != nil {
      t.Fatalf("failed to seed config: %v", err)
    }
  }
  // Only rocksdb has an analysis; redis fails precursor and is skipped.
  seedAnalysis(t, fx.gdb, "rocksdb")

  fx.svc.SweepMasterPlans(context.Background())

  plan, err := fx.masterRepo.GetLatestByCodebaseID(context.Background(), nil, "rocksdb")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if plan.Version != 1 {
    t.Fatalf("unexpected version: %d", plan.Version)
  }

  // The sweep regenerates unconditionally, bumping the version.
  fx.svc.SweepMasterPlans(context.Background())
  plan, err = fx.masterRepo.GetLatestByCodebaseID(context.Background(), nil, "rocksdb")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if plan.Version != 2 {
    t.Fatalf("expected version bump, got %d", plan.Version)
  }
}




