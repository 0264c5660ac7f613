package services

import (
  "context"
  "encoding/json"
  "errors"
  "testing"
  "time"

  "gorm.io/gorm"

  "github.com/onboardly/onboardly-backend/internal/pkg/apperr"
  "github.com/onboardly/onboardly-backend/internal/repos"
  "github.com/onboardly/onboardly-backend/internal/types"
)

func seedAnalysis(t *testing.T, gdb *gorm.DB, codebaseID string) {
  t.Helper()
  repo := repos.NewCodebaseAnalysisRepo(gdb, newTestLogger(t))
  err := repo.Create(context.Background(), nil, &types.CodebaseAnalysis{
    CodebaseID:   codebaseID,
    AnalysisData: []byte(`{"architecture": "lsm tree"}`),
    AnalyzedAt:   time.Now().UTC(),
  })
  if err != nil {
    t.Fatalf("failed to seed analysis: %v", err)
  }
}

func newTemplateService(t *testing.T, gdb *gorm.DB, grok GrokService) PlanTemplateService {
  t.Helper()
  log := newTestLogger(t)
  return NewPlanTemplateService(grok, repos.NewMasterPlanRepo(gdb, log), repos.NewCodebaseAnalysisRepo(gdb, log), log)
}

func twoWeekSkeleton() []types.WeekPlan {
  return []types.WeekPlan{
    {WeekNumber: 1, Title: "Storage Engine Basics"},
    {WeekNumber: 2, Title: "Compaction"},
  }
}

func TestGenerateMasterPlan_RequiresCodebaseAnalysis(t *testing.T) {
  gdb := newTestDB(t)
  svc := newTemplateService(t, gdb, &fakeGrok{})

  _, err := svc.GenerateMasterPlan(context.Background(), "rocksdb")
  if !errors.Is(err, apperr.ErrPrecursorMissing) {
    t.Fatalf("expected ErrPrecursorMissing, got %v", err)
  }
}

func TestGenerateMasterPlan_BuildsVersionedPlanWithContent(t *testing.T) {
  gdb := newTestDB(t)
  seedAnalysis(t, gdb, "rocksdb")
  grok := &fakeGrok{overview: "An eight week ramp.", weeks: twoWeekSkeleton()}
  svc := newTemplateService(t, gdb, grok)

  plan, err := svc.GenerateMasterPlan(context.Background(), "rocksdb")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if plan.ID != "rocksdb_v1" || plan.Version != 1 {
    t.Fatalf("unexpected plan identity: %q v%d", plan.ID, plan.Version)
  }
  if plan.PlanOverview != "An eight week ramp." {
    t.Fatalf("unexpected overview: %q", plan.PlanOverview)
  }

  var weeks []types.MasterWeek
  if err := json.Unmarshal(plan.WeeksData, &weeks); err != nil {
    t.Fatalf("failed to decode weeks: %v", err)
  }
  if len(weeks) != 2 {
    t.Fatalf("expected 2 weeks, got %d", len(weeks))
  }
  for _, w := range weeks {
    if w.ReadingMaterial == nil || len(w.CodingTasks) == 0 || len(w.Quiz) == 0 {
      t.Fatalf("week %d missing content: %#v", w.WeekNumber, w)
    }
  }
  // One skeleton call plus reading, tasks, quiz per week.
  reading, tasks, quiz, _ := grok.counts()
  if grok.skeletonCalls != 1 || reading != 2 || tasks != 2 || quiz != 2 {
    t.Fatalf("unexpected call counts: skeleton=%d reading=%d tasks=%d quiz=%d", grok.skeletonCalls, reading, tasks, quiz)
  }
}

func TestGenerateMasterPlan_BumpsVersion(t *testing.T) {
  gdb := newTestDB(t)
  seedAnalysis(t, gdb, "rocksdb")
  grok := &fakeGrok{overview: "o", weeks: twoWeekSkeleton()}
  svc := newTemplateService(t, gdb, grok)

  if _, err := svc.GenerateMasterPlan(context.Background(), "rocksdb"); err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  second, err := svc.GenerateMasterPlan(context.Background(), "rocksdb")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if second.ID != "rocksdb_v2" || second.Version != 2 {
    t.Fatalf("unexpected second version: %q v%d", second.ID, second.Version)
  }

  latest, err := svc.GetMasterPlan(context.Background(), "rocksdb")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if latest.ID != "rocksdb_v2" {
    t.Fatalf("expected latest to be v2, got %q", latest.ID)
  }
}

func TestGenerateMasterPlan_WeekFailureAbortsWithNothingPersisted(t *testing.T) {
  gdb := newTestDB(t)
  seedAnalysis(t, gdb, "rocksdb")
  grok := &fakeGrok{overview: "o", weeks: twoWeekSkeleton(), tasksErr: errBoom}
  svc := newTemplateService(t, gdb, grok)

  if _, err := svc.GenerateMasterPlan(context.Background(), "rocksdb"); err == nil {
    t.Fatalf("expected error")
  }
  if _, err := svc.GetMasterPlan(context.Background(), "rocksdb"); !errors.Is(err, apperr.ErrNotFound) {
    t.Fatalf("expected no persisted plan, got %v", err)
  }
}

func masterPlanRow(t *testing.T, overview string) *types.MasterPlan {
  t.Helper()
  weeks := []types.MasterWeek{
    {WeekPlan: types.WeekPlan{WeekNumber: 1, Title: "Storage Engine Basics"}},
    {WeekPlan: types.WeekPlan{WeekNumber: 2, Title: "Compaction"}},
  }
  data, err := json.Marshal(weeks)
  if err != nil {
    t.Fatalf("failed to encode weeks: %v", err)
  }
  return &types.MasterPlan{
    ID:           "rocksdb_v1",
    CodebaseID:   "rocksdb",
    Version:      1,
    PlanOverview: overview,
    WeeksData:    data,
    GeneratedAt:  time.Now().UTC(),
  }
}

func TestPersonalize_AppliesWeekAdjustments(t *testing.T) {
  gdb := newTestDB(t)
  grok := &fakeGrok{personalization: &types.PlanPersonalization{
    PersonalizedOverview: "Tailored overview",
    Recommendations:      []string{"Read the wiki"},
    WeekAdjustments: []types.WeekAdjustment{
      {WeekNumber: 1, Difficulty: "advanced", Emphasis: []string{"memtables"}, SkipTopics: []string{"intro"}},
    },
  }}
  svc := newTemplateService(t, gdb, grok)

  plan, err := svc.Personalize(context.Background(), masterPlanRow(t, "Master overview"), &types.ResumeAnalysis{ExperienceLevel: "senior"})
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if plan.Overview != "Tailored overview" {
    t.Fatalf("unexpected overview: %q", plan.Overview)
  }
  if len(plan.Weeks) != 2 {
    t.Fatalf("expected 2 weeks, got %d", len(plan.Weeks))
  }
  week1 := plan.Weeks[0]
  if week1.Difficulty != "advanced" || len(week1.Emphasis) != 1 || week1.Emphasis[0] != "memtables" {
    t.Fatalf("adjustment not applied: %#v", week1)
  }
  // Week 2 had no adjustment and keeps master defaults.
  if plan.Weeks[1].Difficulty != "" || plan.Weeks[1].Emphasis != nil {
    t.Fatalf("expected untouched week 2, got %#v", plan.Weeks[1])
  }
}

func TestPersonalize_EmptyDifficultyDefaultsToIntermediate(t *testing.T) {
  gdb := newTestDB(t)
  grok := &fakeGrok{personalization: &types.PlanPersonalization{
    PersonalizedOverview: "o",
    WeekAdjustments:      []types.WeekAdjustment{{WeekNumber: 2, Emphasis: []string{"compaction"}}},
  }}
  svc := newTemplateService(t, gdb, grok)

  plan, err := svc.Personalize(context.Background(), masterPlanRow(t, "m"), &types.ResumeAnalysis{})
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if plan.Weeks[1].Difficulty != "intermediate" {
    t.Fatalf("expected intermediate default, got %q", plan.Weeks[1].Difficulty)
  }
}

func TestPersonalize_ParseFailureFallsBackToMasterDefaults(t *testing.T) {
  gdb := newTestDB(t)
  grok := &fakeGrok{personalizeErr: &apperr.ParseError{Raw: "not json"}}
  svc := newTemplateService(t, gdb, grok)

  plan, err := svc.Personalize(context.Background(), masterPlanRow(t, "Master overview"), &types.ResumeAnalysis{})
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if plan.Overview != "Master overview" {
    t.Fatalf("expected master overview fallback, got %q", plan.Overview)
  }
  if len(plan.Weeks) != 2 {
    t.Fatalf("expected 2 weeks, got %d", len(plan.Weeks))
  }
}

func TestPersonalize_UpstreamFailurePropagates(t *testing.T) {
  gdb := newTestDB(t)
  grok := &fakeGrok{personalizeErr: &apperr.UpstreamError{StatusCode: 502, Body: "bad gateway"}}
  svc := newTemplateService(t, gdb, grok)

  _, err := svc.Personalize(context.Background(), masterPlanRow(t, "m"), &types.ResumeAnalysis{})
  var upstreamErr *apperr.UpstreamError
  if !errors.As(err, &upstreamErr) {
    t.Fatalf("expected UpstreamError, got %v", err)
  }
}




