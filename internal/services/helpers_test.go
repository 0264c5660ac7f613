package services

import (
  "context"
  "errors"
  "path/filepath"
  "sync"
  "testing"

  "gorm.io/driver/sqlite"
  "gorm.io/gorm"

  "github.com/onboardly/onboardly-backend/internal/db"
  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("failed to build logger: %v", err)
  }
  return log
}

func newTestDB(t *testing.T) *gorm.DB {
  t.Helper()
  path := filepath.Join(t.TempDir(), "test.db")
  gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
  if err != nil {
    t.Fatalf("failed to open sqlite: %v", err)
  }
  if err := gdb.AutoMigrate(db.AllModels()...); err != nil {
    t.Fatalf("failed to migrate: %v", err)
  }
  return gdb
}

// fakeGrok implements GrokService with canned outputs and call counters.
type fakeGrok struct {
  mu sync.Mutex

  resumeAnalysis  *types.ResumeAnalysis
  resumeErr       error
  codebase        map[string]interface{}
  codebaseErr     error
  plan            *types.PlanData
  planErr         error
  overview        string
  weeks           []types.WeekPlan
  skeletonErr     error
  personalization *types.PlanPersonalization
  personalizeErr  error
  reading         *types.ReadingMaterial
  readingErr      error
  tasks           []types.CodingTask
  tasksErr        error
  quiz            []types.QuizQuestion
  quizErr         error
  reason          string
  reasonErr       error
  expectation     string

  resumeCalls      int
  codebaseCalls    int
  planCalls        int
  skeletonCalls    int
  personalizeCalls int
  readingCalls     int
  tasksCalls       int
  quizCalls        int
  reasonCalls      int
  reasonTitles     []string
}

func (f *fakeGrok) AnalyzeResume(ctx context.Context, resumeText string) (*types.ResumeAnalysis, error) {
  f.mu.Lock()
  f.resumeCalls++
  f.mu.Unlock()
  if f.resumeErr != nil {
    return nil, f.resumeErr
  }
  if f.resumeAnalysis != nil {
    return f.resumeAnalysis, nil
  }
  return &types.ResumeAnalysis{Background: "generalist", ExperienceLevel: "mid"}, nil
}

func (f *fakeGrok) AnalyzeCodebase(ctx context.Context, repoURL string) (map[string]interface{}, error) {
  f.mu.Lock()
  f.codebaseCalls++
  f.mu.Unlock()
  if f.codebaseErr != nil {
    return nil, f.codebaseErr
  }
  if f.codebase != nil {
    return f.codebase, nil
  }
  return map[string]interface{}{"architecture": "layered"}, nil
}

func (f *fakeGrok) GenerateLearningPlan(ctx context.Context, resumeAnalysis *types.ResumeAnalysis, codebaseAnalysis map[string]interface{}) (*types.PlanData, error) {
  f.mu.Lock()
  f.planCalls++
  f.mu.Unlock()
  if f.planErr != nil {
    return nil, f.planErr
  }
  return f.plan, nil
}

func (f *fakeGrok) GenerateMasterSkeleton(ctx context.Context, codebaseAnalysis map[string]interface{}) (string, []types.WeekPlan, error) {
  f.mu.Lock()
  f.skeletonCalls++
  f.mu.Unlock()
  if f.skeletonErr != nil {
    return "", nil, f.skeletonErr
  }
  return f.overview, f.weeks, nil
}

func (f *fakeGrok) GeneratePersonalization(ctx context.Context, masterOverview string, resumeAnalysis *types.ResumeAnalysis, weekTitles interface{}) (*types.PlanPersonalization, error) {
  f.mu.Lock()
  f.personalizeCalls++
  f.mu.Unlock()
  if f.personalizeErr != nil {
    return nil, f.personalizeErr
  }
  if f.personalization != nil {
    return f.personalization, nil
  }
  return &types.PlanPersonalization{}, nil
}

func (f *fakeGrok) GenerateWeeklyReading(ctx context.Context, week interface{}, codebaseAnalysis map[string]interface{}, expectationContext string) (*types.ReadingMaterial, error) {
  f.mu.Lock()
  f.readingCalls++
  f.mu.Unlock()
  if f.readingErr != nil {
    return nil, f.readingErr
  }
  if f.reading != nil {
    return f.reading, nil
  }
  return &types.ReadingMaterial{Title: "Generated Reading", Content: "## Intro\ntext"}, nil
}

func (f *fakeGrok) GenerateCodingTasks(ctx context.Context, week interface{}, codebaseAnalysis map[string]interface{}, expectationContext string) ([]types.CodingTask, error) {
  f.mu.Lock()
  f.tasksCalls++
  f.mu.Unlock()
  if f.tasksErr != nil {
    return nil, f.tasksErr
  }
  if f.tasks != nil {
    return f.tasks, nil
  }
  return []types.CodingTask{{ID: "task_1", Title: "Generated Task"}}, nil
}

func (f *fakeGrok) GenerateQuiz(ctx context.Context, week interface{}, readingContent string) ([]types.QuizQuestion, error) {
  f.mu.Lock()
  f.quizCalls++
  f.mu.Unlock()
  if f.quizErr != nil {
    return nil, f.quizErr
  }
  if f.quiz != nil {
    return f.quiz, nil
  }
  return []types.QuizQuestion{{ID: "q1", Question: "Generated?"}}, nil
}

func (f *fakeGrok) GenerateReason(ctx context.Context, expectationContext, itemType, itemTitle, itemDescription string) (string, error) {
  f.mu.Lock()
  f.reasonCalls++
  f.reasonTitles = append(f.reasonTitles, itemTitle)
  f.mu.Unlock()
  if f.reasonErr != nil {
    return "", f.reasonErr
  }
  if f.reason != "" {
    return f.reason, nil
  }
  return "because it matters", nil
}

func (f *fakeGrok) ExpectationContext(experienceLevel string) string {
  return f.expectation
}

func (f *fakeGrok) counts() (reading, tasks, quiz, reason int) {
  f.mu.Lock()
  defer f.mu.Unlock()
  return f.readingCalls, f.tasksCalls, f.quizCalls, f.reasonCalls
}

var errBoom = errors.New("boom")




