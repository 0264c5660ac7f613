package services

import (
  "context"
  "os"
  "path/filepath"
  "strings"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/types"
  "github.com/onboardly/onboardly-backend/internal/utils"
)

// GrokService is the domain layer over the raw completion client: one method
// per structured generation the platform performs.
type GrokService interface {
  AnalyzeResume(ctx context.Context, resumeText string) (*types.ResumeAnalysis, error)
  AnalyzeCodebase(ctx context.Context, repoURL string) (map[string]interface{}, error)
  GenerateLearningPlan(ctx context.Context, resumeAnalysis *types.ResumeAnalysis, codebaseAnalysis map[string]interface{}) (*types.PlanData, error)
  GenerateMasterSkeleton(ctx context.Context, codebaseAnalysis map[string]interface{}) (string, []types.WeekPlan, error)
  GeneratePersonalization(ctx context.Context, masterOverview string, resumeAnalysis *types.ResumeAnalysis, weekTitles interface{}) (*types.PlanPersonalization, error)
  GenerateWeeklyReading(ctx context.Context, week interface{}, codebaseAnalysis map[string]interface{}, expectationContext string) (*types.ReadingMaterial, error)
  GenerateCodingTasks(ctx context.Context, week interface{}, codebaseAnalysis map[string]interface{}, expectationContext string) ([]types.CodingTask, error)
  GenerateQuiz(ctx context.Context, week interface{}, readingContent string) ([]types.QuizQuestion, error)
  GenerateReason(ctx context.Context, expectationContext, itemType, itemTitle, itemDescription string) (string, error)
  ExpectationContext(experienceLevel string) string
}

type grokService struct {
  client     GrokClient
  promptsDir string
  log        *logger.Logger
}

func NewGrokService(client GrokClient, log *logger.Logger) GrokService {
  serviceLog := log.With("service", "GrokService")
  return &grokService{
    client:     client,
    promptsDir: utils.GetEnv("EXPECTATION_PROMPTS_DIR", "expectation_prompts", log),
    log:        serviceLog,
  }
}

const (
  welcomeFallback        = "Welcome to the team! We are excited to have you onboard and look forward to seeing your contributions."
  welcomeFallbackOnError = "Welcome to the team! We look forward to your ramp up."
)

func (s *grokService) AnalyzeResume(ctx context.Context, resumeText string) (*types.ResumeAnalysis, error) {
  system, user := resumeAnalysisPrompt(resumeText)
  raw, err := s.client.Complete(ctx, system, user, 0.3, s.client.ResumeModel())
  if err != nil {
    return nil, err
  }

  var analysis types.ResumeAnalysis
  if err := ParseInto(raw, &analysis); err != nil {
    return nil, err
  }

  // The ramp-up expectation is best-effort: a welcome line is better than
  // failing a whole resume analysis over one extra call.
  analysis.RampUpExpectation = s.generateExpectation(ctx, &analysis)
  return &analysis, nil
}

func (s *grokService) generateExpectation(ctx context.Context, analysis *types.ResumeAnalysis) string {
  expectationContext := s.ExpectationContext(analysis.ExperienceLevel)
  if expectationContext == "" {
    s.log.Warn("Expectation prompt file not found", "prompts_dir", s.promptsDir)
    return welcomeFallback
  }

  level := strings.ToLower(analysis.ExperienceLevel)
  system, user := rampUpExpectationPrompt(analysis.Background, level, expectationContext)
  raw, err := s.client.Complete(ctx, system, user, 0.5, s.client.ResumeModel())
  if err != nil {
    s.log.Warn("Failed to generate ramp-up expectation", "error", err)
    return welcomeFallbackOnError
  }
  return strings.TrimSpace(raw)
}

// ExpectationContext loads the onboarding philosophy for the candidate's
// seniority band. Returns "" when the prompt file is unavailable.
func (s *grokService) ExpectationContext(experienceLevel string) string {
  promptFile := "junior_engineer_prompt.md"
  if isSeniorBand(experienceLevel) {
    promptFile = "senior_engineer_prompt.md"
  }
  data, err := os.ReadFile(filepath.Join(s.promptsDir, promptFile))
  if err != nil {
    return ""
  }
  return string(data)
}

func isSeniorBand(experienceLevel string) bool {
  level := strings.ToLower(experienceLevel)
  return strings.Contains(level, "senior") || strings.Contains(level, "staff") || strings.Contains(level, "lead")
}

func (s *grokService) AnalyzeCodebase(ctx context.Context, repoURL string) (map[string]interface{}, error) {
  system, user := codebaseAnalysisPrompt(repoURL)
  raw, err := s.client.Complete(ctx, system, user, 0.3, "")
  if err != nil {
    return nil, err
  }
  return ParseJSONObject(raw)
}

func (s *grokService) GenerateLearningPlan(ctx context.Context, resumeAnalysis *types.ResumeAnalysis, codebaseAnalysis map[string]interface{}) (*types.PlanData, error) {
  system, user := learningPlanPrompt(resumeAnalysis, codebaseAnalysis)
  raw, err := s.client.Complete(ctx, system, user, 0.5, "")
  if err != nil {
    return nil, err
  }
  var plan types.PlanData
  if err := ParseInto(raw, &plan); err != nil {
    return nil, err
  }
  return &plan, nil
}

func (s *grokService) GenerateMasterSkeleton(ctx context.Context, codebaseAnalysis map[string]interface{}) (string, []types.WeekPlan, error) {
  system, user := masterPlanSkeletonPrompt(codebaseAnalysis)
  raw, err := s.client.Complete(ctx, system, user, 0.5, "")
  if err != nil {
    return "", nil, err
  }
  var skeleton struct {
    Overview string           `json:"overview"`
    Weeks    []types.WeekPlan `json:"weeks"`
  }
  if err := ParseInto(raw, &skeleton); err != nil {
    return "", nil, err
  }
  return skeleton.Overview, skeleton.Weeks, nil
}

func (s *grokService) GeneratePersonalization(ctx context.Context, masterOverview string, resumeAnalysis *types.ResumeAnalysis, weekTitles interface{}) (*types.PlanPersonalization, error) {
  experienceLevel := resumeAnalysis.ExperienceLevel
  if experienceLevel == "" {
    experienceLevel = "mid"
  }
  system, user := personalizePlanPrompt(masterOverview, resumeAnalysis, weekTitles, experienceLevel)
  raw, err := s.client.Complete(ctx, system, user, 0.3, s.client.ResumeModel())
  if err != nil {
    return nil, err
  }
  var result types.PlanPersonalization
  if err := ParseInto(raw, &result); err != nil {
    return nil, err
  }
  return &result, nil
}

func (s *grokService) GenerateWeeklyReading(ctx context.Context, week interface{}, codebaseAnalysis map[string]interface{}, expectationContext string) (*types.ReadingMaterial, error) {
  system, user := weeklyReadingPrompt(week, codebaseAnalysis, expectationContext)
  raw, err := s.client.Complete(ctx, system, user, 0.6, "")
  if err != nil {
    return nil, err
  }
  var reading types.ReadingMaterial
  if err := ParseInto(raw, &reading); err != nil {
    return nil, err
  }
  return &reading, nil
}

func (s *grokService) GenerateCodingTasks(ctx context.Context, week interface{}, codebaseAnalysis map[string]interface{}, expectationContext string) ([]types.CodingTask, error) {
  system, user := codingTasksPrompt(week, codebaseAnalysis, expectationContext)
  raw, err := s.client.Complete(ctx, system, user, 0.6, "")
  if err != nil {
    return nil, err
  }
  var envelope struct {
    Tasks []types.CodingTask `json:"tasks"`
  }
  if err := ParseInto(raw, &envelope); err != nil {
    return nil, err
  }
  return envelope.Tasks, nil
}

func (s *grokService) GenerateQuiz(ctx context.Context, week interface{}, readingContent string) ([]types.QuizQuestion, error) {
  system, user := quizPrompt(week, readingContent)
  raw, err := s.client.Complete(ctx, system, user, 0.5, "")
  if err != nil {
    return nil, err
  }
  var envelope struct {
    Questions []types.QuizQuestion `json:"questions"`
  }
  if err := ParseInto(raw, &envelope); err != nil {
    return nil, err
  }
  return envelope.Questions, nil
}

func (s *grokService) GenerateReason(ctx context.Context, expectationContext, itemType, itemTitle, itemDescription string) (string, error) {
  system, user := reasoningPrompt(expectationContext, itemType, itemTitle, itemDescription)
  raw, err := s.client.Complete(ctx, system, user, 0.7, s.client.ResumeModel())
  if err != nil {
    return "", err
  }
  return strings.TrimSpace(raw), nil
}




