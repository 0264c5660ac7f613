package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "time"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/pkg/apperr"
  "github.com/onboardly/onboardly-backend/internal/repos"
  "github.com/onboardly/onboardly-backend/internal/types"
)

// PlanTemplateService owns the versioned master plan cache and its quick
// per-candidate personalization.
type PlanTemplateService interface {
  GenerateMasterPlan(ctx context.Context, codebaseID string) (*types.MasterPlan, error)
  GetMasterPlan(ctx context.Context, codebaseID string) (*types.MasterPlan, error)
  Personalize(ctx context.Context, masterPlan *types.MasterPlan, resumeAnalysis *types.ResumeAnalysis) (*types.PlanData, error)
}

type planTemplateService struct {
  grok           GrokService
  masterPlanRepo repos.MasterPlanRepo
  analysisRepo   repos.CodebaseAnalysisRepo
  log            *logger.Logger
}

func NewPlanTemplateService(grok GrokService, masterPlanRepo repos.MasterPlanRepo, analysisRepo repos.CodebaseAnalysisRepo, log *logger.Logger) PlanTemplateService {
  serviceLog := log.With("service", "PlanTemplateService")
  return &planTemplateService{grok: grok, masterPlanRepo: masterPlanRepo, analysisRepo: analysisRepo, log: serviceLog}
}

// GenerateMasterPlan runs the full 13-call pipeline: one skeleton completion,
// then reading, tasks and quiz per week, strictly in week order to bound
// concurrent load on the backend. Any failure aborts with nothing persisted.
func (s *planTemplateService) GenerateMasterPlan(ctx context.Context, codebaseID string) (*types.MasterPlan, error) {
  analysisRow, err := s.analysisRepo.GetLatestByCodebaseID(ctx, nil, codebaseID)
  if err != nil {
    if errors.Is(err, apperr.ErrNotFound) {
      return nil, fmt.Errorf("%w: no codebase analysis for %s", apperr.ErrPrecursorMissing, codebaseID)
    }
    return nil, err
  }

  var codebaseAnalysis map[string]interface{}
  if err := json.Unmarshal(analysisRow.AnalysisData, &codebaseAnalysis); err != nil {
    return nil, fmt.Errorf("failed to decode codebase analysis: %w", err)
  }

  s.log.Info("Generating master plan", "codebase_id", codebaseID)
  overview, weekPlans, err := s.grok.GenerateMasterSkeleton(ctx, codebaseAnalysis)
  if err != nil {
    return nil, err
  }

  weeksWithContent := make([]types.MasterWeek, 0, len(weekPlans))
  for _, week := range weekPlans {
    s.log.Info("Generating content for week", "codebase_id", codebaseID, "week", week.WeekNumber)

    reading, err := s.grok.GenerateWeeklyReading(ctx, week, codebaseAnalysis, "")
    if err != nil {
      return nil, fmt.Errorf("week %d reading: %w", week.WeekNumber, err)
    }
    tasks, err := s.grok.GenerateCodingTasks(ctx, week, codebaseAnalysis, "")
    if err != nil {
      return nil, fmt.Errorf("week %d tasks: %w", week.WeekNumber, err)
    }
    quiz, err := s.grok.GenerateQuiz(ctx, week, reading.Content)
    if err != nil {
      return nil, fmt.Errorf("week %d quiz: %w", week.WeekNumber, err)
    }

    weeksWithContent = append(weeksWithContent, types.MasterWeek{
      WeekPlan:        week,
      ReadingMaterial: reading,
      CodingTasks:     tasks,
      Quiz:            quiz,
    })
  }

  weeksData, err := json.Marshal(weeksWithContent)
  if err != nil {
    return nil, fmt.Errorf("failed to encode weeks data: %w", err)
  }

  maxVersion, err := s.masterPlanRepo.MaxVersion(ctx, nil, codebaseID)
  if err != nil {
    return nil, err
  }
  version := maxVersion + 1

  row := &types.MasterPlan{
    ID:           fmt.Sprintf("%s_v%d", codebaseID, version),
    CodebaseID:   codebaseID,
    Version:      version,
    PlanOverview: overview,
    WeeksData:    weeksData,
    GeneratedAt:  time.Now().UTC(),
  }
  if err := s.masterPlanRepo.Create(ctx, nil, row); err != nil {
    return nil, fmt.Errorf("failed to save master plan: %w", err)
  }

  s.log.Info("Master plan generated", "codebase_id", codebaseID, "plan_id", row.ID, "weeks", len(weeksWithContent))
  return row, nil
}

func (s *planTemplateService) GetMasterPlan(ctx context.Context, codebaseID string) (*types.MasterPlan, error) {
  return s.masterPlanRepo.GetLatestByCodebaseID(ctx, nil, codebaseID)
}

// Personalize makes exactly one cheap completion and applies the returned
// per-week adjustments onto thin copies of the master weeks. An unparsable
// response or a missing week adjustment falls back to master defaults; only
// an upstream failure propagates.
func (s *planTemplateService) Personalize(ctx context.Context, masterPlan *types.MasterPlan, resumeAnalysis *types.ResumeAnalysis) (*types.PlanData, error) {
  var masterWeeks []types.MasterWeek
  if err := json.Unmarshal(masterPlan.WeeksData, &masterWeeks); err != nil {
    return nil, fmt.Errorf("failed to decode master plan weeks: %w", err)
  }

  weekTitles := make([]map[string]interface{}, 0, len(masterWeeks))
  for _, w := range masterWeeks {
    weekTitles = append(weekTitles, map[string]interface{}{"week": w.WeekNumber, "title": w.Title})
  }

  result, err := s.grok.GeneratePersonalization(ctx, masterPlan.PlanOverview, resumeAnalysis, weekTitles)
  if err != nil {
    var parseErr *apperr.ParseError
    if !errors.As(err, &parseErr) {
      return nil, err
    }
    s.log.Warn("Personalization response unparsable, falling back to master plan defaults")
    result = &types.PlanPersonalization{PersonalizedOverview: masterPlan.PlanOverview}
  }

  adjustments := map[int]types.WeekAdjustment{}
  for _, adj := range result.WeekAdjustments {
    adjustments[adj.WeekNumber] = adj
  }

  weeks := make([]types.PlanWeek, 0, len(masterWeeks))
  for _, mw := range masterWeeks {
    week := types.PlanWeek{WeekPlan: mw.WeekPlan}
    if adj, ok := adjustments[mw.WeekNumber]; ok {
      week.Difficulty = adj.Difficulty
      if week.Difficulty == "" {
        week.Difficulty = "intermediate"
      }
      week.Emphasis = adj.Emphasis
      week.SkipTopics = adj.SkipTopics
      week.AdditionalFocus = adj.AdditionalFocus
    }
    weeks = append(weeks, week)
  }

  overview := result.PersonalizedOverview
  if overview == "" {
    overview = masterPlan.PlanOverview
  }

  return &types.PlanData{
    Overview:        overview,
    Recommendations: result.Recommendations,
    Weeks:           weeks,
  }, nil
}




