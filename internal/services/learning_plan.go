package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/pkg/apperr"
  "github.com/onboardly/onboardly-backend/internal/repos"
  "github.com/onboardly/onboardly-backend/internal/types"
)

// Plans younger than this are served from cache unless a regenerate is forced.
const planFreshness = 7 * 24 * time.Hour

// StudyPlanWeek is one week of the merged study plan view: the plan's thin
// week joined with whatever weekly content has been materialized so far.
type StudyPlanWeek struct {
  types.PlanWeek
  ReadingMaterial datatypes.JSON `json:"reading_material,omitempty"`
  CodingTasks     datatypes.JSON `json:"coding_tasks,omitempty"`
  Quiz            datatypes.JSON `json:"quiz,omitempty"`
}

type StudyPlan struct {
  ID              string          `json:"id"`
  CandidateID     uuid.UUID       `json:"candidate_id"`
  CodebaseID      string          `json:"codebase_id"`
  Overview        string          `json:"overview"`
  Recommendations []string        `json:"recommendations"`
  Weeks           []StudyPlanWeek `json:"weeks"`
  CreatedAt       time.Time       `json:"created_at"`
}

type LearningPlanService interface {
  CreatePlan(ctx context.Context, candidateID uuid.UUID, codebaseID string, force bool) (*types.LearningPlan, error)
  GetPlan(ctx context.Context, candidateID uuid.UUID) (*types.LearningPlan, error)
  GetStudyPlan(ctx context.Context, candidateID uuid.UUID) (*StudyPlan, error)
}

type learningPlanService struct {
  db            *gorm.DB
  grok          GrokService
  planTemplate  PlanTemplateService
  candidateRepo repos.CandidateRepo
  configRepo    repos.CodebaseConfigRepo
  analysisRepo  repos.CodebaseAnalysisRepo
  planRepo      repos.LearningPlanRepo
  weeklyRepo    repos.WeeklyContentRepo
  log           *logger.Logger
}

func NewLearningPlanService(
  db *gorm.DB,
  grok GrokService,
  planTemplate PlanTemplateService,
  candidateRepo repos.CandidateRepo,
  configRepo repos.CodebaseConfigRepo,
  analysisRepo repos.CodebaseAnalysisRepo,
  planRepo repos.LearningPlanRepo,
  weeklyRepo repos.WeeklyContentRepo,
  log *logger.Logger,
) LearningPlanService {
  serviceLog := log.With("service", "LearningPlanService")
  return &learningPlanService{
    db:            db,
    grok:          grok,
    planTemplate:  planTemplate,
    candidateRepo: candidateRepo,
    configRepo:    configRepo,
    analysisRepo:  analysisRepo,
    planRepo:      planRepo,
    weeklyRepo:    weeklyRepo,
    log:           serviceLog,
  }
}

// CreatePlan is the fast path of the platform: with a master plan in place it
// costs exactly one completion (the personalization). Without one it falls
// back to full generation.
func (s *learningPlanService) CreatePlan(ctx context.Context, candidateID uuid.UUID, codebaseID string, force bool) (*types.LearningPlan, error) {
  candidate, err := s.candidateRepo.GetByID(ctx, nil, candidateID)
  if err != nil {
    return nil, err
  }
  if len(candidate.ResumeAnalysis) == 0 {
    return nil, fmt.Errorf("%w: resume has not been analyzed yet", apperr.ErrPrecursorMissing)
  }

  if !force {
    existing, err := s.planRepo.GetLatestByCandidateAndCodebase(ctx, nil, candidateID, codebaseID)
    if err != nil && !errors.Is(err, apperr.ErrNotFound) {
      return nil, err
    }
    if existing != nil {
      age := time.Since(existing.CreatedAt)
      if age < planFreshness {
        s.log.Info("Reusing existing learning plan", "candidate_id", candidateID, "age_hours", int(age.Hours()))
        return existing, nil
      }
      s.log.Info("Existing plan is stale, regenerating", "candidate_id", candidateID, "age_hours", int(age.Hours()))
    }
  } else {
    s.log.Info("Force regenerate set, creating new plan", "candidate_id", candidateID)
  }

  var resumeAnalysis types.ResumeAnalysis
  if err := json.Unmarshal(candidate.ResumeAnalysis, &resumeAnalysis); err != nil {
    return nil, fmt.Errorf("failed to decode resume analysis: %w", err)
  }

  masterPlan, err := s.planTemplate.GetMasterPlan(ctx, codebaseID)
  if err != nil && !errors.Is(err, apperr.ErrNotFound) {
    return nil, err
  }
  if masterPlan != nil {
    return s.createFromMaster(ctx, candidate, codebaseID, masterPlan, &resumeAnalysis)
  }

  s.log.Warn("No master plan found, falling back to full generation", "codebase_id", codebaseID)
  return s.createFromScratch(ctx, candidate, codebaseID, &resumeAnalysis)
}

func (s *learningPlanService) createFromMaster(ctx context.Context, candidate *types.Candidate, codebaseID string, masterPlan *types.MasterPlan, resumeAnalysis *types.ResumeAnalysis) (*types.LearningPlan, error) {
  personalized, err := s.planTemplate.Personalize(ctx, masterPlan, resumeAnalysis)
  if err != nil {
    return nil, err
  }

  planData, err := json.Marshal(personalized)
  if err != nil {
    return nil, fmt.Errorf("failed to encode plan data: %w", err)
  }

  var masterWeeks []types.MasterWeek
  if err := json.Unmarshal(masterPlan.WeeksData, &masterWeeks); err != nil {
    return nil, fmt.Errorf("failed to decode master plan weeks: %w", err)
  }

  plan := &types.LearningPlan{
    CandidateID: candidate.ID,
    CodebaseID:  codebaseID,
    PlanData:    planData,
  }

  // The plan row and the pre-copied weekly rows land together.
  err = s.db.Transaction(func(tx *gorm.DB) error {
    if err := s.planRepo.Create(ctx, tx, plan); err != nil {
      return err
    }
    for _, mw := range masterWeeks {
      row, err := weeklyRowFromMaster(plan.ID, &mw)
      if err != nil {
        return err
      }
      if err := s.weeklyRepo.Create(ctx, tx, row); err != nil {
        return err
      }
    }
    return nil
  })
  if err != nil {
    return nil, fmt.Errorf("failed to save learning plan: %w", err)
  }

  s.log.Info("Learning plan created from master plan", "candidate_id", candidate.ID, "master_plan_id", masterPlan.ID)
  return plan, nil
}

func weeklyRowFromMaster(planID uuid.UUID, mw *types.MasterWeek) (*types.WeeklyContent, error) {
  reading, err := json.Marshal(mw.ReadingMaterial)
  if err != nil {
    return nil, err
  }
  tasks, err := json.Marshal(mw.CodingTasks)
  if err != nil {
    return nil, err
  }
  quiz, err := json.Marshal(mw.Quiz)
  if err != nil {
    return nil, err
  }
  return &types.WeeklyContent{
    LearningPlanID:  planID,
    WeekNumber:      mw.WeekNumber,
    ReadingMaterial: reading,
    CodingTasks:     tasks,
    Quiz:            quiz,
  }, nil
}

func (s *learningPlanService) createFromScratch(ctx context.Context, candidate *types.Candidate, codebaseID string, resumeAnalysis *types.ResumeAnalysis) (*types.LearningPlan, error) {
  codebaseAnalysis := map[string]interface{}{}
  analysisRow, err := s.analysisRepo.GetLatestByCodebaseID(ctx, nil, codebaseID)
  switch {
  case err == nil:
    if err := json.Unmarshal(analysisRow.AnalysisData, &codebaseAnalysis); err != nil {
      return nil, fmt.Errorf("failed to decode codebase analysis: %w", err)
    }
  case errors.Is(err, apperr.ErrNotFound):
    // No cached analysis: analyze directly without persisting.
    config, cfgErr := s.configRepo.GetByID(ctx, nil, codebaseID)
    if cfgErr != nil {
      return nil, cfgErr
    }
    codebaseAnalysis, err = s.grok.AnalyzeCodebase(ctx, config.RepositoryURL)
    if err != nil {
      return nil, err
    }
  default:
    return nil, err
  }

  plan, err := s.grok.GenerateLearningPlan(ctx, resumeAnalysis, codebaseAnalysis)
  if err != nil {
    return nil, err
  }
  planData, err := json.Marshal(plan)
  if err != nil {
    return nil, fmt.Errorf("failed to encode plan data: %w", err)
  }

  row := &types.LearningPlan{
    CandidateID: candidate.ID,
    CodebaseID:  codebaseID,
    PlanData:    planData,
  }
  if err := s.planRepo.Create(ctx, nil, row); err != nil {
    return nil, fmt.Errorf("failed to save learning plan: %w", err)
  }

  // Per-week content is best-effort here: a failed week is logged and
  // skipped, it will be materialized on first request instead.
  for _, week := range plan.Weeks {
    reading, err := s.grok.GenerateWeeklyReading(ctx, week, codebaseAnalysis, "")
    if err != nil {
      s.log.Warn("Failed to generate content for week", "week", week.WeekNumber, "error", err)
      continue
    }
    tasks, err := s.grok.GenerateCodingTasks(ctx, week, codebaseAnalysis, "")
    if err != nil {
      s.log.Warn("Failed to generate content for week", "week", week.WeekNumber, "error", err)
      continue
    }
    quiz, err := s.grok.GenerateQuiz(ctx, week, reading.Content)
    if err != nil {
      s.log.Warn("Failed to generate content for week", "week", week.WeekNumber, "error", err)
      continue
    }

    contentRow, err := weeklyRowFromParts(row.ID, week.WeekNumber, reading, tasks, quiz)
    if err != nil {
      return nil, err
    }
    if err := s.weeklyRepo.Create(ctx, nil, contentRow); err != nil {
      return nil, err
    }
  }

  s.log.Info("Learning plan generated from scratch", "candidate_id", candidate.ID, "codebase_id", codebaseID)
  return row, nil
}

func weeklyRowFromParts(planID uuid.UUID, weekNumber int, reading *types.ReadingMaterial, tasks []types.CodingTask, quiz []types.QuizQuestion) (*types.WeeklyContent, error) {
  readingData, err := json.Marshal(reading)
  if err != nil {
    return nil, err
  }
  tasksData, err := json.Marshal(tasks)
  if err != nil {
    return nil, err
  }
  quizData, err := json.Marshal(quiz)
  if err != nil {
    return nil, err
  }
  return &types.WeeklyContent{
    LearningPlanID:  planID,
    WeekNumber:      weekNumber,
    ReadingMaterial: readingData,
    CodingTasks:     tasksData,
    Quiz:            quizData,
  }, nil
}

func (s *learningPlanService) GetPlan(ctx context.Context, candidateID uuid.UUID) (*types.LearningPlan, error) {
  return s.planRepo.GetLatestByCandidateID(ctx, nil, candidateID)
}

// GetStudyPlan merges the plan's thin weeks with all materialized weekly
// content into a single view.
func (s *learningPlanService) GetStudyPlan(ctx context.Context, candidateID uuid.UUID) (*StudyPlan, error) {
  plan, err := s.planRepo.GetLatestByCandidateID(ctx, nil, candidateID)
  if err != nil {
    return nil, err
  }

  var planData types.PlanData
  if err := json.Unmarshal(plan.PlanData, &planData); err != nil {
    return nil, fmt.Errorf("failed to decode plan data: %w", err)
  }

  contents, err := s.weeklyRepo.ListByPlanID(ctx, nil, plan.ID)
  if err != nil {
    return nil, err
  }
  byWeek := map[int]*types.WeeklyContent{}
  for _, wc := range contents {
    byWeek[wc.WeekNumber] = wc
  }

  weeks := make([]StudyPlanWeek, 0, len(planData.Weeks))
  for _, week := range planData.Weeks {
    merged := StudyPlanWeek{PlanWeek: week}
    if wc, ok := byWeek[week.WeekNumber]; ok {
      merged.ReadingMaterial = wc.ReadingMaterial
      merged.CodingTasks = wc.CodingTasks
      merged.Quiz = wc.Quiz
    }
    weeks = append(weeks, merged)
  }

  return &StudyPlan{
    ID:              fmt.Sprintf("study_plan_%s_%s", candidateID, plan.ID),
    CandidateID:     candidateID,
    CodebaseID:      plan.CodebaseID,
    Overview:        planData.Overview,
    Recommendations: planData.Recommendations,
    Weeks:           weeks,
    CreatedAt:       plan.CreatedAt,
  }, nil
}




