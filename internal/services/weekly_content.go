package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/pkg/apperr"
  "github.com/onboardly/onboardly-backend/internal/repos"
  "github.com/onboardly/onboardly-backend/internal/types"
)

const reasonSnippetLimit = 200
const reasonFanout = 4

type WeeklyContentService interface {
  GetWeekContent(ctx context.Context, candidateID uuid.UUID, weekNumber int) (*types.WeeklyContent, error)
}

type weeklyContentService struct {
  grok          GrokService
  candidateRepo repos.CandidateRepo
  planRepo      repos.LearningPlanRepo
  weeklyRepo    repos.WeeklyContentRepo
  masterRepo    repos.MasterPlanRepo
  analysisRepo  repos.CodebaseAnalysisRepo
  log           *logger.Logger
}

func NewWeeklyContentService(
  grok GrokService,
  candidateRepo repos.CandidateRepo,
  planRepo repos.LearningPlanRepo,
  weeklyRepo repos.WeeklyContentRepo,
  masterRepo repos.MasterPlanRepo,
  analysisRepo repos.CodebaseAnalysisRepo,
  log *logger.Logger,
) WeeklyContentService {
  serviceLog := log.With("service", "WeeklyContentService")
  return &weeklyContentService{
    grok:          grok,
    candidateRepo: candidateRepo,
    planRepo:      planRepo,
    weeklyRepo:    weeklyRepo,
    masterRepo:    masterRepo,
    analysisRepo:  analysisRepo,
    log:           serviceLog,
  }
}

// GetWeekContent drives the per-(candidate, week) state machine: absent rows
// are materialized by copying from the master plan, falling back to on-demand
// generation only when no master plan exists. Materialized content missing
// justifications gets a reason backfill once an expectation context is
// available; after that, requests are pure reads.
func (s *weeklyContentService) GetWeekContent(ctx context.Context, candidateID uuid.UUID, weekNumber int) (*types.WeeklyContent, error) {
  plan, err := s.planRepo.GetLatestByCandidateID(ctx, nil, candidateID)
  if err != nil {
    return nil, err
  }

  content, err := s.weeklyRepo.GetByPlanAndWeek(ctx, nil, plan.ID, weekNumber)
  if err != nil && !errors.Is(err, apperr.ErrNotFound) {
    return nil, err
  }

  expectationContext := s.expectationForCandidate(ctx, candidateID)

  if content == nil || len(content.ReadingMaterial) == 0 || len(content.CodingTasks) == 0 {
    content, err = s.materialize(ctx, plan, content, weekNumber, expectationContext)
    if err != nil {
      return nil, err
    }
  }

  if expectationContext != "" {
    content, err = s.backfillReasons(ctx, content, expectationContext)
    if err != nil {
      return nil, err
    }
  }

  return content, nil
}

func (s *weeklyContentService) expectationForCandidate(ctx context.Context, candidateID uuid.UUID) string {
  candidate, err := s.candidateRepo.GetByID(ctx, nil, candidateID)
  if err != nil || len(candidate.ResumeAnalysis) == 0 {
    return ""
  }
  var analysis types.ResumeAnalysis
  if err := json.Unmarshal(candidate.ResumeAnalysis, &analysis); err != nil {
    return ""
  }
  return s.grok.ExpectationContext(analysis.ExperienceLevel)
}

func (s *weeklyContentService) materialize(ctx context.Context, plan *types.LearningPlan, existing *types.WeeklyContent, weekNumber int, expectationContext string) (*types.WeeklyContent, error) {
  s.log.Info("Materializing weekly content", "week", weekNumber)

  var reading *types.ReadingMaterial
  var tasks []types.CodingTask
  var quiz []types.QuizQuestion

  masterPlan, err := s.masterRepo.GetLatestByCodebaseID(ctx, nil, plan.CodebaseID)
  if err != nil && !errors.Is(err, apperr.ErrNotFound) {
    return nil, err
  }

  if masterPlan != nil && len(masterPlan.WeeksData) > 0 {
    reading, tasks, quiz, err = s.copyFromMaster(ctx, masterPlan, weekNumber, expectationContext)
    if err != nil {
      return nil, err
    }
  } else {
    s.log.Warn("No master plan found, generating content on-demand", "codebase_id", plan.CodebaseID)
    reading, tasks, quiz, err = s.generateOnDemand(ctx, plan, weekNumber, expectationContext)
    if err != nil {
      return nil, err
    }
  }

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

  if existing != nil {
    existing.ReadingMaterial = readingData
    existing.CodingTasks = tasksData
    existing.Quiz = quizData
    if err := s.weeklyRepo.Update(ctx, nil, existing); err != nil {
      return nil, err
    }
    return existing, nil
  }

  row := &types.WeeklyContent{
    LearningPlanID:  plan.ID,
    WeekNumber:      weekNumber,
    ReadingMaterial: readingData,
    CodingTasks:     tasksData,
    Quiz:            quizData,
  }
  if err := s.weeklyRepo.Create(ctx, nil, row); err != nil {
    return nil, err
  }
  s.log.Info("Weekly content saved", "week", weekNumber)
  return row, nil
}

// copyFromMaster reuses the master plan's generated content verbatim. When an
// expectation context exists, missing justifications are generated before the
// row is written so the triple commits complete.
func (s *weeklyContentService) copyFromMaster(ctx context.Context, masterPlan *types.MasterPlan, weekNumber int, expectationContext string) (*types.ReadingMaterial, []types.CodingTask, []types.QuizQuestion, error) {
  var masterWeeks []types.MasterWeek
  if err := json.Unmarshal(masterPlan.WeeksData, &masterWeeks); err != nil {
    return nil, nil, nil, fmt.Errorf("failed to decode master plan weeks: %w", err)
  }

  var week *types.MasterWeek
  for i := range masterWeeks {
    if masterWeeks[i].WeekNumber == weekNumber {
      week = &masterWeeks[i]
      break
    }
  }
  if week == nil {
    return nil, nil, nil, fmt.Errorf("%w: week %d not in master plan", apperr.ErrNotFound, weekNumber)
  }

  s.log.Info("Copying content from master plan", "week", weekNumber, "master_plan_id", masterPlan.ID)
  reading := week.ReadingMaterial
  if reading == nil {
    reading = &types.ReadingMaterial{}
  }
  tasks := week.CodingTasks
  quiz := week.Quiz

  if expectationContext != "" {
    if err := s.fillReasons(ctx, reading, tasks, expectationContext); err != nil {
      return nil, nil, nil, err
    }
  }
  return reading, tasks, quiz, nil
}

func (s *weeklyContentService) generateOnDemand(ctx context.Context, plan *types.LearningPlan, weekNumber int, expectationContext string) (*types.ReadingMaterial, []types.CodingTask, []types.QuizQuestion, error) {
  var planData types.PlanData
  if err := json.Unmarshal(plan.PlanData, &planData); err != nil {
    return nil, nil, nil, fmt.Errorf("failed to decode plan data: %w", err)
  }

  var week *types.PlanWeek
  for i := range planData.Weeks {
    if planData.Weeks[i].WeekNumber == weekNumber {
      week = &planData.Weeks[i]
      break
    }
  }
  if week == nil {
    return nil, nil, nil, fmt.Errorf("%w: week %d not in learning plan", apperr.ErrNotFound, weekNumber)
  }

  codebaseAnalysis := map[string]interface{}{}
  if analysisRow, err := s.analysisRepo.GetLatestByCodebaseID(ctx, nil, plan.CodebaseID); err == nil {
    if err := json.Unmarshal(analysisRow.AnalysisData, &codebaseAnalysis); err != nil {
      return nil, nil, nil, fmt.Errorf("failed to decode codebase analysis: %w", err)
    }
  }

  reading, err := s.grok.GenerateWeeklyReading(ctx, week, codebaseAnalysis, expectationContext)
  if err != nil {
    return nil, nil, nil, err
  }
  tasks, err := s.grok.GenerateCodingTasks(ctx, week, codebaseAnalysis, expectationContext)
  if err != nil {
    return nil, nil, nil, err
  }
  quiz, err := s.grok.GenerateQuiz(ctx, week, reading.Content)
  if err != nil {
    return nil, nil, nil, err
  }
  return reading, tasks, quiz, nil
}

// backfillReasons upgrades already-materialized content that predates the
// candidate's expectation context. No-op when every item carries a reason.
func (s *weeklyContentService) backfillReasons(ctx context.Context, content *types.WeeklyContent, expectationContext string) (*types.WeeklyContent, error) {
  var reading types.ReadingMaterial
  if len(content.ReadingMaterial) > 0 {
    if err := json.Unmarshal(content.ReadingMaterial, &reading); err != nil {
      return nil, fmt.Errorf("failed to decode reading material: %w", err)
    }
  }
  var tasks []types.CodingTask
  if len(content.CodingTasks) > 0 {
    if err := json.Unmarshal(content.CodingTasks, &tasks); err != nil {
      return nil, fmt.Errorf("failed to decode coding tasks: %w", err)
    }
  }

  if !needsReasons(&reading, tasks) {
    return content, nil
  }

  s.log.Info("Backfilling justifications", "week", content.WeekNumber)
  if err := s.fillReasons(ctx, &reading, tasks, expectationContext); err != nil {
    return nil, err
  }

  readingData, err := json.Marshal(&reading)
  if err != nil {
    return nil, err
  }
  tasksData, err := json.Marshal(tasks)
  if err != nil {
    return nil, err
  }
  content.ReadingMaterial = readingData
  content.CodingTasks = tasksData
  if err := s.weeklyRepo.Update(ctx, nil, content); err != nil {
    return nil, err
  }
  return content, nil
}

// hasReading reports whether there is any reading material to justify. A
// title-less reading with content still counts.
func hasReading(reading *types.ReadingMaterial) bool {
  return reading != nil && (reading.Title != "" || reading.Content != "")
}

func needsReasons(reading *types.ReadingMaterial, tasks []types.CodingTask) bool {
  if hasReading(reading) && reading.Reason == "" {
    return true
  }
  for _, t := range tasks {
    if t.Reason == "" {
      return true
    }
  }
  return false
}

// fillReasons generates a one-sentence justification per item that lacks one.
// Reading is done inline; tasks are independent and cheap, so they fan out
// with a bounded gather-and-join.
func (s *weeklyContentService) fillReasons(ctx context.Context, reading *types.ReadingMaterial, tasks []types.CodingTask, expectationContext string) error {
  if hasReading(reading) && reading.Reason == "" {
    title := reading.Title
    if title == "" {
      title = "Weekly Reading"
    }
    reason, err := s.grok.GenerateReason(ctx, expectationContext, "reading material", title, snippet(reading.Content))
    if err != nil {
      return err
    }
    reading.Reason = reason
  }

  g, gctx := errgroup.WithContext(ctx)
  g.SetLimit(reasonFanout)
  for i := range tasks {
    if tasks[i].Reason != "" {
      continue
    }
    task := &tasks[i]
    g.Go(func() error {
      reason, err := s.grok.GenerateReason(gctx, expectationContext, "coding task", task.Title, snippet(task.Description))
      if err != nil {
        return err
      }
      task.Reason = reason
      return nil
    })
  }
  return g.Wait()
}

func snippet(s string) string {
  if len(s) > reasonSnippetLimit {
    return s[:reasonSnippetLimit]
  }
  return s
}




