package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "math"
  "strings"

  "github.com/google/uuid"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/pkg/apperr"
  "github.com/onboardly/onboardly-backend/internal/repos"
  "github.com/onboardly/onboardly-backend/internal/types"
)

const (
  readingWeight = 0.3
  tasksWeight   = 0.4
  quizWeight    = 0.3
)

// WeekProgress is the read model for one (candidate, week) pair. Absence of a
// progress row is not an error; it reads as zero progress.
type WeekProgress struct {
  CandidateID       uuid.UUID     `json:"candidate_id"`
  WeekNumber        int           `json:"week_number"`
  CompletedChapters []int         `json:"completed_chapters"`
  CompletedTasks    []string      `json:"completed_tasks"`
  QuizScore         *int          `json:"quiz_score"`
  QuizAnswers       []interface{} `json:"quiz_answers,omitempty"`
}

type ProgressService interface {
  MarkChapterComplete(ctx context.Context, candidateID uuid.UUID, weekNumber, chapterNumber int) (*WeekProgress, error)
  MarkTaskComplete(ctx context.Context, candidateID uuid.UUID, weekNumber int, taskID string) (*WeekProgress, error)
  SubmitQuizAnswers(ctx context.Context, candidateID uuid.UUID, weekNumber int, answers []interface{}) (*WeekProgress, error)
  GetWeekProgress(ctx context.Context, candidateID uuid.UUID, weekNumber int) (*WeekProgress, error)
  WeekPercent(ctx context.Context, candidateID uuid.UUID, weekNumber int) (int, error)
  OverallPercent(ctx context.Context, candidateID uuid.UUID) (int, error)
}

type progressService struct {
  progressRepo repos.ProgressRepo
  planRepo     repos.LearningPlanRepo
  weeklyRepo   repos.WeeklyContentRepo
  log          *logger.Logger
}

func NewProgressService(progressRepo repos.ProgressRepo, planRepo repos.LearningPlanRepo, weeklyRepo repos.WeeklyContentRepo, log *logger.Logger) ProgressService {
  serviceLog := log.With("service", "ProgressService")
  return &progressService{progressRepo: progressRepo, planRepo: planRepo, weeklyRepo: weeklyRepo, log: serviceLog}
}

func (s *progressService) MarkChapterComplete(ctx context.Context, candidateID uuid.UUID, weekNumber, chapterNumber int) (*WeekProgress, error) {
  row, err := s.getOrNewRow(ctx, candidateID, weekNumber)
  if err != nil {
    return nil, err
  }

  chapters := decodeIntSet(row.ReadingCompleted)
  if !containsInt(chapters, chapterNumber) {
    chapters = append(chapters, chapterNumber)
  }
  data, err := json.Marshal(chapters)
  if err != nil {
    return nil, err
  }
  row.ReadingCompleted = data

  if err := s.progressRepo.Upsert(ctx, nil, row); err != nil {
    return nil, err
  }
  return progressView(row), nil
}

func (s *progressService) MarkTaskComplete(ctx context.Context, candidateID uuid.UUID, weekNumber int, taskID string) (*WeekProgress, error) {
  row, err := s.getOrNewRow(ctx, candidateID, weekNumber)
  if err != nil {
    return nil, err
  }

  tasks := decodeStringSet(row.TasksCompleted)
  if !containsString(tasks, taskID) {
    tasks = append(tasks, taskID)
  }
  data, err := json.Marshal(tasks)
  if err != nil {
    return nil, err
  }
  row.TasksCompleted = data

  if err := s.progressRepo.Upsert(ctx, nil, row); err != nil {
    return nil, err
  }
  return progressView(row), nil
}

// SubmitQuizAnswers overwrites answers wholesale; the score is simply the
// count of non-null answers.
func (s *progressService) SubmitQuizAnswers(ctx context.Context, candidateID uuid.UUID, weekNumber int, answers []interface{}) (*WeekProgress, error) {
  row, err := s.getOrNewRow(ctx, candidateID, weekNumber)
  if err != nil {
    return nil, err
  }

  score := 0
  for _, a := range answers {
    if a != nil {
      score++
    }
  }
  data, err := json.Marshal(answers)
  if err != nil {
    return nil, err
  }
  row.QuizAnswers = data
  row.QuizScore = &score

  if err := s.progressRepo.Upsert(ctx, nil, row); err != nil {
    return nil, err
  }
  return progressView(row), nil
}

func (s *progressService) GetWeekProgress(ctx context.Context, candidateID uuid.UUID, weekNumber int) (*WeekProgress, error) {
  row, err := s.progressRepo.GetByCandidateAndWeek(ctx, nil, candidateID, weekNumber)
  if err != nil {
    if errors.Is(err, apperr.ErrNotFound) {
      return &WeekProgress{
        CandidateID:       candidateID,
        WeekNumber:        weekNumber,
        CompletedChapters: []int{},
        CompletedTasks:    []string{},
      }, nil
    }
    return nil, err
  }
  return progressView(row), nil
}

// WeekPercent weighs reading 30%, tasks 40%, quiz 30%; each sub-score is
// min(1, done/total). The reading total is a heuristic: level-2 markdown
// sections in the rendered content, halved and rounded up, minimum 1. It
// approximates "chapters", it does not count them exactly.
func (s *progressService) WeekPercent(ctx context.Context, candidateID uuid.UUID, weekNumber int) (int, error) {
  plan, err := s.planRepo.GetLatestByCandidateID(ctx, nil, candidateID)
  if err != nil {
    return 0, err
  }
  content, err := s.weeklyRepo.GetByPlanAndWeek(ctx, nil, plan.ID, weekNumber)
  if err != nil {
    return 0, err
  }

  progress, err := s.GetWeekProgress(ctx, candidateID, weekNumber)
  if err != nil {
    return 0, err
  }

  totalChapters, totalTasks, totalQuestions, err := weekTotals(content)
  if err != nil {
    return 0, err
  }

  readingScore := subScore(len(progress.CompletedChapters), totalChapters)
  tasksScore := subScore(len(progress.CompletedTasks), totalTasks)
  quizScore := 0.0
  if progress.QuizScore != nil {
    quizScore = subScore(*progress.QuizScore, totalQuestions)
  }

  percent := readingScore*readingWeight + tasksScore*tasksWeight + quizScore*quizWeight
  return int(math.Round(percent * 100)), nil
}

// OverallPercent is the arithmetic mean of week percents across every week in
// the candidate's plan.
func (s *progressService) OverallPercent(ctx context.Context, candidateID uuid.UUID) (int, error) {
  plan, err := s.planRepo.GetLatestByCandidateID(ctx, nil, candidateID)
  if err != nil {
    return 0, err
  }
  var planData types.PlanData
  if err := json.Unmarshal(plan.PlanData, &planData); err != nil {
    return 0, fmt.Errorf("failed to decode plan data: %w", err)
  }
  if len(planData.Weeks) == 0 {
    return 0, nil
  }

  sum := 0
  for _, week := range planData.Weeks {
    percent, err := s.WeekPercent(ctx, candidateID, week.WeekNumber)
    if err != nil {
      if errors.Is(err, apperr.ErrNotFound) {
        continue
      }
      return 0, err
    }
    sum += percent
  }
  return int(math.Round(float64(sum) / float64(len(planData.Weeks)))), nil
}

func (s *progressService) getOrNewRow(ctx context.Context, candidateID uuid.UUID, weekNumber int) (*types.Progress, error) {
  row, err := s.progressRepo.GetByCandidateAndWeek(ctx, nil, candidateID, weekNumber)
  if err != nil {
    if errors.Is(err, apperr.ErrNotFound) {
      return &types.Progress{CandidateID: candidateID, WeekNumber: weekNumber}, nil
    }
    return nil, err
  }
  return row, nil
}

func weekTotals(content *types.WeeklyContent) (int, int, int, error) {
  var reading types.ReadingMaterial
  if len(content.ReadingMaterial) > 0 {
    if err := json.Unmarshal(content.ReadingMaterial, &reading); err != nil {
      return 0, 0, 0, fmt.Errorf("failed to decode reading material: %w", err)
    }
  }
  var tasks []types.CodingTask
  if len(content.CodingTasks) > 0 {
    if err := json.Unmarshal(content.CodingTasks, &tasks); err != nil {
      return 0, 0, 0, fmt.Errorf("failed to decode coding tasks: %w", err)
    }
  }
  var quiz []types.QuizQuestion
  if len(content.Quiz) > 0 {
    if err := json.Unmarshal(content.Quiz, &quiz); err != nil {
      return 0, 0, 0, fmt.Errorf("failed to decode quiz: %w", err)
    }
  }
  return estimateChapters(reading.Content), len(tasks), len(quiz), nil
}

// estimateChapters counts "## " occurrences anywhere in the text and halves
// the count, rounding up, with a floor of 1. A plain substring count, so
// deeper headers like "### " contribute too; the completion percentages are
// calibrated against exactly this arithmetic.
func estimateChapters(content string) int {
  sections := strings.Count(content, "## ")
  chapters := (sections + 1) / 2
  if chapters < 1 {
    chapters = 1
  }
  return chapters
}

func subScore(done, total int) float64 {
  if total <= 0 {
    return 0
  }
  score := float64(done) / float64(total)
  if score > 1 {
    return 1
  }
  return score
}

func progressView(row *types.Progress) *WeekProgress {
  return &WeekProgress{
    CandidateID:       row.CandidateID,
    WeekNumber:        row.WeekNumber,
    CompletedChapters: decodeIntSet(row.ReadingCompleted),
    CompletedTasks:    decodeStringSet(row.TasksCompleted),
    QuizScore:         row.QuizScore,
    QuizAnswers:       decodeAnswers(row.QuizAnswers),
  }
}

func decodeIntSet(data []byte) []int {
  var out []int
  if len(data) == 0 || json.Unmarshal(data, &out) != nil {
    return []int{}
  }
  return out
}

func decodeStringSet(data []byte) []string {
  var out []string
  if len(data) == 0 || json.Unmarshal(data, &out) != nil {
    return []string{}
  }
  return out
}

func decodeAnswers(data []byte) []interface{} {
  var out []interface{}
  if len(data) == 0 || json.Unmarshal(data, &out) != nil {
    return nil
  }
  return out
}

func containsInt(set []int, v int) bool {
  for _, x := range set {
    if x == v {
      return true
    }
  }
  return false
}

func containsString(set []string, v string) bool {
  for _, x := range set {
    if x == v {
      return true
    }
  }
  return false
}




