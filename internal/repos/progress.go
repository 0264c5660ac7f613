package repos

import (
  "context"
  "errors"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/pkg/apperr"
  "github.com/onboardly/onboardly-backend/internal/types"
)

type ProgressRepo interface {
  GetByCandidateAndWeek(ctx context.Context, tx *gorm.DB, candidateID uuid.UUID, week int) (*types.Progress, error)
  ListByCandidateID(ctx context.Context, tx *gorm.DB, candidateID uuid.UUID) ([]*types.Progress, error)
  Upsert(ctx context.Context, tx *gorm.DB, row *types.Progress) error
}

type progressRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
  repoLog := baseLog.With("repo", "ProgressRepo")
  return &progressRepo{db: db, log: repoLog}
}

func (r *progressRepo) GetByCandidateAndWeek(ctx context.Context, tx *gorm.DB, candidateID uuid.UUID, week int) (*types.Progress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Progress
  if err := transaction.WithContext(ctx).
    Where("candidate_id = ? AND week_number = ?", candidateID, week).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.ErrNotFound
    }
    return nil, err
  }
  return &result, nil
}

func (r *progressRepo) ListByCandidateID(ctx context.Context, tx *gorm.DB, candidateID uuid.UUID) ([]*types.Progress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Progress
  if err := transaction.WithContext(ctx).
    Where("candidate_id = ?", candidateID).
    Order("week_number ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *progressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.Progress) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }
  if row.ID == uuid.Nil {
    row.ID = uuid.New()
  }

  if err := transaction.WithContext(ctx).
    Where("candidate_id = ? AND week_number = ?", row.CandidateID, row.WeekNumber).
    Assign(map[string]interface{}{
      "reading_completed": row.ReadingCompleted,
      "tasks_completed":   row.TasksCompleted,
      "quiz_score":        row.QuizScore,
      "quiz_answers":      row.QuizAnswers,
    }).
    FirstOrCreate(row).Error; err != nil {
    return err
  }
  return nil
}




