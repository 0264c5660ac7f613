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

type LearningPlanRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.LearningPlan) error
  GetLatestByCandidateID(ctx context.Context, tx *gorm.DB, candidateID uuid.UUID) (*types.LearningPlan, error)
  GetLatestByCandidateAndCodebase(ctx context.Context, tx *gorm.DB, candidateID uuid.UUID, codebaseID string) (*types.LearningPlan, error)
}

type learningPlanRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLearningPlanRepo(db *gorm.DB, baseLog *logger.Logger) LearningPlanRepo {
  repoLog := baseLog.With("repo", "LearningPlanRepo")
  return &learningPlanRepo{db: db, log: repoLog}
}

func (r *learningPlanRepo) Create(ctx context.Context, tx *gorm.DB, row *types.LearningPlan) error {
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

  if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
    return err
  }
  return nil
}

func (r *learningPlanRepo) GetLatestByCandidateAndCodebase(ctx context.Context, tx *gorm.DB, candidateID uuid.UUID, codebaseID string) (*types.LearningPlan, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.LearningPlan
  if err := transaction.WithContext(ctx).
    Where("candidate_id = ? AND codebase_id = ?", candidateID, codebaseID).
    Order("created_at DESC").
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.ErrNotFound
    }
    return nil, err
  }
  return &result, nil
}

func (r *learningPlanRepo) GetLatestByCandidateID(ctx context.Context, tx *gorm.DB, candidateID uuid.UUID) (*types.LearningPlan, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.LearningPlan
  if err := transaction.WithContext(ctx).
    Where("candidate_id = ?", candidateID).
    Order("created_at DESC").
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.ErrNotFound
    }
    return nil, err
  }
  return &result, nil
}




