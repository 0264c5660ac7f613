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

type WeeklyContentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.WeeklyContent) error
  GetByPlanAndWeek(ctx context.Context, tx *gorm.DB, planID uuid.UUID, week int) (*types.WeeklyContent, error)
  ListByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.WeeklyContent, error)
  Update(ctx context.Context, tx *gorm.DB, row *types.WeeklyContent) error
}

type weeklyContentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewWeeklyContentRepo(db *gorm.DB, baseLog *logger.Logger) WeeklyContentRepo {
  repoLog := baseLog.With("repo", "WeeklyContentRepo")
  return &weeklyContentRepo{db: db, log: repoLog}
}

func (r *weeklyContentRepo) Create(ctx context.Context, tx *gorm.DB, row *types.WeeklyContent) error {
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

func (r *weeklyContentRepo) GetByPlanAndWeek(ctx context.Context, tx *gorm.DB, planID uuid.UUID, week int) (*types.WeeklyContent, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.WeeklyContent
  if err := transaction.WithContext(ctx).
    Where("learning_plan_id = ? AND week_number = ?", planID, week).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.ErrNotFound
    }
    return nil, err
  }
  return &result, nil
}

func (r *weeklyContentRepo) ListByPlanID(ctx context.Context, tx *gorm.DB, planID uuid.UUID) ([]*types.WeeklyContent, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.WeeklyContent
  if err := transaction.WithContext(ctx).
    Where("learning_plan_id = ?", planID).
    Order("week_number ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *weeklyContentRepo) Update(ctx context.Context, tx *gorm.DB, row *types.WeeklyContent) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).Save(row).Error; err != nil {
    return err
  }
  return nil
}




