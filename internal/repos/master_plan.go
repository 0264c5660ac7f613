package repos

import (
  "context"
  "errors"

  "gorm.io/gorm"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/pkg/apperr"
  "github.com/onboardly/onboardly-backend/internal/types"
)

type MasterPlanRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.MasterPlan) error
  GetLatestByCodebaseID(ctx context.Context, tx *gorm.DB, codebaseID string) (*types.MasterPlan, error)
  MaxVersion(ctx context.Context, tx *gorm.DB, codebaseID string) (int, error)
}

type masterPlanRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMasterPlanRepo(db *gorm.DB, baseLog *logger.Logger) MasterPlanRepo {
  repoLog := baseLog.With("repo", "MasterPlanRepo")
  return &masterPlanRepo{db: db, log: repoLog}
}

func (r *masterPlanRepo) Create(ctx context.Context, tx *gorm.DB, row *types.MasterPlan) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
    return err
  }
  return nil
}

func (r *masterPlanRepo) GetLatestByCodebaseID(ctx context.Context, tx *gorm.DB, codebaseID string) (*types.MasterPlan, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.MasterPlan
  if err := transaction.WithContext(ctx).
    Where("codebase_id = ?", codebaseID).
    Order("version DESC").
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.ErrNotFound
    }
    return nil, err
  }
  return &result, nil
}

func (r *masterPlanRepo) MaxVersion(ctx context.Context, tx *gorm.DB, codebaseID string) (int, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var maxVersion *int
  if err := transaction.WithContext(ctx).
    Model(&types.MasterPlan{}).
    Where("codebase_id = ?", codebaseID).
    Select("MAX(version)").
    Scan(&maxVersion).Error; err != nil {
    return 0, err
  }
  if maxVersion == nil {
    return 0, nil
  }
  return *maxVersion, nil
}




