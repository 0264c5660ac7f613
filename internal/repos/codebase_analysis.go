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

type CodebaseAnalysisRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.CodebaseAnalysis) error
  GetLatestByCodebaseID(ctx context.Context, tx *gorm.DB, codebaseID string) (*types.CodebaseAnalysis, error)
}

type codebaseAnalysisRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCodebaseAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) CodebaseAnalysisRepo {
  repoLog := baseLog.With("repo", "CodebaseAnalysisRepo")
  return &codebaseAnalysisRepo{db: db, log: repoLog}
}

func (r *codebaseAnalysisRepo) Create(ctx context.Context, tx *gorm.DB, row *types.CodebaseAnalysis) error {
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

func (r *codebaseAnalysisRepo) GetLatestByCodebaseID(ctx context.Context, tx *gorm.DB, codebaseID string) (*types.CodebaseAnalysis, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.CodebaseAnalysis
  if err := transaction.WithContext(ctx).
    Where("codebase_id = ?", codebaseID).
    Order("analyzed_at DESC").
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.ErrNotFound
    }
    return nil, err
  }
  return &result, nil
}




