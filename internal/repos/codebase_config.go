package repos

import (
  "context"
  "errors"

  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/pkg/apperr"
  "github.com/onboardly/onboardly-backend/internal/types"
)

type CodebaseConfigRepo interface {
  Upsert(ctx context.Context, tx *gorm.DB, row *types.CodebaseConfig) error
  GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.CodebaseConfig, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.CodebaseConfig, error)
}

type codebaseConfigRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCodebaseConfigRepo(db *gorm.DB, baseLog *logger.Logger) CodebaseConfigRepo {
  repoLog := baseLog.With("repo", "CodebaseConfigRepo")
  return &codebaseConfigRepo{db: db, log: repoLog}
}

func (r *codebaseConfigRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.CodebaseConfig) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "id"}},
      DoUpdates: clause.AssignmentColumns([]string{"name", "repository_url", "github_token"}),
    }).
    Create(row).Error; err != nil {
    return err
  }
  return nil
}

func (r *codebaseConfigRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.CodebaseConfig, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.CodebaseConfig
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.ErrNotFound
    }
    return nil, err
  }
  return &result, nil
}

func (r *codebaseConfigRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.CodebaseConfig, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CodebaseConfig
  if err := transaction.WithContext(ctx).
    Order("id ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}




