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

type CandidateRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.Candidate) error
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Candidate, error)
  GetByResumeText(ctx context.Context, tx *gorm.DB, resumeText string) (*types.Candidate, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Candidate, error)
  ListPendingAnalysis(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Candidate, error)
  UpdateResumeAnalysis(ctx context.Context, tx *gorm.DB, id uuid.UUID, analysis []byte) error
}

type candidateRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCandidateRepo(db *gorm.DB, baseLog *logger.Logger) CandidateRepo {
  repoLog := baseLog.With("repo", "CandidateRepo")
  return &candidateRepo{db: db, log: repoLog}
}

func (r *candidateRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Candidate) error {
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

func (r *candidateRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Candidate, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Candidate
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

func (r *candidateRepo) GetByResumeText(ctx context.Context, tx *gorm.DB, resumeText string) (*types.Candidate, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Candidate
  if err := transaction.WithContext(ctx).
    Where("resume_text = ?", resumeText).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.ErrNotFound
    }
    return nil, err
  }
  return &result, nil
}

func (r *candidateRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Candidate, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Candidate
  if err := transaction.WithContext(ctx).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *candidateRepo) ListPendingAnalysis(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Candidate, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Candidate
  query := transaction.WithContext(ctx).
    Where("resume_analysis IS NULL").
    Order("created_at ASC")
  if limit > 0 {
    query = query.Limit(limit)
  }
  if err := query.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *candidateRepo) UpdateResumeAnalysis(ctx context.Context, tx *gorm.DB, id uuid.UUID, analysis []byte) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Candidate{}).
    Where("id = ?", id).
    Update("resume_analysis", analysis).Error; err != nil {
    return err
  }
  return nil
}




