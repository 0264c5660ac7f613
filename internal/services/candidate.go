package services

import (
  "context"
  "errors"
  "fmt"
  "hash/fnv"
  "strings"

  "github.com/google/uuid"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/pkg/apperr"
  "github.com/onboardly/onboardly-backend/internal/repos"
  "github.com/onboardly/onboardly-backend/internal/types"
)

// CandidateStatus reports whether the background sweep has finished analyzing
// a candidate's resume.
type CandidateStatus struct {
  ID               uuid.UUID   `json:"id"`
  Name             string      `json:"name"`
  AnalysisComplete bool        `json:"analysis_complete"`
  ResumeAnalysis   interface{} `json:"resume_analysis"`
}

type CandidateService interface {
  UploadResume(ctx context.Context, filename, name, email, resumeText string) (*types.Candidate, error)
  List(ctx context.Context) ([]*types.Candidate, error)
  GetStatus(ctx context.Context, candidateID uuid.UUID) (*CandidateStatus, error)
}

type candidateService struct {
  candidateRepo repos.CandidateRepo
  log           *logger.Logger
}

func NewCandidateService(candidateRepo repos.CandidateRepo, log *logger.Logger) CandidateService {
  serviceLog := log.With("service", "CandidateService")
  return &candidateService{candidateRepo: candidateRepo, log: serviceLog}
}

// UploadResume stores the resume immediately; analysis happens later in the
// background sweep. Byte-identical resume text maps to the existing candidate
// so repeat uploads are free.
func (s *candidateService) UploadResume(ctx context.Context, filename, name, email, resumeText string) (*types.Candidate, error) {
  if name == "" && filename != "" {
    name = nameFromFilename(filename)
  }

  existing, err := s.candidateRepo.GetByResumeText(ctx, nil, resumeText)
  if err != nil && !errors.Is(err, apperr.ErrNotFound) {
    return nil, err
  }
  if existing != nil {
    s.log.Info("Found existing candidate with same resume", "candidate_id", existing.ID)
    return existing, nil
  }

  if name == "" {
    name = "Unknown"
  }
  if email == "" {
    email = fallbackEmail(name, resumeText)
  }

  candidate := &types.Candidate{
    Name:       name,
    Email:      email,
    ResumeText: resumeText,
  }
  if err := s.candidateRepo.Create(ctx, nil, candidate); err != nil {
    return nil, fmt.Errorf("failed to save candidate: %w", err)
  }

  s.log.Info("Resume uploaded, analysis pending", "candidate_id", candidate.ID)
  return candidate, nil
}

func (s *candidateService) List(ctx context.Context) ([]*types.Candidate, error) {
  return s.candidateRepo.List(ctx, nil)
}

func (s *candidateService) GetStatus(ctx context.Context, candidateID uuid.UUID) (*CandidateStatus, error) {
  candidate, err := s.candidateRepo.GetByID(ctx, nil, candidateID)
  if err != nil {
    return nil, err
  }
  status := &CandidateStatus{
    ID:               candidate.ID,
    Name:             candidate.Name,
    AnalysisComplete: len(candidate.ResumeAnalysis) > 0,
  }
  if len(candidate.ResumeAnalysis) > 0 {
    status.ResumeAnalysis = candidate.ResumeAnalysis
  }
  return status, nil
}

// nameFromFilename turns "elon_musk.pdf" into "Elon Musk".
func nameFromFilename(filename string) string {
  base := strings.TrimSuffix(strings.TrimSuffix(filename, ".pdf"), ".PDF")
  base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
  words := strings.Fields(base)
  for i, w := range words {
    words[i] = strings.ToUpper(w[:1]) + w[1:]
  }
  return strings.Join(words, " ")
}

func fallbackEmail(name, resumeText string) string {
  if name != "" && name != "Unknown" {
    return strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
  }
  h := fnv.New32a()
  snippet := resumeText
  if len(snippet) > 100 {
    snippet = snippet[:100]
  }
  _, _ = h.Write([]byte(snippet))
  return fmt.Sprintf("candidate_%d@example.com", h.Sum32())
}




