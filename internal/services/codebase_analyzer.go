package services

import (
  "context"
  "encoding/json"
  "fmt"
  "os"
  "path/filepath"
  "time"

  git "github.com/go-git/go-git/v5"
  githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/repos"
  "github.com/onboardly/onboardly-backend/internal/types"
)

// CodebaseAnalyzerService keeps the append-only analysis cache warm. Refresh
// clones the repository, gathers local stats, runs one structural completion
// and appends a new row. A failed refresh leaves prior rows untouched.
type CodebaseAnalyzerService interface {
  Refresh(ctx context.Context, codebaseID string) (*types.CodebaseAnalysis, error)
  GetLatest(ctx context.Context, codebaseID string) (*types.CodebaseAnalysis, error)
}

type codebaseAnalyzer struct {
  grok         GrokService
  configRepo   repos.CodebaseConfigRepo
  analysisRepo repos.CodebaseAnalysisRepo
  log          *logger.Logger
}

func NewCodebaseAnalyzerService(grok GrokService, configRepo repos.CodebaseConfigRepo, analysisRepo repos.CodebaseAnalysisRepo, log *logger.Logger) CodebaseAnalyzerService {
  serviceLog := log.With("service", "CodebaseAnalyzerService")
  return &codebaseAnalyzer{grok: grok, configRepo: configRepo, analysisRepo: analysisRepo, log: serviceLog}
}

var skippedDirs = map[string]bool{
  ".git":         true,
  "node_modules": true,
  "__pycache__":  true,
  "venv":         true,
  "dist":         true,
  "build":        true,
}

func (s *codebaseAnalyzer) Refresh(ctx context.Context, codebaseID string) (*types.CodebaseAnalysis, error) {
  config, err := s.configRepo.GetByID(ctx, nil, codebaseID)
  if err != nil {
    return nil, fmt.Errorf("codebase %s: %w", codebaseID, err)
  }

  s.log.Info("Starting codebase analysis", "codebase_id", codebaseID)
  analysisData, err := s.cloneAndAnalyze(ctx, config.RepositoryURL, config.GithubToken)
  if err != nil {
    s.log.Error("Codebase analysis failed", "codebase_id", codebaseID, "error", err)
    return nil, err
  }

  payload, err := json.Marshal(analysisData)
  if err != nil {
    return nil, fmt.Errorf("failed to encode analysis data: %w", err)
  }

  row := &types.CodebaseAnalysis{
    CodebaseID:   codebaseID,
    AnalysisData: payload,
    AnalyzedAt:   time.Now().UTC(),
  }
  if err := s.analysisRepo.Create(ctx, nil, row); err != nil {
    return nil, fmt.Errorf("failed to save codebase analysis: %w", err)
  }

  s.log.Info("Codebase analysis saved", "codebase_id", codebaseID)
  return row, nil
}

func (s *codebaseAnalyzer) GetLatest(ctx context.Context, codebaseID string) (*types.CodebaseAnalysis, error) {
  return s.analysisRepo.GetLatestByCodebaseID(ctx, nil, codebaseID)
}

func (s *codebaseAnalyzer) cloneAndAnalyze(ctx context.Context, repoURL string, githubToken *string) (map[string]interface{}, error) {
  tempDir, err := os.MkdirTemp("", "codebase-*")
  if err != nil {
    return nil, fmt.Errorf("failed to create temp dir: %w", err)
  }
  defer os.RemoveAll(tempDir)

  cloneOpts := &git.CloneOptions{
    URL:          repoURL,
    Depth:        1,
    SingleBranch: true,
  }
  if githubToken != nil && *githubToken != "" {
    cloneOpts.Auth = &githttp.BasicAuth{Username: "git", Password: *githubToken}
  }

  s.log.Info("Cloning repository", "url", repoURL)
  if _, err := git.PlainCloneContext(ctx, tempDir, false, cloneOpts); err != nil {
    return nil, fmt.Errorf("failed to clone %s: %w", repoURL, err)
  }

  fileCount, languageStats, err := scanRepoStats(tempDir)
  if err != nil {
    return nil, err
  }

  analysis, err := s.grok.AnalyzeCodebase(ctx, repoURL)
  if err != nil {
    return nil, err
  }

  analysis["local_stats"] = map[string]interface{}{
    "file_count":            fileCount,
    "language_distribution": languageStats,
    "analyzed_at":           time.Now().UTC().Format(time.RFC3339),
  }
  return analysis, nil
}

// scanRepoStats walks the checkout counting files and extensions, skipping
// vendored and generated trees.
func scanRepoStats(root string) (int, map[string]int, error) {
  fileCount := 0
  languageStats := map[string]int{}

  err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
    if err != nil {
      return err
    }
    if d.IsDir() {
      if path != root && skippedDirs[d.Name()] {
        return filepath.SkipDir
      }
      return nil
    }
    fileCount++
    if ext := filepath.Ext(d.Name()); ext != "" {
      languageStats[ext]++
    }
    return nil
  })
  if err != nil {
    return 0, nil, fmt.Errorf("failed to scan repository: %w", err)
  }
  return fileCount, languageStats, nil
}




