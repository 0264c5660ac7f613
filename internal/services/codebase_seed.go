package services

import (
  "context"
  "fmt"
  "os"

  "gopkg.in/yaml.v3"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/repos"
  "github.com/onboardly/onboardly-backend/internal/types"
)

type seedFile struct {
  Codebases []seedEntry `yaml:"codebases"`
}

type seedEntry struct {
  ID            string `yaml:"id"`
  Name          string `yaml:"name"`
  RepositoryURL string `yaml:"repository_url"`
  GithubToken   string `yaml:"github_token"`
}

// SeedCodebases upserts the pre-configured codebases from a YAML file at
// startup. A missing file is not an error; codebases can also be added over
// the API.
func SeedCodebases(ctx context.Context, path string, configRepo repos.CodebaseConfigRepo, log *logger.Logger) error {
  data, err := os.ReadFile(path)
  if err != nil {
    if os.IsNotExist(err) {
      log.Warn("Codebase seed file not found, skipping", "path", path)
      return nil
    }
    return fmt.Errorf("failed to read codebase seed file: %w", err)
  }

  var seed seedFile
  if err := yaml.Unmarshal(data, &seed); err != nil {
    return fmt.Errorf("failed to parse codebase seed file: %w", err)
  }

  for _, entry := range seed.Codebases {
    if entry.ID == "" || entry.RepositoryURL == "" {
      log.Warn("Skipping codebase seed entry with missing id or repository_url", "id", entry.ID)
      continue
    }
    row := &types.CodebaseConfig{
      ID:            entry.ID,
      Name:          entry.Name,
      RepositoryURL: entry.RepositoryURL,
    }
    if entry.GithubToken != "" {
      token := entry.GithubToken
      row.GithubToken = &token
    }
    if err := configRepo.Upsert(ctx, nil, row); err != nil {
      return fmt.Errorf("failed to seed codebase %s: %w", entry.ID, err)
    }
    log.Info("Codebase configuration seeded", "codebase_id", entry.ID)
  }
  return nil
}




