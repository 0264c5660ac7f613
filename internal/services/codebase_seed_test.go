package services

import (
  "context"
  "os"
  "path/filepath"
  "testing"

  "github.com/onboardly/onboardly-backend/internal/repos"
)

const seedYAML = `codebases:
  - id: rocksdb
    name: RocksDB
    repository_url: https://github.com/facebook/rocksdb
  - id: private
    name: Private
    repository_url: https://github.com/example/private
    github_token: tok_123
  - id: broken
    name: Missing URL
`

func TestSeedCodebases_UpsertsEntries(t *testing.T) {
  gdb := newTestDB(t)
  log := newTestLogger(t)
  configRepo := repos.NewCodebaseConfigRepo(gdb, log)

  path := filepath.Join(t.TempDir(), "codebases.yaml")
  if err := os.WriteFile(path, []byte(seedYAML), 0o644); err != nil {
    t.Fatalf("failed to write seed file: %v", err)
  }

  if err := SeedCodebases(context.Background(), path, configRepo, log); err != nil {
    t.Fatalf("unexpected err: %v", err)
  }

  all, err := configRepo.List(context.Background(), nil)
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  // The entry without a repository_url is skipped.
  if len(all) != 2 {
    t.Fatalf("expected 2 codebases, got %d", len(all))
  }

  private, err := configRepo.GetByID(context.Background(), nil, "private")
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if private.GithubToken == nil || *private.GithubToken != "tok_123" {
    t.Fatalf("expected token persisted")
  }

  // Re-seeding is idempotent.
  if err := SeedCodebases(context.Background(), path, configRepo, log); err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  all, err = configRepo.List(context.Background(), nil)
  if err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
  if len(all) != 2 {
    t.Fatalf("expected 2 codebases after re-seed, got %d", len(all))
  }
}

func TestSeedCodebases_MissingFileIsNotAnError(t *testing.T) {
  gdb := newTestDB(t)
  log := newTestLogger(t)
  configRepo := repos.NewCodebaseConfigRepo(gdb, log)

  if err := SeedCodebases(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), configRepo, log); err != nil {
    t.Fatalf("unexpected err: %v", err)
  }
}




