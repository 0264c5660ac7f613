package services

import (
  "context"
  "fmt"
  "os"
  "path/filepath"
  "sort"
  "strings"
  "unicode/utf8"

  git "github.com/go-git/go-git/v5"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/pkg/apperr"
  "github.com/onboardly/onboardly-backend/internal/utils"
)

const binaryPlaceholder = "<Binary file or non-UTF-8 content>"

type FileEntry struct {
  Name string `json:"name"`
  Path string `json:"path"`
  Type string `json:"type"`
  Size int64  `json:"size"`
}

// FileService is a read-through clone cache backing the code browser. Repos
// are shallow-cloned on first access and kept under the storage dir.
type FileService interface {
  EnsureRepo(ctx context.Context, codebaseID, repoURL string) error
  ListFiles(codebaseID, subdir string) ([]FileEntry, error)
  FileContent(codebaseID, filePath string) (string, error)
}

type fileService struct {
  storageDir string
  log        *logger.Logger
}

func NewFileService(log *logger.Logger) FileService {
  serviceLog := log.With("service", "FileService")
  storageDir := utils.GetEnv("CODEBASE_STORAGE_DIR", "storage/codebases", log)
  if err := os.MkdirAll(storageDir, 0o755); err != nil {
    serviceLog.Warn("Failed to create storage dir", "dir", storageDir, "error", err)
  }
  return &fileService{storageDir: storageDir, log: serviceLog}
}

func (s *fileService) repoPath(codebaseID string) string {
  return filepath.Join(s.storageDir, codebaseID)
}

func (s *fileService) EnsureRepo(ctx context.Context, codebaseID, repoURL string) error {
  repoPath := s.repoPath(codebaseID)
  if _, err := os.Stat(repoPath); err == nil {
    return nil
  }

  s.log.Info("Cloning repository for browsing", "codebase_id", codebaseID, "url", repoURL)
  _, err := git.PlainCloneContext(ctx, repoPath, false, &git.CloneOptions{
    URL:          repoURL,
    Depth:        1,
    SingleBranch: true,
  })
  if err != nil {
    // A half-finished checkout would shadow every future clone attempt.
    os.RemoveAll(repoPath)
    return fmt.Errorf("failed to clone %s: %w", repoURL, err)
  }
  return nil
}

// resolve joins a user-supplied relative path onto the repo root and rejects
// anything that escapes it.
func (s *fileService) resolve(codebaseID, rel string) (string, string, error) {
  repoPath := s.repoPath(codebaseID)
  target := filepath.Join(repoPath, filepath.FromSlash(rel))
  relBack, err := filepath.Rel(repoPath, target)
  if err != nil || relBack == ".." || strings.HasPrefix(relBack, ".."+string(filepath.Separator)) {
    return "", "", apperr.ErrInvalidPath
  }
  return repoPath, target, nil
}

func (s *fileService) ListFiles(codebaseID, subdir string) ([]FileEntry, error) {
  _, targetDir, err := s.resolve(codebaseID, subdir)
  if err != nil {
    return nil, err
  }

  info, err := os.Stat(targetDir)
  if err != nil || !info.IsDir() {
    return []FileEntry{}, nil
  }

  entries, err := os.ReadDir(targetDir)
  if err != nil {
    s.log.Warn("Failed to read directory", "dir", targetDir, "error", err)
    return []FileEntry{}, nil
  }

  // Directories first, then case-insensitive by name.
  sort.Slice(entries, func(i, j int) bool {
    if entries[i].IsDir() != entries[j].IsDir() {
      return entries[i].IsDir()
    }
    return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
  })

  items := make([]FileEntry, 0, len(entries))
  for _, entry := range entries {
    if strings.HasPrefix(entry.Name(), ".git") {
      continue
    }
    item := FileEntry{
      Name: entry.Name(),
      Path: filepath.ToSlash(filepath.Join(subdir, entry.Name())),
      Type: "file",
    }
    if entry.IsDir() {
      item.Type = "dir"
    } else if fi, err := entry.Info(); err == nil {
      item.Size = fi.Size()
    }
    items = append(items, item)
  }
  return items, nil
}

func (s *fileService) FileContent(codebaseID, filePath string) (string, error) {
  _, target, err := s.resolve(codebaseID, filePath)
  if err != nil {
    return "", err
  }

  info, err := os.Stat(target)
  if err != nil || info.IsDir() {
    return "", apperr.ErrNotFound
  }

  data, err := os.ReadFile(target)
  if err != nil {
    return "", apperr.ErrNotFound
  }
  if !utf8.Valid(data) {
    return binaryPlaceholder, nil
  }
  return string(data), nil
}




