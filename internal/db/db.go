package db

import (
  "fmt"
  "strings"

  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"

  "github.com/onboardly/onboardly-backend/internal/logger"
  "github.com/onboardly/onboardly-backend/internal/types"
  "github.com/onboardly/onboardly-backend/internal/utils"
)

type Service struct {
  db  *gorm.DB
  log *logger.Logger
}

// NewService opens the configured database. Postgres is the default;
// DB_DRIVER=sqlite opens a file (or :memory:) database, which is also what
// the test suites use.
func NewService(log *logger.Logger) (*Service, error) {
  serviceLog := log.With("service", "DBService")

  driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", log))
  if driver == "sqlite" {
    path := utils.GetEnv("SQLITE_PATH", "onboardly.db", log)
    log.Info("Connecting to SQLite...", "path", path)
    gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
    if err != nil {
      log.Error("Failed to connect to SQLite", "error", err)
      return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
    }
    return &Service{db: gdb, log: serviceLog}, nil
  }

  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "onboardly", log)

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("failed to connect to postgres: %w", err)
  }
  return &Service{db: gdb, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  if err := s.db.AutoMigrate(AllModels()...); err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  return nil
}

func (s *Service) DB() *gorm.DB {
  return s.db
}

// AllModels is shared with the test helpers that migrate in-memory SQLite.
func AllModels() []interface{} {
  return []interface{}{
    &types.Candidate{},
    &types.CodebaseConfig{},
    &types.CodebaseAnalysis{},
    &types.MasterPlan{},
    &types.LearningPlan{},
    &types.WeeklyContent{},
    &types.Progress{},
  }
}




