package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CodebaseAnalysis rows are append-only; the latest AnalyzedAt wins.
type CodebaseAnalysis struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CodebaseID   string         `gorm:"column:codebase_id;not null;index" json:"codebase_id"`
	AnalysisData datatypes.JSON `gorm:"column:analysis_data;type:jsonb;not null" json:"analysis_data"`
	AnalyzedAt   time.Time      `gorm:"column:analyzed_at;not null" json:"analyzed_at"`
}

func (CodebaseAnalysis) TableName() string { return "codebase_analyses" }




