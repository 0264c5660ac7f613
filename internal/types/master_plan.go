package types

import (
	"time"

	"gorm.io/datatypes"
)

// MasterPlan rows are append-only and versioned. The ID embeds the version
// ("rocksdb_v3") and the highest Version per codebase is authoritative.
type MasterPlan struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	CodebaseID   string         `gorm:"column:codebase_id;not null;index" json:"codebase_id"`
	Version      int            `gorm:"column:version;not null" json:"version"`
	PlanOverview string         `gorm:"column:plan_overview;type:text" json:"plan_overview"`
	WeeksData    datatypes.JSON `gorm:"column:weeks_data;type:jsonb;not null" json:"weeks_data"`
	GeneratedAt  time.Time      `gorm:"column:generated_at;not null" json:"generated_at"`
}

func (MasterPlan) TableName() string { return "master_plans" }




