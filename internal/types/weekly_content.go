package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type WeeklyContent struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	LearningPlanID  uuid.UUID      `gorm:"type:uuid;column:learning_plan_id;not null;index:idx_plan_week,unique" json:"learning_plan_id"`
	WeekNumber      int            `gorm:"column:week_number;not null;index:idx_plan_week,unique" json:"week_number"`
	ReadingMaterial datatypes.JSON `gorm:"column:reading_material;type:jsonb" json:"reading_material"`
	CodingTasks     datatypes.JSON `gorm:"column:coding_tasks;type:jsonb" json:"coding_tasks"`
	Quiz            datatypes.JSON `gorm:"column:quiz;type:jsonb" json:"quiz"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (WeeklyContent) TableName() string { return "weekly_content" }




