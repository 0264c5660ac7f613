package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LearningPlan struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CandidateID uuid.UUID      `gorm:"type:uuid;column:candidate_id;not null;index" json:"candidate_id"`
	CodebaseID  string         `gorm:"column:codebase_id;not null" json:"codebase_id"`
	PlanData    datatypes.JSON `gorm:"column:plan_data;type:jsonb;not null" json:"plan_data"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (LearningPlan) TableName() string { return "learning_plans" }




