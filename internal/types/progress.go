package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Progress struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CandidateID      uuid.UUID      `gorm:"type:uuid;column:candidate_id;not null;index:idx_candidate_week,unique" json:"candidate_id"`
	WeekNumber       int            `gorm:"column:week_number;not null;index:idx_candidate_week,unique" json:"week_number"`
	ReadingCompleted datatypes.JSON `gorm:"column:reading_completed;type:jsonb" json:"reading_completed"`
	TasksCompleted   datatypes.JSON `gorm:"column:tasks_completed;type:jsonb" json:"tasks_completed"`
	QuizScore        *int           `gorm:"column:quiz_score" json:"quiz_score,omitempty"`
	QuizAnswers      datatypes.JSON `gorm:"column:quiz_answers;type:jsonb" json:"quiz_answers"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
}

func (Progress) TableName() string { return "progress" }




