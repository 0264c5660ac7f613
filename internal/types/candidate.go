package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Candidate struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string         `gorm:"column:name;not null" json:"name"`
	Email          string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	ResumeText     string         `gorm:"column:resume_text;type:text;not null" json:"resume_text"`
	ResumeAnalysis datatypes.JSON `gorm:"column:resume_analysis;type:jsonb" json:"resume_analysis,omitempty"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (Candidate) TableName() string { return "candidates" }




