package types

import (
	"time"
)

type CodebaseConfig struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	RepositoryURL string    `gorm:"column:repository_url;not null" json:"repository_url"`
	GithubToken   *string   `gorm:"column:github_token" json:"-"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

func (CodebaseConfig) TableName() string { return "codebase_configs" }




