package model

import "time"

// ProjectPost is a showcased project.
type ProjectPost struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProjectName string    `json:"project_name" gorm:"uniqueIndex;size:75;not null"`
	Summary     string    `json:"summary" gorm:"type:text;not null"`
	GithubURL   string    `json:"github_url" gorm:"size:250;not null"`
	WebsiteURL  string    `json:"website_url,omitempty" gorm:"size:250"`
	ImageURL    string    `json:"image_url" gorm:"size:250;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName keeps the table name used by earlier deployments.
func (ProjectPost) TableName() string {
	return "projects"
}
