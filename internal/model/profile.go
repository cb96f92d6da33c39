package model

import "time"

// Profile is the welcome content shown on the home page. At most one row exists.
type Profile struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ProfileImageURL string    `json:"profile_image_url" gorm:"size:200;not null"`
	Title           string    `json:"title,omitempty" gorm:"size:30"`
	IntroText       string    `json:"intro_text" gorm:"type:text;not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
