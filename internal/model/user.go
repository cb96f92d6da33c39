package model

import "time"

// AdminSlot is the only value the unique Slot column may hold, so the table can never
// contain more than one admin.
const AdminSlot = 1

// User is the site administrator account.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:30;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:75;not null"`
	PasswordHash string    `json:"-" gorm:"size:200;not null"` // Never expose in JSON
	Slot         int       `json:"-" gorm:"uniqueIndex;not null;default:1"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProvisioningState reports whether the admin account has been created.
type ProvisioningState int

const (
	Unprovisioned ProvisioningState = iota
	Provisioned
)

func (s ProvisioningState) String() string {
	if s == Provisioned {
		return "provisioned"
	}
	return "unprovisioned"
}
