package model

// AllModels returns all models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&User{},
		&Profile{},
		&ProjectPost{},
	}
}
