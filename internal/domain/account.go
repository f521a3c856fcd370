package domain

import "time"

// Account is a portal user able to log in and file applications.
type Account struct {
	ID                    string
	Username              string
	PasswordHash          string
	Email                 string
	IsActive              bool
	LastUpdatedDeviceInfo map[string]any
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
