package domain

import "time"

// ApplicationStatus enumerates lifecycle states of an application.
type ApplicationStatus string

const (
	ApplicationStatusNew        ApplicationStatus = "NEW"
	ApplicationStatusInProgress ApplicationStatus = "IN_PROGRESS"
	ApplicationStatusDone       ApplicationStatus = "DONE"
	ApplicationStatusCancelled  ApplicationStatus = "CANCELLED"
)

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusNew, ApplicationStatusInProgress, ApplicationStatusDone, ApplicationStatusCancelled:
		return true
	}
	return false
}

// Application is a request filed by an account, optionally for a product.
type Application struct {
	ID          string
	AccountID   string
	ProductID   *string
	Title       string
	Description string
	Quantity    int
	Status      ApplicationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	AccountID *string
	Status    *ApplicationStatus
}
