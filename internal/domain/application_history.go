package domain

import "time"

// ApplicationChangeType captures what changed in a history entry.
type ApplicationChangeType string

const (
	ChangeTypeStatus  ApplicationChangeType = "STATUS_CHANGE"
	ChangeTypeContent ApplicationChangeType = "CONTENT_CHANGE"
)

// ApplicationHistory is an immutable audit trail entry.
type ApplicationHistory struct {
	ID            string
	ApplicationID string
	ChangedByKind string
	ChangedByID   string
	ChangeType    ApplicationChangeType
	OldValue      map[string]any
	NewValue      map[string]any
	CreatedAt     time.Time
}
