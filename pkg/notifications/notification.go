package notifications

import (
	"github.com/google/uuid"
)

// Notification describes a single event shown to every connected client.
// It is an immutable value: it carries neither delivery state nor anything
// specific to a connection.
type Notification struct {
	ID       uuid.UUID `json:"id"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
}

// New creates a notification with a fresh random identifier.
func New(severity Severity, message string) Notification {
	return Notification{
		ID:       uuid.New(),
		Severity: severity,
		Message:  message,
	}
}

// Success is a shorthand for New(SeveritySuccess, message).
func Success(message string) Notification {
	return New(SeveritySuccess, message)
}

// Error is a shorthand for New(SeverityError, message).
func Error(message string) Notification {
	return New(SeverityError, message)
}
