package notifications

import "fmt"

// Severity is the outcome class of the operation that triggered a notification.
// The set is closed: every switch over it must handle all values listed in Severities.
type Severity uint8

const (
	SeveritySuccess Severity = iota + 1
	SeverityError
)

// Severities returns every valid severity in declaration order.
func Severities() []Severity {
	return []Severity{SeveritySuccess, SeverityError}
}

// String returns the canonical lower-case name, or a diagnostic for unknown values.
func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the declared severities.
func (s Severity) Valid() bool {
	switch s {
	case SeveritySuccess, SeverityError:
		return true
	default:
		return false
	}
}

// ParseSeverity converts a canonical name back into a Severity.
func ParseSeverity(name string) (Severity, error) {
	for _, s := range Severities() {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSeverity, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeverity, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// It is also what lets env-tagged config fields hold a Severity.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
