package entries

import (
	"fmt"

	"github.com/google/uuid"
)

// Entry is a single item of the playground list.
type Entry struct {
	ID      uuid.UUID
	Content string
}

// ParseID parses an entry identifier from its textual form.
// Any input that is not a UUID yields an error wrapping ErrMalformedIdentifier.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w %q: %w", ErrMalformedIdentifier, s, err)
	}
	return id, nil
}
