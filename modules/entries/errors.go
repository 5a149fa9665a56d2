package entries

import "errors"

var (
	// ErrMalformedIdentifier is returned for entry ids that are not UUIDs.
	ErrMalformedIdentifier = errors.New("entries: malformed identifier")
	// ErrRepository wraps failures of the entry repository.
	ErrRepository = errors.New("entries: repository failure")
)
