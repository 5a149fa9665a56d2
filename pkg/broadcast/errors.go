package broadcast

import "fmt"

// ErrHubClosed is returned when publishing to a closed hub
type ErrHubClosed struct{}

func (e ErrHubClosed) Error() string {
	return "broadcast: hub is closed"
}

// ErrNoSubscribers is returned when a publish found no live subscription.
// It is informational: the message is simply discarded.
type ErrNoSubscribers struct{}

func (e ErrNoSubscribers) Error() string {
	return "broadcast: no subscribers"
}

// ErrClosed is returned by a subscription once it is closed and its backlog is drained
type ErrClosed struct{}

func (e ErrClosed) Error() string {
	return "broadcast: subscription is closed"
}

// ErrEmpty is returned by TryRecv when nothing is pending
type ErrEmpty struct{}

func (e ErrEmpty) Error() string {
	return "broadcast: no pending messages"
}

// ErrLagged is returned when a subscription fell behind and the hub dropped
// its oldest messages. Receiving may continue with the retained messages.
type ErrLagged struct {
	Skipped int
}

func (e *ErrLagged) Error() string {
	return fmt.Sprintf("broadcast: subscriber lagged, %d messages skipped", e.Skipped)
}
