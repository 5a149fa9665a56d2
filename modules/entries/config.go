package entries

import (
	"time"

	"github.com/aserowy/htmx-playground/pkg/notifications"
)

// Config holds entry module settings loaded from the environment.
type Config struct {
	// DeleteSeverity labels the notification published after a deletion.
	DeleteSeverity notifications.Severity `env:"ENTRIES_DELETE_SEVERITY" envDefault:"success"`
	// ListDelay postpones every list response to show off lazy loading.
	ListDelay time.Duration `env:"ENTRIES_LIST_DELAY" envDefault:"0s"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{DeleteSeverity: notifications.SeveritySuccess}
}
