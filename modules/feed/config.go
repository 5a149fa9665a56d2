package feed

import "time"

// Config holds notification stream settings loaded from the environment.
type Config struct {
	// Heartbeat is the idle interval after which a keep-alive frame is sent.
	Heartbeat time.Duration `env:"NOTIFY_HEARTBEAT_INTERVAL" envDefault:"5s"`
}
