package broadcast

// Message wraps data of type T for type-safe broadcasting.
type Message[T any] struct {
	// Seq is the position of the message in the hub's publish order, starting at 1.
	// Every subscription observes a strictly increasing subsequence of it.
	Seq  uint64
	Data T
}

// Metrics receives hub events.
// Implementations must be safe for concurrent use and must not block:
// they are invoked while the hub holds its registry lock.
type Metrics interface {
	// SubscribersChanged reports the number of live subscriptions after a change.
	SubscribersChanged(n int)

	// Published reports how many subscriptions a single publish reached.
	Published(delivered int)

	// Lagged reports how many backlog entries a single publish dropped.
	Lagged(skipped int)
}

type noopMetrics struct{}

func (noopMetrics) SubscribersChanged(int) {}
func (noopMetrics) Published(int)          {}
func (noopMetrics) Lagged(int)             {}

// DefaultCapacity is the per-subscription backlog size used when none is configured.
const DefaultCapacity = 10

// Config holds hub settings that can be loaded from the environment.
type Config struct {
	Capacity int `env:"BROADCAST_CAPACITY" envDefault:"10"` // Capacity is the per-subscription backlog size.
}

// Option configures a Hub.
type Option func(*options)

type options struct {
	capacity int
	metrics  Metrics
}

// WithCapacity sets the backlog size of every subscription.
// Values below 1 are raised to 1.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithMetrics registers a metrics sink. Nil is ignored.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// NewHubFromConfig creates a hub from the provided Config.
// Options passed explicitly are applied after the config values.
func NewHubFromConfig[T any](cfg Config, opts ...Option) *Hub[T] {
	configOpts := make([]Option, 0, len(opts)+1)
	if cfg.Capacity > 0 {
		configOpts = append(configOpts, WithCapacity(cfg.Capacity))
	}
	configOpts = append(configOpts, opts...)
	return NewHub[T](configOpts...)
}
