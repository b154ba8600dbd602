package workqueue

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config groups all tunables. Values are taken from environment variables with
// the prefix "SMP_QUEUE_". Example: SMP_QUEUE_SIZE=256 SMP_QUEUE_IDLE_TIMEOUT=2m .
type Config struct {
	QueueSize      int           `envconfig:"SIZE"            default:"128"`
	EnqueueTimeout time.Duration `envconfig:"ENQUEUE_TIMEOUT" default:"100ms"`
	IdleTimeout    time.Duration `envconfig:"IDLE_TIMEOUT"    default:"1m"`

	// ErrorHandler is called synchronously after a Job returns a non-nil error.
	// Leave nil if you do not care.
	ErrorHandler func(error) `envconfig:"-"`
}

// LoadConfig populates Config from environment variables (prefix SMP_QUEUE_).
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("SMP_QUEUE", &c)
}
