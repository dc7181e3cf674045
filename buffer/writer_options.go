package buffer

import (
	"fmt"

	"github.com/arloliu/bitpack/internal/options"
	"github.com/arloliu/bitpack/internal/pool"
)

// WriterConfig holds the construction settings of a Writer.
type WriterConfig struct {
	capacity    int
	maxRetained int
}

// WriterOption configures a Writer at construction time.
type WriterOption = options.Option[*WriterConfig]

func defaultWriterConfig() *WriterConfig {
	return &WriterConfig{
		capacity:    pool.DefaultBufferSize,
		maxRetained: pool.DefaultMaxRetainedSize,
	}
}

// WithCapacity sets the initial capacity of the writer's storage.
//
// For pooled writers the capacity is a minimum: a recycled buffer may already be larger.
// A negative capacity is rejected.
func WithCapacity(n int) WriterOption {
	return options.New(func(c *WriterConfig) error {
		if n < 0 {
			return fmt.Errorf("invalid writer capacity: %d", n)
		}
		c.capacity = n

		return nil
	})
}

// WithMaxRetained sets the largest capacity a pooled writer may have and still be
// returned to the pool by Release. Larger buffers are left to the garbage collector.
//
// A non-positive value retains buffers of any size. The option has no effect on
// writers that are not pooled.
func WithMaxRetained(n int) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.maxRetained = n
	})
}
