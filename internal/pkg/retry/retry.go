package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

// RetryConfig controls retries of idempotent outbound calls such as chat
// messages. Calls to the RAG service are never retried.
type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay    time.Duration `env:"DELAY" envDefault:"500ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"5s"`
}

// DelayHint lets an error ask for a specific wait, e.g. Telegram's retry_after
type DelayHint func(err error) (time.Duration, bool)

// Do runs fn until it succeeds, retryable reports false, or attempts run out.
// The last error is returned unwrapped.
func (rc RetryConfig) Do(ctx context.Context, fn func() error, retryable func(error) bool, hint DelayHint) error {
	return retry.Do(fn, rc.options(ctx, retryable, hint)...)
}

func (rc RetryConfig) options(ctx context.Context, retryable func(error) bool, hint DelayHint) []retry.Option {
	attempts := rc.Attempts
	if attempts == 0 {
		attempts = 1
	}

	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(rc.Delay),
		retry.MaxDelay(rc.MaxDelay),
		retry.LastErrorOnly(true),
	}
	if retryable != nil {
		opts = append(opts, retry.RetryIf(retryable))
	}
	if hint != nil {
		opts = append(opts, retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			if d, ok := hint(err); ok {
				return d
			}
			return retry.BackOffDelay(n, err, config)
		}))
	}

	return opts
}
