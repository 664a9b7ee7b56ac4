package prefetch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/algority/algority/internal/questiongen"
)

// GenerateFunc produces the speculative question for a warm request.
type GenerateFunc func(ctx context.Context) (*questiongen.Question, error)

// Warmer fills the cache in the background so the next user action hits
// the fast path. Warm is fire-and-forget: it is never awaited by the
// interactive path and a failed generation is logged and dropped, never
// surfaced to the user.
type Warmer struct {
	cache   Cache
	logger  *zap.Logger
	timeout time.Duration

	done chan struct{}
	sem  chan struct{}
}

// NewWarmer creates a Warmer. The logger must not be nil; pass
// zap.NewNop() to discard.
func NewWarmer(cache Cache, logger *zap.Logger, timeout time.Duration) *Warmer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Warmer{
		cache:   cache,
		logger:  logger,
		timeout: timeout,
		done:    make(chan struct{}),
		// A small in-flight bound; a superseded request simply
		// overwrites the cache entry when it lands.
		sem: make(chan struct{}, 4),
	}
}

// Warm generates a question in a detached goroutine and stores it under
// key. Requests past the concurrency limit are dropped (the synchronous
// fallback path stays correct).
func (w *Warmer) Warm(key string, gen GenerateFunc) {
	select {
	case <-w.done:
		return
	case w.sem <- struct{}{}:
	default:
		w.logger.Debug("prefetch warm dropped, too many in flight", zap.String("key", key))
		return
	}

	go func() {
		defer func() { <-w.sem }()

		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		defer cancel()

		q, err := gen(ctx)
		if err != nil {
			w.logger.Warn("prefetch generation failed",
				zap.String("key", key),
				zap.Error(err),
			)
			return
		}

		select {
		case <-w.done:
		default:
			w.cache.Put(key, q)
			w.logger.Debug("prefetch cached", zap.String("key", key))
		}
	}()
}

// Close stops accepting warm requests and waits for in-flight ones to
// drain.
func (w *Warmer) Close() {
	close(w.done)
	for i := 0; i < cap(w.sem); i++ {
		w.sem <- struct{}{}
	}
}
