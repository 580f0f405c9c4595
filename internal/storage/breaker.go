package storage

import (
	"context"
	"io"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"corpusapi/internal/logging"
)

// BreakerConfig controls when the archive circuit opens.
type BreakerConfig struct {
	Name             string
	FailureThreshold uint32
	Timeout          time.Duration
}

// DefaultBreakerConfig opens after 5 consecutive failures and probes again after 30s.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{Name: "archive", FailureThreshold: 5, Timeout: 30 * time.Second}
}

type breakerStorage struct {
	next Storage
	cb   *gobreaker.CircuitBreaker[ObjectInfo]
}

// NewBreaker wraps next so that a failing archive is skipped quickly instead of
// adding its timeout to every upload.
func NewBreaker(next Storage, cfg BreakerConfig) Storage {
	log := logging.Component("storage")
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("archive circuit breaker state changed")
		},
	}
	return &breakerStorage{next: next, cb: gobreaker.NewCircuitBreaker[ObjectInfo](settings)}
}

func (b *breakerStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	return b.cb.Execute(func() (ObjectInfo, error) {
		return b.next.Put(ctx, key, r, opt)
	})
}

func (b *breakerStorage) Ping(ctx context.Context) error {
	_, err := b.cb.Execute(func() (ObjectInfo, error) {
		return ObjectInfo{}, b.next.Ping(ctx)
	})
	return err
}
