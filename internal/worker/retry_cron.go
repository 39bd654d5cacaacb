package worker

// retry_cron.go
// Background goroutine that periodically moves dead-lettered jobs back onto
// their live queue. Skips ticks while the breaker is open so a struggling
// Redis is not hammered with replays.

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/thiagofdruzian/ERP/internal/infra"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	RDB    *redis.Client
	CB     *infra.CircuitBreaker
	Queues []string
}

// StartRetryCron launches a background goroutine that ticks every 30s and
// replays up to retryBatchSize DLQ entries per queue.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				if cfg.CB != nil && cfg.CB.State() == infra.CBOpen {
					log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
					continue
				}
				for _, q := range cfg.Queues {
					if _, err := replayDLQ(ctx, cfg.RDB, q, retryBatchSize); err != nil {
						log.Error().Err(err).Str("queue", q).Msg("retry_cron: replay failed")
					}
				}
			}
		}
	}()
}

// replayDLQ pops up to batch entries from dlq:{queue}. Entries still under
// MaxJobAttempts are re-queued with their attempt count; the rest are parked.
// Returns how many jobs were re-queued.
func replayDLQ(ctx context.Context, rdb *redis.Client, queue string, batch int) (int, error) {
	requeued := 0
	for i := 0; i < batch; i++ {
		raw, err := rdb.RPop(ctx, DLQPrefix+queue).Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return requeued, err
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("retry_cron: dropping malformed DLQ entry")
			continue
		}

		if entry.Attempts >= MaxJobAttempts {
			if err := rdb.LPush(ctx, ParkedPrefix+queue, raw).Err(); err != nil {
				return requeued, err
			}
			log.Warn().Str("queue", queue).Str("job_type", entry.JobType).Int("attempts", entry.Attempts).
				Msg("retry_cron: job parked")
			continue
		}

		job := Job{Type: entry.JobType, Payload: entry.Payload, Attempts: entry.Attempts}
		if err := pushJob(ctx, rdb, queue, job); err != nil {
			return requeued, err
		}
		requeued++
	}
	if requeued > 0 {
		log.Info().Str("queue", queue).Int("requeued", requeued).Msg("retry_cron: DLQ replayed")
	}
	return requeued, nil
}
