package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/thiagofdruzian/ERP/internal/infra"
	"github.com/thiagofdruzian/ERP/internal/model"
	"github.com/thiagofdruzian/ERP/internal/repository"
)

const (
	QueueAudit = "jobs:audit"
	QueueEmail = "jobs:email"

	jobTypeAudit = "audit"
	jobTypeEmail = "email"

	// MaxJobAttempts is how many times a job is tried before it is parked.
	MaxJobAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// AuditPayload is one audit event as produced by the services.
type AuditPayload struct {
	Username   string    `json:"username"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Details    string    `json:"details"`
	At         time.Time `json:"at"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
	cb  *infra.CircuitBreaker
}

func NewDispatcher(rdb *redis.Client, cb *infra.CircuitBreaker) *Dispatcher {
	return &Dispatcher{rdb: rdb, cb: cb}
}

// EnqueueAudit pushes an audit event to Redis through the breaker; callers
// treat a failure as a lost notification, never as a failed operation.
func (d *Dispatcher) EnqueueAudit(ctx context.Context, p AuditPayload) error {
	if p.At.IsZero() {
		p.At = time.Now().UTC()
	}
	return d.cb.Execute(func() error {
		return enqueue(ctx, d.rdb, QueueAudit, jobTypeAudit, p, 0)
	})
}

// EnqueueEmail queues a quote PDF for delivery. Unlike audit events the
// caller needs to know when this fails.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, p EmailPayload) error {
	return d.cb.Execute(func() error {
		return enqueue(ctx, d.rdb, QueueEmail, jobTypeEmail, p, 0)
	})
}

// BreakerState reports the audit breaker state.
func (d *Dispatcher) BreakerState() infra.CBState { return d.cb.State() }

func enqueue(ctx context.Context, rdb *redis.Client, queue, jobType string, payload interface{}, attempts int) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return pushJob(ctx, rdb, queue, Job{Type: jobType, Payload: data, Attempts: attempts})
}

func pushJob(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// Pool consumes the job queues and hands each job to its handler.
type Pool struct {
	rdb   *redis.Client
	audit repository.AuditRepository
	email *EmailWorker

	errBackoff time.Duration
}

// dequeueErrorBackoff is the pause after a failed BRPOP.
const dequeueErrorBackoff = time.Second

func NewPool(rdb *redis.Client, audit repository.AuditRepository) *Pool {
	return &Pool{rdb: rdb, audit: audit, errBackoff: dequeueErrorBackoff}
}

// WithEmail enables consumption of QueueEmail.
func (p *Pool) WithEmail(w *EmailWorker) *Pool {
	p.email = w
	return p
}

func (p *Pool) queues() []string {
	if p.email != nil {
		return []string{QueueAudit, QueueEmail}
	}
	return []string{QueueAudit}
}

// Start launches numWorkers goroutines consuming the queues.
// Each goroutine blocks on BRPOP, so idle workers cost nothing.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	queues := p.queues()
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, i, queues)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func (p *Pool) run(ctx context.Context, id int, queues []string) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop, waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				if !idleOrCancelled(err) {
					log.Debug().Err(err).Int("worker", id).Msg("worker: dequeue failed, backing off")
					p.backoff(ctx)
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			_ = p.processJob(ctx, result[0], result[1])
		}
	}
}

// idleOrCancelled is true for a BRPOP timeout (redis.Nil) or shutdown.
func idleOrCancelled(err error) bool {
	return errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// backoff pauses after a Redis error so workers do not spin while it is down.
func (p *Pool) backoff(ctx context.Context) {
	t := time.NewTimer(p.errBackoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// processJob runs one raw job. Failed jobs go to the DLQ with their attempt
// count bumped; the error is returned for tests and logging only.
func (p *Pool) processJob(ctx context.Context, queue, raw string) error {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return err
	}

	var err error
	switch job.Type {
	case jobTypeAudit:
		err = p.handleAudit(ctx, job.Payload)
	case jobTypeEmail:
		if p.email == nil {
			err = errors.New("email delivery not configured")
			break
		}
		err = p.email.Process(ctx, job.Payload)
	default:
		err = fmt.Errorf("unknown job type %q", job.Type)
	}
	if err != nil {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts+1)
		return err
	}

	log.Debug().Str("type", job.Type).Str("queue", queue).Msg("job processed")
	return nil
}

func (p *Pool) handleAudit(ctx context.Context, payload json.RawMessage) error {
	var ev AuditPayload
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("decode audit payload: %w", err)
	}
	if ev.Action == "" {
		return errors.New("audit payload without action")
	}
	entry := &model.AuditLog{
		Username:   ev.Username,
		Action:     ev.Action,
		EntityType: ev.EntityType,
		EntityID:   ev.EntityID,
		Details:    ev.Details,
		CreatedAt:  ev.At.UTC(),
	}
	return p.audit.Create(ctx, entry)
}
