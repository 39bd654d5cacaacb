package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thiagofdruzian/ERP/internal/dto"
	"github.com/thiagofdruzian/ERP/internal/repository"
	"github.com/thiagofdruzian/ERP/internal/worker"
)

// AuditDispatcher receives fire-and-forget audit events (worker.Dispatcher).
type AuditDispatcher interface {
	EnqueueAudit(ctx context.Context, p worker.AuditPayload) error
}

// EmailDispatcher queues quote PDFs for delivery (worker.Dispatcher).
type EmailDispatcher interface {
	EnqueueEmail(ctx context.Context, p worker.EmailPayload) error
}

// notify enqueues an audit event; failures are logged and swallowed so the
// audited operation never fails because of its audit trail.
func notify(ctx context.Context, d AuditDispatcher, username, action, entityType, entityID, details string) {
	if d == nil {
		return
	}
	err := d.EnqueueAudit(ctx, worker.AuditPayload{
		Username:   username,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		At:         time.Now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Str("action", action).Str("entity_id", entityID).Msg("audit: enqueue failed")
	}
}

type AuditService interface {
	ListRecent(ctx context.Context, limit int) ([]dto.AuditLogResponse, error)
}

type auditService struct {
	repo         repository.AuditRepository
	defaultLimit int
}

func NewAuditService(repo repository.AuditRepository, defaultLimit int) AuditService {
	return &auditService{repo: repo, defaultLimit: defaultLimit}
}

// ListRecent returns newest-first entries; limit 0 means the configured default.
func (s *auditService) ListRecent(ctx context.Context, limit int) ([]dto.AuditLogResponse, error) {
	if limit == 0 {
		limit = s.defaultLimit
	}
	rows, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AuditLogResponse, len(rows))
	for i, r := range rows {
		resp[i] = dto.AuditLogResponse{
			ID:         r.ID.String(),
			Username:   r.Username,
			Action:     r.Action,
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
			Details:    r.Details,
			CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return resp, nil
}
