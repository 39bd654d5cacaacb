package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagofdruzian/ERP/internal/model"
	"github.com/thiagofdruzian/ERP/internal/repository"
)

type stubAuditRepo struct {
	rows      []model.AuditLog
	lastLimit int
}

var _ repository.AuditRepository = (*stubAuditRepo)(nil)

func (r *stubAuditRepo) Create(_ context.Context, e *model.AuditLog) error {
	r.rows = append(r.rows, *e)
	return nil
}

func (r *stubAuditRepo) ListRecent(_ context.Context, limit int) ([]model.AuditLog, error) {
	r.lastLimit = limit
	return r.rows, nil
}

func TestAuditListRecent_DefaultLimitAndMapping(t *testing.T) {
	at := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	repo := &stubAuditRepo{rows: []model.AuditLog{{
		ID: uuid.New(), Username: "ana", Action: ActionQuoteCreated, EntityType: "quote", EntityID: "q1", CreatedAt: at,
	}}}
	svc := NewAuditService(repo, 300)

	out, err := svc.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 300, repo.lastLimit)
	require.Len(t, out, 1)
	assert.Equal(t, "2026-03-04T10:00:00Z", out[0].CreatedAt)
	assert.Equal(t, ActionQuoteCreated, out[0].Action)

	_, err = svc.ListRecent(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, 25, repo.lastLimit)
}
