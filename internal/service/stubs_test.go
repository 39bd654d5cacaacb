package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thiagofdruzian/ERP/internal/model"
	"github.com/thiagofdruzian/ERP/internal/repository"
	"github.com/thiagofdruzian/ERP/internal/worker"
)

// ── In-memory QuoteRepository stub ───────────────────────────────────────────

type stubQuoteRepo struct {
	heads    map[uuid.UUID]*model.Quote
	versions map[uuid.UUID][]model.Quote
	lastList struct {
		limit  int
		filter repository.QuoteFilter
	}
}

var _ repository.QuoteRepository = (*stubQuoteRepo)(nil)

func newStubQuoteRepo() *stubQuoteRepo {
	return &stubQuoteRepo{heads: map[uuid.UUID]*model.Quote{}, versions: map[uuid.UUID][]model.Quote{}}
}

func (r *stubQuoteRepo) Save(_ context.Context, q *model.Quote) (*model.Quote, error) {
	now := time.Now().UTC()
	head := *q
	if q.ID == uuid.Nil {
		head.ID = uuid.New()
		head.Version = 1
		head.CreatedAt = now
	} else {
		cur, ok := r.heads[q.ID]
		if !ok {
			return nil, repository.ErrNotFound
		}
		if cur.Version != q.Version {
			return nil, repository.ErrConcurrencyConflict
		}
		head.Version = cur.Version + 1
		head.CreatedAt = cur.CreatedAt
	}
	head.UpdatedAt = now
	r.heads[head.ID] = &head
	r.versions[head.ID] = append(r.versions[head.ID], head)
	out := head
	return &out, nil
}

func (r *stubQuoteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Quote, error) {
	q, ok := r.heads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *q
	return &out, nil
}

func (r *stubQuoteRepo) FindVersion(_ context.Context, id uuid.UUID, version int) (*model.Quote, error) {
	if _, ok := r.heads[id]; !ok {
		return nil, repository.ErrNotFound
	}
	for _, v := range r.versions[id] {
		if v.Version == version {
			out := v
			return &out, nil
		}
	}
	return nil, repository.ErrVersionNotFound
}

func (r *stubQuoteRepo) ListVersions(_ context.Context, id uuid.UUID) ([]repository.VersionSummary, error) {
	out := []repository.VersionSummary{}
	vs := r.versions[id]
	for i := len(vs) - 1; i >= 0; i-- {
		out = append(out, repository.VersionSummary{Version: vs[i].Version, Status: vs[i].Status, CreatedAt: vs[i].UpdatedAt})
	}
	return out, nil
}

func (r *stubQuoteRepo) ListRecent(_ context.Context, limit int, f repository.QuoteFilter) ([]model.Quote, error) {
	r.lastList.limit = limit
	r.lastList.filter = f
	var out []model.Quote
	for _, q := range r.heads {
		out = append(out, *q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubQuoteRepo) Duplicate(ctx context.Context, id uuid.UUID, newOwner string) (*model.Quote, error) {
	src, ok := r.heads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *src
	cp.ID = uuid.Nil
	cp.Status = model.StatusDraft
	cp.ProductName = src.ProductName + " (Copia)"
	cp.OwnerUser = newOwner
	return r.Save(ctx, &cp)
}

// ── In-memory settings / rules stubs ─────────────────────────────────────────

type stubSettingsRepo struct {
	values map[string]string
	gets   int
}

var _ repository.SettingsRepository = (*stubSettingsRepo)(nil)

func (r *stubSettingsRepo) Get(_ context.Context, key string) (string, error) {
	r.gets++
	v, ok := r.values[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return v, nil
}

func (r *stubSettingsRepo) Set(_ context.Context, key, value string) error {
	if r.values == nil {
		r.values = map[string]string{}
	}
	r.values[key] = value
	return nil
}

type stubRuleRepo struct {
	rules map[string]model.MinPriceRule
}

var _ repository.MinPriceRuleRepository = (*stubRuleRepo)(nil)

func (r *stubRuleRepo) Upsert(_ context.Context, rule *model.MinPriceRule) error {
	if r.rules == nil {
		r.rules = map[string]model.MinPriceRule{}
	}
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	r.rules[rule.ScopeType+"|"+rule.ScopeKey] = *rule
	return nil
}

func (r *stubRuleRepo) FindActive(_ context.Context, scopeType, scopeKey string) (*model.MinPriceRule, error) {
	rule, ok := r.rules[scopeType+"|"+scopeKey]
	if !ok || !rule.IsActive {
		return nil, repository.ErrNotFound
	}
	return &rule, nil
}

func (r *stubRuleRepo) List(_ context.Context) ([]model.MinPriceRule, error) {
	var out []model.MinPriceRule
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	return out, nil
}

// ── In-memory UsuarioRepository stub ─────────────────────────────────────────

type stubUsuarioRepo struct {
	users map[uuid.UUID]*model.Usuario
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: map[uuid.UUID]*model.Usuario{}}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) && u.Ativo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

// ── Recording audit dispatcher ───────────────────────────────────────────────

type recordingDispatcher struct {
	mu       sync.Mutex
	events   []worker.AuditPayload
	emails   []worker.EmailPayload
	err      error
	emailErr error
}

func (d *recordingDispatcher) EnqueueEmail(_ context.Context, p worker.EmailPayload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.emailErr != nil {
		return d.emailErr
	}
	d.emails = append(d.emails, p)
	return nil
}

func (d *recordingDispatcher) EnqueueAudit(_ context.Context, p worker.AuditPayload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.events = append(d.events, p)
	return nil
}

func (d *recordingDispatcher) actions() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.events))
	for i, e := range d.events {
		out[i] = e.Action
	}
	return out
}
