package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/thiagofdruzian/ERP/internal/dto"
	"github.com/thiagofdruzian/ERP/internal/infra"
	"github.com/thiagofdruzian/ERP/internal/model"
	"github.com/thiagofdruzian/ERP/internal/repository"
	"github.com/thiagofdruzian/ERP/internal/worker"
)

// Defaults applied to blank editor fields.
const (
	DefaultProductName  = "Sem produto"
	DefaultSupplierName = "Sem fornecedor"
)

// Audit actions emitted by the quote service.
const (
	ActionQuoteCreated    = "COTACAO_CRIADA"
	ActionQuoteUpdated    = "COTACAO_ATUALIZADA"
	ActionQuoteDuplicated = "COTACAO_DUPLICADA"
	ActionQuoteEmailed    = "COTACAO_ENVIADA"
	auditEntityQuote      = "quote"
)

type QuoteService interface {
	// Save creates a lineage when id is uuid.Nil, otherwise saves a new
	// version on top of req.Version. The result is recomputed here.
	Save(ctx context.Context, id uuid.UUID, req dto.SaveQuoteRequest, actor string) (*dto.QuoteResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.QuoteResponse, error)
	GetVersion(ctx context.Context, id uuid.UUID, version int) (*dto.QuoteResponse, error)
	ListVersions(ctx context.Context, id uuid.UUID) (*dto.QuoteVersionListResponse, error)
	ListRecent(ctx context.Context, q dto.QuoteListQuery) (*dto.QuoteListResponse, error)
	Duplicate(ctx context.Context, id uuid.UUID, actor string) (*dto.QuoteResponse, error)
	// RenderPDF renders the head (version 0) or a given version.
	RenderPDF(ctx context.Context, id uuid.UUID, version int) ([]byte, error)
	ExportXLSX(ctx context.Context, q dto.QuoteListQuery) ([]byte, error)
	// SendByEmail queues the PDF of the head (or req.Version) for delivery.
	SendByEmail(ctx context.Context, id uuid.UUID, req dto.SendQuoteEmailRequest, actor string) (*dto.SendQuoteEmailResponse, error)
}

type quoteService struct {
	repo         repository.QuoteRepository
	pricing      PricingService
	audit        AuditDispatcher
	mail         EmailDispatcher
	defaultLimit int
}

// NewQuoteService wires the quote store. mail may be nil when SMTP is not
// configured; SendByEmail then fails with ErrEmailDisabled.
func NewQuoteService(repo repository.QuoteRepository, pricing PricingService, audit AuditDispatcher, mail EmailDispatcher, defaultLimit int) QuoteService {
	return &quoteService{repo: repo, pricing: pricing, audit: audit, mail: mail, defaultLimit: defaultLimit}
}

func (s *quoteService) Save(ctx context.Context, id uuid.UUID, req dto.SaveQuoteRequest, actor string) (*dto.QuoteResponse, error) {
	if id != uuid.Nil && req.Version < 1 {
		return nil, ErrVersionRequired
	}

	req.ProductName = withDefault(req.ProductName, DefaultProductName)
	calc, err := s.pricing.Calculate(ctx, req.CalculateRequest)
	if err != nil {
		return nil, err
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		status = model.StatusDraft
	}

	q := &model.Quote{
		ID:           id,
		Version:      req.Version,
		Status:       status,
		ProductName:  req.ProductName,
		CategoryName: strings.TrimSpace(req.CategoryName),
		SupplierName: withDefault(req.SupplierName, DefaultSupplierName),
		OwnerUser:    actor,
		Notes:        strings.TrimSpace(req.Notes),
		Purchase:     datatypes.NewJSONType(req.Purchase.ToInput()),
		Sale:         datatypes.NewJSONType(req.Sale.ToInput()),
		Result:       datatypes.NewJSONType(calc.Result),
	}

	saved, err := s.repo.Save(ctx, q)
	if err != nil {
		return nil, err
	}

	action := ActionQuoteUpdated
	if id == uuid.Nil {
		action = ActionQuoteCreated
	}
	notify(ctx, s.audit, actor, action, auditEntityQuote, saved.ID.String(),
		fmt.Sprintf("versao=%d status=%s preco=%s", saved.Version, saved.Status, calc.Result.SalePrice.StringFixed(2)))

	resp := toQuoteResponse(saved)
	return &resp, nil
}

func (s *quoteService) Get(ctx context.Context, id uuid.UUID) (*dto.QuoteResponse, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toQuoteResponse(q)
	return &resp, nil
}

func (s *quoteService) GetVersion(ctx context.Context, id uuid.UUID, version int) (*dto.QuoteResponse, error) {
	q, err := s.repo.FindVersion(ctx, id, version)
	if err != nil {
		return nil, err
	}
	resp := toQuoteResponse(q)
	return &resp, nil
}

func (s *quoteService) ListVersions(ctx context.Context, id uuid.UUID) (*dto.QuoteVersionListResponse, error) {
	versions, err := s.repo.ListVersions(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, repository.ErrNotFound
	}
	items := make([]dto.QuoteVersionItem, len(versions))
	for i, v := range versions {
		items[i] = dto.QuoteVersionItem{
			Version:   v.Version,
			Status:    v.Status,
			CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return &dto.QuoteVersionListResponse{QuoteID: id.String(), Data: items}, nil
}

func (s *quoteService) ListRecent(ctx context.Context, q dto.QuoteListQuery) (*dto.QuoteListResponse, error) {
	quotes, limit, err := s.listRecent(ctx, q)
	if err != nil {
		return nil, err
	}
	data := make([]dto.QuoteSummary, len(quotes))
	for i := range quotes {
		data[i] = toQuoteSummary(&quotes[i])
	}
	return &dto.QuoteListResponse{Data: data, Total: len(data), Limit: limit}, nil
}

func (s *quoteService) listRecent(ctx context.Context, q dto.QuoteListQuery) ([]model.Quote, int, error) {
	filter := repository.QuoteFilter{
		Status:   q.Status,
		Supplier: q.Supplier,
		Product:  q.Product,
		Owner:    q.Owner,
	}
	var err error
	if filter.DateFrom, err = parseDay(q.DateFrom); err != nil {
		return nil, 0, err
	}
	if filter.DateTo, err = parseDay(q.DateTo); err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	if limit == 0 {
		limit = s.defaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > repository.MaxQuoteListLimit {
		limit = repository.MaxQuoteListLimit
	}

	quotes, err := s.repo.ListRecent(ctx, limit, filter)
	return quotes, limit, err
}

func (s *quoteService) Duplicate(ctx context.Context, id uuid.UUID, actor string) (*dto.QuoteResponse, error) {
	dup, err := s.repo.Duplicate(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	notify(ctx, s.audit, actor, ActionQuoteDuplicated, auditEntityQuote, dup.ID.String(), "origem="+id.String())
	resp := toQuoteResponse(dup)
	return &resp, nil
}

func (s *quoteService) RenderPDF(ctx context.Context, id uuid.UUID, version int) ([]byte, error) {
	q, err := s.headOrVersion(ctx, id, version)
	if err != nil {
		return nil, err
	}
	return infra.GenerateQuotePDF(q)
}

func (s *quoteService) SendByEmail(ctx context.Context, id uuid.UUID, req dto.SendQuoteEmailRequest, actor string) (*dto.SendQuoteEmailResponse, error) {
	if s.mail == nil {
		return nil, ErrEmailDisabled
	}
	q, err := s.headOrVersion(ctx, id, req.Version)
	if err != nil {
		return nil, err
	}

	to := strings.TrimSpace(req.To)
	err = s.mail.EnqueueEmail(ctx, worker.EmailPayload{
		QuoteID:     id.String(),
		Version:     q.Version,
		To:          to,
		Message:     strings.TrimSpace(req.Message),
		RequestedBy: actor,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmailUnavailable, err)
	}

	notify(ctx, s.audit, actor, ActionQuoteEmailed, auditEntityQuote, id.String(),
		fmt.Sprintf("versao=%d para=%s", q.Version, to))
	return &dto.SendQuoteEmailResponse{QuoteID: id.String(), Version: q.Version, To: to, Status: "ENFILEIRADO"}, nil
}

// headOrVersion loads the head for version 0, otherwise that snapshot.
func (s *quoteService) headOrVersion(ctx context.Context, id uuid.UUID, version int) (*model.Quote, error) {
	if version > 0 {
		return s.repo.FindVersion(ctx, id, version)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *quoteService) ExportXLSX(ctx context.Context, q dto.QuoteListQuery) ([]byte, error) {
	quotes, _, err := s.listRecent(ctx, q)
	if err != nil {
		return nil, err
	}
	return infra.GenerateQuotesXLSX(quotes)
}

// ── mapping helpers ─────────────────────────────────────────────────────────

func withDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// parseDay accepts YYYY-MM-DD; blank means no bound.
func parseDay(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, errors.Join(ErrInvalidDate, err)
	}
	return &t, nil
}

func toQuoteResponse(q *model.Quote) dto.QuoteResponse {
	return dto.QuoteResponse{
		ID:           q.ID.String(),
		Version:      q.Version,
		Status:       q.Status,
		ProductName:  q.ProductName,
		CategoryName: q.CategoryName,
		SupplierName: q.SupplierName,
		OwnerUser:    q.OwnerUser,
		Notes:        q.Notes,
		Purchase:     q.Purchase.Data(),
		Sale:         q.Sale.Data(),
		Result:       q.Result.Data(),
		CreatedAt:    q.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    q.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toQuoteSummary(q *model.Quote) dto.QuoteSummary {
	res := q.Result.Data()
	return dto.QuoteSummary{
		ID:            q.ID.String(),
		Version:       q.Version,
		Status:        q.Status,
		ProductName:   q.ProductName,
		CategoryName:  q.CategoryName,
		SupplierName:  q.SupplierName,
		OwnerUser:     q.OwnerUser,
		EffectiveCost: res.EffectiveCost,
		SalePrice:     res.SalePrice,
		MarginPct:     res.MarginPct,
		UpdatedAt:     q.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
