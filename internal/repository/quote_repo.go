package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thiagofdruzian/ERP/internal/model"
)

// MaxQuoteListLimit bounds ListRecent.
const MaxQuoteListLimit = 1000

// QuoteFilter narrows ListRecent. Empty fields are ignored. DateFrom and
// DateTo are calendar days (UTC), both inclusive.
type QuoteFilter struct {
	Status   string
	Supplier string
	Product  string
	Owner    string
	DateFrom *time.Time
	DateTo   *time.Time
}

// VersionSummary is one entry of a lineage's history.
type VersionSummary struct {
	Version   int       `json:"version"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// QuoteRepository persists quote lineages: a mutable head row guarded by an
// optimistic version number plus an append-only snapshot per saved version.
type QuoteRepository interface {
	// Save inserts a new lineage when q.ID is uuid.Nil, otherwise updates the
	// head only if q.Version is still current. Returns the persisted head.
	Save(ctx context.Context, q *model.Quote) (*model.Quote, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Quote, error)
	FindVersion(ctx context.Context, id uuid.UUID, version int) (*model.Quote, error)
	ListVersions(ctx context.Context, id uuid.UUID) ([]VersionSummary, error)
	ListRecent(ctx context.Context, limit int, filter QuoteFilter) ([]model.Quote, error)
	// Duplicate forks a lineage into a new draft owned by newOwner.
	Duplicate(ctx context.Context, id uuid.UUID, newOwner string) (*model.Quote, error)
}

type quoteRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepo{db: db, now: time.Now}
}

// timestamp is truncated to what Postgres stores so the returned head and its
// snapshot compare equal after a round-trip.
func (r *quoteRepo) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

func (r *quoteRepo) Save(ctx context.Context, q *model.Quote) (*model.Quote, error) {
	var saved *model.Quote
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if q.ID == uuid.Nil {
			saved, err = r.insertTx(tx, q)
		} else {
			saved, err = r.updateTx(tx, q)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// insertTx creates a new lineage at version 1 and its first snapshot.
func (r *quoteRepo) insertTx(tx *gorm.DB, q *model.Quote) (*model.Quote, error) {
	now := r.timestamp()
	head := *q
	head.ID = uuid.New()
	head.Version = 1
	head.CreatedAt = now
	head.UpdatedAt = now

	if err := tx.Create(&head).Error; err != nil {
		return nil, fmt.Errorf("insert quote: %w", err)
	}
	if err := tx.First(&head, "id = ?", head.ID).Error; err != nil {
		return nil, fmt.Errorf("reload quote: %w", err)
	}
	if err := tx.Create(head.Snapshot()).Error; err != nil {
		return nil, fmt.Errorf("insert quote snapshot: %w", err)
	}
	return &head, nil
}

// updateTx is the optimistic lock: a single conditional UPDATE keyed on
// id+version. Zero affected rows means another writer got there first.
func (r *quoteRepo) updateTx(tx *gorm.DB, q *model.Quote) (*model.Quote, error) {
	res := tx.Model(&model.Quote{}).
		Where("id = ? AND version = ?", q.ID, q.Version).
		Updates(map[string]interface{}{
			"version":       gorm.Expr("version + 1"),
			"status":        q.Status,
			"product_name":  q.ProductName,
			"category_name": q.CategoryName,
			"supplier_name": q.SupplierName,
			"owner_user":    q.OwnerUser,
			"notes":         q.Notes,
			"purchase":      q.Purchase,
			"sale":          q.Sale,
			"result":        q.Result,
			"updated_at":    r.timestamp(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update quote: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&model.Quote{}).Where("id = ?", q.ID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("check quote: %w", err)
		}
		if count == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrConcurrencyConflict
	}

	var head model.Quote
	if err := tx.First(&head, "id = ?", q.ID).Error; err != nil {
		return nil, fmt.Errorf("reload quote: %w", err)
	}
	if err := tx.Create(head.Snapshot()).Error; err != nil {
		return nil, fmt.Errorf("insert quote snapshot: %w", err)
	}
	return &head, nil
}

func (r *quoteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	var q model.Quote
	err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// FindVersion returns the snapshot in head shape: UpdatedAt is the time the
// version was written, CreatedAt is the lineage's creation time.
func (r *quoteRepo) FindVersion(ctx context.Context, id uuid.UUID, version int) (*model.Quote, error) {
	head, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var v model.QuoteVersion
	err = r.db.WithContext(ctx).
		Where("quote_id = ? AND version = ?", id, version).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVersionNotFound
	}
	if err != nil {
		return nil, err
	}

	q := v.AsQuote()
	q.CreatedAt = head.CreatedAt
	return q, nil
}

func (r *quoteRepo) ListVersions(ctx context.Context, id uuid.UUID) ([]VersionSummary, error) {
	rows := []VersionSummary{}
	err := r.db.WithContext(ctx).
		Model(&model.QuoteVersion{}).
		Select("version", "status", "created_at").
		Where("quote_id = ?", id).
		Order("version DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *quoteRepo) ListRecent(ctx context.Context, limit int, f QuoteFilter) ([]model.Quote, error) {
	limit = clamp(limit, 1, MaxQuoteListLimit)

	q := r.db.WithContext(ctx).Model(&model.Quote{})

	// TODOS / ALL = no status filter
	if status := strings.ToUpper(strings.TrimSpace(f.Status)); status != "" && status != "TODOS" && status != "ALL" {
		q = q.Where("UPPER(status) = ?", status)
	}
	if s := strings.TrimSpace(f.Supplier); s != "" {
		q = q.Where("supplier_name ILIKE ?", containsPattern(s))
	}
	if s := strings.TrimSpace(f.Product); s != "" {
		q = q.Where("product_name ILIKE ?", containsPattern(s))
	}
	if s := strings.TrimSpace(f.Owner); s != "" {
		q = q.Where("owner_user ILIKE ?", containsPattern(s))
	}
	if f.DateFrom != nil {
		q = q.Where("updated_at >= ?", startOfDay(*f.DateFrom))
	}
	if f.DateTo != nil {
		q = q.Where("updated_at < ?", startOfDay(*f.DateTo).AddDate(0, 0, 1))
	}

	var rows []model.Quote
	err := q.Order("updated_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *quoteRepo) Duplicate(ctx context.Context, id uuid.UUID, newOwner string) (*model.Quote, error) {
	var copied *model.Quote
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var src model.Quote
		err := tx.First(&src, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		src.Status = model.StatusDraft
		src.ProductName = strings.TrimSpace(src.ProductName) + " (Copia)"
		src.OwnerUser = newOwner
		copied, err = r.insertTx(tx, &src)
		return err
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}

// containsPattern builds an ILIKE substring pattern with LIKE wildcards escaped.
func containsPattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
