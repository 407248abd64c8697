package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/rogerio-castellano/stockbook/internal/models"
	"github.com/rogerio-castellano/stockbook/internal/repo"
)

const maxIDAttempts = 5

// ProductLedger holds the active products. Every mutation is written to the
// store before it becomes visible in memory.
type ProductLedger struct {
	store  repo.BlobStore
	items  []models.Product
	sold   *SoldLedger
	now    func() time.Time
	newID  func() (string, error)
	logger *slog.Logger
}

func (l *ProductLedger) persist(ctx context.Context, items []models.Product) error {
	blob, err := encodeList(items)
	if err != nil {
		return &PersistenceError{Key: ProductsKey, Err: err}
	}
	if err := l.store.Save(ctx, ProductsKey, blob); err != nil {
		l.logger.Error("product ledger not saved", "key", ProductsKey, "err", err)
		return &PersistenceError{Key: ProductsKey, Err: err}
	}
	return nil
}

func (l *ProductLedger) index(id string) int {
	return slices.IndexFunc(l.items, func(p models.Product) bool { return p.ID == id })
}

// freshID returns an id used by neither ledger.
func (l *ProductLedger) freshID() (string, error) {
	for range maxIDAttempts {
		id, err := l.newID()
		if err != nil {
			return "", fmt.Errorf("%w: %v", errIDExhausted, err)
		}
		if id == "" || l.index(id) >= 0 || l.sold.index(id) >= 0 {
			continue
		}
		return id, nil
	}
	return "", errIDExhausted
}

// Create validates the draft and appends a new product.
func (l *ProductLedger) Create(ctx context.Context, d models.Draft) (models.Product, error) {
	f, err := ValidateDraft(d)
	if err != nil {
		return models.Product{}, err
	}

	id, err := l.freshID()
	if err != nil {
		return models.Product{}, err
	}

	p := models.Product{
		ID:          id,
		Text:        f.Text,
		Quantity:    f.Quantity,
		CostPrice:   f.CostPrice,
		SellPrice:   f.SellPrice,
		Description: f.Description,
		CreatedAt:   l.now(),
	}

	next := append(slices.Clone(l.items), p)
	if err := l.persist(ctx, next); err != nil {
		return models.Product{}, err
	}
	l.items = next
	l.logger.Debug("product created", "id", p.ID, "text", p.Text)
	return p, nil
}

// Update overwrites every field except ID and CreatedAt and stamps UpdatedAt.
func (l *ProductLedger) Update(ctx context.Context, id string, d models.Draft) (models.Product, error) {
	f, err := ValidateDraft(d)
	if err != nil {
		return models.Product{}, err
	}

	i := l.index(id)
	if i < 0 {
		return models.Product{}, ErrProductNotFound
	}

	updatedAt := l.now()
	p := l.items[i]
	p.Text = f.Text
	p.Quantity = f.Quantity
	p.CostPrice = f.CostPrice
	p.SellPrice = f.SellPrice
	p.Description = f.Description
	p.UpdatedAt = &updatedAt

	next := slices.Clone(l.items)
	next[i] = p
	if err := l.persist(ctx, next); err != nil {
		return models.Product{}, err
	}
	l.items = next
	l.logger.Debug("product updated", "id", p.ID)
	return p, nil
}

// Delete removes a product. An unknown id is a no-op and writes nothing.
func (l *ProductLedger) Delete(ctx context.Context, id string) (bool, error) {
	i := l.index(id)
	if i < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(l.items), i, i+1)
	if err := l.persist(ctx, next); err != nil {
		return false, err
	}
	l.items = next
	l.logger.Debug("product deleted", "id", id)
	return true, nil
}

// MoveToSold removes the product from this ledger and appends it, stamped
// with SoldAt, to the sold ledger. An unknown id is a no-op.
//
// The sold blob is written first. If the product blob then fails to save,
// the previous sold blob is written back so the record never ends up in both.
func (l *ProductLedger) MoveToSold(ctx context.Context, id string) (models.SoldProduct, bool, error) {
	i := l.index(id)
	if i < 0 {
		return models.SoldProduct{}, false, nil
	}

	sold := models.SoldProduct{Product: l.items[i], SoldAt: l.now()}
	prevSold := l.sold.items
	nextSold := append(slices.Clone(prevSold), sold)
	if err := l.sold.persist(ctx, nextSold); err != nil {
		return models.SoldProduct{}, false, err
	}

	next := slices.Delete(slices.Clone(l.items), i, i+1)
	if err := l.persist(ctx, next); err != nil {
		// The product write may have failed because ctx was cancelled.
		if rbErr := l.sold.persist(context.WithoutCancel(ctx), prevSold); rbErr != nil {
			l.logger.Error("sold ledger rollback failed", "id", id, "err", rbErr)
			return models.SoldProduct{}, false, errors.Join(err, rbErr)
		}
		return models.SoldProduct{}, false, err
	}

	l.items = next
	l.sold.items = nextSold
	l.logger.Debug("product sold", "id", id)
	return sold, true, nil
}

// Get retrieves a product by its ID.
func (l *ProductLedger) Get(id string) (models.Product, bool) {
	i := l.index(id)
	if i < 0 {
		return models.Product{}, false
	}
	return l.items[i], true
}

// FindByText returns the first product whose name equals name, ignoring case
// and surrounding spaces.
func (l *ProductLedger) FindByText(name string) (models.Product, bool) {
	name = strings.TrimSpace(name)
	for _, p := range l.items {
		if strings.EqualFold(strings.TrimSpace(p.Text), name) {
			return p, true
		}
	}
	return models.Product{}, false
}

func (l *ProductLedger) Len() int { return len(l.items) }

// List returns the products whose name contains filter, newest CreatedAt first.
func (l *ProductLedger) List(filter string) []models.Product {
	f := newNameFilter(filter)
	out := make([]models.Product, 0, len(l.items))
	for _, p := range l.items {
		if f.matches(p.Text) {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Product) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}
