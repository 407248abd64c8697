package ledger

import (
	"context"
	"log/slog"
	"slices"

	"github.com/rogerio-castellano/stockbook/internal/models"
	"github.com/rogerio-castellano/stockbook/internal/repo"
)

// SoldLedger holds the products moved out of the product ledger, in the
// order they were sold.
type SoldLedger struct {
	store  repo.BlobStore
	items  []models.SoldProduct
	logger *slog.Logger
}

func (l *SoldLedger) persist(ctx context.Context, items []models.SoldProduct) error {
	blob, err := encodeList(items)
	if err != nil {
		return &PersistenceError{Key: SoldKey, Err: err}
	}
	if err := l.store.Save(ctx, SoldKey, blob); err != nil {
		l.logger.Error("sold ledger not saved", "key", SoldKey, "err", err)
		return &PersistenceError{Key: SoldKey, Err: err}
	}
	return nil
}

func (l *SoldLedger) index(id string) int {
	return slices.IndexFunc(l.items, func(p models.SoldProduct) bool { return p.ID == id })
}

// Get retrieves a sold product by its ID.
func (l *SoldLedger) Get(id string) (models.SoldProduct, bool) {
	i := l.index(id)
	if i < 0 {
		return models.SoldProduct{}, false
	}
	return l.items[i], true
}

func (l *SoldLedger) Len() int { return len(l.items) }

// Delete removes a sold product. An unknown id is a no-op and writes nothing.
func (l *SoldLedger) Delete(ctx context.Context, id string) (bool, error) {
	i := l.index(id)
	if i < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(l.items), i, i+1)
	if err := l.persist(ctx, next); err != nil {
		return false, err
	}
	l.items = next
	l.logger.Debug("sold product deleted", "id", id)
	return true, nil
}

// List returns the sold products whose name contains filter, most recently
// sold first. Order follows insertion, not the soldAt timestamps.
func (l *SoldLedger) List(filter string) []models.SoldProduct {
	f := newNameFilter(filter)
	out := make([]models.SoldProduct, 0, len(l.items))
	for i := len(l.items) - 1; i >= 0; i-- {
		if f.matches(l.items[i].Text) {
			out = append(out, l.items[i])
		}
	}
	return out
}
