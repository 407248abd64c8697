package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/rogerio-castellano/stockbook/internal/models"
	"github.com/rogerio-castellano/stockbook/internal/repo"
)

// Session owns both ledgers together with the form and search state a front
// end needs: the draft being typed, the search text and the edit mode.
type Session struct {
	Products *ProductLedger
	Sold     *SoldLedger

	Draft  models.Draft
	Filter string

	editing   bool
	currentID string
	logger    *slog.Logger
}

// Open loads both ledgers from store. Missing keys start empty. An id found
// in both ledgers is kept only in the sold one.
func Open(ctx context.Context, store repo.BlobStore, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sold := &SoldLedger{store: store, logger: o.logger}
	products := &ProductLedger{
		store:  store,
		sold:   sold,
		now:    o.now,
		newID:  o.newID,
		logger: o.logger,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := loadList[models.Product](gctx, store, ProductsKey)
		products.items = items
		return err
	})
	g.Go(func() error {
		items, err := loadList[models.SoldProduct](gctx, store, SoldKey)
		sold.items = items
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := &Session{Products: products, Sold: sold, logger: o.logger}
	s.reconcile(ctx)
	o.logger.Debug("session opened", "products", products.Len(), "sold", sold.Len())
	return s, nil
}

func loadList[T any](ctx context.Context, store repo.BlobStore, key string) ([]T, error) {
	blob, err := store.Load(ctx, key)
	if errors.Is(err, repo.ErrBlobNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return decodeList[T](key, blob)
}

// reconcile drops products that also appear in the sold ledger, which only
// happens when a MoveToSold rollback could not be written. Memory is
// reconciled even if the save fails; every Open drops the stored duplicate
// again until the next successful product write replaces the blob.
func (s *Session) reconcile(ctx context.Context) {
	kept := make([]models.Product, 0, len(s.Products.items))
	for _, p := range s.Products.items {
		if s.Sold.index(p.ID) >= 0 {
			s.logger.Warn("product found in both ledgers, keeping the sold record", "id", p.ID)
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == len(s.Products.items) {
		return
	}

	s.Products.items = kept
	if err := s.Products.persist(ctx, kept); err != nil {
		s.logger.Warn("reconciled product ledger not saved", "err", err)
	}
}

// BeginEdit loads a product into Draft and switches Submit to update it.
func (s *Session) BeginEdit(id string) error {
	p, ok := s.Products.Get(id)
	if !ok {
		return ErrProductNotFound
	}
	s.Draft = p.Draft()
	s.editing = true
	s.currentID = id
	return nil
}

// CancelEdit leaves edit mode and clears the draft.
func (s *Session) CancelEdit() {
	s.Draft = models.Draft{}
	s.editing = false
	s.currentID = ""
}

// Editing reports the id being edited, if any.
func (s *Session) Editing() (string, bool) {
	return s.currentID, s.editing
}

// Submit creates a product from Draft, or updates the product being edited.
// On success the draft and edit mode are cleared; on error nothing changes.
func (s *Session) Submit(ctx context.Context) (models.Product, error) {
	var (
		p   models.Product
		err error
	)
	if s.editing {
		p, err = s.Products.Update(ctx, s.currentID, s.Draft)
	} else {
		p, err = s.Products.Create(ctx, s.Draft)
	}
	if err != nil {
		return models.Product{}, err
	}

	s.CancelEdit()
	return p, nil
}

// MoveToSold moves a product to the sold ledger. Moving the product being
// edited also leaves edit mode.
func (s *Session) MoveToSold(ctx context.Context, id string) (models.SoldProduct, bool, error) {
	sold, moved, err := s.Products.MoveToSold(ctx, id)
	if moved && s.editing && s.currentID == id {
		s.CancelEdit()
	}
	return sold, moved, err
}

// Delete removes a product, leaving edit mode if it was being edited.
func (s *Session) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.Products.Delete(ctx, id)
	if removed && s.editing && s.currentID == id {
		s.CancelEdit()
	}
	return removed, err
}

// VisibleProducts applies the session filter to the product ledger.
func (s *Session) VisibleProducts() []models.Product {
	return s.Products.List(s.Filter)
}

// VisibleSold applies the session filter to the sold ledger.
func (s *Session) VisibleSold() []models.SoldProduct {
	return s.Sold.List(s.Filter)
}

func (s *Session) Summary() Summary {
	products := s.VisibleProducts()
	sold := s.VisibleSold()
	return Summary{
		ActiveCount: len(products),
		SoldCount:   len(sold),
		Active:      ComputeTotals(products),
		Sold:        ComputeTotals(sold),
	}
}
