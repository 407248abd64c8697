package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/stockbook/internal/models"
	"github.com/rogerio-castellano/stockbook/internal/repo"
)

// stepClock returns a clock advancing one minute per call.
func stepClock() func() time.Time {
	t := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("p-%d", n), nil
	}
}

func newTestSession(t *testing.T, store repo.BlobStore, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithClock(stepClock()), WithIDGenerator(sequentialIDs())}, opts...)
	s, err := Open(context.Background(), store, opts...)
	require.NoError(t, err)
	return s
}

func widget() models.Draft {
	return models.Draft{Text: "Widget", Quantity: "10", CostPrice: "2,50", SellPrice: "5.00", Description: "blue"}
}

func draft(name string) models.Draft {
	return models.Draft{Text: name, Quantity: "1", CostPrice: "1", SellPrice: "2"}
}

func mustCreate(t *testing.T, s *Session, d models.Draft) models.Product {
	t.Helper()
	p, err := s.Products.Create(context.Background(), d)
	require.NoError(t, err)
	return p
}

func productIDs(items []models.Product) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func soldIDs(items []models.SoldProduct) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}
