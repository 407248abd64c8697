package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an active, not yet sold product in the inventory book.
type Product struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Quantity    Amount     `json:"quantity"`
	CostPrice   Amount     `json:"costPrice"`
	SellPrice   Amount     `json:"sellPrice"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// SoldProduct is a product moved out of the active ledger.
type SoldProduct struct {
	Product
	SoldAt time.Time `json:"soldAt"`
}

// Draft holds the raw form values for a new or edited product.
type Draft struct {
	Text        string `json:"text"`
	Quantity    string `json:"quantity"`
	CostPrice   string `json:"costPrice"`
	SellPrice   string `json:"sellPrice"`
	Description string `json:"description"`
}

// Draft returns the form values that reproduce the product.
func (p Product) Draft() Draft {
	return Draft{
		Text:        p.Text,
		Quantity:    p.Quantity.String(),
		CostPrice:   p.CostPrice.String(),
		SellPrice:   p.SellPrice.String(),
		Description: p.Description,
	}
}

// UnitMargin is the profit made on a single unit.
func (p Product) UnitMargin() decimal.Decimal {
	return p.SellPrice.Decimal().Sub(p.CostPrice.Decimal())
}

func (p Product) LineCost() decimal.Decimal {
	return p.CostPrice.Decimal().Mul(p.Quantity.Decimal())
}

func (p Product) LineRevenue() decimal.Decimal {
	return p.SellPrice.Decimal().Mul(p.Quantity.Decimal())
}

func (p Product) LineProfit() decimal.Decimal {
	return p.LineRevenue().Sub(p.LineCost())
}
