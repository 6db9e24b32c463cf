package model

import "github.com/google/uuid"

// StockItem is a quantity of identical units the user already owns.
type StockItem struct {
	ID           string   `json:"id"`
	Label        string   `json:"label,omitempty"`
	LengthMm     float64  `json:"length_mm"`
	WidthMm      float64  `json:"width_mm"`
	Quantity     int      `json:"quantity"`
	PricePerUnit *float64 `json:"price_per_unit,omitempty"`
}

func NewStockItem(length, width float64, qty int) StockItem {
	if qty < 0 {
		qty = 0
	}
	return StockItem{
		ID:       uuid.New().String()[:8],
		LengthMm: length,
		WidthMm:  width,
		Quantity: qty,
	}
}

// WithPrice returns a copy of the item with a unit price set.
func (s StockItem) WithPrice(price float64) StockItem {
	s.PricePerUnit = Price(price)
	return s
}

// UnitAreaM2 is the area of a single unit.
func (s StockItem) UnitAreaM2() float64 {
	return s.LengthMm * s.WidthMm / 1e6
}

// AreaM2 is the area of all units together.
func (s StockItem) AreaM2() float64 {
	if s.Quantity <= 0 {
		return 0
	}
	return s.UnitAreaM2() * float64(s.Quantity)
}

// TotalValue is quantity times unit price, or 0 when unpriced.
func (s StockItem) TotalValue() float64 {
	if s.PricePerUnit == nil || s.Quantity <= 0 {
		return 0
	}
	return *s.PricePerUnit * float64(s.Quantity)
}
