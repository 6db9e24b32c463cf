package model

import "github.com/google/uuid"

// StockPreset represents a reusable product definition, e.g. a laminate
// plank from a particular range.
type StockPreset struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MaterialKey  string   `json:"material"`
	LengthMm     float64  `json:"length_mm"`
	WidthMm      float64  `json:"width_mm"`
	UnitsPerPack int      `json:"units_per_pack,omitempty"`
	PricePerUnit *float64 `json:"price_per_unit,omitempty"`
}

// NewStockPreset creates a new StockPreset with a generated ID.
func NewStockPreset(name string, length, width float64, materialKey string) StockPreset {
	return StockPreset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		MaterialKey: materialKey,
		LengthMm:    length,
		WidthMm:     width,
	}
}

// NewStockPresetWithPrice creates a priced StockPreset.
func NewStockPresetWithPrice(name string, length, width float64, materialKey string, price float64) StockPreset {
	sp := NewStockPreset(name, length, width, materialKey)
	sp.PricePerUnit = Price(price)
	return sp
}

// ToStockItem converts the preset into a stock entry with the given quantity.
func (sp StockPreset) ToStockItem(qty int) StockItem {
	item := NewStockItem(sp.LengthMm, sp.WidthMm, qty)
	item.Label = sp.Name
	item.PricePerUnit = sp.PricePerUnit
	return item
}

// ApplyToLayer copies the preset's unit dimensions and price into the
// layer's settings.
func (sp StockPreset) ApplyToLayer(l *Layer) {
	if l.Plank != nil {
		l.Plank.DefaultLengthMm = sp.LengthMm
		l.Plank.DefaultWidthMm = sp.WidthMm
		l.Plank.DefaultPricePerPlank = sp.PricePerUnit
	}
	if l.Tile != nil {
		l.Tile.TileSizeMm = sp.LengthMm
		l.Tile.TileWidthMm = 0
		if sp.WidthMm != sp.LengthMm {
			l.Tile.TileWidthMm = sp.WidthMm
		}
		l.Tile.DefaultPricePerTile = sp.PricePerUnit
		if sp.UnitsPerPack > 0 {
			perBox := sp.UnitsPerPack
			l.Tile.TilesPerBox = &perBox
		}
	}
}

// Inventory holds the user's saved product presets and custom materials.
type Inventory struct {
	Stocks    []StockPreset `json:"stocks"`
	Materials []Material    `json:"materials"`
}

// DefaultInventory returns an inventory populated with common products.
func DefaultInventory() Inventory {
	tiles := NewStockPresetWithPrice("Ceramic 300x300", 300, 300, "ceramic_tile", 2.10)
	tiles.UnitsPerPack = 11
	bigTiles := NewStockPresetWithPrice("Porcelain 600x600", 600, 600, "ceramic_tile", 9.80)
	bigTiles.UnitsPerPack = 4
	carpet := NewStockPresetWithPrice("Carpet tile 500x500", 500, 500, "carpet_tile", 4.50)
	carpet.UnitsPerPack = 20
	return Inventory{
		Stocks: []StockPreset{
			NewStockPresetWithPrice("Laminate 1285x192", 1285, 192, "laminate", 6.95),
			NewStockPresetWithPrice("Laminate 1380x244", 1380, 244, "laminate", 8.40),
			NewStockPresetWithPrice("Vinyl click 1220x180", 1220, 180, "vinyl", 7.25),
			NewStockPresetWithPrice("Oak engineered 1900x190", 1900, 190, "engineered_wood", 21.50),
			tiles,
			bigTiles,
			carpet,
			NewStockPresetWithPrice("Plasterboard 2400x1200", 2400, 1200, "plasterboard", 11.00),
		},
		Materials: []Material{},
	}
}

// FindStockByID returns a pointer to the stock preset with the given ID, or nil.
func (inv *Inventory) FindStockByID(id string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].ID == id {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// FindStockByName returns a pointer to the first stock preset with the given name, or nil.
func (inv *Inventory) FindStockByName(name string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].Name == name {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// StockNames returns a list of stock preset names.
func (inv *Inventory) StockNames() []string {
	names := make([]string, len(inv.Stocks))
	for i, s := range inv.Stocks {
		names[i] = s.Name
	}
	return names
}

// StocksForMaterial returns the presets that belong to a material key.
func (inv *Inventory) StocksForMaterial(key string) []StockPreset {
	var out []StockPreset
	for _, s := range inv.Stocks {
		if s.MaterialKey == key {
			out = append(out, s)
		}
	}
	return out
}

// FindMaterial looks in the user's materials first, then the built-ins.
func (inv *Inventory) FindMaterial(keyOrName string) (Material, bool) {
	for _, m := range inv.Materials {
		if m.Key == keyOrName || m.Name == keyOrName {
			return m, true
		}
	}
	return FindMaterial(keyOrName)
}
