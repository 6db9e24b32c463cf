package model

import (
	"testing"
)

func TestNewStockPresetWithPrice(t *testing.T) {
	sp := NewStockPresetWithPrice("Laminate oak", 1285, 192, "laminate", 6.95)
	if sp.PricePerUnit == nil || *sp.PricePerUnit != 6.95 {
		t.Errorf("expected price 6.95, got %v", sp.PricePerUnit)
	}
	if sp.Name != "Laminate oak" {
		t.Errorf("expected name 'Laminate oak', got %s", sp.Name)
	}
	if sp.MaterialKey != "laminate" {
		t.Errorf("expected material 'laminate', got %s", sp.MaterialKey)
	}
}

func TestToStockItemCarriesPrice(t *testing.T) {
	sp := NewStockPresetWithPrice("Tile 300", 300, 300, "ceramic_tile", 2.10)
	item := sp.ToStockItem(25)
	if item.PricePerUnit == nil || *item.PricePerUnit != 2.10 {
		t.Errorf("expected item price 2.10, got %v", item.PricePerUnit)
	}
	if item.Quantity != 25 {
		t.Errorf("expected quantity 25, got %d", item.Quantity)
	}
	if item.Label != "Tile 300" {
		t.Errorf("expected label from preset, got %s", item.Label)
	}
}

func TestNewStockPresetDefaultNoPrice(t *testing.T) {
	sp := NewStockPreset("No Price", 1000, 200, "vinyl")
	if sp.PricePerUnit != nil {
		t.Errorf("expected no price, got %v", *sp.PricePerUnit)
	}
}

func TestApplyToLayer(t *testing.T) {
	layer := NewLayer(DefaultMaterial())
	sp := NewStockPresetWithPrice("Wide plank", 1380, 244, "laminate", 8.40)
	sp.ApplyToLayer(&layer)
	if layer.Plank.DefaultLengthMm != 1380 || layer.Plank.DefaultWidthMm != 244 {
		t.Errorf("expected 1380x244, got %.0fx%.0f", layer.Plank.DefaultLengthMm, layer.Plank.DefaultWidthMm)
	}

	tile, _ := FindMaterial("ceramic_tile")
	tileLayer := NewLayer(tile)
	box := NewStockPresetWithPrice("Tile 600", 600, 600, "ceramic_tile", 9.80)
	box.UnitsPerPack = 4
	box.ApplyToLayer(&tileLayer)
	if tileLayer.Tile.TileSizeMm != 600 || tileLayer.Tile.TileWidthMm != 0 {
		t.Errorf("expected square 600 tile, got %+v", tileLayer.Tile)
	}
	if tileLayer.Tile.TilesPerBox == nil || *tileLayer.Tile.TilesPerBox != 4 {
		t.Errorf("expected 4 tiles per box, got %v", tileLayer.Tile.TilesPerBox)
	}
}

func TestDefaultInventoryLookups(t *testing.T) {
	inv := DefaultInventory()
	if len(inv.Stocks) == 0 {
		t.Fatal("expected default stock presets")
	}
	first := inv.Stocks[0]
	if inv.FindStockByID(first.ID) == nil {
		t.Error("expected to find first preset by ID")
	}
	if inv.FindStockByName(first.Name) == nil {
		t.Error("expected to find first preset by name")
	}
	if inv.FindStockByID("missing") != nil {
		t.Error("expected nil for unknown ID")
	}
	if len(inv.StockNames()) != len(inv.Stocks) {
		t.Error("expected one name per preset")
	}
	if len(inv.StocksForMaterial("laminate")) != 2 {
		t.Errorf("expected 2 laminate presets, got %d", len(inv.StocksForMaterial("laminate")))
	}
}

func TestInventoryFindMaterialPrefersCustom(t *testing.T) {
	inv := DefaultInventory()
	custom := DefaultMaterial()
	custom.Name = "Laminate (shop)"
	custom.PricePerUnit = Price(5)
	inv.Materials = append(inv.Materials, custom)

	m, ok := inv.FindMaterial("laminate")
	if !ok {
		t.Fatal("expected to find laminate")
	}
	if m.Name != "Laminate (shop)" {
		t.Errorf("expected custom material first, got %s", m.Name)
	}

	if _, ok := inv.FindMaterial("paint"); !ok {
		t.Error("expected built-in fallback for paint")
	}
}
