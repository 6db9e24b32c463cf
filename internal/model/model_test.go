package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lShape() Outline {
	return Outline{
		{X: 0, Y: 0}, {X: 4000, Y: 0}, {X: 4000, Y: 2000},
		{X: 2000, Y: 2000}, {X: 2000, Y: 4000}, {X: 0, Y: 4000},
	}
}

func TestOutlineArea(t *testing.T) {
	square := Outline{{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 1000}, {X: 0, Y: 1000}}
	assert.InDelta(t, 1e6, square.Area(), 1e-6)
	assert.InDelta(t, 12e6, lShape().Area(), 1e-6)

	// Clockwise order yields the same area
	reversed := Outline{{X: 0, Y: 1000}, {X: 1000, Y: 1000}, {X: 1000, Y: 0}, {X: 0, Y: 0}}
	assert.InDelta(t, 1e6, reversed.Area(), 1e-6)
}

func TestOutlineAreaDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, Outline{}.Area())
	assert.Equal(t, 0.0, Outline{{X: 0, Y: 0}, {X: 10, Y: 10}}.Area())
}

func TestOutlinePerimeter(t *testing.T) {
	assert.InDelta(t, 16000, lShape().Perimeter(), 1e-6)
	tri := Outline{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 4}}
	assert.InDelta(t, 12, tri.Perimeter(), 1e-9)
}

func TestOutlineBoundingBoxAndTranslate(t *testing.T) {
	o := Outline{{X: 10, Y: 20}, {X: 110, Y: 20}, {X: 60, Y: 90}}
	min, max := o.BoundingBox()
	assert.Equal(t, Point2D{X: 10, Y: 20}, min)
	assert.Equal(t, Point2D{X: 110, Y: 90}, max)

	moved := o.Translate(-10, -20)
	min, _ = moved.BoundingBox()
	assert.Equal(t, Point2D{}, min)
	assert.Equal(t, 10.0, o[0].X, "translate must not modify the receiver")
}

func TestRectangularRoomDimensions(t *testing.T) {
	r := NewRectangularRoom(5000, 4000, 10)
	assert.Equal(t, 4980.0, r.UsableLengthMm())
	assert.Equal(t, 3980.0, r.UsableWidthMm())
	assert.InDelta(t, 20.0, r.GrossAreaM2(), 1e-9)
	assert.InDelta(t, 4.98*3.98, r.UsableAreaM2(), 1e-9)
	assert.InDelta(t, 18000, r.PerimeterMm(), 1e-9)
	assert.Len(t, r.EffectivePoints(), 4)
}

func TestUsableDimensionsClampAtZero(t *testing.T) {
	r := NewRectangularRoom(15, 15, 10)
	assert.Equal(t, 0.0, r.UsableLengthMm())
	assert.Equal(t, 0.0, r.UsableWidthMm())
	assert.Equal(t, 0.0, r.UsableAreaM2())
}

func TestPolygonRoomAreas(t *testing.T) {
	r := NewPolygonRoom(lShape(), 10)
	assert.Equal(t, 4000.0, r.LengthMm)
	assert.Equal(t, 4000.0, r.WidthMm)
	assert.InDelta(t, 12.0, r.GrossAreaM2(), 1e-9)
	// gross minus perimeter strip: 12 - 16000*10/1e6
	assert.InDelta(t, 11.84, r.UsableAreaM2(), 1e-9)
	assert.Equal(t, 3980.0, r.UsableLengthMm())
}

func TestPolygonRoomWithTooFewPoints(t *testing.T) {
	r := NewPolygonRoom(Outline{{X: 0, Y: 0}, {X: 100, Y: 0}}, 0)
	assert.Equal(t, 0.0, r.GrossAreaM2())
	assert.False(t, r.Contains(50, 0))
	assert.False(t, r.Contains(0, 0))
}

func TestRectangularContainsIsInclusive(t *testing.T) {
	r := NewRectangularRoom(1000, 500, 0)
	assert.True(t, r.Contains(0, 0))
	assert.True(t, r.Contains(1000, 500))
	assert.True(t, r.Contains(500, 250))
	assert.False(t, r.Contains(-0.001, 10))
	assert.False(t, r.Contains(10, 500.001))
}

func TestPolygonContains(t *testing.T) {
	r := NewPolygonRoom(lShape(), 0)
	assert.True(t, r.Contains(1000, 1000))
	assert.True(t, r.Contains(3000, 1000))
	assert.True(t, r.Contains(1000, 3000))
	assert.False(t, r.Contains(3000, 3000), "notch of the L is outside")
	assert.False(t, r.Contains(-1, 1000))
	assert.False(t, r.Contains(5000, 1000))
}

func TestRoomOrigin(t *testing.T) {
	assert.Equal(t, Point2D{X: 10, Y: 10}, NewRectangularRoom(100, 100, 10).Origin())
	shifted := NewPolygonRoom(lShape().Translate(500, 300), 10)
	assert.Equal(t, Point2D{X: 510, Y: 310}, shifted.Origin())
}

func TestRoomValidate(t *testing.T) {
	assert.NoError(t, DefaultRoom().Validate())
	assert.NoError(t, NewPolygonRoom(lShape(), 5).Validate())

	bad := DefaultRoom()
	bad.LengthMm = -1
	assert.Error(t, bad.Validate())

	bad = DefaultRoom()
	bad.ExpansionGapMm = math.NaN()
	assert.Error(t, bad.Validate())

	bad = DefaultRoom()
	bad.Shape = "circle"
	assert.Error(t, bad.Validate())

	assert.Error(t, NewRectangularRoom(1000, 1e25, 0).Validate())
	assert.Error(t, NewRectangularRoom(1e25, 1000, 0).Validate())
	assert.NoError(t, NewRectangularRoom(MaxDimensionMm, 1000, 0).Validate())

	far := NewPolygonRoom(Outline{{X: 0, Y: 0}, {X: 2e7, Y: 0}, {X: 0, Y: 1000}}, 0)
	assert.Error(t, far.Validate())
}

func TestPlacedPieceStatusFollowsSource(t *testing.T) {
	assert.Equal(t, StatusInstalled, StatusFor(SourceStock))
	assert.Equal(t, StatusInstalled, StatusFor(SourceOffcut))
	assert.Equal(t, StatusNeeded, StatusFor(SourceNeeded))

	assert.True(t, PlacedPiece{Status: StatusFor(SourceOffcut)}.IsInstalled())
	assert.False(t, PlacedPiece{Status: StatusFor(SourceNeeded)}.IsInstalled())
}

func TestPurchaseQuantityNeededRoundsUp(t *testing.T) {
	assert.Equal(t, 3, PurchaseSuggestion{QuantityValue: 2.01}.QuantityNeeded())
	assert.Equal(t, 2, PurchaseSuggestion{QuantityValue: 2}.QuantityNeeded())
	assert.Equal(t, 0, PurchaseSuggestion{}.QuantityNeeded())
}

func TestLayoutResultIsComplete(t *testing.T) {
	assert.True(t, EmptyResult().IsComplete())
	assert.True(t, LayoutResult{NeededAreaM2: 0.005}.IsComplete())
	assert.False(t, LayoutResult{NeededAreaM2: 0.3}.IsComplete())
}

func TestStockItemArea(t *testing.T) {
	s := NewStockItem(1000, 300, 4).WithPrice(5)
	assert.InDelta(t, 0.3, s.UnitAreaM2(), 1e-9)
	assert.InDelta(t, 1.2, s.AreaM2(), 1e-9)
	assert.InDelta(t, 20, s.TotalValue(), 1e-9)
	assert.Equal(t, 0.0, NewStockItem(1000, 300, 4).TotalValue())
	assert.Equal(t, 0, NewStockItem(1000, 300, -3).Quantity)
}

func TestMaterialPresets(t *testing.T) {
	paint, ok := FindMaterial("paint")
	assert.True(t, ok)
	assert.Equal(t, CategoryLiquid, paint.Category)
	assert.Equal(t, 10.0, paint.CoveragePerUnit)
	assert.True(t, paint.IsContinuous())

	board, ok := FindMaterial("Plasterboard")
	assert.True(t, ok)
	assert.Equal(t, UnitSheet, board.Unit)
	assert.Equal(t, 12.5, board.DefaultThicknessMm)

	_, ok = FindMaterial("marble slab")
	assert.False(t, ok)
}

func TestNewLayerPicksSettingsByUnit(t *testing.T) {
	laminate := NewLayer(DefaultMaterial())
	assert.NotNil(t, laminate.Plank)
	assert.Nil(t, laminate.Tile)
	assert.Equal(t, 1000.0, laminate.Plank.DefaultLengthMm)

	board, _ := FindMaterial("plasterboard")
	sheet := NewLayer(board)
	if assert.NotNil(t, sheet.Tile) {
		assert.Equal(t, 2400.0, sheet.Tile.CellLengthMm())
		assert.Equal(t, 1200.0, sheet.Tile.CellWidthMm())
	}

	concrete, _ := FindMaterial("concrete")
	slab := NewLayer(concrete)
	if assert.NotNil(t, slab.Continuous) {
		assert.Equal(t, 100.0, slab.Continuous.ThicknessMm)
	}
}

func TestNewProjectDefaults(t *testing.T) {
	p := NewProject()
	assert.Equal(t, SchemaVersion, p.SchemaVersion)
	assert.Len(t, p.ID, 8)
	assert.Equal(t, 0, p.ActiveLayer())
	assert.Equal(t, DefaultWasteFactorPercent, p.WasteFactorPercent)

	p.Layers[0].IsVisible = false
	assert.Equal(t, -1, p.ActiveLayer())
}
