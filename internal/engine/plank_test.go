package engine

import (
	"testing"

	"github.com/piwi3910/floorplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlankSettings() *model.PlankSettings {
	s := model.DefaultPlankSettings()
	s.DefaultLengthMm = 1000
	s.DefaultWidthMm = 300
	s.MinStaggerMm = 200
	s.MinOffcutLengthMm = 150
	return &s
}

func plankRequest(room model.Room, stock []model.StockItem) Request {
	m, _ := model.FindMaterial("laminate")
	return Request{
		Room:     room,
		Material: m,
		Plank:    testPlankSettings(),
		Stock:    stock,
		UseStock: len(stock) > 0,
	}
}

func pieceLengths(pieces []model.PlacedPiece) []float64 {
	out := make([]float64, len(pieces))
	for i, p := range pieces {
		out[i] = p.LengthMm
	}
	return out
}

func TestPlankLayout_NoStockAllNeeded(t *testing.T) {
	req := plankRequest(model.NewRectangularRoom(2000, 600, 0), nil)

	res, err := PlankLayout{}.Layout(req)
	require.NoError(t, err)

	require.Len(t, res.Pieces, 5)
	assert.Equal(t, []float64{1000, 1000, 200, 1000, 800}, pieceLengths(res.Pieces))
	for _, p := range res.Pieces {
		assert.Equal(t, model.SourceNeeded, p.Source)
		assert.Equal(t, model.StatusNeeded, p.Status)
		assert.Equal(t, "N", p.Label[:1])
	}
	assert.Equal(t, "N3", res.Pieces[2].Label)
	assert.InDelta(t, 1.2, res.NeededAreaM2, 1e-9)
	assert.Zero(t, res.InstalledAreaM2)
	assert.Empty(t, res.Cuts)

	require.Len(t, res.Purchases, 1)
	assert.Equal(t, 5.0, res.Purchases[0].QuantityValue)
	assert.Equal(t, "Planks", res.Purchases[0].UnitName)
	assert.False(t, res.IsComplete())
}

func TestPlankLayout_StaggerShiftsJoints(t *testing.T) {
	req := plankRequest(model.NewRectangularRoom(2000, 600, 0), nil)

	res, err := PlankLayout{}.Layout(req)
	require.NoError(t, err)

	// First joint of row 2 sits at the stagger distance.
	var row2 []model.PlacedPiece
	for _, p := range res.Pieces {
		if p.Y == 300 {
			row2 = append(row2, p)
		}
	}
	require.NotEmpty(t, row2)
	assert.Equal(t, 200.0, row2[0].X+row2[0].LengthMm)
}

func TestPlankLayout_ReusesOffcuts(t *testing.T) {
	stock := []model.StockItem{model.NewStockItem(1000, 300, 5)}
	req := plankRequest(model.NewRectangularRoom(2000, 600, 0), stock)

	res, err := PlankLayout{}.Layout(req)
	require.NoError(t, err)

	require.Len(t, res.Pieces, 5)
	assert.Equal(t, 4, res.CountBySource(model.SourceStock))
	assert.Equal(t, 1, res.CountBySource(model.SourceOffcut))
	assert.Equal(t, "O5", res.Pieces[4].Label)

	require.Len(t, res.Cuts, 1)
	cut := res.Cuts[0]
	assert.Equal(t, 2, cut.Row)
	assert.Equal(t, model.CutStart, cut.CutType)
	assert.Equal(t, 1000.0, cut.FromLengthMm)
	assert.Equal(t, 200.0, cut.CutToMm)
	assert.Equal(t, 800.0, cut.OffcutLengthMm)
	assert.Equal(t, 300.0, cut.WidthMm)

	require.Len(t, res.Remaining, 1)
	assert.Equal(t, model.SourceStock, res.Remaining[0].Source)
	assert.InDelta(t, 1.2, res.InstalledAreaM2, 1e-9)
	assert.InDelta(t, 0.3, res.WasteAreaM2, 1e-9)
	assert.InDelta(t, 0.0, res.SurplusAreaM2, 1e-9)
	assert.Empty(t, res.Purchases)
	assert.True(t, res.IsComplete())
}

func TestPlankLayout_StockCost(t *testing.T) {
	stock := []model.StockItem{model.NewStockItem(1000, 300, 5).WithPrice(10)}
	req := plankRequest(model.NewRectangularRoom(2000, 600, 0), stock)

	res, err := PlankLayout{}.Layout(req)
	require.NoError(t, err)
	assert.Equal(t, 40.0, res.TotalCost)
}

func TestPlankLayout_NeededPlanksPriced(t *testing.T) {
	req := plankRequest(model.NewRectangularRoom(2000, 600, 0), nil)
	req.Plank.DefaultPricePerPlank = model.Price(12.5)

	res, err := PlankLayout{}.Layout(req)
	require.NoError(t, err)
	require.Len(t, res.Purchases, 1)
	require.NotNil(t, res.Purchases[0].EstimatedCost)
	assert.Equal(t, 62.5, *res.Purchases[0].EstimatedCost)
	assert.Equal(t, 62.5, res.TotalCost)
}

func TestPlankLayout_ExpansionGap(t *testing.T) {
	req := plankRequest(model.NewRectangularRoom(2020, 620, 10), nil)

	res, err := PlankLayout{}.Layout(req)
	require.NoError(t, err)
	assert.InDelta(t, 1.2, res.NeededAreaM2, 1e-9)
	for _, p := range res.Pieces {
		assert.LessOrEqual(t, p.X+p.LengthMm, 2000.0+GeometryToleranceMm)
		assert.LessOrEqual(t, p.Y+p.WidthMm, 600.0+GeometryToleranceMm)
	}
}

func TestPlankLayout_PolygonRowsFollowOutline(t *testing.T) {
	room := model.NewPolygonRoom(model.Outline{
		{X: 0, Y: 0}, {X: 2000, Y: 0}, {X: 2000, Y: 600},
		{X: 1000, Y: 600}, {X: 1000, Y: 1200}, {X: 0, Y: 1200},
	}, 0)
	req := plankRequest(room, nil)

	res, err := PlankLayout{}.Layout(req)
	require.NoError(t, err)

	assert.InDelta(t, 1.8, res.NeededAreaM2, 1e-9)
	for _, p := range res.Pieces {
		if p.Y >= 600 {
			assert.LessOrEqual(t, p.X+p.LengthMm, 1000.0+GeometryToleranceMm, "piece %s", p.Label)
		}
	}
	_, _, overlap := FindOverlap(res.Pieces)
	assert.False(t, overlap)
}

func TestPlankLayout_AlongWidth(t *testing.T) {
	req := plankRequest(model.NewRectangularRoom(2000, 600, 0), nil)
	req.Plank.Direction = model.DirectionAlongWidth

	res, err := PlankLayout{}.Layout(req)
	require.NoError(t, err)

	require.NotEmpty(t, res.Pieces)
	for _, p := range res.Pieces {
		assert.LessOrEqual(t, p.LengthMm, 300.0)
		assert.LessOrEqual(t, p.X+p.LengthMm, 2000.0+GeometryToleranceMm)
		assert.LessOrEqual(t, p.Y+p.WidthMm, 600.0+GeometryToleranceMm)
	}
	assert.InDelta(t, 1.2, res.NeededAreaM2, 1e-9)
	_, _, overlap := FindOverlap(res.Pieces)
	assert.False(t, overlap)
}

func TestPlankLayout_NoOverlapsWithMixedStock(t *testing.T) {
	stock := []model.StockItem{
		model.NewStockItem(1200, 300, 10),
		model.NewStockItem(600, 300, 10),
		model.NewStockItem(900, 200, 2),
	}
	req := plankRequest(model.NewRectangularRoom(4300, 3100, 10), stock)

	res, err := PlankLayout{}.Layout(req)
	require.NoError(t, err)

	_, _, overlap := FindOverlap(res.Pieces)
	assert.False(t, overlap)
	covered := res.InstalledAreaM2 + res.NeededAreaM2
	assert.InDelta(t, req.Room.UsableAreaM2(), covered, 1e-6)
	for _, p := range res.Pieces {
		assert.LessOrEqual(t, p.WidthMm, 300.0)
	}
}

func TestPlankLayout_TooManyPieces(t *testing.T) {
	req := plankRequest(model.NewRectangularRoom(1e6, 1e6, 0), nil)

	res, err := PlankLayout{}.Layout(req)
	assert.ErrorIs(t, err, ErrTooManyPieces)
	assert.Empty(t, res.Pieces)
}

func TestPlankLayout_MissingSettings(t *testing.T) {
	req := plankRequest(model.NewRectangularRoom(2000, 600, 0), nil)
	req.Plank = nil

	res, err := PlankLayout{}.Layout(req)
	require.NoError(t, err)
	assert.Empty(t, res.Pieces)
	assert.Empty(t, res.Purchases)
}

func TestPlankLayout_DegenerateRoom(t *testing.T) {
	req := plankRequest(model.NewRectangularRoom(10, 10, 10), nil)

	res, err := PlankLayout{}.Layout(req)
	require.NoError(t, err)
	assert.Empty(t, res.Pieces)
}

func TestNextStagger(t *testing.T) {
	assert.Equal(t, 200.0, nextStagger(0, 200, 2000))
	assert.Equal(t, 400.0, nextStagger(200, 200, 2000))
	assert.Equal(t, 200.0, nextStagger(1900, 200, 2000))
	// Short rows are capped at half the row length.
	assert.Equal(t, 250.0, nextStagger(0, 400, 500))
}

func TestPrimaryWidth(t *testing.T) {
	assert.Equal(t, 250.0, primaryWidth(nil, 250))

	stock := []model.StockItem{
		model.NewStockItem(1000, 200, 2),
		model.NewStockItem(1000, 300, 3),
	}
	assert.Equal(t, 300.0, primaryWidth(stock, 250))

	tie := []model.StockItem{
		model.NewStockItem(1000, 200, 2),
		model.NewStockItem(800, 180, 2),
	}
	assert.Equal(t, 200.0, primaryWidth(tie, 250))
}

func TestRowSegments(t *testing.T) {
	rect := model.NewRectangularRoom(2000, 600, 0)
	assert.Equal(t, []rowSegment{{start: 0, end: 2000}}, rowSegments(rect, 150, 2000))

	u := model.NewPolygonRoom(model.Outline{
		{X: 0, Y: 0}, {X: 3000, Y: 0}, {X: 3000, Y: 2000}, {X: 2000, Y: 2000},
		{X: 2000, Y: 1000}, {X: 1000, Y: 1000}, {X: 1000, Y: 2000}, {X: 0, Y: 2000},
	}, 0)
	segs := rowSegments(u, 1500, 3000)
	require.Len(t, segs, 2)
	assert.Equal(t, rowSegment{start: 0, end: 1000}, segs[0])
	assert.Equal(t, rowSegment{start: 2000, end: 3000}, segs[1])
}

func TestPlankLayout_HugeRoomHitsGuard(t *testing.T) {
	for _, room := range []model.Room{
		model.NewRectangularRoom(1000, 1e25, 0),
		model.NewRectangularRoom(1e25, 1000, 0),
	} {
		res, err := PlankLayout{}.Layout(plankRequest(room, nil))
		assert.ErrorIs(t, err, ErrTooManyPieces)
		assert.Empty(t, res.Pieces)

		along := plankRequest(room, nil)
		along.Plank.Direction = model.DirectionAlongWidth
		_, err = PlankLayout{}.Layout(along)
		assert.ErrorIs(t, err, ErrTooManyPieces)
	}
}

func TestPlankLayout_AreaConservation(t *testing.T) {
	stock := []model.StockItem{model.NewStockItem(1000, 300, 36)}
	req := plankRequest(model.NewRectangularRoom(3000, 2000, 10), stock)

	res, err := PlankLayout{}.Layout(req)
	require.NoError(t, err)

	require.Zero(t, res.CountBySource(model.SourceNeeded))
	assert.InDelta(t, 2.98*1.98, res.InstalledAreaM2, 1e-6)
	total := res.InstalledAreaM2 + res.NeededAreaM2 + res.WasteAreaM2 + res.SurplusAreaM2
	assert.InDelta(t, StockArea(stock), total, 1.0)
	assert.InDelta(t, 10.8, total, 1e-6)
}
