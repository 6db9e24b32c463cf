package engine

import (
	"testing"

	"github.com/piwi3910/floorplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tileRequest(room model.Room, size float64, stock []model.StockItem) Request {
	m, _ := model.FindMaterial("ceramic_tile")
	ts := model.DefaultTileSettings()
	ts.TileSizeMm = size
	return Request{
		Room:     room,
		Material: m,
		Tile:     &ts,
		Stock:    stock,
		UseStock: len(stock) > 0,
	}
}

func TestGridLayout_FullTiles(t *testing.T) {
	req := tileRequest(model.NewRectangularRoom(1000, 1000, 0), 500, nil)
	req.WasteFactorPercent = 10

	res, err := GridLayout{}.Layout(req)
	require.NoError(t, err)

	require.Len(t, res.Pieces, 4)
	assert.Empty(t, res.Cuts)
	assert.InDelta(t, 1.0, res.NeededAreaM2, 1e-9)
	assert.Zero(t, res.WasteAreaM2)

	require.Len(t, res.Purchases, 1)
	assert.Equal(t, 5.0, res.Purchases[0].QuantityValue)
	assert.Equal(t, 500.0, res.Purchases[0].UnitLengthMm)
	assert.Equal(t, "Tiles", res.Purchases[0].UnitName)
}

func TestGridLayout_PacksAndPrice(t *testing.T) {
	req := tileRequest(model.NewRectangularRoom(1000, 1000, 0), 500, nil)
	perBox := 4
	req.Tile.TilesPerBox = &perBox
	req.Tile.DefaultPricePerTile = model.Price(3)
	req.WasteFactorPercent = 10

	res, err := GridLayout{}.Layout(req)
	require.NoError(t, err)

	require.Len(t, res.Purchases, 1)
	s := res.Purchases[0]
	require.NotNil(t, s.PacksNeeded)
	assert.Equal(t, 2, *s.PacksNeeded)
	require.NotNil(t, s.EstimatedCost)
	assert.Equal(t, 15.0, *s.EstimatedCost)
	assert.Equal(t, 15.0, res.TotalCost)
}

func TestGridLayout_EdgeCuts(t *testing.T) {
	req := tileRequest(model.NewRectangularRoom(1200, 1000, 0), 500, nil)

	res, err := GridLayout{}.Layout(req)
	require.NoError(t, err)

	// Two full columns plus one 200mm column, two rows.
	require.Len(t, res.Pieces, 6)
	require.Len(t, res.Cuts, 1)
	assert.True(t, res.Cuts[0].IsTileCut())
	assert.Equal(t, 2, res.Cuts[0].EdgeCutCount)
	assert.Equal(t, EdgeCutDimensions, res.Cuts[0].CutDimensions)
	assert.InDelta(t, 0.25, res.WasteAreaM2, 1e-9)
	assert.InDelta(t, 1.2, res.NeededAreaM2, 1e-9)
}

func TestGridLayout_BrickPattern(t *testing.T) {
	req := tileRequest(model.NewRectangularRoom(1000, 1000, 0), 500, nil)
	req.Tile.Pattern = model.TileBrick

	res, err := GridLayout{}.Layout(req)
	require.NoError(t, err)

	require.Len(t, res.Pieces, 5)
	var shifted []model.PlacedPiece
	for _, p := range res.Pieces {
		if p.Y == 500 {
			shifted = append(shifted, p)
		}
	}
	require.Len(t, shifted, 3)
	assert.Equal(t, 250.0, shifted[0].LengthMm)
	assert.Equal(t, 250.0, shifted[1].X)
	assert.Equal(t, 500.0, shifted[1].LengthMm)
	assert.Equal(t, 250.0, shifted[2].LengthMm)

	require.Len(t, res.Cuts, 1)
	assert.Equal(t, 2, res.Cuts[0].EdgeCutCount)
	assert.InDelta(t, 1.0, res.NeededAreaM2, 1e-9)
	_, _, overlap := FindOverlap(res.Pieces)
	assert.False(t, overlap)
}

func TestGridLayout_QuarterTurn(t *testing.T) {
	req := tileRequest(model.NewRectangularRoom(1000, 1000, 0), 500, nil)
	req.Tile.Orientation = model.OrientationQuarterTurn

	res, err := GridLayout{}.Layout(req)
	require.NoError(t, err)

	require.Len(t, res.Pieces, 4)
	assert.Equal(t, 0.0, res.Pieces[0].Rotation)
	assert.Equal(t, 90.0, res.Pieces[1].Rotation)
	assert.Equal(t, 90.0, res.Pieces[2].Rotation)
	assert.Equal(t, 0.0, res.Pieces[3].Rotation)
}

func TestQuarterTurn(t *testing.T) {
	assert.Equal(t, 0.0, quarterTurn(0, 0))
	assert.Equal(t, 90.0, quarterTurn(0, 1))
	assert.Equal(t, 90.0, quarterTurn(1, 0))
	assert.Equal(t, 90.0, quarterTurn(0, -1))
	assert.Equal(t, 0.0, quarterTurn(1, -1))
}

func TestGridLayout_ConsumesCheapestStockFirst(t *testing.T) {
	stock := []model.StockItem{
		model.NewStockItem(500, 500, 3).WithPrice(2),
		model.NewStockItem(500, 500, 1).WithPrice(1),
		model.NewStockItem(300, 300, 10),
	}
	req := tileRequest(model.NewRectangularRoom(1500, 1000, 0), 500, stock)

	res, err := GridLayout{}.Layout(req)
	require.NoError(t, err)

	require.Len(t, res.Pieces, 6)
	assert.Equal(t, 4, res.CountBySource(model.SourceStock))
	assert.Equal(t, 2, res.CountBySource(model.SourceNeeded))
	assert.Equal(t, "T1", res.Pieces[0].Label)
	assert.Equal(t, "N5", res.Pieces[4].Label)
	assert.Equal(t, 7.0, res.TotalCost)
	assert.Empty(t, res.Remaining)

	require.Len(t, res.Purchases, 1)
	assert.Equal(t, 2.0, res.Purchases[0].QuantityValue)
}

func TestGridLayout_RotatedStockMatches(t *testing.T) {
	stock := []model.StockItem{model.NewStockItem(600, 300, 10)}
	req := tileRequest(model.NewRectangularRoom(600, 600, 0), 300, stock)
	req.Tile.TileWidthMm = 600

	res, err := GridLayout{}.Layout(req)
	require.NoError(t, err)

	require.Len(t, res.Pieces, 2)
	assert.Equal(t, 2, res.CountBySource(model.SourceStock))
	assert.Len(t, res.Remaining, 8)
	assert.InDelta(t, 1.44, res.WasteAreaM2, 1e-9)
}

func TestGridLayout_PolygonDropsOutsideCells(t *testing.T) {
	room := model.NewPolygonRoom(model.Outline{
		{X: 0, Y: 0}, {X: 2000, Y: 0}, {X: 2000, Y: 600},
		{X: 1000, Y: 600}, {X: 1000, Y: 1200}, {X: 0, Y: 1200},
	}, 0)
	req := tileRequest(room, 600, nil)

	res, err := GridLayout{}.Layout(req)
	require.NoError(t, err)

	assert.Len(t, res.Pieces, 6)
	for _, p := range res.Pieces {
		cx, cy := p.X+p.LengthMm/2, p.Y+p.WidthMm/2
		assert.True(t, room.Contains(cx, cy), "piece %s centre outside room", p.Label)
	}
}

func TestGridLayout_TooManyCells(t *testing.T) {
	req := tileRequest(model.NewRectangularRoom(100000, 100000, 0), 500, nil)

	res, err := GridLayout{}.Layout(req)
	assert.ErrorIs(t, err, ErrTooManyPieces)
	assert.Empty(t, res.Pieces)
	assert.Empty(t, res.Purchases)
}

func TestGridLayout_HugeRoomHitsGuard(t *testing.T) {
	for _, room := range []model.Room{
		model.NewRectangularRoom(1000, 1e25, 0),
		model.NewRectangularRoom(1e25, 1000, 0),
	} {
		res, err := GridLayout{}.Layout(tileRequest(room, 500, nil))
		assert.ErrorIs(t, err, ErrTooManyPieces)
		assert.Empty(t, res.Pieces)
	}
}

func TestGridLayout_BrickRowOffsets(t *testing.T) {
	req := tileRequest(model.NewRectangularRoom(2000, 1000, 0), 500, nil)
	req.Tile.Pattern = model.TileBrick

	res, err := GridLayout{}.Layout(req)
	require.NoError(t, err)

	var row0, row1 []float64
	for _, p := range res.Pieces {
		switch p.Y {
		case 0:
			row0 = append(row0, p.X)
		case 500:
			row1 = append(row1, p.X)
		}
	}
	assert.Equal(t, []float64{0, 500, 1000, 1500}, row0)
	assert.Equal(t, []float64{0, 250, 750, 1250, 1750}, row1)
	assert.Equal(t, 250.0, res.Pieces[4].LengthMm)
	assert.Equal(t, 250.0, res.Pieces[len(res.Pieces)-1].LengthMm)
	require.Len(t, res.Cuts, 1)
	assert.Equal(t, 2, res.Cuts[0].EdgeCutCount)
}

func TestGridLayout_AreaConservation(t *testing.T) {
	stock := []model.StockItem{model.NewStockItem(500, 500, 10)}
	req := tileRequest(model.NewRectangularRoom(1200, 1000, 0), 500, stock)

	res, err := GridLayout{}.Layout(req)
	require.NoError(t, err)

	require.Zero(t, res.NeededAreaM2)
	total := res.InstalledAreaM2 + res.NeededAreaM2 + res.WasteAreaM2 + res.SurplusAreaM2
	assert.InDelta(t, StockArea(stock), total, 1.0)
	assert.InDelta(t, 2.5, total, 1e-9)
}

func TestGridLayout_ReuseEdgeOffcuts(t *testing.T) {
	stock := []model.StockItem{model.NewStockItem(500, 500, 10)}
	req := tileRequest(model.NewRectangularRoom(1200, 1000, 0), 500, stock)
	req.Tile.ReuseEdgeOffcuts = true

	res, err := GridLayout{}.Layout(req)
	require.NoError(t, err)

	// The 300 mm strip cut from the first edge tile covers the second edge cell.
	require.Len(t, res.Pieces, 6)
	assert.Equal(t, 5, res.CountBySource(model.SourceStock))
	assert.Equal(t, 1, res.CountBySource(model.SourceOffcut))
	assert.Equal(t, "O6", res.Pieces[5].Label)
	assert.Equal(t, 200.0, res.Pieces[5].LengthMm)
	require.Len(t, res.Cuts, 1)
	assert.Equal(t, 2, res.Cuts[0].EdgeCutCount)

	assert.Len(t, res.Remaining, 5)
	assert.InDelta(t, 1.2, res.InstalledAreaM2, 1e-9)
	assert.InDelta(t, 1.3, res.WasteAreaM2, 1e-9)
	assert.InDelta(t, 0.0, res.SurplusAreaM2, 1e-9)
	total := res.InstalledAreaM2 + res.NeededAreaM2 + res.WasteAreaM2 + res.SurplusAreaM2
	assert.InDelta(t, 2.5, total, 1e-9)
}

func TestGridLayout_ReuseKeepsUnusedOffcut(t *testing.T) {
	stock := []model.StockItem{model.NewStockItem(500, 500, 10)}
	req := tileRequest(model.NewRectangularRoom(1200, 500, 0), 500, stock)
	req.Tile.ReuseEdgeOffcuts = true

	res, err := GridLayout{}.Layout(req)
	require.NoError(t, err)

	require.Len(t, res.Pieces, 3)
	var offcuts []model.RemainingPiece
	for _, r := range res.Remaining {
		if r.Source == model.SourceOffcut {
			offcuts = append(offcuts, r)
		}
	}
	require.Len(t, offcuts, 1)
	assert.Equal(t, 300.0, offcuts[0].LengthMm)
	assert.Equal(t, 500.0, offcuts[0].WidthMm)
	// 7 spare tiles plus the 300 x 500 strip.
	assert.InDelta(t, 7*0.25+0.15, res.WasteAreaM2, 1e-9)
}

func TestEdgeOffcut(t *testing.T) {
	o, ok := edgeOffcut(500, 500, 200, 500)
	require.True(t, ok)
	assert.Equal(t, tileOffcut{length: 300, width: 500}, o)

	o, ok = edgeOffcut(500, 500, 500, 100)
	require.True(t, ok)
	assert.Equal(t, tileOffcut{length: 500, width: 400}, o)

	_, ok = edgeOffcut(500, 500, 495, 500)
	assert.False(t, ok)
}

func TestGridLayout_MissingSettings(t *testing.T) {
	req := tileRequest(model.NewRectangularRoom(1000, 1000, 0), 500, nil)
	req.Tile = nil

	res, err := GridLayout{}.Layout(req)
	require.NoError(t, err)
	assert.Empty(t, res.Pieces)
}

func TestGridLayout_PlasterboardSheets(t *testing.T) {
	m, ok := model.FindMaterial("plasterboard")
	require.True(t, ok)
	layer := model.NewLayer(m)
	req := Request{
		Room:     model.NewRectangularRoom(4800, 2400, 0),
		Material: m,
		Tile:     layer.Tile,
	}

	res, err := Generate(req)
	require.NoError(t, err)

	require.Len(t, res.Pieces, 4)
	require.Len(t, res.Purchases, 1)
	assert.Equal(t, "Sheets", res.Purchases[0].UnitName)
	assert.Equal(t, 2400.0, res.Purchases[0].UnitLengthMm)
	assert.Equal(t, 1200.0, res.Purchases[0].UnitWidthMm)
}
