package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/floorplan/internal/model"
)

// PlankLayout lays planks in rows with staggered end joints, reusing
// offcuts from earlier cuts before taking fresh stock.
type PlankLayout struct{}

func (PlankLayout) Kind() Kind { return KindPlank }

// Layout places planks for req. Missing plank settings yield an empty
// result. Rows run along the room length unless the settings ask for the
// width, in which case the room is transposed and the pieces swapped back.
func (PlankLayout) Layout(req Request) (model.LayoutResult, error) {
	if req.Plank == nil {
		return model.EmptyResult(), nil
	}
	s := *req.Plank
	if s.Direction != model.DirectionAlongWidth {
		return layoutRows(req.Room, s, req.Stock, req.UseStock)
	}

	res, err := layoutRows(transposeRoom(req.Room), s, req.Stock, req.UseStock)
	if err != nil {
		return res, err
	}
	for i, p := range res.Pieces {
		p.X, p.Y = p.Y, p.X
		p.LengthMm, p.WidthMm = p.WidthMm, p.LengthMm
		res.Pieces[i] = p
	}
	return res, nil
}

// transposeRoom mirrors a room across its diagonal so that rows along the
// width become rows along the length.
func transposeRoom(r model.Room) model.Room {
	t := r
	t.LengthMm, t.WidthMm = r.WidthMm, r.LengthMm
	if r.Points != nil {
		t.Points = make(model.Outline, len(r.Points))
		for i, p := range r.Points {
			t.Points[i] = model.Point2D{X: p.Y, Y: p.X}
		}
	}
	return t
}

// poolPlank is one physical unit of stock available to the rows.
type poolPlank struct {
	length float64
	price  *float64
}

// primaryWidth returns the plank width with the largest total quantity in
// stock. Ties go to the wider plank. Without stock the default width wins.
func primaryWidth(stock []model.StockItem, fallback float64) float64 {
	counts := make(map[float64]int)
	for _, s := range stock {
		if s.Quantity > 0 && s.WidthMm > 0 && s.LengthMm > 0 {
			counts[s.WidthMm] += s.Quantity
		}
	}
	best, bestCount := fallback, 0
	for w, n := range counts {
		if n > bestCount || (n == bestCount && w > best) {
			best, bestCount = w, n
		}
	}
	return best
}

// buildPool expands matching stock into one entry per unit, longest first.
func buildPool(stock []model.StockItem, width float64) []poolPlank {
	var pool []poolPlank
	for _, s := range stock {
		if s.WidthMm != width || s.LengthMm <= 0 {
			continue
		}
		for i := 0; i < s.Quantity; i++ {
			pool = append(pool, poolPlank{length: s.LengthMm, price: s.PricePerUnit})
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].length > pool[j].length
	})
	return pool
}

// nextStagger returns the joint offset of the row after one with offset prev.
func nextStagger(prev, minStagger, rowLength float64) float64 {
	offset := math.Min(prev+minStagger, prev+rowLength/2)
	if offset >= rowLength {
		offset = minStagger
	}
	return offset
}

// rowSegment is a run of floor inside the room along one row.
type rowSegment struct {
	start, end float64
}

// rowSegments returns the runs of a row in layout coordinates. Rectangular
// rooms have one run over the whole usable length; polygon rooms are cut
// by a horizontal scanline through the row centre.
func rowSegments(room model.Room, rowCenterY, usableLength float64) []rowSegment {
	if !room.IsPolygon() {
		return []rowSegment{{start: 0, end: usableLength}}
	}
	pts := room.Points
	n := len(pts)
	if n < 3 {
		return nil
	}
	min, _ := pts.BoundingBox()
	gap := room.ExpansionGapMm
	y := rowCenterY + min.Y + gap

	var xs []float64
	for i := 0; i < n; i++ {
		p1, p2 := pts[i], pts[(i+1)%n]
		if (p1.Y <= y && y < p2.Y) || (p2.Y <= y && y < p1.Y) {
			xs = append(xs, p1.X+(y-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y))
		}
	}
	sort.Float64s(xs)

	var segs []rowSegment
	for i := 0; i+1 < len(xs); i += 2 {
		start := math.Max(0, xs[i]-min.X-gap)
		end := math.Min(usableLength, xs[i+1]-min.X-gap)
		if end-start > GeometryToleranceMm {
			segs = append(segs, rowSegment{start: start, end: end})
		}
	}
	return segs
}

// rowState carries the mutable pools through one layout pass.
type rowState struct {
	settings  model.PlankSettings
	plankLen  float64
	pool      []poolPlank
	offcuts   []float64
	pieces    []model.PlacedPiece
	cuts      []model.CutRecord
	stockCost float64
}

// takeOffcut removes and returns the first offcut at least target long.
func (st *rowState) takeOffcut(target float64) (float64, bool) {
	for i, l := range st.offcuts {
		if l >= target-model.Epsilon {
			st.offcuts = append(st.offcuts[:i], st.offcuts[i+1:]...)
			return l, true
		}
	}
	return 0, false
}

// takeStock removes and returns the first pool plank at least target long.
func (st *rowState) takeStock(target float64) (poolPlank, bool) {
	for i, p := range st.pool {
		if p.length >= target-model.Epsilon {
			st.pool = append(st.pool[:i], st.pool[i+1:]...)
			return p, true
		}
	}
	return poolPlank{}, false
}

// fillSegment walks one run of a row, placing a piece up to each joint.
func (st *rowState) fillSegment(row int, y, width, offset float64, seg rowSegment) error {
	x := seg.start
	for x < seg.end {
		k := math.Floor((x-offset)/st.plankLen+model.Epsilon) + 1
		nextJoint := offset + k*st.plankLen
		target := math.Min(nextJoint-x, seg.end-x)
		if target < SnapToleranceMm {
			x += SnapToleranceMm
			continue
		}
		if len(st.pieces) >= MaxPlacements {
			return ErrTooManyPieces
		}

		label := len(st.pieces) + 1
		piece := model.PlacedPiece{X: x, Y: y, LengthMm: target, WidthMm: width}

		var from float64
		if l, ok := st.takeOffcut(target); ok {
			from = l
			piece.Source = model.SourceOffcut
			piece.Label = fmt.Sprintf("O%d", label)
		} else if p, ok := st.takeStock(target); ok {
			from = p.length
			piece.Source = model.SourceStock
			piece.Label = fmt.Sprintf("S%d", label)
			if p.price != nil {
				st.stockCost += *p.price
			}
		} else {
			piece.Source = model.SourceNeeded
			piece.Label = fmt.Sprintf("N%d", label)
		}
		piece.Status = model.StatusFor(piece.Source)
		st.pieces = append(st.pieces, piece)

		if piece.Source != model.SourceNeeded && from > target+SnapToleranceMm {
			offcut := from - target
			if offcut >= st.settings.MinOffcutLengthMm {
				st.offcuts = append(st.offcuts, offcut)
			}
			cutType := model.CutEnd
			if math.Abs(x-seg.start) < SnapToleranceMm {
				cutType = model.CutStart
			}
			if math.Abs(x+target-seg.end) < SnapToleranceMm {
				cutType = model.CutEnd
			}
			st.cuts = append(st.cuts, model.CutRecord{
				Row:            row + 1,
				CutType:        cutType,
				FromLengthMm:   from,
				CutToMm:        target,
				OffcutLengthMm: offcut,
				WidthMm:        width,
			})
		}
		x += target
	}
	return nil
}

// layoutRows is the row algorithm for rows running along the room length.
func layoutRows(room model.Room, s model.PlankSettings, stock []model.StockItem, useStock bool) (model.LayoutResult, error) {
	usableLength := room.UsableLengthMm()
	usableWidth := room.UsableWidthMm()
	if usableLength <= 0 || usableWidth <= 0 {
		return model.EmptyResult(), nil
	}

	width := s.DefaultWidthMm
	var pool []poolPlank
	if useStock {
		width = primaryWidth(stock, s.DefaultWidthMm)
	}
	width = math.Max(width, MinUnitSizeMm)
	if useStock {
		pool = buildPool(stock, width)
	}
	plankLen := math.Max(s.DefaultLengthMm, MinUnitSizeMm)

	rows := math.Ceil(usableWidth / width)
	perRow := math.Ceil(usableLength/plankLen) + 1
	if rows*perRow > MaxPlacements {
		return model.EmptyResult(), ErrTooManyPieces
	}
	rowCount := int(rows)

	st := &rowState{settings: s, plankLen: plankLen, pool: pool}
	offset := 0.0
	for row := 0; row < rowCount; row++ {
		y := float64(row) * width
		rowWidth := math.Min(width, usableWidth-y)
		if rowWidth < width*0.1 {
			break
		}
		if row > 0 {
			offset = nextStagger(offset, s.MinStaggerMm, usableLength)
		}
		for _, seg := range rowSegments(room, y+rowWidth/2, usableLength) {
			if err := st.fillSegment(row, y, rowWidth, offset, seg); err != nil {
				return model.EmptyResult(), err
			}
		}
	}

	res := model.EmptyResult()
	if st.pieces != nil {
		res.Pieces = st.pieces
	}
	if st.cuts != nil {
		res.Cuts = st.cuts
	}
	for _, p := range st.pool {
		res.Remaining = append(res.Remaining, model.RemainingPiece{LengthMm: p.length, WidthMm: width, Source: model.SourceStock})
	}
	for _, l := range st.offcuts {
		if l >= s.MinOffcutLengthMm {
			res.Remaining = append(res.Remaining, model.RemainingPiece{LengthMm: l, WidthMm: width, Source: model.SourceOffcut})
		}
	}
	res.WasteAreaM2 = WasteArea(res.Remaining)
	finishAreas(&res, stock, useStock)

	res.TotalCost = st.stockCost
	if needed := res.CountBySource(model.SourceNeeded); needed > 0 {
		suggestion := model.PurchaseSuggestion{
			UnitLengthMm:  plankLen,
			UnitWidthMm:   width,
			QuantityValue: float64(needed),
			UnitName:      "Planks",
		}
		if s.DefaultPricePerPlank != nil {
			cost := *s.DefaultPricePerPlank * float64(needed)
			suggestion.EstimatedCost = &cost
			res.TotalCost += cost
		}
		res.Purchases = append(res.Purchases, suggestion)
	}
	return res, nil
}
