// Package engine computes installation layouts for a room and a surfacing
// material: planks in staggered rows, tiles on a grid, or bulk quantities.
//
// Every algorithm is a pure function of its Request. Results are built
// fresh per call and calls on separate requests may run concurrently.
package engine

import (
	"fmt"

	"github.com/piwi3910/floorplan/internal/model"
)

// Request is the input to a layout pass.
type Request struct {
	Room               model.Room               `json:"room"`
	Material           model.Material           `json:"material"`
	Plank              *model.PlankSettings     `json:"laminate_settings,omitempty"`
	Tile               *model.TileSettings      `json:"tile_settings,omitempty"`
	Continuous         model.ContinuousSettings `json:"continuous_settings"`
	Stock              []model.StockItem        `json:"stock"`
	UseStock           bool                     `json:"use_stock"`
	WasteFactorPercent float64                  `json:"waste_factor_percent"`
}

// Kind names a layout algorithm family.
type Kind string

const (
	KindPlank      Kind = "plank"
	KindGrid       Kind = "grid"
	KindContinuous Kind = "continuous"
)

// LayoutAlgorithm produces a layout for a request in the straight frame.
// Diagonal rooms are handled by Generate around it.
type LayoutAlgorithm interface {
	Kind() Kind
	Layout(req Request) (model.LayoutResult, error)
}

// KindFor maps a material to its algorithm family.
func KindFor(m model.Material) Kind {
	switch {
	case m.IsContinuous():
		return KindContinuous
	case m.Unit == model.UnitPlank:
		return KindPlank
	case m.Unit == model.UnitTile, m.Unit == model.UnitSheet:
		return KindGrid
	case m.Unit == model.UnitBulk:
		return KindContinuous
	}
	return ""
}

// ForKind returns the algorithm for a kind, or nil for an unknown kind.
func ForKind(k Kind) LayoutAlgorithm {
	switch k {
	case KindPlank:
		return PlankLayout{}
	case KindGrid:
		return GridLayout{}
	case KindContinuous:
		return ContinuousCalculator{}
	}
	return nil
}

// ForMaterial returns the algorithm that lays out m.
func ForMaterial(m model.Material) LayoutAlgorithm {
	return ForKind(KindFor(m))
}

// algorithmFor picks the algorithm for a request. Requests without a
// recognisable material fall back to whichever settings they carry.
func algorithmFor(req Request) LayoutAlgorithm {
	if alg := ForMaterial(req.Material); alg != nil {
		return alg
	}
	switch {
	case req.Plank != nil:
		return PlankLayout{}
	case req.Tile != nil:
		return GridLayout{}
	}
	return ContinuousCalculator{}
}

// Generate runs the layout for req. Diagonal rooms are rotated into a
// straight frame, laid out, and the pieces rotated back.
func Generate(req Request) (model.LayoutResult, error) {
	alg := algorithmFor(req)
	if alg.Kind() != KindContinuous && IsDiagonal(req.Room) {
		return generateDiagonal(alg, req)
	}
	return alg.Layout(req)
}

func generateDiagonal(alg LayoutAlgorithm, req Request) (model.LayoutResult, error) {
	tf := NewTransform(req.Room)
	rotated := req
	rotated.Room = tf.RotatedRoom()

	res, err := alg.Layout(rotated)
	if err != nil {
		return res, err
	}

	from := rotated.Room.Origin()
	to := req.Room.Origin()
	pieces := make([]model.PlacedPiece, len(res.Pieces))
	for i, p := range res.Pieces {
		p.X += from.X
		p.Y += from.Y
		p = tf.TransformBack(p)
		p.X -= to.X
		p.Y -= to.Y
		pieces[i] = p
	}
	res.Pieces = pieces
	return res, nil
}

// RequestFromProject builds the request for one layer of a project.
func RequestFromProject(p model.Project, layer int) (Request, error) {
	if layer < 0 || layer >= len(p.Layers) {
		return Request{}, fmt.Errorf("project %q has no layer %d", p.Name, layer)
	}
	l := p.Layers[layer]
	req := Request{
		Room:               p.Room,
		Material:           l.Material,
		Plank:              l.Plank,
		Tile:               l.Tile,
		Stock:              p.Stock,
		UseStock:           p.UseStock,
		WasteFactorPercent: p.WasteFactorPercent,
	}
	if l.Continuous != nil {
		req.Continuous = *l.Continuous
	}
	if req.Continuous.ThicknessMm == 0 && l.ThicknessMm > 0 {
		req.Continuous.ThicknessMm = l.ThicknessMm
	}
	return req, nil
}
