package model

import (
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the project file format written by this version.
// Version 1 files stored a single material type with top-level settings;
// version 2 stores a list of layers.
const SchemaVersion = 2

// Layer is one material applied to the room surface.
type Layer struct {
	Material    Material            `json:"material"`
	ThicknessMm float64             `json:"thickness_mm"`
	IsVisible   bool                `json:"is_visible"`
	Plank       *PlankSettings      `json:"laminate_settings,omitempty"`
	Tile        *TileSettings       `json:"tile_settings,omitempty"`
	Continuous  *ContinuousSettings `json:"continuous_settings,omitempty"`
}

// NewLayer creates a visible layer for m with default settings matching its
// unit shape.
func NewLayer(m Material) Layer {
	l := Layer{Material: m, ThicknessMm: m.DefaultThicknessMm, IsVisible: true}
	switch {
	case m.IsContinuous():
		l.Continuous = &ContinuousSettings{ThicknessMm: m.DefaultThicknessMm}
	case m.Unit == UnitPlank:
		ps := DefaultPlankSettings()
		if m.DefaultLengthMm > 0 {
			ps.DefaultLengthMm = m.DefaultLengthMm
		}
		if m.DefaultWidthMm > 0 {
			ps.DefaultWidthMm = m.DefaultWidthMm
		}
		ps.DefaultPricePerPlank = m.PricePerUnit
		l.Plank = &ps
	default:
		ts := DefaultTileSettings()
		if m.DefaultLengthMm > 0 {
			ts.TileSizeMm = m.DefaultLengthMm
		}
		if m.DefaultWidthMm > 0 && m.DefaultWidthMm != m.DefaultLengthMm {
			ts.TileWidthMm = m.DefaultWidthMm
		}
		ts.DefaultPricePerTile = m.PricePerUnit
		l.Tile = &ts
	}
	return l
}

// Project ties a room, its layers and the available stock together for
// save/load.
type Project struct {
	SchemaVersion      int           `json:"schema_version"`
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	CreatedAt          string        `json:"created_at"`
	UpdatedAt          string        `json:"updated_at"`
	Room               Room          `json:"room"`
	Layers             []Layer       `json:"layers"`
	Stock              []StockItem   `json:"stock"`
	UseStock           bool          `json:"use_stock"`
	WasteFactorPercent float64       `json:"waste_factor_percent"`
	Result             *LayoutResult `json:"result,omitempty"`
}

func NewProject() Project {
	now := time.Now().UTC().Format(time.RFC3339)
	return Project{
		SchemaVersion:      SchemaVersion,
		ID:                 uuid.New().String()[:8],
		Name:               "Untitled",
		CreatedAt:          now,
		UpdatedAt:          now,
		Room:               DefaultRoom(),
		Layers:             []Layer{NewLayer(DefaultMaterial())},
		Stock:              []StockItem{},
		UseStock:           true,
		WasteFactorPercent: DefaultWasteFactorPercent,
	}
}

// ActiveLayer returns the index of the first visible layer, or -1.
func (p Project) ActiveLayer() int {
	for i, l := range p.Layers {
		if l.IsVisible {
			return i
		}
	}
	return -1
}

// StockArea returns the total area of the project's stock in m².
func (p Project) StockArea() float64 {
	var total float64
	for _, s := range p.Stock {
		total += s.AreaM2()
	}
	return total
}
