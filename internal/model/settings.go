package model

// LayingDirection is the run direction of plank rows.
type LayingDirection string

const (
	DirectionAlongLength LayingDirection = "alongLength"
	DirectionAlongWidth  LayingDirection = "alongWidth"
)

// TilePattern selects the grid offset.
type TilePattern string

const (
	TileStraight TilePattern = "straight"
	TileBrick    TilePattern = "brick"
)

// TileOrientation selects per-tile rotation.
type TileOrientation string

const (
	OrientationMonolithic  TileOrientation = "monolithic"
	OrientationQuarterTurn TileOrientation = "quarterTurn"
)

// Default settings values for new projects.
const (
	DefaultMinStaggerMm       = 200.0
	DefaultMinOffcutLengthMm  = 150.0
	DefaultPlankLengthMm      = 1000.0
	DefaultPlankWidthMm       = 300.0
	DefaultTileSizeMm         = 500.0
	DefaultWasteFactorPercent = 7.0
)

// PlankSettings configures the row-based plank layout.
type PlankSettings struct {
	MinStaggerMm         float64         `json:"min_stagger_mm"`
	MinOffcutLengthMm    float64         `json:"min_offcut_length_mm"`
	Direction            LayingDirection `json:"direction"`
	DefaultLengthMm      float64         `json:"default_length_mm"`
	DefaultWidthMm       float64         `json:"default_width_mm"`
	DefaultPricePerPlank *float64        `json:"default_price_per_plank,omitempty"`
}

func DefaultPlankSettings() PlankSettings {
	return PlankSettings{
		MinStaggerMm:      DefaultMinStaggerMm,
		MinOffcutLengthMm: DefaultMinOffcutLengthMm,
		Direction:         DirectionAlongLength,
		DefaultLengthMm:   DefaultPlankLengthMm,
		DefaultWidthMm:    DefaultPlankWidthMm,
	}
}

// TileSettings configures the grid layout. TileWidthMm is 0 for square
// tiles; sheet materials set it to get rectangular cells.
type TileSettings struct {
	TileSizeMm          float64         `json:"tile_size_mm"`
	TileWidthMm         float64         `json:"tile_width_mm,omitempty"`
	Pattern             TilePattern     `json:"pattern"`
	Orientation         TileOrientation `json:"orientation"`
	ReuseEdgeOffcuts    bool            `json:"reuse_edge_offcuts"` // cut later edge cells from stock tile remainders
	TilesPerBox         *int            `json:"tiles_per_box,omitempty"`
	DefaultPricePerTile *float64        `json:"default_price_per_tile,omitempty"`
}

func DefaultTileSettings() TileSettings {
	return TileSettings{
		TileSizeMm:  DefaultTileSizeMm,
		Pattern:     TileStraight,
		Orientation: OrientationMonolithic,
	}
}

// CellLengthMm is the tile extent along the room length.
func (t TileSettings) CellLengthMm() float64 {
	return t.TileSizeMm
}

// CellWidthMm is the tile extent along the room width.
func (t TileSettings) CellWidthMm() float64 {
	if t.TileWidthMm > 0 {
		return t.TileWidthMm
	}
	return t.TileSizeMm
}

// ContinuousSettings overrides material defaults for bulk quantities.
// Zero values fall back to the material.
type ContinuousSettings struct {
	ThicknessMm      float64 `json:"thickness_mm,omitempty"`
	CoveragePerUnit  float64 `json:"coverage_per_unit,omitempty"`
	SheetLengthMm    float64 `json:"sheet_length_mm,omitempty"`
	SheetWidthMm     float64 `json:"sheet_width_mm,omitempty"`
	ApplyWasteFactor bool    `json:"apply_waste_factor,omitempty"`
}
