package engine

import "errors"

// Tolerances shared by all layout algorithms. Completeness and float
// rounding use model.CompleteToleranceM2 and model.Epsilon.
const (
	// GeometryToleranceMm decides whether a clipped cell is empty and
	// whether a tile counts as full.
	GeometryToleranceMm = 0.1
	// SnapToleranceMm is the smallest plank length worth placing and the
	// margin for deciding which end of a plank was cut.
	SnapToleranceMm = 1.0
	// AngleToleranceDeg is the smallest rotation treated as diagonal.
	AngleToleranceDeg = 0.1
	// ChainToleranceMm is the default endpoint distance for chaining
	// scanned wall segments.
	ChainToleranceMm = 150.0
	// StockMatchToleranceMm is how far a stock tile may differ from the
	// configured tile size and still be used.
	StockMatchToleranceMm = 1.0
)

// Work limits. A layout that would exceed them returns an empty result
// together with ErrTooManyPieces.
const (
	MaxPlacements = 20000
	MinUnitSizeMm = 10.0
)

// ErrTooManyPieces is returned when a layout would place more than
// MaxPlacements pieces or grid cells.
var ErrTooManyPieces = errors.New("layout exceeds the maximum number of pieces")
