package model

import "strings"

// MaterialCategory groups materials by where they go.
type MaterialCategory string

const (
	CategoryFlooring     MaterialCategory = "flooring"
	CategoryWallCovering MaterialCategory = "wallCovering"
	CategoryLiquid       MaterialCategory = "liquid"
	CategoryStructural   MaterialCategory = "structural"
)

// CalculationKind says whether a material is placed piece by piece or
// measured as a bulk quantity.
type CalculationKind string

const (
	CalculationDiscrete   CalculationKind = "discrete"
	CalculationContinuous CalculationKind = "continuous"
)

// UnitShape describes the physical unit a discrete material is sold in.
type UnitShape string

const (
	UnitPlank UnitShape = "plank"
	UnitTile  UnitShape = "tile"
	UnitSheet UnitShape = "sheet"
	UnitBulk  UnitShape = "bulk"
)

// Material describes a surfacing product.
type Material struct {
	Key                string           `json:"key"`
	Name               string           `json:"name"`
	Category           MaterialCategory `json:"category"`
	Calculation        CalculationKind  `json:"calculation"`
	Unit               UnitShape        `json:"unit"`
	DefaultLengthMm    float64          `json:"default_length_mm"`
	DefaultWidthMm     float64          `json:"default_width_mm"`
	DefaultThicknessMm float64          `json:"default_thickness_mm"`
	CoveragePerUnit    float64          `json:"coverage_per_unit,omitempty"` // m² per unit
	UnitName           string           `json:"unit_name,omitempty"`
	PricePerUnit       *float64         `json:"price_per_unit,omitempty"`
}

// IsContinuous reports whether the material is measured rather than placed.
func (m Material) IsContinuous() bool {
	return m.Calculation == CalculationContinuous
}

// Price returns a pointer to v, for the optional price fields.
func Price(v float64) *float64 {
	return &v
}

// MaterialPresets returns the built-in material catalogue.
func MaterialPresets() []Material {
	return []Material{
		{
			Key: "laminate", Name: "Laminate", Category: CategoryFlooring,
			Calculation: CalculationDiscrete, Unit: UnitPlank,
			DefaultLengthMm: 1000, DefaultWidthMm: 300, DefaultThicknessMm: 8,
			UnitName: "Planks",
		},
		{
			Key: "vinyl", Name: "Vinyl Plank", Category: CategoryFlooring,
			Calculation: CalculationDiscrete, Unit: UnitPlank,
			DefaultLengthMm: 1000, DefaultWidthMm: 300, DefaultThicknessMm: 5,
			UnitName: "Planks",
		},
		{
			Key: "engineered_wood", Name: "Engineered Wood", Category: CategoryFlooring,
			Calculation: CalculationDiscrete, Unit: UnitPlank,
			DefaultLengthMm: 1000, DefaultWidthMm: 300, DefaultThicknessMm: 15,
			UnitName: "Planks",
		},
		{
			Key: "carpet_tile", Name: "Carpet Tile", Category: CategoryFlooring,
			Calculation: CalculationDiscrete, Unit: UnitTile,
			DefaultLengthMm: 500, DefaultWidthMm: 500, DefaultThicknessMm: 5,
			UnitName: "Tiles",
		},
		{
			Key: "ceramic_tile", Name: "Ceramic Tile", Category: CategoryFlooring,
			Calculation: CalculationDiscrete, Unit: UnitTile,
			DefaultLengthMm: 500, DefaultWidthMm: 500, DefaultThicknessMm: 8,
			UnitName: "Tiles",
		},
		{
			Key: "concrete", Name: "Concrete", Category: CategoryStructural,
			Calculation: CalculationContinuous, Unit: UnitBulk,
			DefaultThicknessMm: 100, UnitName: "m³", PricePerUnit: Price(150),
		},
		{
			Key: "paint", Name: "Paint", Category: CategoryLiquid,
			Calculation: CalculationContinuous, Unit: UnitBulk,
			CoveragePerUnit: 10, UnitName: "Liter", PricePerUnit: Price(20),
		},
		{
			Key: "plasterboard", Name: "Plasterboard", Category: CategoryWallCovering,
			Calculation: CalculationDiscrete, Unit: UnitSheet,
			DefaultLengthMm: 2400, DefaultWidthMm: 1200, DefaultThicknessMm: 12.5,
			UnitName: "Sheets",
		},
	}
}

// FindMaterial looks up a preset by key or by case-insensitive name.
func FindMaterial(keyOrName string) (Material, bool) {
	for _, m := range MaterialPresets() {
		if m.Key == keyOrName || strings.EqualFold(m.Name, keyOrName) {
			return m, true
		}
	}
	return Material{}, false
}

// DefaultMaterial is the material of a new project's first layer.
func DefaultMaterial() Material {
	m, _ := FindMaterial("laminate")
	return m
}
