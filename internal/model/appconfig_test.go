package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	plank := DefaultPlankSettings()

	if cfg.DefaultMinStaggerMm != plank.MinStaggerMm {
		t.Errorf("MinStagger mismatch: config=%f settings=%f", cfg.DefaultMinStaggerMm, plank.MinStaggerMm)
	}
	if cfg.DefaultMinOffcutMm != plank.MinOffcutLengthMm {
		t.Errorf("MinOffcut mismatch: config=%f settings=%f", cfg.DefaultMinOffcutMm, plank.MinOffcutLengthMm)
	}
	if cfg.DefaultTileSizeMm != DefaultTileSizeMm {
		t.Errorf("TileSize mismatch: config=%f default=%f", cfg.DefaultTileSizeMm, DefaultTileSizeMm)
	}
	if cfg.DefaultWasteFactor != 7 {
		t.Errorf("expected default waste factor 7, got %f", cfg.DefaultWasteFactor)
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("expected default listen :8080, got %s", cfg.Server.Listen)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestApplyToProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultExpansionGapMm = 15
	cfg.DefaultMinStaggerMm = 300
	cfg.DefaultPlankWidthMm = 190
	cfg.DefaultWasteFactor = 12

	p := NewProject()
	cfg.ApplyToProject(&p)

	if p.Room.ExpansionGapMm != 15 {
		t.Errorf("expected gap=15, got %f", p.Room.ExpansionGapMm)
	}
	if p.WasteFactorPercent != 12 {
		t.Errorf("expected waste=12, got %f", p.WasteFactorPercent)
	}
	if p.Layers[0].Plank == nil {
		t.Fatal("expected plank settings on laminate layer")
	}
	if p.Layers[0].Plank.MinStaggerMm != 300 {
		t.Errorf("expected stagger=300, got %f", p.Layers[0].Plank.MinStaggerMm)
	}
	if p.Layers[0].Plank.DefaultWidthMm != 190 {
		t.Errorf("expected plank width=190, got %f", p.Layers[0].Plank.DefaultWidthMm)
	}
}

func TestApplyToProjectSwitchesDefaultMaterial(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultMaterial = "ceramic_tile"
	cfg.DefaultTileSizeMm = 600

	p := NewProject()
	cfg.ApplyToProject(&p)

	if p.Layers[0].Material.Key != "ceramic_tile" {
		t.Fatalf("expected ceramic_tile layer, got %s", p.Layers[0].Material.Key)
	}
	if p.Layers[0].Tile == nil || p.Layers[0].Tile.TileSizeMm != 600 {
		t.Errorf("expected tile size 600, got %+v", p.Layers[0].Tile)
	}
}
