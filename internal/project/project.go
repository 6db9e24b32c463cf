// Package project reads and writes floorplan files: projects, the app
// config, the stock inventory, templates and backups.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/piwi3910/floorplan/internal/model"
)

// ProjectExt is the file extension of saved projects.
const ProjectExt = ".floorplan.json"

// ErrUnsupportedSchema is returned for project files written by a newer
// version.
var ErrUnsupportedSchema = errors.New("unsupported project schema version")

// LegacyProject is the version 1 file layout: one material type with its
// settings at the top level.
type LegacyProject struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	CreatedAt          string               `json:"created_at"`
	UpdatedAt          string               `json:"updated_at"`
	Room               model.Room           `json:"room"`
	MaterialType       string               `json:"material_type"`
	LaminateSettings   *model.PlankSettings `json:"laminate_settings,omitempty"`
	TileSettings       *model.TileSettings  `json:"tile_settings,omitempty"`
	Stock              []model.StockItem    `json:"stock"`
	UseStock           bool                 `json:"use_stock"`
	WasteFactorPercent float64              `json:"waste_factor_percent"`
}

// DefaultProjectDir returns the directory new projects are saved to.
func DefaultProjectDir() string {
	return filepath.Join(DefaultConfigDir(), "projects")
}

// SaveProject writes p to path at the current schema version.
func SaveProject(path string, p model.Project) error {
	p.SchemaVersion = model.SchemaVersion
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if p.Stock == nil {
		p.Stock = []model.StockItem{}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	return nil
}

// LoadProject reads a project file of any supported schema version and
// returns it at the current version.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}
	return DecodeProject(data)
}

// DecodeProject decodes project JSON, migrating older layouts.
func DecodeProject(data []byte) (model.Project, error) {
	var header struct {
		SchemaVersion int `json:"schema_version"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}

	switch {
	case header.SchemaVersion <= 1:
		var legacy LegacyProject
		if err := json.Unmarshal(data, &legacy); err != nil {
			return model.Project{}, fmt.Errorf("failed to parse v1 project: %w", err)
		}
		return MigrateV1(legacy), nil
	case header.SchemaVersion == model.SchemaVersion:
		var p model.Project
		if err := json.Unmarshal(data, &p); err != nil {
			return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
		}
		if p.Stock == nil {
			p.Stock = []model.StockItem{}
		}
		if p.Layers == nil {
			p.Layers = []model.Layer{}
		}
		return p, nil
	default:
		return model.Project{}, fmt.Errorf("%w: %d", ErrUnsupportedSchema, header.SchemaVersion)
	}
}

// MigrateV1 converts a version 1 project into the layered layout. The
// material type picks the layer material; the matching settings carry over.
func MigrateV1(old LegacyProject) model.Project {
	key := "laminate"
	if strings.EqualFold(old.MaterialType, "tile") {
		key = "ceramic_tile"
	}
	m, _ := model.FindMaterial(key)
	layer := model.NewLayer(m)
	if layer.Plank != nil && old.LaminateSettings != nil {
		s := *old.LaminateSettings
		layer.Plank = &s
	}
	if layer.Tile != nil && old.TileSettings != nil {
		s := *old.TileSettings
		layer.Tile = &s
	}

	stock := old.Stock
	if stock == nil {
		stock = []model.StockItem{}
	}
	room := old.Room
	if room.Shape == "" {
		room.Shape = model.ShapeRectangular
	}
	if room.Pattern == "" {
		room.Pattern = model.PatternStraight
	}
	return model.Project{
		SchemaVersion:      model.SchemaVersion,
		ID:                 old.ID,
		Name:               old.Name,
		CreatedAt:          old.CreatedAt,
		UpdatedAt:          old.UpdatedAt,
		Room:               room,
		Layers:             []model.Layer{layer},
		Stock:              stock,
		UseStock:           old.UseStock,
		WasteFactorPercent: old.WasteFactorPercent,
	}
}

// ProjectInfo describes a saved project file.
type ProjectInfo struct {
	Path     string
	Name     string
	Modified time.Time
}

// ListProjects returns the project files in dir, most recently modified
// first. A missing directory yields an empty list.
func ListProjects(dir string) ([]ProjectInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ProjectInfo{}, nil
		}
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	infos := []ProjectInfo{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ProjectExt) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, ProjectInfo{
			Path:     filepath.Join(dir, e.Name()),
			Name:     strings.TrimSuffix(e.Name(), ProjectExt),
			Modified: fi.ModTime(),
		})
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].Modified.After(infos[j].Modified)
	})
	return infos, nil
}

// DeleteProject removes a saved project file.
func DeleteProject(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
