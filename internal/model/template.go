package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate represents a reusable project configuration that captures
// the room, layers and stock but not layout results.
type ProjectTemplate struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	CreatedAt          string      `json:"created_at"`
	UpdatedAt          string      `json:"updated_at"`
	Room               Room        `json:"room"`
	Layers             []Layer     `json:"layers"`
	Stock              []StockItem `json:"stock"`
	UseStock           bool        `json:"use_stock"`
	WasteFactorPercent float64     `json:"waste_factor_percent"`
}

// NewProjectTemplate creates a new template from the given project.
// Results are intentionally excluded.
func NewProjectTemplate(name, description string, p Project) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:                 uuid.New().String()[:8],
		Name:               name,
		Description:        description,
		CreatedAt:          now,
		UpdatedAt:          now,
		Room:               copyRoom(p.Room),
		Layers:             copyLayers(p.Layers),
		Stock:              copyStock(p.Stock),
		UseStock:           p.UseStock,
		WasteFactorPercent: p.WasteFactorPercent,
	}
}

// ToProject creates a new Project from this template.
// Stock items get fresh IDs so they are independent of the template.
func (t ProjectTemplate) ToProject(projectName string) Project {
	p := NewProject()
	p.Name = projectName
	p.Room = copyRoom(t.Room)
	p.Layers = copyLayers(t.Layers)
	p.UseStock = t.UseStock
	p.WasteFactorPercent = t.WasteFactorPercent

	p.Stock = make([]StockItem, len(t.Stock))
	for i, s := range t.Stock {
		item := NewStockItem(s.LengthMm, s.WidthMm, s.Quantity)
		item.Label = s.Label
		item.PricePerUnit = s.PricePerUnit
		p.Stock[i] = item
	}
	return p
}

// BuiltinTemplates returns the starter projects offered by "new".
func BuiltinTemplates() []ProjectTemplate {
	living := NewProject()
	living.Room = NewRectangularRoom(5000, 4000, 10)
	living.Stock = []StockItem{
		NewStockItem(1000, 300, 40).WithPrice(8.5),
		NewStockItem(1200, 300, 10).WithPrice(9.5),
	}

	bath := NewProject()
	bath.Room = NewPolygonRoom(Outline{
		{X: 0, Y: 0}, {X: 3000, Y: 0}, {X: 3000, Y: 1500},
		{X: 1800, Y: 1500}, {X: 1800, Y: 2500}, {X: 0, Y: 2500},
	}, 5)
	tile, _ := FindMaterial("ceramic_tile")
	bathLayer := NewLayer(tile)
	bathLayer.Tile.TileSizeMm = 300
	perBox := 11
	bathLayer.Tile.TilesPerBox = &perBox
	bathLayer.Tile.DefaultPricePerTile = Price(2.10)
	bath.Layers = []Layer{bathLayer}
	bath.Stock = []StockItem{NewStockItem(300, 300, 20).WithPrice(2.10)}
	bath.WasteFactorPercent = 10

	screed, _ := FindMaterial("concrete")
	slab := NewProject()
	slab.Room = NewRectangularRoom(6000, 4000, 0)
	slab.Layers = []Layer{NewLayer(screed)}
	slab.UseStock = false

	return []ProjectTemplate{
		NewProjectTemplate("Laminate living room", "5 x 4 m room, laminate along the length, some planks in stock", living),
		NewProjectTemplate("Tiled bathroom", "L-shaped bathroom with 300 mm ceramic tiles", bath),
		NewProjectTemplate("Concrete slab", "6 x 4 m slab, 100 mm concrete", slab),
	}
}

// TemplateStore holds a collection of project templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ProjectTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t ProjectTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

func copyRoom(r Room) Room {
	if r.Points != nil {
		pts := make(Outline, len(r.Points))
		copy(pts, r.Points)
		r.Points = pts
	}
	return r
}

// copyLayers deep-copies layers including their settings pointers.
func copyLayers(layers []Layer) []Layer {
	if layers == nil {
		return []Layer{}
	}
	cp := make([]Layer, len(layers))
	for i, l := range layers {
		if l.Plank != nil {
			ps := *l.Plank
			l.Plank = &ps
		}
		if l.Tile != nil {
			ts := *l.Tile
			l.Tile = &ts
		}
		if l.Continuous != nil {
			cs := *l.Continuous
			l.Continuous = &cs
		}
		cp[i] = l
	}
	return cp
}

func copyStock(stock []StockItem) []StockItem {
	if stock == nil {
		return []StockItem{}
	}
	cp := make([]StockItem, len(stock))
	copy(cp, stock)
	return cp
}
