package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultExpansionGapMm float64      `toml:"default_expansion_gap_mm" json:"default_expansion_gap_mm"`
	DefaultMinStaggerMm   float64      `toml:"default_min_stagger_mm" json:"default_min_stagger_mm"`
	DefaultMinOffcutMm    float64      `toml:"default_min_offcut_mm" json:"default_min_offcut_mm"`
	DefaultPlankLengthMm  float64      `toml:"default_plank_length_mm" json:"default_plank_length_mm"`
	DefaultPlankWidthMm   float64      `toml:"default_plank_width_mm" json:"default_plank_width_mm"`
	DefaultTileSizeMm     float64      `toml:"default_tile_size_mm" json:"default_tile_size_mm"`
	DefaultWasteFactor    float64      `toml:"default_waste_factor" json:"default_waste_factor"`
	DefaultMaterial       string       `toml:"default_material" json:"default_material"`
	Currency              string       `toml:"currency" json:"currency"`
	LogLevel              string       `toml:"log_level" json:"log_level"`
	Server                ServerConfig `toml:"server" json:"server"`
	RecentProjects        []string     `toml:"recent_projects" json:"recent_projects"`
}

// ServerConfig configures the HTTP API and its result cache.
type ServerConfig struct {
	Listen          string `toml:"listen" json:"listen"`
	RedisURL        string `toml:"redis_url" json:"redis_url"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds" json:"cache_ttl_seconds"`
	MaxBodyBytes    int64  `toml:"max_body_bytes" json:"max_body_bytes"`
}

// DefaultAppConfig returns an AppConfig populated with the same values new
// projects get without a config file.
func DefaultAppConfig() AppConfig {
	plank := DefaultPlankSettings()
	return AppConfig{
		DefaultExpansionGapMm: DefaultExpansionGapMm,
		DefaultMinStaggerMm:   plank.MinStaggerMm,
		DefaultMinOffcutMm:    plank.MinOffcutLengthMm,
		DefaultPlankLengthMm:  plank.DefaultLengthMm,
		DefaultPlankWidthMm:   plank.DefaultWidthMm,
		DefaultTileSizeMm:     DefaultTileSizeMm,
		DefaultWasteFactor:    DefaultWasteFactorPercent,
		DefaultMaterial:       "laminate",
		Currency:              "EUR",
		LogLevel:              "info",
		Server: ServerConfig{
			Listen:          ":8080",
			CacheTTLSeconds: 600,
			MaxBodyBytes:    1 << 20,
		},
		RecentProjects: []string{},
	}
}

// ApplyToProject copies the configured defaults into a new project so it
// inherits the user's saved preferences.
func (c AppConfig) ApplyToProject(p *Project) {
	p.Room.ExpansionGapMm = c.DefaultExpansionGapMm
	p.WasteFactorPercent = c.DefaultWasteFactor
	if m, ok := FindMaterial(c.DefaultMaterial); ok {
		p.Layers = []Layer{NewLayer(m)}
	}
	for i := range p.Layers {
		l := &p.Layers[i]
		if l.Plank != nil {
			l.Plank.MinStaggerMm = c.DefaultMinStaggerMm
			l.Plank.MinOffcutLengthMm = c.DefaultMinOffcutMm
			l.Plank.DefaultLengthMm = c.DefaultPlankLengthMm
			l.Plank.DefaultWidthMm = c.DefaultPlankWidthMm
		}
		if l.Tile != nil && l.Material.Unit == UnitTile {
			l.Tile.TileSizeMm = c.DefaultTileSizeMm
		}
	}
}
