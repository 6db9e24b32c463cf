package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/floorplan/internal/model"
)

// DefaultTemplatePath returns ~/.floorplan/templates.json.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the user's templates to path. Built-in templates
// are never written.
func SaveTemplates(path string, store model.TemplateStore) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create template directory: %w", err)
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal templates: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTemplates reads the user's templates. A missing file is an empty
// store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.NewTemplateStore(), nil
	}
	if err != nil {
		return model.TemplateStore{}, fmt.Errorf("failed to read templates: %w", err)
	}
	var store model.TemplateStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.TemplateStore{}, fmt.Errorf("failed to parse templates: %w", err)
	}
	if store.Templates == nil {
		store.Templates = []model.ProjectTemplate{}
	}
	return store, nil
}

// AllTemplates returns the built-in templates followed by the user's.
func AllTemplates(user model.TemplateStore) []model.ProjectTemplate {
	all := model.BuiltinTemplates()
	return append(all, user.Templates...)
}

// FindTemplate looks up a template by ID or case-insensitive name among the
// built-in and user templates.
func FindTemplate(user model.TemplateStore, idOrName string) (model.ProjectTemplate, bool) {
	for _, t := range AllTemplates(user) {
		if t.ID == idOrName || strings.EqualFold(t.Name, idOrName) {
			return t, true
		}
	}
	return model.ProjectTemplate{}, false
}
