package atlas

import (
	"fmt"
	"sort"

	"chosenoffset.com/tuxtown/internal/render"
)

// Manager holds every loaded atlas, keyed by name and grouped by layer.
type Manager struct {
	atlasesByLayer map[string][]*Atlas
	atlasesByName  map[string]*Atlas
}

// NewManager creates a new atlas manager
func NewManager() *Manager {
	return &Manager{
		atlasesByLayer: make(map[string][]*Atlas),
		atlasesByName:  make(map[string]*Atlas),
	}
}

// LoadAll loads the image of every config through loader and registers it.
func (m *Manager) LoadAll(configs []AtlasConfig, loader render.ResourceLoader) error {
	for i := range configs {
		config := &configs[i]
		if err := config.Validate(); err != nil {
			return err
		}
		a, err := Load(config, loader)
		if err != nil {
			return err
		}
		if err := m.RegisterAtlas(a); err != nil {
			return err
		}
	}
	return nil
}

// RegisterAtlas registers a loaded atlas with the manager
func (m *Manager) RegisterAtlas(atlas *Atlas) error {
	if atlas.Config.Name == "" {
		return fmt.Errorf("atlas name cannot be empty")
	}

	if _, exists := m.atlasesByName[atlas.Config.Name]; exists {
		return fmt.Errorf("atlas %s already registered", atlas.Config.Name)
	}

	m.atlasesByName[atlas.Config.Name] = atlas
	m.atlasesByLayer[atlas.Config.Layer] = append(m.atlasesByLayer[atlas.Config.Layer], atlas)

	return nil
}

// GetAtlasByName returns an atlas by its name
func (m *Manager) GetAtlasByName(name string) (*Atlas, bool) {
	atlas, ok := m.atlasesByName[name]
	return atlas, ok
}

// GetAtlasesByLayer returns the atlases of a layer in registration order
func (m *Manager) GetAtlasesByLayer(layer string) []*Atlas {
	return m.atlasesByLayer[layer]
}

// Frame returns frame i of the named sheet.
func (m *Manager) Frame(sheet string, i int) (render.Image, error) {
	a, ok := m.GetAtlasByName(sheet)
	if !ok {
		return nil, fmt.Errorf("no atlas named %s", sheet)
	}
	return a.Frame(i)
}

// Names returns all registered atlas names, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.atlasesByName))
	for name := range m.atlasesByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
