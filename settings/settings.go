package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	AppName = "colliders_demo"

	settingsObject   = "settings"
	settingsProperty = "demo"
)

// Settings are the demo toggles kept between runs.
type Settings struct {
	Debug  bool   `yaml:"debug"`
	Mode   string `yaml:"mode"`
	Paused bool   `yaml:"paused"`
	Muted  bool   `yaml:"muted"`
	Scene  string `yaml:"scene"`
}

func Default() Settings {
	return Settings{Mode: "detailed", Scene: "demo"}
}

// Manager loads and saves Settings through gdata. A Manager without storage
// keeps settings in memory only.
type Manager struct {
	store    *gdata.Manager
	settings Settings
}

// Open creates a manager backed by the per-user data directory of appName.
// When storage is unavailable the manager still works in memory.
func Open(appName string) *Manager {
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("Settings: storage unavailable, using memory only: %v", err)
		store = nil
	}
	m := NewManager(store)
	if err := m.Load(); err != nil {
		log.Printf("Settings: %v (using defaults)", err)
	}
	return m
}

func NewManager(store *gdata.Manager) *Manager {
	return &Manager{store: store, settings: Default()}
}

func (m *Manager) Persistent() bool {
	return m != nil && m.store != nil
}

// Load replaces the current settings with the stored ones. Missing storage or
// a missing entry resets to defaults without error.
func (m *Manager) Load() error {
	if m == nil {
		return nil
	}
	m.settings = Default()
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("settings: load: %w", err)
	}
	loaded := Default()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("settings: unmarshal: %w", err)
	}
	m.settings = loaded
	return nil
}

func (m *Manager) Save() error {
	if m == nil || m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

func (m *Manager) Get() Settings {
	if m == nil {
		return Default()
	}
	return m.settings
}

// Update applies fn to the current settings and saves them.
func (m *Manager) Update(fn func(*Settings)) error {
	if m == nil || fn == nil {
		return nil
	}
	fn(&m.settings)
	return m.Save()
}
