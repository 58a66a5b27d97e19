package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	// Namespace is the plugin's key inside the host settings document.
	Namespace = "qra"

	hostSettingsKey = "extension_settings"
	appDirName      = "qra"
)

// LoadHostFile reads the host settings document and returns the raw plugin
// settings stored under extension_settings.<namespace>. A missing document
// or missing entry yields an empty map.
func LoadHostFile(path, namespace string) (map[string]any, error) {
	doc, err := readHostDocument(path)
	if err != nil {
		return nil, err
	}

	raw, ok := getByPath(doc, hostSettingsKey, namespace)
	if !ok {
		return map[string]any{}, nil
	}
	settings, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parsing host settings: %s.%s is not a mapping", hostSettingsKey, namespace)
	}
	return settings, nil
}

// SaveHostFile writes cfg under extension_settings.<namespace>, keeping
// every other key of the host document.
func SaveHostFile(path, namespace string, cfg Configuration) error {
	doc, err := readHostDocument(path)
	if err != nil {
		return err
	}
	setByPath(doc, cfg.Map(), hostSettingsKey, namespace)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling host settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating host settings directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing host settings: %w", err)
	}

	return nil
}

func readHostDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("reading host settings: %w", err)
	}

	doc := map[string]any{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing host settings: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// DataDir returns the writable data directory: $QRA_DATA_DIR, then
// $XDG_DATA_HOME/qra, then the platform default.
func DataDir() string {
	if custom := os.Getenv("QRA_DATA_DIR"); custom != "" {
		return custom
	}

	switch runtime.GOOS {
	case "windows":
		if base := os.Getenv("APPDATA"); base != "" {
			return filepath.Join(base, appDirName)
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", appDirName)
		}
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName)
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share", appDirName)
		}
	}

	return filepath.Join(".", appDirName)
}

// GetConfigPath returns the host settings document path: $QRA_CONFIG or
// settings.yaml inside dataDir.
func GetConfigPath(dataDir string) string {
	if path := os.Getenv("QRA_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(dataDir, "settings.yaml")
}

// HostDocument is the host-owned in-memory settings object backed by the
// host settings file. The host loads it once; Save writes whatever it
// currently holds.
type HostDocument struct {
	path      string
	namespace string

	mu      sync.Mutex
	current *Configuration
}

// NewHostDocument creates a document for path and namespace.
func NewHostDocument(path, namespace string) *HostDocument {
	return &HostDocument{path: path, namespace: namespace}
}

// Path returns the backing file path.
func (d *HostDocument) Path() string {
	return d.path
}

// Load reads the raw plugin settings from the file and keeps them as the
// in-memory object.
func (d *HostDocument) Load() (map[string]any, error) {
	raw, err := LoadHostFile(d.path, d.namespace)
	if err != nil {
		return nil, err
	}
	cfg := Normalize(raw)

	d.mu.Lock()
	d.current = &cfg
	d.mu.Unlock()

	return raw, nil
}

// Update replaces the in-memory object.
func (d *HostDocument) Update(cfg Configuration) {
	cfg = cfg.Clone()

	d.mu.Lock()
	d.current = &cfg
	d.mu.Unlock()
}

// Save writes the in-memory object to the host settings file. It is a
// no-op until the document has been loaded or updated.
func (d *HostDocument) Save() error {
	d.mu.Lock()
	current := d.current
	d.mu.Unlock()

	if current == nil {
		return nil
	}
	return SaveHostFile(d.path, d.namespace, *current)
}
