// Package config loads the optional JSON config file. Flags always win;
// the file only supplies defaults and extra probe endpoints.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/captivate-cli/captivate/internal/detect"
)

// Endpoint is a user-supplied probe endpoint.
type Endpoint struct {
	Name           string `json:"name"`
	URL            string `json:"url"`
	ExpectedStatus int    `json:"expected_status,omitempty"`
	BodyMarker     string `json:"body_marker,omitempty"`
}

// File is the on-disk configuration shape.
type File struct {
	TimeoutSeconds int        `json:"timeout_seconds,omitempty"`
	NoOpen         bool       `json:"no_open,omitempty"`
	Notify         bool       `json:"notify,omitempty"`
	Gateway        bool       `json:"gateway,omitempty"`
	Endpoints      []Endpoint `json:"endpoints,omitempty"`
}

// DefaultPath returns the per-user config location, or "" when the user
// config dir cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "captivate", "config.json")
}

// Load reads and parses a config file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config parse failed: %w", err)
	}
	return &f, nil
}

// Save writes the config file, creating the directory if needed.
func Save(path string, f *File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0600)
}

// ExtraEndpoints converts user endpoints into registry entries, skipping
// entries without a URL.
func (f *File) ExtraEndpoints() []detect.Endpoint {
	var eps []detect.Endpoint
	for _, e := range f.Endpoints {
		if e.URL == "" {
			continue
		}
		name := e.Name
		if name == "" {
			name = e.URL
		}
		eps = append(eps, detect.Endpoint{
			Name:           name,
			URL:            e.URL,
			ExpectedStatus: e.ExpectedStatus,
			BodyMarker:     e.BodyMarker,
		})
	}
	return eps
}
