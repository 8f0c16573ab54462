// Package project persists plans, application preferences and backups as
// JSON files.
package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/piwi3910/CeilPlan/internal/importer"
	"github.com/piwi3910/CeilPlan/internal/model"
)

// Extension is the file extension of saved projects.
const Extension = ".ceilplan"

// FormatVersion is written into every project file.
const FormatVersion = "1.0.0"

// Project is a saved plan together with the settings it is drawn with.
type Project struct {
	Version  string               `json:"version"`
	SavedAt  string               `json:"saved_at,omitempty"`
	Plan     model.Plan           `json:"plan"`
	Settings model.RenderSettings `json:"settings"`
}

// New wraps a plan into a project with the given settings.
func New(plan model.Plan, settings model.RenderSettings) Project {
	return Project{Version: FormatVersion, Plan: plan, Settings: settings.Validate()}
}

// WithExtension appends the project extension when path has none.
func WithExtension(path string) string {
	if filepath.Ext(path) == "" {
		return path + Extension
	}
	return path
}

// writeJSON stores v as indented JSON at path, creating parent directories.
// what names the document in error messages.
func writeJSON(path, what string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", what, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", what, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", what, err)
	}
	return nil
}

// SaveProject writes p to path as indented JSON, creating parent directories.
func SaveProject(path string, p Project) error {
	p.Version = FormatVersion
	p.SavedAt = time.Now().UTC().Format(time.RFC3339)
	if p.Plan.Panels == nil {
		p.Plan.Panels = map[string][]model.Panel{}
	}
	return writeJSON(path, "project", p)
}

// LoadProject reads a project file. A bare plan snapshot without the
// project envelope is accepted too and opened with settings.
func LoadProject(path string, settings model.RenderSettings) (Project, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, nil, fmt.Errorf("failed to read project file: %w", err)
	}
	return ParseProject(data, settings)
}

// ParseProject decodes project data. The plan part always goes through the
// importer so older files with legacy field names still open.
func ParseProject(data []byte, settings model.RenderSettings) (Project, []string, error) {
	var envelope struct {
		Version  string          `json:"version"`
		SavedAt  string          `json:"saved_at"`
		Plan     json.RawMessage `json:"plan"`
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Project{}, nil, fmt.Errorf("failed to parse project file: %w", err)
	}

	p := Project{Version: envelope.Version, SavedAt: envelope.SavedAt, Settings: settings}
	planData := data
	if len(bytes.TrimSpace(envelope.Plan)) > 0 {
		planData = envelope.Plan
	} else {
		p.Version = ""
	}

	plan, warnings, err := importer.ParsePlan(planData)
	if err != nil {
		return Project{}, nil, err
	}
	p.Plan = plan

	if raw := strings.TrimSpace(string(envelope.Settings)); raw != "" && raw != "null" {
		if err := json.Unmarshal(envelope.Settings, &p.Settings); err != nil {
			return Project{}, nil, fmt.Errorf("failed to parse project settings: %w", err)
		}
	}
	p.Settings = p.Settings.Validate()
	if p.Version == "" {
		warnings = append(warnings, "opened a plan snapshot without project settings")
	}
	return p, warnings, nil
}

// DefaultConfigDir is ~/.ceilplan, or ./.ceilplan when the home directory
// cannot be resolved.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".ceilplan")
}

// DefaultConfigPath is config.json inside DefaultConfigDir.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig writes the preferences file.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, "config", normalizeConfig(config))
}

// LoadAppConfig reads the preferences file on top of DefaultAppConfig, so
// keys missing from an older file keep their defaults. A missing file is
// not an error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return normalizeConfig(config), nil
}

func normalizeConfig(c model.AppConfig) model.AppConfig {
	c.DefaultRender = c.DefaultRender.Validate()
	if c.RecentProjects == nil {
		c.RecentProjects = []string{}
	}
	return c
}
