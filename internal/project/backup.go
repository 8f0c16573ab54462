package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/CeilPlan/internal/model"
)

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Projects  []Project       `json:"projects,omitempty"`
}

// ExportAllData exports the configuration and the given projects to a
// single JSON file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, projects ...Project) error {
	for i := range projects {
		projects[i].Version = FormatVersion
	}
	backup := BackupData{
		Version:   FormatVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Projects:  projects,
	}
	return writeJSON(exportPath, "backup", backup)
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	backup.Config = normalizeConfig(backup.Config)
	for i := range backup.Projects {
		p := &backup.Projects[i]
		p.Settings = p.Settings.Validate()
		if p.Plan.Panels == nil {
			p.Plan.Panels = map[string][]model.Panel{}
		}
	}
	return backup, nil
}
