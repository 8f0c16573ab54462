package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default render settings applied to new plans
	DefaultRender RenderSettings `json:"default_render"`

	// Export defaults
	DefaultPaperSize string `json:"default_paper_size"` // "A3", "A4"
	DefaultExportDir string `json:"default_export_dir"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
	LogLevel       string   `json:"log_level"`
}

// maxRecentProjects bounds the recent-projects menu.
const maxRecentProjects = 10

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultRender:    DefaultRenderSettings(),
		DefaultPaperSize: "A3",
		RecentProjects:   []string{},
		Theme:            "system",
		LogLevel:         "info",
	}
}

// ApplyToSettings copies the configured defaults into s.
// This is used when opening a plan without its own settings block.
func (c AppConfig) ApplyToSettings(s *RenderSettings) {
	*s = c.DefaultRender.Validate()
}

// AddRecent moves path to the front of the recent-projects list.
func (c *AppConfig) AddRecent(path string) {
	list := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			list = append(list, p)
		}
	}
	if len(list) > maxRecentProjects {
		list = list[:maxRecentProjects]
	}
	c.RecentProjects = list
}
