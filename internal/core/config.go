// Package core contains the engine logic for perinote: period calendar
// arithmetic, list tree resolution, task marker transitions, the task
// transfer engine, and collector/project linking.
package core

import (
	"fmt"
	"strings"

	"github.com/perinote/perinote/pkg/models"
	"github.com/spf13/viper"
)

// SettingsManager loads and validates engine settings. Settings travel by
// value into every engine call; the manager is the only component that
// touches the config file.
type SettingsManager interface {
	Load() (*models.Settings, error)
	Validate(settings *models.Settings) error
}

// viperSettingsManager implements SettingsManager by reading .perinote.yaml
// from the vault root via Viper.
type viperSettingsManager struct {
	vaultPath string
}

// NewSettingsManager creates a SettingsManager reading configuration from
// the given vault root directory.
func NewSettingsManager(vaultPath string) SettingsManager {
	return &viperSettingsManager{vaultPath: vaultPath}
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *models.Settings {
	return &models.Settings{
		DiaryRoot:           "journal",
		ProjectsRoot:        "projects",
		ArchiveRoot:         "archive",
		PeriodicTaskHeading: "## Log",
		ProjectTaskHeading:  "## Tasks",
		LogHeading:          "## Done",
		DailyPathTemplate:   DefaultDailyPathTemplate,
		WeeklyPathTemplate:  DefaultWeeklyPathTemplate,
		MonthlyPathTemplate: DefaultMonthlyPathTemplate,
		YearlyPathTemplate:  DefaultYearlyPathTemplate,
		CollectorKeywords:   `"Push", "Collect"`,
		PullUp:              models.AnchorSource,
	}
}

// Load reads .perinote.yaml from the vault root. A missing file yields the
// defaults; a malformed file is an error.
func (m *viperSettingsManager) Load() (*models.Settings, error) {
	cfg := DefaultSettings()

	v := viper.New()
	v.SetConfigName(".perinote")
	v.SetConfigType("yaml")
	v.AddConfigPath(m.vaultPath)

	v.SetDefault("diary_root", cfg.DiaryRoot)
	v.SetDefault("projects_root", cfg.ProjectsRoot)
	v.SetDefault("archive_root", cfg.ArchiveRoot)
	v.SetDefault("periodic_task_heading", cfg.PeriodicTaskHeading)
	v.SetDefault("project_task_heading", cfg.ProjectTaskHeading)
	v.SetDefault("log_heading", cfg.LogHeading)
	v.SetDefault("daily_path_template", cfg.DailyPathTemplate)
	v.SetDefault("weekly_path_template", cfg.WeeklyPathTemplate)
	v.SetDefault("monthly_path_template", cfg.MonthlyPathTemplate)
	v.SetDefault("yearly_path_template", cfg.YearlyPathTemplate)
	v.SetDefault("collector_keywords", cfg.CollectorKeywords)
	v.SetDefault("pull_up_anchor", string(cfg.PullUp))
	v.SetDefault("webhook_url", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .perinote.yaml: %w", err)
	}

	out := &models.Settings{}
	if err := v.Unmarshal(out); err != nil {
		return nil, fmt.Errorf("parsing .perinote.yaml: %w", err)
	}
	return out, nil
}

// Validate checks settings for invalid values with a clear message per
// problem. Heading strings are not rejected here: an unparseable heading
// falls back to "## Log" at use sites.
func (m *viperSettingsManager) Validate(settings *models.Settings) error {
	if settings == nil {
		return fmt.Errorf("settings are nil")
	}

	var errs []string

	if settings.DiaryRoot == "" {
		errs = append(errs, "diary_root must not be empty")
	}
	if settings.ProjectsRoot == "" {
		errs = append(errs, "projects_root must not be empty")
	}
	switch settings.PullUp {
	case models.AnchorSource, models.AnchorToday:
	default:
		errs = append(errs, fmt.Sprintf(
			"pull_up_anchor %q is invalid, must be one of: source, today", settings.PullUp))
	}
	for _, tmpl := range []struct{ key, value string }{
		{"daily_path_template", settings.DailyPathTemplate},
		{"weekly_path_template", settings.WeeklyPathTemplate},
		{"monthly_path_template", settings.MonthlyPathTemplate},
		{"yearly_path_template", settings.YearlyPathTemplate},
	} {
		if tmpl.value != "" && !strings.Contains(tmpl.value, "{basename}") {
			errs = append(errs, fmt.Sprintf("%s must contain the {basename} placeholder", tmpl.key))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("settings validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
