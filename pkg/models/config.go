package models

// PullUpAnchor selects which date anchors an upward pull: the source note's
// own period or today. Observed journaling workflows disagree on this, so it
// is an explicit setting rather than a hardcoded choice.
type PullUpAnchor string

const (
	AnchorSource PullUpAnchor = "source"
	AnchorToday  PullUpAnchor = "today"
)

// Settings holds all engine configuration read from .perinote.yaml via Viper.
// The engine receives Settings by value on every call; nothing in the engine
// reads global state.
type Settings struct {
	DiaryRoot    string `yaml:"diary_root" mapstructure:"diary_root"`
	ProjectsRoot string `yaml:"projects_root" mapstructure:"projects_root"`
	ArchiveRoot  string `yaml:"archive_root" mapstructure:"archive_root"`

	// Heading strings in "#+ <text>" form. A string that fails to parse
	// falls back to "## Log".
	PeriodicTaskHeading string `yaml:"periodic_task_heading" mapstructure:"periodic_task_heading"`
	ProjectTaskHeading  string `yaml:"project_task_heading" mapstructure:"project_task_heading"`
	LogHeading          string `yaml:"log_heading" mapstructure:"log_heading"`

	// Per-kind path templates with {year}, {month} and {basename}
	// placeholders, rendered relative to DiaryRoot.
	DailyPathTemplate   string `yaml:"daily_path_template" mapstructure:"daily_path_template"`
	WeeklyPathTemplate  string `yaml:"weekly_path_template" mapstructure:"weekly_path_template"`
	MonthlyPathTemplate string `yaml:"monthly_path_template" mapstructure:"monthly_path_template"`
	YearlyPathTemplate  string `yaml:"yearly_path_template" mapstructure:"yearly_path_template"`

	// CollectorKeywords is a raw settings string holding quoted keyword
	// phrases, e.g. `"Push", "Finish"`. Text outside quotes is ignored.
	CollectorKeywords string `yaml:"collector_keywords" mapstructure:"collector_keywords"`

	PullUp PullUpAnchor `yaml:"pull_up_anchor" mapstructure:"pull_up_anchor"`

	// WebhookURL, when set, receives one summary message per command.
	WebhookURL string `yaml:"webhook_url" mapstructure:"webhook_url"`
}
