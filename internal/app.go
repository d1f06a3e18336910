// Package internal provides the App struct that wires all perinote
// components together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/perinote/perinote/internal/cli"
	"github.com/perinote/perinote/internal/core"
	"github.com/perinote/perinote/internal/observability"
	"github.com/perinote/perinote/internal/vault"
	"github.com/perinote/perinote/pkg/models"
)

// App holds all service dependencies for perinote.
type App struct {
	VaultPath string

	// Configuration
	SettingsMgr core.SettingsManager
	Settings    models.Settings

	// Host surfaces
	Notes *vault.Vault

	// Core services
	Engine *core.TransferEngine

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
}

// NewApp creates and wires all perinote components for the vault rooted at
// vaultPath.
func NewApp(vaultPath string) (*App, error) {
	app := &App{VaultPath: vaultPath}

	// --- Configuration ---
	app.SettingsMgr = core.NewSettingsManager(vaultPath)
	settings, err := app.SettingsMgr.Load()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if err := app.SettingsMgr.Validate(settings); err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}
	app.Settings = *settings

	// --- Host surfaces ---
	app.Notes, err = vault.Open(vaultPath)
	if err != nil {
		return nil, err
	}

	// --- Core services ---
	app.Engine = core.NewTransferEngine(app.Notes)

	// --- Observability ---
	eventLogPath := filepath.Join(vaultPath, ".perinote_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: disable event logging if the log can't be created.
		app.EventLog = observability.NewNopEventLog()
	}
	app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	if settings.WebhookURL != "" {
		app.Notifier = observability.NewWebhookNotifier(settings.WebhookURL)
	} else {
		app.Notifier = observability.NewNopNotifier()
	}

	// --- Wire CLI package-level variables ---
	cli.Notes = app.Notes
	cli.Engine = app.Engine
	cli.Settings = app.Settings
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc
	cli.Notifier = app.Notifier

	return app, nil
}

// ResolveVaultPath picks the vault directory for a CLI invocation: the
// explicit flag value when given, otherwise PERINOTE_VAULT, otherwise the
// nearest ancestor of the working directory containing a .perinote.yaml.
func ResolveVaultPath(flagValue string) string {
	if flagValue != "" && flagValue != "." {
		return flagValue
	}
	if home := os.Getenv("PERINOTE_VAULT"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".perinote.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}
