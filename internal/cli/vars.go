package cli

import (
	"github.com/perinote/perinote/internal/core"
	"github.com/perinote/perinote/internal/observability"
	"github.com/perinote/perinote/internal/vault"
	"github.com/perinote/perinote/pkg/models"
)

// Service instances, set during app initialization in internal/app.go.
var (
	Notes       *vault.Vault
	Engine      *core.TransferEngine
	Settings    models.Settings
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
)
