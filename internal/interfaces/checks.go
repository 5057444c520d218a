package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/spf13/viper"

	"github.com/mrlokans/qotd/internal/clientconfig"
	"github.com/mrlokans/qotd/internal/dailypick"
	"github.com/mrlokans/qotd/internal/database"
	"github.com/mrlokans/qotd/internal/database/categories"
	"github.com/mrlokans/qotd/internal/database/questions"
	"github.com/mrlokans/qotd/internal/dataclient"
	"github.com/mrlokans/qotd/internal/dataclient/local"
	"github.com/mrlokans/qotd/internal/dataclient/remote"
	"github.com/mrlokans/qotd/internal/http"
	"github.com/mrlokans/qotd/internal/prompt"
	"github.com/mrlokans/qotd/internal/scheduler"
	"github.com/mrlokans/qotd/internal/tasks"
)

// =============================================================================
// Data Clients
// =============================================================================

// DataClient implementations
var _ dataclient.DataClient = (*local.Client)(nil)
var _ dataclient.DataClient = (*remote.Client)(nil)

// =============================================================================
// Client Configuration
// =============================================================================

var _ dataclient.RemoteResolver = (*clientconfig.Store)(nil)
var _ dataclient.RemoteConfigurator = (*clientconfig.Setup)(nil)
var _ clientconfig.Prober = remote.Prober{}
var _ clientconfig.EnvSource = (*viper.Viper)(nil)
var _ prompt.Prompter = (*prompt.Terminal)(nil)

// =============================================================================
// Server
// =============================================================================

var _ http.HealthChecker = (*database.Database)(nil)
var _ http.DailyPicker = (*dailypick.Picker)(nil)
var _ scheduler.DayPicker = (*dailypick.Picker)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ tasks.OrphanCategoriesCleaner = (*categories.Repository)(nil)
var _ tasks.NormsBackfiller = (*questions.Repository)(nil)
