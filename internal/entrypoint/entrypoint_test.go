package entrypoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/qotd/internal/config"
	"github.com/mrlokans/qotd/internal/entities"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "qotd.db")
	cfg.DailyPick.Enabled = false
	return cfg
}

func get(app *App, path, key string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	if key != "" {
		req.Header.Set("x-api-key", key)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func TestNewApp_RequiresKeyByDefault(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tasks.Enabled = false
	cfg.Auth.StaticKey = "letmein"

	app, err := NewApp(cfg, "test")
	require.NoError(t, err)
	defer app.Shutdown(context.Background())

	assert.Equal(t, http.StatusOK, get(app, "/health", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(app, "/api/questions", "").Code)
	assert.Equal(t, http.StatusOK, get(app, "/api/questions", "letmein").Code)
}

func TestNewApp_NoAuth(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tasks.Enabled = false
	cfg.Auth.Mode = config.AuthModeNone

	app, err := NewApp(cfg, "test")
	require.NoError(t, err)
	defer app.Shutdown(context.Background())

	assert.Equal(t, http.StatusOK, get(app, "/api/stats", "").Code)
}

func TestNewApp_DailyPickRoutes(t *testing.T) {
	tests := []struct {
		name       string
		enabled    bool
		wantGet    int
		wantRepick int
	}{
		{"enabled", true, http.StatusOK, http.StatusOK},
		{"disabled", false, http.StatusNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Tasks.Enabled = false
			cfg.Auth.Mode = config.AuthModeNone
			cfg.DailyPick.Enabled = tt.enabled

			app, err := NewApp(cfg, "test")
			require.NoError(t, err)
			defer app.Shutdown(context.Background())

			require.NoError(t, app.db.DB.Create(&entities.Question{
				Text:             "What made you smile today?",
				TextNorm:         "what made you smile today",
				SeriousnessLevel: 1,
			}).Error)

			assert.Equal(t, tt.wantGet, get(app, "/api/qotd", "").Code)

			req, _ := http.NewRequest("POST", "/api/qotd/repick", nil)
			w := httptest.NewRecorder()
			app.Router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantRepick, w.Code)

			var picks int64
			require.NoError(t, app.db.DB.Model(&entities.DailyPick{}).Count(&picks).Error)
			if tt.enabled {
				assert.NotZero(t, picks)
			} else {
				assert.Zero(t, picks)
			}
		})
	}
}

func TestNewApp_WithTasks(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.Mode = config.AuthModeNone

	app, err := NewApp(cfg, "test")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, app.Start(ctx))

	w := get(app, "/api/tasks/types", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cleanup_orphan_categories")

	app.Shutdown(context.Background())
}

func TestNewApp_InvalidSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.DailyPick.Enabled = true
	cfg.DailyPick.Schedule = "whenever"

	_, err := NewApp(cfg, "test")
	assert.Error(t, err)
}
