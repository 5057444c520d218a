package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/qotd/internal/database"
	"github.com/mrlokans/qotd/internal/dataclient/local"
)

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabaseWithLogLevel(filepath.Join(t.TempDir(), "qotd.db"), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestRouter(t *testing.T) (*gin.Engine, *local.Client) {
	t.Helper()
	db := setupTestDB(t)
	client := local.NewWithDatabase(db)
	router := NewRouter(RouterConfig{Client: client, Database: db, Version: "test"})
	return router, client
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
