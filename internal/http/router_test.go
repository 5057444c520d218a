package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/qotd/internal/auth"
	"github.com/mrlokans/qotd/internal/clientconfig"
	"github.com/mrlokans/qotd/internal/config"
	"github.com/mrlokans/qotd/internal/dataclient"
	"github.com/mrlokans/qotd/internal/dataclient/local"
	"github.com/mrlokans/qotd/internal/dataclient/remote"
)

func setupAuthServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	db := setupTestDB(t)

	cfg := config.Auth{Mode: config.AuthModeAPIKey, BcryptCost: 4}
	service := auth.NewService(db.DB, cfg)
	_, key, err := service.CreateKey(context.Background(), "test")
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Client:         local.NewWithDatabase(db),
		Database:       db,
		AuthMiddleware: auth.NewMiddleware(service, nil, cfg),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, key
}

func TestRouter_RemoteClientRoundTrip(t *testing.T) {
	server, key := setupAuthServer(t)
	client := remote.NewClient(clientconfig.Remote{APIURL: server.URL + "/", APIKey: key})
	ctx := context.Background()

	q, err := client.CreateQuestion(ctx, dataclient.CreateQuestionInput{
		Text:             "What made you smile today?",
		SeriousnessLevel: 1,
		CategoryNames:    []string{"warmup"},
	})
	require.NoError(t, err)

	got, err := client.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, q.Text, got.Text)

	missing, err := client.GetQuestion(ctx, q.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = client.CreateQuestion(ctx, dataclient.CreateQuestionInput{Text: "Too serious", SeriousnessLevel: 6})
	var ve *dataclient.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "seriousnessLevel", ve.Field)

	cats, err := client.ListCategoriesWithCount(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, int64(1), cats[0].QuestionCount)

	stats, err := client.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)

	err = client.DeleteQuestion(ctx, q.ID+100)
	assert.ErrorIs(t, err, dataclient.ErrNotFound)

	deleted, err := client.DeleteQuestions(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestRouter_RejectsBadKey(t *testing.T) {
	server, _ := setupAuthServer(t)
	client := remote.NewClient(clientconfig.Remote{APIURL: server.URL, APIKey: "qotd_nope_nope"})

	_, err := client.ListQuestions(context.Background(), dataclient.ListQuestionsFilter{})

	assert.ErrorIs(t, err, dataclient.ErrUnauthorized)
	var se *dataclient.ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
}

func TestRouter_ProberUsesAuth(t *testing.T) {
	server, key := setupAuthServer(t)
	prober := remote.Prober{}

	assert.NoError(t, prober.Probe(context.Background(), clientconfig.Remote{APIURL: server.URL, APIKey: key}))

	err := prober.Probe(context.Background(), clientconfig.Remote{APIURL: server.URL, APIKey: "wrong"})
	var se *dataclient.ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
}

func TestRouter_HealthIsPublic(t *testing.T) {
	server, _ := setupAuthServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestRouter_OptionalEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)

	assert.Equal(t, http.StatusNotFound, doJSON(router, "GET", "/api/qotd", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(router, "GET", "/api/tasks/types", nil).Code)
}
