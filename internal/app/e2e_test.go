//go:build e2e

package app_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ren-lyn/midterm-lab3/internal/adapter/postgres/testhelper"
	userrepo "github.com/ren-lyn/midterm-lab3/internal/adapter/postgres/user"
	"github.com/ren-lyn/midterm-lab3/internal/app"
	"github.com/ren-lyn/midterm-lab3/internal/client"
	"github.com/ren-lyn/midterm-lab3/internal/config"
	"github.com/ren-lyn/midterm-lab3/internal/service/user"
	"github.com/ren-lyn/midterm-lab3/internal/transport/rest"
)

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer runs the full stack against a PostgreSQL container and
// returns the users collection URL.
func setupTestServer(t *testing.T) string {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	testhelper.TruncateUsers(t, pool)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg := &config.Config{
		CORS: config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS"},
	}

	svc := user.NewService(logger, userrepo.New(pool))
	handler := app.NewRouter(cfg, logger,
		rest.NewUsersHandler(svc, logger),
		rest.NewHealthHandler(pool, config.StoreDriverPostgres, "e2e"),
		nil,
	)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestE2E_ClientLifecycle(t *testing.T) {
	baseURL := setupTestServer(t)
	ctrl := client.NewController(client.NewHTTPClient(baseURL+"/api/users", slog.Default()))
	ctx := context.Background()

	s := ctrl.Load(ctx, client.State{})
	require.Empty(t, s.Error)
	require.Empty(t, s.Records)

	s.Draft = client.Draft{Name: "Alice", Email: "alice@example.com", Age: "30", Occupation: "Engineer"}
	s = ctrl.Submit(ctx, s)
	require.Empty(t, s.Error)
	require.Len(t, s.Records, 1)
	alice := s.Records[0]

	s.Draft = client.Draft{Name: "Mallory", Email: "ALICE@example.com", Age: "22", Occupation: "Designer"}
	s = ctrl.Submit(ctx, s)
	assert.Equal(t, `email "alice@example.com" is already in use`, s.Error)
	assert.Equal(t, "Mallory", s.Draft.Name, "draft survives a rejected save")
	s = client.Cancel(s)

	s = client.StartEdit(s, alice)
	s = client.EditField(s, client.FieldAge, "31")
	s = ctrl.Submit(ctx, s)
	require.Empty(t, s.Error)
	require.Len(t, s.Records, 1)
	assert.Equal(t, 31, s.Records[0].Age)
	assert.True(t, alice.CreatedAt.Equal(s.Records[0].CreatedAt))

	s = ctrl.ConfirmDelete(ctx, client.RequestDelete(s, alice.ID))
	assert.Empty(t, s.Error)
	assert.Empty(t, s.Records)
}

func TestE2E_ConcurrentDuplicateEmail(t *testing.T) {
	baseURL := setupTestServer(t)
	api := client.NewHTTPClient(baseURL+"/api/users", slog.Default())

	const writers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := api.Create(context.Background(), client.Draft{
				Name: fmt.Sprintf("Writer %d", i), Email: "race@example.com", Age: "20", Occupation: "QA",
			})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, success)

	records, err := api.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestE2E_HealthAndNotFound(t *testing.T) {
	baseURL := setupTestServer(t)

	resp, err := http.Get(baseURL + "/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	err = client.NewHTTPClient(baseURL+"/api/users", slog.Default()).Delete(context.Background(), "not-a-uuid")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "User not found", apiErr.Message)
}
