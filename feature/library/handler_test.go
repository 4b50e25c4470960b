package library_test

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"library-ingest/core/database"
	"library-ingest/core/source"
	"library-ingest/feature/library"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T, dsn string) (*fiber.App, string) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, library.Migrate(db))

	dir := t.TempDir()
	svc := library.NewService(db, nil, source.Config{}, "library", zap.NewNop(), nil)
	feature := library.NewFeature(svc)
	assert.Equal(t, "library", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app, dir
}

func post(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest("POST", "/library/ingest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func pathBody(path string) string {
	b, _ := json.Marshal(map[string]string{"path": path})
	return string(b)
}

func TestHandleIngest(t *testing.T) {
	app, dir := setupApp(t, "file:handler_ingest?mode=memory&cache=shared")

	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}
	good := write("good.csv", "author_id,author_pen_name,book_id,book_name\n1,Jane,1,Moby\n1,Jane,1,Moby\n")
	bad := write("bad.csv", "h\nx,Jane,1,Moby\n")
	clash := write("clash.csv", "h\n1,Ann,9,Other\n")

	t.Run("Success", func(t *testing.T) {
		status, body := post(t, app, pathBody(good))
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "Processing completed successfully.", body["message"])
		assert.EqualValues(t, 2, body["records_processed"])
		assert.EqualValues(t, 1, body["records_skipped"])
		assert.EqualValues(t, 1, body["records_inserted"])
	})

	tests := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{"Missing", pathBody(filepath.Join(dir, "nope.csv")), fiber.StatusNotFound, "input_not_found"},
		{"Parse", pathBody(bad), fiber.StatusUnprocessableEntity, "parse_error"},
		{"Constraint", pathBody(clash), fiber.StatusConflict, "constraint_violation"},
		{"Ambiguous", `{"path":"a.csv","bucket":"b","key":"k"}`, fiber.StatusBadRequest, "unclassified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := post(t, app, tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, body["kind"])
			assert.NotEmpty(t, body["error"])
			assert.Contains(t, body, "records_processed")
		})
	}

	t.Run("MalformedJSON", func(t *testing.T) {
		status, body := post(t, app, `{"path":`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, body["error"], "invalid request body")
	})
}

func TestHandleIngest_RemoteWithoutStorage(t *testing.T) {
	app, _ := setupApp(t, "file:handler_remote?mode=memory&cache=shared")

	// A remote location without object storage configured is a request problem
	status, body := post(t, app, `{"bucket":"library","key":"books.csv"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "unclassified", body["kind"])
}

func TestHandleIngest_NoDatabase(t *testing.T) {
	svc := library.NewService(nil, nil, source.Config{}, "library", nil, nil)
	app := fiber.New()
	library.NewHandler(svc).RegisterRoutes(app)

	status, body := post(t, app, `{"path":"books.csv"}`)
	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, "connectivity_error", body["kind"])

	assert.False(t, library.NewFeature(svc).IsEnabled())
}

func TestHandleSchema(t *testing.T) {
	app, _ := setupApp(t, "file:handler_schema?mode=memory&cache=shared")

	resp, err := app.Test(httptest.NewRequest("GET", "/library/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report library.SchemaReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.True(t, report.Matched)
}
