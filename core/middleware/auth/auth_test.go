package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Post("/library/ingest", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestNew(t *testing.T) {
	skipHealth := func(c *fiber.Ctx) bool { return c.Path() == "/healthz" }

	tests := []struct {
		name   string
		cfg    Config
		method string
		path   string
		key    string
		want   int
	}{
		{"Disabled", Config{}, "POST", "/library/ingest", "", fiber.StatusOK},
		{"ValidKey", Config{ApiKey: "secret"}, "POST", "/library/ingest", "secret", fiber.StatusOK},
		{"WrongKey", Config{ApiKey: "secret"}, "POST", "/library/ingest", "guess", fiber.StatusUnauthorized},
		{"MissingKey", Config{ApiKey: "secret"}, "POST", "/library/ingest", "", fiber.StatusUnauthorized},
		{"Skipped", Config{ApiKey: "secret", Skip: skipHealth}, "GET", "/healthz", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(Header, tt.key)
			}
			resp, err := newApp(tt.cfg).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
