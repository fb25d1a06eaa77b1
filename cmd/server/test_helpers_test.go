package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tasksapi/tasks-api/internal/config"
)

func newTestConfig(eventsEnabled bool) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8000,
			LogLevel:               "info",
			ShutdownTimeoutSeconds: 5,
		},
		Events: config.EventsConfig{Enabled: eventsEnabled},
	}
}

func newTestApp(t *testing.T, cfg *config.Config, logger *slog.Logger) *application {
	t.Helper()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	app, err := newApplication(cfg, logger)
	require.NoError(t, err)
	return app
}

func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
