package test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mysterioushouse/server/internal/config"
	"github.com/mysterioushouse/server/internal/house"
	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/profile"
	"github.com/mysterioushouse/server/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) string {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage.Driver = config.DriverMemory

	catalog, err := narration.Load()
	require.NoError(t, err)
	engine := house.NewEngine(profile.NewService(profile.NewMemoryStore()))
	srv := server.NewServer(cfg, engine, narration.NewRenderer(catalog, ""))

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
		ts.Close()
	})
	return strings.TrimPrefix(ts.URL, "http://")
}

func TestScenarioNames(t *testing.T) {
	assert.Len(t, ScenarioNames(""), len(scenarios))
	assert.Equal(t, []string{"Launch", "LaunchGerman"}, ScenarioNames("Launch"))
	assert.Empty(t, ScenarioNames("NoSuchScenario"))
}

func TestRunSelectedScenarios(t *testing.T) {
	addr := startServer(t)

	for _, run := range []string{"Launch", "StopClosesConnection", "ResumeAfterDescend"} {
		t.Run(run, func(t *testing.T) {
			results := RunAllTests(Options{Addr: addr, UserPrefix: "ci", Run: run})
			require.NotEmpty(t, results)
			for _, r := range results {
				assert.True(t, r.Passed, "%s: %s", r.Name, r.Message)
			}
		})
	}
}
