// internal/handlers/main_test.go
package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"drumgen_testbench/internal/config"
	"drumgen_testbench/internal/handlers"
	"drumgen_testbench/internal/middleware"
	"drumgen_testbench/internal/service/mocks"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// teardowns run after every test in the package has finished.
var teardowns []func()

func TestMain(m *testing.M) {
	config.Cfg.App.DefaultPromptLimit = config.DefaultPromptLimit
	config.Cfg.App.DefaultResultLimit = config.DefaultResultLimit
	config.Cfg.Auth.Enabled = false
	code := m.Run()
	for _, fn := range teardowns {
		fn()
	}
	os.Exit(code)
}

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error { return p.err }

// testAPI bundles the router with the service mocks behind it.
type testAPI struct {
	router    *chi.Mux
	prompts   *mocks.MockPromptService
	rotation  *mocks.MockRotationService
	results   *mocks.MockResultService
	analytics *mocks.MockAnalyticsService
	failures  *mocks.MockLLMFailureService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWithConfig(t, &config.Cfg, stubPinger{})
}

func newTestAPIWithConfig(t *testing.T, cfg *config.Config, pinger handlers.Pinger) *testAPI {
	t.Helper()
	ta := &testAPI{
		prompts:   mocks.NewMockPromptService(t),
		rotation:  mocks.NewMockRotationService(t),
		results:   mocks.NewMockResultService(t),
		analytics: mocks.NewMockAnalyticsService(t),
		failures:  mocks.NewMockLLMFailureService(t),
	}
	api := &handlers.API{
		Prompts:     handlers.NewPromptHandler(ta.prompts, ta.rotation, testLogger),
		Results:     handlers.NewResultHandler(ta.results, ta.analytics, testLogger),
		LLMFailures: handlers.NewLLMFailureHandler(ta.failures, testLogger),
		Health:      handlers.NewHealthHandler(pinger, testLogger),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.LoggingMiddleware(testLogger))
	api.Mount(r, cfg)
	ta.router = r
	return ta
}

func (ta *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	ta.router.ServeHTTP(rr, req)
	return rr
}
