package app

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/telegramtest"
	"github.com/IT-Nick/quizbot/internal/domain/session"
	"github.com/IT-Nick/quizbot/internal/infra/config"
	"github.com/IT-Nick/quizbot/internal/infra/presenter"
	"github.com/IT-Nick/quizbot/internal/infra/timer"
)

func newTestApp(t *testing.T, storageCfg config.Storage) *App {
	t.Helper()

	cfg := config.Default()
	cfg.TelegramBot.Token = "test"
	cfg.Storage = storageCfg
	cfg.Admins = []int64{1}

	st, err := initStorage(context.Background(), cfg.Storage)
	if err != nil {
		t.Fatalf("initStorage: %v", err)
	}
	t.Cleanup(st.Close)

	bot, _ := telegramtest.NewBot(t)
	logger := log.New(&strings.Builder{}, "", 0)
	app := &App{
		config:    cfg,
		logger:    logger,
		bot:       bot,
		storage:   st,
		scheduler: timer.NewScheduler[session.Tag](),
		presenter: presenter.New(bot, nil, logger, false),
	}
	app.initServices()
	t.Cleanup(app.scheduler.Stop)
	return app
}

func TestInitServicesMemory(t *testing.T) {
	app := newTestApp(t, config.Storage{Type: config.StorageMemory})

	if app.marker != nil {
		t.Errorf("marker must not be created without redis")
	}
	if app.engine == nil || app.quizService == nil || app.resultService == nil || app.drafts == nil {
		t.Fatal("expected all services to be initialized")
	}
	if got := app.describeUser(42); got != "idle" {
		t.Errorf("expected idle, got %q", got)
	}
}

func TestHTTPRoutes(t *testing.T) {
	app := newTestApp(t, config.Storage{Type: config.StorageMemory})
	h := app.bootstrapHandlersHTTP()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/7/results", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("results: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/active", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("sessions: expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body["marked_sessions"]; ok {
		t.Errorf("marked_sessions must be omitted without redis: %v", body)
	}
}

func TestRedisStorageWiresMarker(t *testing.T) {
	mr := miniredis.RunT(t)
	app := newTestApp(t, config.Storage{
		Type:  config.StorageRedis,
		Redis: config.Redis{Addr: mr.Addr(), SessionTTL: 0},
	})

	if app.marker == nil {
		t.Fatal("expected session marker with redis configured")
	}
	if err := app.marker.Mark(context.Background(), 5, "s-5"); err != nil {
		t.Fatalf("Mark failed: %v", err)
	}
	if got := app.describeUser(5); got != "redis mark s-5" {
		t.Errorf("expected redis mark in user state, got %q", got)
	}

	rec := httptest.NewRecorder()
	app.bootstrapHandlersHTTP().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/active", nil))
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got, ok := body["marked_sessions"]; !ok || got != float64(1) {
		t.Errorf("expected marked_sessions 1, got %v", body)
	}
}

func TestBootstrapHandlersTelegram(t *testing.T) {
	app := newTestApp(t, config.Storage{Type: config.StorageMemory})
	app.config.Debug = true
	app.bootstrapHandlersTelegram()
}

func TestInitStorageRedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := initStorage(context.Background(), config.Storage{Type: config.StorageRedis, Redis: config.Redis{Addr: addr}})
	if err == nil {
		t.Fatal("expected ping error")
	}
}
