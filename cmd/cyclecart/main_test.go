package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/cyclecart/internal/api"
	"github.com/terraincognita07/cyclecart/internal/config"
	"github.com/terraincognita07/cyclecart/internal/db"
	"github.com/terraincognita07/cyclecart/internal/i18n"
	"github.com/terraincognita07/cyclecart/internal/services"
)

func newTestRepositories(t *testing.T) *db.Repositories {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cyclecart-main.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db.NewRepositories(database)
}

func newTestI18n(t *testing.T) *i18n.Manager {
	t.Helper()

	manager, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}
	return manager
}

func TestNewAppServesHealthAndGuardsCycles(t *testing.T) {
	repos := newTestRepositories(t)
	handler, err := api.NewHandler(api.Dependencies{
		Cycles:        services.NewCycleService(repos.CycleRecords, time.UTC),
		Subscriptions: repos.ReminderSubscriptions,
		I18n:          newTestI18n(t),
		SecretKey:     "0123456789abcdef0123456789abcdef",
		Location:      time.UTC,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	app := newApp(handler)

	health, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer health.Body.Close()
	if health.StatusCode != http.StatusOK {
		t.Fatalf("expected health status 200, got %d", health.StatusCode)
	}

	cycles, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/cycles", nil), -1)
	if err != nil {
		t.Fatalf("cycles request failed: %v", err)
	}
	defer cycles.Body.Close()
	if cycles.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthenticated cycles status 401, got %d", cycles.StatusCode)
	}
}

func TestStartReminderDispatcher(t *testing.T) {
	repos := newTestRepositories(t)
	messages := newTestI18n(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	disabled := config.Config{Location: time.UTC, ReminderSchedule: services.DefaultReminderSchedule}
	started, err := startReminderDispatcher(ctx, disabled, repos, messages)
	if err != nil {
		t.Fatalf("expected disabled dispatcher without error, got %v", err)
	}
	if started {
		t.Fatal("expected dispatcher to stay disabled without a bot token")
	}

	enabled := disabled
	enabled.TelegramBotToken = "123:test-token"
	started, err = startReminderDispatcher(ctx, enabled, repos, messages)
	if err != nil {
		t.Fatalf("start dispatcher: %v", err)
	}
	if !started {
		t.Fatal("expected dispatcher to start with a bot token")
	}

	invalid := enabled
	invalid.ReminderSchedule = "not a schedule"
	if _, err := startReminderDispatcher(ctx, invalid, repos, messages); err == nil {
		t.Fatal("expected invalid schedule to fail")
	}
}
