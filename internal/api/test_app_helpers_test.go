package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/cyclecart/internal/db"
	"github.com/terraincognita07/cyclecart/internal/i18n"
	"github.com/terraincognita07/cyclecart/internal/models"
	"github.com/terraincognita07/cyclecart/internal/services"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

var testNow = time.Date(2024, time.February, 23, 9, 30, 0, 0, time.UTC)

type testApp struct {
	app     *fiber.App
	handler *Handler
	repos   *db.Repositories
}

type snapshotResponse struct {
	CycleData        []services.CycleEntry `json:"cycleData"`
	NextPeriodDate   string                `json:"nextPeriodDate"`
	NotificationDate string                `json:"notificationDate"`
	ReminderDueToday bool                  `json:"reminderDueToday"`
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithOptions(t, nil, false)
}

// newTestAppWithOptions wires the handler against a temp sqlite database.
// A non-nil store replaces the database-backed cycle store.
func newTestAppWithOptions(t *testing.T, store services.CycleStore, cookieSecure bool) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cyclecart-api.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	repos := db.NewRepositories(database)
	if store == nil {
		store = repos.CycleRecords
	}

	i18nManager, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(Dependencies{
		Cycles:        services.NewCycleService(store, time.UTC),
		Subscriptions: repos.ReminderSubscriptions,
		I18n:          i18nManager,
		SecretKey:     testSecretKey,
		Location:      time.UTC,
		CookieSecure:  cookieSecure,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return testNow }

	app := fiber.New()
	RegisterRoutes(app, handler)
	return &testApp{app: app, handler: handler, repos: repos}
}

func signTestToken(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(testNow.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return token
}

func customerToken(t *testing.T, subject string) string {
	t.Helper()
	return signTestToken(t, subject, testNow.Add(time.Hour))
}

func (env *testApp) do(t *testing.T, method string, path string, body any, token string, headers map[string]string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { response.Body.Close() })
	return response
}

func decodeSnapshot(t *testing.T, response *http.Response) snapshotResponse {
	t.Helper()

	snapshot := snapshotResponse{}
	if err := json.NewDecoder(response.Body).Decode(&snapshot); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return snapshot
}

func expectStatus(t *testing.T, response *http.Response, status int) {
	t.Helper()
	if response.StatusCode != status {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", status, response.StatusCode, string(body))
	}
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload["error"]
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

type failingCycleStore struct {
	loadErr error
	saveErr error
}

func (store *failingCycleStore) LoadCycleRecord(context.Context, string) (models.CycleRecord, bool, error) {
	if store.loadErr != nil {
		return models.CycleRecord{}, false, store.loadErr
	}
	return models.CycleRecord{}, false, nil
}

func (store *failingCycleStore) SaveCycleRecord(context.Context, *models.CycleRecord) error {
	return store.saveErr
}

func decodeJSONBody(response *http.Response, target any) error {
	return json.NewDecoder(response.Body).Decode(target)
}
