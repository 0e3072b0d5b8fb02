package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"phishguard/database"

	"github.com/gofiber/fiber/v2"
)

// setupHandlerTest points the shared database at a throwaway sqlite
// file, runs migrations and seeds, and sets the env the handlers need.
func setupHandlerTest(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))

	database.InitDB()
	t.Cleanup(func() {
		database.CloseDB()
	})
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) int {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}

	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestRegisterDuplicate(t *testing.T) {
	setupHandlerTest(t)

	app := fiber.New()
	app.Post("/api/auth/register", Register)

	if code := postJSON(t, app, "/api/auth/register", RegisterRequest{
		Username: "alice",
		Email:    "alice@example.org",
		Password: "hunter22",
	}); code != 200 {
		t.Fatalf("First registration returned %d, expected 200", code)
	}

	// Same username, caught by the lookup.
	if code := postJSON(t, app, "/api/auth/register", RegisterRequest{
		Username: "alice",
		Email:    "other@example.org",
		Password: "hunter22",
	}); code != 409 {
		t.Errorf("Duplicate username returned %d, expected 409", code)
	}

	// Different username, same email: slips past the lookup and must be
	// caught as a unique-constraint violation on insert, not a 500.
	if code := postJSON(t, app, "/api/auth/register", RegisterRequest{
		Username: "bob",
		Email:    "alice@example.org",
		Password: "hunter22",
	}); code != 409 {
		t.Errorf("Duplicate email returned %d, expected 409", code)
	}
}
