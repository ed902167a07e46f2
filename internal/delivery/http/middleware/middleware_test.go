package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skill-passport/internal/pkg/jwt"
	"skill-passport/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

func get(t *testing.T, app *fiber.App, req *http.Request) (int, response.Envelope) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)

	var out response.Envelope
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("decode %q: %v", string(b), err)
	}
	return resp.StatusCode, out
}

func TestErrorMiddleware_MasksServerErrors(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/app-500", func(fiber.Ctx) error {
		return NewAppError(fiber.StatusBadGateway, "upstream said secret things", nil, errors.New("secret"))
	})
	app.Get("/plain", func(fiber.Ctx) error { return errors.New("secret") })
	app.Get("/panic", func(fiber.Ctx) error { panic("boom") })
	app.Get("/bad", func(fiber.Ctx) error {
		return NewAppError(fiber.StatusBadRequest, "", map[string]string{"field": "user_uid"}, nil)
	})

	for _, path := range []string{"/app-500", "/plain", "/panic"} {
		status, body := get(t, app, httptest.NewRequest(http.MethodGet, path, nil))
		if status != http.StatusInternalServerError || body.Message != response.MessageInternalServerError {
			t.Fatalf("%s: expected masked 500, got %d %q", path, status, body.Message)
		}
	}

	status, body := get(t, app, httptest.NewRequest(http.MethodGet, "/bad", nil))
	if status != http.StatusBadRequest || body.Message != response.MessageBadRequest || body.Data == nil {
		t.Fatalf("expected 400 with data, got %d %+v", status, body)
	}
}

func TestErrorMiddleware_FiberErrors(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())

	status, body := get(t, app, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if status != http.StatusNotFound || body.Status != http.StatusNotFound {
		t.Fatalf("expected 404 envelope, got %d %+v", status, body)
	}
}

func TestAuthMiddleware_OptionalBearer(t *testing.T) {
	svc := jwt.NewHMACService("mw-secret", time.Hour)
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Use(NewAuthMiddleware(svc).Middleware())
	app.Get("/who", func(c fiber.Ctx) error {
		return response.JSON(c, fiber.StatusOK, response.MessageOK, UserIDFromContext(c))
	})

	status, body := get(t, app, httptest.NewRequest(http.MethodGet, "/who", nil))
	if status != http.StatusOK || body.Data != "" {
		t.Fatalf("expected anonymous pass-through, got %d %+v", status, body)
	}

	token, err := svc.GenerateAccessToken("u5")
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	status, body = get(t, app, req)
	if status != http.StatusOK || body.Data != "u5" {
		t.Fatalf("expected u5, got %d %+v", status, body)
	}

	for _, header := range []string{"Basic abc", "Bearer", "Bearer garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		req.Header.Set("Authorization", header)
		if status, _ := get(t, app, req); status != http.StatusUnauthorized {
			t.Fatalf("%q: expected 401, got %d", header, status)
		}
	}
}
