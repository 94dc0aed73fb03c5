package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/gestor-notas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/gestor-notas-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "gestor-notas-test"
	testExpMin    = 60
)

// buildAuthApp aplicación mínima: AuthMiddleware + handler que devuelve el usuario.
func buildAuthApp(issuer string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, issuer),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
		},
	)
	return app
}

func bearer(t *testing.T, secret, issuer string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, testUserID, issuer, expMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doAuth(t *testing.T, app *fiber.App, authHeader string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ValidToken(t *testing.T) {
	app := buildAuthApp(testIssuer)
	status, body := doAuth(t, app, bearer(t, testJWTSecret, testIssuer, testExpMin))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, testUserID, body["user_id"])
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	status, body := doAuth(t, buildAuthApp(testIssuer), "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		header func(t *testing.T) string
		code   string
	}{
		{"sin esquema Bearer", func(t *testing.T) string { return "Token abc" }, "INVALID_TOKEN"},
		{"bearer vacío", func(t *testing.T) string { return "Bearer   " }, "MISSING_TOKEN"},
		{"solo esquema", func(t *testing.T) string { return "Bearer" }, "MISSING_TOKEN"},
		{"esquema en minúsculas sin token", func(t *testing.T) string { return "bearer" }, "MISSING_TOKEN"},
		{"partes de más", func(t *testing.T) string { return "Bearer a b" }, "INVALID_TOKEN"},
		{"token basura", func(t *testing.T) string { return "Bearer not-a-jwt" }, "INVALID_TOKEN"},
		{"otra firma", func(t *testing.T) string { return bearer(t, "otro-secreto", testIssuer, testExpMin) }, "INVALID_TOKEN"},
		{"emisor distinto", func(t *testing.T) string { return bearer(t, testJWTSecret, "otro-emisor", testExpMin) }, "INVALID_TOKEN"},
		{"expirado", func(t *testing.T) string { return bearer(t, testJWTSecret, testIssuer, -5) }, "INVALID_TOKEN"},
	}
	app := buildAuthApp(testIssuer)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doAuth(t, app, tc.header(t))
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestAuthMiddleware_EmptyIssuerSkipsCheck(t *testing.T) {
	app := buildAuthApp("")
	status, _ := doAuth(t, app, bearer(t, testJWTSecret, "cualquier-emisor", testExpMin))
	assert.Equal(t, http.StatusOK, status)
}
