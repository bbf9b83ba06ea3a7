package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasar-warga/internal/config"
	"pasar-warga/internal/handler"
	"pasar-warga/internal/middleware"
	"pasar-warga/internal/repository"
	"pasar-warga/internal/service"
)

func newTestApp() *fiber.App {
	cfg := &config.Config{JWTSecret: "test-secret"}
	repos := repository.NewRepositories(nil)
	services := service.NewServices(repos, nil, nil, cfg)
	handlers := handler.NewHandlers(services, repos)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})
	setupRoutes(app, handlers, services.Auth)
	return app
}

// The browse and detail routes are reachable without a session; the
// requests here fail on the path parameter before any storage call,
// which is enough to prove the auth middleware did not intercept them.
func TestRoutes_ListingDetailIsPublic(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRoutes_OwnListingsRequireSession(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/mine", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoutes_StatusUpdateRequiresSession(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/listings/not-a-uuid/status", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
