package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/tsfunc/internal/logging"
	"github.com/soltixdb/tsfunc/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Health(t *testing.T) {
	handler := &Handler{logger: logging.NewNop()}

	app := fiber.New()
	app.Get("/health", handler.Health)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var healthResp models.HealthResponse
	require.NoError(t, json.Unmarshal(body, &healthResp))
	assert.Equal(t, "healthy", healthResp.Status)
	assert.Equal(t, Version, healthResp.Version)
	assert.NotEmpty(t, healthResp.Timestamp)
}

func TestHandler_NotFound(t *testing.T) {
	handler := &Handler{logger: logging.NewNop()}

	app := fiber.New()
	app.Use(handler.NotFound)

	resp, err := app.Test(httptest.NewRequest("GET", "/nonexistent", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "NOT_FOUND", errResp.Error.Code)
	assert.Equal(t, "Route not found", errResp.Error.Message)
	assert.Equal(t, "/nonexistent", errResp.Error.Path)
}
