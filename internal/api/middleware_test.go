package api

import (
	"account-service/internal/jwt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_StoresClaims(t *testing.T) {
	tokens := jwt.NewManager(testSecret, time.Hour)
	userID := uuid.New()
	token, err := tokens.GenerateToken(userID, "ana@x.com")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/whoami", AuthMiddleware(tokens), func(c *fiber.Ctx) error {
		id, err := GetUserIDFromClaims(c)
		if err != nil {
			return err
		}
		return c.SendString(id.String())
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_CountsRejections(t *testing.T) {
	app := fiber.New()
	app.Get("/private", AuthMiddleware(jwt.NewManager(testSecret, time.Hour)), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	before := testutil.ToFloat64(authEventsTotal.WithLabelValues("token", "malformed"))

	for _, header := range []string{"Bearer", "Basic abc", "Bearer a b"} {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set(fiber.HeaderAuthorization, header)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(authEventsTotal.WithLabelValues("token", "malformed")))
}

func TestGetUserIDFromClaims_Missing(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_, err := GetUserIDFromClaims(c)
		assert.Error(t, err)
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestPrometheusMiddleware_LabelsByRoutePattern(t *testing.T) {
	app := fiber.New()
	app.Use(PrometheusMiddleware())
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusAccepted)
	})

	counter := httpRequestTotal.WithLabelValues(http.MethodGet, "/items/:id", "202")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/"+id, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestErrorHandler_HidesDetailsOutsideDevelopment(t *testing.T) {
	for _, devMode := range []bool{false, true} {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(devMode)})
		app.Get("/boom", func(c *fiber.Ctx) error {
			return assert.AnError
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Internal server error", body["error"])
		if devMode {
			assert.Equal(t, assert.AnError.Error(), body["details"])
		} else {
			assert.NotContains(t, body, "details")
		}
	}
}
