package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRateLimit_FailsOpenWithoutRedis(t *testing.T) {
	allowed, err := CheckRateLimit(context.Background(), nil, "login", "ip:127.0.0.1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimit_PassesThroughWithoutRedis(t *testing.T) {
	app := fiber.New()
	app.Get("/limited", RateLimit(nil, 1, time.Minute, "limited"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	for range 5 {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/limited", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}
