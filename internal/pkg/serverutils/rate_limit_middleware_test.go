package serverutils

import (
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedApp(perMinute int) *fiber.App {
	app := fiber.New()
	app.Get("/", RateLimitMiddleware(perMinute), func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	return app
}

func TestRateLimitMiddlewareEnforcesBudget(t *testing.T) {
	app := newRateLimitedApp(3)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimitMiddlewareCountsConcurrentRequests(t *testing.T) {
	const budget = 8
	app := newRateLimitedApp(budget)

	// All requests share one client IP; every one of them must be counted,
	// including racing first requests in a fresh window.
	const total = budget + 4
	statuses := make([]int, total)
	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			if err != nil {
				return
			}
			statuses[n] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	var ok, limited int
	for _, status := range statuses {
		switch status {
		case fiber.StatusOK:
			ok++
		case fiber.StatusTooManyRequests:
			limited++
		}
	}
	assert.Equal(t, total, ok+limited)
	assert.Equal(t, budget, ok)
	assert.Equal(t, total-budget, limited)
}
