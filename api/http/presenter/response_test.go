package presenter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/screening/pkg/apperr"
)

func TestFail(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperr.InvalidFields(map[string]string{"email": "invalid email"}), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"wrapped conflict", fmt.Errorf("start: %w", apperr.Conflict("SESSION_EXPIRED", "expired")), http.StatusConflict, "SESSION_EXPIRED"},
		{"not found", apperr.NotFound("JOB_NOT_FOUND", "job not found"), http.StatusNotFound, "JOB_NOT_FOUND"},
		{"transient", apperr.Transient("SCORER_UNAVAILABLE", "later"), http.StatusServiceUnavailable, "SCORER_UNAVAILABLE"},
		{"auth", apperr.Auth("INVALID_CREDENTIALS", "no"), http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"plain error", errors.New("pq: connection refused"), http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return Fail(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
			assert.NotContains(t, body.Message, "pq:")
		})
	}
}
