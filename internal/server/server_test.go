package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/xanke/disney-sns/docs"
	"github.com/xanke/disney-sns/internal/config"
)

func TestServer_AuthRequired(t *testing.T) {
	s := &Server{config: &config.Config{JWTSecret: testSecret}}
	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": currentUserID(c)})
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{"valid token", "Bearer " + tokenFor(t, 123, testSecret, time.Hour), http.StatusOK},
		{"expired token", "Bearer " + tokenFor(t, 123, testSecret, -time.Hour), http.StatusUnauthorized},
		{"wrong secret", "Bearer " + tokenFor(t, 123, "another-secret-another-secret-another", time.Hour), http.StatusUnauthorized},
		{"zero subject", "Bearer " + tokenFor(t, 0, testSecret, time.Hour), http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestOptionalViewerIgnoresQueryIdentity(t *testing.T) {
	e := newTestEnv(t, "")
	u1 := e.user(t, "mickey")
	u2 := e.user(t, "donald")
	post := createPost(t, e, u1.ID, map[string]interface{}{"content": "hello"})

	// a viewer id in the query string is not an identity
	resp := e.do(t, http.MethodGet, "/api/posts/"+itoa(post.ID)+"?userid="+itoa(u2.ID), 0, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	var detail struct {
		Views int64 `json:"pv"`
	}
	resp.decode(t, &detail)
	assert.Zero(t, detail.Views)
}

func TestHealthEndpoints(t *testing.T) {
	e := newTestEnv(t, "")

	resp := e.do(t, http.MethodGet, "/health/live", 0, nil)
	assert.Equal(t, http.StatusOK, resp.Status)

	resp = e.do(t, http.MethodGet, "/health/ready", 0, nil)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, string(resp.raw), `"redis":"disabled"`)
}

func TestSecurityHeadersAndRequestID(t *testing.T) {
	e := newTestEnv(t, "")

	resp, err := e.app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.NotEmpty(t, resp.Header.Get("X-Content-Type-Options"))
	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestUnknownRoute(t *testing.T) {
	e := newTestEnv(t, "")
	resp := e.do(t, http.MethodGet, "/api/nope", 0, nil)
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestFeatureFlagsEndpoint(t *testing.T) {
	e := newTestEnv(t, "anonymous_views=on,activity_push=off")
	u := e.user(t, "mickey")

	var flags map[string]bool
	resp := e.do(t, http.MethodGet, "/api/feature-flags", u.ID, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	resp.decode(t, &flags)
	assert.True(t, flags["anonymous_views"])
	assert.False(t, flags["activity_push"])
}

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"user_id", "user ID"},
		{"commentId", "comment ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

func TestSwaggerDocCoversAPIRoutes(t *testing.T) {
	e := newTestEnv(t, "")

	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	undocumented := map[string]bool{"/": true, "/metrics/dashboard": true, "/swagger/*": true}
	for _, r := range e.app.GetRoutes(true) {
		switch r.Method {
		case fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete:
		default:
			continue
		}
		if !strings.HasPrefix(r.Path, "/api/") {
			continue
		}
		path := strings.TrimPrefix(r.Path, "/api")
		if path != "/" {
			path = strings.TrimSuffix(path, "/")
		}
		if undocumented[path] {
			continue
		}
		path = strings.ReplaceAll(path, ":id", "{id}")

		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "%s %s is not documented", r.Method, r.Path) {
			assert.Contains(t, ops, strings.ToLower(r.Method), "%s %s is not documented", r.Method, r.Path)
		}
	}
}
