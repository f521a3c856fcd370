package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/supply-portal/internal/observability"
	"github.com/spec-kit/supply-portal/internal/session"
	apperrors "github.com/spec-kit/supply-portal/pkg/util/errorutil"
)

func newTestApp(t *testing.T, opts ...session.MemoryOption) (*fiber.App, *session.Authenticator, *observability.Metrics) {
	t.Helper()
	authenticator := session.NewAuthenticator(session.NewMemoryStore(opts...), nil, nil)
	metrics := observability.NewMetrics()
	mw := NewAuthMiddleware(authenticator, metrics, nil)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Get("/any", mw.Handle, RequireAnyRole(), func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.SendString(p.Owner.Username)
	})
	app.Get("/admin", mw.Handle, RequireAdmin(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/user", mw.Handle, RequireUser(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app, authenticator, metrics
}

func doGet(t *testing.T, app *fiber.App, path, header string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestMiddlewareRejectsBadCredentials(t *testing.T) {
	app, _, metrics := newTestApp(t)

	assert.Equal(t, http.StatusUnauthorized, doGet(t, app, "/any", ""))
	assert.Equal(t, http.StatusUnauthorized, doGet(t, app, "/any", "Basic abc"))
	assert.Equal(t, http.StatusUnauthorized, doGet(t, app, "/any", "abc"))
	assert.Equal(t, http.StatusUnauthorized, doGet(t, app, "/any", "Bearer nope"))

	// one series per reason: missing, scheme, malformed, invalid_or_expired
	series, err := testutil.GatherAndCount(metrics.Registry(), "auth_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 4, series)
}

func TestMiddlewareRoles(t *testing.T) {
	app, authenticator, _ := newTestApp(t)
	ctx := context.Background()

	admin, err := authenticator.Issue(ctx, session.Owner{Kind: session.OwnerAdmin, ID: "admin", Username: "root"}, time.Minute)
	require.NoError(t, err)
	user, err := authenticator.Issue(ctx, session.Owner{Kind: session.OwnerUser, ID: "u1", Username: "ivan"}, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doGet(t, app, "/any", "Bearer "+user.Token))
	assert.Equal(t, http.StatusOK, doGet(t, app, "/admin", "bearer "+admin.Token))
	assert.Equal(t, http.StatusForbidden, doGet(t, app, "/admin", "Bearer "+user.Token))
	assert.Equal(t, http.StatusOK, doGet(t, app, "/user", "Bearer "+user.Token))
	assert.Equal(t, http.StatusForbidden, doGet(t, app, "/user", "Bearer "+admin.Token))
}

func TestMiddlewareRejectsExpiredSession(t *testing.T) {
	issuedAt := func() time.Time { return time.Now().Add(-time.Hour) }
	app, authenticator, _ := newTestApp(t, session.WithClock(issuedAt))

	sess, err := authenticator.Issue(context.Background(), session.Owner{Kind: session.OwnerUser, ID: "u1"}, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doGet(t, app, "/any", "Bearer "+sess.Token))
}
