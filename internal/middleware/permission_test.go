package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenlist/estate-api/internal/auth"
)

func callPermission(t *testing.T, claims any, perm string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/v1/admin/properties/1/review", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(CtxPrincipal, claims)
	}

	invoked := false
	h := RequirePermission(perm)(func(c echo.Context) error {
		invoked = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, invoked
}

func TestPermissionNoPrincipal(t *testing.T) {
	rec, invoked := callPermission(t, nil, "property:review")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, invoked)
}

func TestPermissionUnrestrictedAdmin(t *testing.T) {
	// no permissions claim at all means unrestricted
	claims := auth.Claims{SubjectID: 1, Kind: auth.KindAdmin, Extra: map[string]any{}}

	rec, invoked := callPermission(t, claims, "property:review")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, invoked)
}

func TestPermissionListedAndGranted(t *testing.T) {
	claims := auth.Claims{SubjectID: 1, Kind: auth.KindAdmin, Extra: map[string]any{
		"permissions": []interface{}{"property:review", "user:ban"},
	}}

	rec, invoked := callPermission(t, claims, "property:review")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, invoked)
}

func TestPermissionListedAndDenied(t *testing.T) {
	claims := auth.Claims{SubjectID: 1, Kind: auth.KindAdmin, Extra: map[string]any{
		"permissions": []interface{}{"user:ban"},
	}}

	rec, invoked := callPermission(t, claims, "property:review")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, invoked)
}
