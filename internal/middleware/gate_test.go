package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenlist/estate-api/internal/auth"
)

const (
	testUserSecret  = "gate-user-secret"
	testAdminSecret = "gate-admin-secret"
)

// signUserToken crafts a user-kind token with explicit issue/expiry times
// so renewal behavior can be tested at arbitrary points in the window.
func signUserToken(t *testing.T, sub uint64, iat, exp time.Time) string {
	t.Helper()
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"kind": string(auth.KindUser),
		"iat":  iat.Unix(),
		"exp":  exp.Unix(),
	})
	token, err := raw.SignedString([]byte(testUserSecret))
	require.NoError(t, err)
	return token
}

// callUserGate sends one request through the user gate and records the result.
func callUserGate(t *testing.T, codec *auth.Codec, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/properties", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	invoked := false
	h := RequireUser(codec)(func(c echo.Context) error {
		invoked = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, invoked
}

func TestGateMissingHeader(t *testing.T) {
	codec := auth.NewCodec(testUserSecret, testAdminSecret)

	rec, invoked := callUserGate(t, codec, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, invoked)
}

func TestGateMalformedToken(t *testing.T) {
	codec := auth.NewCodec(testUserSecret, testAdminSecret)

	rec, invoked := callUserGate(t, codec, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, invoked)
}

func TestGateRejectsAdminTokenOnUserGate(t *testing.T) {
	codec := auth.NewCodec(testUserSecret, testAdminSecret)
	adminToken, err := codec.Issue(3, auth.KindAdmin, nil)
	require.NoError(t, err)

	rec, invoked := callUserGate(t, codec, "Bearer "+adminToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, invoked)
}

func TestGateRejectsExpiredToken(t *testing.T) {
	codec := auth.NewCodec(testUserSecret, testAdminSecret)
	now := time.Now().UTC()
	token := signUserToken(t, 8, now.Add(-25*time.Hour), now.Add(-time.Hour))

	rec, invoked := callUserGate(t, codec, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, invoked)
}

func TestGateRejectsMissingSubject(t *testing.T) {
	codec := auth.NewCodec(testUserSecret, testAdminSecret)
	now := time.Now().UTC()
	token := signUserToken(t, 0, now, now.Add(auth.TokenTTL))

	rec, invoked := callUserGate(t, codec, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, invoked)
}

func TestGatePassesFreshToken(t *testing.T) {
	codec := auth.NewCodec(testUserSecret, testAdminSecret)
	token, err := codec.Issue(11, auth.KindUser, nil)
	require.NoError(t, err)

	rec, invoked := callUserGate(t, codec, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, invoked)
	// issued 24h window, nowhere near expiry: no renewal
	assert.Empty(t, rec.Header().Get(RefreshTokenHeader))
}

func TestGateRenewsNearExpiry(t *testing.T) {
	codec := auth.NewCodec(testUserSecret, testAdminSecret)
	now := time.Now().UTC()
	// issued 23h50m ago with a 24h window: 10 minutes remaining
	token := signUserToken(t, 11, now.Add(-23*time.Hour-50*time.Minute), now.Add(10*time.Minute))

	rec, invoked := callUserGate(t, codec, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, invoked)

	renewed := rec.Header().Get(RefreshTokenHeader)
	require.NotEmpty(t, renewed)

	// the renewed credential is for the same subject with a full window
	claims, err := codec.Verify(renewed, auth.KindUser)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), claims.SubjectID)
	assert.Greater(t, claims.Remaining(now), 23*time.Hour)
}

func TestGateNoRenewalWithPlentyOfTimeLeft(t *testing.T) {
	codec := auth.NewCodec(testUserSecret, testAdminSecret)
	now := time.Now().UTC()
	// issued 30 minutes ago: 23h30m remaining
	token := signUserToken(t, 11, now.Add(-30*time.Minute), now.Add(23*time.Hour+30*time.Minute))

	rec, invoked := callUserGate(t, codec, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, invoked)
	assert.Empty(t, rec.Header().Get(RefreshTokenHeader))
}

func TestGateStoresPrincipalInContext(t *testing.T) {
	codec := auth.NewCodec(testUserSecret, testAdminSecret)
	token, err := codec.Issue(21, auth.KindUser, nil)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequireUser(codec)(func(c echo.Context) error {
		assert.Equal(t, uint64(21), SubjectID(c, CtxUserID))
		claims, ok := c.Get(CtxPrincipal).(auth.Claims)
		require.True(t, ok)
		assert.Equal(t, auth.KindUser, claims.Kind)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
