package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/havenlist/estate-api/internal/auth"
	"github.com/havenlist/estate-api/internal/utils"
)

// RefreshTokenHeader carries a silently renewed credential back to the
// client.  The renewed token never appears in a response body.
const RefreshTokenHeader = "x-refresh-token"

// renewalWindow is how much remaining validity triggers a renewal: a
// credential within 6 hours of expiry gets reissued on its next
// successful verification.
const renewalWindow = 21600 * time.Second

// Context keys under which the gate stores the decoded principal.
const (
	CtxUserID    = "user_id"
	CtxAdminID   = "admin_id"
	CtxPrincipal = "principal"
)

// RequireUser returns the identity gate for end-user credentials.
func RequireUser(codec *auth.Codec) echo.MiddlewareFunc {
	return requireKind(codec, auth.KindUser, CtxUserID)
}

// RequireAdmin returns the identity gate for administrator credentials.
// The two gates are structurally identical; only the kind (and therefore
// the verifying secret) differs.
func RequireAdmin(codec *auth.Codec) echo.MiddlewareFunc {
	return requireKind(codec, auth.KindAdmin, CtxAdminID)
}

// requireKind is the per-request authorization boundary.  It extracts the
// bearer credential, verifies it for the given kind, rejects on any
// failure, and on success attaches the principal to the context and may
// attach a renewed credential as a response header.  It never writes a
// response body on the success path.
func requireKind(codec *auth.Codec, kind auth.SubjectKind, ctxKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return utils.Fail(c, http.StatusUnauthorized,
					"authentication required", utils.CodeUnauthorized, "no token supplied")
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := codec.Verify(raw, kind)
			if err != nil {
				code := utils.CodeUnauthorized
				if errors.Is(err, auth.ErrMalformed) {
					code = utils.CodeMalformed
				}
				// The decode error is echoed back to the caller.
				return utils.Fail(c, http.StatusUnauthorized,
					"authentication failed", code, err.Error())
			}
			if claims.SubjectID == 0 {
				return utils.Fail(c, http.StatusUnauthorized,
					"authentication failed", utils.CodeUnauthorized, "invalid access")
			}

			now := time.Now().UTC()
			if claims.Expired(now) {
				return utils.Fail(c, http.StatusUnauthorized,
					"authentication failed", utils.CodeUnauthorized, "credential expired")
			}

			// Sliding renewal: reissue when the credential is close to
			// expiry so an active client never has to log in again.
			if claims.Remaining(now) <= renewalWindow {
				if fresh, err := codec.Issue(claims.SubjectID, kind, claims.Extra); err == nil {
					c.Response().Header().Set(RefreshTokenHeader, fresh)
				}
			}

			c.Set(ctxKey, claims.SubjectID)
			c.Set(CtxPrincipal, claims)
			return next(c)
		}
	}
}

// SubjectID returns the authenticated subject stored under the given
// context key, or 0 when the gate did not run.
func SubjectID(c echo.Context, ctxKey string) uint64 {
	if v, ok := c.Get(ctxKey).(uint64); ok {
		return v
	}
	return 0
}
