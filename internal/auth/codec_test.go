package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserSecret  = "user-secret-for-tests"
	testAdminSecret = "admin-secret-for-tests"
)

func newTestCodec() *Codec {
	return NewCodec(testUserSecret, testAdminSecret)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	cd := newTestCodec()

	token, err := cd.Issue(42, KindUser, nil)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := cd.Verify(token, KindUser)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.SubjectID)
	assert.Equal(t, KindUser, claims.Kind)
	assert.False(t, claims.Expired(time.Now().UTC()))
	assert.WithinDuration(t, claims.IssuedAt.Add(TokenTTL), claims.ExpiresAt, time.Second)
}

func TestIssueVerifyExtraClaims(t *testing.T) {
	cd := newTestCodec()

	extra := map[string]any{
		"email":       "admin@havenlist.test",
		"permissions": []string{"property:review"},
	}
	token, err := cd.Issue(7, KindAdmin, extra)
	require.NoError(t, err)

	claims, err := cd.Verify(token, KindAdmin)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.SubjectID)
	assert.Equal(t, "admin@havenlist.test", claims.Extra["email"])

	perms, ok := claims.Extra["permissions"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, "property:review", perms[0])
}

func TestKindSeparation(t *testing.T) {
	cd := newTestCodec()

	userToken, err := cd.Issue(1, KindUser, nil)
	require.NoError(t, err)
	adminToken, err := cd.Issue(1, KindAdmin, nil)
	require.NoError(t, err)

	_, err = cd.Verify(userToken, KindAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = cd.Verify(adminToken, KindUser)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerifyMalformed(t *testing.T) {
	cd := newTestCodec()

	_, err := cd.Verify("not-a-token", KindUser)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestVerifyWrongSecret(t *testing.T) {
	other := NewCodec("completely-different", testAdminSecret)
	token, err := other.Issue(9, KindUser, nil)
	require.NoError(t, err)

	_, err = newTestCodec().Verify(token, KindUser)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerifyExpiredStillDecodes(t *testing.T) {
	// Expiry is the caller's responsibility: a well-formed but expired
	// token must still decode so the gate can inspect its claims.
	now := time.Now().UTC()
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uint64(5),
		"kind": string(KindUser),
		"iat":  now.Add(-25 * time.Hour).Unix(),
		"exp":  now.Add(-time.Hour).Unix(),
	})
	token, err := raw.SignedString([]byte(testUserSecret))
	require.NoError(t, err)

	claims, err := newTestCodec().Verify(token, KindUser)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), claims.SubjectID)
	assert.True(t, claims.Expired(now))
}

func TestIssueUnknownKind(t *testing.T) {
	_, err := newTestCodec().Issue(1, SubjectKind("service"), nil)
	assert.ErrorIs(t, err, ErrUnknownKind)
}
