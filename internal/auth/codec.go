// Package auth implements the credential codec: signing and verifying the
// bearer tokens that represent an authenticated principal.  A credential is
// the session — nothing is persisted server-side and there is no revocation
// list; a token dies by expiry or client discard.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SubjectKind identifies which principal population a credential belongs to.
// Each kind is signed with its own secret, so a user token can never verify
// as an admin token and vice versa.
type SubjectKind string

const (
	KindUser  SubjectKind = "user"
	KindAdmin SubjectKind = "admin"
)

// TokenTTL is the fixed validity window of every issued credential.
const TokenTTL = 24 * time.Hour

var (
	// ErrInvalidCredential means the token parsed but did not verify under
	// the secret registered for the requested kind (wrong secret, wrong
	// kind, tampered payload).
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrMalformed means the token could not be parsed at all.
	ErrMalformed = errors.New("malformed credential")
	// ErrUnknownKind means no secret is registered for the requested kind.
	ErrUnknownKind = errors.New("unknown subject kind")
)

// Claims is the decoded content of a credential.  Expiry is deliberately NOT
// enforced here: an expired but well-formed token still decodes, and the
// caller decides what to do with it (the identity gate rejects expired
// tokens and uses IssuedAt/ExpiresAt for sliding renewal).
type Claims struct {
	SubjectID uint64
	Kind      SubjectKind
	Extra     map[string]any
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the credential is past its validity window.
func (c Claims) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Remaining returns how much of the validity window is left at now.
func (c Claims) Remaining(now time.Time) time.Duration {
	return c.ExpiresAt.Sub(now)
}

// Codec signs and verifies credentials.  Secrets are injected at
// construction so the codec is testable with fixture secrets instead of
// reading process environment ad hoc.
type Codec struct {
	secrets map[SubjectKind][]byte
	ttl     time.Duration
}

// NewCodec builds a codec holding one signing secret per principal kind.
func NewCodec(userSecret, adminSecret string) *Codec {
	return &Codec{
		secrets: map[SubjectKind][]byte{
			KindUser:  []byte(userSecret),
			KindAdmin: []byte(adminSecret),
		},
		ttl: TokenTTL,
	}
}

// Issue signs a credential for the subject with the fixed validity window.
// Extra claims are merged into the payload and recovered verbatim by Verify.
func (cd *Codec) Issue(subjectID uint64, kind SubjectKind, extra map[string]any) (string, error) {
	secret, ok := cd.secrets[kind]
	if !ok {
		return "", ErrUnknownKind
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  subjectID,
		"kind": string(kind),
		"iat":  now.Unix(),
		"exp":  now.Add(cd.ttl).Unix(),
	}
	for k, v := range extra {
		switch k {
		case "sub", "kind", "iat", "exp":
			// reserved claims are not overridable
		default:
			claims[k] = v
		}
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Verify checks the token's signature against the secret registered for the
// requested kind and returns the decoded claims.  Returns ErrMalformed when
// the token cannot be parsed and ErrInvalidCredential when the signature (or
// the embedded kind) does not match.  Expiry is not checked here.
func (cd *Codec) Verify(token string, kind SubjectKind) (Claims, error) {
	secret, ok := cd.secrets[kind]
	if !ok {
		return Claims{}, ErrUnknownKind
	}
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidCredential
	}
	if k, _ := mc["kind"].(string); k != string(kind) {
		return Claims{}, fmt.Errorf("%w: wrong subject kind", ErrInvalidCredential)
	}

	out := Claims{Kind: kind, Extra: map[string]any{}}
	switch sub := mc["sub"].(type) {
	case float64:
		// numeric JSON claims decode as float64
		out.SubjectID = uint64(sub)
	case string:
		if parsed, err := strconv.ParseUint(sub, 10, 64); err == nil {
			out.SubjectID = parsed
		}
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	for k, v := range mc {
		switch k {
		case "sub", "kind", "iat", "exp":
		default:
			out.Extra[k] = v
		}
	}
	return out, nil
}
