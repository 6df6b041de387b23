package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-signing-key-0123456789abcdef"

func newTestCodec(ttl time.Duration) *Codec {
	return NewCodec(testKey, ttl)
}

func TestCodec_IssueAndVerify(t *testing.T) {
	codec := newTestCodec(24 * time.Hour)

	token, err := codec.IssueToken("alice@example.com", []string{"ROLE_USER"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, codec.VerifyToken(token, "alice@example.com"))

	claims, err := codec.ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, []string{"ROLE_USER"}, claims.Roles)
	assert.Equal(t, 24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt))
	assert.Zero(t, claims.IssuedAt.Nanosecond(), "timestamps are whole seconds")
}

func TestCodec_SubjectBinding(t *testing.T) {
	codec := newTestCodec(time.Hour)

	token, err := codec.IssueToken("alice@example.com", nil)
	require.NoError(t, err)

	assert.False(t, codec.VerifyToken(token, "mallory@example.com"))
	assert.False(t, codec.VerifyToken(token, ""))
}

func TestCodec_MonotonicExpiry(t *testing.T) {
	codec := newTestCodec(time.Hour)
	issuedAt := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	codec.now = func() time.Time { return issuedAt }
	token, err := codec.IssueToken("alice@example.com", nil)
	require.NoError(t, err)

	// Still valid just before expiry.
	codec.now = func() time.Time { return issuedAt.Add(time.Hour - time.Second) }
	assert.True(t, codec.VerifyToken(token, "alice@example.com"))

	// Invalid from expiry onwards, and stays invalid.
	for _, after := range []time.Duration{time.Hour + time.Second, 2 * time.Hour, 240 * time.Hour} {
		codec.now = func() time.Time { return issuedAt.Add(after) }
		assert.False(t, codec.VerifyToken(token, "alice@example.com"), "token must stay expired at +%s", after)

		_, err := codec.ParseClaims(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	}
}

func TestCodec_TamperedSignature(t *testing.T) {
	codec := newTestCodec(time.Hour)

	token, err := codec.IssueToken("alice@example.com", []string{"ROLE_USER"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := parts[2]
	for i := range sig {
		mutated := []byte(sig)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if string(mutated) == sig {
			continue
		}
		tampered := parts[0] + "." + parts[1] + "." + string(mutated)

		assert.False(t, codec.VerifyToken(tampered, "alice@example.com"),
			"mutation at signature byte %d must fail verification", i)
		_, err := codec.ParseClaims(tampered)
		assert.Error(t, err)
	}
}

func TestCodec_TamperedPayload(t *testing.T) {
	codec := newTestCodec(time.Hour)

	token, err := codec.IssueToken("alice@example.com", []string{"ROLE_USER"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Re-issue for another subject and graft its payload onto the original
	// signature.
	other, err := codec.IssueToken("mallory@example.com", []string{"ROLE_USER"})
	require.NoError(t, err)
	otherParts := strings.Split(other, ".")

	grafted := parts[0] + "." + otherParts[1] + "." + parts[2]
	assert.False(t, codec.VerifyToken(grafted, "mallory@example.com"))

	_, err = codec.ParseClaims(grafted)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestCodec_WrongKey(t *testing.T) {
	codec := newTestCodec(time.Hour)
	otherCodec := NewCodec("another-key-entirely", time.Hour)

	token, err := otherCodec.IssueToken("alice@example.com", nil)
	require.NoError(t, err)

	_, err = codec.ParseClaims(token)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
	assert.False(t, codec.VerifyToken(token, "alice@example.com"))
}

func TestCodec_Malformed(t *testing.T) {
	codec := newTestCodec(time.Hour)

	for _, tokenString := range []string{
		"",
		"garbage",
		"a.b",
		"a.b.c.d",
		"!!!.###.$$$",
	} {
		_, err := codec.ParseClaims(tokenString)
		assert.ErrorIs(t, err, ErrMalformedToken, "input %q", tokenString)
		assert.False(t, codec.VerifyToken(tokenString, "alice@example.com"))
	}
}

func TestCodec_IncompleteClaims(t *testing.T) {
	codec := newTestCodec(time.Hour)
	expiry := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name   string
		claims jwt.RegisteredClaims
	}{
		{
			// The claim set is otherwise valid and correctly signed, so
			// the miss must be caught after verification, not panic.
			name:   "missing issued-at",
			claims: jwt.RegisteredClaims{Subject: "alice@example.com", ExpiresAt: expiry},
		},
		{
			name: "missing subject",
			claims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: expiry,
			},
		},
		{
			name:   "missing expiry",
			claims: jwt.RegisteredClaims{Subject: "alice@example.com", IssuedAt: jwt.NewNumericDate(time.Now())},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims).
				SignedString([]byte(testKey))
			require.NoError(t, err)

			_, err = codec.ParseClaims(token)
			assert.ErrorIs(t, err, ErrMalformedToken)
			assert.False(t, codec.VerifyToken(token, "alice@example.com"))
		})
	}
}

func TestCodec_RejectsOtherSigningMethods(t *testing.T) {
	codec := newTestCodec(time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   "alice@example.com",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	// HS512 with the right key: the MAC itself checks out, but the method
	// is not HS256 and must be refused before any comparison is trusted.
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).
		SignedString([]byte(testKey))
	require.NoError(t, err)

	_, err = codec.ParseClaims(hs512)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
	assert.False(t, codec.VerifyToken(hs512, "alice@example.com"))

	// alg "none" strips the signature entirely.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.ParseClaims(unsigned)
	assert.Error(t, err)
	assert.False(t, codec.VerifyToken(unsigned, "alice@example.com"))
}

func TestCodec_ExtractSubject(t *testing.T) {
	codec := newTestCodec(time.Hour)

	token, err := codec.IssueToken("alice@example.com", nil)
	require.NoError(t, err)

	subject, err := codec.ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)

	// ExtractSubject does not validate the signature; a tampered signature
	// still yields the embedded subject. It is only used after ParseClaims.
	tampered := token[:len(token)-2] + "xx"
	subject, err = codec.ExtractSubject(tampered)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)

	_, err = codec.ExtractSubject("garbage")
	assert.ErrorIs(t, err, ErrMalformedToken)
}
