package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identitydomain "github.com/Apurer/cafe-api/internal/domains/identity/domain"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestIssuer(t *testing.T, now time.Time) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(TokenConfig{Secret: testSecret}, WithClock(fixedClock(now)))
	require.NoError(t, err)
	return issuer
}

func TestNewTokenIssuer_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenIssuer(TokenConfig{Secret: []byte("short")})
	require.ErrorIs(t, err, ErrWeakSecret)
}

func TestIssueAndVerify(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(t, now)

	token, err := issuer.Issue(7, "ada@cafe.io", identitydomain.RoleCustomer)
	require.NoError(t, err)

	principal, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Principal{ID: 7, Email: "ada@cafe.io", Role: identitydomain.RoleCustomer}, principal)
	assert.Equal(t, DefaultTokenTTL, issuer.TTL())
}

func TestIssue_RejectsIncompleteSubject(t *testing.T) {
	issuer := newTestIssuer(t, time.Now())
	_, err := issuer.Issue(0, "ada@cafe.io", identitydomain.RoleCustomer)
	require.Error(t, err)
	_, err = issuer.Issue(1, "ada@cafe.io", identitydomain.RoleUnknown)
	require.Error(t, err)
}

func TestVerify_Expiry(t *testing.T) {
	issuedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	token, err := newTestIssuer(t, issuedAt).Issue(1, "a@b.com", identitydomain.RoleCustomer)
	require.NoError(t, err)

	_, err = newTestIssuer(t, issuedAt.Add(3599*time.Second)).Verify(token)
	require.NoError(t, err)

	_, err = newTestIssuer(t, issuedAt.Add(3601*time.Second)).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_FailsClosed(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(t, now)
	valid, err := issuer.Issue(1, "a@b.com", identitydomain.RoleAdmin)
	require.NoError(t, err)

	otherKey, err := NewTokenIssuer(TokenConfig{Secret: []byte(strings.Repeat("z", 32))}, WithClock(fixedClock(now)))
	require.NoError(t, err)
	foreign, err := otherKey.Issue(1, "a@b.com", identitydomain.RoleAdmin)
	require.NoError(t, err)

	otherIssuer, err := NewTokenIssuer(TokenConfig{Secret: testSecret, Issuer: "someone-else"}, WithClock(fixedClock(now)))
	require.NoError(t, err)
	wrongIss, err := otherIssuer.Issue(1, "a@b.com", identitydomain.RoleAdmin)
	require.NoError(t, err)

	claims := jwt.MapClaims{"uid": 1, "role": "ADMIN", "sub": "a@b.com", "iss": DefaultIssuer, "iat": now.Unix()}
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	claims["exp"] = now.Add(time.Hour).Unix()
	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims["role"] = "ROOT"
	unknownRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	cases := map[string]string{
		"empty":            "",
		"garbage":          "not-a-token",
		"foreign key":      foreign,
		"wrong issuer":     wrongIss,
		"missing expiry":   noExpiry,
		"wrong algorithm":  wrongAlg,
		"none algorithm":   unsigned,
		"unknown role":     unknownRole,
		"tampered payload": tampered,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			principal, err := issuer.Verify(token)
			require.ErrorIs(t, err, ErrInvalidToken)
			assert.Equal(t, Principal{}, principal)
		})
	}
}
