package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	identitydomain "github.com/Apurer/cafe-api/internal/domains/identity/domain"
)

const (
	// DefaultTokenTTL is the lifetime of an issued token.
	DefaultTokenTTL = time.Hour
	// DefaultIssuer is written to and required in the iss claim.
	DefaultIssuer = "cafe-api"
	// MinSecretLength is the shortest HS256 key accepted.
	MinSecretLength = 32
)

var (
	// ErrInvalidToken is the only verification failure; callers cannot tell
	// a bad signature from an expired or malformed token.
	ErrInvalidToken = errors.New("invalid token")
	ErrWeakSecret   = fmt.Errorf("signing secret must be at least %d bytes", MinSecretLength)
)

// TokenConfig is the immutable signing configuration.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// Claims is the JWT payload. The subject carries the email.
type Claims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies tokens. It holds no mutable state after construction.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type IssuerOption func(*TokenIssuer)

// WithClock replaces the time source used for iat/exp and validation.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *TokenIssuer) {
		if now != nil {
			i.now = now
		}
	}
}

func NewTokenIssuer(cfg TokenConfig, opts ...IssuerOption) (*TokenIssuer, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	issuer := &TokenIssuer{
		secret: secret,
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
	if issuer.ttl <= 0 {
		issuer.ttl = DefaultTokenTTL
	}
	if issuer.issuer == "" {
		issuer.issuer = DefaultIssuer
	}
	for _, opt := range opts {
		if opt != nil {
			opt(issuer)
		}
	}
	return issuer, nil
}

// Issue signs a token for the identity valid from now until now+TTL.
func (i *TokenIssuer) Issue(id int64, email string, role identitydomain.Role) (string, error) {
	if id <= 0 || email == "" || !role.Valid() {
		return "", errors.New("token subject is incomplete")
	}
	now := i.now()
	claims := Claims{
		UserID: id,
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer, and expiry and returns the
// principal the token was issued to. Every failure is ErrInvalidToken.
func (i *TokenIssuer) Verify(token string) (Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(i.issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return Principal{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.UserID <= 0 || claims.Subject == "" {
		return Principal{}, ErrInvalidToken
	}
	role, err := identitydomain.ParseRole(claims.Role)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}
	return Principal{ID: claims.UserID, Email: claims.Subject, Role: role}, nil
}

// TTL reports the configured token lifetime.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}
