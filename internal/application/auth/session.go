package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of an access token issued by the hosted backend.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Session is the caller as seen by this API. Requests without a valid token
// get the anonymous session; access rules stay with the data store.
type Session struct {
	UserID    string     `json:"user_id,omitempty"`
	Email     string     `json:"email,omitempty"`
	Role      string     `json:"role"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Anonymous bool       `json:"anonymous"`
}

const RoleAnon = "anon"

func AnonymousSession() *Session {
	return &Session{Role: RoleAnon, Anonymous: true}
}

// ParseToken verifies an HS256 token signed with secret and returns its claims.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateToken signs a token for userID. The hosted backend issues real tokens;
// this one is for local development and tests.
func GenerateToken(secret, userID, email string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	now := time.Now()
	claims := &Claims{
		Email: email,
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// SessionFromHeader resolves the session for an Authorization header. A missing
// header is anonymous without error; a bad token is anonymous with the reason.
func SessionFromHeader(secret, header string) (*Session, error) {
	tok := BearerToken(header)
	if tok == "" {
		return AnonymousSession(), nil
	}
	claims, err := ParseToken(secret, tok)
	if err != nil {
		return AnonymousSession(), err
	}
	s := &Session{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}
	if claims.ExpiresAt != nil {
		t := claims.ExpiresAt.Time
		s.ExpiresAt = &t
	}
	return s, nil
}

// IsInvalidToken reports whether err came from a rejected token.
func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}
