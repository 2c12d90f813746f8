package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gymadmin/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
}

type JWTCodec struct {
	secret []byte
}

// NewJWTCodec returns an implementation of both TokenIssuer and TokenVerifier
// that signs JWTs with HS256 using the given secret. The subject claim carries
// the user id; tenant and role ride as private claims.
func NewJWTCodec(secret string) *JWTCodec {
	return &JWTCodec{secret: []byte(secret)}
}

var (
	_ domain.TokenIssuer   = (*JWTCodec)(nil)
	_ domain.TokenVerifier = (*JWTCodec)(nil)
)

func (c *JWTCodec) Issue(claims domain.TokenClaims, expiry time.Duration) (string, error) {
	now := time.Now()
	payload := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		TenantID: claims.TenantID,
		Role:     claims.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (c *JWTCodec) Verify(tokenString string) (*domain.TokenClaims, error) {
	var payload jwtClaims
	token, err := jwt.ParseWithClaims(tokenString, &payload, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return &domain.TokenClaims{
		UserID:   payload.Subject,
		TenantID: payload.TenantID,
		Role:     payload.Role,
	}, nil
}
