package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTManager issues and validates operator bearer tokens. A token carries
// the admin ID as subject and the server-side session ID as jti.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
// A zero ttl issues tokens without an expiry claim.
func NewJWTManager(secret string, issuer string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Claims identifies the operator and session a token was issued for.
type Claims struct {
	AdminID   uuid.UUID
	SessionID uuid.UUID
}

// ExpiresAt returns the expiry of a token issued at issuedAt, or nil when
// tokens are unbounded.
func (m *JWTManager) ExpiresAt(issuedAt time.Time) *time.Time {
	if m.ttl <= 0 {
		return nil
	}
	exp := issuedAt.Add(m.ttl)
	return &exp
}

// GenerateAccessToken creates a signed HS256 JWT for the given admin and session.
func (m *JWTManager) GenerateAccessToken(adminID, sessionID uuid.UUID, issuedAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  adminID.String(),
		ID:       sessionID.String(),
		Issuer:   m.issuer,
		IssuedAt: jwt.NewNumericDate(issuedAt),
	}
	if exp := m.ExpiresAt(issuedAt); exp != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*exp)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken parses and validates a JWT access token.
func (m *JWTManager) ValidateAccessToken(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, errors.New("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer))
	if err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return Claims{}, errors.New("invalid token claims")
	}

	adminID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Claims{}, fmt.Errorf("invalid subject UUID: %w", err)
	}
	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return Claims{}, fmt.Errorf("invalid session UUID: %w", err)
	}

	return Claims{AdminID: adminID, SessionID: sessionID}, nil
}
