package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"flynext/config"

	"github.com/golang-jwt/jwt"
)

// TokenPayload is the identity carried by both access and refresh tokens.
type TokenPayload struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expiresAt"`
}

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("token secret not configured")
)

func accessSecret() []byte {
	return []byte(config.AppConfig.AccessTokenSecret)
}

func refreshSecret() []byte {
	return []byte(config.AppConfig.RefreshTokenSecret)
}

// AccessTokenTTL returns the configured access token lifetime.
func AccessTokenTTL() time.Duration {
	return ParseExpiryOr(config.AppConfig.AccessTokenExpiry, 15*time.Minute)
}

// RefreshTokenTTL returns the configured refresh token lifetime.
func RefreshTokenTTL() time.Duration {
	return ParseExpiryOr(config.AppConfig.RefreshTokenExpiry, 7*24*time.Hour)
}

func generateToken(id, email, role string, ttl time.Duration, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}
	now := time.Now()
	exp := now.Add(ttl).Unix()
	claims := jwt.MapClaims{
		"id":        id,
		"sub":       id,
		"email":     email,
		"role":      role,
		"expiresAt": exp,
		"iat":       now.Unix(),
		"exp":       exp,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GenerateAccessToken signs a short-lived token for the given identity.
func GenerateAccessToken(id, email, role string) (string, error) {
	return generateToken(id, email, role, AccessTokenTTL(), accessSecret())
}

// GenerateRefreshToken signs a long-lived token used only by the refresh endpoint.
func GenerateRefreshToken(id, email, role string) (string, error) {
	return generateToken(id, email, role, RefreshTokenTTL(), refreshSecret())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func validateToken(tokenString string, secret []byte) (*TokenPayload, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	var exp int64
	if v, ok := claims["exp"].(float64); ok {
		exp = int64(v)
	}
	return &TokenPayload{ID: id, Email: email, Role: role, ExpiresAt: exp}, nil
}

// VerifyAccessToken returns the payload of a valid, unexpired access token.
func VerifyAccessToken(tokenString string) (*TokenPayload, error) {
	return validateToken(tokenString, accessSecret())
}

// VerifyRefreshToken returns the payload of a valid, unexpired refresh token.
func VerifyRefreshToken(tokenString string) (*TokenPayload, error) {
	return validateToken(tokenString, refreshSecret())
}
