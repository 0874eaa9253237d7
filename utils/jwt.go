package utils

import (
	"errors"
	"time"

	"urbanset/config"

	"github.com/golang-jwt/jwt"
)

const devSecret = "urbanset-dev-secret"

var ErrInvalidToken = errors.New("invalid token")

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" && !config.IsProduction() {
		secret = devSecret
	}
	return []byte(secret)
}

// TokenClaims is the subset of claims the API relies on.
type TokenClaims struct {
	Subject string
	Role    string
}

// GenerateToken creates a signed HS256 token for the given subject and role.
func GenerateToken(subject, role string, duration time.Duration) (string, error) {
	key := secretKey()
	if len(key) == 0 {
		return "", errors.New("jwt secret is not configured")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ParseToken validates the token and extracts its subject and role.
func ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	role, _ := claims["role"].(string)

	return &TokenClaims{Subject: sub, Role: role}, nil
}
