package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager signs and validates the JWTs used by the API. The secret
// comes from config so each environment uses its own key.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    72 * time.Hour,
	}
}

// Generate creates a new JWT for a given user ID.
func (m *TokenManager) Generate(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,                        // subject is the user ID
		"exp": time.Now().Add(m.ttl).Unix(),  // expires in 3 days
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Validate parses and validates a JWT token string.
// It returns the user ID (subject) if the token is valid.
func (m *TokenManager) Validate(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token was signed with the algorithm we use.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return 0, err // parsing failed (e.g., expired, malformed)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userIDFloat, ok := claims["sub"].(float64)
		if !ok {
			return 0, errors.New("invalid subject claim")
		}
		// JSON numbers decode as float64
		return int64(userIDFloat), nil
	}

	return 0, errors.New("invalid token")
}
