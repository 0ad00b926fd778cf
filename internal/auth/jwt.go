package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification tokens prove to the quote wizard that a phone number passed
// the OTP check. They are short-lived and carry nothing but the phone and
// country.

// TokenIssuer signs and validates phone-verification tokens.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates an issuer with the given signing secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// GenerateVerificationToken creates a signed token for a verified phone.
func (t *TokenIssuer) GenerateVerificationToken(phone, countryCode string) (string, error) {
	claims := jwt.MapClaims{
		"sub":     phone,
		"country": countryCode,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ValidateVerificationToken parses a token and returns the phone it vouches for.
func (t *TokenIssuer) ValidateVerificationToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		phone, ok := claims["sub"].(string)
		if !ok {
			return "", errors.New("invalid subject claim")
		}
		return phone, nil
	}

	return "", errors.New("invalid token")
}
