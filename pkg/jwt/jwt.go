// Package jwt emite y valida los tokens de acceso HS256 de la API.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret  = errors.New("jwt: secret vacío")
	ErrInvalidToken = errors.New("jwt: token inválido")
	ErrExpiredToken = errors.New("jwt: token expirado")
)

// leeway tolera desfase de reloj entre réplicas al validar exp/iat.
const leeway = 30 * time.Second

// Session identidad que viaja en el token. Role lo usa RequireRole sin consultar la DB.
type Session struct {
	UserID    string
	CompanyID string
	Role      string
}

// Claims payload firmado: el usuario va en sub.
type Claims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id"`
	Role      string `json:"role,omitempty"`
}

// Generate firma un token para la sesión con vigencia ttl. Un ttl negativo produce un
// token ya vencido (útil en tests).
func Generate(secret, issuer string, s Session, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	if s.UserID == "" || s.CompanyID == "" {
		return "", fmt.Errorf("jwt: sesión sin usuario o empresa")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		CompanyID: s.CompanyID,
		Role:      s.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma (solo HS256), vencimiento obligatorio y sub/company_id presentes.
// Los errores envuelven ErrExpiredToken o ErrInvalidToken.
func Parse(secret, tokenString string) (Session, error) {
	if secret == "" {
		return Session{}, ErrEmptySecret
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Session{}, fmt.Errorf("%w: %v", ErrExpiredToken, err)
	case err != nil:
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.CompanyID == "" {
		return Session{}, fmt.Errorf("%w: faltan sub o company_id", ErrInvalidToken)
	}
	return Session{UserID: claims.Subject, CompanyID: claims.CompanyID, Role: claims.Role}, nil
}
