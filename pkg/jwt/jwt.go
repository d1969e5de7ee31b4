package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired el token tiene firma válida pero ya venció.
	ErrTokenExpired = errors.New("jwt: token expirado")
	// ErrTokenInvalid firma incorrecta, formato inválido o claims incompletos.
	ErrTokenInvalid = errors.New("jwt: token inválido")
	// ErrEmptySecret nunca se firma ni valida con secret vacío.
	ErrEmptySecret = errors.New("jwt: secret vacío")
)

// Claims incluye los claims estándar JWT más la identidad de la cuenta.
// Role viaja en el token para que RequireRole no consulte la DB; el middleware
// igualmente recarga la cuenta para comprobar que sigue activa.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Generate genera un token HS256 firmado con {id, email, role} y vigencia ttl.
func Generate(secret, accountID, email, role, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		AccountID: accountID,
		Email:     email,
		Role:      role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
// Devuelve ErrTokenExpired o ErrTokenInvalid (envueltos) según el caso.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.AccountID == "" || claims.Role == "" {
		return nil, fmt.Errorf("%w: claims incompletos", ErrTokenInvalid)
	}
	return claims, nil
}
