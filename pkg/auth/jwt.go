package auth

import (
	"errors"
	"os"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Sub   string `json:"sub"`
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

var secretKey []byte

// SetSecret installs the signing key from config. Without it the package
// falls back to the JWT_SECRET environment variable.
func SetSecret(s string) { secretKey = []byte(s) }

func secret() []byte {
	if len(secretKey) > 0 {
		return secretKey
	}
	return []byte(os.Getenv("JWT_SECRET"))
}

func CreateToken(sub, role, email string, ttl time.Duration) (string, error) {
	claims := Claims{
		Sub:   sub,
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

func ParseValidate(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}
	return c, nil
}
