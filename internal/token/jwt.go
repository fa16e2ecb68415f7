package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/auxesia/auxesia-server/internal/model"
)

// Claims represents the JWT payload: the subject email plus a superuser
// snapshot. No expiry claim is set: tokens stay valid until the signing
// secret rotates, matching the stateless bearer design.
type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	Superuser bool   `json:"superuser,omitempty"`
}

// JWT implements model.TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) model.TokenManager {
	return &JWT{secretKey: secretKey}
}

// Issue signs the claims with HS256.
func (j *JWT) Issue(claims model.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:     claims.Email,
		Superuser: claims.Superuser,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Decode validates the signature and shape of a token and extracts the
// claims. Wrong algorithm, bad signature, malformed payload and a missing
// email claim all come back as model.ErrInvalidToken. Account state is
// not checked here.
func (j *JWT) Decode(tokenString string) (model.Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.Claims{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	if !token.Valid {
		return model.Claims{}, model.ErrInvalidToken
	}
	if claims.Email == "" {
		return model.Claims{}, fmt.Errorf("%w: email claim missing", model.ErrInvalidToken)
	}

	return model.Claims{
		Email:     claims.Email,
		Superuser: claims.Superuser,
	}, nil
}
