package service

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/taskvault/todo-api/internal/core/domain"
)

// JWTCodec signs HS256 tokens over the claims {_id, access}. Tokens carry no
// expiry claim: removal from the user's stored token list is the only way a
// token dies.
type JWTCodec struct {
	secret []byte
}

func NewJWTCodec(secret string) *JWTCodec {
	return &JWTCodec{secret: []byte(secret)}
}

func (c *JWTCodec) Issue(userID, purpose string) (string, error) {
	claims := jwt.MapClaims{
		"_id":    userID,
		"access": purpose,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify returns the embedded user id and purpose. Every failure mode —
// malformed token, wrong algorithm, bad signature, missing claims — collapses
// into domain.ErrInvalidSignature.
func (c *JWTCodec) Verify(token string) (string, string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", "", domain.ErrInvalidSignature
	}

	userID, _ := claims["_id"].(string)
	purpose, _ := claims["access"].(string)
	if userID == "" || purpose == "" {
		return "", "", domain.ErrInvalidSignature
	}
	return userID, purpose, nil
}
