package band

import (
	"time"

	"github.com/256dpi/xo"
	"github.com/golang-jwt/jwt/v4"

	"github.com/256dpi/flock/roost"
)

type tokenClaims struct {
	jwt.RegisteredClaims
}

func generateToken(id roost.ID, secret []byte, issuedAt, expiresAt time.Time) (string, error) {
	// prepare claims
	claims := &tokenClaims{}
	claims.Subject = id.Hex()
	claims.IssuedAt = jwt.NewNumericDate(issuedAt)
	claims.ExpiresAt = jwt.NewNumericDate(expiresAt)

	// create token
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// sign token
	str, err := tkn.SignedString(secret)
	if err != nil {
		return "", xo.W(err)
	}

	return str, nil
}

func parseToken(str string, secret []byte) (roost.ID, error) {
	// parse token
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(str, &claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return roost.Z(), xo.W(err)
	}

	// parse id
	id, err := roost.FromHex(claims.Subject)
	if err != nil {
		return roost.Z(), xo.W(err)
	}

	return id, nil
}
