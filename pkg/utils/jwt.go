package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

// EditorClaims carries the opaque OSM credential pair for an editing
// session. The pair is passed through to the OSM gateway as-is and is
// never logged.
type EditorClaims struct {
	OsmToken  string `json:"osm_token"`
	OsmSecret string `json:"osm_secret"`
	jwt.RegisteredClaims
}

func CreateEditorToken(osmToken, osmSecret string, ttl time.Duration) (string, error) {
	claims := &EditorClaims{
		OsmToken:  osmToken,
		OsmSecret: osmSecret,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func ValidateEditorToken(tokenString string) (*EditorClaims, error) {
	claims := &EditorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
