package identity

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

// decodeAccessToken verifies a provider-issued HS256 access token against
// the shared JWT secret and extracts the identity claims. Expiry and
// signature failures surface as *Error with status 401 so callers fail
// closed.
func decodeAccessToken(jwtSecret, tokenString string) (User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Verify signing algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &Error{Message: fmt.Sprintf("unexpected signing method: %v", token.Header["alg"]), StatusCode: http.StatusUnauthorized}
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return User{}, &Error{Message: "invalid access token", StatusCode: http.StatusUnauthorized}
	}
	if !token.Valid {
		return User{}, &Error{Message: "invalid access token", StatusCode: http.StatusUnauthorized}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return User{}, &Error{Message: "invalid token claims", StatusCode: http.StatusUnauthorized}
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return User{}, &Error{Message: "token has no subject", StatusCode: http.StatusUnauthorized}
	}

	user := User{Id: sub}
	if phone, ok := claims["phone"].(string); ok {
		user.Phone = phone
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
		user.Metadata = meta
	}
	return user, nil
}
