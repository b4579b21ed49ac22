package jwtmiddleware

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// Admin guards the back-office route group with the bearer token issued by
// /admin/login.
func Admin(secret []byte) echo.MiddlewareFunc {
	cfg := echojwt.WithConfig(echojwt.Config{
		SigningMethod: "HS256",
		ContextKey:    "admin",
		KeyFunc: func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		},
	})
	return cfg
}
