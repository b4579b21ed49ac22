package handlers

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ovenbird/bakehouse/internal/hash"
	"github.com/ovenbird/bakehouse/internal/models"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
}

// Login issues the bearer token the back-office client attaches to every
// request. There is no refresh flow; the token simply expires.
func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid login request")
	}

	var user models.AdminUser
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return errorResponse(c, http.StatusUnauthorized, "invalid username or password")
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return errorResponse(c, http.StatusUnauthorized, "invalid username or password")
	}

	exp := time.Now().Add(12 * time.Hour)
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"exp":      exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.JWTSecret)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "could not create token")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":    signed,
		"username": user.Username,
	})
}

// EnsureAdmin seeds the initial back-office account when one is configured
// and missing. Called once at server start.
func EnsureAdmin(db *gorm.DB, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	var existing models.AdminUser
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil
	}
	pwhash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	return db.Create(&models.AdminUser{Username: username, PasswordHash: pwhash}).Error
}
