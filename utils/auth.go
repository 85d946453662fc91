// utils/auth.go
package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Roles of the shared back-office sessions.
const (
	RoleAdmin  = "admin"
	RoleBarber = "barber"
)

// Generate JWT secret key (run once initially)
func GenerateJWTSecret() string {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate JWT secret")
	}
	return base64.StdEncoding.EncodeToString(key)
}

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken signs a session token for role.
func GenerateToken(role, secret string, expiryHours int) (string, error) {
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	if expiryHours <= 0 {
		expiryHours = 24
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  role,
		"role": role,
		"exp":  now.Add(time.Duration(expiryHours) * time.Hour).Unix(),
		"iat":  now.Unix(),
	})
	return token.SignedString([]byte(secret))
}

// AuthMiddleware accepts a bearer token signed with secret. When roles are
// given the token's role must be one of them.
func AuthMiddleware(secret string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			RespondWithError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
			tokenString = tokenString[7:]
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			RespondWithError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			RespondWithError(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}
		role, _ := claims["role"].(string)
		if len(roles) > 0 && !slices.Contains(roles, role) {
			RespondWithError(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
		c.Set("role", role)

		c.Next()
	}
}
