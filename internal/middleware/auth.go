package middleware

import (
	"strings"

	"revhub/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// UserIDKey is the gin context key carrying the resolved user id.
	UserIDKey = "userID"
	// UserRoleKey carries the resolved user role.
	UserRoleKey = "userRole"
)

func parseToken(c *gin.Context, jwtSecret string) (jwt.MapClaims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	tokenStr := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	if typ, _ := claims["typ"].(string); typ != "access" {
		return nil, false
	}
	return claims, true
}

// RequireAuth resolves the authenticated user or rejects the request.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseToken(c, jwtSecret)
		if !ok {
			util.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		if sub, _ := claims["sub"].(string); sub != "" {
			c.Set(UserIDKey, sub)
		}
		if role, _ := claims["role"].(string); role != "" {
			c.Set(UserRoleKey, role)
		}
		c.Next()
	}
}

// OptionalAuth resolves the user when a valid token is present and lets
// the request through as anonymous otherwise.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseToken(c, jwtSecret); ok {
			if sub, _ := claims["sub"].(string); sub != "" {
				c.Set(UserIDKey, sub)
			}
		}
		c.Next()
	}
}

// RequireAPIKey guards machine endpoints (the trainer callback) with a
// shared credential instead of a user session.
func RequireAPIKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" || c.GetHeader("X-API-Key") != expected {
			util.Unauthorized(c, "valid API key required")
			c.Abort()
			return
		}
		c.Next()
	}
}
