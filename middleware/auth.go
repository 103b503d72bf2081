package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/luxemarket/storefront-api/config"
	"github.com/luxemarket/storefront-api/models"
)

// RequireAdmin gates a route on a valid admin bearer token. Missing token
// is 401; unknown or expired is 403, and expired rows are deleted on the
// way out. Websocket clients cannot set headers, so a "token" query
// parameter is accepted as a fallback.
func RequireAdmin(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing admin token"})
			return
		}

		if cfg.AdminTokenMode == config.TokenModeJWT {
			username, err := parseAdminJWT(token, cfg.JWTSecret)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
				return
			}
			c.Set("admin_user", username)
			c.Next()
			return
		}

		var row models.AdminToken
		if err := db.Where("token = ?", token).First(&row).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid admin token"})
			return
		}
		if row.Expired(time.Now()) {
			// Lazy cleanup; a concurrent double-delete is harmless.
			db.Where("token = ?", token).Delete(&models.AdminToken{})
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Expired admin token"})
			return
		}

		c.Set("admin_user", row.Username)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Query("token")
}

func parseAdminJWT(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	if role, _ := claims["role"].(string); role != "admin" {
		return "", errors.New("not an admin token")
	}
	username, _ := claims["username"].(string)
	return username, nil
}
