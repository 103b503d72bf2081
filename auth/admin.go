package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/luxemarket/storefront-api/config"
	"github.com/luxemarket/storefront-api/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler verifies the configured admin credentials and issues a
// bearer token. The stateful mode persists a revocable token row; the jwt
// mode signs a stateless token the way the first deployment of this API
// did.
func LoginHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
			return
		}

		if cfg.AdminUsername == "" || cfg.AdminPasswordHash == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin credentials not configured"})
			return
		}

		userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(cfg.AdminUsername)) == 1
		passErr := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(req.Password))
		if !userOK || passErr != nil {
			// Deliberately the same message for unknown user and bad password.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		var token string
		if cfg.AdminTokenMode == config.TokenModeJWT {
			signed, err := IssueAdminJWT(cfg, req.Username)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
				return
			}
			token = signed
		} else {
			opaque, err := newOpaqueToken(req.Username, cfg.JWTSecret)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
				return
			}
			row := models.AdminToken{
				Token:     opaque,
				Username:  req.Username,
				ExpiresAt: time.Now().Add(cfg.AdminTokenTTL),
			}
			if err := db.Create(&row).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist token"})
				return
			}
			token = opaque
		}

		c.JSON(http.StatusOK, gin.H{
			"token":     token,
			"expiresIn": int(cfg.AdminTokenTTL.Seconds()),
			"message":   "Login successful",
		})
	}
}

// IssueAdminJWT signs a stateless admin token with the server secret.
func IssueAdminJWT(cfg *config.Config, username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"role":     "admin",
		"exp":      time.Now().Add(cfg.AdminTokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// newOpaqueToken hashes fresh randomness into a 64-char hex string, so the
// stored value never reveals its inputs.
func newOpaqueToken(username, secret string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s|%s", username, time.Now().UnixNano(), hex.EncodeToString(buf), secret)))
	return hex.EncodeToString(sum[:]), nil
}
