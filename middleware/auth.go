package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ValidateToken guards endpoints that require a signed-in customer.
func ValidateToken(c *gin.Context) {
	userID, err := userIDFromHeader(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	c.Set("user_id", userID)
	c.Next()
}

// SessionKey resolves the durable cart slot for this request: the JWT
// user id when signed in, an explicit session header otherwise. Two tabs
// sharing a key race last-write-wins, same as the browser storage slot
// it replaces.
func SessionKey(c *gin.Context) {
	if userID, err := userIDFromHeader(c); err == nil {
		c.Set("session_key", "user:"+userID)
		c.Next()
		return
	}

	session := c.GetHeader("X-Session-ID")
	if session == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header or Authorization token required"})
		c.Abort()
		return
	}
	c.Set("session_key", "guest:"+session)
	c.Next()
}

func userIDFromHeader(c *gin.Context) (string, error) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		return "", errors.New("Authorization header is missing")
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("Invalid token claims")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", errors.New("Invalid token claims")
	}
	return userID, nil
}
