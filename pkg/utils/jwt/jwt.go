package jwt

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/vihackerframework/vihacker-go/pkg/exception"
)

const ClaimsKey = "claims"

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Id       int    `json:"id"`
	jwt.RegisteredClaims
}

var jwtSecret = randomSecret()

// SetSecret replaces the signing secret. An empty secret keeps the random one
// generated at startup, which only lives in memory.
func SetSecret(secret string) {
	if len(secret) > 0 {
		jwtSecret = []byte(secret)
	}
}

func randomSecret() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

func GenerateToken(username, role string, id int, issuer string, t time.Duration) (string, error) {
	clims := Claims{
		username,
		role,
		id,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, clims)
	return tokenClaims.SignedString(jwtSecret)
}

func ParseToken(token string) (*Claims, error) {
	tokenClaims, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if clims, ok := tokenClaims.Claims.(*Claims); ok && tokenClaims.Valid {
		return clims, nil
	}
	return nil, errors.New("invalid token")
}

// JWT rejects requests without a valid "Authorization: Bearer" token and
// stores the claims under ClaimsKey.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if len(token) == 0 {
			_ = c.Error(exception.NewAuth("missing token", nil))
			c.Abort()
			return
		}

		claims, err := ParseToken(token)
		if err != nil {
			_ = c.Error(exception.NewAuth("invalid or expired token", err))
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole must run after JWT.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*Claims)
		if !ok || claims.Role != role {
			_ = c.Error(exception.NewAccessDenied("role " + role + " required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
