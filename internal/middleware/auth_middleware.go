package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"go-hrm/internal/identity"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware memverifikasi bearer token yang diterbitkan identity
// provider eksternal, lalu menaruh Actor tervalidasi di context.
// Penerbitan token bukan urusan service ini.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			code, msg := "INVALID_TOKEN", "Invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				code, msg = "TOKEN_EXPIRED", "Token has expired"
			}
			response.Error(c, http.StatusUnauthorized, code, msg, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		roleStr, _ := claims["role"].(string)
		role, ok := identity.ParseRole(roleStr)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Unknown role in token", nil)
			c.Abort()
			return
		}

		// employee_id boleh kosong (mis. user admin tanpa employee record)
		employeeID, _ := claims["employee_id"].(string)

		actor := identity.Actor{
			UserID:     userID,
			EmployeeID: employeeID,
			Role:       role,
		}

		c.Set("user_id", userID)
		c.Set("employee_id", employeeID)
		c.Set("role", string(role))

		ctx := contextutil.WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetActor mengambil actor hasil AuthMiddleware dari gin context.
func GetActor(c *gin.Context) (identity.Actor, bool) {
	return contextutil.GetActor(c.Request.Context())
}
