package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"innovation-gallery-backend/internal/config"
)

const (
	UserIDKey = "user_id"
	EmailKey  = "email"
	GroupsKey = "groups"
)

// User pool groups mirrored from the identity provider.
const (
	GroupAdmins    = "ADMINS"
	GroupModerator = "Moderator"
	GroupStudent   = "Student"
)

// AuthMiddleware validates the Supabase-issued HS256 JWT and stores the
// subject, email and group memberships on the request context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			c.Abort()
			return
		}

		claims, err := parseClaims(tokenString, cfg.SupabaseJWTSecret)
		if err != nil {
			errorMsg := err.Error()
			if strings.Contains(errorMsg, "signature is invalid") {
				errorMsg = "token signature is invalid - check JWT secret"
			} else if strings.Contains(errorMsg, "token is expired") {
				errorMsg = "token has expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "message": errorMsg})
			c.Abort()
			return
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user id in token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, sub)
		if email, ok := claims["email"].(string); ok {
			c.Set(EmailKey, email)
		}
		c.Set(GroupsKey, groupClaims(claims))
		c.Next()
	}
}

// OptionalAuth behaves like AuthMiddleware but lets unauthenticated requests
// through as guests. Handlers on guest-readable routes branch on the presence
// of UserIDKey.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := parseClaims(tokenString, cfg.SupabaseJWTSecret)
		if err != nil {
			// A bad token on a guest route is treated as no token at all.
			c.Next()
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set(UserIDKey, sub)
		}
		if email, ok := claims["email"].(string); ok {
			c.Set(EmailKey, email)
		}
		c.Set(GroupsKey, groupClaims(claims))
		c.Next()
	}
}

// RequireGroups rejects the request unless the caller belongs to at least one
// of the given groups. Must run after AuthMiddleware.
func RequireGroups(groups ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		memberships := ContextGroups(c)
		for _, required := range groups {
			for _, have := range memberships {
				if have == required {
					c.Next()
					return
				}
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		c.Abort()
	}
}

// ContextGroups returns the caller's group memberships, or nil for guests.
func ContextGroups(c *gin.Context) []string {
	v, exists := c.Get(GroupsKey)
	if !exists {
		return nil
	}
	groups, _ := v.([]string)
	return groups
}

// IsStaff reports whether the caller is an admin or moderator.
func IsStaff(c *gin.Context) bool {
	for _, g := range ContextGroups(c) {
		if g == GroupAdmins || g == GroupModerator {
			return true
		}
	}
	return false
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", false
	}
	return tokenString, true
}

func parseClaims(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Supabase signs access tokens with HS256 (HMAC).
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		if secret == "" {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func groupClaims(claims jwt.MapClaims) []string {
	raw, ok := claims["groups"].([]interface{})
	if !ok {
		// Groups may also arrive nested under app_metadata.
		meta, ok := claims["app_metadata"].(map[string]interface{})
		if !ok {
			return nil
		}
		raw, ok = meta["groups"].([]interface{})
		if !ok {
			return nil
		}
	}

	groups := make([]string, 0, len(raw))
	for _, g := range raw {
		if s, ok := g.(string); ok {
			groups = append(groups, s)
		}
	}
	return groups
}
