package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/collabsphere/collabsphere/internal/auth"
	"github.com/collabsphere/collabsphere/internal/store"
	"github.com/collabsphere/collabsphere/internal/types"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthenticatedUser struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

var errNoToken = errors.New("Authorization token is required")

// tokenFromRequest prefers the Authorization header and falls back to the
// session cookie set at login.
func tokenFromRequest(ctx *gin.Context) (string, error) {
	if authHeader := ctx.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", errors.New("Authorization header format must be Bearer {token}")
		}
		return parts[1], nil
	}

	if cookie, err := ctx.Cookie(types.TokenCookieName); err == nil && cookie != "" {
		return cookie, nil
	}

	return "", errNoToken
}

func authenticate(ctx *gin.Context, users *store.UserStore) (int, error) {
	tokenString, err := tokenFromRequest(ctx)
	if err != nil {
		return http.StatusUnauthorized, err
	}

	userID, err := auth.UserIDFromToken(tokenString)
	if err != nil {
		return http.StatusUnauthorized, errors.New("Invalid or expired token")
	}

	user, err := users.Get(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusUnauthorized, errors.New("User not found")
		}
		return http.StatusInternalServerError, errors.New("Internal server error")
	}

	ctx.Set(types.ContextUserKey, AuthenticatedUser{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
	return http.StatusOK, nil
}

func AuthMiddleware(users *store.UserStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if status, err := authenticate(ctx, users); err != nil {
			ctx.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "kind": "unauthorized"})
			return
		}
		ctx.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and lets
// anonymous requests through.
func OptionalAuth(users *store.UserStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		_, _ = authenticate(ctx, users)
		ctx.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)
		user, ok := value.(AuthenticatedUser)
		if !exists || !ok || !user.IsAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required", "kind": "forbidden"})
			return
		}
		ctx.Next()
	}
}
