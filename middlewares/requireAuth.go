package middlewares

import (
	"net/http"

	"github.com/fireguard/cms-api/initializers"
	"github.com/gin-gonic/gin"
)

// RequireAuth rejects requests without a valid session cookie.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(SessionCookieName)
		if err != nil || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		claims, err := ParseSessionToken(initializers.Config.JWTSecret, token)
		if err != nil {
			initializers.Log.Debugw("rejected session token", "error", err)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Session is invalid or has expired"})
			return
		}

		ctx.Set(userContextKey, claims)
		ctx.Next()
	}
}

// CurrentUser returns the session claims set by RequireAuth.
func CurrentUser(ctx *gin.Context) (*SessionClaims, bool) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*SessionClaims)
	return claims, ok
}
