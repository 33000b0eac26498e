package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pocket-planner/internal/model"
)

const userContextKey = "currentUser"

// requireAuth verifies the Bearer session token and stores the user on
// the request context.
func (a *API) requireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		user, err := a.auth.VerifyToken(ctx.Request.Context(), token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

// currentUser returns the authenticated user set by requireAuth.
func currentUser(ctx *gin.Context) *model.User {
	if v, ok := ctx.Get(userContextKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}
