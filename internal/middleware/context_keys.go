package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
)

// actorCtxKey is the key used to store the authenticated actor in the request context.
const actorCtxKey = contextKey("actor")

// WithActor stores the authenticated actor in ctx.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey, actor)
}

// GetActorFromCtx retrieves the authenticated actor from a standard context.
func GetActorFromCtx(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey).(domain.Actor)
	if !ok || actor.UserID == "" {
		return domain.Actor{}, false
	}
	return actor, true
}

// GetActorFromContext retrieves the authenticated actor for a Gin request.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	return GetActorFromCtx(c.Request.Context())
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	actor, ok := GetActorFromContext(c)
	return actor.UserID, ok
}
