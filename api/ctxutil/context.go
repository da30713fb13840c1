package ctxutil

import (
	"context"

	"github.com/Gift5848/gethub222-sub001/api/response"
	"github.com/Gift5848/gethub222-sub001/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}
func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
