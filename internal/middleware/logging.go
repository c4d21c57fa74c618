package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"task-tracker/internal/utils"
)

// RequestIDKey is the request-context key holding the per-request id.
const RequestIDKey = "request_id"

// RequestLogger tags every request with a fresh id, echoes it back in the
// X-Request-ID header and logs method, path, status and duration.
func RequestLogger(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		startTime := time.Now()

		requestID := uuid.New().String()
		ctx.SetUserValue(RequestIDKey, requestID)
		ctx.Response.Header.Set("X-Request-ID", requestID)

		utils.LogRequest(requestID, string(ctx.Method()), string(ctx.Path()))

		next(ctx)

		utils.LogResponse(requestID, string(ctx.Path()), ctx.Response.StatusCode(), time.Since(startTime))
	}
}
