package utils

import (
	"encoding/json"

	"github.com/valyala/fasthttp"

	"task-tracker/internal/models"
)

// WriteJSON encodes a response envelope with the given status code.
func WriteJSON(ctx *fasthttp.RequestCtx, statusCode int, resp models.Response) {
	ctx.SetStatusCode(statusCode)
	ctx.SetContentType("application/json")
	if err := json.NewEncoder(ctx).Encode(resp); err != nil {
		LogError("Respond", "Failed to encode response", err)
	}
}

// WriteData writes a success envelope carrying a resource.
func WriteData(ctx *fasthttp.RequestCtx, statusCode int, data interface{}, message string) {
	WriteJSON(ctx, statusCode, models.Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// WriteList writes a success envelope carrying a collection and its count.
func WriteList(ctx *fasthttp.RequestCtx, statusCode int, data interface{}, count int) {
	WriteJSON(ctx, statusCode, models.Response{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

// WriteFailure writes a failure envelope with a human message and a stable
// machine-readable error code.
func WriteFailure(ctx *fasthttp.RequestCtx, statusCode int, message, errorCode string) {
	WriteJSON(ctx, statusCode, models.Response{
		Success: false,
		Message: message,
		Error:   errorCode,
	})
}
