package middleware

import (
	"errors"

	"github.com/valyala/fasthttp"

	"task-tracker/internal/models"
	"task-tracker/internal/services"
	"task-tracker/internal/utils"
)

// UserIDKey is the request-context key under which the authenticated user id
// is attached for downstream handlers.
const UserIDKey = "user_id"

const missingTokenHelp = "Include a token using one of these methods: x-auth-token header, Authorization Bearer header, token query parameter, token in request body, or token cookie"

type AuthMiddleware struct {
	authService *services.AuthService
}

func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	utils.LogSuccess("Middleware", "Authentication middleware initialised")
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireAuth gates a handler behind token authentication: locate a candidate
// token, verify it, attach the decoded identity, then hand over. Every failure
// terminates the request with exactly one envelope response.
func (m *AuthMiddleware) RequireAuth(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		token, source, ok := LocateToken(ctx)
		if !ok {
			utils.LogWarning("Middleware", "No token provided: %s %s", ctx.Method(), ctx.Path())
			writeAuthFailure(ctx, fasthttp.StatusUnauthorized,
				"Authentication token is required. Please provide a valid token.",
				"missing_token", missingTokenHelp)
			return
		}

		utils.LogDebug("Middleware", "Token found in %s", source)

		claims, err := m.authService.ValidateToken(token)
		if err != nil {
			statusCode, message, code := describeAuthError(err)
			writeAuthFailure(ctx, statusCode, message, code, "")
			return
		}

		ctx.SetUserValue(UserIDKey, claims.UserID)
		utils.LogDebug("Middleware", "Authenticated user: %s", claims.UserID)

		next(ctx)
	}
}

// describeAuthError maps a verifier error onto a status code, a display
// message and a stable machine-readable code. A missing secret is a server
// fault and must never surface as an authentication failure.
func describeAuthError(err error) (int, string, string) {
	switch {
	case errors.Is(err, services.ErrSecretNotConfigured):
		return fasthttp.StatusInternalServerError,
			"Server configuration error", "server_config_error"
	case errors.Is(err, services.ErrTokenExpired):
		return fasthttp.StatusUnauthorized,
			"Token has expired. Please login again.", "token_expired"
	case errors.Is(err, services.ErrInvalidSignature):
		return fasthttp.StatusUnauthorized,
			"Token signature verification failed. The token may have been tampered with.", "invalid_signature"
	case errors.Is(err, services.ErrMalformedToken):
		return fasthttp.StatusUnauthorized,
			"Malformed token. Please provide a valid JWT token.", "malformed_token"
	case errors.Is(err, services.ErrMissingClaim):
		return fasthttp.StatusUnauthorized,
			"Invalid token structure", "missing_claim"
	default:
		return fasthttp.StatusUnauthorized,
			"Invalid authentication token", "invalid_token"
	}
}

func writeAuthFailure(ctx *fasthttp.RequestCtx, statusCode int, message, code, help string) {
	utils.WriteJSON(ctx, statusCode, models.Response{
		Success: false,
		Message: message,
		Error:   code,
		Help:    help,
	})
}
