package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-tracker/internal/middleware"
	"task-tracker/internal/models"
	"task-tracker/internal/repository"
	"task-tracker/internal/services"
	"task-tracker/internal/utils"
)

const minPasswordLength = 6

// UserStore is the persistence surface the auth endpoints need.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type AuthHandler struct {
	authService *services.AuthService
	userStore   UserStore
}

func NewAuthHandler(authService *services.AuthService, userStore UserStore) *AuthHandler {
	utils.LogSuccess("AuthHandler", "Authentication handler initialised")
	return &AuthHandler{
		authService: authService,
		userStore:   userStore,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req models.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("AuthHandler", "Failed to parse register request", err)
		utils.WriteFailure(ctx, fasthttp.StatusBadRequest, "Invalid request body", "validation_error")
		return
	}

	req.Email = normalizeEmail(req.Email)

	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.WriteFailure(ctx, fasthttp.StatusBadRequest, "Name, email and password are required", "validation_error")
		return
	}
	if !strings.Contains(req.Email, "@") {
		utils.WriteFailure(ctx, fasthttp.StatusBadRequest, "Please provide a valid email address", "validation_error")
		return
	}
	if len(req.Password) < minPasswordLength {
		utils.WriteFailure(ctx, fasthttp.StatusBadRequest, "Password must be at least 6 characters", "validation_error")
		return
	}

	utils.LogInfo("AuthHandler", "Registering user: %s", req.Email)

	if _, err := h.userStore.GetByEmail(ctx, req.Email); err == nil {
		utils.LogWarning("AuthHandler", "Registration rejected, email taken: %s", req.Email)
		utils.WriteFailure(ctx, fasthttp.StatusBadRequest, "User already exists", "user_exists")
		return
	}

	passwordHash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		utils.WriteFailure(ctx, fasthttp.StatusInternalServerError, "Server Error", "registration_failed")
		return
	}

	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  passwordHash,
		CreatedAt: time.Now(),
	}

	if err := h.userStore.Create(ctx, user); err != nil {
		// The unique index catches the race the pre-check cannot.
		if errors.Is(err, repository.ErrUserExists) {
			utils.WriteFailure(ctx, fasthttp.StatusBadRequest, "User already exists", "user_exists")
			return
		}
		utils.LogError("AuthHandler", "Failed to create user", err)
		utils.WriteFailure(ctx, fasthttp.StatusInternalServerError, "Server Error", "registration_failed")
		return
	}

	token, err := h.authService.GenerateToken(user.ID.Hex())
	if err != nil {
		if errors.Is(err, services.ErrSecretNotConfigured) {
			utils.WriteFailure(ctx, fasthttp.StatusInternalServerError, "Server configuration error", "server_config_error")
			return
		}
		utils.WriteFailure(ctx, fasthttp.StatusInternalServerError, "Server Error", "registration_failed")
		return
	}

	utils.LogSuccess("AuthHandler", "User registered: %s (ID: %s)", user.Email, user.ID.Hex())

	utils.WriteJSON(ctx, fasthttp.StatusCreated, models.Response{
		Success: true,
		Token:   token,
		Message: "User registered successfully",
	})
}

// Login handles POST /api/auth/login. Unknown email and wrong password are
// indistinguishable on the wire.
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req models.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("AuthHandler", "Failed to parse login request", err)
		utils.WriteFailure(ctx, fasthttp.StatusBadRequest, "Invalid request body", "validation_error")
		return
	}

	req.Email = normalizeEmail(req.Email)
	utils.LogInfo("AuthHandler", "Login attempt: %s", req.Email)

	user, err := h.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		utils.LogWarning("AuthHandler", "Login failed, user not found: %s", req.Email)
		utils.WriteFailure(ctx, fasthttp.StatusBadRequest, "Invalid credentials", "invalid_credentials")
		return
	}

	if err := h.authService.CheckPasswordHash(req.Password, user.Password); err != nil {
		utils.LogWarning("AuthHandler", "Login failed, password mismatch: %s", req.Email)
		utils.WriteFailure(ctx, fasthttp.StatusBadRequest, "Invalid credentials", "invalid_credentials")
		return
	}

	token, err := h.authService.GenerateToken(user.ID.Hex())
	if err != nil {
		if errors.Is(err, services.ErrSecretNotConfigured) {
			utils.WriteFailure(ctx, fasthttp.StatusInternalServerError, "Server configuration error", "server_config_error")
			return
		}
		utils.WriteFailure(ctx, fasthttp.StatusInternalServerError, "Server Error", "login_failed")
		return
	}

	utils.LogSuccess("AuthHandler", "User logged in: %s (ID: %s)", user.Email, user.ID.Hex())

	utils.WriteJSON(ctx, fasthttp.StatusOK, models.Response{
		Success: true,
		Token:   token,
		Message: "Login successful",
	})
}

// Me handles GET /api/auth/me, returning the caller's profile.
func (h *AuthHandler) Me(ctx *fasthttp.RequestCtx) {
	userID, ok := ctx.UserValue(middleware.UserIDKey).(string)
	if !ok {
		utils.LogError("AuthHandler", "user_id missing from request context", nil)
		utils.WriteFailure(ctx, fasthttp.StatusUnauthorized, "Authentication required", "missing_token")
		return
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		utils.WriteFailure(ctx, fasthttp.StatusUnauthorized, "Authentication required", "invalid_token")
		return
	}

	user, err := h.userStore.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.WriteFailure(ctx, fasthttp.StatusNotFound, "User not found", "not_found")
			return
		}
		utils.LogError("AuthHandler", "Failed to load user profile", err)
		utils.WriteFailure(ctx, fasthttp.StatusInternalServerError, "Server Error", "profile_retrieval_failed")
		return
	}

	utils.WriteData(ctx, fasthttp.StatusOK, user, "User profile retrieved successfully")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
