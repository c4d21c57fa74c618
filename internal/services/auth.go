package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"task-tracker/internal/utils"
)

// Token verification failures. The set is closed: every error path out of the
// JWT library is mapped onto one of these before a response is written.
var (
	ErrSecretNotConfigured = errors.New("jwt secret is not configured")
	ErrTokenExpired        = errors.New("token has expired")
	ErrInvalidSignature    = errors.New("token signature verification failed")
	ErrMalformedToken      = errors.New("malformed token")
	ErrMissingClaim        = errors.New("token payload is missing the user identity")
	ErrInvalidToken        = errors.New("invalid token")
)

type AuthService struct {
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthService(secret string, expiration time.Duration) *AuthService {
	utils.LogSuccess("AuthService", "Authentication service initialised (token TTL: %v)", expiration)
	return &AuthService{
		jwtSecret:     secret,
		jwtExpiration: expiration,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.LogError("AuthService", "Failed to hash password", err)
		return "", err
	}
	return string(hashedPassword), nil
}

func (s *AuthService) CheckPasswordHash(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		utils.LogWarning("AuthService", "Password mismatch")
		return err
	}
	return nil
}

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateToken mints an HS256 token carrying the user id. An unset secret is
// a server configuration error, never silently tolerated.
func (s *AuthService) GenerateToken(userID string) (string, error) {
	if s.jwtSecret == "" {
		utils.LogError("AuthService", "JWT secret is not configured", nil)
		return "", ErrSecretNotConfigured
	}

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		utils.LogError("AuthService", "Failed to sign token", err)
		return "", err
	}

	utils.LogDebug("AuthService", "Token issued for user: %s", userID)
	return signedToken, nil
}

// ValidateToken verifies signature and expiry and decodes the claims. The
// secret check runs before any parsing so a misconfigured server is reported
// as such instead of as an authentication failure.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	if s.jwtSecret == "" {
		utils.LogError("AuthService", "JWT secret is not configured", nil)
		return nil, ErrSecretNotConfigured
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, mapJWTError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" {
		utils.LogWarning("AuthService", "Token verified but carries no user identity")
		return nil, ErrMissingClaim
	}

	utils.LogDebug("AuthService", "Token valid for user: %s", claims.UserID)
	return claims, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		utils.LogWarning("AuthService", "Malformed token rejected")
		return ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenExpired):
		utils.LogWarning("AuthService", "Expired token rejected")
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		utils.LogWarning("AuthService", "Token with invalid signature rejected")
		return ErrInvalidSignature
	default:
		utils.LogWarning("AuthService", "Token rejected: %v", err)
		return ErrInvalidToken
	}
}
