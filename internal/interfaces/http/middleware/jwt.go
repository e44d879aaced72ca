package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sidequest/backend/internal/infrastructure/auth"
	"github.com/sidequest/backend/internal/infrastructure/logger"
	"github.com/sidequest/backend/internal/interfaces/http/dto"
)

const (
	// ContextKeyJWTClaims is the context key for validated JWT claims
	ContextKeyJWTClaims = "jwt_claims"
	// ContextKeyJWTUserID is the context key for the authenticated user ID
	ContextKeyJWTUserID = "jwt_user_id"
	// ContextKeyJWTUsername is the context key for the authenticated username
	ContextKeyJWTUsername = "jwt_username"
)

// JWTMiddlewareConfig configures the JWT authentication middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	SkipPaths  []string
}

// JWTAuthMiddleware validates bearer tokens and stores the caller's
// identity in the request context
func JWTAuthMiddleware(config JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, path := range config.SkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			handleAuthError(c, err)
			return
		}

		claims, err := config.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			handleAuthError(c, err)
			return
		}

		c.Set(ContextKeyJWTClaims, claims)
		c.Set(ContextKeyJWTUserID, claims.UserID)
		c.Set(ContextKeyJWTUsername, claims.Username)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))

		c.Next()
	}
}

var errMissingToken = errors.New("missing authorization token")

func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		// Browsers cannot set headers on websocket upgrades, so the
		// stream endpoint passes the token as a query parameter
		if token := c.Query("token"); token != "" {
			return token, nil
		}
		return "", errMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

func handleAuthError(c *gin.Context, err error) {
	code := dto.ErrCodeUnauthorized
	message := "authentication required"

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code = dto.ErrCodeTokenExpired
		message = "token has expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrTokenNotYetValid), errors.Is(err, auth.ErrMissingUserID):
		code = dto.ErrCodeTokenInvalid
		message = "invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetJWTClaims retrieves validated claims from the request context
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ContextKeyJWTClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// GetJWTUserID retrieves the authenticated user ID from the request context
func GetJWTUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextKeyJWTUserID)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok
}
