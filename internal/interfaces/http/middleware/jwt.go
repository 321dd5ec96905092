package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/futurevend/backend/internal/infrastructure/auth"
	"github.com/futurevend/backend/internal/infrastructure/logger"
	"github.com/futurevend/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTTenantIDKey = "jwt_tenant_id"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// ErrNoTenant is returned when a handler runs without an authenticated tenant
var ErrNoTenant = errors.New("no authenticated tenant")

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*auth.Claims, error)
}

// JWTAuth requires a valid bearer token and binds its tenant to the request.
// The tenant is stored on the gin context and in the request context for logging.
func JWTAuth(validator TokenValidator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortUnauthorized(c, log, nil, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, log, nil, "Invalid authorization header format")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
		if token == "" {
			abortUnauthorized(c, log, nil, "Missing token")
			return
		}

		claims, err := validator.ValidateAccessToken(token)
		if err != nil {
			abortUnauthorized(c, log, err, "Token validation failed")
			return
		}
		tenantID, err := claims.TenantUUID()
		if err != nil {
			abortUnauthorized(c, log, auth.ErrInvalidClaims, "Token carries no valid tenant")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTTenantIDKey, tenantID)
		c.Request = c.Request.WithContext(logger.WithTenantID(c.Request.Context(), tenantID.String()))
		c.Next()
	}
}

// abortUnauthorized answers 401. A nil err means no credentials were presented.
func abortUnauthorized(c *gin.Context, log *zap.Logger, err error, reason string) {
	log.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path),
	)

	code, message := dto.ErrCodeUnauthorized, "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingTenantID):
		code, message = dto.ErrCodeTokenInvalid, "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetJWTClaims retrieves the validated claims, or nil outside JWTAuth
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, ok := c.Get(JWTClaimsKey); ok {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetTenantID returns the authenticated tenant
func GetTenantID(c *gin.Context) (uuid.UUID, error) {
	if v, ok := c.Get(JWTTenantIDKey); ok {
		if id, ok := v.(uuid.UUID); ok && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, ErrNoTenant
}
