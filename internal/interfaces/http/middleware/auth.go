package middleware

import (
	"net/http"
	"strings"

	"github.com/glossary/backend/internal/infrastructure/auth"
	"github.com/glossary/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth context keys
const (
	AuthClaimsKey  = "auth_claims"
	AuthUserIDKey  = "auth_user_id"
	AuthIsAdminKey = "auth_is_admin"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// AuthMiddlewareConfig holds configuration for the auth middleware
type AuthMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// TokenBlacklist is optional for checking revoked tokens
	TokenBlacklist auth.TokenBlacklist
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultAuthConfig returns default auth middleware configuration. The
// public read surface (terms, categories, search) and the payment webhook
// stay open; everything user-scoped requires a token.
func DefaultAuthConfig(jwtService *auth.JWTService) AuthMiddlewareConfig {
	return AuthMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/metrics",
			"/api/v1/system/ping",
			"/api/v1/system/info",
			"/api/v1/webhooks/gumroad",
		},
		SkipPathPrefixes: []string{
			"/api/v1/terms",
			"/api/v1/categories",
		},
	}
}

// AuthMiddleware creates authentication middleware with default config
func AuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return AuthMiddlewareWithConfig(DefaultAuthConfig(jwtService))
}

// AuthMiddlewareWithConfig creates authentication middleware
func AuthMiddlewareWithConfig(cfg AuthMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				// still pick up the user when a token is sent on a
				// public path, so view tracking can attribute reads
				attachClaimsIfPresent(c, cfg)
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Token validation failed")
			return
		}

		if cfg.TokenBlacklist != nil {
			if rejected := checkBlacklist(c, cfg, claims); rejected {
				return
			}
		}

		setClaims(c, cfg, claims)
		c.Next()
	}
}

// attachClaimsIfPresent validates a token if one is sent but never rejects
func attachClaimsIfPresent(c *gin.Context, cfg AuthMiddlewareConfig) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return
	}
	tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
	if tokenString == "" {
		return
	}
	claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
	if err != nil {
		return
	}
	setClaims(c, cfg, claims)
}

func setClaims(c *gin.Context, cfg AuthMiddlewareConfig, claims *auth.Claims) {
	c.Set(AuthClaimsKey, claims)
	c.Set(AuthUserIDKey, claims.UserID())
	c.Set(AuthIsAdminKey, claims.Admin)

	ctx := c.Request.Context()
	log := logger.FromContext(ctx)
	ctx, _ = logger.WithUserID(ctx, log, claims.UserID())
	c.Request = c.Request.WithContext(ctx)
}

// checkBlacklist returns true when the request was rejected
func checkBlacklist(c *gin.Context, cfg AuthMiddlewareConfig, claims *auth.Claims) bool {
	ctx := c.Request.Context()

	if claims.ID != "" {
		blacklisted, err := cfg.TokenBlacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			// fail open; a blacklist outage must not take the API down
			if cfg.Logger != nil {
				cfg.Logger.Error("failed to check token blacklist",
					zap.String("jti", claims.ID),
					zap.Error(err))
			}
		} else if blacklisted {
			abortUnauthorized(c, cfg, auth.ErrTokenBlacklisted, "Token has been revoked")
			return true
		}
	}

	if userID := claims.UserID(); userID != "" {
		invalidated, err := cfg.TokenBlacklist.IsUserTokenInvalidated(ctx, userID, claims.GetIssuedAtTime())
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("failed to check user token invalidation",
					zap.String("user_id", userID),
					zap.Error(err))
			}
		} else if invalidated {
			abortUnauthorized(c, cfg, auth.ErrTokenBlacklisted, "User session has been invalidated")
			return true
		}
	}
	return false
}

func abortUnauthorized(c *gin.Context, cfg AuthMiddlewareConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path))
	}

	errorCode := "ERR_UNAUTHORIZED"
	errorMessage := "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		errorCode = "ERR_TOKEN_EXPIRED"
		errorMessage = "Token has expired"
	case auth.ErrTokenBlacklisted:
		errorCode = "ERR_TOKEN_INVALID"
		errorMessage = "Token has been revoked"
	case auth.ErrInvalidToken, auth.ErrInvalidTokenType, auth.ErrTokenNotYetValid:
		errorCode = "ERR_TOKEN_INVALID"
		errorMessage = "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    errorCode,
			"message": errorMessage,
		},
	})
}

// RequireAdmin rejects requests whose token lacks the admin claim. Must run
// after the auth middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetIsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_FORBIDDEN",
					"message": "Admin access required",
				},
			})
			return
		}
		c.Next()
	}
}

// GetAuthClaims retrieves validated claims from gin.Context
func GetAuthClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(AuthClaimsKey); exists {
		if authClaims, ok := claims.(*auth.Claims); ok {
			return authClaims
		}
	}
	return nil
}

// GetAuthUserID retrieves the authenticated user ID from gin.Context
func GetAuthUserID(c *gin.Context) string {
	if userID, exists := c.Get(AuthUserIDKey); exists {
		if id, ok := userID.(string); ok {
			return id
		}
	}
	return ""
}

// GetIsAdmin reports whether the authenticated user has the admin claim
func GetIsAdmin(c *gin.Context) bool {
	if isAdmin, exists := c.Get(AuthIsAdminKey); exists {
		if admin, ok := isAdmin.(bool); ok {
			return admin
		}
	}
	return false
}
