package middleware

import (
	"context"
	"strings"

	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TokenRevoker reports whether a session token id has been denylisted
// by an explicit logout.
type TokenRevoker interface {
	IsTokenRevoked(ctx context.Context, jti string) bool
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if cookie, err := c.Cookie(util.SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	return c.Query("token")
}

func authenticate(c *gin.Context, cfg *config.Config, revoker TokenRevoker) *util.Claims {
	tokenString := extractToken(c)
	if tokenString == "" {
		return nil
	}

	claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
	if err != nil || claims == nil {
		return nil
	}

	if revoker != nil && revoker.IsTokenRevoked(c.Request.Context(), claims.ID) {
		return nil
	}

	return claims
}

// AuthMiddleware 接口侧鉴权，失败返回 401
func AuthMiddleware(cfg *config.Config, revoker TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := authenticate(c, cfg, revoker)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// WebAuthMiddleware 页面侧鉴权，失败重定向到登录页
func WebAuthMiddleware(cfg *config.Config, revoker TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := authenticate(c, cfg, revoker)
		if claims == nil {
			util.RedirectToLogin(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// TryAuthMiddleware 可选鉴权：有有效令牌则注入用户，否则继续匿名处理
func TryAuthMiddleware(cfg *config.Config, revoker TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := authenticate(c, cfg, revoker); claims != nil {
			c.Set("user", claims)
		}
		c.Next()
	}
}

func hasRole(c *gin.Context, roles ...model.UserRole) bool {
	user := util.GetUserFromContext(c)
	if user == nil {
		return false
	}

	for _, role := range roles {
		if user.Role == role {
			return true
		}
	}
	return false
}

// RoleMiddleware 接口侧角色校验，无权限返回 403
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasRole(c, roles...) {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// WebRoleMiddleware 页面侧角色校验。角色不符时跳转登录页而不是跳到
// 正确的面板，和原有行为保持一致。
func WebRoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasRole(c, roles...) {
			util.RedirectToLogin(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
