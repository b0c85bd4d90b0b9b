package middleware

import (
	"strings"

	"barhub/internal/model"
	"barhub/internal/pkg"
	"barhub/internal/pkg/errs"
	"barhub/internal/pkg/response"
	"barhub/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey = "user_id"
	ContextRoleKey   = "user_role"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// RequireAuth 解析 Bearer token 并校验 token 版本（改密后旧 token 全部失效），
// 校验通过后注入 user_id / user_role
func RequireAuth(users *service.UserService, issuer *pkg.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			response.Abort(c, errs.Unauthorized("missing or malformed authorization header"))
			return
		}

		claims, err := issuer.Parse(tokenStr)
		if err != nil {
			response.Abort(c, errs.Unauthorized("invalid or expired token"))
			return
		}

		valid, err := users.VerifyTokenVersion(c.Request.Context(), claims.UserID, claims.TokenVersion)
		if err != nil {
			response.Abort(c, err)
			return
		}
		if !valid {
			response.Abort(c, errs.Unauthorized("token has been revoked"))
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}

// OptionalAuth 匿名可访问的读接口：token 有效则注入身份，无效当匿名处理
func OptionalAuth(users *service.UserService, issuer *pkg.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		claims, err := issuer.Parse(tokenStr)
		if err != nil {
			c.Next()
			return
		}
		valid, err := users.VerifyTokenVersion(c.Request.Context(), claims.UserID, claims.TokenVersion)
		if err != nil || !valid {
			c.Next()
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin 置于 RequireAuth 之后
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRoleKey) != model.RoleAdmin {
			response.Abort(c, errs.Forbidden("admin only"))
			return
		}
		c.Next()
	}
}

// UserID 取当前登录用户；OptionalAuth 下匿名时为空串
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}
