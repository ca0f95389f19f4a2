package middleware

import (
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/util"
	"ai_interview_backend/pkg/logger"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleRequirement 描述接口可接受的角色：任意已认证用户，或指定角色集合之一
type RoleRequirement struct {
	any   bool
	roles map[model.UserRole]struct{}
}

func AnyAuthenticated() RoleRequirement {
	return RoleRequirement{any: true}
}

func OneOf(roles ...model.UserRole) RoleRequirement {
	set := make(map[model.UserRole]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return RoleRequirement{roles: set}
}

// Allows 空集合不代表放行，只有 AnyAuthenticated 才接受所有角色
func (r RoleRequirement) Allows(role model.UserRole) bool {
	if r.any {
		return true
	}
	_, ok := r.roles[role]
	return ok
}

type UserLookup interface {
	FindByID(id uint) (*model.User, error)
}

const (
	reasonMissingToken   = "missing_token"
	reasonMalformedToken = "malformed_token"
	reasonExpiredToken   = "expired_token"
	reasonUnknownUser    = "unknown_identity"
	reasonLookupFailed   = "identity_lookup_failed"
	reasonRoleMismatch   = "role_not_allowed"
)

// Authorize 校验 Bearer 令牌，回查身份库并检查角色；失败原因只写日志，响应统一
func Authorize(secret string, users UserLookup, req RoleRequirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			reject(c, reasonMissingToken, nil)
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			reject(c, reasonMissingToken, nil)
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			reason := reasonMalformedToken
			if util.IsExpired(err) {
				reason = reasonExpiredToken
			}
			reject(c, reason, err)
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			reason := reasonLookupFailed
			if errors.Is(err, util.ErrUserNotFound) {
				reason = reasonUnknownUser
			}
			reject(c, reason, err, zap.Uint("user_id", claims.UserID))
			return
		}

		if !req.Allows(user.Role) {
			logger.Log.Warn("Authorization rejected",
				zap.String("reason", reasonRoleMismatch),
				zap.Uint("user_id", user.ID),
				zap.String("role", string(user.Role)),
				zap.String("path", c.FullPath()),
			)
			util.Forbidden(c)
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, user)
		c.Next()
	}
}

func reject(c *gin.Context, reason string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("reason", reason),
		zap.String("path", c.FullPath()),
		zap.String("client_ip", c.ClientIP()),
	)
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logger.Log.Warn("Authentication rejected", fields...)

	util.Unauthorized(c)
	c.Abort()
}
