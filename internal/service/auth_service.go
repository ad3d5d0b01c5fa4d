package service

import (
	"context"
	"errors"
	"time"

	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/internal/util"
	"learning_platform_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const revokedTokenKeyPrefix = "session:revoked:"

// dummyHash 是一个固定的 bcrypt 哈希。用户名不存在时也会对它做一次比较，
// 避免通过响应时间区分“用户不存在”和“密码错误”。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Redis:    rdb,
		Cfg:      cfg,
	}
}

// Register hashes the password and persists the user. Username/email
// collisions surface as util.ErrDuplicateUser from the repository, so
// a failed signup never leaves a partial row.
func (s *AuthService) Register(user *model.User) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.UserRepo.Create(user)
}

// Login verifies credentials and returns a signed session token.
// Unknown username and wrong password take the same path and return
// the same error.
func (s *AuthService) Login(username, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	go s.touchLastLogin(user.ID)

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// touchLastLogin 后台更新最近登录时间。失败只记日志，不影响登录结果。
func (s *AuthService) touchLastLogin(userID uint) {
	if err := s.UserRepo.UpdateLastLogin(userID); err != nil {
		logger.Log.Warn("last login update failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}

// Logout revokes the session: the token's jti goes on a redis denylist
// until the token would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *util.Claims) error {
	ttl := s.Cfg.JWT.ExpireTime
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.Redis.Set(ctx, revokedTokenKeyPrefix+claims.ID, 1, ttl).Err()
}

// IsTokenRevoked reports whether a jti has been denylisted by Logout.
func (s *AuthService) IsTokenRevoked(ctx context.Context, jti string) bool {
	if jti == "" {
		return false
	}
	n, err := s.Redis.Exists(ctx, revokedTokenKeyPrefix+jti).Result()
	if err != nil {
		// Redis 故障时放行而不是把所有会话挡在门外
		return false
	}
	return n > 0
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
