package service

import (
	"context"
	"errors"

	"weblearn_backend/internal/config"
	"weblearn_backend/internal/model"
	"weblearn_backend/internal/repository"
	"weblearn_backend/internal/util"
	"weblearn_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService 注册与登录。远端库不可用时注册退化为纯缓存身份：
// 生成本地 ID、写入身份缓存，后续对账在库恢复后补建账号。
type AuthService struct {
	UserRepo *repository.UserRepository
	Cache    *repository.ProgressCache
	Records  *RecordService
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cache *repository.ProgressCache, records *RecordService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cache:    cache,
		Records:  records,
		Cfg:      cfg,
	}
}

// Register 建立身份。返回的 UserInfo 是客户端之后所有请求的身份记录。
func (s *AuthService) Register(ctx context.Context, user *model.User) (*model.UserInfo, error) {
	if !s.Records.IsAvailable() {
		// 降级模式：没有远端库时身份只存在于缓存
		user.ID = model.GenerateUUID()
		info := &model.UserInfo{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Mobile: user.Mobile,
		}
		s.Cache.WriteUserInfo(ctx, info)
		logger.Log.Info("远端库未配置，注册为本地身份",
			zap.String("userId", user.ID))
		return info, nil
	}

	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashed)
	if user.Role == "" {
		user.Role = model.Student
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	info := &model.UserInfo{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Mobile: user.Mobile,
	}
	s.Cache.WriteUserInfo(ctx, info)
	return info, nil
}

// Login 校验口令并签发令牌
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}
	if user.Disabled {
		return "", nil, util.ErrPermissionDenied
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("更新最近登录时间失败", zap.Error(err))
	}
	s.Cache.WriteUserInfo(ctx, &model.UserInfo{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Mobile: user.Mobile,
	})
	return token, user, nil
}

// Identity 取当前身份记录，缓存优先、库兜底
func (s *AuthService) Identity(ctx context.Context, userID string) *model.UserInfo {
	if info := s.Cache.ReadUserInfo(ctx, userID); info != nil {
		return info
	}
	if s.Records.IsAvailable() {
		if user, err := s.UserRepo.FindByID(userID); err == nil {
			return &model.UserInfo{
				ID:     user.ID,
				Name:   user.Name,
				Email:  user.Email,
				Mobile: user.Mobile,
			}
		}
	}
	return nil
}
