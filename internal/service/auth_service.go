package service

import (
	"context"
	"errors"
	"hiphop_roadmap_backend/internal/config"
	"hiphop_roadmap_backend/internal/model"
	"hiphop_roadmap_backend/internal/repository"
	"hiphop_roadmap_backend/internal/util"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type AuthService struct {
	UserRepo  *repository.UserRepository
	Blacklist *repository.TokenBlacklist
	Cfg       *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, blacklist *repository.TokenBlacklist, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:  userRepo,
		Blacklist: blacklist,
		Cfg:       cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, "", util.ErrMissingFields
	}
	if len(password) < minPasswordLength {
		return nil, "", util.ErrPasswordTooShort
	}

	if err := s.checkEmailFree(ctx, email, 0); err != nil {
		return nil, "", err
	}
	if err := s.checkUsernameFree(ctx, username, 0); err != nil {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 邮箱不存在和密码错误返回同一个错误
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", util.ErrMissingFields
	}

	user, err := s.UserRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout 将 token 加入黑名单直到过期；未启用 Redis 时只清除 Cookie
func (s *AuthService) Logout(ctx context.Context, claims *util.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.Blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// Authenticate 解析 token 并检查黑名单，供认证中间件使用
func (s *AuthService) Authenticate(ctx context.Context, token string) (*util.Claims, error) {
	claims, err := util.ParseJWT(token, s.Cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	revoked, err := s.Blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, util.ErrTokenRevoked
	}
	return claims, nil
}

func (s *AuthService) checkEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := s.UserRepo.FindByEmail(ctx, email)
	if err == nil && existing.ID != selfID {
		return util.ErrEmailRegistered
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *AuthService) checkUsernameFree(ctx context.Context, username string, selfID uint) error {
	existing, err := s.UserRepo.FindByUsername(ctx, username)
	if err == nil && existing.ID != selfID {
		return util.ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
