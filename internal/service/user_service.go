package service

import (
	"context"
	"errors"
	"hiphop_roadmap_backend/internal/model"
	"hiphop_roadmap_backend/internal/repository"
	"hiphop_roadmap_backend/internal/util"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// UserService 处理用户资料相关的业务逻辑
type UserService struct {
	UserRepo               *repository.UserRepository
	AuthService            *AuthService
	ProgressService        *ProgressService
	PersonalizationService *PersonalizationService
}

func NewUserService(userRepo *repository.UserRepository, authService *AuthService, progressService *ProgressService, personalizationService *PersonalizationService) *UserService {
	return &UserService{
		UserRepo:               userRepo,
		AuthService:            authService,
		ProgressService:        progressService,
		PersonalizationService: personalizationService,
	}
}

// ProfileUpdate nil 字段保持不变
type ProfileUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// Overview 个人主页聚合数据，未完成问卷时 Personalization 为 nil
type Overview struct {
	User            *model.User            `json:"user"`
	Stats           *model.ProgressStats   `json:"stats"`
	Personalization *model.Personalization `json:"personalization"`
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if username == "" {
			return nil, util.ErrMissingFields
		}
		if err := s.AuthService.checkUsernameFree(ctx, username, user.ID); err != nil {
			return nil, err
		}
		user.Username = username
	}

	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		if email == "" {
			return nil, util.ErrMissingFields
		}
		if err := s.AuthService.checkEmailFree(ctx, email, user.ID); err != nil {
			return nil, err
		}
		user.Email = email
	}

	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Overview 并发读取用户、进度统计和个性化路线图
func (s *UserService) Overview(ctx context.Context, id uint) (*Overview, error) {
	var overview Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := s.GetUserByID(gctx, id)
		overview.User = user
		return err
	})
	g.Go(func() error {
		stats, err := s.ProgressService.Stats(gctx, id)
		overview.Stats = stats
		return err
	})
	g.Go(func() error {
		p, err := s.PersonalizationService.Get(gctx, id)
		if errors.Is(err, util.ErrPersonalizationNotFound) {
			return nil
		}
		overview.Personalization = p
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &overview, nil
}
