package service

import (
	"context"
	"hiphop_roadmap_backend/internal/model"
	"hiphop_roadmap_backend/internal/repository"
	"hiphop_roadmap_backend/internal/util"
	"math"
	"time"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	SkillRepo    *repository.SkillRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, skillRepo *repository.SkillRepository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		SkillRepo:    skillRepo,
	}
}

// ProgressUpdate 部分更新，nil 字段保持不变
type ProgressUpdate struct {
	Notes     *string `json:"notes"`
	Completed *bool   `json:"completed"`
}

func (s *ProgressService) List(ctx context.Context, userID uint) ([]model.Progress, error) {
	return s.ProgressRepo.FindByUser(ctx, userID)
}

// Stats 总数为目录中的技能数，完成数只统计目录中仍存在的技能
func (s *ProgressService) Stats(ctx context.Context, userID uint) (*model.ProgressStats, error) {
	total, err := s.SkillRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.ProgressRepo.CountCompleted(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &model.ProgressStats{
		Total:     int(total),
		Completed: int(completed),
		Remaining: int(total - completed),
	}
	if total > 0 {
		stats.Percentage = int(math.Round(float64(completed) * 100 / float64(total)))
	}
	return stats, nil
}

func (s *ProgressService) MarkComplete(ctx context.Context, userID uint, skillID, notes string) (*model.Progress, error) {
	if err := s.ensureSkill(ctx, skillID); err != nil {
		return nil, err
	}
	return s.ProgressRepo.Upsert(ctx, userID, skillID, map[string]interface{}{
		"completed":    true,
		"completed_at": time.Now(),
		"notes":        notes,
	})
}

func (s *ProgressService) MarkIncomplete(ctx context.Context, userID uint, skillID string) (*model.Progress, error) {
	if err := s.ensureSkill(ctx, skillID); err != nil {
		return nil, err
	}
	return s.ProgressRepo.Upsert(ctx, userID, skillID, map[string]interface{}{
		"completed":    false,
		"completed_at": nil,
	})
}

func (s *ProgressService) Update(ctx context.Context, userID uint, skillID string, update ProgressUpdate) (*model.Progress, error) {
	if err := s.ensureSkill(ctx, skillID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}
	if update.Completed != nil {
		updates["completed"] = *update.Completed
		if *update.Completed {
			updates["completed_at"] = time.Now()
		} else {
			updates["completed_at"] = nil
		}
	}
	return s.ProgressRepo.Upsert(ctx, userID, skillID, updates)
}

func (s *ProgressService) Delete(ctx context.Context, userID uint, skillID string) error {
	n, err := s.ProgressRepo.DeleteByUserAndSkill(ctx, userID, skillID)
	if err != nil {
		return err
	}
	if n == 0 {
		return util.ErrProgressNotFound
	}
	return nil
}

func (s *ProgressService) ensureSkill(ctx context.Context, skillID string) error {
	exists, err := s.SkillRepo.ExistsBySkillID(ctx, skillID)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrSkillNotFound
	}
	return nil
}
