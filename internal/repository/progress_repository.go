package repository

import (
	"context"
	"hiphop_roadmap_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUser(ctx context.Context, userID uint) ([]model.Progress, error) {
	var progress []model.Progress
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at desc").Find(&progress).Error
	return progress, err
}

func (r *ProgressRepository) FindByUserAndSkill(ctx context.Context, userID uint, skillID string) (*model.Progress, error) {
	var p model.Progress
	err := r.DB.WithContext(ctx).Where("user_id = ? AND skill_id = ?", userID, skillID).First(&p).Error
	return &p, err
}

// Upsert 不存在时创建，再按 updates 更新指定字段
func (r *ProgressRepository) Upsert(ctx context.Context, userID uint, skillID string, updates map[string]interface{}) (*model.Progress, error) {
	var p model.Progress
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := model.Progress{UserID: userID, SkillID: skillID}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "skill_id"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			return err
		}

		if len(updates) > 0 {
			if err := tx.Model(&model.Progress{}).
				Where("user_id = ? AND skill_id = ?", userID, skillID).
				Updates(updates).Error; err != nil {
				return err
			}
		}

		return tx.Where("user_id = ? AND skill_id = ?", userID, skillID).First(&p).Error
	})
	return &p, err
}

func (r *ProgressRepository) DeleteByUserAndSkill(ctx context.Context, userID uint, skillID string) (int64, error) {
	result := r.DB.WithContext(ctx).Unscoped().
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Delete(&model.Progress{})
	return result.RowsAffected, result.Error
}

// CountCompleted 只统计目录中仍存在的技能
func (r *ProgressRepository) CountCompleted(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Progress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Where("skill_id IN (?)", r.DB.Model(&model.Skill{}).Select("skill_id")).
		Count(&count).Error
	return count, err
}
