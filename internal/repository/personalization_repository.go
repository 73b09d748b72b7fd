package repository

import (
	"context"
	"hiphop_roadmap_backend/internal/model"
	"hiphop_roadmap_backend/internal/roadmap"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PersonalizationRepository struct {
	DB *gorm.DB
}

func NewPersonalizationRepository(db *gorm.DB) *PersonalizationRepository {
	return &PersonalizationRepository{DB: db}
}

func (r *PersonalizationRepository) FindByUserID(ctx context.Context, userID uint) (*model.Personalization, error) {
	var p model.Personalization
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

// Upsert 每个用户只保留一条记录，首次保存时创建，之后覆盖
func (r *PersonalizationRepository) Upsert(ctx context.Context, userID uint, answers roadmap.QuizAnswers, generated roadmap.GeneratedRoadmap) (*model.Personalization, error) {
	now := time.Now()
	p := model.Personalization{
		UserID:           userID,
		Answers:          datatypes.NewJSONType(answers),
		GeneratedRoadmap: datatypes.NewJSONType(generated),
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"answers", "generated_roadmap", "updated_at"}),
	}).Create(&p).Error
	if err != nil {
		return nil, err
	}

	return r.FindByUserID(ctx, userID)
}

func (r *PersonalizationRepository) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	result := r.DB.WithContext(ctx).Unscoped().Where("user_id = ?", userID).Delete(&model.Personalization{})
	return result.RowsAffected, result.Error
}
