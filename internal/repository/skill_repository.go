package repository

import (
	"context"
	"hiphop_roadmap_backend/internal/model"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

// FindAll 按插入顺序返回全部技能，分类分组依赖这个顺序
func (r *SkillRepository) FindAll(ctx context.Context) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.WithContext(ctx).Order("id asc").Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) FindBySkillID(ctx context.Context, skillID string) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.WithContext(ctx).Where("skill_id = ?", skillID).First(&skill).Error
	return &skill, err
}

func (r *SkillRepository) FindByCategory(ctx context.Context, categoryID string) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.WithContext(ctx).Where("category_id = ?", categoryID).Order("id asc").Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) ExistsBySkillID(ctx context.Context, skillID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Skill{}).Where("skill_id = ?", skillID).Count(&count).Error
	return count > 0, err
}

func (r *SkillRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Skill{}).Count(&count).Error
	return count, err
}

func (r *SkillRepository) Create(ctx context.Context, skill *model.Skill) error {
	return r.DB.WithContext(ctx).Create(skill).Error
}

// CreateBatch 在一个事务内插入多条技能
func (r *SkillRepository) CreateBatch(ctx context.Context, skills []model.Skill) error {
	if len(skills) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&skills).Error
	})
}

func (r *SkillRepository) Update(ctx context.Context, skill *model.Skill) error {
	return r.DB.WithContext(ctx).Save(skill).Error
}

// DeleteBySkillID 物理删除，返回受影响行数
func (r *SkillRepository) DeleteBySkillID(ctx context.Context, skillID string) (int64, error) {
	result := r.DB.WithContext(ctx).Unscoped().Where("skill_id = ?", skillID).Delete(&model.Skill{})
	return result.RowsAffected, result.Error
}

type categoryRow struct {
	CategoryID          string
	CategoryTitle       string
	CategoryDescription string
	CategoryDifficulty  string
	CategoryColor       string
	SkillCount          int
	FirstID             uint
}

// Categories 按分类聚合，顺序为分类首次出现的顺序
func (r *SkillRepository) Categories(ctx context.Context) ([]model.CategorySummary, error) {
	var rows []categoryRow
	err := r.DB.WithContext(ctx).Model(&model.Skill{}).
		Select(`category_id,
			MAX(category_title) AS category_title,
			MAX(category_description) AS category_description,
			MAX(category_difficulty) AS category_difficulty,
			MAX(category_color) AS category_color,
			COUNT(*) AS skill_count,
			MIN(id) AS first_id`).
		Group("category_id").
		Order("first_id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	categories := make([]model.CategorySummary, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, model.CategorySummary{
			ID:          row.CategoryID,
			Title:       row.CategoryTitle,
			Description: row.CategoryDescription,
			Difficulty:  row.CategoryDifficulty,
			Color:       row.CategoryColor,
			SkillCount:  row.SkillCount,
		})
	}
	return categories, nil
}
