package service

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"hiphop_roadmap_backend/internal/model"
	"hiphop_roadmap_backend/internal/repository"
	"hiphop_roadmap_backend/internal/roadmap"
	"hiphop_roadmap_backend/internal/util"
	"hiphop_roadmap_backend/pkg/logger"
	"hiphop_roadmap_backend/pkg/monitoring"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:embed seed/skills.yaml
var seedCatalog []byte

type SkillService struct {
	SkillRepo      *repository.SkillRepository
	Cache          *repository.SkillCache
	StorageService *StorageService
}

func NewSkillService(skillRepo *repository.SkillRepository, cache *repository.SkillCache, storage *StorageService) *SkillService {
	return &SkillService{
		SkillRepo:      skillRepo,
		Cache:          cache,
		StorageService: storage,
	}
}

// SkillDetail 单个技能详情，附带渲染后的描述
type SkillDetail struct {
	model.Skill
	DescriptionHTML string `json:"descriptionHtml"`
}

// SkillUpdate 部分更新，nil 字段保持不变
type SkillUpdate struct {
	Title               *string                 `json:"title"`
	CategoryID          *string                 `json:"categoryId"`
	CategoryTitle       *string                 `json:"categoryTitle"`
	CategoryDescription *string                 `json:"categoryDescription"`
	CategoryDifficulty  *string                 `json:"categoryDifficulty"`
	CategoryColor       *string                 `json:"categoryColor"`
	Difficulty          *string                 `json:"difficulty"`
	Duration            *string                 `json:"duration"`
	VideoURL            *string                 `json:"videoUrl"`
	Description         *string                 `json:"description"`
	KeyPoints           []string                `json:"keyPoints"`
	CommonMistakes      []string                `json:"commonMistakes"`
	PracticeDrills      []roadmap.PracticeDrill `json:"practiceDrills"`
	Prerequisites       []string                `json:"prerequisites"`
}

// ListSkills 返回完整目录，优先读缓存
func (s *SkillService) ListSkills(ctx context.Context) ([]model.Skill, error) {
	if s.Cache.Enabled() {
		skills, ok, err := s.Cache.Get(ctx)
		switch {
		case err != nil:
			monitoring.CatalogCacheRequests.WithLabelValues("error").Inc()
			logger.Log.Warn("Skill cache read failed", zap.Error(err))
		case ok:
			monitoring.CatalogCacheRequests.WithLabelValues("hit").Inc()
			return skills, nil
		default:
			monitoring.CatalogCacheRequests.WithLabelValues("miss").Inc()
		}
	}

	skills, err := s.SkillRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.Cache.Set(ctx, skills); err != nil {
		logger.Log.Warn("Skill cache write failed", zap.Error(err))
	}
	return skills, nil
}

// ListGrouped 按分类分组，顺序为分类首次出现的顺序
func (s *SkillService) ListGrouped(ctx context.Context) ([]roadmap.Category, error) {
	skills, err := s.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	return roadmap.Group(model.ToRoadmapSkills(skills)), nil
}

func (s *SkillService) ListCategories(ctx context.Context) ([]model.CategorySummary, error) {
	return s.SkillRepo.Categories(ctx)
}

func (s *SkillService) ListByCategory(ctx context.Context, categoryID string) ([]model.Skill, error) {
	return s.SkillRepo.FindByCategory(ctx, categoryID)
}

func (s *SkillService) Get(ctx context.Context, skillID string) (*SkillDetail, error) {
	skill, err := s.find(ctx, skillID)
	if err != nil {
		return nil, err
	}

	html, err := util.RenderMarkdown(skill.Description)
	if err != nil {
		logger.Log.Warn("Render skill description failed", zap.String("skillId", skillID), zap.Error(err))
	}
	return &SkillDetail{Skill: *skill, DescriptionHTML: html}, nil
}

func (s *SkillService) Create(ctx context.Context, skill *model.Skill) error {
	if err := prepareSkill(skill); err != nil {
		return err
	}

	exists, err := s.SkillRepo.ExistsBySkillID(ctx, skill.SkillID)
	if err != nil {
		return err
	}
	if exists {
		return util.ErrSkillExists
	}

	if err := s.SkillRepo.Create(ctx, skill); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *SkillService) Update(ctx context.Context, skillID string, update SkillUpdate) (*model.Skill, error) {
	skill, err := s.find(ctx, skillID)
	if err != nil {
		return nil, err
	}

	if update.Difficulty != nil {
		d, ok := roadmap.ParseDifficulty(*update.Difficulty)
		if !ok {
			return nil, util.ErrInvalidDifficulty
		}
		skill.Difficulty = string(d)
	}
	if update.CategoryID != nil {
		if strings.TrimSpace(*update.CategoryID) == "" {
			return nil, util.ErrSkillFieldsRequired
		}
		skill.CategoryID = *update.CategoryID
	}
	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, util.ErrSkillFieldsRequired
		}
		skill.Title = *update.Title
	}
	setString(&skill.CategoryTitle, update.CategoryTitle)
	setString(&skill.CategoryDescription, update.CategoryDescription)
	setString(&skill.CategoryDifficulty, update.CategoryDifficulty)
	setString(&skill.CategoryColor, update.CategoryColor)
	setString(&skill.Duration, update.Duration)
	setString(&skill.VideoURL, update.VideoURL)
	setString(&skill.Description, update.Description)
	if update.KeyPoints != nil {
		skill.KeyPoints = datatypes.JSONSlice[string](update.KeyPoints)
	}
	if update.CommonMistakes != nil {
		skill.CommonMistakes = datatypes.JSONSlice[string](update.CommonMistakes)
	}
	if update.PracticeDrills != nil {
		skill.PracticeDrills = datatypes.JSONSlice[roadmap.PracticeDrill](update.PracticeDrills)
	}
	if update.Prerequisites != nil {
		skill.Prerequisites = datatypes.JSONSlice[string](update.Prerequisites)
	}

	if err := s.SkillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return skill, nil
}

func (s *SkillService) Delete(ctx context.Context, skillID string) error {
	n, err := s.SkillRepo.DeleteBySkillID(ctx, skillID)
	if err != nil {
		return err
	}
	if n == 0 {
		return util.ErrSkillNotFound
	}
	s.invalidate(ctx)
	return nil
}

// Seed 插入内置目录中尚不存在的技能，返回本次新插入的技能
func (s *SkillService) Seed(ctx context.Context) ([]model.Skill, error) {
	var catalog []model.Skill
	if err := yaml.Unmarshal(seedCatalog, &catalog); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}

	inserted := make([]model.Skill, 0)
	for i := range catalog {
		skill := catalog[i]
		if err := prepareSkill(&skill); err != nil {
			return nil, fmt.Errorf("seed skill %q: %w", skill.SkillID, err)
		}
		exists, err := s.SkillRepo.ExistsBySkillID(ctx, skill.SkillID)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		inserted = append(inserted, skill)
	}

	if err := s.SkillRepo.CreateBatch(ctx, inserted); err != nil {
		return nil, err
	}
	if len(inserted) > 0 {
		s.invalidate(ctx)
	}

	logger.Log.Info("Skill catalog seeded", zap.Int("inserted", len(inserted)), zap.Int("catalog", len(catalog)))
	return inserted, nil
}

// UploadVideo 保存技能教学视频；时长为空时用 ffprobe 探测结果填充
func (s *SkillService) UploadVideo(ctx context.Context, skillID string, file *multipart.FileHeader) (*model.Skill, error) {
	skill, err := s.find(ctx, skillID)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := util.SniffVideo(src, file.Filename)
	if err != nil {
		return nil, err
	}
	ext := util.VideoExtension(file.Filename)

	if err := os.MkdirAll(s.StorageService.TempDir, 0755); err != nil {
		return nil, err
	}
	tempPath := filepath.Join(s.StorageService.TempDir, fmt.Sprintf("skill_video_%d%s", time.Now().UnixNano(), ext))
	defer os.Remove(tempPath)

	if err := copyToFile(tempPath, src); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("videos/%s-%d%s", skill.SkillID, time.Now().UnixNano(), ext)
	url, err := s.StorageService.Upload(ctx, objectName, tempPath, mimeType)
	if err != nil {
		return nil, err
	}
	previous := skill.VideoURL
	skill.VideoURL = url

	if skill.Duration == "" {
		if info, err := util.GetVideoInfo(tempPath); err != nil {
			logger.Log.Warn("Probe video failed", zap.String("skillId", skillID), zap.Error(err))
		} else {
			skill.Duration = util.DurationLabel(info.Duration)
		}
	}

	if err := s.SkillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	if previous != "" && previous != url {
		if err := s.StorageService.RemoveByURL(ctx, previous); err != nil {
			logger.Log.Warn("Remove replaced video failed", zap.String("url", previous), zap.Error(err))
		}
	}
	return skill, nil
}

func (s *SkillService) find(ctx context.Context, skillID string) (*model.Skill, error) {
	skill, err := s.SkillRepo.FindBySkillID(ctx, skillID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSkillNotFound
	}
	if err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) invalidate(ctx context.Context) {
	if err := s.Cache.Invalidate(ctx); err != nil {
		logger.Log.Warn("Skill cache invalidation failed", zap.Error(err))
	}
}

// prepareSkill 校验必填字段并统一难度大小写
func prepareSkill(skill *model.Skill) error {
	skill.SkillID = strings.TrimSpace(skill.SkillID)
	skill.CategoryID = strings.TrimSpace(skill.CategoryID)
	if skill.SkillID == "" || strings.TrimSpace(skill.Title) == "" || skill.CategoryID == "" {
		return util.ErrSkillFieldsRequired
	}

	if skill.Difficulty == "" {
		skill.Difficulty = string(roadmap.DifficultyBeginner)
	}
	d, ok := roadmap.ParseDifficulty(skill.Difficulty)
	if !ok {
		return util.ErrInvalidDifficulty
	}
	skill.Difficulty = string(d)

	if skill.KeyPoints == nil {
		skill.KeyPoints = datatypes.JSONSlice[string]{}
	}
	if skill.CommonMistakes == nil {
		skill.CommonMistakes = datatypes.JSONSlice[string]{}
	}
	if skill.PracticeDrills == nil {
		skill.PracticeDrills = datatypes.JSONSlice[roadmap.PracticeDrill]{}
	}
	if skill.Prerequisites == nil {
		skill.Prerequisites = datatypes.JSONSlice[string]{}
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
