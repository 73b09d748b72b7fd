package service

import (
	"context"
	"errors"
	"hiphop_roadmap_backend/internal/model"
	"hiphop_roadmap_backend/internal/repository"
	"hiphop_roadmap_backend/internal/roadmap"
	"hiphop_roadmap_backend/internal/util"
	"hiphop_roadmap_backend/pkg/logger"
	"hiphop_roadmap_backend/pkg/monitoring"
	"hiphop_roadmap_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PersonalizationService struct {
	PersonalizationRepo *repository.PersonalizationRepository
	SkillService        *SkillService
}

func NewPersonalizationService(repo *repository.PersonalizationRepository, skillService *SkillService) *PersonalizationService {
	return &PersonalizationService{
		PersonalizationRepo: repo,
		SkillService:        skillService,
	}
}

// Save 根据问卷答案生成路线图并保存，每个用户只保留一份
func (s *PersonalizationService) Save(ctx context.Context, userID uint, answers roadmap.QuizAnswers) (*model.Personalization, error) {
	generated, err := s.generate(ctx, answers)
	if err != nil {
		return nil, err
	}
	return s.PersonalizationRepo.Upsert(ctx, userID, answers, generated)
}

func (s *PersonalizationService) Get(ctx context.Context, userID uint) (*model.Personalization, error) {
	p, err := s.PersonalizationRepo.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPersonalizationNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Regenerate 用已保存的答案和当前目录重新生成
func (s *PersonalizationService) Regenerate(ctx context.Context, userID uint) (*model.Personalization, error) {
	existing, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	answers := existing.Answers.Data()
	generated, err := s.generate(ctx, answers)
	if err != nil {
		return nil, err
	}
	return s.PersonalizationRepo.Upsert(ctx, userID, answers, generated)
}

func (s *PersonalizationService) Delete(ctx context.Context, userID uint) error {
	n, err := s.PersonalizationRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return util.ErrPersonalizationNotFound
	}
	return nil
}

func (s *PersonalizationService) generate(ctx context.Context, answers roadmap.QuizAnswers) (roadmap.GeneratedRoadmap, error) {
	ctx, span := tracing.Tracer().Start(ctx, "roadmap.Generate")
	defer span.End()

	skills, err := s.SkillService.ListSkills(ctx)
	if err != nil {
		span.RecordError(err)
		return roadmap.GeneratedRoadmap{}, err
	}
	if len(skills) == 0 {
		return roadmap.GeneratedRoadmap{}, util.ErrCatalogEmpty
	}

	generated := roadmap.Generate(answers, model.ToRoadmapSkills(skills))
	profile := generated.UserProfile

	span.SetAttributes(
		attribute.String("roadmap.style", string(profile.DanceStyle)),
		attribute.String("roadmap.level", string(profile.ExperienceLevel)),
		attribute.Int("roadmap.catalog_size", len(skills)),
		attribute.Int("roadmap.total_skills", generated.TotalSkills),
	)
	monitoring.ObserveGeneration(string(profile.DanceStyle), string(profile.ExperienceLevel), generated.TotalSkills)

	logger.Log.Debug("Roadmap generated",
		zap.String("style", string(profile.DanceStyle)),
		zap.String("level", string(profile.ExperienceLevel)),
		zap.Int("catalog", len(skills)),
		zap.Int("categories", len(generated.Categories)),
		zap.Int("totalSkills", generated.TotalSkills),
		zap.Int("perWeek", generated.RecommendedPerWeek),
		zap.Int("weeks", generated.EstimatedWeeks),
	)
	return generated, nil
}
