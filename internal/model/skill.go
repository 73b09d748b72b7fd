package model

import (
	"hiphop_roadmap_backend/internal/roadmap"

	"gorm.io/datatypes"
)

// Skill 技能记录，分类信息冗余存储在每条技能上
// swagger:model Skill
type Skill struct {
	BaseModel
	SkillID             string                                     `gorm:"size:100;uniqueIndex;not null" json:"skillId" yaml:"skillId"`
	Title               string                                     `gorm:"size:200;not null" json:"title" yaml:"title"`
	CategoryID          string                                     `gorm:"size:100;index;not null" json:"categoryId" yaml:"categoryId"`
	CategoryTitle       string                                     `gorm:"size:200" json:"categoryTitle" yaml:"categoryTitle"`
	CategoryDescription string                                     `gorm:"size:500" json:"categoryDescription" yaml:"categoryDescription"`
	CategoryDifficulty  string                                     `gorm:"size:20" json:"categoryDifficulty" yaml:"categoryDifficulty"`
	CategoryColor       string                                     `gorm:"size:100" json:"categoryColor" yaml:"categoryColor"`
	Difficulty          string                                     `gorm:"size:20;not null" json:"difficulty" yaml:"difficulty"`
	Duration            string                                     `gorm:"size:50" json:"duration" yaml:"duration"`
	VideoURL            string                                     `gorm:"size:500" json:"videoUrl" yaml:"videoUrl"`
	Description         string                                     `gorm:"type:text" json:"description" yaml:"description"`
	KeyPoints           datatypes.JSONSlice[string]                `json:"keyPoints" yaml:"keyPoints"`
	CommonMistakes      datatypes.JSONSlice[string]                `json:"commonMistakes" yaml:"commonMistakes"`
	PracticeDrills      datatypes.JSONSlice[roadmap.PracticeDrill] `json:"practiceDrills" yaml:"practiceDrills"`
	Prerequisites       datatypes.JSONSlice[string]                `json:"prerequisites" yaml:"prerequisites"`
}

func (Skill) TableName() string {
	return "skills"
}

// ToRoadmap 转换为推荐引擎使用的结构
func (s *Skill) ToRoadmap() roadmap.Skill {
	return roadmap.Skill{
		ID:         s.SkillID,
		Title:      s.Title,
		CategoryID: s.CategoryID,
		Category: roadmap.CategoryMeta{
			Title:       s.CategoryTitle,
			Description: s.CategoryDescription,
			Difficulty:  s.CategoryDifficulty,
			Color:       s.CategoryColor,
		},
		Difficulty:     s.Difficulty,
		Duration:       s.Duration,
		VideoURL:       s.VideoURL,
		Description:    s.Description,
		KeyPoints:      []string(s.KeyPoints),
		CommonMistakes: []string(s.CommonMistakes),
		PracticeDrills: []roadmap.PracticeDrill(s.PracticeDrills),
		Prerequisites:  []string(s.Prerequisites),
	}
}

func ToRoadmapSkills(skills []Skill) []roadmap.Skill {
	out := make([]roadmap.Skill, 0, len(skills))
	for i := range skills {
		out = append(out, skills[i].ToRoadmap())
	}
	return out
}

// CategorySummary 分类聚合结果
type CategorySummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Color       string `json:"color"`
	SkillCount  int    `json:"skillCount"`
}
