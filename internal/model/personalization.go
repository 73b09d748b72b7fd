package model

import (
	"hiphop_roadmap_backend/internal/roadmap"

	"gorm.io/datatypes"
)

// Personalization 每个用户一条：问卷答案 + 生成的路线图
type Personalization struct {
	BaseModel
	UserID           uint                                         `gorm:"uniqueIndex;not null" json:"userId"`
	Answers          datatypes.JSONType[roadmap.QuizAnswers]      `json:"answers"`
	GeneratedRoadmap datatypes.JSONType[roadmap.GeneratedRoadmap] `json:"generatedRoadmap"`
}

func (Personalization) TableName() string {
	return "personalizations"
}
