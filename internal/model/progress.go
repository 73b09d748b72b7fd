package model

import "time"

// Progress 用户在单个技能上的进度，(user_id, skill_id) 唯一
type Progress struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_progress_user_skill;not null" json:"userId"`
	SkillID     string     `gorm:"size:100;uniqueIndex:idx_progress_user_skill;not null" json:"skillId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	Notes       string     `gorm:"type:text" json:"notes"`
}

func (Progress) TableName() string {
	return "progress"
}

type ProgressStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Remaining  int `json:"remaining"`
	Percentage int `json:"percentage"`
}
