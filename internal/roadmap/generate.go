// Package roadmap builds a personalized learning roadmap from onboarding quiz
// answers and the flat skill catalog. Generate is pure: it performs no I/O and
// never mutates its inputs, so callers may re-run it at any time.
package roadmap

import (
	"slices"
	"strings"
)

func Generate(answers QuizAnswers, skills []Skill) GeneratedRoadmap {
	n := answers.normalize()
	profile := styleProfiles[n.style]

	categories := Group(skills)
	sortByStyle(categories, profile.order)
	categories = filterByExperience(categories, n.experience)

	if profile.emphasis != Balanced {
		for i := range categories {
			if categories[i].ID == profile.emphasis {
				categories[i].IsPriority = true
				categories[i].PriorityMessage = PriorityMessage
				break
			}
		}
	}

	total := 0
	for _, c := range categories {
		total += len(c.Skills)
	}
	weeks := ceilDiv(total, n.perWeek)

	return GeneratedRoadmap{
		Categories:          categories,
		TotalSkills:         total,
		RecommendedPerWeek:  n.perWeek,
		EstimatedWeeks:      weeks,
		EstimatedMonths:     ceilDiv(weeks, 4),
		GoalRecommendations: recommendGoals(n.goals),
		UserProfile: UserProfile{
			DanceStyle:          n.style,
			ExperienceLevel:     n.experience,
			WeeklyHours:         n.hours,
			Goals:               n.goals,
			PracticeEnvironment: n.environment,
		},
	}
}

// Group 按分类聚合技能：分类按首次出现排序，分类内保持原顺序
func Group(skills []Skill) []Category {
	categories := make([]Category, 0)
	index := make(map[string]int)

	for _, s := range skills {
		i, ok := index[s.CategoryID]
		if !ok {
			i = len(categories)
			index[s.CategoryID] = i
			categories = append(categories, Category{
				ID:          s.CategoryID,
				Title:       s.Category.Title,
				Description: s.Category.Description,
				Difficulty:  s.Category.Difficulty,
				Color:       s.Category.Color,
				Skills:      make([]Skill, 0),
			})
		}
		categories[i].Skills = append(categories[i].Skills, cloneSkill(s))
	}
	return categories
}

func sortByStyle(categories []Category, order []string) {
	rank := func(id string) int {
		if i := slices.Index(order, id); i >= 0 {
			return i
		}
		return unknownCategoryIndex
	}
	slices.SortStableFunc(categories, func(a, b Category) int {
		return rank(a.ID) - rank(b.ID)
	})
}

func filterByExperience(categories []Category, level ExperienceLevel) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		kept := make([]Skill, 0, len(c.Skills))
		for _, s := range c.Skills {
			if allowed(level, s.Difficulty) {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			continue
		}
		c.Skills = kept
		out = append(out, c)
	}
	return out
}

// allowed 难度比较统一转为小写
func allowed(level ExperienceLevel, difficulty string) bool {
	d := Difficulty(strings.ToLower(strings.TrimSpace(difficulty)))
	switch level {
	case ExperienceCompleteBeginner:
		return d == DifficultyBeginner
	case ExperienceSome:
		return d == DifficultyBeginner || d == DifficultyIntermediate
	default:
		return true
	}
}

func recommendGoals(goals []string) []GoalRecommendation {
	recs := make([]GoalRecommendation, 0)
	for _, tip := range goalTips {
		if slices.Contains(goals, string(tip.goal)) {
			recs = append(recs, GoalRecommendation{
				Message:    tip.message,
				Categories: slices.Clone(tip.categories),
			})
		}
	}
	return recs
}

func cloneSkill(s Skill) Skill {
	s.KeyPoints = slices.Clone(s.KeyPoints)
	s.CommonMistakes = slices.Clone(s.CommonMistakes)
	s.PracticeDrills = slices.Clone(s.PracticeDrills)
	s.Prerequisites = slices.Clone(s.Prerequisites)
	return s
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
