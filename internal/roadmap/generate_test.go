package roadmap

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skill(id, category, difficulty string) Skill {
	return Skill{
		ID:         id,
		Title:      strings.ToUpper(id),
		CategoryID: category,
		Category: CategoryMeta{
			Title:      category + " title",
			Difficulty: "beginner",
			Color:      "from-purple-500 to-pink-500",
		},
		Difficulty:     difficulty,
		Duration:       "5 min",
		KeyPoints:      []string{"stay loose"},
		PracticeDrills: []PracticeDrill{{Title: "Drill 1", Description: "count and clap"}},
	}
}

// 两个分类共 5 个技能
func sampleCatalog() []Skill {
	return []Skill{
		skill("counting-beats", "rhythm-musicality", "beginner"),
		skill("basic-bounce", "core-grooves", "beginner"),
		skill("finding-the-one", "rhythm-musicality", "beginner"),
		skill("rock-step", "core-grooves", "advanced"),
		skill("bounce-on-beat", "rhythm-musicality", "intermediate"),
	}
}

func categoryIDs(r GeneratedRoadmap) []string {
	ids := make([]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

func skillIDs(c Category) []string {
	ids := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestGenerate_ScenarioA(t *testing.T) {
	r := Generate(QuizAnswers{
		DanceStyle:      "all-around",
		ExperienceLevel: "complete-beginner",
		WeeklyHours:     "3-5",
		Goals:           []string{"fitness"},
	}, sampleCatalog())

	require.Equal(t, []string{"rhythm-musicality", "core-grooves"}, categoryIDs(r))
	assert.Equal(t, []string{"counting-beats", "finding-the-one"}, skillIDs(r.Categories[0]))
	assert.Equal(t, []string{"basic-bounce"}, skillIDs(r.Categories[1]))
	assert.Equal(t, 3, r.RecommendedPerWeek)
	assert.Equal(t, 3, r.TotalSkills)
	assert.Equal(t, 1, r.EstimatedWeeks)
	assert.Equal(t, 1, r.EstimatedMonths)
	require.Len(t, r.GoalRecommendations, 1)
	assert.Equal(t, "High-energy grooves will boost your cardio", r.GoalRecommendations[0].Message)
	assert.Equal(t, []string{"core-grooves", "foundation-styles"}, r.GoalRecommendations[0].Categories)

	for _, c := range r.Categories {
		assert.False(t, c.IsPriority, "all-around is balanced")
	}
}

func TestGenerate_ScenarioB_AdvancedKeepsEverything(t *testing.T) {
	r := Generate(QuizAnswers{DanceStyle: "all-around", ExperienceLevel: "advanced"}, sampleCatalog())

	require.Equal(t, []string{"rhythm-musicality", "core-grooves"}, categoryIDs(r))
	assert.Equal(t, 5, r.TotalSkills)
	assert.Equal(t, []string{"counting-beats", "finding-the-one", "bounce-on-beat"}, skillIDs(r.Categories[0]))
	assert.Equal(t, []string{"basic-bounce", "rock-step"}, skillIDs(r.Categories[1]))
}

func TestGenerate_ScenarioC_PoppingLockingPrioritizesIsolations(t *testing.T) {
	catalog := append(sampleCatalog(), skill("chest-isolations", "isolations", "intermediate"))

	r := Generate(QuizAnswers{DanceStyle: "popping-locking", ExperienceLevel: "intermediate"}, catalog)

	require.Equal(t, []string{"isolations", "core-grooves", "rhythm-musicality"}, categoryIDs(r))
	assert.True(t, r.Categories[0].IsPriority)
	assert.Equal(t, PriorityMessage, r.Categories[0].PriorityMessage)
	for _, c := range r.Categories[1:] {
		assert.False(t, c.IsPriority)
		assert.Empty(t, c.PriorityMessage)
	}
}

func TestGenerate_ScenarioD_EmptyCategoryRemoved(t *testing.T) {
	catalog := append(sampleCatalog(),
		skill("popping-basics", "foundation-styles", "advanced"),
		skill("locking-basics", "foundation-styles", "Advanced"),
	)

	r := Generate(QuizAnswers{DanceStyle: "breaking", ExperienceLevel: "complete-beginner"}, catalog)

	assert.NotContains(t, categoryIDs(r), "foundation-styles")
	for _, c := range r.Categories {
		assert.False(t, c.IsPriority, "emphasis category was filtered out")
	}
}

func TestGenerate_ExperienceFilter(t *testing.T) {
	catalog := []Skill{
		skill("a", "core-grooves", "Beginner"),
		skill("b", "core-grooves", "INTERMEDIATE"),
		skill("c", "core-grooves", "advanced"),
		skill("d", "isolations", "Advanced"),
		skill("e", "isolations", "expert"),
	}

	tests := []struct {
		level string
		want  []string
	}{
		{"complete-beginner", []string{"a"}},
		{"some-experience", []string{"a", "b"}},
		{"intermediate", []string{"a", "b", "c", "d", "e"}},
		{"advanced", []string{"a", "b", "c", "d", "e"}},
		{"", []string{"a", "b", "c", "d", "e"}},
		{"grandmaster", []string{"a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			r := Generate(QuizAnswers{ExperienceLevel: tt.level}, catalog)
			var got []string
			for _, c := range r.Categories {
				got = append(got, skillIDs(c)...)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), r.TotalSkills)
		})
	}
}

func TestGenerate_UnknownCategoriesSortLastStable(t *testing.T) {
	catalog := []Skill{
		skill("x1", "waacking", "beginner"),
		skill("f1", "freestyle-basics", "beginner"),
		skill("k1", "krump", "beginner"),
		skill("r1", "rhythm-musicality", "beginner"),
	}

	r := Generate(QuizAnswers{DanceStyle: "freestyle"}, catalog)

	assert.Equal(t, []string{"rhythm-musicality", "freestyle-basics", "waacking", "krump"}, categoryIDs(r))
	assert.True(t, r.Categories[0].IsPriority)
}

func TestGenerate_DefaultsForUnknownValues(t *testing.T) {
	r := Generate(QuizAnswers{DanceStyle: "salsa", WeeklyHours: "forever"}, sampleCatalog())

	assert.Equal(t, StyleAllAround, r.UserProfile.DanceStyle)
	assert.Equal(t, Hours3To5, r.UserProfile.WeeklyHours)
	assert.Equal(t, ExperienceUnspecified, r.UserProfile.ExperienceLevel)
	assert.Equal(t, DefaultPracticeEnvironment, r.UserProfile.PracticeEnvironment)
	assert.Equal(t, []string{}, r.UserProfile.Goals)
	assert.Equal(t, 3, r.RecommendedPerWeek)
	assert.Equal(t, 5, r.TotalSkills)
	assert.Empty(t, r.GoalRecommendations)
}

func TestGenerate_Pacing(t *testing.T) {
	catalog := make([]Skill, 0, 23)
	for i := 0; i < 23; i++ {
		catalog = append(catalog, skill(string(rune('a'+i)), "core-grooves", "beginner"))
	}

	tests := []struct {
		hours   string
		perWeek int
	}{
		{"1-3", 2},
		{"3-5", 3},
		{"5-10", 5},
		{"10+", 7},
		{"", 3},
	}

	for _, tt := range tests {
		t.Run(tt.hours, func(t *testing.T) {
			r := Generate(QuizAnswers{WeeklyHours: tt.hours}, catalog)
			assert.Equal(t, tt.perWeek, r.RecommendedPerWeek)
			wantWeeks := int(math.Ceil(float64(r.TotalSkills) / float64(r.RecommendedPerWeek)))
			assert.Equal(t, wantWeeks, r.EstimatedWeeks)
			assert.Equal(t, int(math.Ceil(float64(wantWeeks)/4)), r.EstimatedMonths)
		})
	}
}

func TestGenerate_GoalTipsFixedOrder(t *testing.T) {
	r := Generate(QuizAnswers{
		Goals: []string{"social", "unknown", "freestyle", "social", "battles"},
	}, sampleCatalog())

	require.Len(t, r.GoalRecommendations, 3)
	assert.Equal(t, "Focus extra time on improvisation and musicality", r.GoalRecommendations[0].Message)
	assert.Equal(t, "Practice power moves and build your confidence", r.GoalRecommendations[1].Message)
	assert.Equal(t, "Learn cypher etiquette and build community", r.GoalRecommendations[2].Message)
}

func TestGenerate_PrimaryGoalNormalized(t *testing.T) {
	r := Generate(QuizAnswers{PrimaryGoal: "choreography", PracticeEnvironment: "studio"}, sampleCatalog())

	assert.Equal(t, []string{"choreography"}, r.UserProfile.Goals)
	assert.Equal(t, "studio", r.UserProfile.PracticeEnvironment)
	require.Len(t, r.GoalRecommendations, 1)
	assert.Equal(t, []string{"core-grooves", "isolations"}, r.GoalRecommendations[0].Categories)
}

func TestGenerate_EmptyCatalog(t *testing.T) {
	r := Generate(QuizAnswers{DanceStyle: "breaking", Goals: []string{"battles"}}, nil)

	assert.Empty(t, r.Categories)
	assert.NotNil(t, r.Categories)
	assert.Equal(t, 0, r.TotalSkills)
	assert.Equal(t, 0, r.EstimatedWeeks)
	assert.Equal(t, 0, r.EstimatedMonths)
	assert.Len(t, r.GoalRecommendations, 1)
}

func TestGenerate_Completeness(t *testing.T) {
	catalog := append(sampleCatalog(),
		skill("chest-isolations", "isolations", "intermediate"),
		skill("popping-basics", "foundation-styles", "advanced"),
	)
	owner := make(map[string]string)
	for _, s := range catalog {
		owner[s.ID] = s.CategoryID
	}

	for _, style := range []string{"all-around", "freestyle", "choreography", "breaking", "popping-locking"} {
		for _, level := range []string{"complete-beginner", "some-experience", "intermediate", "advanced"} {
			r := Generate(QuizAnswers{DanceStyle: style, ExperienceLevel: level}, catalog)

			seen := make(map[string]bool)
			priority := 0
			for _, c := range r.Categories {
				assert.NotEmpty(t, c.Skills)
				if c.IsPriority {
					priority++
				}
				for _, s := range c.Skills {
					assert.Equal(t, owner[s.ID], c.ID)
					assert.False(t, seen[s.ID], "duplicate skill %s", s.ID)
					seen[s.ID] = true
				}
			}
			assert.LessOrEqual(t, priority, 1)
			if style == "all-around" {
				assert.Zero(t, priority)
			}
		}
	}
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	catalog := sampleCatalog()
	before, err := json.Marshal(catalog)
	require.NoError(t, err)

	r := Generate(QuizAnswers{DanceStyle: "choreography", ExperienceLevel: "advanced"}, catalog)
	r.Categories[0].Skills[0].KeyPoints[0] = "changed"
	r.Categories[0].Skills[0].PracticeDrills[0].Title = "changed"

	after, err := json.Marshal(catalog)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestGenerate_Idempotent(t *testing.T) {
	answers := QuizAnswers{
		DanceStyle:      "popping-locking",
		ExperienceLevel: "some-experience",
		WeeklyHours:     "5-10",
		Goals:           []string{"battles", "fitness"},
	}
	catalog := append(sampleCatalog(), skill("chest-isolations", "isolations", "intermediate"))

	first := Generate(answers, catalog)
	second := Generate(answers, catalog)
	assert.Equal(t, first, second)

	again := Generate(first.UserProfile.Answers(), catalog)
	assert.Equal(t, first, again)
}

func TestQuizAnswers_Normalize(t *testing.T) {
	got := QuizAnswers{DanceStyle: "Breaking", ExperienceLevel: "ADVANCED", PrimaryGoal: "social"}.Normalize()

	assert.Equal(t, QuizAnswers{
		DanceStyle:          "breaking",
		ExperienceLevel:     "advanced",
		WeeklyHours:         "3-5",
		Goals:               []string{"social"},
		PracticeEnvironment: "anywhere",
	}, got)
}

func TestParseDifficulty(t *testing.T) {
	d, ok := ParseDifficulty(" Intermediate ")
	assert.True(t, ok)
	assert.Equal(t, DifficultyIntermediate, d)

	_, ok = ParseDifficulty("expert")
	assert.False(t, ok)
}
