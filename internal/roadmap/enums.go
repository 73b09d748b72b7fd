package roadmap

import "strings"

type DanceStyle string

const (
	StyleAllAround      DanceStyle = "all-around"
	StyleFreestyle      DanceStyle = "freestyle"
	StyleChoreography   DanceStyle = "choreography"
	StyleBreaking       DanceStyle = "breaking"
	StylePoppingLocking DanceStyle = "popping-locking"
)

type ExperienceLevel string

const (
	// ExperienceUnspecified applies no difficulty filter.
	ExperienceUnspecified      ExperienceLevel = ""
	ExperienceCompleteBeginner ExperienceLevel = "complete-beginner"
	ExperienceSome             ExperienceLevel = "some-experience"
	ExperienceIntermediate     ExperienceLevel = "intermediate"
	ExperienceAdvanced         ExperienceLevel = "advanced"
)

type WeeklyHours string

const (
	Hours1To3   WeeklyHours = "1-3"
	Hours3To5   WeeklyHours = "3-5"
	Hours5To10  WeeklyHours = "5-10"
	Hours10Plus WeeklyHours = "10+"
)

type Goal string

const (
	GoalFreestyle    Goal = "freestyle"
	GoalBattles      Goal = "battles"
	GoalChoreography Goal = "choreography"
	GoalFitness      Goal = "fitness"
	GoalSocial       Goal = "social"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

const DefaultPracticeEnvironment = "anywhere"

// ParseDifficulty 大小写不敏感；无法识别时 ok 为 false
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return d, true
	}
	return d, false
}

func ParseDanceStyle(s string) (DanceStyle, bool) {
	st := DanceStyle(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := styleProfiles[st]; ok {
		return st, true
	}
	return StyleAllAround, false
}

func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	l := ExperienceLevel(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case ExperienceCompleteBeginner, ExperienceSome, ExperienceIntermediate, ExperienceAdvanced:
		return l, true
	}
	return ExperienceUnspecified, false
}

func ParseWeeklyHours(s string) (WeeklyHours, bool) {
	h := WeeklyHours(strings.TrimSpace(s))
	if _, ok := skillsPerWeek[h]; ok {
		return h, true
	}
	return Hours3To5, false
}

// normalized 是边界处一次性完成默认值处理后的答案
type normalized struct {
	style       DanceStyle
	experience  ExperienceLevel
	hours       WeeklyHours
	perWeek     int
	goals       []string
	environment string
}

func (a QuizAnswers) normalize() normalized {
	n := normalized{environment: DefaultPracticeEnvironment}
	n.style, _ = ParseDanceStyle(a.DanceStyle)
	n.experience, _ = ParseExperienceLevel(a.ExperienceLevel)

	n.hours, _ = ParseWeeklyHours(a.WeeklyHours)
	n.perWeek = skillsPerWeek[n.hours]

	switch {
	case len(a.Goals) > 0:
		n.goals = append([]string{}, a.Goals...)
	case a.PrimaryGoal != "":
		n.goals = []string{a.PrimaryGoal}
	default:
		n.goals = []string{}
	}

	if env := strings.TrimSpace(a.PracticeEnvironment); env != "" {
		n.environment = env
	}
	return n
}

// Normalize returns a copy of the answers with every default applied.
func (a QuizAnswers) Normalize() QuizAnswers {
	n := a.normalize()
	return QuizAnswers{
		DanceStyle:          string(n.style),
		ExperienceLevel:     string(n.experience),
		WeeklyHours:         string(n.hours),
		Goals:               n.goals,
		PracticeEnvironment: n.environment,
	}
}
