package roadmap

// PracticeDrill 练习项
type PracticeDrill struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// CategoryMeta is the category metadata the catalog duplicates onto every skill.
type CategoryMeta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Color       string `json:"color"`
}

type Skill struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	CategoryID     string          `json:"-"`
	Category       CategoryMeta    `json:"-"`
	Difficulty     string          `json:"difficulty"`
	Duration       string          `json:"duration"`
	VideoURL       string          `json:"videoUrl,omitempty"`
	Description    string          `json:"description"`
	KeyPoints      []string        `json:"keyPoints"`
	CommonMistakes []string        `json:"commonMistakes"`
	PracticeDrills []PracticeDrill `json:"practiceDrills"`
	Prerequisites  []string        `json:"prerequisites"`
}

type Category struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Difficulty      string  `json:"difficulty"`
	Color           string  `json:"color"`
	Skills          []Skill `json:"skills"`
	IsPriority      bool    `json:"isPriority,omitempty"`
	PriorityMessage string  `json:"priorityMessage,omitempty"`
}

// QuizAnswers 是引导问卷的原始答案，按原样持久化
type QuizAnswers struct {
	DanceStyle          string   `json:"danceStyle"`
	ExperienceLevel     string   `json:"experienceLevel"`
	WeeklyHours         string   `json:"weeklyHours,omitempty"`
	Goals               []string `json:"goals,omitempty"`
	PrimaryGoal         string   `json:"primaryGoal,omitempty"`
	PracticeEnvironment string   `json:"practiceEnvironment,omitempty"`
}

type GoalRecommendation struct {
	Message    string   `json:"message"`
	Categories []string `json:"categories"`
}

type UserProfile struct {
	DanceStyle          DanceStyle      `json:"danceStyle"`
	ExperienceLevel     ExperienceLevel `json:"experienceLevel,omitempty"`
	WeeklyHours         WeeklyHours     `json:"weeklyHours"`
	Goals               []string        `json:"goals"`
	PracticeEnvironment string          `json:"practiceEnvironment"`
}

type GeneratedRoadmap struct {
	Categories          []Category           `json:"categories"`
	TotalSkills         int                  `json:"totalSkills"`
	RecommendedPerWeek  int                  `json:"recommendedPerWeek"`
	EstimatedWeeks      int                  `json:"estimatedWeeks"`
	EstimatedMonths     int                  `json:"estimatedMonths"`
	GoalRecommendations []GoalRecommendation `json:"goalRecommendations"`
	UserProfile         UserProfile          `json:"userProfile"`
}

// Answers re-expands the profile echo into quiz answers.
func (p UserProfile) Answers() QuizAnswers {
	return QuizAnswers{
		DanceStyle:          string(p.DanceStyle),
		ExperienceLevel:     string(p.ExperienceLevel),
		WeeklyHours:         string(p.WeeklyHours),
		Goals:               append([]string(nil), p.Goals...),
		PracticeEnvironment: p.PracticeEnvironment,
	}
}
