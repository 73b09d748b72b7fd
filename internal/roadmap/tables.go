package roadmap

// Balanced 表示该风格没有重点分类
const Balanced = "balanced"

const PriorityMessage = "Recommended focus area for your style"

// unknownCategoryIndex sorts categories missing from a style ordering last.
const unknownCategoryIndex = 999

type styleProfile struct {
	order    []string
	emphasis string
}

var styleProfiles = map[DanceStyle]styleProfile{
	StyleAllAround: {
		order:    []string{"rhythm-musicality", "core-grooves", "isolations", "foundation-styles", "freestyle-basics"},
		emphasis: Balanced,
	},
	StyleFreestyle: {
		order:    []string{"rhythm-musicality", "freestyle-basics", "core-grooves", "isolations", "foundation-styles"},
		emphasis: "rhythm-musicality",
	},
	StyleChoreography: {
		order:    []string{"core-grooves", "rhythm-musicality", "isolations", "freestyle-basics", "foundation-styles"},
		emphasis: "core-grooves",
	},
	StyleBreaking: {
		order:    []string{"core-grooves", "foundation-styles", "isolations", "rhythm-musicality", "freestyle-basics"},
		emphasis: "foundation-styles",
	},
	StylePoppingLocking: {
		order:    []string{"isolations", "foundation-styles", "core-grooves", "rhythm-musicality", "freestyle-basics"},
		emphasis: "isolations",
	},
}

var skillsPerWeek = map[WeeklyHours]int{
	Hours1To3:   2,
	Hours3To5:   3,
	Hours5To10:  5,
	Hours10Plus: 7,
}

type goalTip struct {
	goal       Goal
	message    string
	categories []string
}

// 按固定顺序检查，与输入顺序无关
var goalTips = []goalTip{
	{GoalFreestyle, "Focus extra time on improvisation and musicality", []string{"freestyle-basics", "rhythm-musicality"}},
	{GoalBattles, "Practice power moves and build your confidence", []string{"foundation-styles", "freestyle-basics"}},
	{GoalChoreography, "Master clean execution and transitions", []string{"core-grooves", "isolations"}},
	{GoalFitness, "High-energy grooves will boost your cardio", []string{"core-grooves", "foundation-styles"}},
	{GoalSocial, "Learn cypher etiquette and build community", []string{"freestyle-basics", "rhythm-musicality"}},
}

// Emphasis returns the emphasis category of a style, or Balanced.
func Emphasis(style DanceStyle) string {
	if p, ok := styleProfiles[style]; ok {
		return p.emphasis
	}
	return styleProfiles[StyleAllAround].emphasis
}
