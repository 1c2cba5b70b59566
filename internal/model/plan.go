package model

// Option sets offered by the goal creation form. The generation prompt embeds
// the chosen values verbatim.
var (
	Timelines = []string{"1 week", "2 weeks", "1 month", "2 months", "3 months", "6 months"}

	DailyStudyTimes = []string{"30 minutes", "1 hour", "1.5 hours", "2 hours", "3+ hours"}

	Paces = []string{"relaxed", "moderate", "intensive"}
)

// GoalRequest is the input to plan generation and goal creation.
// swagger:model GoalRequest
type GoalRequest struct {
	UserID         uint   `json:"userId" validate:"required"`
	Title          string `json:"title" validate:"required,notblank,max=255"`
	Timeline       string `json:"timeline" validate:"required,timeline"`
	DailyStudyTime string `json:"dailyStudyTime" validate:"required,dailystudytime"`
	Pace           string `json:"pace" validate:"required,pace"`
	Description    string `json:"description" validate:"max=1000"`
}

// GeneratedTask is one normalised entry of a generated plan.
type GeneratedTask struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Type             TaskType `json:"type"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
	XPReward         int      `json:"xpReward"`
	OrderIndex       int      `json:"orderIndex"`
}

// PlanSummary is the part of a plan that is not a task.
type PlanSummary struct {
	TotalEstimatedHours float64  `json:"totalEstimatedHours"`
	DifficultyLevel     string   `json:"difficultyLevel"`
	LearningPath        []string `json:"learningPath"`
}

// PlanResult is the validated output of the plan generator.
type PlanResult struct {
	Tasks []GeneratedTask `json:"tasks"`
	PlanSummary
}

// Contains reports whether value is one of options.
func Contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
