package models

type GoalCategory string

const (
	CategoryHealth    GoalCategory = "Health"
	CategoryFinance   GoalCategory = "Finance"
	CategoryEducation GoalCategory = "Education"
	CategoryCareer    GoalCategory = "Career"
	CategoryPersonal  GoalCategory = "Personal"
)

// GoalCategories lists the categories in display order.
var GoalCategories = []GoalCategory{CategoryHealth, CategoryFinance, CategoryEducation, CategoryCareer, CategoryPersonal}

type GoalType string

const (
	GoalTypeAutomatic     GoalType = "Automatic"
	GoalTypeManual        GoalType = "Manual"
	GoalTypeSemiAutomatic GoalType = "Semi-Automatic"
)

var GoalTypes = []GoalType{GoalTypeAutomatic, GoalTypeManual, GoalTypeSemiAutomatic}

type GoalStatus string

const (
	GoalStatusOngoing   GoalStatus = "ongoing"
	GoalStatusCompleted GoalStatus = "completed"
)

// Frequencies offered by the goal form; the field is optional.
var Frequencies = []string{"Daily", "Weekly", "Monthly"}

// Goal is a tracked goal. CurrentValue, Status and Deadline are computed by
// the backend; dates are exchanged as YYYY-MM-DD strings.
type Goal struct {
	ID               ID           `json:"id,omitempty"`
	Title            string       `json:"title"`
	Category         GoalCategory `json:"category"`
	Description      *string      `json:"description"`
	Type             GoalType     `json:"type"`
	Metric           *string      `json:"metric"`
	TargetValue      float64      `json:"target_value"`
	StartValue       float64      `json:"start_value"`
	CurrentValue     float64      `json:"current_value,omitempty"`
	StartDate        string       `json:"start_date"`
	EndDate          string       `json:"end_date"`
	Frequency        *string      `json:"frequency"`
	RemindersEnabled bool         `json:"reminders_enabled"`
	Status           GoalStatus   `json:"status,omitempty"`
	Deadline         string       `json:"deadline,omitempty"`
}

// GoalStatistics is server-computed and treated as opaque.
type GoalStatistics struct {
	TotalGoals      int     `json:"total_goals"`
	CompletedGoals  int     `json:"completed_goals"`
	OngoingGoals    int     `json:"ongoing_goals"`
	OverallProgress float64 `json:"overall_progress"`
}

// UpcomingDeadline is a read-only projection of a goal.
type UpcomingDeadline struct {
	Goal
	DaysRemaining      int     `json:"days_remaining"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// ProgressUpdate is the body of POST /goals/{id}/progress.
type ProgressUpdate struct {
	Value float64 `json:"value"`
	Note  string  `json:"note,omitempty"`
}

// Clone returns a deep copy; pointer fields are not shared.
func (g Goal) Clone() Goal {
	g.Description = cloneString(g.Description)
	g.Metric = cloneString(g.Metric)
	g.Frequency = cloneString(g.Frequency)
	return g
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// StringPtr returns nil for "" and a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
