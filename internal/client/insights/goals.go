package insights

import (
	"fmt"

	"github.com/dmitrijs2005/lifedash/internal/client/models"
)

// ProgressPercent is current/target as a percentage, capped at 100. A
// non-positive target yields 0.
func ProgressPercent(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return min(current/target*100, 100)
}

type UrgencyLevel int

const (
	UrgencyNormal UrgencyLevel = iota
	UrgencyUrgent
	UrgencyOverdue
)

func (u UrgencyLevel) String() string {
	switch u {
	case UrgencyUrgent:
		return "urgent"
	case UrgencyOverdue:
		return "overdue"
	default:
		return "normal"
	}
}

// UrgentWithinDays is the window, inclusive, in which a deadline is urgent.
const UrgentWithinDays = 7

func Urgency(daysRemaining int) UrgencyLevel {
	switch {
	case daysRemaining < 0:
		return UrgencyOverdue
	case daysRemaining <= UrgentWithinDays:
		return UrgencyUrgent
	default:
		return UrgencyNormal
	}
}

// DaysLabel renders a deadline distance, e.g. "3 days" or "2 days overdue".
func DaysLabel(daysRemaining int) string {
	if daysRemaining < 0 {
		return fmt.Sprintf("%d days overdue", -daysRemaining)
	}
	return fmt.Sprintf("%d days", daysRemaining)
}

// Summary is the goal dashboard's tile row.
type Summary struct {
	TotalGoals      int
	CompletedGoals  int
	OngoingGoals    int
	OverallProgress float64
	Goals           []GoalProgress
}

type GoalProgress struct {
	Goal    models.Goal
	Percent float64
}

// Summarize pairs each goal with its clamped progress and copies the
// server's statistics, falling back to zeros when none were fetched.
func Summarize(goals []models.Goal, stats *models.GoalStatistics) Summary {
	var s Summary
	if stats != nil {
		s.TotalGoals = stats.TotalGoals
		s.CompletedGoals = stats.CompletedGoals
		s.OngoingGoals = stats.OngoingGoals
		s.OverallProgress = stats.OverallProgress
	}
	s.Goals = make([]GoalProgress, len(goals))
	for i, g := range goals {
		s.Goals[i] = GoalProgress{Goal: g, Percent: ProgressPercent(g.CurrentValue, g.TargetValue)}
	}
	return s
}
