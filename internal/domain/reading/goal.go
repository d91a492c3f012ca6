package reading

import (
	"time"

	"github.com/google/uuid"

	"github.com/GORLEABHILASH/booklovers/internal/normalization"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/pkg/pointers"
)

type Period string

const (
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodBiannual  Period = "biannual"
	PeriodAnnual    Period = "annual"
)

func ParsePeriod(raw string) (Period, error) {
	switch p := Period(normalization.ParseInputString(raw)); p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodBiannual, PeriodAnnual:
		return p, nil
	default:
		return "", apperr.InvalidArgument("unknown goal period %q", raw)
	}
}

// Window returns the calendar window [start, end) of the period containing now, in UTC.
// Weeks start on Monday.
func (p Period) Window(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch p {
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case PeriodMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	case PeriodQuarterly:
		m := time.Month((int(now.Month())-1)/3*3 + 1)
		start := time.Date(now.Year(), m, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 3, 0)
	case PeriodBiannual:
		m := time.January
		if now.Month() >= time.July {
			m = time.July
		}
		start := time.Date(now.Year(), m, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 6, 0)
	default:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0)
	}
}

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalCancelled GoalStatus = "cancelled"
)

func (s GoalStatus) Terminal() bool {
	return s == GoalCompleted || s == GoalCancelled
}

type Goal struct {
	ID        string     `json:"id"`
	Period    Period     `json:"period"`
	Target    int        `json:"target"`
	StartDate time.Time  `json:"startDate"`
	EndDate   time.Time  `json:"endDate"`
	Progress  int        `json:"progress"`
	Status    GoalStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// GoalInput is a create-or-update request. Missing dates default to the period window.
type GoalInput struct {
	Period    string     `json:"period"`
	Target    int        `json:"target"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// GoalSpec is a validated GoalInput.
type GoalSpec struct {
	Period    Period
	Target    int
	StartDate time.Time
	EndDate   time.Time
}

func (in GoalInput) Validate(now time.Time) (GoalSpec, error) {
	period, err := ParsePeriod(in.Period)
	if err != nil {
		return GoalSpec{}, err
	}
	if in.Target <= 0 {
		return GoalSpec{}, apperr.InvalidArgument("goal target must be > 0, got %d", in.Target)
	}
	start, end := period.Window(now)
	start = pointers.Deref(in.StartDate, start).UTC()
	end = pointers.Deref(in.EndDate, end).UTC()
	if !end.After(start) {
		return GoalSpec{}, apperr.InvalidArgument("goal end date must be after start date")
	}
	return GoalSpec{Period: period, Target: in.Target, StartDate: start, EndDate: end}, nil
}

type GoalResult struct {
	ID      string `json:"id"`
	Period  Period `json:"period"`
	Target  int    `json:"target"`
	Updated bool   `json:"updated"`
}

func NewGoalID() string {
	return "GOAL-" + uuid.NewString()
}

func NewGoal(spec GoalSpec, now time.Time) Goal {
	return Goal{
		ID:        NewGoalID(),
		Period:    spec.Period,
		Target:    spec.Target,
		StartDate: spec.StartDate,
		EndDate:   spec.EndDate,
		Progress:  0,
		Status:    GoalActive,
		CreatedAt: now.UTC(),
	}
}

// Revise changes target and window of an active goal. Reaching the target
// through a lowered target completes the goal.
func (g *Goal) Revise(spec GoalSpec, now time.Time) error {
	if g.Status.Terminal() {
		return apperr.InvalidState("goal %s is %s", g.ID, g.Status)
	}
	g.Target = spec.Target
	g.StartDate = spec.StartDate
	g.EndDate = spec.EndDate
	g.touch(now)
	g.completeIfReached()
	return nil
}

// ApplyProgress records progress and completes the goal once the target is reached.
func (g *Goal) ApplyProgress(progress int, now time.Time) error {
	if progress < 0 {
		return apperr.InvalidArgument("goal progress must be >= 0, got %d", progress)
	}
	if g.Status.Terminal() {
		return apperr.InvalidState("goal %s is %s", g.ID, g.Status)
	}
	g.Progress = progress
	g.touch(now)
	g.completeIfReached()
	return nil
}

func (g *Goal) Cancel(now time.Time) error {
	if g.Status.Terminal() {
		return apperr.InvalidState("goal %s is %s", g.ID, g.Status)
	}
	g.Status = GoalCancelled
	g.touch(now)
	return nil
}

func (g *Goal) completeIfReached() {
	if g.Status == GoalActive && g.Target > 0 && g.Progress >= g.Target {
		g.Status = GoalCompleted
	}
}

func (g *Goal) touch(now time.Time) {
	t := now.UTC()
	g.UpdatedAt = &t
}
