package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/GORLEABHILASH/booklovers/internal/clients/redis"
	"github.com/GORLEABHILASH/booklovers/internal/data/graph"
	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

type ReadingGoalService interface {
	ListGoals(ctx context.Context, userID string) ([]reading.Goal, error)
	SetGoal(ctx context.Context, userID string, in reading.GoalInput) (reading.GoalResult, error)
	UpdateGoalProgress(ctx context.Context, userID, goalID string, progress int) (reading.Goal, error)
	ActiveGoal(ctx context.Context, userID, period string) (*reading.Goal, error)
	CancelGoal(ctx context.Context, userID, goalID string) (reading.Goal, error)
	CompletedGoals(ctx context.Context, userID string) ([]reading.Goal, error)
	BooksReadInPeriod(ctx context.Context, userID string, start, end time.Time) (int, error)
	// SyncGoalProgress recounts finished books inside the active goal's window.
	SyncGoalProgress(ctx context.Context, userID, period string) (reading.Goal, error)
}

type readingGoalService struct {
	log     *logger.Logger
	goals   graph.GoalRepo
	locker  redis.Locker
	lockTTL time.Duration
	now     func() time.Time
}

func NewReadingGoalService(
	log *logger.Logger,
	goals graph.GoalRepo,
	locker redis.Locker,
	lockTTL time.Duration,
	now func() time.Time,
) ReadingGoalService {
	if now == nil {
		now = time.Now
	}
	return &readingGoalService{
		log:     log.With("service", "ReadingGoalService"),
		goals:   goals,
		locker:  locker,
		lockTTL: lockTTL,
		now:     now,
	}
}

func (s *readingGoalService) ListGoals(ctx context.Context, userID string) ([]reading.Goal, error) {
	out, err := s.goals.List(ctx, userID)
	if err != nil {
		s.log.Warn("Goal listing failed", "user_id", userID, "error", err)
		return []reading.Goal{}, nil
	}
	return out, nil
}

func (s *readingGoalService) SetGoal(ctx context.Context, userID string, in reading.GoalInput) (res reading.GoalResult, err error) {
	ctx, span := observability.StartSpan(ctx, "ReadingGoalService.SetGoal",
		attribute.String("user.id", userID), attribute.String("goal.period", in.Period))
	defer func() { observability.EndSpan(span, err) }()

	now := s.now()
	spec, err := in.Validate(now)
	if err != nil {
		return reading.GoalResult{}, err
	}
	err = withLock(ctx, s.locker, goalLockKey(userID, string(spec.Period)), s.lockTTL, func() error {
		var uerr error
		res, uerr = s.goals.Upsert(ctx, userID, spec, now)
		return uerr
	})
	if err != nil {
		s.log.Error("Failed to set reading goal", "user_id", userID, "period", spec.Period, "error", err)
		return reading.GoalResult{}, err
	}
	return res, nil
}

func (s *readingGoalService) UpdateGoalProgress(ctx context.Context, userID, goalID string, progress int) (reading.Goal, error) {
	if progress < 0 {
		return reading.Goal{}, apperr.InvalidArgument("goal progress must be >= 0, got %d", progress)
	}
	g, err := s.goals.UpdateProgress(ctx, userID, goalID, progress, s.now())
	if err != nil {
		s.log.Error("Failed to update goal progress", "user_id", userID, "goal_id", goalID, "error", err)
		return reading.Goal{}, err
	}
	return g, nil
}

func (s *readingGoalService) ActiveGoal(ctx context.Context, userID, raw string) (*reading.Goal, error) {
	period, err := reading.ParsePeriod(raw)
	if err != nil {
		return nil, err
	}
	g, err := s.goals.Active(ctx, userID, period)
	if err != nil {
		s.log.Warn("Active goal lookup failed", "user_id", userID, "period", period, "error", err)
		return nil, nil
	}
	return g, nil
}

func (s *readingGoalService) CancelGoal(ctx context.Context, userID, goalID string) (reading.Goal, error) {
	g, err := s.goals.Cancel(ctx, userID, goalID, s.now())
	if err != nil {
		s.log.Error("Failed to cancel goal", "user_id", userID, "goal_id", goalID, "error", err)
		return reading.Goal{}, err
	}
	return g, nil
}

func (s *readingGoalService) CompletedGoals(ctx context.Context, userID string) ([]reading.Goal, error) {
	out, err := s.goals.Completed(ctx, userID)
	if err != nil {
		s.log.Warn("Completed goals lookup failed", "user_id", userID, "error", err)
		return []reading.Goal{}, nil
	}
	return out, nil
}

func (s *readingGoalService) BooksReadInPeriod(ctx context.Context, userID string, start, end time.Time) (int, error) {
	if !end.After(start) {
		return 0, apperr.InvalidArgument("period end must be after start")
	}
	n, err := s.goals.BooksReadInPeriod(ctx, userID, start, end)
	if err != nil {
		s.log.Warn("Books read count failed", "user_id", userID, "error", err)
		return 0, nil
	}
	return n, nil
}

func (s *readingGoalService) SyncGoalProgress(ctx context.Context, userID, raw string) (out reading.Goal, err error) {
	ctx, span := observability.StartSpan(ctx, "ReadingGoalService.SyncGoalProgress",
		attribute.String("user.id", userID), attribute.String("goal.period", raw))
	defer func() { observability.EndSpan(span, err) }()

	period, err := reading.ParsePeriod(raw)
	if err != nil {
		return reading.Goal{}, err
	}
	err = withLock(ctx, s.locker, goalLockKey(userID, string(period)), s.lockTTL, func() error {
		g, aerr := s.goals.Active(ctx, userID, period)
		if aerr != nil {
			return aerr
		}
		if g == nil {
			return apperr.NotFound("no active %s goal", period)
		}
		n, cerr := s.goals.BooksReadInPeriod(ctx, userID, g.StartDate, g.EndDate)
		if cerr != nil {
			return cerr
		}
		updated, uerr := s.goals.UpdateProgress(ctx, userID, g.ID, n, s.now())
		if uerr != nil {
			return uerr
		}
		out = updated
		return nil
	})
	if err != nil {
		s.log.Error("Failed to sync goal progress", "user_id", userID, "period", period, "error", err)
		return reading.Goal{}, err
	}
	return out, nil
}
