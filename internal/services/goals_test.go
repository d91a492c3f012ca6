package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GORLEABHILASH/booklovers/internal/clients/redis"
	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
)

func activeMonthly() *reading.Goal {
	start, end := reading.PeriodMonthly.Window(t0)
	return &reading.Goal{
		ID:        "GOAL-1",
		Period:    reading.PeriodMonthly,
		Target:    3,
		StartDate: start,
		EndDate:   end,
		Status:    reading.GoalActive,
		CreatedAt: start,
	}
}

func TestSetGoalLocksPeriod(t *testing.T) {
	repo := &fakeGoals{}
	locker := &fakeLocker{}
	svc := NewReadingGoalService(nop, repo, locker, time.Second, clock)

	res, err := svc.SetGoal(context.Background(), "USER-1", reading.GoalInput{Period: "Monthly", Target: 4})
	if err != nil {
		t.Fatalf("SetGoal: %v", err)
	}
	if res.Updated || res.Period != reading.PeriodMonthly || res.Target != 4 {
		t.Fatalf("result: got=%+v", res)
	}
	if len(locker.keys) != 1 || locker.keys[0] != "goal:USER-1:monthly" {
		t.Fatalf("lock keys: got=%v", locker.keys)
	}
	spec := repo.upserts[0]
	wantStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !spec.StartDate.Equal(wantStart) || !spec.EndDate.Equal(wantStart.AddDate(0, 1, 0)) {
		t.Fatalf("window: got=%v..%v", spec.StartDate, spec.EndDate)
	}

	res, err = svc.SetGoal(context.Background(), "USER-1", reading.GoalInput{Period: "monthly", Target: 6})
	if err != nil {
		t.Fatalf("SetGoal again: %v", err)
	}
	if !res.Updated {
		t.Fatalf("second SetGoal should report an update")
	}
}

func TestSetGoalValidates(t *testing.T) {
	repo := &fakeGoals{}
	locker := &fakeLocker{}
	svc := NewReadingGoalService(nop, repo, locker, time.Second, clock)

	cases := []reading.GoalInput{
		{Period: "daily", Target: 1},
		{Period: "weekly", Target: 0},
	}
	for _, in := range cases {
		if _, err := svc.SetGoal(context.Background(), "USER-1", in); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("%+v: want ErrInvalidArgument got=%v", in, err)
		}
	}
	if len(locker.keys) != 0 || len(repo.upserts) != 0 {
		t.Fatalf("invalid input must not lock or write")
	}
}

func TestSetGoalLockTimeout(t *testing.T) {
	svc := NewReadingGoalService(nop, &fakeGoals{}, &fakeLocker{err: redis.ErrLockTimeout}, time.Second, clock)
	if _, err := svc.SetGoal(context.Background(), "USER-1", reading.GoalInput{Period: "weekly", Target: 1}); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("want ErrConflict got=%v", err)
	}
}

func TestUpdateGoalProgressRejectsNegative(t *testing.T) {
	repo := &fakeGoals{active: activeMonthly()}
	svc := NewReadingGoalService(nop, repo, nil, 0, clock)
	if _, err := svc.UpdateGoalProgress(context.Background(), "USER-1", "GOAL-1", -1); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument got=%v", err)
	}
	if len(repo.progress) != 0 {
		t.Fatalf("repo must not run")
	}
}

func TestActiveGoalBadPeriod(t *testing.T) {
	svc := NewReadingGoalService(nop, &fakeGoals{}, nil, 0, clock)
	if _, err := svc.ActiveGoal(context.Background(), "USER-1", "fortnightly"); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument got=%v", err)
	}
	got, err := svc.ActiveGoal(context.Background(), "USER-1", "weekly")
	if err != nil || got != nil {
		t.Fatalf("no active goal: got=%v err=%v", got, err)
	}
}

func TestGoalReadsSwallowStoreErrors(t *testing.T) {
	svc := NewReadingGoalService(nop, &fakeGoals{err: errStore}, nil, 0, clock)
	ctx := context.Background()

	if got, err := svc.ListGoals(ctx, "USER-1"); err != nil || got == nil {
		t.Fatalf("ListGoals: got=%v err=%v", got, err)
	}
	if got, err := svc.CompletedGoals(ctx, "USER-1"); err != nil || got == nil {
		t.Fatalf("CompletedGoals: got=%v err=%v", got, err)
	}
	if got, err := svc.ActiveGoal(ctx, "USER-1", "annual"); err != nil || got != nil {
		t.Fatalf("ActiveGoal: got=%v err=%v", got, err)
	}
	if n, err := svc.BooksReadInPeriod(ctx, "USER-1", t0, t0.Add(time.Hour)); err != nil || n != 0 {
		t.Fatalf("BooksReadInPeriod: got=%d err=%v", n, err)
	}
}

func TestBooksReadInPeriodRejectsEmptyWindow(t *testing.T) {
	svc := NewReadingGoalService(nop, &fakeGoals{booksRead: 3}, nil, 0, clock)
	if _, err := svc.BooksReadInPeriod(context.Background(), "USER-1", t0, t0); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument got=%v", err)
	}
	n, err := svc.BooksReadInPeriod(context.Background(), "USER-1", t0, t0.AddDate(0, 0, 7))
	if err != nil || n != 3 {
		t.Fatalf("count: want=3 got=%d err=%v", n, err)
	}
}

func TestSyncGoalProgressCompletesGoal(t *testing.T) {
	repo := &fakeGoals{active: activeMonthly(), booksRead: 3}
	locker := &fakeLocker{}
	svc := NewReadingGoalService(nop, repo, locker, time.Second, clock)

	got, err := svc.SyncGoalProgress(context.Background(), "USER-1", "monthly")
	if err != nil {
		t.Fatalf("SyncGoalProgress: %v", err)
	}
	if got.Progress != 3 || got.Status != reading.GoalCompleted {
		t.Fatalf("goal: got=%+v", got)
	}
	if len(repo.progress) != 1 || repo.progress[0] != 3 {
		t.Fatalf("progress writes: got=%v", repo.progress)
	}
	if len(locker.keys) != 1 || locker.keys[0] != "goal:USER-1:monthly" {
		t.Fatalf("lock keys: got=%v", locker.keys)
	}
}

func TestSyncGoalProgressWithoutActiveGoal(t *testing.T) {
	svc := NewReadingGoalService(nop, &fakeGoals{}, &fakeLocker{}, time.Second, clock)
	if _, err := svc.SyncGoalProgress(context.Background(), "USER-1", "weekly"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound got=%v", err)
	}
}

func TestCancelGoalTerminal(t *testing.T) {
	g := activeMonthly()
	g.Status = reading.GoalCompleted
	svc := NewReadingGoalService(nop, &fakeGoals{active: g}, nil, 0, clock)
	if _, err := svc.CancelGoal(context.Background(), "USER-1", "GOAL-1"); !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("want ErrInvalidState got=%v", err)
	}
}
