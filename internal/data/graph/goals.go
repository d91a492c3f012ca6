package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/platform/neo4jdb"
)

type GoalRepo interface {
	List(ctx context.Context, userID string) ([]reading.Goal, error)
	// Upsert revises the active goal for spec.Period or creates one.
	Upsert(ctx context.Context, userID string, spec reading.GoalSpec, now time.Time) (reading.GoalResult, error)
	UpdateProgress(ctx context.Context, userID, goalID string, progress int, now time.Time) (reading.Goal, error)
	Cancel(ctx context.Context, userID, goalID string, now time.Time) (reading.Goal, error)
	Active(ctx context.Context, userID string, period reading.Period) (*reading.Goal, error)
	Completed(ctx context.Context, userID string) ([]reading.Goal, error)
	// BooksReadInPeriod counts distinct books finished in [start, end).
	BooksReadInPeriod(ctx context.Context, userID string, start, end time.Time) (int, error)
}

type goalRepo struct {
	base
}

func NewGoalRepo(store neo4jdb.Store, log *logger.Logger, metrics *observability.Metrics) GoalRepo {
	return &goalRepo{base: newBase(store, log, metrics, "GoalRepo")}
}

const goalColumns = `g.id AS id,
       g.period AS period,
       g.target AS target,
       g.startDate AS startDate,
       g.endDate AS endDate,
       g.progress AS progress,
       g.status AS status,
       g.createdAt AS createdAt,
       g.updatedAt AS updatedAt`

func (r *goalRepo) List(ctx context.Context, userID string) ([]reading.Goal, error) {
	return r.list(ctx, "list_goals", `
MATCH (:USER {id: $userId})-[:HAS_GOAL]->(g:READING_GOAL)
RETURN `+goalColumns+`
ORDER BY g.startDate DESC
`, userID)
}

func (r *goalRepo) Completed(ctx context.Context, userID string) ([]reading.Goal, error) {
	return r.list(ctx, "completed_goals", `
MATCH (:USER {id: $userId})-[:HAS_GOAL]->(g:READING_GOAL)
WHERE g.status = 'completed'
RETURN `+goalColumns+`
ORDER BY g.endDate DESC
`, userID)
}

func (r *goalRepo) list(ctx context.Context, op, cypher, userID string) ([]reading.Goal, error) {
	out := []reading.Goal{}
	err := r.read(ctx, op, func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, cypher, map[string]any{"userId": userID})
		if err != nil {
			return err
		}
		for _, rec := range recs {
			out = append(out, decodeGoal(rec))
		}
		return nil
	})
	if err != nil {
		return []reading.Goal{}, err
	}
	return out, nil
}

func (r *goalRepo) Active(ctx context.Context, userID string, period reading.Period) (*reading.Goal, error) {
	var out *reading.Goal
	err := r.read(ctx, "active_goal", func(ctx context.Context, tx neo4jdb.Tx) error {
		g, err := activeGoal(ctx, tx, userID, period)
		out = g
		return err
	})
	return out, err
}

func activeGoal(ctx context.Context, tx neo4jdb.Tx, userID string, period reading.Period) (*reading.Goal, error) {
	recs, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[:HAS_GOAL]->(g:READING_GOAL)
WHERE g.period = $period AND g.status = 'active'
RETURN `+goalColumns+`
ORDER BY g.createdAt DESC
LIMIT 1
`, map[string]any{"userId": userID, "period": string(period)})
	if err != nil {
		return nil, err
	}
	rec := neo4jdb.First(recs)
	if rec == nil {
		return nil, nil
	}
	g := decodeGoal(rec)
	return &g, nil
}

func (r *goalRepo) Upsert(ctx context.Context, userID string, spec reading.GoalSpec, now time.Time) (reading.GoalResult, error) {
	var out reading.GoalResult
	err := r.write(ctx, "set_goal", func(ctx context.Context, tx neo4jdb.Tx) error {
		users, err := tx.Run(ctx, `MATCH (u:USER {id: $userId}) RETURN u.id AS id`, map[string]any{"userId": userID})
		if err != nil {
			return err
		}
		if len(users) == 0 {
			return apperr.NotFound("user %s", userID)
		}

		existing, err := activeGoal(ctx, tx, userID, spec.Period)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := existing.Revise(spec, now); err != nil {
				return err
			}
			if err := saveGoal(ctx, tx, userID, *existing); err != nil {
				return err
			}
			out = reading.GoalResult{ID: existing.ID, Period: existing.Period, Target: existing.Target, Updated: true}
			return nil
		}

		g := reading.NewGoal(spec, now)
		if _, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId})
CREATE (g:READING_GOAL)
SET g = $goal
CREATE (u)-[:HAS_GOAL]->(g)
`, map[string]any{"userId": userID, "goal": goalParams(g)}); err != nil {
			return err
		}
		out = reading.GoalResult{ID: g.ID, Period: g.Period, Target: g.Target, Updated: false}
		return nil
	})
	if err != nil {
		return reading.GoalResult{}, err
	}
	return out, nil
}

func (r *goalRepo) UpdateProgress(ctx context.Context, userID, goalID string, progress int, now time.Time) (reading.Goal, error) {
	return r.mutate(ctx, "update_goal_progress", userID, goalID, func(g *reading.Goal) error {
		return g.ApplyProgress(progress, now)
	})
}

func (r *goalRepo) Cancel(ctx context.Context, userID, goalID string, now time.Time) (reading.Goal, error) {
	return r.mutate(ctx, "cancel_goal", userID, goalID, func(g *reading.Goal) error {
		return g.Cancel(now)
	})
}

// mutate loads one of the user's goals, applies fn and stores the result in one transaction.
func (r *goalRepo) mutate(ctx context.Context, op, userID, goalID string, fn func(*reading.Goal) error) (reading.Goal, error) {
	var out reading.Goal
	err := r.write(ctx, op, func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[:HAS_GOAL]->(g:READING_GOAL {id: $goalId})
RETURN `+goalColumns, map[string]any{"userId": userID, "goalId": goalID})
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		if rec == nil {
			return apperr.NotFound("reading goal %s", goalID)
		}
		g := decodeGoal(rec)
		if err := fn(&g); err != nil {
			return err
		}
		if err := saveGoal(ctx, tx, userID, g); err != nil {
			return err
		}
		out = g
		return nil
	})
	if err != nil {
		return reading.Goal{}, err
	}
	return out, nil
}

func saveGoal(ctx context.Context, tx neo4jdb.Tx, userID string, g reading.Goal) error {
	_, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[:HAS_GOAL]->(g:READING_GOAL {id: $goalId})
SET g += $goal
`, map[string]any{"userId": userID, "goalId": g.ID, "goal": goalParams(g)})
	return err
}

func (r *goalRepo) BooksReadInPeriod(ctx context.Context, userID string, start, end time.Time) (int, error) {
	var n int
	err := r.read(ctx, "books_read_in_period", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[:HAS_HISTORY]->(:READING_HISTORY)-[:CONTAINS_ENTRY]->(he:HISTORY_ENTRY)
WHERE he.action = 'finished' AND he.timestamp >= $start AND he.timestamp < $end
MATCH (he)-[:REFERENCES_BOOK]->(b:BOOK)
RETURN count(DISTINCT b) AS booksRead
`, map[string]any{"userId": userID, "start": start.UTC(), "end": end.UTC()})
		if err != nil {
			return err
		}
		n = neo4jdb.Int(neo4jdb.First(recs), "booksRead")
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func goalParams(g reading.Goal) map[string]any {
	p := map[string]any{
		"id":        g.ID,
		"period":    string(g.Period),
		"target":    int64(g.Target),
		"startDate": g.StartDate,
		"endDate":   g.EndDate,
		"progress":  int64(g.Progress),
		"status":    string(g.Status),
		"createdAt": g.CreatedAt,
	}
	if g.UpdatedAt != nil {
		p["updatedAt"] = *g.UpdatedAt
	}
	return p
}

func decodeGoal(rec *neo4j.Record) reading.Goal {
	g := reading.Goal{
		ID:        neo4jdb.String(rec, "id"),
		Period:    reading.Period(neo4jdb.String(rec, "period")),
		Target:    neo4jdb.Int(rec, "target"),
		Progress:  neo4jdb.Int(rec, "progress"),
		Status:    reading.GoalStatus(neo4jdb.String(rec, "status")),
		UpdatedAt: neo4jdb.Time(rec, "updatedAt"),
	}
	if g.Status == "" {
		g.Status = reading.GoalActive
	}
	if t := neo4jdb.Time(rec, "startDate"); t != nil {
		g.StartDate = *t
	}
	if t := neo4jdb.Time(rec, "endDate"); t != nil {
		g.EndDate = *t
	}
	if t := neo4jdb.Time(rec, "createdAt"); t != nil {
		g.CreatedAt = *t
	}
	return g
}
