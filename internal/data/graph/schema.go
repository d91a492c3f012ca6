package graph

import (
	"context"

	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/platform/neo4jdb"
)

var constraints = []struct {
	name  string
	label string
}{
	{"user_id_unique", "USER"},
	{"book_id_unique", "BOOK"},
	{"reading_session_id_unique", "READING_SESSION"},
	{"reading_goal_id_unique", "READING_GOAL"},
	{"history_entry_id_unique", "HISTORY_ENTRY"},
	{"reading_history_id_unique", "READING_HISTORY"},
}

// EnsureSchema creates the id uniqueness constraints. Failures are logged and
// skipped; it returns how many constraints were applied.
func EnsureSchema(ctx context.Context, store neo4jdb.Store, log *logger.Logger) int {
	if log == nil {
		log = logger.NewNop()
	}
	applied := 0
	for _, c := range constraints {
		cypher := "CREATE CONSTRAINT " + c.name + " IF NOT EXISTS FOR (n:" + c.label + ") REQUIRE n.id IS UNIQUE"
		err := store.Write(ctx, func(ctx context.Context, tx neo4jdb.Tx) error {
			_, err := tx.Run(ctx, cypher, nil)
			return err
		})
		if err != nil {
			log.Warn("Schema constraint not applied", "constraint", c.name, "error", err)
			continue
		}
		applied++
	}
	log.Info("Graph schema ensured", "applied", applied, "total", len(constraints))
	return applied
}
