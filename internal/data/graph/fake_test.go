package graph

import (
	"context"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/platform/neo4jdb"
)

// step answers the next statement whose text contains match.
type step struct {
	match string
	recs  []*neo4j.Record
	err   error
}

type call struct {
	cypher string
	params map[string]any
}

type scriptedTx struct {
	t     *testing.T
	steps []step
	calls []call
}

func (s *scriptedTx) Run(_ context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	s.t.Helper()
	s.calls = append(s.calls, call{cypher: cypher, params: params})
	if len(s.steps) == 0 {
		s.t.Fatalf("unexpected statement:\n%s", cypher)
	}
	next := s.steps[0]
	s.steps = s.steps[1:]
	if !strings.Contains(cypher, next.match) {
		s.t.Fatalf("statement %d: want text containing %q, got:\n%s", len(s.calls), next.match, cypher)
	}
	return next.recs, next.err
}

func (s *scriptedTx) done() {
	s.t.Helper()
	if len(s.steps) != 0 {
		s.t.Fatalf("%d scripted statements not executed, next %q", len(s.steps), s.steps[0].match)
	}
}

func (s *scriptedTx) param(i int, key string) any {
	s.t.Helper()
	if i >= len(s.calls) {
		s.t.Fatalf("statement %d not executed", i)
	}
	return s.calls[i].params[key]
}

type fakeStore struct {
	tx     *scriptedTx
	reads  int
	writes int
}

func (f *fakeStore) Read(ctx context.Context, fn neo4jdb.TxFunc) error {
	f.reads++
	return fn(ctx, f.tx)
}

func (f *fakeStore) Write(ctx context.Context, fn neo4jdb.TxFunc) error {
	f.writes++
	return fn(ctx, f.tx)
}

func script(t *testing.T, steps ...step) (*fakeStore, *scriptedTx) {
	tx := &scriptedTx{t: t, steps: steps}
	return &fakeStore{tx: tx}, tx
}

func record(kv ...any) *neo4j.Record {
	r := &neo4j.Record{}
	for i := 0; i+1 < len(kv); i += 2 {
		r.Keys = append(r.Keys, kv[i].(string))
		r.Values = append(r.Values, kv[i+1])
	}
	return r
}

func rows(recs ...*neo4j.Record) []*neo4j.Record { return recs }

var nop = logger.NewNop()

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
