package services

import (
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/GORLEABHILASH/booklovers/internal/observability"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

// fanout runs independent page branches concurrently. A failing branch keeps
// its zero value and is named in the failed list; it never cancels the others.
type fanout struct {
	page    string
	log     *logger.Logger
	metrics *observability.Metrics

	g      errgroup.Group
	mu     sync.Mutex
	failed []string
}

func newFanout(page string, log *logger.Logger, metrics *observability.Metrics) *fanout {
	return &fanout{page: page, log: log, metrics: metrics}
}

func (f *fanout) run(name string, fn func() error) {
	f.g.Go(func() error {
		if err := fn(); err != nil {
			f.mu.Lock()
			f.failed = append(f.failed, name)
			f.mu.Unlock()
			f.metrics.IncBranchFailure(f.page, name)
			f.log.Warn("Page branch failed", "page", f.page, "branch", name, "error", err)
		}
		return nil
	})
}

func (f *fanout) wait() []string {
	_ = f.g.Wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string{}, f.failed...)
	sort.Strings(out)
	return out
}

// into stores load's result in dst only when it succeeds.
func into[T any](dst *T, load func() (T, error)) func() error {
	return func() error {
		v, err := load()
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}
