package enrich

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/canopy/ai"
	"github.com/poiesic/canopy/core"
)

const contextPrefix = "[CONTEXT: "

// Enricher annotates a node forest with generated summaries and
// prepends ancestor context to leaf nodes before embedding.
type Enricher struct {
	summarizer ai.Summarizer
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures an Enricher.
type Option func(*Enricher) error

// WithPoolSize sets the worker pool size for concurrent summarization.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Enricher) error {
		if size < 1 {
			size = 1
		}

		if e.pool != nil {
			e.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		e.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEnricher creates a new Enricher backed by the given summarizer.
func NewEnricher(summarizer ai.Summarizer, opts ...Option) (*Enricher, error) {
	if summarizer == nil {
		return nil, ErrSummarizerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Enricher{
		summarizer: summarizer,
		pool:       pool,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}

	return e, nil
}

// Enrich summarizes every non-leaf node in the forest and builds the
// context breadcrumb for every leaf. Nodes whose summaries fail are
// marked degraded and returned; a degraded ancestor is simply skipped
// when assembling leaf breadcrumbs. Enrich only fails outright on an
// invalid forest or a cancelled context.
func (e *Enricher) Enrich(ctx context.Context, forest *core.Forest) ([]core.ID, error) {
	if forest == nil {
		return nil, ErrForestRequired
	}

	var (
		mu       sync.Mutex
		degraded []core.ID
	)

	// Summarize top-down so leaves see finished ancestor summaries.
	// Levels are processed one at a time; within a level nodes are
	// independent and run concurrently.
	for level := forest.Levels - 1; level >= 1; level-- {
		if err := ctx.Err(); err != nil {
			return degraded, err
		}

		nodes := forest.NodesAtLevel(level)

		var wg sync.WaitGroup
		for _, node := range nodes {
			wg.Add(1)
			node := node
			submitErr := e.pool.Submit(func() {
				defer wg.Done()

				summary, err := e.summarizer.Summarize(ctx, node.Text)
				if err != nil {
					e.logger.Warn("summary failed, marking node degraded",
						"node", node.Id, "level", node.Level, "err", err)
					node.Degraded = true
					mu.Lock()
					degraded = append(degraded, node.Id)
					mu.Unlock()
					return
				}
				node.SummaryText = summary
			})
			if submitErr != nil {
				wg.Done()
				wg.Wait()
				return degraded, submitErr
			}
		}
		wg.Wait()
	}

	for _, leaf := range forest.Leaves() {
		leaf.ContextText = e.breadcrumb(forest, leaf)
	}

	return degraded, nil
}

// breadcrumb assembles the ancestor summary chain for a leaf, ordered
// root to leaf. Ancestors without a summary are skipped. When no
// ancestor carries a summary the leaf text is returned unchanged so
// embedding falls back to the raw chunk.
func (e *Enricher) breadcrumb(forest *core.Forest, leaf *core.Node) string {
	var summaries []string
	for id := leaf.ParentId; id != 0; {
		parent := forest.Node(id)
		if parent == nil {
			break
		}
		if parent.SummaryText != "" {
			summaries = append(summaries, parent.SummaryText)
		}
		id = parent.ParentId
	}

	if len(summaries) == 0 {
		return ""
	}

	// Collected child-to-root; reverse into reading order.
	for i, j := 0, len(summaries)-1; i < j; i, j = i+1, j-1 {
		summaries[i], summaries[j] = summaries[j], summaries[i]
	}

	return contextPrefix + strings.Join(summaries, " → ") + "]\n" + leaf.Text
}

// Release releases the worker pool.
// The enricher should not be used after calling Release.
func (e *Enricher) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}
