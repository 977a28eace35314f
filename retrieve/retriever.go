package retrieve

import (
	"context"
	"log/slog"
	"slices"

	"github.com/poiesic/canopy/ai"
	"github.com/poiesic/canopy/core"
	"github.com/poiesic/canopy/storage"
)

const (
	// DefaultTopK is the number of leaf matches fetched per query.
	DefaultTopK = 6

	// DefaultMergeThreshold is the fraction of a parent's children that
	// must be retrieved before the children collapse into the parent.
	DefaultMergeThreshold = 0.5
)

// Retriever performs auto-merging retrieval over a hierarchical node
// collection: leaf matches whose siblings were also retrieved are
// promoted to their shared parent, recursively, so results carry the
// widest context the evidence supports.
type Retriever struct {
	nodeRepository       storage.NodeRepository
	collectionRepository storage.CollectionRepository
	embedder             ai.Embedder
	topK                 int
	mergeThreshold       float64
	logger               *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithTopK sets how many leaf matches seed the merge.
// Default is DefaultTopK.
func WithTopK(k int) Option {
	return func(r *Retriever) error {
		if k < 1 {
			return ErrInvalidTopK
		}
		r.topK = k
		return nil
	}
}

// WithMergeThreshold sets the child coverage fraction that triggers
// promotion to the parent. Default is DefaultMergeThreshold.
func WithMergeThreshold(threshold float64) Option {
	return func(r *Retriever) error {
		if threshold <= 0 || threshold > 1 {
			return ErrInvalidThreshold
		}
		r.mergeThreshold = threshold
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a new Retriever.
func NewRetriever(
	nodeRepository storage.NodeRepository,
	collectionRepository storage.CollectionRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Retriever, error) {
	if nodeRepository == nil {
		return nil, ErrNodeRepositoryRequired
	}
	if collectionRepository == nil {
		return nil, ErrCollectionRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Retriever{
		nodeRepository:       nodeRepository,
		collectionRepository: collectionRepository,
		embedder:             embedder,
		topK:                 DefaultTopK,
		mergeThreshold:       DefaultMergeThreshold,
		logger:               slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve embeds the query, finds the most similar leaves and merges
// them upward. An empty result is not an error.
func (r *Retriever) Retrieve(ctx context.Context, collection, query string) (core.RetrievedSet, error) {
	return r.RetrieveWithMonitor(ctx, collection, query, nil)
}

// RetrieveWithMonitor is Retrieve with merge decisions reported to the
// given monitor. A nil monitor is allowed.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, collection, query string, monitor Monitor) (core.RetrievedSet, error) {
	if monitor == nil {
		monitor = noopMonitor{}
	}

	col, err := r.collectionRepository.GetCollection(ctx, collection)
	if err != nil {
		return nil, err
	}

	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	matches, err := r.nodeRepository.FindSimilarLeaves(ctx, collection, vector, r.topK)
	if err != nil {
		return nil, err
	}
	monitor.LeafMatches(matches)

	if len(matches) == 0 {
		return core.RetrievedSet{}, nil
	}

	current, err := r.hydrate(ctx, collection, matches)
	if err != nil {
		return nil, err
	}

	// Merge level by level. Leaves promoted at one level participate in
	// the next round, so a fully covered grandparent collapses too.
	for level := 0; level < col.Levels-1; level++ {
		current, err = r.mergeLevel(ctx, collection, current, level, monitor)
		if err != nil {
			return nil, err
		}
	}

	result := dedupe(current)
	sortRetrieved(result)

	r.logger.Debug("retrieval complete",
		"collection", collection,
		"leaf_matches", len(matches),
		"results", len(result))

	return result, nil
}

// hydrate resolves leaf matches into retrieved nodes carrying scores.
// A match whose node is missing indicates a corrupted forest.
func (r *Retriever) hydrate(ctx context.Context, collection string, matches []*core.LeafMatch) ([]*core.RetrievedNode, error) {
	result := make([]*core.RetrievedNode, 0, len(matches))
	for _, match := range matches {
		node, err := r.nodeRepository.GetNode(ctx, collection, match.NodeId)
		if err != nil {
			return nil, err
		}
		result = append(result, &core.RetrievedNode{Node: node, Score: match.Score})
	}
	return result, nil
}

// mergeLevel promotes retrieved nodes at the given level to their parent
// when enough siblings are present. Nodes at other levels, roots, and
// under-covered groups pass through unchanged.
func (r *Retriever) mergeLevel(ctx context.Context, collection string, current []*core.RetrievedNode, level int, monitor Monitor) ([]*core.RetrievedNode, error) {
	groups := make(map[core.ID][]*core.RetrievedNode)
	var result []*core.RetrievedNode

	for _, rn := range current {
		if rn.Node.Level != level || rn.Node.ParentId == 0 {
			result = append(result, rn)
			continue
		}
		groups[rn.Node.ParentId] = append(groups[rn.Node.ParentId], rn)
	}

	// Deterministic group order.
	parentIDs := make([]core.ID, 0, len(groups))
	for id := range groups {
		parentIDs = append(parentIDs, id)
	}
	slices.Sort(parentIDs)

	for _, parentID := range parentIDs {
		children := groups[parentID]

		parent, err := r.nodeRepository.GetNode(ctx, collection, parentID)
		if err != nil {
			return nil, err
		}

		coverage := float64(len(children)) / float64(len(parent.ChildIds))
		if coverage < r.mergeThreshold {
			result = append(result, children...)
			continue
		}

		// Promote: the parent inherits the best child score.
		score := children[0].Score
		for _, child := range children[1:] {
			if child.Score > score {
				score = child.Score
			}
		}

		promoted := &core.RetrievedNode{Node: parent, Score: score}
		monitor.Merged(children, promoted)
		result = append(result, promoted)
	}

	return result, nil
}

// dedupe drops duplicate nodes, keeping the highest score for each ID.
func dedupe(nodes []*core.RetrievedNode) core.RetrievedSet {
	seen := make(map[core.ID]*core.RetrievedNode, len(nodes))
	var result core.RetrievedSet
	for _, rn := range nodes {
		if prev, ok := seen[rn.Node.Id]; ok {
			if rn.Score > prev.Score {
				prev.Score = rn.Score
			}
			continue
		}
		seen[rn.Node.Id] = rn
		result = append(result, rn)
	}
	return result
}

// sortRetrieved orders results by score descending, breaking ties by
// ascending first page so output is stable.
func sortRetrieved(set core.RetrievedSet) {
	slices.SortFunc(set, func(a, b *core.RetrievedNode) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return a.Node.Pages.First - b.Node.Pages.First
	})
}
