package mesh

import "github.com/tinmesh/tinmesh/vertex"

// Option configures a Mesh during construction.
type Option func(*config)

// WithMergeRule sets the rule new coincident-vertex groups resolve
// their Z with. Defaults to vertex.MergeMean.
func WithMergeRule(rule vertex.MergeRule) Option {
	return func(c *config) {
		c.mergeRule = rule
	}
}

// WithMergeVertices enables or disables automatic coincident-vertex
// merging on Add. Enabled by default.
func WithMergeVertices(enable bool) Option {
	return func(c *config) {
		c.mergeVertices = enable
	}
}

// WithMergeDistance sets the radius within which Add treats a new
// point as a request to reuse an existing vertex rather than insert a
// new one. Implies WithMergeVertices(true). Zero or negative falls
// back to a small fraction of the mesh's nominal point spacing.
func WithMergeDistance(distance float64) Option {
	return func(c *config) {
		if distance > 0 {
			c.mergeDistance = distance
			c.mergeVertices = true
		}
	}
}

// WithSeed fixes the random seed used for stochastic walk tie-breaks
// and bootstrap triple sampling, making a sequence of Add/Remove calls
// reproducible.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithDebugAddVertex installs a hook called after a vertex is
// registered in the mesh (before it participates in triangulation).
func WithDebugAddVertex(hook func(id int32, x, y float64)) Option {
	return func(c *config) {
		c.debugAddVertex = hook
	}
}

// WithDebugSplitEdge installs a hook called whenever an edge is split,
// either by conformance restoration or by SplitEdge, reporting the
// original edge's endpoints and the new midpoint vertex id.
func WithDebugSplitEdge(hook func(a, b, mid int32)) Option {
	return func(c *config) {
		c.debugSplit = hook
	}
}
