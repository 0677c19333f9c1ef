package mesh

import "github.com/tinmesh/tinmesh/vertex"

type config struct {
	nominalPointSpacing float64

	mergeVertices bool
	mergeDistance float64
	mergeRule     vertex.MergeRule

	seed int64

	debugAddVertex func(int32, float64, float64)
	debugSplit     func(int32, int32, int32)
}

func newDefaultConfig(nominalPointSpacing float64) config {
	return config{
		nominalPointSpacing: nominalPointSpacing,
		mergeVertices:       true,
		mergeDistance:       0,
		mergeRule:           vertex.MergeMean,
		seed:                1,
	}
}

func (c *config) effectiveMergeDistance() float64 {
	if c.mergeDistance > 0 {
		return c.mergeDistance
	}
	return c.nominalPointSpacing / 1024
}
