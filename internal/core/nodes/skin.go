package nodes

import (
	"fmt"
	"math"

	"github.com/scenekit/scenekit/internal/core/entity"
)

// SkinCluster wraps skin deformer nodes: an influence list plus per-vertex
// weight maps keyed by influence name.
type SkinCluster struct {
	Node
}

func (s SkinCluster) GoString() string { return entity.Repr("SkinCluster", s.FullName()) }

// Influences resolves the skin's influence nodes in bind order.
func (s SkinCluster) Influences() ([]entity.Node, error) {
	names, err := s.env.Backend.Influences(s.FullName())
	if err != nil {
		return nil, err
	}
	out := make([]entity.Node, 0, len(names))
	for _, name := range names {
		node, err := s.env.Resolver.Node(name)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

// AddInfluence binds another influence to the skin. Adding an influence that
// is already bound is a no-op.
func (s SkinCluster) AddInfluence(influence string) error {
	return s.env.Backend.AddInfluence(s.FullName(), influence)
}

// Weights returns the weight map of one vertex.
func (s SkinCluster) Weights(vertex int) (map[string]float64, error) {
	return s.env.Backend.Weights(s.FullName(), vertex)
}

// SetWeights replaces the weight map of one vertex. The weights must sum to
// one within tolerance; skin weights are a partition of influence over the
// vertex.
func (s SkinCluster) SetWeights(vertex int, weights map[string]float64) error {
	var total float64
	for _, w := range weights {
		total += w
	}
	if math.Abs(total-1) > 1e-6 {
		return fmt.Errorf("%s vertex %d: weights sum to %v, expected 1", s.FullName(), vertex, total)
	}
	return s.env.Backend.SetWeights(s.FullName(), vertex, weights)
}

// WeightedVertices returns the indices carrying explicit weights.
func (s SkinCluster) WeightedVertices() ([]int, error) {
	return s.env.Backend.WeightedVertices(s.FullName())
}

// CopyWeightsTo transfers this skin's weights onto another skin by vertex
// index. Influences missing on the destination are bound first, so the
// transfer never silently drops weight.
func (s SkinCluster) CopyWeightsTo(dst SkinCluster) error {
	influences, err := s.env.Backend.Influences(s.FullName())
	if err != nil {
		return err
	}
	for _, influence := range influences {
		if err := dst.AddInfluence(influence); err != nil {
			return err
		}
	}
	vertices, err := s.WeightedVertices()
	if err != nil {
		return err
	}
	for _, vertex := range vertices {
		weights, err := s.Weights(vertex)
		if err != nil {
			return err
		}
		if err := s.env.Backend.SetWeights(dst.FullName(), vertex, weights); err != nil {
			return err
		}
	}
	return nil
}
