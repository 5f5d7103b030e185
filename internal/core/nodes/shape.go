package nodes

import (
	"fmt"

	"github.com/scenekit/scenekit/internal/core/entity"
)

// Shape wraps shape nodes: the geometry-bearing leaves under transforms.
// Component access goes through the resolver so each component comes back as
// its registered wrapper.
type Shape struct {
	Node
}

func (s Shape) GoString() string { return entity.Repr("Shape", s.FullName()) }

// ParentTransform resolves the transform above the shape.
func (s Shape) ParentTransform() (entity.Node, error) {
	parent, err := s.env.Backend.Parent(s.FullName())
	if err != nil {
		return nil, err
	}
	if parent == "" {
		return nil, nil
	}
	return s.env.Resolver.Node(parent)
}

func (s Shape) component(tag string, indices ...int) (entity.Component, error) {
	name := s.FullName() + "." + tag
	for _, idx := range indices {
		name += fmt.Sprintf("[%d]", idx)
	}
	return s.env.Resolver.Component(name)
}

// Vertex returns the vertex component at index.
func (s Shape) Vertex(index int) (entity.Component, error) {
	return s.component("vtx", index)
}

// Edge returns the edge component at index.
func (s Shape) Edge(index int) (entity.Component, error) {
	return s.component("e", index)
}

// Face returns the face component at index.
func (s Shape) Face(index int) (entity.Component, error) {
	return s.component("f", index)
}

// CV returns the control vertex component at (u, v).
func (s Shape) CV(u, v int) (entity.Component, error) {
	return s.component("cv", u, v)
}

// IsoparmU returns the isoparm component at a u index.
func (s Shape) IsoparmU(index int) (entity.Component, error) {
	return s.component("u", index)
}

// IsoparmV returns the isoparm component at a v index.
func (s Shape) IsoparmV(index int) (entity.Component, error) {
	return s.component("v", index)
}

// Patch returns the surface patch component at (u, v).
func (s Shape) Patch(u, v int) (entity.Component, error) {
	return s.component("sf", u, v)
}
