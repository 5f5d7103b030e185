package components

import (
	"fmt"

	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/resolve"
)

var _ entity.Component = Component{}

// Component is the generic shape component wrapper and the category
// fallback. Its full name is owner.tag[i] or owner.tag[i][j]; the parsed
// parts are derived from the name, never stored apart from it.
type Component struct {
	entity.Base
	env     entity.Env
	owner   string
	tag     string
	indices []int
}

func newComponent(env entity.Env, fullName string) Component {
	// Resolution validates the name before looking up a constructor, so a
	// parse failure here means the constructor was invoked directly with a
	// malformed name; the wrapper still carries it, it just parses empty.
	owner, tag, indices, _ := resolve.ParseComponentName(fullName)
	return Component{
		Base:    entity.NewBase(fullName),
		env:     env,
		owner:   owner,
		tag:     tag,
		indices: indices,
	}
}

func (c Component) GoString() string { return entity.Repr("Component", c.FullName()) }

// OwnerName returns the owning shape's name.
func (c Component) OwnerName() string { return c.owner }

// Tag returns the digit-stripped component tag, e.g. "vtx".
func (c Component) Tag() string { return c.tag }

// Indices returns the bracket indices in order.
func (c Component) Indices() []int {
	return append([]int(nil), c.indices...)
}

// Owner resolves the owning shape node.
func (c Component) Owner() (entity.Node, error) {
	return c.env.Resolver.Node(c.owner)
}

// Exists reports whether the owning shape is present in the scene.
func (c Component) Exists() bool {
	return c.env.Backend.Exists(c.owner)
}

// Vertex is a polygon vertex component.
type Vertex struct {
	Component
}

func (v Vertex) GoString() string { return entity.Repr("Vertex", v.FullName()) }

// Index returns the vertex index.
func (v Vertex) Index() int { return v.indices[0] }

// Edge is a polygon edge component.
type Edge struct {
	Component
}

func (e Edge) GoString() string { return entity.Repr("Edge", e.FullName()) }

func (e Edge) Index() int { return e.indices[0] }

// Face is a polygon face component.
type Face struct {
	Component
}

func (f Face) GoString() string { return entity.Repr("Face", f.FullName()) }

func (f Face) Index() int { return f.indices[0] }

// CV is a NURBS control vertex, addressed by a (u, v) index pair on
// surfaces and a single index on curves.
type CV struct {
	Component
}

func (c CV) GoString() string { return entity.Repr("CV", c.FullName()) }

// UV returns the index pair; v is zero for single-indexed CVs.
func (c CV) UV() (u, v int) {
	u = c.indices[0]
	if len(c.indices) > 1 {
		v = c.indices[1]
	}
	return u, v
}

// Isoparm is a surface isoparm in u or v.
type Isoparm struct {
	Component
}

func (i Isoparm) GoString() string { return entity.Repr("Isoparm", i.FullName()) }

// Direction returns "u" or "v".
func (i Isoparm) Direction() string { return i.tag }

func (i Isoparm) Index() int { return i.indices[0] }

// Patch is a surface patch addressed by a (u, v) span pair.
type Patch struct {
	Component
}

func (p Patch) GoString() string { return entity.Repr("Patch", p.FullName()) }

func (p Patch) UV() (u, v int) {
	if len(p.indices) < 2 {
		return p.indices[0], 0
	}
	return p.indices[0], p.indices[1]
}

// Name composes a component full name from its parts; the exact inverse of
// parsing.
func Name(owner, tag string, indices ...int) string {
	name := owner + "." + tag
	for _, idx := range indices {
		name += fmt.Sprintf("[%d]", idx)
	}
	return name
}
