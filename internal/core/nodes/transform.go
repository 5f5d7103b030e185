package nodes

import (
	"math"

	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/scene"
)

// Transform wraps transform nodes: the DAG members carrying translate,
// rotate, scale and a local matrix.
type Transform struct {
	Node
}

func (t Transform) GoString() string { return entity.Repr("Transform", t.FullName()) }

// Parent resolves the parent transform, or nil at the world root.
func (t Transform) Parent() (entity.Node, error) {
	parent, err := t.env.Backend.Parent(t.FullName())
	if err != nil {
		return nil, err
	}
	if parent == "" {
		return nil, nil
	}
	return t.env.Resolver.Node(parent)
}

// SetParent reparents the node; an empty name moves it under the world root.
func (t Transform) SetParent(parent string) error {
	return t.env.Backend.SetParent(t.FullName(), parent)
}

// Children resolves the node's children in order.
func (t Transform) Children() ([]entity.Node, error) {
	names, err := t.env.Backend.Children(t.FullName())
	if err != nil {
		return nil, err
	}
	out := make([]entity.Node, 0, len(names))
	for _, name := range names {
		child, err := t.env.Resolver.Node(name)
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

func (t Transform) triple(prefix string) (x, y, z float64, err error) {
	values := [3]float64{}
	for i, axis := range []string{"X", "Y", "Z"} {
		raw, err := t.env.Backend.GetAttr(entity.JoinName(t.FullName(), prefix+axis))
		if err != nil {
			return 0, 0, 0, err
		}
		values[i], _ = raw.(float64)
	}
	return values[0], values[1], values[2], nil
}

func (t Transform) setTriple(prefix string, x, y, z float64) error {
	for i, axis := range []string{"X", "Y", "Z"} {
		value := [3]float64{x, y, z}[i]
		if err := t.env.Backend.SetAttr(entity.JoinName(t.FullName(), prefix+axis), value); err != nil {
			return err
		}
	}
	return nil
}

// Translation returns the local translation.
func (t Transform) Translation() (x, y, z float64, err error) { return t.triple("translate") }

// SetTranslation sets the local translation.
func (t Transform) SetTranslation(x, y, z float64) error { return t.setTriple("translate", x, y, z) }

// Rotation returns the local rotation in degrees.
func (t Transform) Rotation() (x, y, z float64, err error) { return t.triple("rotate") }

// SetRotation sets the local rotation in degrees.
func (t Transform) SetRotation(x, y, z float64) error { return t.setTriple("rotate", x, y, z) }

// Scale returns the local scale.
func (t Transform) Scale() (x, y, z float64, err error) { return t.triple("scale") }

// SetScale sets the local scale.
func (t Transform) SetScale(x, y, z float64) error { return t.setTriple("scale", x, y, z) }

// RotateOrder returns the current rotate order item.
func (t Transform) RotateOrder() (string, error) {
	raw, err := t.env.Backend.GetAttr(entity.JoinName(t.FullName(), "rotateOrder"))
	if err != nil {
		return "", err
	}
	items, err := t.env.Backend.EnumItems(entity.JoinName(t.FullName(), "rotateOrder"))
	if err != nil {
		return "", err
	}
	idx, _ := raw.(int)
	if idx < 0 || idx >= len(items) {
		return "", scene.ErrBadAttributeValue
	}
	return items[idx], nil
}

// SetRotateOrder sets the rotate order; the order is validated against the
// enum's items before any mutation.
func (t Transform) SetRotateOrder(order string) error {
	attr, err := t.Attr("rotateOrder")
	if err != nil {
		return err
	}
	return attr.Set(order)
}

// LocalMatrix composes translate/rotate/scale into the node's local matrix,
// applying rotations in the node's rotate order.
func (t Transform) LocalMatrix() (scene.Matrix, error) {
	tx, ty, tz, err := t.Translation()
	if err != nil {
		return scene.Matrix{}, err
	}
	rx, ry, rz, err := t.Rotation()
	if err != nil {
		return scene.Matrix{}, err
	}
	sx, sy, sz, err := t.Scale()
	if err != nil {
		return scene.Matrix{}, err
	}
	order, err := t.RotateOrder()
	if err != nil {
		return scene.Matrix{}, err
	}

	rotations := map[byte]scene.Matrix{
		'x': rotationX(rx), 'y': rotationY(ry), 'z': rotationZ(rz),
	}
	rotation := scene.Identity()
	for i := 0; i < len(order); i++ {
		rotation = rotation.Mul(rotations[order[i]])
	}
	m := scaling(sx, sy, sz).Mul(rotation)
	m[12], m[13], m[14] = tx, ty, tz
	return m, nil
}

// WorldMatrix composes this node's local matrix with its ancestors'.
func (t Transform) WorldMatrix() (scene.Matrix, error) {
	local, err := t.LocalMatrix()
	if err != nil {
		return scene.Matrix{}, err
	}
	parent, err := t.env.Backend.Parent(t.FullName())
	if err != nil {
		return scene.Matrix{}, err
	}
	if parent == "" {
		return local, nil
	}
	parentWorld, err := Transform{newNode(t.env, parent)}.WorldMatrix()
	if err != nil {
		return scene.Matrix{}, err
	}
	return local.Mul(parentWorld), nil
}

func rotationX(deg float64) scene.Matrix {
	s, c := math.Sincos(deg * math.Pi / 180)
	m := scene.Identity()
	m[5], m[6], m[9], m[10] = c, s, -s, c
	return m
}

func rotationY(deg float64) scene.Matrix {
	s, c := math.Sincos(deg * math.Pi / 180)
	m := scene.Identity()
	m[0], m[2], m[8], m[10] = c, -s, s, c
	return m
}

func rotationZ(deg float64) scene.Matrix {
	s, c := math.Sincos(deg * math.Pi / 180)
	m := scene.Identity()
	m[0], m[1], m[4], m[5] = c, s, -s, c
	return m
}

func scaling(x, y, z float64) scene.Matrix {
	m := scene.Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}
