package nodes

import (
	"strings"

	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/scene"
)

var _ entity.Node = Node{}

// Node is the generic node wrapper and the base every typed node embeds. It
// is the category fallback, so nodes of unknown type resolve to it and stay
// usable in least-specific form.
type Node struct {
	entity.Base
	env entity.Env
}

func newNode(env entity.Env, name string) Node {
	return Node{Base: entity.NewBase(name), env: env}
}

// NewNode wraps a node name without consulting the backend.
func NewNode(env entity.Env, name string) Node {
	return newNode(env, name)
}

func (n Node) GoString() string { return entity.Repr("Node", n.FullName()) }

func (n Node) Exists() bool {
	return n.env.Backend.Exists(n.FullName())
}

func (n Node) Type() (string, error) {
	return n.env.Backend.TypeOf(n.FullName())
}

// TypeChain returns the inheritance chain, most specific first.
func (n Node) TypeChain() ([]string, error) {
	return n.env.Backend.TypeChain(n.FullName())
}

// Delete removes the node from the scene. The wrapper value stays around but
// resolves to nothing afterwards.
func (n Node) Delete() error {
	return n.env.Backend.Delete(n.FullName())
}

// Rename renames the node and returns a wrapper for the name the backend
// assigned. The receiver keeps its old name.
func (n Node) Rename(newName string) (entity.Node, error) {
	assigned, err := n.env.Backend.Rename(n.FullName(), newName)
	if err != nil {
		return nil, err
	}
	return n.env.Resolver.Node(assigned)
}

// Namespace returns the node's namespace, ":" for the root.
func (n Node) Namespace() string {
	name := n.FullName()
	idx := strings.LastIndex(name, ":")
	if idx < 0 {
		return ":"
	}
	return name[:idx]
}

// Attr resolves an attribute of this node by its local name.
func (n Node) Attr(name string) (entity.Attribute, error) {
	return n.env.Resolver.Attribute(entity.JoinName(n.FullName(), name))
}

// Attrs resolves every attribute on the node in declaration order.
func (n Node) Attrs() ([]entity.Attribute, error) {
	locals, err := n.env.Backend.ListAttrs(n.FullName())
	if err != nil {
		return nil, err
	}
	out := make([]entity.Attribute, 0, len(locals))
	for _, local := range locals {
		attr, err := n.env.Resolver.Attribute(entity.JoinName(n.FullName(), local))
		if err != nil {
			return nil, err
		}
		out = append(out, attr)
	}
	return out, nil
}

// AddAttr defines a new attribute on the node and resolves its wrapper.
func (n Node) AddAttr(data entity.AttrData) (entity.Attribute, error) {
	if err := n.env.Backend.AddAttr(n.FullName(), data.Spec()); err != nil {
		return nil, err
	}
	fullName := entity.JoinName(n.FullName(), data.Name)
	if data.Value != nil {
		if err := n.env.Backend.SetAttr(fullName, data.Value); err != nil {
			return nil, err
		}
	}
	return n.env.Resolver.Attribute(fullName)
}

func (n Node) Lock() error   { return n.env.Backend.SetLocked(n.FullName(), true) }
func (n Node) Unlock() error { return n.env.Backend.SetLocked(n.FullName(), false) }

func (n Node) IsLocked() (bool, error) {
	return n.env.Backend.IsLocked(n.FullName())
}

// Select makes the node the sole selection.
func (n Node) Select() error {
	return n.env.Backend.Select([]string{n.FullName()})
}

// Data returns the dict recreating this node: type, name, parent, every
// attribute's definition and value, and the connections feeding the node.
func (n Node) Data() (entity.NodeData, error) {
	nodeType, err := n.Type()
	if err != nil {
		return entity.NodeData{}, err
	}
	parent, err := n.env.Backend.Parent(n.FullName())
	if err != nil {
		return entity.NodeData{}, err
	}
	locals, err := n.env.Backend.ListAttrs(n.FullName())
	if err != nil {
		return entity.NodeData{}, err
	}
	data := entity.NodeData{Name: n.FullName(), Type: nodeType, Parent: parent}
	for _, local := range locals {
		spec, err := n.env.Backend.AttrSpecOf(entity.JoinName(n.FullName(), local))
		if err != nil {
			return entity.NodeData{}, err
		}
		attrData := entity.AttrData{
			Name:    local,
			Type:    spec.Type,
			Default: spec.Default,
			Min:     spec.Min,
			Max:     spec.Max,
			Items:   spec.Items,
			Keyable: spec.Keyable,
		}
		if spec.Type != scene.TypeMessage && spec.Type != scene.TypeCompound {
			value, err := n.env.Backend.GetAttr(entity.JoinName(n.FullName(), local))
			if err != nil {
				return entity.NodeData{}, err
			}
			attrData.Value = value
		}
		data.Attributes = append(data.Attributes, attrData)

		sources, err := n.env.Backend.Connections(entity.JoinName(n.FullName(), local), true)
		if err != nil {
			return entity.NodeData{}, err
		}
		for _, src := range sources {
			data.Connections = append(data.Connections, [2]string{src, entity.JoinName(n.FullName(), local)})
		}
	}
	return data, nil
}
