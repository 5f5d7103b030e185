package attributes

import (
	"github.com/scenekit/scenekit/internal/core/entity"
)

var _ entity.Attribute = Attr{}

// Attr is the generic attribute wrapper and the base every typed attribute
// embeds. It is also what resolution falls back to for unregistered tags, so
// any attribute the backend reports stays usable through it.
type Attr struct {
	entity.Base
	env entity.Env
}

func newAttr(env entity.Env, fullName string) Attr {
	return Attr{Base: entity.NewBase(fullName), env: env}
}

// NewAttr wraps a full attribute name without consulting the backend.
func NewAttr(env entity.Env, fullName string) Attr {
	return newAttr(env, fullName)
}

func (a Attr) GoString() string { return entity.Repr("Attribute", a.FullName()) }

// NodeName returns the owning node's name.
func (a Attr) NodeName() string {
	owner, _, _ := entity.CutName(a.FullName())
	return owner
}

// AttrName returns the local part of the full name.
func (a Attr) AttrName() string {
	_, local, _ := entity.CutName(a.FullName())
	return local
}

// Node resolves the owning node.
func (a Attr) Node() (entity.Node, error) {
	return a.env.Resolver.Node(a.NodeName())
}

func (a Attr) Exists() bool {
	return a.env.Backend.AttrExists(a.FullName())
}

func (a Attr) Type() (string, error) {
	return a.env.Backend.AttrTypeOf(a.FullName())
}

func (a Attr) Get() (any, error) {
	return a.env.Backend.GetAttr(a.FullName())
}

func (a Attr) Set(value any) error {
	return a.env.Backend.SetAttr(a.FullName(), value)
}

// ConnectTo connects this attribute into dst.
func (a Attr) ConnectTo(dst any) error {
	conn, err := entity.NewConnection(a.env, a, dst)
	if err != nil {
		return err
	}
	return conn.Connect()
}

// Inputs returns the attributes driving this one.
func (a Attr) Inputs() ([]string, error) {
	return a.env.Backend.Connections(a.FullName(), true)
}

// Outputs returns the attributes this one drives.
func (a Attr) Outputs() ([]string, error) {
	return a.env.Backend.Connections(a.FullName(), false)
}

// Data returns enough to recreate the attribute: its definition and current
// value.
func (a Attr) Data() (entity.AttrData, error) {
	spec, err := a.env.Backend.AttrSpecOf(a.FullName())
	if err != nil {
		return entity.AttrData{}, err
	}
	data := entity.AttrData{
		Name:    a.AttrName(),
		Type:    spec.Type,
		Default: spec.Default,
		Min:     spec.Min,
		Max:     spec.Max,
		Items:   spec.Items,
		Keyable: spec.Keyable,
	}
	if spec.Type != "message" && spec.Type != "compound" {
		value, err := a.Get()
		if err != nil {
			return entity.AttrData{}, err
		}
		data.Value = value
	}
	return data, nil
}
