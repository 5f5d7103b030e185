package attributes

import (
	"fmt"
	"strings"

	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/scene"
)

// Compound wraps compound attributes: a named group whose children are
// themselves attributes addressed as parent.child.
type Compound struct {
	Attr
}

func (c Compound) GoString() string { return entity.Repr("CompoundAttribute", c.FullName()) }

// Children resolves the compound's direct child attributes in declaration
// order.
func (c Compound) Children() ([]entity.Attribute, error) {
	locals, err := c.env.Backend.ListAttrs(c.NodeName())
	if err != nil {
		return nil, err
	}
	prefix := c.AttrName() + "."
	var out []entity.Attribute
	for _, local := range locals {
		rest, ok := strings.CutPrefix(local, prefix)
		if !ok || strings.Contains(rest, ".") {
			continue
		}
		child, err := c.env.Resolver.Attribute(entity.JoinName(c.NodeName(), local))
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

// Child resolves one child attribute by its short name.
func (c Compound) Child(name string) (entity.Attribute, error) {
	return c.env.Resolver.Attribute(c.FullName() + "." + name)
}

// Set always fails; values live on the children.
func (c Compound) Set(any) error {
	return fmt.Errorf("%s: %w: set compound children individually", c.FullName(), scene.ErrBadAttributeValue)
}

// Array wraps array attributes holding an ordered list of plain values.
type Array struct {
	Attr
}

func (a Array) GoString() string { return entity.Repr("ArrayAttribute", a.FullName()) }

func (a Array) elements() ([]any, error) {
	raw, err := a.Get()
	if err != nil {
		return nil, err
	}
	v, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %T", a.FullName(), scene.ErrBadAttributeValue, raw)
	}
	return v, nil
}

// Len returns the number of elements.
func (a Array) Len() (int, error) {
	v, err := a.elements()
	if err != nil {
		return 0, err
	}
	return len(v), nil
}

// Element returns the element at index.
func (a Array) Element(index int) (any, error) {
	v, err := a.elements()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(v) {
		return nil, fmt.Errorf("%s[%d]: index out of range (len %d)", a.FullName(), index, len(v))
	}
	return v[index], nil
}

// SetElement replaces the element at index.
func (a Array) SetElement(index int, value any) error {
	v, err := a.elements()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(v) {
		return fmt.Errorf("%s[%d]: index out of range (len %d)", a.FullName(), index, len(v))
	}
	v[index] = value
	return a.Set(v)
}

// Append adds an element at the end.
func (a Array) Append(value any) error {
	v, err := a.elements()
	if err != nil {
		return err
	}
	return a.Set(append(v, value))
}
