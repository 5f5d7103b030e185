package attributes

import (
	"fmt"

	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/scene"
)

// String wraps string attributes.
type String struct {
	Attr
}

func (s String) GoString() string { return entity.Repr("StringAttribute", s.FullName()) }

func (s String) Value() (string, error) {
	raw, err := s.Get()
	if err != nil {
		return "", err
	}
	v, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s: %w: %T", s.FullName(), scene.ErrBadAttributeValue, raw)
	}
	return v, nil
}

func (s String) SetValue(value string) error {
	return s.Set(value)
}

// Matrix wraps 4x4 matrix attributes.
type Matrix struct {
	Attr
}

func (m Matrix) GoString() string { return entity.Repr("MatrixAttribute", m.FullName()) }

func (m Matrix) Value() (scene.Matrix, error) {
	raw, err := m.Get()
	if err != nil {
		return scene.Matrix{}, err
	}
	v, ok := raw.(scene.Matrix)
	if !ok {
		return scene.Matrix{}, fmt.Errorf("%s: %w: %T", m.FullName(), scene.ErrBadAttributeValue, raw)
	}
	return v, nil
}

func (m Matrix) SetValue(value scene.Matrix) error {
	return m.Set(value)
}

// Message wraps message attributes. They carry no value; their whole point
// is being connection endpoints.
type Message struct {
	Attr
}

func (m Message) GoString() string { return entity.Repr("MessageAttribute", m.FullName()) }

// Set always fails; message attributes hold no value.
func (m Message) Set(any) error {
	return fmt.Errorf("%s: %w: message attributes hold no value", m.FullName(), scene.ErrBadAttributeValue)
}
