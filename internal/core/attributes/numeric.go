package attributes

import (
	"fmt"

	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/scene"
)

// Numeric wraps double and long attributes.
type Numeric struct {
	Attr
}

func (n Numeric) GoString() string { return entity.Repr("NumericAttribute", n.FullName()) }

// Value returns the current value as a float64.
func (n Numeric) Value() (float64, error) {
	raw, err := n.Get()
	if err != nil {
		return 0, err
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%s: %w: %T", n.FullName(), scene.ErrBadAttributeValue, raw)
	}
}

// SetValue sets the value. The backend clamps into the declared range.
func (n Numeric) SetValue(value float64) error {
	return n.Set(value)
}

// Min returns the declared minimum, or nil when unbounded.
func (n Numeric) Min() (*float64, error) {
	spec, err := n.env.Backend.AttrSpecOf(n.FullName())
	if err != nil {
		return nil, err
	}
	return spec.Min, nil
}

// Max returns the declared maximum, or nil when unbounded.
func (n Numeric) Max() (*float64, error) {
	spec, err := n.env.Backend.AttrSpecOf(n.FullName())
	if err != nil {
		return nil, err
	}
	return spec.Max, nil
}

// SetKey keys the attribute at the given frame with the given tangents.
func (n Numeric) SetKey(frame, value float64, inTangent, outTangent string) error {
	for _, tangent := range []string{inTangent, outTangent} {
		if err := validateTangent(tangent); err != nil {
			return err
		}
	}
	return n.env.Backend.SetKey(n.FullName(), scene.Key{
		Frame: frame, Value: value, InTangent: inTangent, OutTangent: outTangent,
	})
}

// Keys returns every key on the attribute in frame order.
func (n Numeric) Keys() ([]scene.Key, error) {
	return n.env.Backend.Keys(n.FullName())
}

// KeyAt returns the key at the exact frame; it fails when none exists.
func (n Numeric) KeyAt(frame float64) (scene.Key, error) {
	return n.env.Backend.KeyAt(n.FullName(), frame)
}

// RemoveKey deletes the key at the exact frame.
func (n Numeric) RemoveKey(frame float64) error {
	return n.env.Backend.RemoveKey(n.FullName(), frame)
}

// EvaluateAt returns the keyed value interpolated at the frame.
func (n Numeric) EvaluateAt(frame float64) (float64, error) {
	return n.env.Backend.EvaluateAt(n.FullName(), frame)
}

// tangentTypes is the allow-list validated before any backend call.
var tangentTypes = []string{"auto", "linear", "spline", "clamped", "flat", "step"}

func validateTangent(tangent string) error {
	for _, t := range tangentTypes {
		if t == tangent {
			return nil
		}
	}
	return fmt.Errorf("unknown tangent type %q, expected one of %v", tangent, tangentTypes)
}

// Boolean wraps bool attributes.
type Boolean struct {
	Attr
}

func (b Boolean) GoString() string { return entity.Repr("BoolAttribute", b.FullName()) }

// Value returns the current value.
func (b Boolean) Value() (bool, error) {
	raw, err := b.Get()
	if err != nil {
		return false, err
	}
	v, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%s: %w: %T", b.FullName(), scene.ErrBadAttributeValue, raw)
	}
	return v, nil
}

// SetValue sets the value.
func (b Boolean) SetValue(value bool) error {
	return b.Set(value)
}
