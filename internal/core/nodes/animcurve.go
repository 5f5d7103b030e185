package nodes

import (
	"github.com/scenekit/scenekit/internal/core/attributes"
	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/scene"
)

// AnimCurve wraps animation curve nodes. Keys live on the curve's output
// attribute; driving an attribute is an ordinary connection from output.
type AnimCurve struct {
	Node
}

func (a AnimCurve) GoString() string { return entity.Repr("AnimCurve", a.FullName()) }

// Output returns the curve's output attribute.
func (a AnimCurve) Output() attributes.Numeric {
	return attributes.Numeric{Attr: attributes.NewAttr(a.env, entity.JoinName(a.FullName(), "output"))}
}

// DriveAttr connects the curve's output to the given attribute.
func (a AnimCurve) DriveAttr(attr string) error {
	conn, err := entity.NewConnection(a.env, a.Output(), attr)
	if err != nil {
		return err
	}
	return conn.Connect()
}

// DrivenAttrs returns the attributes the curve currently drives.
func (a AnimCurve) DrivenAttrs() ([]string, error) {
	return a.env.Backend.Connections(entity.JoinName(a.FullName(), "output"), false)
}

// SetKey keys the curve at a frame; tangents are validated before the
// backend is touched.
func (a AnimCurve) SetKey(frame, value float64, inTangent, outTangent string) error {
	return a.Output().SetKey(frame, value, inTangent, outTangent)
}

// Keys returns the curve's keys in frame order.
func (a AnimCurve) Keys() ([]scene.Key, error) {
	return a.Output().Keys()
}

// KeyAt returns the key at the exact frame; the backend's state error
// propagates unchanged when none exists.
func (a AnimCurve) KeyAt(frame float64) (scene.Key, error) {
	return a.Output().KeyAt(frame)
}

// RemoveKey deletes the key at the exact frame.
func (a AnimCurve) RemoveKey(frame float64) error {
	return a.Output().RemoveKey(frame)
}

// EvaluateAt interpolates the curve at a frame.
func (a AnimCurve) EvaluateAt(frame float64) (float64, error) {
	return a.Output().EvaluateAt(frame)
}
