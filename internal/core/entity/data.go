package entity

import "github.com/scenekit/scenekit/internal/core/scene"

// AttrData describes one attribute well enough to recreate it: its
// definition plus its current value.
type AttrData struct {
	Name    string   `json:"name" yaml:"name"`
	Type    string   `json:"type" yaml:"type"`
	Default any      `json:"default,omitempty" yaml:"default,omitempty"`
	Min     *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Items   []string `json:"items,omitempty" yaml:"items,omitempty"`
	Keyable bool     `json:"keyable,omitempty" yaml:"keyable,omitempty"`
	Value   any      `json:"value,omitempty" yaml:"value,omitempty"`
}

// Spec returns the backend attribute spec for this data.
func (d AttrData) Spec() scene.AttrSpec {
	return scene.AttrSpec{
		Name:    d.Name,
		Type:    d.Type,
		Default: d.Default,
		Min:     d.Min,
		Max:     d.Max,
		Items:   d.Items,
		Keyable: d.Keyable,
	}
}

// NodeData is the recreate-from-scratch description of a node: the dict
// every node's Data() returns and CreateNode consumes.
type NodeData struct {
	Name        string         `json:"name" yaml:"name"`
	Type        string         `json:"nodeType" yaml:"nodeType"`
	Parent      string         `json:"parent,omitempty" yaml:"parent,omitempty"`
	Attributes  []AttrData     `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Values      map[string]any `json:"attributeValues,omitempty" yaml:"attributeValues,omitempty"`
	Connections [][2]string    `json:"connections,omitempty" yaml:"connections,omitempty"`
}
