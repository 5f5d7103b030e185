package files

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/resolve"
)

// SceneData is a replayable description of a scene: node dicts in creation
// order. Connections ride inside each node's dict.
type SceneData struct {
	Nodes []entity.NodeData `json:"nodes" yaml:"nodes"`
}

// Validate checks the description before any of it is replayed.
func (d SceneData) Validate() error {
	seen := make(map[string]struct{}, len(d.Nodes))
	for i, node := range d.Nodes {
		if node.Name == "" {
			return fmt.Errorf("node %d: name is required", i)
		}
		if node.Type == "" {
			return fmt.Errorf("node %q: nodeType is required", node.Name)
		}
		if _, dup := seen[node.Name]; dup {
			return fmt.Errorf("node %q: duplicate name", node.Name)
		}
		seen[node.Name] = struct{}{}
	}
	return nil
}

// DecodeYAML reads a scene description from YAML.
func DecodeYAML(r io.Reader) (SceneData, error) {
	var d SceneData
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return SceneData{}, fmt.Errorf("decode scene yaml: %w", err)
	}
	return d, d.Validate()
}

// DecodeJSON reads a scene description from JSON.
func DecodeJSON(r io.Reader) (SceneData, error) {
	var d SceneData
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return SceneData{}, fmt.Errorf("decode scene json: %w", err)
	}
	return d, d.Validate()
}

// Build replays a scene description through the resolver: every node is
// created with its attributes, values and connections, in listed order.
func Build(res *resolve.Resolver, data SceneData) ([]entity.Node, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	out := make([]entity.Node, 0, len(data.Nodes))
	for _, nodeData := range data.Nodes {
		node, err := res.CreateNode(nodeData)
		if err != nil {
			return nil, fmt.Errorf("build node %q: %w", nodeData.Name, err)
		}
		out = append(out, node)
	}
	return out, nil
}

// Snapshot walks every live node back into a scene description. Replaying
// the snapshot into an empty scene reproduces it.
func Snapshot(res *resolve.Resolver) (SceneData, error) {
	env := res.Env()
	names, err := env.Backend.ListNodes("")
	if err != nil {
		return SceneData{}, err
	}
	data := SceneData{Nodes: make([]entity.NodeData, 0, len(names))}
	for _, name := range names {
		node, err := res.Node(name)
		if err != nil {
			return SceneData{}, err
		}
		nodeData, err := node.Data()
		if err != nil {
			return SceneData{}, err
		}
		data.Nodes = append(data.Nodes, nodeData)
	}
	return data, nil
}
