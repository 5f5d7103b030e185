package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/scenekit/scenekit/internal/core/observability/log"
	"github.com/scenekit/scenekit/internal/core/scene"
)

var _ scene.Backend = (*Backend)(nil)

// Backend forwards every command to a host-side bridge as a JSON request
// frame and decodes the correlated reply. Like the in-process backend it is
// single-threaded: one command is in flight at a time.
//
// The bridge must report type chains most-specific-first; resolution depends
// on that ordering.
type Backend struct {
	transport Transport
	log       log.Log
}

// Connect dials the bridge and returns a live backend.
func Connect(ctx context.Context, cfg Config, logger log.Log) (*Backend, error) {
	if logger == nil {
		logger = log.Nop()
	}
	transport, err := Dial(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to bridge", log.String("url", cfg.URL))
	return &Backend{transport: transport, log: logger}, nil
}

// Close tears the transport down.
func (b *Backend) Close() error {
	return b.transport.Close()
}

type request struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Args   []any  `json:"args,omitempty"`
}

type response struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func (b *Backend) call(method string, args ...any) (json.RawMessage, error) {
	req := request{ID: uuid.NewString(), Method: method, Args: args}
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("remote %s: %w", method, err)
	}
	if err := b.transport.Send(raw); err != nil {
		return nil, fmt.Errorf("remote %s: %w", method, err)
	}
	for {
		frame, err := b.transport.Receive()
		if err != nil {
			return nil, fmt.Errorf("remote %s: %w", method, err)
		}
		var resp response
		if err := json.Unmarshal(frame, &resp); err != nil {
			return nil, fmt.Errorf("remote %s: bad frame: %w", method, err)
		}
		if resp.ID != req.ID {
			b.log.Warn("dropping stale reply", log.String("id", resp.ID), log.String("method", method))
			continue
		}
		if resp.Error != "" {
			return nil, fmt.Errorf("remote %s: %s", method, resp.Error)
		}
		return resp.Result, nil
	}
}

func (b *Backend) callVoid(method string, args ...any) error {
	_, err := b.call(method, args...)
	return err
}

// callInto decodes the reply into out.
func (b *Backend) callInto(out any, method string, args ...any) error {
	result, err := b.call(method, args...)
	if err != nil {
		return err
	}
	if len(result) == 0 {
		return nil
	}
	if err := json.Unmarshal(result, out); err != nil {
		return fmt.Errorf("remote %s: decode: %w", method, err)
	}
	return nil
}

func (b *Backend) callString(method string, args ...any) (string, error) {
	var out string
	err := b.callInto(&out, method, args...)
	return out, err
}

func (b *Backend) callStrings(method string, args ...any) ([]string, error) {
	var out []string
	err := b.callInto(&out, method, args...)
	return out, err
}

func (b *Backend) callBool(method string, args ...any) (bool, error) {
	var out bool
	err := b.callInto(&out, method, args...)
	return out, err
}

// mustStrings is for the backend surface's query methods that return no
// error; a transport failure is logged and reads as empty.
func (b *Backend) mustStrings(method string, args ...any) []string {
	out, err := b.callStrings(method, args...)
	if err != nil {
		b.log.Error("bridge query failed", log.String("method", method), log.Error(err))
		return nil
	}
	return out
}

func (b *Backend) mustBool(method string, args ...any) bool {
	out, err := b.callBool(method, args...)
	if err != nil {
		b.log.Error("bridge query failed", log.String("method", method), log.Error(err))
		return false
	}
	return out
}

func (b *Backend) mustFloat(method string, args ...any) float64 {
	var out float64
	if err := b.callInto(&out, method, args...); err != nil {
		b.log.Error("bridge query failed", log.String("method", method), log.Error(err))
		return 0
	}
	return out
}

func (b *Backend) mustVoid(method string, args ...any) {
	if err := b.callVoid(method, args...); err != nil {
		b.log.Error("bridge command failed", log.String("method", method), log.Error(err))
	}
}

// --- NodeCommands ---

func (b *Backend) CreateNode(nodeType, name string) (string, error) {
	return b.callString("createNode", nodeType, name)
}

func (b *Backend) Delete(name string) error {
	return b.callVoid("delete", name)
}

func (b *Backend) Rename(name, newName string) (string, error) {
	return b.callString("rename", name, newName)
}

func (b *Backend) Exists(name string) bool {
	return b.mustBool("exists", name)
}

func (b *Backend) TypeOf(name string) (string, error) {
	return b.callString("typeOf", name)
}

func (b *Backend) TypeChain(name string) ([]string, error) {
	return b.callStrings("typeChain", name)
}

func (b *Backend) Parent(name string) (string, error) {
	return b.callString("parent", name)
}

func (b *Backend) SetParent(name, parent string) error {
	return b.callVoid("setParent", name, parent)
}

func (b *Backend) Children(name string) ([]string, error) {
	return b.callStrings("children", name)
}

func (b *Backend) SetLocked(name string, locked bool) error {
	return b.callVoid("setLocked", name, locked)
}

func (b *Backend) IsLocked(name string) (bool, error) {
	return b.callBool("isLocked", name)
}

func (b *Backend) ListNodes(nodeType string) ([]string, error) {
	return b.callStrings("listNodes", nodeType)
}

// --- AttrCommands ---

func (b *Backend) AddAttr(node string, spec scene.AttrSpec) error {
	return b.callVoid("addAttr", node, spec)
}

func (b *Backend) AttrExists(attr string) bool {
	return b.mustBool("attrExists", attr)
}

func (b *Backend) AttrTypeOf(attr string) (string, error) {
	return b.callString("attrTypeOf", attr)
}

func (b *Backend) AttrSpecOf(attr string) (scene.AttrSpec, error) {
	var out scene.AttrSpec
	err := b.callInto(&out, "attrSpecOf", attr)
	return out, err
}

func (b *Backend) GetAttr(attr string) (any, error) {
	result, err := b.call("getAttr", attr)
	if err != nil {
		return nil, err
	}
	// Matrix values and plain 16-element arrays serialize identically, so a
	// 16-number reply needs the declared attribute type to disambiguate.
	var floats []float64
	if err := json.Unmarshal(result, &floats); err == nil && len(floats) == 16 {
		spec, err := b.AttrSpecOf(attr)
		if err != nil {
			return nil, err
		}
		if spec.Type == scene.TypeMatrix {
			var m scene.Matrix
			copy(m[:], floats)
			return m, nil
		}
	}
	return decodeValue(result)
}

func (b *Backend) SetAttr(attr string, value any) error {
	return b.callVoid("setAttr", attr, value)
}

func (b *Backend) ListAttrs(node string) ([]string, error) {
	return b.callStrings("listAttrs", node)
}

func (b *Backend) EnumItems(attr string) ([]string, error) {
	return b.callStrings("enumItems", attr)
}

// --- ConnectionCommands ---

func (b *Backend) Connect(src, dst string) error {
	return b.callVoid("connectAttr", src, dst)
}

func (b *Backend) Disconnect(src, dst string) error {
	return b.callVoid("disconnectAttr", src, dst)
}

func (b *Backend) IsConnected(src, dst string) (bool, error) {
	return b.callBool("isConnected", src, dst)
}

func (b *Backend) Connections(attr string, source bool) ([]string, error) {
	return b.callStrings("connections", attr, source)
}

func (b *Backend) ListConnections() ([]string, error) {
	return b.callStrings("listConnections")
}

// --- SelectionCommands ---

func (b *Backend) Selection() []string {
	return b.mustStrings("selection")
}

func (b *Backend) Select(names []string) error {
	return b.callVoid("select", names)
}

// --- NamespaceCommands ---

func (b *Backend) CurrentNamespace() string {
	out, err := b.callString("currentNamespace")
	if err != nil {
		b.log.Error("bridge query failed", log.String("method", "currentNamespace"), log.Error(err))
		return ":"
	}
	return out
}

func (b *Backend) SetCurrentNamespace(ns string) error {
	return b.callVoid("setCurrentNamespace", ns)
}

func (b *Backend) AddNamespace(ns string) error {
	return b.callVoid("addNamespace", ns)
}

func (b *Backend) RemoveNamespace(ns string, moveToRoot bool) error {
	return b.callVoid("removeNamespace", ns, moveToRoot)
}

func (b *Backend) Namespaces() []string {
	return b.mustStrings("namespaces")
}

func (b *Backend) NamespaceContents(ns string) ([]string, error) {
	return b.callStrings("namespaceContents", ns)
}

// --- TimeCommands ---

func (b *Backend) CurrentTime() float64 {
	return b.mustFloat("currentTime")
}

func (b *Backend) SetCurrentTime(frame float64) {
	b.mustVoid("setCurrentTime", frame)
}

func (b *Backend) FrameRange() (float64, float64) {
	var out [2]float64
	if err := b.callInto(&out, "frameRange"); err != nil {
		b.log.Error("bridge query failed", log.String("method", "frameRange"), log.Error(err))
		return 0, 0
	}
	return out[0], out[1]
}

func (b *Backend) SetFrameRange(min, max float64) {
	b.mustVoid("setFrameRange", min, max)
}

// --- KeyCommands ---

func (b *Backend) AutoKey() bool {
	return b.mustBool("autoKey")
}

func (b *Backend) SetAutoKey(on bool) {
	b.mustVoid("setAutoKey", on)
}

func (b *Backend) SetKey(attr string, key scene.Key) error {
	return b.callVoid("setKey", attr, key)
}

func (b *Backend) Keys(attr string) ([]scene.Key, error) {
	var out []scene.Key
	err := b.callInto(&out, "keys", attr)
	return out, err
}

func (b *Backend) KeyAt(attr string, frame float64) (scene.Key, error) {
	var out scene.Key
	err := b.callInto(&out, "keyAt", attr, frame)
	return out, err
}

func (b *Backend) RemoveKey(attr string, frame float64) error {
	return b.callVoid("removeKey", attr, frame)
}

func (b *Backend) EvaluateAt(attr string, frame float64) (float64, error) {
	var out float64
	err := b.callInto(&out, "evaluateAt", attr, frame)
	return out, err
}

// --- SkinCommands ---

func (b *Backend) Influences(skin string) ([]string, error) {
	return b.callStrings("influences", skin)
}

func (b *Backend) AddInfluence(skin, influence string) error {
	return b.callVoid("addInfluence", skin, influence)
}

func (b *Backend) Weights(skin string, vertex int) (map[string]float64, error) {
	var out map[string]float64
	err := b.callInto(&out, "weights", skin, vertex)
	return out, err
}

func (b *Backend) SetWeights(skin string, vertex int, weights map[string]float64) error {
	return b.callVoid("setWeights", skin, vertex, weights)
}

func (b *Backend) WeightedVertices(skin string) ([]int, error) {
	var out []int
	err := b.callInto(&out, "weightedVertices", skin)
	return out, err
}

// --- UndoCommands ---

func (b *Backend) OpenUndoChunk(name string) {
	b.mustVoid("openUndoChunk", name)
}

func (b *Backend) CloseUndoChunk() {
	b.mustVoid("closeUndoChunk")
}

// --- RefreshCommands ---

func (b *Backend) SuspendRefresh() {
	b.mustVoid("suspendRefresh")
}

func (b *Backend) ResumeRefresh() {
	b.mustVoid("resumeRefresh")
}

func (b *Backend) RefreshSuspended() bool {
	return b.mustBool("refreshSuspended")
}

// decodeValue maps a JSON attribute value onto the in-process value model:
// whole numbers become ints. Matrix conversion happens in GetAttr, where the
// declared attribute type is known.
func decodeValue(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	if f, ok := value.(float64); ok && f == float64(int(f)) {
		return int(f), nil
	}
	return value, nil
}
