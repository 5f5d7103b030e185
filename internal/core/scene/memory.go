package scene

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/scenekit/scenekit/internal/core/observability/log"
)

var _ Backend = (*Memory)(nil)

type record struct {
	id        string
	name      string
	nodeType  string
	parent    string
	children  []string
	attrOrder []string
	attrs     map[string]*attrRecord
	locked    bool

	// skin deformer state, allocated on demand
	influences []string
	weights    map[int]map[string]float64
}

type attrRecord struct {
	spec  AttrSpec
	value any
	keys  []Key
}

// Memory is a complete in-memory scene backend. It stands in for the host in
// tests and standalone tooling, and defines the reference semantics remote
// bridges must match. Like the host it is single-threaded; no internal
// locking is provided.
type Memory struct {
	log log.Log

	typeParents map[string]string
	nodes       map[string]*record
	order       []string
	conns       [][2]string
	selection   []string
	namespaces  map[string]struct{}
	currentNS   string

	time      float64
	rangeMin  float64
	rangeMax  float64
	autoKey   bool
	undoOpen  []string
	suspended int

	cursors *cursorArena
}

// NewMemory builds an empty scene with the built-in node type hierarchy.
func NewMemory(logger log.Log) *Memory {
	if logger == nil {
		logger = log.Nop()
	}
	m := &Memory{
		log:         logger,
		typeParents: make(map[string]string),
		nodes:       make(map[string]*record),
		namespaces:  map[string]struct{}{":": {}},
		currentNS:   ":",
		rangeMin:    1,
		rangeMax:    120,
		cursors:     newCursorArena(),
	}
	for child, parent := range builtinTypes {
		m.typeParents[child] = parent
	}
	return m
}

// builtinTypes is the single-inheritance node type tree. The chain reported
// by TypeChain is constructed by walking this table upward, which is what
// guarantees the most-specific-first ordering resolution relies on.
var builtinTypes = map[string]string{
	"dagNode":          "node",
	"transform":        "dagNode",
	"joint":            "transform",
	"shape":            "dagNode",
	"mesh":             "shape",
	"nurbsCurve":       "shape",
	"nurbsSurface":     "shape",
	"constraint":       "transform",
	"pointConstraint":  "constraint",
	"orientConstraint": "constraint",
	"parentConstraint": "constraint",
	"aimConstraint":    "constraint",
	"geometryFilter":   "node",
	"skinCluster":      "geometryFilter",
	"animCurve":        "node",
	"objectSet":        "node",
}

// RegisterNodeType extends the type tree with a host-specific type. The
// parent must already be known.
func (m *Memory) RegisterNodeType(nodeType, parent string) error {
	if parent != "node" {
		if _, ok := m.typeParents[parent]; !ok {
			return fmt.Errorf("register %q: %w: %s", nodeType, ErrUnknownNodeType, parent)
		}
	}
	m.typeParents[nodeType] = parent
	return nil
}

// --- NodeCommands ---

func (m *Memory) CreateNode(nodeType, name string) (string, error) {
	if nodeType != "node" {
		if _, ok := m.typeParents[nodeType]; !ok {
			return "", fmt.Errorf("create %q: %w: %s", name, ErrUnknownNodeType, nodeType)
		}
	}
	if name == "" {
		name = nodeType + "1"
	}
	name = m.qualify(name)
	name = m.uniqueName(name)

	rec := &record{
		id:       uuid.NewString(),
		name:     name,
		nodeType: nodeType,
		attrs:    make(map[string]*attrRecord),
	}
	m.nodes[name] = rec
	m.order = append(m.order, name)
	m.seedAttrs(rec)
	m.log.Debug("node created", log.String("name", name), log.String("type", nodeType))
	return name, nil
}

func (m *Memory) Delete(name string) error {
	c, err := m.acquireNode(name)
	if err != nil {
		return err
	}
	if c.rec.locked {
		m.cursors.release(c)
		return fmt.Errorf("delete %s: %w", name, ErrNodeLocked)
	}
	children := append([]string(nil), c.rec.children...)
	parent := c.rec.parent
	m.cursors.release(c)

	for _, child := range children {
		if err := m.Delete(child); err != nil {
			return err
		}
	}
	if parent != "" {
		if p, ok := m.nodes[parent]; ok {
			p.children = remove(p.children, name)
		}
	}
	delete(m.nodes, name)
	m.order = remove(m.order, name)
	m.selection = remove(m.selection, name)
	m.dropConnectionsOf(name)
	m.log.Debug("node deleted", log.String("name", name))
	return nil
}

func (m *Memory) Rename(name, newName string) (string, error) {
	c, err := m.acquireNode(name)
	if err != nil {
		return "", err
	}
	rec := c.rec
	m.cursors.release(c)
	if rec.locked {
		return "", fmt.Errorf("rename %s: %w", name, ErrNodeLocked)
	}

	newName = m.qualify(newName)
	if newName == name {
		return name, nil
	}
	newName = m.uniqueName(newName)

	delete(m.nodes, name)
	rec.name = newName
	m.nodes[newName] = rec
	replace(m.order, name, newName)
	replace(m.selection, name, newName)
	if rec.parent != "" {
		if p, ok := m.nodes[rec.parent]; ok {
			replace(p.children, name, newName)
		}
	}
	for _, child := range rec.children {
		if ch, ok := m.nodes[child]; ok {
			ch.parent = newName
		}
	}
	oldPrefix := name + "."
	newPrefix := newName + "."
	for i := range m.conns {
		for j := 0; j < 2; j++ {
			if strings.HasPrefix(m.conns[i][j], oldPrefix) {
				m.conns[i][j] = newPrefix + strings.TrimPrefix(m.conns[i][j], oldPrefix)
			}
		}
	}
	m.log.Debug("node renamed", log.String("from", name), log.String("to", newName))
	return newName, nil
}

func (m *Memory) Exists(name string) bool {
	_, ok := m.nodes[name]
	return ok
}

func (m *Memory) TypeOf(name string) (string, error) {
	c, err := m.acquireNode(name)
	if err != nil {
		return "", err
	}
	defer m.cursors.release(c)
	return c.rec.nodeType, nil
}

func (m *Memory) TypeChain(name string) ([]string, error) {
	c, err := m.acquireNode(name)
	if err != nil {
		return nil, err
	}
	nodeType := c.rec.nodeType
	m.cursors.release(c)

	chain := []string{nodeType}
	for {
		parent, ok := m.typeParents[nodeType]
		if !ok {
			break
		}
		chain = append(chain, parent)
		nodeType = parent
	}
	return chain, nil
}

func (m *Memory) Parent(name string) (string, error) {
	c, err := m.acquireNode(name)
	if err != nil {
		return "", err
	}
	defer m.cursors.release(c)
	return c.rec.parent, nil
}

func (m *Memory) SetParent(name, parent string) error {
	c, err := m.acquireNode(name)
	if err != nil {
		return err
	}
	rec := c.rec
	m.cursors.release(c)

	if parent != "" {
		if !m.Exists(parent) {
			return fmt.Errorf("parent %s: %w: %s", name, ErrNodeNotFound, parent)
		}
		for cur := parent; cur != ""; {
			if cur == name {
				return fmt.Errorf("parent %s under %s: %w", name, parent, ErrHierarchyCycle)
			}
			cur = m.nodes[cur].parent
		}
	}
	if rec.parent != "" {
		if p, ok := m.nodes[rec.parent]; ok {
			p.children = remove(p.children, name)
		}
	}
	rec.parent = parent
	if parent != "" {
		m.nodes[parent].children = append(m.nodes[parent].children, name)
	}
	return nil
}

func (m *Memory) Children(name string) ([]string, error) {
	c, err := m.acquireNode(name)
	if err != nil {
		return nil, err
	}
	defer m.cursors.release(c)
	return append([]string(nil), c.rec.children...), nil
}

func (m *Memory) SetLocked(name string, locked bool) error {
	c, err := m.acquireNode(name)
	if err != nil {
		return err
	}
	defer m.cursors.release(c)
	c.rec.locked = locked
	return nil
}

func (m *Memory) IsLocked(name string) (bool, error) {
	c, err := m.acquireNode(name)
	if err != nil {
		return false, err
	}
	defer m.cursors.release(c)
	return c.rec.locked, nil
}

func (m *Memory) ListNodes(nodeType string) ([]string, error) {
	if nodeType == "" {
		return append([]string(nil), m.order...), nil
	}
	var out []string
	for _, name := range m.order {
		chain, err := m.TypeChain(name)
		if err != nil {
			return nil, err
		}
		for _, tag := range chain {
			if tag == nodeType {
				out = append(out, name)
				break
			}
		}
	}
	return out, nil
}

// --- AttrCommands ---

func (m *Memory) AddAttr(node string, spec AttrSpec) error {
	c, err := m.acquireNode(node)
	if err != nil {
		return err
	}
	defer m.cursors.release(c)
	return m.addAttrTo(c.rec, spec, "")
}

func (m *Memory) addAttrTo(rec *record, spec AttrSpec, prefix string) error {
	local := prefix + spec.Name
	if _, ok := rec.attrs[local]; ok {
		return fmt.Errorf("%s.%s: %w", rec.name, local, ErrAttributeExists)
	}
	value := spec.Default
	if value == nil {
		value = zeroValue(spec)
	}
	rec.attrs[local] = &attrRecord{spec: spec, value: value}
	rec.attrOrder = append(rec.attrOrder, local)
	if spec.Type == TypeCompound {
		for _, child := range spec.Children {
			if err := m.addAttrTo(rec, child, local+"."); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Memory) AttrExists(attr string) bool {
	c, err := m.acquireAttr(attr)
	if err != nil {
		return false
	}
	m.cursors.release(c)
	return true
}

func (m *Memory) AttrTypeOf(attr string) (string, error) {
	c, err := m.acquireAttr(attr)
	if err != nil {
		return "", err
	}
	defer m.cursors.release(c)
	return c.attr.spec.Type, nil
}

func (m *Memory) AttrSpecOf(attr string) (AttrSpec, error) {
	c, err := m.acquireAttr(attr)
	if err != nil {
		return AttrSpec{}, err
	}
	defer m.cursors.release(c)
	return c.attr.spec, nil
}

func (m *Memory) GetAttr(attr string) (any, error) {
	c, err := m.acquireAttr(attr)
	if err != nil {
		return nil, err
	}
	defer m.cursors.release(c)
	return c.attr.value, nil
}

func (m *Memory) SetAttr(attr string, value any) error {
	c, err := m.acquireAttr(attr)
	if err != nil {
		return err
	}
	coerced, err := coerce(c.attr.spec, value)
	if err != nil {
		m.cursors.release(c)
		return fmt.Errorf("set %s: %w", attr, err)
	}
	c.attr.value = coerced
	keyable := c.attr.spec.Keyable
	m.cursors.release(c)

	if m.autoKey && keyable {
		if f, ok := coerced.(float64); ok {
			return m.SetKey(attr, Key{Frame: m.time, Value: f, InTangent: "auto", OutTangent: "auto"})
		}
	}
	return nil
}

func (m *Memory) ListAttrs(node string) ([]string, error) {
	c, err := m.acquireNode(node)
	if err != nil {
		return nil, err
	}
	defer m.cursors.release(c)
	return append([]string(nil), c.rec.attrOrder...), nil
}

func (m *Memory) EnumItems(attr string) ([]string, error) {
	c, err := m.acquireAttr(attr)
	if err != nil {
		return nil, err
	}
	defer m.cursors.release(c)
	return append([]string(nil), c.attr.spec.Items...), nil
}

// --- ConnectionCommands ---

func (m *Memory) Connect(src, dst string) error {
	if src == dst {
		return fmt.Errorf("connect: %w: %s", ErrSelfConnection, src)
	}
	for _, name := range []string{src, dst} {
		c, err := m.acquireAttr(name)
		if err != nil {
			return err
		}
		m.cursors.release(c)
	}
	for _, pair := range m.conns {
		if pair[0] == src && pair[1] == dst {
			return fmt.Errorf("connect: %s is already connected to %s", src, dst)
		}
	}
	m.conns = append(m.conns, [2]string{src, dst})
	return nil
}

func (m *Memory) Disconnect(src, dst string) error {
	for i, pair := range m.conns {
		if pair[0] == src && pair[1] == dst {
			m.conns = append(m.conns[:i], m.conns[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("disconnect: %s is not connected to %s", src, dst)
}

func (m *Memory) IsConnected(src, dst string) (bool, error) {
	for _, pair := range m.conns {
		if pair[0] == src && pair[1] == dst {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) Connections(attr string, source bool) ([]string, error) {
	var out []string
	for _, pair := range m.conns {
		if source && pair[1] == attr {
			out = append(out, pair[0])
		}
		if !source && pair[0] == attr {
			out = append(out, pair[1])
		}
	}
	return out, nil
}

func (m *Memory) ListConnections() ([]string, error) {
	out := make([]string, 0, len(m.conns)*2)
	for _, pair := range m.conns {
		out = append(out, pair[0], pair[1])
	}
	return out, nil
}

func (m *Memory) dropConnectionsOf(node string) {
	prefix := node + "."
	kept := m.conns[:0]
	for _, pair := range m.conns {
		if strings.HasPrefix(pair[0], prefix) || strings.HasPrefix(pair[1], prefix) {
			continue
		}
		kept = append(kept, pair)
	}
	m.conns = kept
}

// --- SelectionCommands ---

func (m *Memory) Selection() []string {
	return append([]string(nil), m.selection...)
}

func (m *Memory) Select(names []string) error {
	for _, name := range names {
		if !m.Exists(name) {
			return fmt.Errorf("select: %w: %s", ErrNodeNotFound, name)
		}
	}
	m.selection = append([]string(nil), names...)
	return nil
}

// --- NamespaceCommands ---

func (m *Memory) CurrentNamespace() string {
	return m.currentNS
}

func (m *Memory) SetCurrentNamespace(ns string) error {
	if _, ok := m.namespaces[ns]; !ok {
		return fmt.Errorf("set namespace: %w: %s", ErrNamespaceNotFound, ns)
	}
	m.currentNS = ns
	return nil
}

func (m *Memory) AddNamespace(ns string) error {
	if _, ok := m.namespaces[ns]; ok {
		return fmt.Errorf("add namespace: %w: %s", ErrNamespaceExists, ns)
	}
	m.namespaces[ns] = struct{}{}
	return nil
}

func (m *Memory) RemoveNamespace(ns string, moveToRoot bool) error {
	if ns == ":" {
		return fmt.Errorf("remove namespace: cannot remove the root namespace")
	}
	if _, ok := m.namespaces[ns]; !ok {
		return fmt.Errorf("remove namespace: %w: %s", ErrNamespaceNotFound, ns)
	}
	contents, err := m.NamespaceContents(ns)
	if err != nil {
		return err
	}
	// Leave the namespace before renaming its contents, or qualify would pull
	// the bare names straight back into it.
	if m.currentNS == ns {
		m.currentNS = ":"
	}
	for _, name := range contents {
		if moveToRoot {
			bare := name[strings.LastIndex(name, ":")+1:]
			if _, err := m.Rename(name, bare); err != nil {
				return err
			}
		} else if err := m.Delete(name); err != nil {
			return err
		}
	}
	delete(m.namespaces, ns)
	return nil
}

func (m *Memory) Namespaces() []string {
	out := make([]string, 0, len(m.namespaces))
	for ns := range m.namespaces {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

func (m *Memory) NamespaceContents(ns string) ([]string, error) {
	if _, ok := m.namespaces[ns]; !ok {
		return nil, fmt.Errorf("namespace contents: %w: %s", ErrNamespaceNotFound, ns)
	}
	var out []string
	for _, name := range m.order {
		if ns == ":" {
			if !strings.Contains(name, ":") {
				out = append(out, name)
			}
		} else if strings.HasPrefix(name, ns+":") {
			out = append(out, name)
		}
	}
	return out, nil
}

// --- TimeCommands ---

func (m *Memory) CurrentTime() float64 { return m.time }

func (m *Memory) SetCurrentTime(frame float64) { m.time = frame }

func (m *Memory) FrameRange() (float64, float64) { return m.rangeMin, m.rangeMax }

func (m *Memory) SetFrameRange(min, max float64) {
	m.rangeMin, m.rangeMax = min, max
}

// --- KeyCommands ---

func (m *Memory) AutoKey() bool { return m.autoKey }

func (m *Memory) SetAutoKey(on bool) { m.autoKey = on }

func (m *Memory) SetKey(attr string, key Key) error {
	c, err := m.acquireAttr(attr)
	if err != nil {
		return err
	}
	defer m.cursors.release(c)
	keys := c.attr.keys
	idx := sort.Search(len(keys), func(i int) bool { return keys[i].Frame >= key.Frame })
	if idx < len(keys) && sameFrame(keys[idx].Frame, key.Frame) {
		keys[idx] = key
		return nil
	}
	keys = append(keys, Key{})
	copy(keys[idx+1:], keys[idx:])
	keys[idx] = key
	c.attr.keys = keys
	return nil
}

func (m *Memory) Keys(attr string) ([]Key, error) {
	c, err := m.acquireAttr(attr)
	if err != nil {
		return nil, err
	}
	defer m.cursors.release(c)
	return append([]Key(nil), c.attr.keys...), nil
}

func (m *Memory) KeyAt(attr string, frame float64) (Key, error) {
	c, err := m.acquireAttr(attr)
	if err != nil {
		return Key{}, err
	}
	defer m.cursors.release(c)
	for _, k := range c.attr.keys {
		if sameFrame(k.Frame, frame) {
			return k, nil
		}
	}
	return Key{}, fmt.Errorf("%s at %v: %w", attr, frame, ErrKeyNotFound)
}

func (m *Memory) RemoveKey(attr string, frame float64) error {
	c, err := m.acquireAttr(attr)
	if err != nil {
		return err
	}
	defer m.cursors.release(c)
	for i, k := range c.attr.keys {
		if sameFrame(k.Frame, frame) {
			c.attr.keys = append(c.attr.keys[:i], c.attr.keys[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s at %v: %w", attr, frame, ErrKeyNotFound)
}

func (m *Memory) EvaluateAt(attr string, frame float64) (float64, error) {
	c, err := m.acquireAttr(attr)
	if err != nil {
		return 0, err
	}
	defer m.cursors.release(c)
	keys := c.attr.keys
	if len(keys) == 0 {
		return 0, fmt.Errorf("evaluate %s: %w", attr, ErrNoKeys)
	}
	if frame <= keys[0].Frame {
		return keys[0].Value, nil
	}
	if frame >= keys[len(keys)-1].Frame {
		return keys[len(keys)-1].Value, nil
	}
	idx := sort.Search(len(keys), func(i int) bool { return keys[i].Frame >= frame })
	prev, next := keys[idx-1], keys[idx]
	if sameFrame(next.Frame, frame) {
		return next.Value, nil
	}
	if prev.OutTangent == "step" {
		return prev.Value, nil
	}
	t := (frame - prev.Frame) / (next.Frame - prev.Frame)
	return prev.Value + t*(next.Value-prev.Value), nil
}

// --- SkinCommands ---

func (m *Memory) Influences(skin string) ([]string, error) {
	rec, err := m.skinRecord(skin)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), rec.influences...), nil
}

func (m *Memory) AddInfluence(skin, influence string) error {
	rec, err := m.skinRecord(skin)
	if err != nil {
		return err
	}
	if !m.Exists(influence) {
		return fmt.Errorf("add influence: %w: %s", ErrNodeNotFound, influence)
	}
	for _, inf := range rec.influences {
		if inf == influence {
			return nil
		}
	}
	rec.influences = append(rec.influences, influence)
	return nil
}

func (m *Memory) Weights(skin string, vertex int) (map[string]float64, error) {
	rec, err := m.skinRecord(skin)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(rec.weights[vertex]))
	for inf, w := range rec.weights[vertex] {
		out[inf] = w
	}
	return out, nil
}

func (m *Memory) SetWeights(skin string, vertex int, weights map[string]float64) error {
	rec, err := m.skinRecord(skin)
	if err != nil {
		return err
	}
	for inf := range weights {
		if !contains(rec.influences, inf) {
			return fmt.Errorf("set weights: %w: %s", ErrInfluenceNotFound, inf)
		}
	}
	if rec.weights == nil {
		rec.weights = make(map[int]map[string]float64)
	}
	stored := make(map[string]float64, len(weights))
	for inf, w := range weights {
		stored[inf] = w
	}
	rec.weights[vertex] = stored
	return nil
}

func (m *Memory) WeightedVertices(skin string) ([]int, error) {
	rec, err := m.skinRecord(skin)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(rec.weights))
	for v := range rec.weights {
		out = append(out, v)
	}
	sort.Ints(out)
	return out, nil
}

func (m *Memory) skinRecord(skin string) (*record, error) {
	c, err := m.acquireNode(skin)
	if err != nil {
		return nil, err
	}
	rec := c.rec
	m.cursors.release(c)
	chain, err := m.TypeChain(skin)
	if err != nil {
		return nil, err
	}
	if !contains(chain, "skinCluster") {
		return nil, fmt.Errorf("%s: %w", skin, ErrNotASkin)
	}
	return rec, nil
}

// --- UndoCommands ---

func (m *Memory) OpenUndoChunk(name string) {
	m.undoOpen = append(m.undoOpen, name)
	m.log.Debug("undo chunk opened", log.String("name", name))
}

func (m *Memory) CloseUndoChunk() {
	if len(m.undoOpen) == 0 {
		m.log.Warn("undo chunk close without open")
		return
	}
	name := m.undoOpen[len(m.undoOpen)-1]
	m.undoOpen = m.undoOpen[:len(m.undoOpen)-1]
	m.log.Debug("undo chunk closed", log.String("name", name))
}

// --- RefreshCommands ---

func (m *Memory) SuspendRefresh() { m.suspended++ }

func (m *Memory) ResumeRefresh() {
	if m.suspended > 0 {
		m.suspended--
	}
}

func (m *Memory) RefreshSuspended() bool { return m.suspended > 0 }

// --- lookup helpers ---

func (m *Memory) acquireNode(name string) (*cursor, error) {
	rec, ok := m.nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, name)
	}
	return m.cursors.acquire(rec), nil
}

func (m *Memory) acquireAttr(attr string) (*cursor, error) {
	node, local, ok := strings.Cut(attr, ".")
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBadAttributeName, attr)
	}
	c, err := m.acquireNode(node)
	if err != nil {
		return nil, err
	}
	rec, ok := c.rec.attrs[local]
	if !ok {
		m.cursors.release(c)
		return nil, fmt.Errorf("%w: %s", ErrAttributeNotFound, attr)
	}
	c.attr = rec
	c.attrName = local
	return c, nil
}

// qualify prepends the current namespace to bare names.
func (m *Memory) qualify(name string) string {
	if strings.Contains(name, ":") || m.currentNS == ":" {
		return name
	}
	return m.currentNS + ":" + name
}

// uniqueName resolves name collisions the way the host does: strip any
// trailing digits and count up until the name is free.
func (m *Memory) uniqueName(name string) string {
	if _, ok := m.nodes[name]; !ok {
		return name
	}
	base := strings.TrimRight(name, "0123456789")
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if _, ok := m.nodes[candidate]; !ok {
			return candidate
		}
	}
}

// seedAttrs adds the default attributes every node of a given family carries.
func (m *Memory) seedAttrs(rec *record) {
	_ = m.addAttrTo(rec, AttrSpec{Name: "message", Type: TypeMessage}, "")
	chain := []string{rec.nodeType}
	nodeType := rec.nodeType
	for {
		parent, ok := m.typeParents[nodeType]
		if !ok {
			break
		}
		chain = append(chain, parent)
		nodeType = parent
	}
	if contains(chain, "dagNode") {
		_ = m.addAttrTo(rec, AttrSpec{Name: "visibility", Type: TypeBool, Default: true}, "")
	}
	if contains(chain, "transform") {
		for _, axis := range []string{"X", "Y", "Z"} {
			_ = m.addAttrTo(rec, AttrSpec{Name: "translate" + axis, Type: TypeDouble, Keyable: true}, "")
			_ = m.addAttrTo(rec, AttrSpec{Name: "rotate" + axis, Type: TypeDouble, Keyable: true}, "")
			_ = m.addAttrTo(rec, AttrSpec{Name: "scale" + axis, Type: TypeDouble, Default: 1.0, Keyable: true}, "")
		}
		_ = m.addAttrTo(rec, AttrSpec{
			Name: "rotateOrder", Type: TypeEnum,
			Items: []string{"xyz", "yzx", "zxy", "xzy", "yxz", "zyx"},
		}, "")
		_ = m.addAttrTo(rec, AttrSpec{Name: "matrix", Type: TypeMatrix, Default: Identity()}, "")
	}
	if contains(chain, "constraint") {
		_ = m.addAttrTo(rec, AttrSpec{Name: "target", Type: TypeMessage}, "")
	}
	if contains(chain, "animCurve") {
		_ = m.addAttrTo(rec, AttrSpec{Name: "output", Type: TypeDouble}, "")
	}
}

func zeroValue(spec AttrSpec) any {
	switch spec.Type {
	case TypeDouble:
		return 0.0
	case TypeLong:
		return 0
	case TypeBool:
		return false
	case TypeString:
		return ""
	case TypeEnum:
		return 0
	case TypeMatrix:
		return Identity()
	case TypeArray:
		return []any{}
	default:
		return nil
	}
}

// coerce validates and normalizes a value for an attribute spec. Numeric
// attributes with a declared range clamp the way the host does.
func coerce(spec AttrSpec, value any) (any, error) {
	switch spec.Type {
	case TypeDouble:
		f, ok := toFloat(value)
		if !ok {
			return nil, ErrBadAttributeValue
		}
		if spec.Min != nil {
			f = math.Max(f, *spec.Min)
		}
		if spec.Max != nil {
			f = math.Min(f, *spec.Max)
		}
		return f, nil
	case TypeLong:
		f, ok := toFloat(value)
		if !ok {
			return nil, ErrBadAttributeValue
		}
		return int(f), nil
	case TypeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, ErrBadAttributeValue
		}
		return b, nil
	case TypeString:
		s, ok := value.(string)
		if !ok {
			return nil, ErrBadAttributeValue
		}
		return s, nil
	case TypeEnum:
		// Indices arrive as int from Go callers and as float64 off decoded
		// JSON or YAML; both address the item list.
		if v, ok := value.(string); ok {
			for i, item := range spec.Items {
				if item == v {
					return i, nil
				}
			}
			return nil, fmt.Errorf("%w: %q is not an enum item", ErrBadAttributeValue, v)
		}
		f, ok := toFloat(value)
		if !ok || f != math.Trunc(f) {
			return nil, ErrBadAttributeValue
		}
		idx := int(f)
		if idx < 0 || idx >= len(spec.Items) {
			return nil, fmt.Errorf("%w: index %d out of range", ErrBadAttributeValue, idx)
		}
		return idx, nil
	case TypeMatrix:
		switch v := value.(type) {
		case Matrix:
			return v, nil
		case [16]float64:
			return Matrix(v), nil
		case []float64:
			if len(v) != 16 {
				return nil, ErrBadAttributeValue
			}
			var out Matrix
			copy(out[:], v)
			return out, nil
		case []any:
			// decoded JSON or YAML matrices arrive as a generic slice
			if len(v) != 16 {
				return nil, ErrBadAttributeValue
			}
			var out Matrix
			for i, cell := range v {
				f, ok := toFloat(cell)
				if !ok {
					return nil, ErrBadAttributeValue
				}
				out[i] = f
			}
			return out, nil
		default:
			return nil, ErrBadAttributeValue
		}
	case TypeArray:
		v, ok := value.([]any)
		if !ok {
			return nil, ErrBadAttributeValue
		}
		return v, nil
	case TypeMessage, TypeCompound:
		return nil, fmt.Errorf("%w: %s attributes hold no value", ErrBadAttributeValue, spec.Type)
	default:
		return value, nil
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func sameFrame(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func remove(list []string, s string) []string {
	out := list[:0]
	for _, item := range list {
		if item != s {
			out = append(out, item)
		}
	}
	return out
}

func replace(list []string, old, new string) {
	for i, item := range list {
		if item == old {
			list[i] = new
		}
	}
}
