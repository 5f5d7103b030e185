package scene

// The backend is the host application's command layer. Every wrapper
// round-trips through it on each call; nothing in this module caches live
// scene state across calls. The surface is split into small capability
// interfaces so components can depend on the slice they actually use.

// NodeCommands covers node lifecycle and hierarchy.
type NodeCommands interface {
	// CreateNode creates a node of the given type and returns the name the
	// backend actually assigned, which may carry a numeric suffix when the
	// requested name is taken.
	CreateNode(nodeType, name string) (string, error)
	Delete(name string) error
	// Rename returns the new full name assigned by the backend.
	Rename(name, newName string) (string, error)
	Exists(name string) bool
	TypeOf(name string) (string, error)
	// TypeChain returns the node's type inheritance chain ordered
	// most-specific-first, e.g. ["mesh", "shape", "dagNode"]. Resolution
	// depends on this ordering.
	TypeChain(name string) ([]string, error)
	Parent(name string) (string, error)
	// SetParent with an empty parent moves the node under the world root.
	SetParent(name, parent string) error
	Children(name string) ([]string, error)
	SetLocked(name string, locked bool) error
	IsLocked(name string) (bool, error)
	// ListNodes returns nodes of the given type, or every node when the
	// type is empty. Order is creation order.
	ListNodes(nodeType string) ([]string, error)
}

// AttrCommands covers attribute definition and value access. Attribute
// arguments are full names ("node.attr").
type AttrCommands interface {
	AddAttr(node string, spec AttrSpec) error
	AttrExists(attr string) bool
	AttrTypeOf(attr string) (string, error)
	AttrSpecOf(attr string) (AttrSpec, error)
	GetAttr(attr string) (any, error)
	SetAttr(attr string, value any) error
	ListAttrs(node string) ([]string, error)
	EnumItems(attr string) ([]string, error)
}

// ConnectionCommands covers the directed attribute connection graph.
type ConnectionCommands interface {
	Connect(src, dst string) error
	Disconnect(src, dst string) error
	IsConnected(src, dst string) (bool, error)
	// Connections returns the attributes connected to attr: sources feeding
	// it when source is true, destinations it feeds otherwise.
	Connections(attr string, source bool) ([]string, error)
	// ListConnections returns every connection as a flat
	// [src0, dst0, src1, dst1, ...] list in creation order.
	ListConnections() ([]string, error)
}

// SelectionCommands covers the ambient selection list.
type SelectionCommands interface {
	Selection() []string
	Select(names []string) error
}

// NamespaceCommands covers namespace bookkeeping. Namespace names are
// colon-separated, ":" is the root.
type NamespaceCommands interface {
	CurrentNamespace() string
	SetCurrentNamespace(ns string) error
	AddNamespace(ns string) error
	// RemoveNamespace deletes ns; when moveToRoot is set its contents are
	// reparented to the root namespace, otherwise they are deleted.
	RemoveNamespace(ns string, moveToRoot bool) error
	Namespaces() []string
	NamespaceContents(ns string) ([]string, error)
}

// TimeCommands covers the ambient time state.
type TimeCommands interface {
	CurrentTime() float64
	SetCurrentTime(frame float64)
	FrameRange() (min, max float64)
	SetFrameRange(min, max float64)
}

// KeyCommands covers animation keys on attributes.
type KeyCommands interface {
	AutoKey() bool
	SetAutoKey(on bool)
	SetKey(attr string, key Key) error
	Keys(attr string) ([]Key, error)
	// KeyAt fails when no key exists at the exact frame.
	KeyAt(attr string, frame float64) (Key, error)
	RemoveKey(attr string, frame float64) error
	// EvaluateAt interpolates the keyed value at the given frame.
	EvaluateAt(attr string, frame float64) (float64, error)
}

// SkinCommands covers skin deformer weight maps.
type SkinCommands interface {
	Influences(skin string) ([]string, error)
	AddInfluence(skin, influence string) error
	Weights(skin string, vertex int) (map[string]float64, error)
	SetWeights(skin string, vertex int, weights map[string]float64) error
	WeightedVertices(skin string) ([]int, error)
}

// UndoCommands covers undo chunking. The undo stack itself belongs to the
// host; this layer only brackets its own compound operations.
type UndoCommands interface {
	OpenUndoChunk(name string)
	CloseUndoChunk()
}

// RefreshCommands covers viewport refresh suspension.
type RefreshCommands interface {
	SuspendRefresh()
	ResumeRefresh()
	RefreshSuspended() bool
}

// Backend is the full command surface of the host.
type Backend interface {
	NodeCommands
	AttrCommands
	ConnectionCommands
	SelectionCommands
	NamespaceCommands
	TimeCommands
	KeyCommands
	SkinCommands
	UndoCommands
	RefreshCommands
}
