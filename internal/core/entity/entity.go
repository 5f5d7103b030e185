package entity

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/scenekit/scenekit/internal/core/observability/log"
	"github.com/scenekit/scenekit/internal/core/scene"
)

// Entity is anything addressed by a scene name: nodes, attributes,
// components, namespaces, files. The name is the only durable state; every
// operation re-resolves against the backend, so a wrapper stays valid across
// renames of unrelated objects and two wrappers for one name are
// interchangeable.
type Entity interface {
	fmt.Stringer
	FullName() string
	// Key is a stable hash of the full name for name-keyed collections.
	Key() uint64
}

// Attribute is the common surface of every attribute wrapper.
type Attribute interface {
	Entity
	// NodeName returns the owning node's name, AttrName the local part.
	NodeName() string
	AttrName() string
	Exists() bool
	Type() (string, error)
	Get() (any, error)
	Set(value any) error
	Data() (AttrData, error)
}

// Node is the common surface of every node wrapper.
type Node interface {
	Entity
	Exists() bool
	Type() (string, error)
	Delete() error
	// Rename returns a fresh wrapper for the backend-assigned new name; the
	// receiver keeps its old, now stale, name.
	Rename(newName string) (Node, error)
	Attr(name string) (Attribute, error)
	Data() (NodeData, error)
}

// Component is the common surface of shape component wrappers.
type Component interface {
	Entity
	OwnerName() string
	Tag() string
	Indices() []int
}

// Resolver turns names into typed wrappers. Implemented by the resolve
// package; declared here so wrappers can resolve related entities without an
// import cycle.
type Resolver interface {
	Attribute(fullName string) (Attribute, error)
	Node(name string) (Node, error)
	Component(fullName string) (Component, error)
}

// Env is everything a wrapper needs to operate: the live backend, the
// resolver that built it, and a logger.
type Env struct {
	Backend  scene.Backend
	Resolver Resolver
	Log      log.Log
}

// Base carries the identity contract shared by every wrapper: a full name,
// value equality on it, string conversion to it, and a hash of it. Wrappers
// embed Base by value.
type Base struct {
	name string
}

// NewBase wraps a full name.
func NewBase(name string) Base {
	return Base{name: name}
}

// FullName returns the entity's full name.
func (b Base) FullName() string { return b.name }

// String returns the full name, so any wrapper can be passed where the
// backend expects a plain name.
func (b Base) String() string { return b.name }

// Key hashes the full name. Two wrappers for the same name share a key.
func (b Base) Key() uint64 { return xxhash.Sum64String(b.name) }

// Same reports whether other names the same entity. Accepts strings,
// Stringers, and anything else via its default formatting.
func (b Base) Same(other any) bool {
	switch v := other.(type) {
	case string:
		return b.name == v
	case fmt.Stringer:
		return b.name == v.String()
	default:
		return b.name == fmt.Sprint(other)
	}
}

// Repr renders the constructor-call-like representation wrappers use for
// GoString.
func Repr(kind, name string) string {
	return fmt.Sprintf("%s(%q)", kind, name)
}
