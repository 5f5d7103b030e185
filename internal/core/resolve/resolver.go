package resolve

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/observability/log"
	"github.com/scenekit/scenekit/internal/core/registry"
	"github.com/scenekit/scenekit/internal/core/scene"
)

var (
	// ErrUnknownType is returned when creation names a type key with no
	// registered constructor. Creation never falls back: reading an unknown
	// type degrades to the generic wrapper, creating one has no sensible
	// generic behavior.
	ErrUnknownType = errors.New("no constructor registered for type")
	// ErrInvalidComponentName is returned for component names not matching
	// owner.tag[i] or owner.tag[i][j].
	ErrInvalidComponentName = errors.New("invalid component name")
	// ErrWrongCategory is returned when a registered constructor produces a
	// wrapper of the wrong family.
	ErrWrongCategory = errors.New("constructor returned wrapper of wrong category")
)

// componentName matches owner.tag[i] and owner.tag[i][j] exactly.
var componentName = regexp.MustCompile(`^([^.\[\]]+)\.([A-Za-z][A-Za-z0-9]*)\[(\d+)\](?:\[(\d+)\])?$`)

var _ entity.Resolver = (*Resolver)(nil)

// Resolver turns bare names into typed wrappers by asking the backend for
// the live type tag and looking it up in the registry. Resolution re-queries
// the backend on every call; nothing is cached.
type Resolver struct {
	env entity.Env
	reg *registry.Registry
}

// New builds a resolver over a backend and a registry. A nil registry uses
// the process default.
func New(backend scene.Backend, reg *registry.Registry, logger log.Log) *Resolver {
	if reg == nil {
		reg = registry.Default()
	}
	if logger == nil {
		logger = log.Nop()
	}
	r := &Resolver{reg: reg}
	r.env = entity.Env{Backend: backend, Resolver: r, Log: logger}
	return r
}

// Env returns the environment handed to wrappers built by this resolver.
func (r *Resolver) Env() entity.Env { return r.env }

// Attribute resolves a full attribute name to its typed wrapper. Unknown
// tags fall back to the generic attribute wrapper.
func (r *Resolver) Attribute(fullName string) (entity.Attribute, error) {
	if _, _, ok := entity.CutName(fullName); !ok {
		return nil, fmt.Errorf("resolve attribute %q: %w", fullName, scene.ErrBadAttributeName)
	}
	tag, err := r.env.Backend.AttrTypeOf(fullName)
	if err != nil {
		return nil, err
	}
	ctor, _ := r.reg.LookupOrFallback(registry.CategoryAttribute, tag)
	if ctor == nil {
		return nil, fmt.Errorf("resolve attribute %q: %w: %s", fullName, ErrUnknownType, tag)
	}
	wrapped := ctor(r.env, fullName)
	attr, ok := wrapped.(entity.Attribute)
	if !ok {
		return nil, fmt.Errorf("resolve attribute %q: %w: %T", fullName, ErrWrongCategory, wrapped)
	}
	return attr, nil
}

// Node resolves a node name to the most specific registered wrapper. The
// backend reports the inheritance chain most-specific-first; the first
// registered tag on the chain wins, so a node whose exact type is unknown
// still gets its nearest registered ancestor rather than the plain generic.
func (r *Resolver) Node(name string) (entity.Node, error) {
	chain, err := r.env.Backend.TypeChain(name)
	if err != nil {
		return nil, err
	}
	var ctor registry.Ctor
	for _, tag := range chain {
		if c, ok := r.reg.Lookup(registry.CategoryNode, tag); ok {
			ctor = c
			break
		}
	}
	if ctor == nil {
		ctor, _ = r.reg.LookupOrFallback(registry.CategoryNode, registry.FallbackTag)
	}
	if ctor == nil {
		return nil, fmt.Errorf("resolve node %q: %w: %s", name, ErrUnknownType, chain[0])
	}
	wrapped := ctor(r.env, name)
	node, ok := wrapped.(entity.Node)
	if !ok {
		return nil, fmt.Errorf("resolve node %q: %w: %T", name, ErrWrongCategory, wrapped)
	}
	return node, nil
}

// Component resolves a component full name. The name must match
// owner.tag[i] or owner.tag[i][j] exactly; the category key is the tag with
// digits stripped.
func (r *Resolver) Component(fullName string) (entity.Component, error) {
	match := componentName.FindStringSubmatch(fullName)
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidComponentName, fullName)
	}
	tag := stripDigits(match[2])
	ctor, _ := r.reg.LookupOrFallback(registry.CategoryComponent, tag)
	if ctor == nil {
		return nil, fmt.Errorf("resolve component %q: %w: %s", fullName, ErrUnknownType, tag)
	}
	wrapped := ctor(r.env, fullName)
	comp, ok := wrapped.(entity.Component)
	if !ok {
		return nil, fmt.Errorf("resolve component %q: %w: %T", fullName, ErrWrongCategory, wrapped)
	}
	return comp, nil
}

// Misc resolves an entity in the misc category by an explicit tag, falling
// back to the category generic.
func (r *Resolver) Misc(tag, name string) (entity.Entity, error) {
	ctor, _ := r.reg.LookupOrFallback(registry.CategoryMisc, tag)
	if ctor == nil {
		return nil, fmt.Errorf("resolve %q: %w: %s", name, ErrUnknownType, tag)
	}
	return ctor(r.env, name), nil
}

// CreateNode creates a node from its data dict: node, extra attribute
// definitions, attribute values, then connections, in that order. The
// declared type must have a registered constructor.
func (r *Resolver) CreateNode(data entity.NodeData) (entity.Node, error) {
	chain := r.typeTagChain(data.Type)
	registered := false
	for _, tag := range chain {
		if _, ok := r.reg.Lookup(registry.CategoryNode, tag); ok {
			registered = true
			break
		}
	}
	if !registered {
		return nil, fmt.Errorf("create node %q: %w: %s", data.Name, ErrUnknownType, data.Type)
	}

	name, err := r.env.Backend.CreateNode(data.Type, data.Name)
	if err != nil {
		return nil, err
	}
	if data.Parent != "" {
		if err := r.env.Backend.SetParent(name, data.Parent); err != nil {
			return nil, err
		}
	}
	for _, attr := range data.Attributes {
		if _, err := r.CreateAttribute(name, attr); err != nil {
			return nil, err
		}
	}
	for local, value := range data.Values {
		if err := r.env.Backend.SetAttr(entity.JoinName(name, local), value); err != nil {
			return nil, err
		}
	}
	for _, pair := range data.Connections {
		// Endpoints owned by the node being created follow it to whatever
		// name the backend assigned.
		for i := range pair {
			if owner, local, ok := entity.CutName(pair[i]); ok && owner == data.Name {
				pair[i] = entity.JoinName(name, local)
			}
		}
		conn, err := entity.NewConnection(r.env, pair[0], pair[1])
		if err != nil {
			return nil, err
		}
		if err := conn.Connect(); err != nil {
			return nil, err
		}
	}
	return r.Node(name)
}

// CreateAttribute adds an attribute to a node from its data dict. The
// declared type must have a registered constructor; there is no fallback on
// creation. When the attribute already exists (the default attributes a node
// type ships with) only the value is applied, which is what makes a node's
// Data() dict replayable onto a fresh node.
func (r *Resolver) CreateAttribute(node string, data entity.AttrData) (entity.Attribute, error) {
	if _, ok := r.reg.Lookup(registry.CategoryAttribute, data.Type); !ok {
		return nil, fmt.Errorf("create attribute %q on %q: %w: %s", data.Name, node, ErrUnknownType, data.Type)
	}
	fullName := entity.JoinName(node, data.Name)
	if !r.env.Backend.AttrExists(fullName) {
		if err := r.env.Backend.AddAttr(node, data.Spec()); err != nil {
			return nil, err
		}
	}
	if data.Value != nil {
		if err := r.env.Backend.SetAttr(fullName, data.Value); err != nil {
			return nil, err
		}
	}
	return r.Attribute(fullName)
}

// typeTagChain lists the tags creation may match for a declared node type.
// Only the concrete tag is known before the node exists, so the chain is the
// tag itself; kept as a seam for hosts whose create keys are abstract.
func (r *Resolver) typeTagChain(nodeType string) []string {
	return []string{nodeType}
}

// ParseComponentName validates and splits a component full name without
// resolving it. Returns the owner, the digit-stripped tag and the indices.
func ParseComponentName(fullName string) (owner, tag string, indices []int, err error) {
	match := componentName.FindStringSubmatch(fullName)
	if match == nil {
		return "", "", nil, fmt.Errorf("%w: %q", ErrInvalidComponentName, fullName)
	}
	owner = match[1]
	tag = stripDigits(match[2])
	first, _ := strconv.Atoi(match[3])
	indices = []int{first}
	if match[4] != "" {
		second, _ := strconv.Atoi(match[4])
		indices = append(indices, second)
	}
	return owner, tag, indices, nil
}

func stripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s)
}
