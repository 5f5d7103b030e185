package entity

import "strings"

// Namespace wraps a colon-separated namespace name. The root namespace
// is ":".
type Namespace struct {
	Base
	env Env
}

// NewNamespace wraps a namespace name without touching the backend.
func NewNamespace(env Env, name string) Namespace {
	return Namespace{Base: NewBase(name), env: env}
}

// AddNamespace creates the namespace in the scene and returns its wrapper.
func AddNamespace(env Env, name string) (Namespace, error) {
	if err := env.Backend.AddNamespace(name); err != nil {
		return Namespace{}, err
	}
	return NewNamespace(env, name), nil
}

func (n Namespace) GoString() string { return Repr("Namespace", n.FullName()) }

// Exists reports whether the namespace is present in the scene.
func (n Namespace) Exists() bool {
	for _, ns := range n.env.Backend.Namespaces() {
		if ns == n.FullName() {
			return true
		}
	}
	return false
}

// ShortName returns the last colon-separated segment.
func (n Namespace) ShortName() string {
	name := n.FullName()
	return name[strings.LastIndex(name, ":")+1:]
}

// Contents resolves every node living in the namespace.
func (n Namespace) Contents() ([]Node, error) {
	names, err := n.env.Backend.NamespaceContents(n.FullName())
	if err != nil {
		return nil, err
	}
	out := make([]Node, 0, len(names))
	for _, name := range names {
		node, err := n.env.Resolver.Node(name)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

// Remove deletes the namespace. Contents move to the root namespace when
// moveToRoot is set and are deleted otherwise.
func (n Namespace) Remove(moveToRoot bool) error {
	return n.env.Backend.RemoveNamespace(n.FullName(), moveToRoot)
}
