package entity

import (
	"fmt"

	"github.com/scenekit/scenekit/internal/core/observability/log"
	"github.com/scenekit/scenekit/internal/core/scene"
)

// Connection is a directed source→destination relationship between two
// attributes. The object holds only identity; connection status is always
// queried live. A Connection may be built before Connect is called, in which
// case it exists only as a value until then.
type Connection struct {
	Base
	env Env
	src Attribute
	dst Attribute
}

// NewConnection builds a connection value over two attribute endpoints.
// String endpoints are resolved through the env's resolver. The endpoints
// must differ.
func NewConnection(env Env, src, dst any) (*Connection, error) {
	source, err := asAttribute(env, src)
	if err != nil {
		return nil, err
	}
	dest, err := asAttribute(env, dst)
	if err != nil {
		return nil, err
	}
	if source.FullName() == dest.FullName() {
		return nil, fmt.Errorf("connection: %w: %s", scene.ErrSelfConnection, source.FullName())
	}
	return &Connection{
		Base: NewBase(source.FullName() + " -> " + dest.FullName()),
		env:  env,
		src:  source,
		dst:  dest,
	}, nil
}

func asAttribute(env Env, v any) (Attribute, error) {
	switch a := v.(type) {
	case Attribute:
		return a, nil
	case string:
		return env.Resolver.Attribute(a)
	case fmt.Stringer:
		return env.Resolver.Attribute(a.String())
	default:
		return nil, fmt.Errorf("connection: cannot use %T as an attribute endpoint", v)
	}
}

func (c *Connection) GoString() string { return Repr("Connection", c.FullName()) }

// Source returns the driving attribute.
func (c *Connection) Source() Attribute { return c.src }

// Destination returns the driven attribute.
func (c *Connection) Destination() Attribute { return c.dst }

// IsConnected queries the live connection state.
func (c *Connection) IsConnected() (bool, error) {
	return c.env.Backend.IsConnected(c.src.FullName(), c.dst.FullName())
}

// Connect makes the connection live. Connecting an already-connected pair is
// a no-op.
func (c *Connection) Connect() error {
	live, err := c.IsConnected()
	if err != nil {
		return err
	}
	if live {
		return nil
	}
	return c.env.Backend.Connect(c.src.FullName(), c.dst.FullName())
}

// Disconnect removes the live connection. Disconnecting a pair that is not
// connected is a no-op.
func (c *Connection) Disconnect() error {
	live, err := c.IsConnected()
	if err != nil {
		return err
	}
	if !live {
		return nil
	}
	return c.env.Backend.Disconnect(c.src.FullName(), c.dst.FullName())
}

// ConnectionFilter restricts ListConnections by the node type of either
// endpoint's owner. An empty Allow list admits every type; Deny wins over
// Allow.
type ConnectionFilter struct {
	Allow []string
	Deny  []string
}

func (f ConnectionFilter) admits(nodeType string) bool {
	for _, t := range f.Deny {
		if t == nodeType {
			return false
		}
	}
	if len(f.Allow) == 0 {
		return true
	}
	for _, t := range f.Allow {
		if t == nodeType {
			return true
		}
	}
	return false
}

// ListConnections pairs up the backend's flat connection list into
// Connections, preserving backend order, and filters by owning-node type on
// both endpoints.
func ListConnections(env Env, filter ConnectionFilter) ([]*Connection, error) {
	flat, err := env.Backend.ListConnections()
	if err != nil {
		return nil, err
	}
	if len(flat)%2 != 0 {
		return nil, fmt.Errorf("connections: backend returned odd endpoint count %d", len(flat))
	}
	out := make([]*Connection, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		admitted, err := endpointAdmitted(env, filter, flat[i], flat[i+1])
		if err != nil {
			return nil, err
		}
		if !admitted {
			continue
		}
		conn, err := NewConnection(env, flat[i], flat[i+1])
		if err != nil {
			env.Log.Warn("skipping malformed connection",
				log.String("source", flat[i]), log.String("destination", flat[i+1]), log.Error(err))
			continue
		}
		out = append(out, conn)
	}
	return out, nil
}

func endpointAdmitted(env Env, filter ConnectionFilter, src, dst string) (bool, error) {
	for _, attr := range []string{src, dst} {
		node, _, _ := cutName(attr)
		nodeType, err := env.Backend.TypeOf(node)
		if err != nil {
			return false, err
		}
		if !filter.admits(nodeType) {
			return false, nil
		}
	}
	return true, nil
}
