package nodes

import (
	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/observability/log"
)

// Constraint wraps constraint nodes. Drivers and driven nodes are not stored
// anywhere; they are rediscovered on every call by walking the connection
// graph around the constraint, so the wrapper survives rewiring.
type Constraint struct {
	Transform
}

func (c Constraint) GoString() string { return entity.Repr("Constraint", c.FullName()) }

// Drivers resolves the nodes driving the constraint: the owners of every
// attribute connected into the constraint's target attribute.
func (c Constraint) Drivers() ([]entity.Node, error) {
	sources, err := c.env.Backend.Connections(entity.JoinName(c.FullName(), "target"), true)
	if err != nil {
		return nil, err
	}
	return c.owners(sources)
}

// Driven resolves the nodes the constraint drives: the owners of every
// attribute fed by one of the constraint's output attributes.
func (c Constraint) Driven() ([]entity.Node, error) {
	locals, err := c.env.Backend.ListAttrs(c.FullName())
	if err != nil {
		return nil, err
	}
	var endpoints []string
	for _, local := range locals {
		if local == "target" {
			continue
		}
		destinations, err := c.env.Backend.Connections(entity.JoinName(c.FullName(), local), false)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, destinations...)
	}
	return c.owners(endpoints)
}

// owners resolves the distinct owning nodes of a list of attribute names,
// preserving first-seen order.
func (c Constraint) owners(attrs []string) ([]entity.Node, error) {
	seen := make(map[string]struct{}, len(attrs))
	var out []entity.Node
	for _, attr := range attrs {
		owner, _, ok := entity.CutName(attr)
		if !ok {
			continue
		}
		if _, dup := seen[owner]; dup {
			continue
		}
		seen[owner] = struct{}{}
		node, err := c.env.Resolver.Node(owner)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

// constrained axes wired from a constraint to its driven transform.
var constraintChannels = []string{
	"translateX", "translateY", "translateZ",
	"rotateX", "rotateY", "rotateZ",
}

// Constrain creates a constraint of the given type between a driver and a
// driven transform. A missing driver or driven node is recoverable: it is
// logged and a nil wrapper is returned instead of an error, matching how
// interactive callers treat half-built rigs.
func Constrain(env entity.Env, constraintType, driver, driven string) (*Constraint, error) {
	for _, name := range []string{driver, driven} {
		if !env.Backend.Exists(name) {
			env.Log.Warn("constraint skipped, node missing",
				log.String("type", constraintType),
				log.String("node", name))
			return nil, nil
		}
	}
	name, err := env.Backend.CreateNode(constraintType, driven+"_"+constraintType)
	if err != nil {
		return nil, err
	}
	if err := env.Backend.Connect(entity.JoinName(driver, "message"), entity.JoinName(name, "target")); err != nil {
		return nil, err
	}
	for _, channel := range constraintChannels {
		src := entity.JoinName(name, channel)
		dst := entity.JoinName(driven, channel)
		if !env.Backend.AttrExists(src) || !env.Backend.AttrExists(dst) {
			continue
		}
		if err := env.Backend.Connect(src, dst); err != nil {
			return nil, err
		}
	}
	c := Constraint{Transform{newNode(env, name)}}
	return &c, nil
}
