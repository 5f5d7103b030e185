package nodes

import (
	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/registry"
)

// Register merges the node family into reg. Tags mirror the backend's type
// tree; resolution picks the nearest registered ancestor of a node's
// concrete type, so shapes without a dedicated wrapper still resolve to
// Shape rather than the plain generic.
func Register(reg *registry.Registry) {
	transform := func(env entity.Env, name string) entity.Entity { return Transform{newNode(env, name)} }
	shape := func(env entity.Env, name string) entity.Entity { return Shape{newNode(env, name)} }
	constraint := func(env entity.Env, name string) entity.Entity {
		return Constraint{Transform{newNode(env, name)}}
	}
	reg.RegisterTypes(registry.CategoryNode, map[string]registry.Ctor{
		registry.FallbackTag: func(env entity.Env, name string) entity.Entity { return newNode(env, name) },
		"node":               func(env entity.Env, name string) entity.Entity { return newNode(env, name) },
		"transform":          transform,
		"joint":              transform,
		"shape":              shape,
		"mesh":               shape,
		"nurbsCurve":         shape,
		"nurbsSurface":       shape,
		"constraint":         constraint,
		"pointConstraint":    constraint,
		"orientConstraint":   constraint,
		"parentConstraint":   constraint,
		"aimConstraint":      constraint,
		"skinCluster":        func(env entity.Env, name string) entity.Entity { return SkinCluster{newNode(env, name)} },
		"animCurve":          func(env entity.Env, name string) entity.Entity { return AnimCurve{newNode(env, name)} },
		"objectSet":          func(env entity.Env, name string) entity.Entity { return newNode(env, name) },
	})
}

func init() {
	registry.Populate(Register)
}
