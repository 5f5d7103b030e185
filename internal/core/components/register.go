package components

import (
	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/registry"
)

// Register merges the component family into reg. Keys are digit-stripped
// component tags.
func Register(reg *registry.Registry) {
	reg.RegisterTypes(registry.CategoryComponent, map[string]registry.Ctor{
		registry.FallbackTag: func(env entity.Env, name string) entity.Entity { return newComponent(env, name) },
		"vtx":                func(env entity.Env, name string) entity.Entity { return Vertex{newComponent(env, name)} },
		"e":                  func(env entity.Env, name string) entity.Entity { return Edge{newComponent(env, name)} },
		"f":                  func(env entity.Env, name string) entity.Entity { return Face{newComponent(env, name)} },
		"cv":                 func(env entity.Env, name string) entity.Entity { return CV{newComponent(env, name)} },
		"u":                  func(env entity.Env, name string) entity.Entity { return Isoparm{newComponent(env, name)} },
		"v":                  func(env entity.Env, name string) entity.Entity { return Isoparm{newComponent(env, name)} },
		"sf":                 func(env entity.Env, name string) entity.Entity { return Patch{newComponent(env, name)} },
	})
}

func init() {
	registry.Populate(Register)
}
