package attributes

import (
	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/registry"
	"github.com/scenekit/scenekit/internal/core/scene"
)

// Register merges the attribute family into reg, including the category
// fallback. Hosts may re-register any tag afterwards to substitute their own
// wrapper.
func Register(reg *registry.Registry) {
	reg.RegisterTypes(registry.CategoryAttribute, map[string]registry.Ctor{
		registry.FallbackTag: func(env entity.Env, name string) entity.Entity { return newAttr(env, name) },
		scene.TypeDouble:     func(env entity.Env, name string) entity.Entity { return Numeric{newAttr(env, name)} },
		scene.TypeLong:       func(env entity.Env, name string) entity.Entity { return Numeric{newAttr(env, name)} },
		scene.TypeBool:       func(env entity.Env, name string) entity.Entity { return Boolean{newAttr(env, name)} },
		scene.TypeEnum:       func(env entity.Env, name string) entity.Entity { return Enum{newAttr(env, name)} },
		scene.TypeString:     func(env entity.Env, name string) entity.Entity { return String{newAttr(env, name)} },
		scene.TypeMatrix:     func(env entity.Env, name string) entity.Entity { return Matrix{newAttr(env, name)} },
		scene.TypeMessage:    func(env entity.Env, name string) entity.Entity { return Message{newAttr(env, name)} },
		scene.TypeCompound:   func(env entity.Env, name string) entity.Entity { return Compound{newAttr(env, name)} },
		scene.TypeArray:      func(env entity.Env, name string) entity.Entity { return Array{newAttr(env, name)} },
	})
}

func init() {
	registry.Populate(Register)
}
