//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/scenekit/scenekit/internal/core/observability/log"
	"github.com/scenekit/scenekit/internal/core/registry"
	"github.com/scenekit/scenekit/internal/core/resolve"
	"github.com/scenekit/scenekit/internal/core/scene"
)

func ProvideLogger() *log.Logger {
	wire.Build(log.Provide)
	return log.New(log.LevelDebug)
}

// ProvideResolver assembles a resolver over the in-process backend with the
// process-default registry.
func ProvideResolver() *resolve.Resolver {
	wire.Build(
		log.Provide,
		wire.Bind(new(log.Log), new(*log.Logger)),
		scene.NewMemory,
		wire.Bind(new(scene.Backend), new(*scene.Memory)),
		registry.Default,
		resolve.New,
	)
	return nil
}
