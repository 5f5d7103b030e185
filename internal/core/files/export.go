package files

import (
	"golang.org/x/sync/errgroup"

	"github.com/scenekit/scenekit/internal/core/observability/log"
	"github.com/scenekit/scenekit/internal/core/registry"
	"github.com/scenekit/scenekit/internal/core/resolve"
)

// ExportAll snapshots the scene once under the single-threaded backend, then
// writes every target file concurrently; only the disk writes run in
// parallel, never the backend round-trips.
func ExportAll(res *resolve.Resolver, reg *registry.Registry, paths []string) error {
	data, err := Snapshot(res)
	if err != nil {
		return err
	}

	targets := make([]SceneFile, 0, len(paths))
	for _, path := range paths {
		file, err := ForPath(reg, path)
		if err != nil {
			return err
		}
		targets = append(targets, file)
	}

	logger := res.Env().Log
	group := errgroup.Group{}
	for _, target := range targets {
		group.Go(func() error {
			if err := target.Save(data); err != nil {
				return err
			}
			logger.Info("scene exported", log.String("path", target.Path()))
			return nil
		})
	}
	return group.Wait()
}
