// Package ambient provides scoped access to the host's global mutable state:
// selection, current namespace, current time, frame range, autokey, undo
// chunking and viewport refresh. Each guard captures the current value,
// applies the requested one, runs the body, and restores the captured value
// on every exit path, including panics.
package ambient

import "github.com/scenekit/scenekit/internal/core/scene"

// PreserveSelection restores the selection after body runs, whatever body
// does to it.
func PreserveSelection(b scene.Backend, body func() error) (err error) {
	previous := b.Selection()
	defer func() {
		if restoreErr := b.Select(previous); restoreErr != nil && err == nil {
			err = restoreErr
		}
	}()
	return body()
}

// WithSelection runs body with the given selection, then restores the
// previous one.
func WithSelection(b scene.Backend, names []string, body func() error) error {
	return PreserveSelection(b, func() error {
		if err := b.Select(names); err != nil {
			return err
		}
		return body()
	})
}

// WithNamespace runs body with ns as the current namespace, then restores
// the previous one.
func WithNamespace(b scene.Backend, ns string, body func() error) (err error) {
	previous := b.CurrentNamespace()
	if err := b.SetCurrentNamespace(ns); err != nil {
		return err
	}
	defer func() {
		if restoreErr := b.SetCurrentNamespace(previous); restoreErr != nil && err == nil {
			err = restoreErr
		}
	}()
	return body()
}

// AtTime runs body with the current time set to frame, then restores the
// previous time.
func AtTime(b scene.Backend, frame float64, body func() error) error {
	previous := b.CurrentTime()
	b.SetCurrentTime(frame)
	defer b.SetCurrentTime(previous)
	return body()
}

// WithFrameRange runs body with the given frame range, then restores the
// previous one.
func WithFrameRange(b scene.Backend, min, max float64, body func() error) error {
	prevMin, prevMax := b.FrameRange()
	b.SetFrameRange(min, max)
	defer b.SetFrameRange(prevMin, prevMax)
	return body()
}

// WithAutoKey runs body with autokey forced to on, then restores the
// previous flag.
func WithAutoKey(b scene.Backend, on bool, body func() error) error {
	previous := b.AutoKey()
	b.SetAutoKey(on)
	defer b.SetAutoKey(previous)
	return body()
}

// UndoChunk brackets body in a named undo chunk so the host undoes it as one
// step. The chunk is closed on every exit path.
func UndoChunk(b scene.Backend, name string, body func() error) error {
	b.OpenUndoChunk(name)
	defer b.CloseUndoChunk()
	return body()
}

// WithoutRefresh suspends viewport refresh around body.
func WithoutRefresh(b scene.Backend, body func() error) error {
	b.SuspendRefresh()
	defer b.ResumeRefresh()
	return body()
}
