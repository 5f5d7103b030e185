package ambient_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scenekit/scenekit/internal/core/ambient"
	"github.com/scenekit/scenekit/internal/core/scene"
)

func newScene(t *testing.T) (*scene.Memory, string, string) {
	t.Helper()
	m := scene.NewMemory(nil)
	a, err := m.CreateNode("transform", "a")
	require.NoError(t, err)
	b, err := m.CreateNode("transform", "b")
	require.NoError(t, err)
	return m, a, b
}

func TestSelectionScopes(t *testing.T) {
	t.Run("PreserveSelection: restored after success", func(t *testing.T) {
		m, a, b := newScene(t)
		require.NoError(t, m.Select([]string{a}))

		err := ambient.PreserveSelection(m, func() error {
			return m.Select([]string{b})
		})
		require.NoError(t, err)
		require.Equal(t, []string{a}, m.Selection())
	})

	t.Run("PreserveSelection: restored after failure", func(t *testing.T) {
		m, a, b := newScene(t)
		require.NoError(t, m.Select([]string{a}))
		boom := errors.New("boom")

		err := ambient.PreserveSelection(m, func() error {
			require.NoError(t, m.Select([]string{b}))
			return boom
		})
		require.ErrorIs(t, err, boom)
		require.Equal(t, []string{a}, m.Selection())
	})

	t.Run("PreserveSelection: restored after panic", func(t *testing.T) {
		m, a, b := newScene(t)
		require.NoError(t, m.Select([]string{a}))

		require.Panics(t, func() {
			_ = ambient.PreserveSelection(m, func() error {
				require.NoError(t, m.Select([]string{b}))
				panic("boom")
			})
		})
		require.Equal(t, []string{a}, m.Selection())
	})

	t.Run("WithSelection: applies then restores", func(t *testing.T) {
		m, a, b := newScene(t)
		require.NoError(t, m.Select([]string{a}))

		err := ambient.WithSelection(m, []string{b}, func() error {
			require.Equal(t, []string{b}, m.Selection())
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, []string{a}, m.Selection())

		err = ambient.WithSelection(m, []string{"ghost"}, func() error {
			t.Fatal("body must not run when the selection fails")
			return nil
		})
		require.ErrorIs(t, err, scene.ErrNodeNotFound)
	})
}

func TestNamespaceScope(t *testing.T) {
	t.Run("WithNamespace: applies then restores", func(t *testing.T) {
		m, _, _ := newScene(t)
		require.NoError(t, m.AddNamespace("rig"))

		err := ambient.WithNamespace(m, "rig", func() error {
			require.Equal(t, "rig", m.CurrentNamespace())
			_, err := m.CreateNode("transform", "inside")
			return err
		})
		require.NoError(t, err)
		require.Equal(t, ":", m.CurrentNamespace())
		require.True(t, m.Exists("rig:inside"))

		require.ErrorIs(t, ambient.WithNamespace(m, "ghost", func() error {
			t.Fatal("body must not run for a missing namespace")
			return nil
		}), scene.ErrNamespaceNotFound)
	})
}

func TestTimeScopes(t *testing.T) {
	t.Run("AtTime: applies then restores", func(t *testing.T) {
		m, _, _ := newScene(t)
		m.SetCurrentTime(1)

		err := ambient.AtTime(m, 42, func() error {
			require.Equal(t, 42.0, m.CurrentTime())
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 1.0, m.CurrentTime())
	})

	t.Run("WithFrameRange: applies then restores", func(t *testing.T) {
		m, _, _ := newScene(t)
		m.SetFrameRange(1, 120)

		err := ambient.WithFrameRange(m, 10, 20, func() error {
			min, max := m.FrameRange()
			require.Equal(t, 10.0, min)
			require.Equal(t, 20.0, max)
			return errors.New("boom")
		})
		require.Error(t, err)
		min, max := m.FrameRange()
		require.Equal(t, 1.0, min)
		require.Equal(t, 120.0, max)
	})

	t.Run("WithAutoKey: keys inside the scope only", func(t *testing.T) {
		m, a, _ := newScene(t)
		require.False(t, m.AutoKey())

		err := ambient.WithAutoKey(m, true, func() error {
			return m.SetAttr(a+".translateX", 3.0)
		})
		require.NoError(t, err)
		require.False(t, m.AutoKey())

		keys, err := m.Keys(a + ".translateX")
		require.NoError(t, err)
		require.Len(t, keys, 1)
	})
}

func TestUndoAndRefreshScopes(t *testing.T) {
	t.Run("UndoChunk: closed on every exit path", func(t *testing.T) {
		m, a, _ := newScene(t)
		err := ambient.UndoChunk(m, "move stuff", func() error {
			return m.SetAttr(a+".translateX", 1.0)
		})
		require.NoError(t, err)

		require.Panics(t, func() {
			_ = ambient.UndoChunk(m, "explode", func() error { panic("boom") })
		})
	})

	t.Run("WithoutRefresh: suspends only inside the scope", func(t *testing.T) {
		m, _, _ := newScene(t)
		require.False(t, m.RefreshSuspended())

		err := ambient.WithoutRefresh(m, func() error {
			require.True(t, m.RefreshSuspended())
			return ambient.WithoutRefresh(m, func() error {
				require.True(t, m.RefreshSuspended())
				return nil
			})
		})
		require.NoError(t, err)
		require.False(t, m.RefreshSuspended())
	})
}
