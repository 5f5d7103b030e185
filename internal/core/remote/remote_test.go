package remote

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scenekit/scenekit/internal/core/observability/log"
	"github.com/scenekit/scenekit/internal/core/scene"
)

func TestConfig(t *testing.T) {
	t.Run("Config: validation checks url and scheme", func(t *testing.T) {
		require.Error(t, Config{}.Validate())
		require.Error(t, Config{URL: "http://bridge:9000"}.Validate())
		require.NoError(t, Config{URL: "ws://bridge:9000"}.Validate())
		require.NoError(t, Config{URL: "wss://bridge:9000"}.Validate())
		require.NoError(t, Config{URL: "quic://bridge:9000"}.Validate())
	})

	t.Run("Config: defaults fill unset timeouts only", func(t *testing.T) {
		cfg := Config{URL: "ws://bridge:9000"}.withDefaults()
		require.NotZero(t, cfg.DialTimeout)
		require.NotZero(t, cfg.ReadTimeout)
		require.NotZero(t, cfg.WriteTimeout)

		cfg = Config{URL: "ws://bridge:9000", ReadTimeout: 1}.withDefaults()
		require.EqualValues(t, 1, cfg.ReadTimeout)
	})
}

// scriptedTransport answers each request from a handler, like a bridge would.
type scriptedTransport struct {
	handle  func(req request) []response
	pending [][]byte
	closed  bool
}

func (s *scriptedTransport) Send(data []byte) error {
	var req request
	if err := json.Unmarshal(data, &req); err != nil {
		return err
	}
	for _, resp := range s.handle(req) {
		raw, err := json.Marshal(resp)
		if err != nil {
			return err
		}
		s.pending = append(s.pending, raw)
	}
	return nil
}

func (s *scriptedTransport) Receive() ([]byte, error) {
	if len(s.pending) == 0 {
		return nil, fmt.Errorf("no reply pending")
	}
	frame := s.pending[0]
	s.pending = s.pending[1:]
	return frame, nil
}

func (s *scriptedTransport) Close() error {
	s.closed = true
	return nil
}

func newBridge(t *testing.T, handle func(req request) []response) *Backend {
	t.Helper()
	return &Backend{
		transport: &scriptedTransport{handle: handle},
		log:       log.Nop(),
	}
}

func result(v any) json.RawMessage {
	raw, _ := json.Marshal(v)
	return raw
}

func TestBackendCalls(t *testing.T) {
	t.Run("Backend: replies correlate by request id", func(t *testing.T) {
		b := newBridge(t, func(req request) []response {
			require.Equal(t, "createNode", req.Method)
			require.Equal(t, []any{"transform", "grp"}, req.Args)
			return []response{
				{ID: "someone-else", Result: result("wrong")},
				{ID: req.ID, Result: result("grp")},
			}
		})

		name, err := b.CreateNode("transform", "grp")
		require.NoError(t, err)
		require.Equal(t, "grp", name)
	})

	t.Run("Backend: bridge errors surface with the method name", func(t *testing.T) {
		b := newBridge(t, func(req request) []response {
			return []response{{ID: req.ID, Error: "node not found: ghost"}}
		})

		_, err := b.TypeOf("ghost")
		require.Error(t, err)
		require.Contains(t, err.Error(), "typeOf")
		require.Contains(t, err.Error(), "node not found")
	})

	t.Run("Backend: typed replies decode", func(t *testing.T) {
		b := newBridge(t, func(req request) []response {
			switch req.Method {
			case "typeChain":
				return []response{{ID: req.ID, Result: result([]string{"mesh", "shape", "dagNode", "node"})}}
			case "isLocked":
				return []response{{ID: req.ID, Result: result(true)}}
			case "keys":
				return []response{{ID: req.ID, Result: result([]scene.Key{{Frame: 1, Value: 2}})}}
			case "frameRange":
				return []response{{ID: req.ID, Result: result([2]float64{10, 20})}}
			default:
				return []response{{ID: req.ID}}
			}
		})

		chain, err := b.TypeChain("body")
		require.NoError(t, err)
		require.Equal(t, []string{"mesh", "shape", "dagNode", "node"}, chain)

		locked, err := b.IsLocked("body")
		require.NoError(t, err)
		require.True(t, locked)

		keys, err := b.Keys("body.translateX")
		require.NoError(t, err)
		require.Equal(t, []scene.Key{{Frame: 1, Value: 2}}, keys)

		min, max := b.FrameRange()
		require.Equal(t, 10.0, min)
		require.Equal(t, 20.0, max)
	})

	t.Run("Backend: void queries swallow transport errors", func(t *testing.T) {
		b := newBridge(t, func(req request) []response { return nil })
		// no reply pending, queries degrade to zero values
		require.False(t, b.Exists("grp"))
		require.Empty(t, b.Selection())
		require.Zero(t, b.CurrentTime())
	})
}

func TestDecodeValue(t *testing.T) {
	t.Run("DecodeValue: whole numbers become ints", func(t *testing.T) {
		v, err := decodeValue(json.RawMessage(`2`))
		require.NoError(t, err)
		require.Equal(t, 2, v)

		v, err = decodeValue(json.RawMessage(`2.5`))
		require.NoError(t, err)
		require.Equal(t, 2.5, v)

		v, err = decodeValue(json.RawMessage(`"xyz"`))
		require.NoError(t, err)
		require.Equal(t, "xyz", v)

		v, err = decodeValue(nil)
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("DecodeValue: lists stay generic regardless of length", func(t *testing.T) {
		v, err := decodeValue(json.RawMessage(`[1, 2, 3]`))
		require.NoError(t, err)
		require.Equal(t, []any{1.0, 2.0, 3.0}, v)

		raw, err := json.Marshal(scene.Identity())
		require.NoError(t, err)
		v, err = decodeValue(raw)
		require.NoError(t, err)
		require.IsType(t, []any{}, v)
	})

	t.Run("DecodeValue: 16-number replies decode by declared type", func(t *testing.T) {
		b := newBridge(t, func(req request) []response {
			attr, _ := req.Args[0].(string)
			switch {
			case req.Method == "getAttr":
				return []response{{ID: req.ID, Result: result(scene.Identity())}}
			case req.Method == "attrSpecOf" && attr == "grp.matrix":
				return []response{{ID: req.ID, Result: result(scene.AttrSpec{Name: "matrix", Type: scene.TypeMatrix})}}
			case req.Method == "attrSpecOf":
				return []response{{ID: req.ID, Result: result(scene.AttrSpec{Name: "samples", Type: scene.TypeArray})}}
			default:
				return []response{{ID: req.ID}}
			}
		})

		v, err := b.GetAttr("grp.matrix")
		require.NoError(t, err)
		require.Equal(t, scene.Identity(), v)

		// an array attribute holding 16 numbers is not a matrix
		v, err = b.GetAttr("grp.samples")
		require.NoError(t, err)
		list, ok := v.([]any)
		require.True(t, ok)
		require.Len(t, list, 16)
		require.Equal(t, 1.0, list[0])
	})
}
