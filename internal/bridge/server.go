// Package bridge is the host side of the remote protocol: it exposes a scene
// backend to wrapper processes over websocket. Production hosts embed this
// next to the real scene; tests and tooling run it over the in-memory one.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/scenekit/scenekit/internal/core/observability/log"
	"github.com/scenekit/scenekit/internal/core/scene"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// request mirrors the wrapper side's frame, with raw args so each method can
// decode its own parameter types.
type request struct {
	ID     string            `json:"id"`
	Method string            `json:"method"`
	Args   []json.RawMessage `json:"args,omitempty"`
}

type response struct {
	ID     string `json:"id"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Server dispatches request frames onto a scene backend. The backend is
// single-threaded, so dispatch is serialized across connections.
type Server struct {
	backend scene.Backend
	log     log.Log

	mu     sync.Mutex
	server *http.Server
}

// NewServer builds a bridge over the given backend.
func NewServer(backend scene.Backend, logger log.Log) *Server {
	if logger == nil {
		logger = log.Nop()
	}
	return &Server{backend: backend, log: logger}
}

// ServeHTTP upgrades the connection and serves request frames until the peer
// disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("upgrade failed", log.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()
	s.log.Info("wrapper connected", log.String("remote", r.RemoteAddr))

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			s.log.Debug("wrapper disconnected", log.Error(err))
			return
		}
		if messageType != websocket.TextMessage && messageType != websocket.BinaryMessage {
			continue
		}
		reply := s.handle(data)
		raw, err := json.Marshal(reply)
		if err != nil {
			s.log.Error("marshal reply", log.Error(err))
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			s.log.Error("write reply", log.Error(err))
			return
		}
	}
}

// ListenAndServe runs the bridge on addr until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	s.server = &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- s.server.ListenAndServe() }()
	s.log.Info("bridge listening", log.String("addr", addr))

	select {
	case <-ctx.Done():
		return s.server.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handle(data []byte) response {
	var req request
	if err := json.Unmarshal(data, &req); err != nil {
		return response{Error: fmt.Sprintf("bad frame: %v", err)}
	}
	s.mu.Lock()
	result, err := s.dispatch(req.Method, req.Args)
	s.mu.Unlock()
	if err != nil {
		s.log.Debug("command failed", log.String("method", req.Method), log.Error(err))
		return response{ID: req.ID, Error: err.Error()}
	}
	return response{ID: req.ID, Result: result}
}

// decodeArgs unmarshals each raw argument into the matching target.
func decodeArgs(args []json.RawMessage, targets ...any) error {
	if len(args) != len(targets) {
		return fmt.Errorf("expected %d args, got %d", len(targets), len(args))
	}
	for i, target := range targets {
		if err := json.Unmarshal(args[i], target); err != nil {
			return fmt.Errorf("arg %d: %w", i, err)
		}
	}
	return nil
}

func (s *Server) dispatch(method string, args []json.RawMessage) (any, error) {
	switch method {
	case "createNode":
		var nodeType, name string
		if err := decodeArgs(args, &nodeType, &name); err != nil {
			return nil, err
		}
		return s.backend.CreateNode(nodeType, name)
	case "delete":
		var name string
		if err := decodeArgs(args, &name); err != nil {
			return nil, err
		}
		return nil, s.backend.Delete(name)
	case "rename":
		var name, newName string
		if err := decodeArgs(args, &name, &newName); err != nil {
			return nil, err
		}
		return s.backend.Rename(name, newName)
	case "exists":
		var name string
		if err := decodeArgs(args, &name); err != nil {
			return nil, err
		}
		return s.backend.Exists(name), nil
	case "typeOf":
		var name string
		if err := decodeArgs(args, &name); err != nil {
			return nil, err
		}
		return s.backend.TypeOf(name)
	case "typeChain":
		var name string
		if err := decodeArgs(args, &name); err != nil {
			return nil, err
		}
		return s.backend.TypeChain(name)
	case "parent":
		var name string
		if err := decodeArgs(args, &name); err != nil {
			return nil, err
		}
		return s.backend.Parent(name)
	case "setParent":
		var name, parent string
		if err := decodeArgs(args, &name, &parent); err != nil {
			return nil, err
		}
		return nil, s.backend.SetParent(name, parent)
	case "children":
		var name string
		if err := decodeArgs(args, &name); err != nil {
			return nil, err
		}
		return s.backend.Children(name)
	case "setLocked":
		var name string
		var locked bool
		if err := decodeArgs(args, &name, &locked); err != nil {
			return nil, err
		}
		return nil, s.backend.SetLocked(name, locked)
	case "isLocked":
		var name string
		if err := decodeArgs(args, &name); err != nil {
			return nil, err
		}
		return s.backend.IsLocked(name)
	case "listNodes":
		var nodeType string
		if err := decodeArgs(args, &nodeType); err != nil {
			return nil, err
		}
		return s.backend.ListNodes(nodeType)

	case "addAttr":
		var node string
		var spec scene.AttrSpec
		if err := decodeArgs(args, &node, &spec); err != nil {
			return nil, err
		}
		return nil, s.backend.AddAttr(node, spec)
	case "attrExists":
		var attr string
		if err := decodeArgs(args, &attr); err != nil {
			return nil, err
		}
		return s.backend.AttrExists(attr), nil
	case "attrTypeOf":
		var attr string
		if err := decodeArgs(args, &attr); err != nil {
			return nil, err
		}
		return s.backend.AttrTypeOf(attr)
	case "attrSpecOf":
		var attr string
		if err := decodeArgs(args, &attr); err != nil {
			return nil, err
		}
		return s.backend.AttrSpecOf(attr)
	case "getAttr":
		var attr string
		if err := decodeArgs(args, &attr); err != nil {
			return nil, err
		}
		return s.backend.GetAttr(attr)
	case "setAttr":
		var attr string
		var value any
		if err := decodeArgs(args, &attr, &value); err != nil {
			return nil, err
		}
		return nil, s.backend.SetAttr(attr, value)
	case "listAttrs":
		var node string
		if err := decodeArgs(args, &node); err != nil {
			return nil, err
		}
		return s.backend.ListAttrs(node)
	case "enumItems":
		var attr string
		if err := decodeArgs(args, &attr); err != nil {
			return nil, err
		}
		return s.backend.EnumItems(attr)

	case "connectAttr":
		var src, dst string
		if err := decodeArgs(args, &src, &dst); err != nil {
			return nil, err
		}
		return nil, s.backend.Connect(src, dst)
	case "disconnectAttr":
		var src, dst string
		if err := decodeArgs(args, &src, &dst); err != nil {
			return nil, err
		}
		return nil, s.backend.Disconnect(src, dst)
	case "isConnected":
		var src, dst string
		if err := decodeArgs(args, &src, &dst); err != nil {
			return nil, err
		}
		return s.backend.IsConnected(src, dst)
	case "connections":
		var attr string
		var source bool
		if err := decodeArgs(args, &attr, &source); err != nil {
			return nil, err
		}
		return s.backend.Connections(attr, source)
	case "listConnections":
		if err := decodeArgs(args); err != nil {
			return nil, err
		}
		return s.backend.ListConnections()

	case "selection":
		if err := decodeArgs(args); err != nil {
			return nil, err
		}
		return s.backend.Selection(), nil
	case "select":
		var names []string
		if err := decodeArgs(args, &names); err != nil {
			return nil, err
		}
		return nil, s.backend.Select(names)

	case "currentNamespace":
		if err := decodeArgs(args); err != nil {
			return nil, err
		}
		return s.backend.CurrentNamespace(), nil
	case "setCurrentNamespace":
		var ns string
		if err := decodeArgs(args, &ns); err != nil {
			return nil, err
		}
		return nil, s.backend.SetCurrentNamespace(ns)
	case "addNamespace":
		var ns string
		if err := decodeArgs(args, &ns); err != nil {
			return nil, err
		}
		return nil, s.backend.AddNamespace(ns)
	case "removeNamespace":
		var ns string
		var moveToRoot bool
		if err := decodeArgs(args, &ns, &moveToRoot); err != nil {
			return nil, err
		}
		return nil, s.backend.RemoveNamespace(ns, moveToRoot)
	case "namespaces":
		if err := decodeArgs(args); err != nil {
			return nil, err
		}
		return s.backend.Namespaces(), nil
	case "namespaceContents":
		var ns string
		if err := decodeArgs(args, &ns); err != nil {
			return nil, err
		}
		return s.backend.NamespaceContents(ns)

	case "currentTime":
		if err := decodeArgs(args); err != nil {
			return nil, err
		}
		return s.backend.CurrentTime(), nil
	case "setCurrentTime":
		var frame float64
		if err := decodeArgs(args, &frame); err != nil {
			return nil, err
		}
		s.backend.SetCurrentTime(frame)
		return nil, nil
	case "frameRange":
		if err := decodeArgs(args); err != nil {
			return nil, err
		}
		min, max := s.backend.FrameRange()
		return [2]float64{min, max}, nil
	case "setFrameRange":
		var min, max float64
		if err := decodeArgs(args, &min, &max); err != nil {
			return nil, err
		}
		s.backend.SetFrameRange(min, max)
		return nil, nil

	case "autoKey":
		if err := decodeArgs(args); err != nil {
			return nil, err
		}
		return s.backend.AutoKey(), nil
	case "setAutoKey":
		var on bool
		if err := decodeArgs(args, &on); err != nil {
			return nil, err
		}
		s.backend.SetAutoKey(on)
		return nil, nil
	case "setKey":
		var attr string
		var key scene.Key
		if err := decodeArgs(args, &attr, &key); err != nil {
			return nil, err
		}
		return nil, s.backend.SetKey(attr, key)
	case "keys":
		var attr string
		if err := decodeArgs(args, &attr); err != nil {
			return nil, err
		}
		return s.backend.Keys(attr)
	case "keyAt":
		var attr string
		var frame float64
		if err := decodeArgs(args, &attr, &frame); err != nil {
			return nil, err
		}
		return s.backend.KeyAt(attr, frame)
	case "removeKey":
		var attr string
		var frame float64
		if err := decodeArgs(args, &attr, &frame); err != nil {
			return nil, err
		}
		return nil, s.backend.RemoveKey(attr, frame)
	case "evaluateAt":
		var attr string
		var frame float64
		if err := decodeArgs(args, &attr, &frame); err != nil {
			return nil, err
		}
		return s.backend.EvaluateAt(attr, frame)

	case "influences":
		var skin string
		if err := decodeArgs(args, &skin); err != nil {
			return nil, err
		}
		return s.backend.Influences(skin)
	case "addInfluence":
		var skin, influence string
		if err := decodeArgs(args, &skin, &influence); err != nil {
			return nil, err
		}
		return nil, s.backend.AddInfluence(skin, influence)
	case "weights":
		var skin string
		var vertex int
		if err := decodeArgs(args, &skin, &vertex); err != nil {
			return nil, err
		}
		return s.backend.Weights(skin, vertex)
	case "setWeights":
		var skin string
		var vertex int
		var weights map[string]float64
		if err := decodeArgs(args, &skin, &vertex, &weights); err != nil {
			return nil, err
		}
		return nil, s.backend.SetWeights(skin, vertex, weights)
	case "weightedVertices":
		var skin string
		if err := decodeArgs(args, &skin); err != nil {
			return nil, err
		}
		return s.backend.WeightedVertices(skin)

	case "openUndoChunk":
		var name string
		if err := decodeArgs(args, &name); err != nil {
			return nil, err
		}
		s.backend.OpenUndoChunk(name)
		return nil, nil
	case "closeUndoChunk":
		if err := decodeArgs(args); err != nil {
			return nil, err
		}
		s.backend.CloseUndoChunk()
		return nil, nil

	case "suspendRefresh":
		if err := decodeArgs(args); err != nil {
			return nil, err
		}
		s.backend.SuspendRefresh()
		return nil, nil
	case "resumeRefresh":
		if err := decodeArgs(args); err != nil {
			return nil, err
		}
		s.backend.ResumeRefresh()
		return nil, nil
	case "refreshSuspended":
		if err := decodeArgs(args); err != nil {
			return nil, err
		}
		return s.backend.RefreshSuspended(), nil

	default:
		return nil, fmt.Errorf("unknown method %q", method)
	}
}
