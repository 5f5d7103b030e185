package remote

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/quic-go/quic-go"
)

// Transport is a persistent framed byte pipe to the bridge.
type Transport interface {
	Send(data []byte) error
	Receive() ([]byte, error)
	Close() error
}

// Dial connects to the bridge, picking the transport from the URL scheme.
func Dial(ctx context.Context, cfg Config) (Transport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	u, _ := url.Parse(cfg.URL)
	switch u.Scheme {
	case "ws", "wss":
		return dialWebsocket(ctx, cfg)
	case "quic":
		return dialQuic(ctx, cfg, u.Host)
	default:
		return nil, fmt.Errorf("remote: unsupported scheme %q", u.Scheme)
	}
}

// --- websocket ---

type wsTransport struct {
	conn *websocket.Conn
	cfg  Config
}

func dialWebsocket(ctx context.Context, cfg Config) (Transport, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: cfg.DialTimeout,
		TLSClientConfig:  &tls.Config{InsecureSkipVerify: cfg.SkipVerify},
	}
	conn, _, err := dialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: dial %s: %w", cfg.URL, err)
	}
	return &wsTransport{conn: conn, cfg: cfg}, nil
}

func (t *wsTransport) Send(data []byte) error {
	if t.cfg.WriteTimeout > 0 {
		_ = t.conn.SetWriteDeadline(time.Now().Add(t.cfg.WriteTimeout))
	}
	return t.conn.WriteMessage(websocket.TextMessage, data)
}

func (t *wsTransport) Receive() ([]byte, error) {
	if t.cfg.ReadTimeout > 0 {
		_ = t.conn.SetReadDeadline(time.Now().Add(t.cfg.ReadTimeout))
	}
	for {
		messageType, data, err := t.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if messageType == websocket.TextMessage || messageType == websocket.BinaryMessage {
			return data, nil
		}
	}
}

func (t *wsTransport) Close() error {
	return t.conn.Close()
}

// --- quic ---

// bridgeALPN is the application protocol the bridge serves.
const bridgeALPN = "scenekit-bridge"

type quicTransport struct {
	session *quic.Conn
	stream  *quic.Stream
	reader  *bufio.Reader
	cfg     Config
}

func dialQuic(ctx context.Context, cfg Config, host string) (Transport, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.SkipVerify,
		NextProtos:         []string{bridgeALPN},
	}
	quicConfig := &quic.Config{
		MaxIdleTimeout: cfg.ReadTimeout + cfg.DialTimeout,
	}
	session, err := quic.DialAddr(ctx, host, tlsConfig, quicConfig)
	if err != nil {
		return nil, fmt.Errorf("remote: dial quic %s: %w", host, err)
	}
	stream, err := session.OpenStreamSync(ctx)
	if err != nil {
		_ = session.CloseWithError(0, "failed to open stream")
		return nil, fmt.Errorf("remote: open stream: %w", err)
	}
	return &quicTransport{
		session: session,
		stream:  stream,
		reader:  bufio.NewReader(stream),
		cfg:     cfg,
	}, nil
}

// Frames on the QUIC stream are newline-delimited.
func (t *quicTransport) Send(data []byte) error {
	if t.cfg.WriteTimeout > 0 {
		_ = t.stream.SetWriteDeadline(time.Now().Add(t.cfg.WriteTimeout))
	}
	_, err := t.stream.Write(append(data, '\n'))
	return err
}

func (t *quicTransport) Receive() ([]byte, error) {
	if t.cfg.ReadTimeout > 0 {
		_ = t.stream.SetReadDeadline(time.Now().Add(t.cfg.ReadTimeout))
	}
	line, err := t.reader.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	return line[:len(line)-1], nil
}

func (t *quicTransport) Close() error {
	_ = t.stream.Close()
	return t.session.CloseWithError(0, "closed")
}
