package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// client is one WebSocket session. Writes are serialised by mu; busy marks a queued snapshot write.
type client struct {
	id   uuid.UUID
	conn *websocket.Conn

	mu           sync.Mutex
	writeTimeout time.Duration
	busy         atomic.Bool
	closeOnce    sync.Once
}

func newClient(conn *websocket.Conn, writeTimeout time.Duration) *client {
	return &client{
		id:           uuid.New(),
		conn:         conn,
		writeTimeout: writeTimeout,
	}
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *client) send(msg ServerMessage) error {
	data, err := encode(msg)
	if err != nil {
		return err
	}
	return c.write(data)
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"),
			time.Now().Add(time.Second))
		_ = c.conn.Close()
	})
}

func encode(msg ServerMessage) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s message: %w", msg.Type, err)
	}
	return data, nil
}

func (s *server) addClient(c *client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[c.id] = c
}

func (s *server) removeClient(c *client) {
	s.clientsMu.Lock()
	delete(s.clients, c.id)
	s.clientsMu.Unlock()
	c.close()
}

func (s *server) snapshotClients() []*client {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	out := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	return out
}

func (s *server) closeAll() {
	for _, c := range s.snapshotClients() {
		c.close()
	}
}

func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}
	conn.SetReadLimit(maxMessageSize)

	c := newClient(conn, s.writeTimeout)
	defer s.removeClient(c)

	log := s.log.With().Str("session", c.id.String()).Logger()
	log.Info().Str("remote", r.RemoteAddr).Msg("client connected")

	hello := ServerMessage{Type: MessageHello, Session: c.id.String()}
	if err := s.withScene(r.Context(), func(sc scene.Scene) error {
		layout := sc.Layout()
		snap := sc.Snapshot()
		hello.Layout = &layout
		hello.Snapshot = &snap
		return nil
	}); err != nil {
		log.Warn().Err(err).Msg("hello without scene state")
	}
	if err := c.send(hello); err != nil {
		log.Debug().Err(err).Msg("hello write failed")
		return
	}
	s.addClient(c)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("client read failed")
			}
			log.Info().Msg("client disconnected")
			return
		}

		reply := s.handleMessage(r.Context(), data)
		if err := c.send(reply); err != nil {
			log.Debug().Err(err).Msg("reply write failed")
			return
		}
	}
}

// handleMessage decodes and executes one client command. Failures become error replies;
// the session stays open.
func (s *server) handleMessage(ctx context.Context, data []byte) ServerMessage {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.log.Debug().Err(err).Msg("malformed client message")
		return ServerMessage{Type: MessageError, Error: "malformed message: " + err.Error()}
	}

	fail := func(err error) ServerMessage {
		s.log.Debug().Err(err).Str("command", msg.Type).Msg("client command failed")
		return ServerMessage{Type: MessageError, Command: msg.Type, Error: err.Error()}
	}
	ack := ServerMessage{Type: MessageAck, Command: msg.Type}

	switch msg.Type {
	case CommandClick:
		res, err := s.click(ctx, msg.ClickRequest)
		if err != nil {
			return fail(err)
		}
		return ServerMessage{Type: MessageClick, Command: msg.Type, Result: &res}
	case CommandBack:
		if err := s.withScene(ctx, func(sc scene.Scene) error { sc.Back(); return nil }); err != nil {
			return fail(err)
		}
	case CommandFocus:
		if msg.ID == "" {
			return fail(errors.New("focus requires an id"))
		}
		if err := s.withScene(ctx, func(sc scene.Scene) error { return sc.Focus(msg.ID) }); err != nil {
			return fail(err)
		}
	case CommandOrbit:
		if err := s.withScene(ctx, func(sc scene.Scene) error {
			sc.Controller().Orbit(msg.DAzimuth, msg.DElevation)
			return nil
		}); err != nil {
			return fail(err)
		}
	case CommandZoom:
		if err := s.withScene(ctx, func(sc scene.Scene) error {
			sc.Controller().Zoom(msg.Delta)
			return nil
		}); err != nil {
			return fail(err)
		}
	case CommandPan:
		if err := s.withScene(ctx, func(sc scene.Scene) error {
			sc.Controller().Pan(msg.DX, msg.DY)
			return nil
		}); err != nil {
			return fail(err)
		}
	default:
		return fail(fmt.Errorf("unknown message type %q", msg.Type))
	}
	return ack
}
