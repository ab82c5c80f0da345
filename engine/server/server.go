// Package server exposes a running engine scene over HTTP and WebSocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-folio/engine"
	"github.com/Carmen-Shannon/oxy-folio/engine/loader"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// ErrNoScene is returned when the engine has no scene at the server's scene key.
var ErrNoScene = errors.New("server: scene not found")

const (
	defaultAddr           = ":8080"
	defaultBroadcastRate  = 30.0
	defaultWorkers        = 4
	defaultWriteTimeout   = 5 * time.Second
	defaultRequestTimeout = 2 * time.Second
	maxMessageSize        = 4096
)

type server struct {
	eng      engine.Engine
	sceneKey int

	addr           string
	broadcastRate  float64
	workers        int
	writeTimeout   time.Duration
	requestTimeout time.Duration
	allowedOrigins []string

	assets loader.Loader

	router   *mux.Router
	upgrader websocket.Upgrader

	clientsMu *sync.RWMutex
	clients   map[uuid.UUID]*client

	pool   worker.DynamicWorkerPool
	taskID atomic.Int64

	lastFrame atomic.Uint64

	log zerolog.Logger
}

// Server serves the scene API: REST endpoints for single commands and a WebSocket that streams
// snapshots and accepts the same commands. Every command runs on the engine loop.
type Server interface {
	// Handler returns the HTTP handler with every route mounted.
	//
	// Returns:
	//   - http.Handler: the router
	Handler() http.Handler

	// Run broadcasts snapshots to WebSocket clients at the configured rate until ctx ends,
	// then closes every client.
	//
	// Parameters:
	//   - ctx: stops the broadcast loop
	Run(ctx context.Context)

	// ListenAndServe serves HTTP on the configured address and runs the broadcast loop until ctx ends.
	//
	// Parameters:
	//   - ctx: shuts the server down gracefully when done
	//
	// Returns:
	//   - error: a listen error, or nil after a clean shutdown
	ListenAndServe(ctx context.Context) error

	// Broadcast sends the latest snapshot to every connected client once.
	//
	// Returns:
	//   - int: the number of clients a write was queued for
	Broadcast() int

	// Clients returns the number of connected WebSocket clients.
	Clients() int
}

var _ Server = &server{}

// NewServer creates a Server for the scene registered on eng at sceneKey.
// Panics if eng is nil.
//
// Parameters:
//   - eng: the running engine
//   - sceneKey: the engine scene key to serve
//   - options: functional options to configure the server
//
// Returns:
//   - Server: the newly created server
func NewServer(eng engine.Engine, sceneKey int, options ...ServerBuilderOption) Server {
	if eng == nil {
		panic("server: NewServer requires a non-nil Engine")
	}
	s := &server{
		eng:            eng,
		sceneKey:       sceneKey,
		addr:           defaultAddr,
		broadcastRate:  defaultBroadcastRate,
		workers:        defaultWorkers,
		writeTimeout:   defaultWriteTimeout,
		requestTimeout: defaultRequestTimeout,
		clientsMu:      &sync.RWMutex{},
		clients:        make(map[uuid.UUID]*client),
		log:            zerolog.Nop(),
	}
	for _, option := range options {
		option(s)
	}
	if s.broadcastRate <= 0 {
		s.broadcastRate = defaultBroadcastRate
	}
	if s.workers <= 0 {
		s.workers = defaultWorkers
	}

	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	s.pool = worker.NewDynamicWorkerPool(s.workers, s.workers*64, time.Second)
	s.router = s.routes()
	return s
}

func (s *server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/scene", s.handleLayout).Methods(http.MethodGet)
	api.HandleFunc("/pose", s.handlePose).Methods(http.MethodGet)
	api.HandleFunc("/click", s.handleClick).Methods(http.MethodPost)
	api.HandleFunc("/focus/{id}", s.handleFocus).Methods(http.MethodPost)
	api.HandleFunc("/back", s.handleBack).Methods(http.MethodPost)

	if s.assets != nil {
		api.HandleFunc("/assets", s.handleAssetList).Methods(http.MethodGet)
		r.PathPrefix(assetPrefix).HandlerFunc(s.handleAsset).Methods(http.MethodGet, http.MethodHead)
	}
	return r
}

func (s *server) Handler() http.Handler {
	return s.router
}

func (s *server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.Run(runCtx)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.addr, err)
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.log.Info().Msg("server stopped")
		return nil
	}
}

func (s *server) Run(ctx context.Context) {
	interval := time.Duration(float64(time.Second) / s.broadcastRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			s.pool.Stop()
			return
		case <-ticker.C:
			s.Broadcast()
		}
	}
}

func (s *server) Broadcast() int {
	sc := s.eng.Scene(s.sceneKey)
	if sc == nil {
		return 0
	}
	snap := sc.Snapshot()
	if last := s.lastFrame.Swap(snap.Frame); last == snap.Frame && snap.Frame != 0 {
		return 0
	}
	data, err := encode(ServerMessage{Type: MessageSnapshot, Snapshot: &snap})
	if err != nil {
		s.log.Error().Err(err).Msg("encode snapshot")
		return 0
	}

	queued := 0
	for _, c := range s.snapshotClients() {
		// a client whose previous snapshot is still being written skips this one
		if !c.busy.CompareAndSwap(false, true) {
			continue
		}
		s.pool.SubmitTask(worker.Task{
			ID: int(s.taskID.Add(1)),
			Do: func() (any, error) {
				defer c.busy.Store(false)
				if err := c.write(data); err != nil {
					s.log.Debug().Err(err).Str("session", c.id.String()).Msg("snapshot write failed")
					c.close()
					return nil, err
				}
				return nil, nil
			},
		})
		queued++
	}
	return queued
}

func (s *server) Clients() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// withScene runs fn against the served scene on the engine loop and waits for it.
func (s *server) withScene(ctx context.Context, fn func(sc scene.Scene) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	var result error
	err := s.eng.Call(ctx, func() {
		sc := s.eng.Scene(s.sceneKey)
		if sc == nil {
			result = ErrNoScene
			return
		}
		result = fn(sc)
	})
	if err != nil {
		return err
	}
	return result
}

func (s *server) checkOrigin(r *http.Request) bool {
	if len(s.allowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.allowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}
