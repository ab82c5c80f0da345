package main

import (
	"context"
	"os"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/Carmen-Shannon/oxy-folio/engine"
	"github.com/Carmen-Shannon/oxy-folio/engine/loader"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/Carmen-Shannon/oxy-folio/engine/server"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
)

const sceneKey = 0

// stack is the engine, scene and network API wired from the loaded config.
type stack struct {
	eng   engine.Engine
	scene scene.Scene
	srv   server.Server
}

// build wires the stack. A nil window runs the engine headless.
func (a *app) build(win window.Window) (*stack, error) {
	sc, err := a.cfg.BuildScene(a.log)
	if err != nil {
		return nil, err
	}

	options := []engine.EngineBuilderOption{
		engine.WithLogger(a.log),
		engine.WithTickRate(a.cfg.Engine.TickRate),
		engine.WithProfiling(a.cfg.Engine.Profiling),
		engine.WithQueueSize(a.cfg.Engine.QueueSize),
		engine.WithScene(sceneKey, sc),
	}
	if win != nil {
		options = append(options, engine.WithWindow(win))
	}
	eng := engine.NewEngine(options...)

	serverOptions := []server.ServerBuilderOption{
		server.WithAddr(a.cfg.Server.Addr),
		server.WithBroadcastRate(a.cfg.Server.BroadcastRate),
		server.WithWorkers(a.cfg.Server.Workers),
		server.WithWriteTimeout(a.cfg.Server.WriteTimeout),
		server.WithRequestTimeout(a.cfg.Server.RequestTimeout),
		server.WithAllowedOrigins(a.cfg.Server.AllowedOrigins...),
		server.WithLogger(a.log),
	}
	if a.cfg.Assets.Serve {
		serverOptions = append(serverOptions, server.WithAssets(a.loadAssets()))
	}
	srv := server.NewServer(eng, sceneKey, serverOptions...)
	return &stack{eng: eng, scene: sc, srv: srv}, nil
}

// loadAssets reads every referenced image under the asset root. Missing images are logged, not fatal.
func (a *app) loadAssets() loader.Loader {
	assets := loader.NewLoader(loader.BackendTypeImage,
		loader.WithFS(os.DirFS(common.Coalesce(a.cfg.Assets.Root, "."))),
		loader.WithLogger(a.log),
	)
	loaded, err := assets.LoadAll(a.cfg.AssetPaths()...)
	if err != nil {
		a.log.Warn().Err(err).Msg("some assets could not be loaded")
	}
	a.log.Info().Int("assets", len(loaded)).Str("root", a.cfg.Assets.Root).Msg("assets loaded")
	return assets
}

// watchConfig hot-applies camera bounds and transition timing when the config file changes.
func (a *app) watchConfig(st *stack) {
	if a.loader.ConfigFileUsed() == "" {
		return
	}
	a.loader.Watch(func(cfg *config.Config, err error) {
		if err != nil {
			a.log.Warn().Err(err).Msg("config reload rejected")
			return
		}
		submitErr := st.eng.Submit(context.Background(), func() {
			if err := cfg.Camera.Apply(st.scene.Controller()); err != nil {
				a.log.Warn().Err(err).Msg("config reload not applied")
				return
			}
			a.log.Info().
				Float32("min_distance", cfg.Camera.MinDistance).
				Float32("max_distance", cfg.Camera.MaxDistance).
				Float32("transition_duration", cfg.Camera.TransitionDuration).
				Msg("config reloaded")
		})
		if submitErr != nil {
			a.log.Debug().Err(submitErr).Msg("config reload skipped")
		}
	})
}

// serveUntilDone runs the network API alongside the engine loop. The engine stops when ctx ends
// or the server fails; the server stops when the engine does.
func (a *app) serveUntilDone(ctx context.Context, st *stack) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- st.srv.ListenAndServe(ctx)
		st.eng.Quit()
	}()
	go func() {
		select {
		case <-ctx.Done():
		case <-st.eng.Done():
		}
		st.eng.Quit()
	}()

	st.eng.Run()
	cancel()
	return <-errCh
}
