package main

import (
	"context"
	"errors"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
	"github.com/spf13/cobra"
)

const (
	inputTimeout = 50 * time.Millisecond
	keyOrbitStep = 0.05 // radians per key press
	keyZoomStep  = 1
)

func newViewCmd(a *app) *cobra.Command {
	var noServe bool
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open a window that drives the scene with mouse and keyboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			win := window.NewWindow(
				window.WithTitle(a.cfg.Window.Title),
				window.WithWidth(a.cfg.Window.Width),
				window.WithHeight(a.cfg.Window.Height),
			)
			st, err := a.build(win)
			if err != nil {
				return err
			}
			a.bindInput(st, win)
			a.watchConfig(st)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if noServe {
				go func() {
					<-ctx.Done()
					st.eng.Quit()
				}()
				st.eng.Run()
				return nil
			}
			return a.serveUntilDone(ctx, st)
		},
	}
	cmd.Flags().BoolVar(&noServe, "no-serve", false, "do not start the HTTP and WebSocket API")
	return cmd
}

// bindInput routes window input onto the engine loop.
//
// Left click focuses the clicked target, left drag orbits, right drag pans and the wheel zooms.
// Keys follow common.ViewerBindings.
func (a *app) bindInput(st *stack, win window.Window) {
	log := a.log.With().Str("component", "input").Logger()

	submit := func(fn func(sc scene.Scene)) {
		ctx, cancel := context.WithTimeout(context.Background(), inputTimeout)
		defer cancel()
		err := st.eng.Submit(ctx, func() { fn(st.scene) })
		if err != nil && !errors.Is(err, engine.ErrStopped) {
			log.Warn().Err(err).Msg("input dropped")
		}
	}

	win.SetClickCallback(func(x, y float32) {
		width, height := win.Width(), win.Height()
		submit(func(sc scene.Scene) {
			if id, ok := sc.ClickPixel(x, y, width, height); ok {
				log.Debug().Str("target", id).Msg("clicked")
			}
		})
	})

	win.SetDragCallback(func(button window.MouseButton, dx, dy float32) {
		switch button {
		case window.MouseLeft:
			perPixel := float32(2*math.Pi) / float32(max(win.Height(), 1))
			submit(func(sc scene.Scene) { sc.Controller().Orbit(-dx*perPixel, dy*perPixel) })
		case window.MouseRight:
			submit(func(sc scene.Scene) { sc.Controller().Pan(-dx, dy) })
		}
	})

	win.SetScrollCallback(func(delta float32) {
		submit(func(sc scene.Scene) { sc.Controller().Zoom(delta) })
	})

	win.SetKeyDownCallback(func(keyCode uint32) {
		b := common.BindingForKey(keyCode)
		switch b.Action {
		case common.ActionQuit:
			st.eng.Quit()
		case common.ActionBack:
			submit(func(sc scene.Scene) { sc.Back() })
		case common.ActionFocus:
			submit(func(sc scene.Scene) {
				targets := sc.Controller().Targets()
				if b.Arg >= len(targets) {
					return
				}
				if err := sc.Focus(targets[b.Arg].ID()); err != nil {
					log.Warn().Err(err).Msg("focus failed")
				}
			})
		case common.ActionOrbit:
			step := float32(b.Arg) * keyOrbitStep
			if b.Axis == common.AxisAzimuth {
				submit(func(sc scene.Scene) { sc.Controller().Orbit(step, 0) })
			} else {
				submit(func(sc scene.Scene) { sc.Controller().Orbit(0, step) })
			}
		case common.ActionZoom:
			submit(func(sc scene.Scene) { sc.Controller().Zoom(float32(b.Arg * keyZoomStep)) })
		}
	})
}
