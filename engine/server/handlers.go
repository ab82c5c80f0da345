package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Carmen-Shannon/oxy-folio/engine"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/gorilla/mux"
)

var errBadClick = errors.New("click needs origin and direction, or x, y, width and height")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps command errors onto HTTP status codes.
func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, scene.ErrUnknownTarget), errors.Is(err, ErrNoScene):
		status = http.StatusNotFound
	case errors.Is(err, errBadClick):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrStopped):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var layout scene.Layout
	if err := s.withScene(r.Context(), func(sc scene.Scene) error {
		layout = sc.Layout()
		return nil
	}); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

func (s *server) handlePose(w http.ResponseWriter, _ *http.Request) {
	sc := s.eng.Scene(s.sceneKey)
	if sc == nil {
		s.writeError(w, ErrNoScene)
		return
	}
	writeJSON(w, http.StatusOK, sc.Snapshot())
}

func (s *server) handleClick(w http.ResponseWriter, r *http.Request) {
	var req ClickRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageSize)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "decode click: " + err.Error()})
		return
	}
	res, err := s.click(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleFocus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.withScene(r.Context(), func(sc scene.Scene) error { return sc.Focus(id) }); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleBack(w http.ResponseWriter, r *http.Request) {
	if err := s.withScene(r.Context(), func(sc scene.Scene) error { sc.Back(); return nil }); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// click resolves a ClickRequest on the engine loop.
func (s *server) click(ctx context.Context, req ClickRequest) (ClickResponse, error) {
	if !req.worldRay() && !req.pixel() {
		return ClickResponse{}, errBadClick
	}
	var res ClickResponse
	err := s.withScene(ctx, func(sc scene.Scene) error {
		var id string
		var hit bool
		if req.worldRay() {
			id, hit = sc.Click(*req.Origin, *req.Direction)
		} else {
			id, hit = sc.ClickPixel(*req.X, *req.Y, req.Width, req.Height)
		}
		if hit {
			res.Hit = &id
		}
		return nil
	})
	return res, err
}
