package server

import (
	"net/http"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-folio/engine/loader"
)

const assetPrefix = "/files/"

// assetEntry is an asset with the URL it is served at.
type assetEntry struct {
	loader.Asset
	URL string `json:"url"`
}

func (s *server) handleAssetList(w http.ResponseWriter, _ *http.Request) {
	cached := s.assets.Assets()
	out := make([]assetEntry, 0, len(cached))
	for _, a := range cached {
		out = append(out, assetEntry{Asset: a, URL: assetPrefix + a.Path})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleAsset(w http.ResponseWriter, r *http.Request) {
	name, err := loader.Clean(strings.TrimPrefix(r.URL.Path, assetPrefix))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if _, ok := s.assets.Get(name); !ok {
		http.NotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, s.assets.FS(), name)
}
