package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/moodcanvas/moodcanvas/pkg/buildinfo"
	"github.com/moodcanvas/moodcanvas/pkg/cache"
	"github.com/moodcanvas/moodcanvas/pkg/errors"
	"github.com/moodcanvas/moodcanvas/pkg/gallery"
	"github.com/moodcanvas/moodcanvas/pkg/pipeline"
)

// maxRequestBody bounds render request bodies.
const maxRequestBody = 64 * 1024

// renderResponse is the JSON body returned when the client asks for
// metadata instead of image bytes.
type renderResponse struct {
	ID          string             `json:"id,omitempty"`
	Canonical   string             `json:"canonical"`
	Seed        int64              `json:"seed"`
	Palette     []string           `json:"palette"`
	Dominant    string             `json:"dominant,omitempty"`
	PaletteHash string             `json:"palette_hash"`
	PNGBytes    int                `json:"png_bytes"`
	CacheInfo   pipeline.CacheInfo `json:"cache_info"`
}

// paletteResponse is the JSON body of the palette endpoint.
type paletteResponse struct {
	Prompt    string   `json:"prompt"`
	Canonical string   `json:"canonical"`
	Seed      int64    `json:"seed"`
	Palette   []string `json:"palette"`
	Dominant  string   `json:"dominant,omitempty"`
	Scores    any      `json:"scores"`
	Weights   any      `json:"weights"`
}

// handleRender runs the full pipeline for the posted options. The
// response is the PNG by default; ?format=json returns metadata only.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&opts); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}

	result, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	id := s.record(r, opts, result)

	w.Header().Set("X-Render-ID", id)
	w.Header().Set("X-Cache-Palette", strconv.FormatBool(result.CacheInfo.PaletteHit))
	w.Header().Set("X-Cache-Trace", strconv.FormatBool(result.CacheInfo.TraceHit))
	w.Header().Set("X-Cache-Render", strconv.FormatBool(result.CacheInfo.RenderHit))

	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, renderResponse{
			ID:          id,
			Canonical:   result.Derivation.Canonical,
			Seed:        result.Derivation.Seed,
			Palette:     result.Derivation.Palette.HexStrings(),
			Dominant:    string(result.Derivation.Dominant),
			PaletteHash: result.PaletteHash,
			PNGBytes:    len(result.PNG),
			CacheInfo:   result.CacheInfo,
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.PNG)
}

// record saves a gallery record for the render. Store failures are
// logged, not surfaced: the render itself succeeded.
func (s *Server) record(r *http.Request, opts pipeline.Options, result *pipeline.Result) string {
	if s.Store == nil {
		return ""
	}

	rec := gallery.NewRecord(opts.Prompt, opts.Mode)
	rec.Palette = result.Derivation.Palette.HexStrings()
	rec.Dominant = string(result.Derivation.Dominant)
	rec.PNGBytes = len(result.PNG)
	if data, err := json.Marshal(opts); err == nil {
		rec.OptionsHash = cache.Hash(data)
	}

	if err := s.Store.Put(r.Context(), rec); err != nil {
		s.Logger.Warn("gallery record failed", "id", rec.ID, "err", err)
		return ""
	}
	return rec.ID
}

// handlePalette derives a palette without rendering.
func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Prompt: q.Get("prompt"),
		Scheme: q.Get("scheme"),
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidConfig, "invalid size: %q", v))
			return
		}
		opts.PaletteSize = n
	}

	d, err := s.Runner.Derive(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, paletteResponse{
		Prompt:    opts.Prompt,
		Canonical: d.Canonical,
		Seed:      d.Seed,
		Palette:   d.Palette.HexStrings(),
		Dominant:  string(d.Dominant),
		Scores:    d.Scores,
		Weights:   d.Weights,
	})
}

// handleGalleryList lists recent renders.
func (s *Server) handleGalleryList(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "gallery is not configured"))
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidConfig, "invalid limit: %q", v))
			return
		}
		limit = n
	}

	records, err := s.Store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

// handleGalleryGet fetches one gallery record.
func (s *Server) handleGalleryGet(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "gallery is not configured"))
		return
	}

	rec, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleHealth is the liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}
