// Package web serves the map page, the data endpoints and the rendered layers.
package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/closed-loop/citymap/internal/choropleth"
	"github.com/closed-loop/citymap/internal/datasource"
	"github.com/closed-loop/citymap/internal/layer"
)

//go:embed assets
var assets embed.FS

// MapView is the initial view and base layer of the map page.
type MapView struct {
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
	Zoom      int     `json:"zoom"`
	MaxZoom   int     `json:"max_zoom"`
	TileURL   string  `json:"tile_url"`
}

// Options configures the server.
type Options struct {
	Map            MapView
	AllowedOrigins []string
}

// Server holds the handlers' dependencies. Registry is nil when layers are
// loaded from an upstream server; the data endpoints are then not mounted.
type Server struct {
	registry *datasource.Registry
	ctrl     *layer.Controller
	opts     Options
	page     *template.Template
}

// New parses the page template and returns a server.
func New(registry *datasource.Registry, ctrl *layer.Controller, opts Options) (*Server, error) {
	page, err := template.ParseFS(assets, "assets/index.html.tmpl")
	if err != nil {
		return nil, eris.Wrap(err, "web: parse page template")
	}
	return &Server{registry: registry, ctrl: ctrl, opts: opts, page: page}, nil
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/health", handleHealth)

	static, _ := fs.Sub(assets, "assets/static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	if s.registry != nil {
		for _, k := range layer.Kinds {
			r.Get(k.Endpoint(), s.handleData(k.Endpoint()))
		}
		r.Get("/api/cache", s.handleCacheStats)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/layers", s.handleLayers)
		r.Get("/legend", handleLegend)
	})

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Map    MapView
		Legend []choropleth.LegendEntry
	}{
		Map:    s.opts.Map,
		Legend: choropleth.Legend(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		zap.L().Error("web: render page", zap.Error(err))
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleData(endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := s.registry.Payload(r.Context(), endpoint)
		if err != nil {
			if eris.Is(err, datasource.ErrUnknownEndpoint) || eris.Is(err, datasource.ErrNotConfigured) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "dataset not configured"})
				return
			}
			zap.L().Error("web: dataset payload failed",
				zap.String("endpoint", endpoint),
				zap.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "dataset unavailable"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=300")
		_, _ = w.Write(data)
	}
}

func (s *Server) handleLayers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.View())
}

func handleLegend(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, choropleth.Legend())
}

func (s *Server) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.CacheStats())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("web: encode response", zap.Error(err))
	}
}

// accessLog logs one line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
