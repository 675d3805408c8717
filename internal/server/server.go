package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/casegallery/internal/cases"
	"github.com/ziadkadry99/casegallery/internal/config"
	"github.com/ziadkadry99/casegallery/internal/render"
	"github.com/ziadkadry99/casegallery/internal/site"
)

// ReloadPath is the websocket endpoint pages listen on in watch mode.
const ReloadPath = "/ws/reload"

// Server serves the gallery pages straight from the case document.
type Server struct {
	cfg      *config.Config
	log      *zap.Logger
	renderer *render.Renderer
	layout   *site.Layout
	hub      *Hub
	router   chi.Router

	mu      sync.RWMutex
	gallery *site.Gallery

	httpServer *http.Server
}

// New loads the case document and builds the router. A document that fails
// to load is not an error: the pages show it until a reload succeeds.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	videos, err := site.ResolveVideos(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving videos: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		log:      log.Named("server"),
		renderer: site.NewRenderer(cfg, log, nil),
		layout: &site.Layout{
			Title:   cfg.Title,
			BuildID: uuid.NewString(),
			Videos:  videos,
			Links:   site.ServerLinks,
		},
	}
	if cfg.Server.Watch {
		s.hub = NewHub(s.log)
		s.layout.LiveReload = ReloadPath
	}
	s.gallery = site.LoadGallery(ctx, cfg.Data, s.renderer, s.log)
	s.router = s.buildRouter()
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.Server.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/", s.handleIndex)
		r.Get("/index.html", s.handleIndex)
		r.Get("/cases/{id}", s.handleCase)
		r.Get("/cases/{id}/fragment", s.handleFragment)
		r.Get("/api/cases", s.handleAPICases)
		r.Get("/videos", s.handleVideos)
		r.Get("/videos/{n}", s.handleVideo)

		for name, asset := range site.Assets {
			r.Get("/"+name, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", asset.ContentType)
				io.WriteString(w, asset.Content)
			})
		}

		if s.cfg.StaticDir != "" {
			fs := http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir)))
			r.Handle("/static/*", fs)
		}
	})

	// Long-lived; kept out of the request timeout.
	if s.hub != nil {
		r.Get(ReloadPath, s.hub.ServeHTTP)
	}

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Gallery returns the currently served gallery.
func (s *Server) Gallery() *site.Gallery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gallery
}

// Reload re-reads the case document, swaps it in and tells connected pages
// to reload.
func (s *Server) Reload(ctx context.Context) {
	g := site.LoadGallery(ctx, s.cfg.Data, s.renderer, s.log)

	s.mu.Lock()
	s.gallery = g
	s.mu.Unlock()

	s.log.Info("Cases reloaded", zap.String("source", s.cfg.Data), zap.Bool("ok", g.Err() == nil))
	if s.hub != nil {
		s.hub.Broadcast(ReloadMessage)
	}
}

// Start listens on the configured port until ctx is cancelled. In watch
// mode a local case document is watched for changes.
func (s *Server) Start(ctx context.Context) error {
	if s.hub != nil {
		defer s.hub.Close()
	}
	if s.hub != nil && !cases.IsRemote(s.cfg.Data) {
		w, err := NewWatcher(s.cfg.Data, s.log)
		if err != nil {
			return fmt.Errorf("watching %s: %w", s.cfg.Data, err)
		}
		defer w.Close()
		go w.Run(ctx, func() { s.Reload(ctx) })
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return site.ListenAndServe(ctx, s.httpServer, fmt.Sprintf("http://localhost:%d", s.cfg.Server.Port), s.log)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.hub != nil {
		s.hub.Close()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, http.StatusOK, func(buf io.Writer) error {
		return s.layout.Index(buf, s.Gallery())
	})
}

func (s *Server) handleCase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	g := s.Gallery()
	status := http.StatusOK
	if _, ok := g.Case(id); !ok {
		status = http.StatusNotFound
	}
	s.writePage(w, status, func(buf io.Writer) error {
		return s.layout.CasePage(buf, g, id)
	})
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	g := s.Gallery()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, ok := g.Case(id); !ok {
		w.WriteHeader(http.StatusNotFound)
	}
	io.WriteString(w, string(g.Select(id)))
}

// caseSummary is one entry of the /api/cases response.
type caseSummary struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Sections    int    `json:"sections"`
	Page        string `json:"page"`
}

func (s *Server) handleAPICases(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	g := s.Gallery()
	if err := g.Err(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to load cases data: " + err.Error()})
		return
	}

	all := g.Cases()
	out := make([]caseSummary, len(all))
	for i, c := range all {
		out[i] = caseSummary{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Sections:    len(c.Sections),
			Page:        "/" + site.ServerLinks.Case(c),
		}
	}
	json.NewEncoder(w).Encode(map[string]any{"cases": out})
}

func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	if len(s.layout.Videos) == 0 {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/"+site.ServerLinks.Video(1), http.StatusFound)
}

func (s *Server) handleVideo(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 1 || n > len(s.layout.Videos) {
		http.NotFound(w, r)
		return
	}
	s.writePage(w, http.StatusOK, func(buf io.Writer) error {
		return s.layout.VideoPage(buf, n)
	})
}

// writePage renders into memory first so a template failure becomes a 500
// instead of a truncated page.
func (s *Server) writePage(w http.ResponseWriter, status int, fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.log.Error("Error rendering page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// requestLogger logs each request through zap.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Debug("Request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("took", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
