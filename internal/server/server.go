// Package server exposes the clock face over HTTP.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iburimskiy/gallifreyan-clock/internal/gallifrey"
	"github.com/iburimskiy/gallifreyan-clock/internal/sink"
)

// Server renders a fresh frame per request.
type Server struct {
	logger *log.Logger
	now    func() time.Time

	mu       sync.Mutex
	renderer *gallifrey.Renderer
}

// New returns a server drawing with r. now defaults to time.Now.
func New(r *gallifrey.Renderer, logger *log.Logger, now func() time.Time) *Server {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{logger: logger, now: now, renderer: r}
}

// Handler returns the router.
//
//	GET /clock.svg[?time=HH:MM:SS]
//	GET /clock.png[?time=HH:MM:SS]
//	GET /healthz
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/clock.svg", s.handleSVG)
	r.Get("/clock.png", s.handlePNG)
	return r
}

// frame renders the time from the query, or now.
func (s *Server) frame(r *http.Request) (gallifrey.Frame, gallifrey.Layout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stamp := r.URL.Query().Get("time"); stamp != "" {
		return s.renderer.RenderStamp(stamp), s.renderer.Layout()
	}
	return s.renderer.Render(s.now()), s.renderer.Layout()
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	f, l := s.frame(r)
	if f.Err != nil {
		s.logger.Warn("glyphs skipped", "stamp", f.Stamp, "err", f.Err)
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(sink.RenderSVG(f, l.Width, l.Height))
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	f, l := s.frame(r)
	data, err := sink.RenderPNG(f, l.Width, l.Height)
	if err != nil {
		s.logger.Error("png render failed", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}
