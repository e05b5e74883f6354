// Package webserve serves the browser build of the game.
//
// The page needs the camera and WebXR, so every response carries a
// Permissions-Policy that allows both for the page's own origin. Browsers
// only grant these on secure origins; run behind TLS or on localhost.
package webserve

import (
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// PermissionsPolicy enables camera capture and immersive AR on the page.
const PermissionsPolicy = "camera=(self), xr-spatial-tracking=(self)"

// Server bundles the router and the static root.
type Server struct {
	r   *chi.Mux
	dir string
}

// New constructs a Server serving the files under staticDir.
func New(staticDir string) *Server {
	s := &Server{r: chi.NewRouter(), dir: staticDir}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(30 * time.Second))
	s.r.Use(requestLog)
	s.r.Use(permissions)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	files := http.FileServer(http.Dir(staticDir))
	s.r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		if path.Ext(r.URL.Path) == ".wasm" {
			w.Header().Set("Content-Type", "application/wasm")
		}
		files.ServeHTTP(w, r)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Str("dir", s.dir).Msg("serving browser build")
	return http.ListenAndServe(addr, s.r)
}

// Router exposes the router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func permissions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Permissions-Policy", PermissionsPolicy)
		next.ServeHTTP(w, r)
	})
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}
