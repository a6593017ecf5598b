package web

import (
	"net/http"
	"sync"

	"shuttle-app/internal/model"
	"shuttle-app/internal/rotation"
	"shuttle-app/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	store  store.Store
	logger *zap.Logger
	locks  *sessionLocks

	// genMu guards the generator's random source across sessions.
	genMu     sync.Mutex
	generator *rotation.Generator
}

func NewServer(store store.Store, generator *rotation.Generator, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if generator == nil {
		generator = rotation.NewGenerator(rotation.WithLogger(logger))
	}
	return &Server{
		store:     store,
		logger:    logger,
		locks:     newSessionLocks(),
		generator: generator,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleSessionCreate)
		r.Get("/{sessionID}", s.handleSessionShow)
		r.Get("/{sessionID}/stats", s.handleSessionStats)
		r.Delete("/{sessionID}", s.handleSessionFinish)
		r.Post("/{sessionID}/join", s.handleMemberJoin)
		r.Post("/{sessionID}/members/{memberID}/leave", s.handleMemberLeave)
		r.Post("/{sessionID}/members/{memberID}/base-count", s.handleMemberBaseCount)
		r.Post("/{sessionID}/generate", s.handleGenerate)
		r.Post("/{sessionID}/retry", s.handleRetry)
		r.Post("/{sessionID}/events", s.handleEvent)
	})

	return r
}

func (s *Server) generate(settings model.Settings) (model.Settings, error) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generator.Generate(settings)
}

func (s *Server) retry(settings model.Settings) (model.Settings, error) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generator.Retry(settings)
}
