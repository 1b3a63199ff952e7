// Package httpapi exposes the server over HTTP/JSON. All payloads are
// opaque envelopes or encrypted blobs; the only plaintext the server
// handles is account and share passwords, which it hashes with bcrypt.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/dmitrijs2005/photovault/internal/dbx"
	"github.com/dmitrijs2005/photovault/internal/logging"
	"github.com/dmitrijs2005/photovault/internal/server/auth"
	"github.com/dmitrijs2005/photovault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/photovault/internal/server/storage"
)

// Server holds the handler dependencies and builds the router.
type Server struct {
	log      logging.Logger
	db       *sql.DB
	repos    repomanager.RepositoryManager
	blobs    storage.BlobStore
	sessions *auth.Registry
	secret   []byte
	tokenTTL time.Duration
	origins  []string
}

// NewServer wires the handlers. db may be nil when the repository manager
// does not need a connection (in-memory backends).
func NewServer(log logging.Logger, db *sql.DB, repos repomanager.RepositoryManager,
	blobs storage.BlobStore, sessions *auth.Registry, secret []byte,
	tokenTTL time.Duration, origins []string) *Server {
	return &Server{
		log:      log.With("component", "httpapi"),
		db:       db,
		repos:    repos,
		blobs:    blobs,
		sessions: sessions,
		secret:   secret,
		tokenTTL: tokenTTL,
		origins:  origins,
	}
}

// withTx runs fn inside a transaction when a real database is attached,
// and directly otherwise.
func (s *Server) withTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, fn)
}

// Router assembles the chi router with the full endpoint surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler)
	r.Use(s.sessionMiddleware)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Post("/user", s.handleRegister)
	r.Post("/user/auth", s.handleLogin)

	r.Route("/text", func(r chi.Router) {
		r.Get("/", s.handleListItems)
		r.Get("/{id}", s.handleGetItem)
		r.Post("/{id}", s.handlePutItem)
		r.Delete("/{id}", s.handleDeleteItem)
	})

	r.Route("/file", func(r chi.Router) {
		r.Post("/", s.handleUploadFiles)
		r.Get("/{id}", s.handleGetFile)
		r.Delete("/{id}", s.handleDeleteFile)
	})

	r.Route("/share", func(r chi.Router) {
		r.Post("/", s.handlePutShare)
		r.Get("/{id}", s.handleGetShare)
		r.Delete("/{id}", s.handleDeleteShare)
		r.Post("/{id}/auth", s.handleAuthorizeShare)
		r.Get("/{id}/auth", s.handleShareAuthorized)
	})

	return r
}
