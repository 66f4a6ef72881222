package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/AbdullahShariq/Chat-App/internal/config"
	"github.com/AbdullahShariq/Chat-App/internal/database"
	"github.com/AbdullahShariq/Chat-App/internal/server"
	"github.com/gorilla/handlers"
	"github.com/teris-io/shortid"
)

type ChatApp struct {
	log            *log.Logger
	db             database.ChatRepository
	mux            *http.Server
	cs             *server.ChatServer
	allowedOrigins []string
	generateConnId func() (string, error)
}

func NewChatApp(mux *http.ServeMux, logger *log.Logger, cs *server.ChatServer, db database.ChatRepository, cfg *config.Config) *ChatApp {
	s := &ChatApp{
		log:            logger,
		db:             db,
		cs:             cs,
		allowedOrigins: cfg.AllowedOrigins,
		generateConnId: shortid.Generate,
	}

	mux.HandleFunc("GET /users", s.listUsers)
	mux.HandleFunc("POST /users", s.createUser)
	mux.HandleFunc("GET /messages", s.listMessages)
	mux.HandleFunc("GET /ws", s.serveWs)

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
	)(mux)

	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *ChatApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *ChatApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
