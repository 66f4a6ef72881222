package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/AbdullahShariq/Chat-App/internal/api"
	"github.com/AbdullahShariq/Chat-App/internal/config"
	"github.com/AbdullahShariq/Chat-App/internal/database"
	"github.com/AbdullahShariq/Chat-App/internal/server"
	"github.com/AbdullahShariq/Chat-App/internal/stats"
	_ "github.com/lib/pq"
)

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, strings.Split(value, ",")...)
	return nil
}

var (
	addr           string
	dsn            string
	userLookup     string
	allowedOrigins stringSliceFlag
)

func main() {
	flag.StringVar(&addr, "addr", "localhost:3000", "server address")
	flag.StringVar(&dsn, "dsn", "host=localhost user=postgres password=postgres dbname=postgres sslmode=disable", "database connection string")
	flag.StringVar(&userLookup, "user-lookup", "username", "how sendMessage resolves participants: id or username")
	flag.Var(&allowedOrigins, "allowed-origins", "comma-separated list of allowed origins for CORS")
	flag.Parse()

	logger := log.New(os.Stderr, "[chat-app] ", log.LstdFlags)

	cfg, err := config.NewConfig(addr, dsn, userLookup, allowedOrigins)
	if err != nil {
		logger.Fatal("config:", err)
	}

	dbConn, err := database.NewPgChatRepository(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("db open:", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Fatal("db close:", err)
		}
	}()

	if err := dbConn.Migrate(); err != nil {
		logger.Fatal("db migrate:", err)
	}

	mux := http.NewServeMux()

	statsUpdater := stats.NewStatsUpdater(mux)

	registry := server.NewRegistry()
	chatServer, err := server.NewChatServer(logger, dbConn, registry, statsUpdater, cfg.UserLookup)
	if err != nil {
		logger.Fatal("new chat server:", err)
	}

	app := api.NewChatApp(mux, logger, chatServer, dbConn, cfg)

	statsUpdater.Run()
	defer statsUpdater.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Printf("received signal: %s\n", sig)
	case err := <-errCh:
		logger.Println("server:", err)
	}

	shutDownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := app.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("HTTP server shutdown:", err)
	}

	logger.Println("shutting down chat server...")
	if err := chatServer.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("chat server shutdown:", err)
	}

	logger.Println("shutdown complete")
}
