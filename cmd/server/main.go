package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-sheets-sdk/internal/config"
	"github.com/jrsteele09/go-sheets-sdk/oauthflow"
	"github.com/jrsteele09/go-sheets-sdk/server"
	"github.com/jrsteele09/go-sheets-sdk/server/authflowrepo"
	"github.com/jrsteele09/go-sheets-sdk/server/loginsession"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	if err := config.LoadEnvFiles(".env", "~/.sheets.env"); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}

	c, err := config.Load(os.Getenv(config.FileEnvVar))
	if err != nil {
		return err
	}
	setupLogging(c)
	displayAppname(c.GetAppName())

	flow, err := newFlow(c)
	if err != nil {
		return err
	}

	authState, closeStore, err := newAuthStateRepo(c)
	if err != nil {
		return err
	}
	defer closeStore()

	handler, err := server.New(c, flow, loginsession.NewInMemoryLoginSessionRepo(), authState)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- listenAndServe(srv) }()

	select {
	case err := <-errCh:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func newFlow(c config.Config) (*oauthflow.Flow, error) {
	cfg := oauthflow.Config{
		ClientID:         c.GetClientID(),
		ClientSecret:     oauthflow.Secret(c.GetClientSecret()),
		RedirectURL:      c.GetRedirectURL(),
		AuthorizationURL: c.GetAuthorizationURL(),
		TokenURL:         c.GetTokenURL(),
	}

	opts := []oauthflow.Option{oauthflow.WithLogger(log.Logger.With().Str("component", "oauthflow").Logger())}
	if c.GetUsePKCE() {
		opts = append(opts, oauthflow.WithPKCE())
	}

	flow, err := oauthflow.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("oauth flow: %w", err)
	}
	log.Info().Stringer("config", flow.Config()).Msg("oauth flow configured")
	return flow, nil
}

// newAuthStateRepo uses Redis when an address is configured so that any
// replica can serve the callback.
func newAuthStateRepo(c config.Config) (authflowrepo.Repo, func(), error) {
	addr := c.GetRedisAddr()
	if addr == "" {
		return authflowrepo.NewInMemoryRepo(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	log.Info().Str("addr", addr).Msg("auth state stored in redis")
	return authflowrepo.NewRedisRepo(client, ""), func() { _ = client.Close() }, nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
