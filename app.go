package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AppProvider interface {
	Run() error
	Serve() func() error
	Stop(context.Context, context.Context) func() error
}

type App struct {
	logger   *zap.Logger
	config   *Config
	server   *http.Server
	db       *sql.DB
	cleanups []func()
}

// NewApp provides a fully wired application instance.
func NewApp() (AppProvider, error) {
	var app *App

	config, err := LoadAndInitConfigs(GitCommit, GitTag, BuildTime)
	if err != nil {
		return app, err
	}

	// Ensure the logs folder exists and Setup the logging module.
	err = os.MkdirAll(filepath.Dir(config.LogFile), 0o700)
	if err != nil {
		return nil, fmt.Errorf("failed to create logging folder: %s", err)
	}
	logFile, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create logging file: %s", err)
	}
	closer := func() {
		if cerr := logFile.Close(); cerr != nil {
			fmt.Println("error during closing of log file: ", cerr)
		}
	}
	logger, flusher := SetupLogging(config, logFile)

	// Setup the configured relational backend and make sure the
	// catalog tables exist before serving any request.
	ctx := context.Background()
	var db *sql.DB
	var d dialect
	switch config.Storage.Backend {
	case "postgres":
		d = postgresDialect{}
		db, err = GetPostgresClient(ctx, config.Postgres)
	case "sqlite":
		d = sqliteDialect{}
		db, err = GetSQLiteClient(ctx, config.SQLite)
	default:
		err = fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
	}
	if err != nil {
		return app, fmt.Errorf("failed to connect to %s storage: %s", config.Storage.Backend, err)
	}
	if err = EnsureSchema(ctx, db, d); err != nil {
		db.Close()
		return app, fmt.Errorf("failed to setup %s storage schema: %s", config.Storage.Backend, err)
	}

	// Setup the repositories, business services, api service and routing.
	services := &Services{
		Books:      NewBookService(logger, NewBooksRepo(logger, db, d)),
		Authors:    NewAuthorService(logger, NewAuthorsRepo(logger, db, d)),
		Genres:     NewGenreService(logger, NewGenresRepo(logger, db, d)),
		Publishers: NewPublisherService(logger, NewPublishersRepo(logger, db, d)),
	}
	clock := NewClock(config.IsProduction)
	apiService := NewAPIHandler(
		logger,
		config,
		&Statistics{
			version:   config.GitTag,
			container: IsRunningInContainer(),
			runtime:   runtime.Version(),
			platform:  runtime.GOOS + "/" + runtime.GOARCH,
			started:   time.Now(),
		},
		clock,
		NewIDsHandler(),
		NewDiskCoverStorage(config.Uploads),
		services,
	)

	// Configure the endpoints with their handlers and middlewares.
	router := apiService.SetupRoutes(httprouter.New(), apiService.MiddlewaresStacks())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
		Handler:      router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
	}

	return &App{
		logger: logger,
		config: config,
		server: srv,
		db:     db,
		cleanups: []func(){
			func() {
				if cerr := db.Close(); cerr != nil {
					logger.Error("failed to close storage", zap.Error(cerr))
				}
			},
			flusher,
			closer,
		},
	}, nil
}

// Run starts the api web server and a goroutine which is responsible to stop it.
func (app *App) Run() error {
	defer app.Clean()
	nCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(nCtx)

	g.Go(app.Serve())
	g.Go(app.Stop(nCtx, gCtx))

	err := g.Wait()
	app.logger.Info("api server stopped",
		zap.String("host", app.config.Server.Host),
		zap.String("port", app.config.Server.Port),
		zap.Error(err),
	)
	return err
}

// Clean calls all registered cleanups functions.
func (app *App) Clean() {
	for _, f := range app.cleanups {
		f()
	}
}

// Serve starts the api web server. It returned error
// will be caught by the errorgroup.
func (app *App) Serve() func() error {
	return func() error {
		app.logger.Info("api server starting",
			zap.String("host", app.config.Server.Host),
			zap.String("port", app.config.Server.Port),
			zap.String("storage", app.config.Storage.Backend),
		)
		err := app.server.ListenAndServe()
		if err == http.ErrServerClosed {
			err = nil
		}
		return err
	}
}

// Stop listens for the group context and triggers the server graceful shutdown.
// It states the reason of its call. We proceed with a brutal shutdown if the
// the graceful did not complete successfully. We explicitly return `nil` to
// allow the errorgroup catches only the `Serve` method result.
func (app *App) Stop(nCtx, gCtx context.Context) func() error {
	return func() error {
		<-gCtx.Done()

		if nCtx.Err() != nil {
			app.logger.Info("api server stopping. reason: requested to stop")
		} else {
			app.logger.Info("api server stopping. reason: errored at running")
		}

		sCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		defer cancel()
		err := app.server.Shutdown(sCtx)
		switch err {
		case nil, http.ErrServerClosed:
			app.logger.Info("api server graceful shutdown succeeded")
		case context.DeadlineExceeded:
			app.logger.Info("api server graceful shutdown timed out")
		default:
			app.logger.Info("api server graceful shutdown failed", zap.Error(err))
		}

		if err != nil && err != http.ErrServerClosed {
			app.logger.Info("api server going to force shutdown", zap.Error(app.server.Close()))
		}
		return nil
	}
}
