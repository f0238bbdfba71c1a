package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hotelier/pkg/config"
	"hotelier/pkg/contracts"
	"hotelier/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type Application struct {
	cfg     *config.Config
	server  *http.Server
	cleanup []func()
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// SetApp wires the given handlers behind the middleware stack and builds the
// HTTP server. Health endpoints bypass everything but Recovery and logging.
func (a *Application) SetApp(handlers ...contracts.Handler) {
	router := httprouter.New()
	for _, h := range handlers {
		h.RegisterRoutes(router)
	}
	router.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	var handler http.Handler = router
	handler = middleware.ContentTypeValidation(a.cfg.Log)(handler)
	handler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(handler)
	handler = middleware.RequestLogging(a.cfg.Log)(handler)
	handler = middleware.Recovery(a.cfg.Log)(handler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      handler,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

// OnShutdown registers a cleanup hook run during graceful shutdown, in
// registration order.
func (a *Application) OnShutdown(fn func()) {
	a.cleanup = append(a.cleanup, fn)
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	for _, fn := range a.cleanup {
		fn()
	}

	a.cfg.Log.Info("Server stopped gracefully")
}
