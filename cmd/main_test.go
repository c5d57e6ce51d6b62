package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/dxbpulse/internal/api"
)

func healthRouter() http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.NewHealthHandler(nil).Register(r)
	return r
}

func TestStartServer_Shutdown(t *testing.T) {
	srv := startServer(healthRouter(), "0")
	if srv == nil || srv.Addr != ":0" {
		t.Fatalf("unexpected server %+v", srv)
	}
	if srv.ReadHeaderTimeout == 0 || srv.WriteTimeout == 0 {
		t.Fatalf("expected server timeouts to be set")
	}

	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SIGTERMRunsCleanup(t *testing.T) {
	srv := startServer(healthRouter(), "0")

	cleaned := make(chan struct{})
	go gracefulShutdown(context.Background(), srv, func() { close(cleaned) })

	// let signal.Notify register first
	time.Sleep(50 * time.Millisecond)

	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}
