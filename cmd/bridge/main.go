package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/scenekit/scenekit/internal/bridge"
	"github.com/scenekit/scenekit/internal/core/observability/log"
	"github.com/scenekit/scenekit/internal/core/scene"
)

// Runs a bridge over an in-memory scene. Useful for developing wrapper code
// without a host running; production hosts embed the bridge instead.
func main() {
	addr := flag.String("addr", ":9000", "listen address")
	flag.Parse()

	logger := log.New(log.LevelInfo)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-stopCh
		cancel()
	}()

	srv := bridge.NewServer(scene.NewMemory(logger), logger)
	if err := srv.ListenAndServe(ctx, *addr); err != nil {
		fmt.Println("Error running bridge:", err)
		os.Exit(1)
	}
}
