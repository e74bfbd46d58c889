package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lekuruu/tunescout/internal/app"
	"github.com/Lekuruu/tunescout/internal/routes"
)

func main() {
	state, err := app.NewState("tunescout-api")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	server := app.NewServer(
		state.Config.Server.Host,
		state.Config.Server.Port,
		"tunescout-api",
		state,
	)

	streamer := routes.NewAudioStreamer(
		state.Config.Audio.Quality,
		state.Config.Audio.Bitrate,
		state.Logger,
	)

	// Register all routes
	routes.RegisterHealthRoutes(server)
	routes.RegisterMusicRoutes(server)
	routes.RegisterLibraryRoutes(server)
	routes.RegisterAudioRoutes(server, streamer)

	// Handle graceful shutdown
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalChannel
		state.Logger.Log("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			state.Logger.Errorf("Graceful shutdown failed: %v", err)
		}
	}()

	if err := server.Serve(); err != nil {
		state.Logger.Errorf("Server failed: %v", err)
		os.Exit(1)
	}
}
