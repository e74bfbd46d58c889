package main

import (
	"context"
	"os"

	"github.com/Lekuruu/tunescout/internal/app"
	"github.com/Lekuruu/tunescout/internal/cli"
	"github.com/Lekuruu/tunescout/internal/music"
)

func main() {
	state, err := app.NewState("tunescout")
	if err != nil {
		cli.WriteEnvelope(os.Stdout, music.Failure(err))
		os.Exit(1)
	}

	runner := cli.NewRunner(state.Music, os.Stdout)
	runner.SearchDefaultLimit = state.Config.Limits.Search
	runner.TrendingDefaultLimit = state.Config.Limits.Trending

	// Each outbound request is bounded by REQUEST_TIMEOUT on its own http client
	os.Exit(runner.Run(context.Background(), os.Args[1:]))
}
