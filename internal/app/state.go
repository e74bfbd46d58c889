package app

import (
	"fmt"

	"github.com/Lekuruu/tunescout/internal/geo"
	"github.com/Lekuruu/tunescout/internal/music"
	"github.com/Lekuruu/tunescout/internal/providers"
	"golang.org/x/time/rate"
)

type State struct {
	Config   *Config
	Logger   *Logger
	Provider providers.Provider
	Locator  music.Locator
	Music    *music.Service
	Storage  Storage
}

func NewState(name string) (*State, error) {
	config, err := NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	logger := NewLogger(name, config.Log.Level)

	provider := providers.NewYouTubeProvider(
		config.YouTube.SearchUrl,
		config.YouTube.Country,
		config.YouTube.Language,
		config.Request.Timeout,
	)
	if config.YouTube.RequestsPerSecond > 0 {
		provider.Limiter = rate.NewLimiter(rate.Limit(config.YouTube.RequestsPerSecond), 1)
	}

	locator := geo.NewClient(config.Geo.BaseUrl, config.Request.Timeout)

	return &State{
		Config:   config,
		Logger:   logger,
		Provider: provider,
		Locator:  locator,
		Music:    music.NewService(provider, locator, logger),
		Storage:  NewMemoryStorage(),
	}, nil
}
