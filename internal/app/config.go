package app

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Host string `env:"HOST" envDefault:"0.0.0.0"`
		Port int    `env:"PORT" envDefault:"5005"`
	}
	YouTube struct {
		SearchUrl string `env:"YOUTUBE_SEARCH_URL" envDefault:"https://www.youtube.com/youtubei/v1/search"`
		Language  string `env:"YOUTUBE_LANGUAGE" envDefault:"en"`
		Country   string `env:"YOUTUBE_COUNTRY" envDefault:"US"`

		// Zero disables throttling
		RequestsPerSecond float64 `env:"YOUTUBE_REQUESTS_PER_SECOND" envDefault:"0"`
	}
	Geo struct {
		BaseUrl string `env:"GEO_BASE_URL" envDefault:"https://ipapi.co"`
	}
	Request struct {
		Timeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	}
	Limits struct {
		Search   int `env:"SEARCH_DEFAULT_LIMIT" envDefault:"10"`
		Trending int `env:"TRENDING_DEFAULT_LIMIT" envDefault:"20"`
	}
	Audio struct {
		Quality string `env:"AUDIO_QUALITY" envDefault:"bestaudio"`
		Bitrate string `env:"AUDIO_BITRATE" envDefault:"128k"`
	}
	Log struct {
		Level string `env:"LOG_LEVEL" envDefault:"info"`
	}
}

func NewConfig() (*Config, error) {
	// Try to load .env file if it exists
	godotenv.Load()

	var config Config
	if err := env.Parse(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
