package impl

import (
	"io"
	"log/slog"
	"time"

	"marketplace/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Adverts: &config.AdvertsConfig{
			GenerationTimeout:      time.Second,
			UploadTimeout:          time.Second,
			DefaultPageSize:        20,
			DefaultSimilarPageSize: 10,
		},
	}
}
