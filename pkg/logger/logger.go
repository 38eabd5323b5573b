package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Log is the package level logger shared by the session layer
var Log zerolog.Logger

type Config struct {
	Level string
}

func NewLogger(cfg Config, environment string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, err
	}
	logger := zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
	if environment == "local" {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out: os.Stderr,
		})
	}
	return logger, nil
}
