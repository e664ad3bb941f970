package logger

import "github.com/rs/zerolog"

type LoggerConfig struct {
	LogLevel zerolog.Level
}
