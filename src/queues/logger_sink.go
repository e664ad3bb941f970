package queues

import (
	"fmt"

	"foreign-call-resolver/src/utils"
	"foreign-call-resolver/src/utils/timeutil"

	"github.com/rs/zerolog"
)

type LoggerMessage struct {
	Level     string           `json:"level"`
	Message   string           `json:"message"`
	Timestamp timeutil.TimeUTC `json:"timestamp"`
}

func (lm LoggerMessage) Serialize() ([]byte, error) {
	return utils.Serialize[LoggerMessage](lm)
}

// CreateLoggerSink forwards log records to the broker so the platform can
// collect resolver diagnostics centrally.
func CreateLoggerSink(publisher Publisher) func(string, zerolog.Level, timeutil.TimeUTC) {
	return func(msg string, level zerolog.Level, timestamp timeutil.TimeUTC) {
		loggerMessage := LoggerMessage{
			Level:     level.String(),
			Message:   msg,
			Timestamp: timestamp,
		}

		err := publisher.Publish(loggerMessage)
		if err != nil {
			// Avoid infinite recursion by not using the logger here
			fmt.Printf("Failed to publish log message to RabbitMQ: %v\n", err)
		}
	}
}
